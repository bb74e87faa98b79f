package stats

import (
	"math"

	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/KaramelBytes/tablekit-cli/internal/numeric"
)

// CorrMatrix is a symmetric Pearson correlation matrix across the selected
// fields, diagonal 1.0.
type CorrMatrix struct {
	Fields []string
	Values [][]float64 // row-major, Values[i][j]
}

// Triples flattens the matrix to [i, j, coefficient] entries for consumers
// that render heatmaps.
func (m *CorrMatrix) Triples() [][3]float64 {
	out := make([][3]float64, 0, len(m.Fields)*len(m.Fields))
	for i := range m.Values {
		for j := range m.Values[i] {
			out = append(out, [3]float64{float64(i), float64(j), m.Values[i][j]})
		}
	}
	return out
}

// CorrelationMatrix computes the Pearson coefficient for each pair of the
// selected fields. Pairs use positional alignment over rows where both fields
// parse as numbers, not a join. A field with zero variance correlates 0 with
// everything: undefined correlation is treated as no relationship rather than
// an error.
func CorrelationMatrix(rows []dataset.Record, fields []string) (*CorrMatrix, error) {
	if len(fields) < 2 {
		return nil, &InsufficientDataError{Op: "correlation", Need: 2, Got: len(fields)}
	}
	n := len(fields)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pearson(rows, fields[i], fields[j])
			mat[i][j] = r
			mat[j][i] = r
		}
	}
	return &CorrMatrix{Fields: append([]string(nil), fields...), Values: mat}, nil
}

// pearson aligns the two fields positionally, keeping rows where both sides
// parse, and returns the normalized covariance clamped to [-1, 1].
func pearson(rows []dataset.Record, fieldX, fieldY string) float64 {
	var xs, ys []float64
	for _, row := range rows {
		x, okX := numeric.Parse(row[fieldX])
		y, okY := numeric.Parse(row[fieldY])
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	n := float64(len(xs))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
		sumXY += xs[i] * ys[i]
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return 0
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

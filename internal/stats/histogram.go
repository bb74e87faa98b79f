// Package stats computes the reproducible statistics behind analysis charts:
// histogram binning, box-plot five-number summaries, Pearson correlation
// matrices, and first-difference trend forecasts.
package stats

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/KaramelBytes/tablekit-cli/internal/numeric"
)

// Bin is one histogram bucket.
type Bin struct {
	Label     string `json:"binLabel"`
	Frequency int    `json:"frequency"`
}

// Histogram bins the numeric values of one field. Bin count is
// min(20, ceil(sqrt(n))); width is (max-min)/binCount with a fallback of 1
// when the range is zero; the maximum value is absorbed by clamping to the
// last bin.
func Histogram(rows []dataset.Record, field string) ([]Bin, error) {
	values := NumericColumn(rows, field)
	if len(values) == 0 {
		return nil, &InsufficientDataError{Op: "histogram", Need: 1, Got: 0}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	binCount := int(math.Ceil(math.Sqrt(float64(len(values)))))
	if binCount > 20 {
		binCount = 20
	}
	width := (max - min) / float64(binCount)
	if width == 0 {
		width = 1
	}

	bins := make([]Bin, binCount)
	for i := range bins {
		lo := min + float64(i)*width
		bins[i].Label = fmt.Sprintf("%v..%v", numeric.Round2(lo), numeric.Round2(lo+width))
	}
	for _, v := range values {
		idx := int(math.Floor((v - min) / width))
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx].Frequency++
	}
	return bins, nil
}

// NumericColumn extracts the values of field that parse as numbers, in row
// order.
func NumericColumn(rows []dataset.Record, field string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := numeric.Parse(row[field]); ok {
			out = append(out, v)
		}
	}
	return out
}

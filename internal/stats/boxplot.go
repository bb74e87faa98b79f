package stats

import (
	"sort"

	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
)

// BoxPlot is a five-number summary with Tukey-fence outliers.
type BoxPlot struct {
	Q1           float64   `json:"q1"`
	Q2           float64   `json:"q2"`
	Q3           float64   `json:"q3"`
	LowerWhisker float64   `json:"lowerWhisker"`
	UpperWhisker float64   `json:"upperWhisker"`
	Outliers     []float64 `json:"outliers"`
}

// boxPlotMinSamples is the smallest sample that yields a meaningful
// five-number summary.
const boxPlotMinSamples = 5

// BoxPlotField computes a box plot over the numeric values of one field.
func BoxPlotField(rows []dataset.Record, field string) (*BoxPlot, error) {
	return ComputeBoxPlot(NumericColumn(rows, field))
}

// ComputeBoxPlot sorts values and derives quartiles via nearest-rank indices
// floor(n*0.25), floor(n*0.5), floor(n*0.75). Whiskers are clamped to
// [max(min, Q1-1.5·IQR), min(max, Q3+1.5·IQR)]; values outside the whiskers
// are outliers.
func ComputeBoxPlot(values []float64) (*BoxPlot, error) {
	n := len(values)
	if n < boxPlotMinSamples {
		return nil, &InsufficientDataError{Op: "box plot", Need: boxPlotMinSamples, Got: n}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := sorted[n/4]
	q2 := sorted[n/2]
	q3 := sorted[n*3/4]
	iqr := q3 - q1

	lower := q1 - 1.5*iqr
	if lower < sorted[0] {
		lower = sorted[0]
	}
	upper := q3 + 1.5*iqr
	if upper > sorted[n-1] {
		upper = sorted[n-1]
	}

	box := &BoxPlot{Q1: q1, Q2: q2, Q3: q3, LowerWhisker: lower, UpperWhisker: upper}
	for _, v := range sorted {
		if v < lower || v > upper {
			box.Outliers = append(box.Outliers, v)
		}
	}
	return box, nil
}

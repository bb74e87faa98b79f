package stats

import (
	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/KaramelBytes/tablekit-cli/internal/numeric"
)

// Trend is an observed series plus extrapolated future points.
type Trend struct {
	History  []float64 `json:"history"`
	Slope    float64   `json:"slope"`
	Forecast []float64 `json:"forecast"`
}

// forecastMinSamples: a single first difference cannot establish a trend.
const forecastMinSamples = 3

// ForecastField extrapolates the numeric values of one field in row order.
func ForecastField(rows []dataset.Record, field string, steps int) (*Trend, error) {
	return Forecast(NumericColumn(rows, field), steps)
}

// Forecast computes the mean of successive first differences as the trend and
// extrapolates steps future points by repeatedly adding it to the last
// observed value, rounding each point to two decimals.
func Forecast(values []float64, steps int) (*Trend, error) {
	if len(values) < forecastMinSamples {
		return nil, &InsufficientDataError{Op: "forecast", Need: forecastMinSamples, Got: len(values)}
	}
	var sum float64
	for i := 1; i < len(values); i++ {
		sum += values[i] - values[i-1]
	}
	slope := sum / float64(len(values)-1)

	t := &Trend{
		History: append([]float64(nil), values...),
		Slope:   numeric.Round2(slope),
	}
	last := values[len(values)-1]
	for i := 0; i < steps; i++ {
		last += slope
		t.Forecast = append(t.Forecast, numeric.Round2(last))
	}
	return t, nil
}

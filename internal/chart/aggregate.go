// Package chart turns raw rows into chart-ready series: group-by aggregation
// feeding bar, line, and pie inputs.
package chart

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/KaramelBytes/tablekit-cli/internal/numeric"
)

// MaxGroups caps a series at the top groups by value. Charts with more slices
// than this stop being readable and start being slow to render; the cap is a
// deliberate, documented boundary.
const MaxGroups = 20

// EmptyGroup is the group name assigned to rows whose group field is null.
const EmptyGroup = "empty"

// AggType selects how grouped values are folded.
type AggType string

const (
	AggCount AggType = "count"
	AggSum   AggType = "sum"
	AggAvg   AggType = "avg"
	AggMax   AggType = "max"
	AggMin   AggType = "min"
)

// ParseAggType validates a user-supplied aggregation name.
func ParseAggType(s string) (AggType, error) {
	switch AggType(s) {
	case AggCount, AggSum, AggAvg, AggMax, AggMin:
		return AggType(s), nil
	}
	return "", fmt.Errorf("unsupported aggregation %q (use count|sum|avg|max|min)", s)
}

// Point is one named value in a series.
type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Series is chart input: top groups by value, descending, values rounded to
// two decimals.
type Series []Point

// EmptyDatasetError reports aggregation over zero rows. It is the explicit
// "no data" outcome rather than a panic or a zero-length series of ambiguous
// meaning.
type EmptyDatasetError struct {
	Op string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s: dataset has no rows", e.Op)
}

// Aggregate groups rows by groupField and folds valueField per group. For
// count, valueField is ignored. Values that fail numeric parse are skipped;
// avg divides by the count of parsed values, not group size; max/min over an
// empty numeric set yield 0.
func Aggregate(rows []dataset.Record, groupField, valueField string, agg AggType) (Series, error) {
	if len(rows) == 0 {
		return nil, &EmptyDatasetError{Op: "aggregate"}
	}

	counts := make(map[string]int)
	nums := make(map[string][]float64)
	order := make([]string, 0)
	for _, row := range rows {
		name := numeric.String(row[groupField])
		if name == "" {
			name = EmptyGroup
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
		if agg != AggCount {
			if v, ok := numeric.Parse(row[valueField]); ok {
				nums[name] = append(nums[name], v)
			}
		}
	}

	series := make(Series, 0, len(order))
	for _, name := range order {
		series = append(series, Point{Name: name, Value: numeric.Round2(fold(agg, counts[name], nums[name]))})
	}
	sort.SliceStable(series, func(i, j int) bool {
		if series[i].Value == series[j].Value {
			return series[i].Name < series[j].Name
		}
		return series[i].Value > series[j].Value
	})
	if len(series) > MaxGroups {
		series = series[:MaxGroups]
	}
	return series, nil
}

func fold(agg AggType, count int, vals []float64) float64 {
	switch agg {
	case AggCount:
		return float64(count)
	case AggSum:
		var s float64
		for _, v := range vals {
			s += v
		}
		return s
	case AggAvg:
		if len(vals) == 0 {
			return 0
		}
		var s float64
		for _, v := range vals {
			s += v
		}
		return s / float64(len(vals))
	case AggMax:
		if len(vals) == 0 {
			return 0
		}
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case AggMin:
		if len(vals) == 0 {
			return 0
		}
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m
	}
	return 0
}

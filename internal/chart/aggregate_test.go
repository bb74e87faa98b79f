package chart

import (
	"errors"
	"fmt"
	"testing"

	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
)

func TestAggregateCount(t *testing.T) {
	rows := []dataset.Record{{"g": "x"}, {"g": "x"}, {"g": "y"}}
	series, err := Aggregate(rows, "g", "", AggCount)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := Series{{Name: "x", Value: 2}, {Name: "y", Value: 1}}
	if len(series) != len(want) {
		t.Fatalf("got %d points, want %d", len(series), len(want))
	}
	for i := range want {
		if series[i] != want[i] {
			t.Errorf("series[%d] = %+v, want %+v", i, series[i], want[i])
		}
	}
}

func TestAggregateSumSkipsUnparsable(t *testing.T) {
	rows := []dataset.Record{
		{"g": "x", "v": "1.5"},
		{"g": "x", "v": "oops"},
		{"g": "x", "v": 2.5},
		{"g": "y", "v": nil},
	}
	series, err := Aggregate(rows, "g", "v", AggSum)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if series[0].Name != "x" || series[0].Value != 4 {
		t.Errorf("x sum = %+v, want 4", series[0])
	}
	if series[1].Name != "y" || series[1].Value != 0 {
		t.Errorf("y sum = %+v, want 0", series[1])
	}
}

func TestAggregateAvgDividesByParsedCount(t *testing.T) {
	rows := []dataset.Record{
		{"g": "x", "v": "10"},
		{"g": "x", "v": "n/a"},
		{"g": "x", "v": "20"},
	}
	series, err := Aggregate(rows, "g", "v", AggAvg)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	// Two parsed values, not three rows.
	if series[0].Value != 15 {
		t.Fatalf("avg = %v, want 15", series[0].Value)
	}
}

func TestAggregateMaxMinEmptySet(t *testing.T) {
	rows := []dataset.Record{{"g": "x", "v": "text"}}
	for _, agg := range []AggType{AggMax, AggMin} {
		series, err := Aggregate(rows, "g", "v", agg)
		if err != nil {
			t.Fatalf("Aggregate(%s): %v", agg, err)
		}
		if series[0].Value != 0 {
			t.Errorf("%s over empty numeric set = %v, want 0", agg, series[0].Value)
		}
	}
}

func TestAggregateNullGroup(t *testing.T) {
	rows := []dataset.Record{{"g": nil, "v": "1"}, {"g": "a", "v": "1"}}
	series, err := Aggregate(rows, "g", "", AggCount)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	found := false
	for _, p := range series {
		if p.Name == EmptyGroup {
			found = true
		}
	}
	if !found {
		t.Fatalf("null group not mapped to %q: %+v", EmptyGroup, series)
	}
}

func TestAggregateCapsTopGroups(t *testing.T) {
	var rows []dataset.Record
	for i := 0; i < 30; i++ {
		group := fmt.Sprintf("g%02d", i)
		// Higher-numbered groups get more rows so the cap keeps them.
		for j := 0; j <= i; j++ {
			rows = append(rows, dataset.Record{"g": group})
		}
	}
	series, err := Aggregate(rows, "g", "", AggCount)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(series) != MaxGroups {
		t.Fatalf("got %d groups, want cap %d", len(series), MaxGroups)
	}
	if series[0].Name != "g29" || series[0].Value != 30 {
		t.Errorf("top group = %+v, want g29/30", series[0])
	}
	for i := 1; i < len(series); i++ {
		if series[i].Value > series[i-1].Value {
			t.Fatalf("series not descending at %d: %v > %v", i, series[i].Value, series[i-1].Value)
		}
	}
}

func TestAggregateEmptyDataset(t *testing.T) {
	_, err := Aggregate(nil, "g", "", AggCount)
	var empty *EmptyDatasetError
	if !errors.As(err, &empty) {
		t.Fatalf("want EmptyDatasetError, got %v", err)
	}
}

func TestParseAggType(t *testing.T) {
	if _, err := ParseAggType("median"); err == nil {
		t.Fatal("want error for unsupported aggregation")
	}
	if a, err := ParseAggType("sum"); err != nil || a != AggSum {
		t.Fatalf("ParseAggType(sum) = %v, %v", a, err)
	}
}

package compare

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
)

func TestCompareClassification(t *testing.T) {
	source := []dataset.Record{
		{"id": "1", "name": "a"},
		{"id": "2", "name": "b"},
	}
	target := []dataset.Record{
		{"id": "1", "name": "a"},
		{"id": "2", "name": "c"},
	}
	res, err := Compare(source, target, []string{"id"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(res.Same) != 1 || res.Same[0]["id"] != "1" {
		t.Fatalf("same = %v", res.Same)
	}
	if len(res.SourceOnly) != 0 || len(res.TargetOnly) != 0 {
		t.Fatalf("unexpected only-partitions: %v / %v", res.SourceOnly, res.TargetOnly)
	}
	if len(res.Different) != 1 {
		t.Fatalf("different = %v", res.Different)
	}
	diff := res.Different[0]
	if diff["name"] != "b" || diff[ShadowPrefix+"name"] != "c" {
		t.Fatalf("shadow field wrong: %v", diff)
	}
}

func TestCompareOnlyPartitions(t *testing.T) {
	source := []dataset.Record{{"id": "1", "v": "x"}, {"id": "3", "v": "y"}}
	target := []dataset.Record{{"id": "1", "v": "x"}, {"id": "9", "v": "z"}}
	res, err := Compare(source, target, []string{"id"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(res.SourceOnly) != 1 || res.SourceOnly[0]["id"] != "3" {
		t.Fatalf("source_only = %v", res.SourceOnly)
	}
	if len(res.TargetOnly) != 1 || res.TargetOnly[0]["id"] != "9" {
		t.Fatalf("target_only = %v", res.TargetOnly)
	}
}

func makeRows(n int, change func(i int, r dataset.Record)) []dataset.Record {
	rows := make([]dataset.Record, n)
	for i := range rows {
		r := dataset.Record{
			"id":   fmt.Sprintf("%d", i),
			"name": fmt.Sprintf("name-%d", i),
			"val":  float64(i * 10),
		}
		if change != nil {
			change(i, r)
		}
		rows[i] = r
	}
	return rows
}

func TestCompareCompleteness(t *testing.T) {
	source := makeRows(50, nil)
	target := makeRows(60, func(i int, r dataset.Record) {
		if i%7 == 0 {
			r["val"] = float64(i*10 + 1)
		}
	})
	res, err := Compare(source, target, []string{"id"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	sum := res.Summary()
	if sum.Same+sum.SourceOnly+sum.Different != len(source) {
		t.Errorf("source completeness: %d+%d+%d != %d", sum.Same, sum.SourceOnly, sum.Different, len(source))
	}
	if sum.Same+sum.TargetOnly+sum.Different != len(target) {
		t.Errorf("target completeness: %d+%d+%d != %d", sum.Same, sum.TargetOnly, sum.Different, len(target))
	}
}

func TestCompareSymmetry(t *testing.T) {
	source := makeRows(20, nil)
	target := makeRows(25, func(i int, r dataset.Record) {
		if i%3 == 0 {
			r["name"] = "changed"
		}
	})
	fwd, err := Compare(source, target, []string{"id"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	rev, err := Compare(target, source, []string{"id"})
	if err != nil {
		t.Fatalf("Compare reversed: %v", err)
	}
	if len(fwd.SourceOnly) != len(rev.TargetOnly) || len(fwd.TargetOnly) != len(rev.SourceOnly) {
		t.Errorf("only-partitions do not swap: %d/%d vs %d/%d",
			len(fwd.SourceOnly), len(fwd.TargetOnly), len(rev.SourceOnly), len(rev.TargetOnly))
	}
	if len(fwd.Same) != len(rev.Same) || len(fwd.Different) != len(rev.Different) {
		t.Errorf("same/different membership changed: %d/%d vs %d/%d",
			len(fwd.Same), len(fwd.Different), len(rev.Same), len(rev.Different))
	}
}

func TestCompareIdempotence(t *testing.T) {
	source := makeRows(30, nil)
	target := makeRows(30, func(i int, r dataset.Record) {
		if i%5 == 0 {
			r["val"] = "drifted"
		}
	})
	first, err := Compare(source, target, []string{"id"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	second, err := Compare(source, target, []string{"id"})
	if err != nil {
		t.Fatalf("Compare again: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated comparison produced a different result")
	}
}

func TestCompareNoKeys(t *testing.T) {
	_, err := Compare(nil, nil, nil)
	var noKeys *NoCommonKeysError
	if !errors.As(err, &noKeys) {
		t.Fatalf("want NoCommonKeysError, got %v", err)
	}
}

func TestCompareDuplicateTargetKeys(t *testing.T) {
	source := []dataset.Record{{"id": "1", "v": "a"}}
	target := []dataset.Record{
		{"id": "1", "v": "first"},
		{"id": "1", "v": "second"},
	}
	res, err := Compare(source, target, []string{"id"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.Summary().DuplicateKeys != 1 {
		t.Fatalf("duplicate keys = %d, want 1", res.Summary().DuplicateKeys)
	}
	// First occurrence wins.
	if len(res.Different) != 1 || res.Different[0][ShadowPrefix+"v"] != "first" {
		t.Fatalf("different = %v", res.Different)
	}
}

func TestCompareCompositeKey(t *testing.T) {
	source := []dataset.Record{{"a": "x", "b": "1", "v": "s"}}
	target := []dataset.Record{{"a": "x", "b": "1", "v": "s"}, {"a": "x", "b": "2", "v": "s"}}
	res, err := Compare(source, target, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(res.Same) != 1 || len(res.TargetOnly) != 1 {
		t.Fatalf("unexpected partitions: %+v", res.Summary())
	}
}

func TestCompareNumericStringCoercion(t *testing.T) {
	// 3.0 and "3" must compare equal after string coercion.
	source := []dataset.Record{{"id": "1", "v": 3.0}}
	target := []dataset.Record{{"id": "1", "v": "3"}}
	res, err := Compare(source, target, []string{"id"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(res.Same) != 1 {
		t.Fatalf("coerced values not equal: %+v", res.Summary())
	}
}

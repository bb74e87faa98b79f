// Package compare partitions two datasets by join key into same, source-only,
// target-only, and changed sets.
package compare

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/KaramelBytes/tablekit-cli/internal/numeric"
)

// ShadowPrefix marks the target-side value of a divergent column on a
// different-partition row.
const ShadowPrefix = "_target_"

// keySeparator joins key tuple parts; a unit separator is unlikely to occur
// in cell data.
const keySeparator = "\x1f"

// NoCommonKeysError refuses a comparison before it runs: no partial result is
// produced without at least one join key.
type NoCommonKeysError struct{}

func (*NoCommonKeysError) Error() string {
	return "comparison requires at least one join key common to both datasets"
}

// Result partitions every source row into exactly one of Same, SourceOnly,
// Different and every target row into exactly one of Same, TargetOnly,
// Different.
type Result struct {
	Same       []dataset.Record
	SourceOnly []dataset.Record
	TargetOnly []dataset.Record
	Different  []dataset.Record // source row plus ShadowPrefix fields

	// DuplicateKeys counts target rows whose key tuple collided with an
	// earlier row during index construction. First occurrence wins; the
	// count surfaces the ambiguity instead of hiding it.
	DuplicateKeys int
}

// Summary holds counts derived from the partitions, never maintained
// independently, so totals cannot drift from set membership.
type Summary struct {
	Same          int `json:"same"`
	SourceOnly    int `json:"source_only"`
	TargetOnly    int `json:"target_only"`
	Different     int `json:"different"`
	DuplicateKeys int `json:"duplicate_keys"`
}

func (r *Result) Summary() Summary {
	return Summary{
		Same:          len(r.Same),
		SourceOnly:    len(r.SourceOnly),
		TargetOnly:    len(r.TargetOnly),
		Different:     len(r.Different),
		DuplicateKeys: r.DuplicateKeys,
	}
}

// Compare indexes targetRows by the ordered joinKeys tuple, then classifies
// every source row against it. Rows are treated as immutable; returned
// different-partition rows are fresh copies.
func Compare(sourceRows, targetRows []dataset.Record, joinKeys []string) (*Result, error) {
	if len(joinKeys) == 0 {
		return nil, &NoCommonKeysError{}
	}

	res := &Result{}
	index := make(map[string]dataset.Record, len(targetRows))
	matched := make(map[string]bool, len(targetRows))
	targetOrder := make([]string, 0, len(targetRows))
	for _, row := range targetRows {
		key := tupleKey(row, joinKeys)
		if _, dup := index[key]; dup {
			res.DuplicateKeys++
			continue
		}
		index[key] = row
		targetOrder = append(targetOrder, key)
	}

	for _, src := range sourceRows {
		key := tupleKey(src, joinKeys)
		tgt, ok := index[key]
		if !ok {
			res.SourceOnly = append(res.SourceOnly, src)
			continue
		}
		matched[key] = true
		diff := divergentColumns(src, tgt, joinKeys)
		if len(diff) == 0 {
			res.Same = append(res.Same, src)
			continue
		}
		row := src.Clone()
		for _, col := range diff {
			row[ShadowPrefix+col] = tgt[col]
		}
		res.Different = append(res.Different, row)
	}

	for _, key := range targetOrder {
		if !matched[key] {
			res.TargetOnly = append(res.TargetOnly, index[key])
		}
	}
	return res, nil
}

// tupleKey string-coerces the join key values in order.
func tupleKey(row dataset.Record, joinKeys []string) string {
	parts := make([]string, len(joinKeys))
	for i, k := range joinKeys {
		parts[i] = numeric.String(row[k])
	}
	return strings.Join(parts, keySeparator)
}

// divergentColumns returns the shared non-key columns whose string-coerced
// values differ, sorted for deterministic shadow-field order.
func divergentColumns(src, tgt dataset.Record, joinKeys []string) []string {
	keySet := make(map[string]bool, len(joinKeys))
	for _, k := range joinKeys {
		keySet[k] = true
	}
	var diff []string
	for col, sv := range src {
		if keySet[col] {
			continue
		}
		tv, shared := tgt[col]
		if !shared {
			continue
		}
		if numeric.String(sv) != numeric.String(tv) {
			diff = append(diff, col)
		}
	}
	sort.Strings(diff)
	return diff
}

package formula

import (
	"sort"
	"strconv"
	"strings"
)

// Substitute rewrites a formula written in terms of human-readable field
// labels into the arithmetic expression Evaluate consumes. Labels are replaced
// longest-first so a short label that is a substring of a longer one
// ("total" vs "total2") cannot corrupt the longer token. Labels without a
// value in values resolve to 0.
func Substitute(expr string, labels []string, values map[string]float64) string {
	ordered := append([]string(nil), labels...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	for _, label := range ordered {
		if label == "" {
			continue
		}
		v := values[label]
		lit := strconv.FormatFloat(v, 'f', -1, 64)
		if v < 0 {
			// Keep "- x" from fusing with a preceding operator.
			lit = "(0" + lit + ")"
		}
		expr = strings.ReplaceAll(expr, label, lit)
	}
	return expr
}

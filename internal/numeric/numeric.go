package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse attempts to read v as a float64. Strings are trimmed before parsing;
// a trailing '%' is stripped (the percent sign is display sugar, the stored
// magnitude is unchanged). Returns false for nil, empty strings, and anything
// that does not parse.
func Parse(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(x), "%"))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// String renders a cell value for display and keyed lookups. nil renders as
// the empty string; floats drop trailing zeros so 3.0 and "3" compare equal.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Compare orders two cell values the way a spreadsheet would: numerically when
// both sides parse as numbers, lexicographically otherwise. Returns -1, 0, 1.
func Compare(a, b any) int {
	af, aok := Parse(a)
	bf, bok := Parse(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(String(a), String(b))
}

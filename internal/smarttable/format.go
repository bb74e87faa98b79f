package smarttable

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/tablekit-cli/internal/numeric"
)

// FormatCell renders a cell for display. The same routine backs the live view
// and the flat-file export so the two can never disagree. Precision and
// percent apply to number and calculated fields; other kinds pass through as
// strings.
func FormatCell(f FieldDefinition, value any) string {
	if f.Type != FieldNumber && f.Type != FieldCalculated {
		return numeric.String(value)
	}
	v, ok := numeric.Parse(value)
	if !ok {
		return numeric.String(value)
	}
	s := strconv.FormatFloat(v, 'f', f.Precision, 64)
	if f.ShowPercent {
		s += "%"
	}
	return s
}

// CellStyle computes the conditional-format style token for a cell: "high" or
// "low" for threshold formats, "gradient:<ratio>" (ratio in [0,1], two
// decimals) for gradient formats, "" when no format applies.
func CellStyle(f FieldDefinition, value any) string {
	if f.Format == nil {
		return ""
	}
	v, ok := numeric.Parse(value)
	if !ok {
		return ""
	}
	switch f.Format.Type {
	case "threshold":
		if f.Format.High != nil && v >= *f.Format.High {
			return "high"
		}
		if f.Format.Low != nil && v <= *f.Format.Low {
			return "low"
		}
	case "gradient":
		span := f.Format.Max - f.Format.Min
		if span == 0 {
			return ""
		}
		ratio := (v - f.Format.Min) / span
		if ratio < 0 {
			ratio = 0
		} else if ratio > 1 {
			ratio = 1
		}
		return fmt.Sprintf("gradient:%.2f", ratio)
	}
	return ""
}

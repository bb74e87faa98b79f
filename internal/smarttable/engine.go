package smarttable

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/KaramelBytes/tablekit-cli/internal/formula"
	"github.com/KaramelBytes/tablekit-cli/internal/numeric"
)

// Recompute re-evaluates every calculated field of one row and returns a new
// row; the input is never mutated. A formula that fails to parse or produces
// a non-finite value leaves its cell nil (rendered blank) and the rest of the
// row untouched.
func Recompute(row dataset.Record, fields []FieldDefinition) dataset.Record {
	labels := substitutionLabels(fields)
	values := make(map[string]float64, len(labels))
	for _, f := range fields {
		if f.Type == FieldCalculated {
			continue
		}
		// Missing and non-numeric source values coerce to 0 so one blank
		// cell cannot poison a whole formula with NaN.
		if v, ok := numeric.Parse(row[f.Name]); ok {
			values[f.Label] = v
		}
	}

	out := row.Clone()
	for _, f := range fields {
		if f.Type != FieldCalculated {
			continue
		}
		expr := formula.Substitute(f.Formula, labels, values)
		v, err := formula.Evaluate(expr)
		if err != nil {
			out[f.Name] = nil
			continue
		}
		out[f.Name] = v
	}
	return out
}

// ProjectOptions selects the read-time view of a table.
type ProjectOptions struct {
	Sort       string // field name; empty keeps insertion order
	Descending bool
	Search     string // case-insensitive substring across all fields
	Page       int    // 1-based; 0 means first page
	PageSize   int    // 0 means no pagination
}

// Highlight is a matched-substring span on a visible cell, reported instead
// of mutating the underlying text. Row indexes into View.Rows.
type Highlight struct {
	Row   int
	Field string
	Start int
	End   int
}

// View is a pure projection of a table: a page of rows after filtering and
// sorting, the pre-pagination match count, highlight spans for the visible
// page, and totals per numeric column over the whole filtered set.
type View struct {
	Rows       []dataset.Record
	TotalCount int
	Highlights []Highlight
	// Totals sums number and calculated columns across the filtered set,
	// not the full table, so the summary row always matches what the user
	// currently sees.
	Totals map[string]float64
}

// Project builds a read-time view. Rows are recomputed first so calculated
// cells are current, then filtered, sorted, totaled, and paginated. Stored
// rows are never mutated.
func Project(rows []dataset.Record, fields []FieldDefinition, opts ProjectOptions) (*View, error) {
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}

	working := make([]dataset.Record, 0, len(rows))
	for _, row := range rows {
		working = append(working, Recompute(row, fields))
	}
	if opts.Search != "" {
		working = filterRows(working, fields, opts.Search)
	}
	if opts.Sort != "" {
		sortField := opts.Sort
		desc := opts.Descending
		sort.SliceStable(working, func(i, j int) bool {
			c := numeric.Compare(working[i][sortField], working[j][sortField])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	view := &View{TotalCount: len(working), Totals: totals(working, fields)}

	page := working
	if opts.PageSize > 0 {
		p := opts.Page
		if p < 1 {
			p = 1
		}
		start := (p - 1) * opts.PageSize
		if start > len(working) {
			start = len(working)
		}
		end := start + opts.PageSize
		if end > len(working) {
			end = len(working)
		}
		page = working[start:end]
	}
	view.Rows = page
	if opts.Search != "" {
		view.Highlights = highlights(page, fields, opts.Search)
	}
	return view, nil
}

// filterRows keeps rows where any field's string representation contains the
// query, case-insensitively.
func filterRows(rows []dataset.Record, fields []FieldDefinition, query string) []dataset.Record {
	q := strings.ToLower(query)
	out := rows[:0:0]
	for _, row := range rows {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(numeric.String(row[f.Name])), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// highlights locates every match on the visible page as byte-offset spans
// into the cell's string representation.
func highlights(page []dataset.Record, fields []FieldDefinition, query string) []Highlight {
	q := strings.ToLower(query)
	var spans []Highlight
	for i, row := range page {
		for _, f := range fields {
			cell := numeric.String(row[f.Name])
			lower := strings.ToLower(cell)
			from := 0
			for {
				idx := strings.Index(lower[from:], q)
				if idx < 0 {
					break
				}
				start := from + idx
				spans = append(spans, Highlight{Row: i, Field: f.Name, Start: start, End: start + len(q)})
				from = start + len(q)
			}
		}
	}
	return spans
}

// totals sums every number and calculated column over the filtered rows,
// skipping cells that fail numeric parse, rounded to two decimals.
func totals(rows []dataset.Record, fields []FieldDefinition) map[string]float64 {
	out := make(map[string]float64)
	for _, f := range fields {
		if f.Type != FieldNumber && f.Type != FieldCalculated {
			continue
		}
		var sum float64
		for _, row := range rows {
			if v, ok := numeric.Parse(row[f.Name]); ok {
				sum += v
			}
		}
		out[f.Name] = numeric.Round2(sum)
	}
	return out
}

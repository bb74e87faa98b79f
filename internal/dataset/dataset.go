package dataset

// Record is one row: an ordered mapping from column name to a scalar value
// (string, number, or nil). Column order lives on the owning Dataset; identity
// within a dataset is positional, not by value.
type Record map[string]any

// Clone returns a shallow copy of the record. Values are scalars, so a shallow
// copy is a full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset is an immutable snapshot of rows fetched from a data source.
// Invariant: every row's key set is a subset of Columns.
type Dataset struct {
	ID      string
	Name    string
	Columns []string
	Rows    []Record
}

// Query selects a window of rows from a Source.
type Query struct {
	Page       int // 1-based; 0 means first page
	PageSize   int // 0 means all rows
	Sort       string
	Descending bool
}

// Page is one window of fetched rows plus the dataset's column order and the
// unpaginated total.
type Page struct {
	Rows    []Record
	Columns []string
	Total   int
}

// Source is the data-access collaborator the analysis core reads from. The
// core itself never fetches; callers fetch first and hand the rows in.
type Source interface {
	// FetchRows returns a paginated window of a dataset's rows.
	FetchRows(id string, q Query) (*Page, error)
	// FetchSample returns up to limit rows without pagination, for
	// aggregation and statistics over a bounded sample.
	FetchSample(id string, limit int) ([]Record, error)
}

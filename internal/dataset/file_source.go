package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/tablekit-cli/internal/numeric"
	"github.com/google/uuid"
)

// FileSource serves datasets loaded from delimited files on disk. It is the
// file-backed implementation of Source used by the CLI; each loaded file gets
// a fresh dataset id.
type FileSource struct {
	byID map[string]*Dataset
}

func NewFileSource() *FileSource {
	return &FileSource{byID: make(map[string]*Dataset)}
}

// Load reads a CSV/TSV file, registers it, and returns the dataset. The first
// row is the header; missing trailing cells are padded with nil. Delimiter 0
// auto-detects from the file extension.
func (s *FileSource) Load(path string, delimiter rune) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if delimiter == 0 {
		delimiter = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset %s is empty", filepath.Base(path))
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	ds := &Dataset{
		ID:      uuid.NewString(),
		Name:    filepath.Base(path),
		Columns: columns,
	}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(ds.Rows)+1, err)
		}
		row := make(Record, len(columns))
		for i, col := range columns {
			if i < len(rec) && strings.TrimSpace(rec[i]) != "" {
				row[col] = rec[i]
			} else {
				row[col] = nil
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	s.byID[ds.ID] = ds
	return ds, nil
}

// Get returns a previously loaded dataset.
func (s *FileSource) Get(id string) (*Dataset, bool) {
	ds, ok := s.byID[id]
	return ds, ok
}

// FetchRows implements Source with optional sorting and pagination. Rows are
// copied so callers never share storage with the registry.
func (s *FileSource) FetchRows(id string, q Query) (*Page, error) {
	ds, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q", id)
	}
	rows := make([]Record, len(ds.Rows))
	for i, r := range ds.Rows {
		rows[i] = r.Clone()
	}
	if q.Sort != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			c := numeric.Compare(rows[i][q.Sort], rows[j][q.Sort])
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	total := len(rows)
	if q.PageSize > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * q.PageSize
		if start > total {
			start = total
		}
		end := start + q.PageSize
		if end > total {
			end = total
		}
		rows = rows[start:end]
	}
	return &Page{Rows: rows, Columns: append([]string(nil), ds.Columns...), Total: total}, nil
}

// FetchSample implements Source: the first limit rows, unpaginated. limit <= 0
// means all rows.
func (s *FileSource) FetchSample(id string, limit int) ([]Record, error) {
	ds, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q", id)
	}
	n := len(ds.Rows)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		out[i] = ds.Rows[i].Clone()
	}
	return out, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

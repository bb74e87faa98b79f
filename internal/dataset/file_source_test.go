package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const fixtureCSV = `id,name,score
1,ada,90
2,grace,85
3,alan,
4,edsger,70
`

func TestLoadCSV(t *testing.T) {
	src := NewFileSource()
	ds, err := src.Load(writeFixture(t, "people.csv", fixtureCSV), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.ID == "" {
		t.Fatal("dataset id not assigned")
	}
	if len(ds.Columns) != 3 || ds.Columns[0] != "id" {
		t.Fatalf("columns = %v", ds.Columns)
	}
	if len(ds.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(ds.Rows))
	}
	// Empty cells load as nil, and every row key is a known column.
	if ds.Rows[2]["score"] != nil {
		t.Errorf("empty cell = %v, want nil", ds.Rows[2]["score"])
	}
	for i, row := range ds.Rows {
		if len(row) != len(ds.Columns) {
			t.Errorf("row %d has %d keys, want %d", i, len(row), len(ds.Columns))
		}
	}
}

func TestLoadTSVSniffsDelimiter(t *testing.T) {
	src := NewFileSource()
	ds, err := src.Load(writeFixture(t, "data.tsv", "a\tb\n1\t2\n"), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Columns) != 2 || ds.Rows[0]["b"] != "2" {
		t.Fatalf("tsv not parsed: %v %v", ds.Columns, ds.Rows)
	}
}

func TestFetchRowsSortAndPage(t *testing.T) {
	src := NewFileSource()
	ds, err := src.Load(writeFixture(t, "people.csv", fixtureCSV), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	page, err := src.FetchRows(ds.ID, Query{Sort: "score", Descending: true, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if page.Total != 4 {
		t.Errorf("total = %d, want 4", page.Total)
	}
	if len(page.Rows) != 2 || page.Rows[0]["name"] != "ada" || page.Rows[1]["name"] != "grace" {
		t.Fatalf("sorted page = %v", page.Rows)
	}

	last, err := src.FetchRows(ds.ID, Query{PageSize: 3, Page: 2})
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if len(last.Rows) != 1 {
		t.Fatalf("last page = %v", last.Rows)
	}
}

func TestFetchRowsCopiesRows(t *testing.T) {
	src := NewFileSource()
	ds, err := src.Load(writeFixture(t, "people.csv", fixtureCSV), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	page, err := src.FetchRows(ds.ID, Query{})
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	page.Rows[0]["name"] = "mutated"
	again, _ := src.FetchRows(ds.ID, Query{})
	if again.Rows[0]["name"] == "mutated" {
		t.Fatal("fetched rows share storage with the registry")
	}
}

func TestFetchSampleLimit(t *testing.T) {
	src := NewFileSource()
	ds, err := src.Load(writeFixture(t, "people.csv", fixtureCSV), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rows, err := src.FetchSample(ds.ID, 2)
	if err != nil {
		t.Fatalf("FetchSample: %v", err)
	}
	if len(rows) != 2 || rows[0]["name"] != "ada" {
		t.Fatalf("sample = %v", rows)
	}
	all, err := src.FetchSample(ds.ID, 0)
	if err != nil {
		t.Fatalf("FetchSample: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("unlimited sample = %d rows, want 4", len(all))
	}
}

func TestFetchUnknownDataset(t *testing.T) {
	src := NewFileSource()
	if _, err := src.FetchRows("nope", Query{}); err == nil {
		t.Fatal("want unknown-dataset error")
	}
	if _, err := src.FetchSample("nope", 1); err == nil {
		t.Fatal("want unknown-dataset error")
	}
}

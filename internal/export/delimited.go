// Package export writes analysis artifacts as delimited flat files: a header
// row, one record per line, quote-escaped fields, and a leading byte-order
// marker so spreadsheet tools detect the encoding.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"

	"github.com/KaramelBytes/tablekit-cli/internal/compare"
	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/KaramelBytes/tablekit-cli/internal/numeric"
	"github.com/KaramelBytes/tablekit-cli/internal/utils"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteDelimited writes columns as the header row followed by one line per
// record. Fields containing the delimiter or quote character are
// quote-escaped by encoding/csv.
func WriteDelimited(w io.Writer, columns []string, rows []dataset.Record, delimiter rune) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	line := make([]string, len(columns))
	for i, row := range rows {
		for j, col := range columns {
			line[j] = numeric.String(row[col])
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDelimitedFile renders to a buffer and writes the file atomically.
func WriteDelimitedFile(path string, columns []string, rows []dataset.Record, delimiter rune) error {
	var buf bytes.Buffer
	if err := WriteDelimited(&buf, columns, rows, delimiter); err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure export dir: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// ComparisonFiles writes one file per non-empty partition of a comparison
// result into dir and returns the paths written. The different partition's
// header carries the shadow columns after the source columns.
func ComparisonFiles(dir string, columns []string, res *compare.Result, delimiter rune) ([]string, error) {
	parts := []struct {
		name string
		rows []dataset.Record
		cols []string
	}{
		{"same", res.Same, columns},
		{"source_only", res.SourceOnly, columns},
		{"target_only", res.TargetOnly, columns},
		{"different", res.Different, diffColumns(columns, res.Different)},
	}
	var written []string
	for _, p := range parts {
		if len(p.rows) == 0 {
			continue
		}
		path := filepath.Join(dir, p.name+".csv")
		if err := WriteDelimitedFile(path, p.cols, p.rows, delimiter); err != nil {
			return written, fmt.Errorf("export %s: %w", p.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// diffColumns appends, in column order, a shadow column for every source
// column that diverged in at least one row.
func diffColumns(columns []string, rows []dataset.Record) []string {
	out := append([]string(nil), columns...)
	for _, col := range columns {
		shadow := compare.ShadowPrefix + col
		for _, row := range rows {
			if _, ok := row[shadow]; ok {
				out = append(out, shadow)
				break
			}
		}
	}
	return out
}

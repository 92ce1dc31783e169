// Package source reads the tabular files the catalog and user tables are loaded from.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pranavi39/pawfect/internal/domain"
)

// Table is a header plus string rows read from a tabular file.
type Table struct {
	name    string
	header  []string
	rows    [][]string
	columns map[string]int
}

func newTable(name string, header []string, rows [][]string) *Table {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeColumn(h)
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	return &Table{name: name, header: header, rows: rows, columns: columns}
}

// Name returns the file name the table was read from.
func (t *Table) Name() string { return t.name }

// Header returns the column names as found in the file.
func (t *Table) Header() []string { return t.header }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns data row i. Short rows are padded to the header width.
func (t *Table) Row(i int) []string {
	row := t.rows[i]
	if len(row) < len(t.header) {
		padded := make([]string, len(t.header))
		copy(padded, row)
		return padded
	}
	return row
}

// Column finds the first of names present in the header, ignoring case and surrounding space.
func (t *Table) Column(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := t.columns[normalizeColumn(n)]; ok {
			return i, true
		}
	}
	return -1, false
}

// Require resolves one column per alias group or returns a domain.MissingColumnsError.
// Each group lists accepted names for one required column; the first name is reported when missing.
func (t *Table) Require(groups ...[]string) ([]int, error) {
	idx := make([]int, len(groups))
	var missing []string
	for g, names := range groups {
		i, ok := t.Column(names...)
		if !ok {
			missing = append(missing, names[0])
		}
		idx[g] = i
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingColumns(t.name, missing)
	}
	return idx, nil
}

// Open reads a .csv or .parquet file.
// Every failure wraps domain.ErrDataUnavailable.
func Open(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".parquet":
		return ReadParquet(path)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrDataUnavailable, path)
	}
}

func normalizeColumn(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

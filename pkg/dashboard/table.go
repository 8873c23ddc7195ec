// Package dashboard consolidates many workbooks into one master file with
// a pivot summary, a chart image, and a best-effort PDF export.
package dashboard

import "errors"

// ErrNoData indicates consolidation found no readable rows.
var ErrNoData = errors.New("no data found")

// SourceColumn is the column every consolidated row is tagged with.
const SourceColumn = "SourceFile"

// Table is a rectangular row set with an ordered outer union of columns.
// Rows may omit columns; missing values read as empty strings.
type Table struct {
	Columns []string
	Rows    []map[string]string

	seen map[string]bool
}

// EnsureColumn appends name to the column list if it is not present.
func (t *Table) EnsureColumn(name string) {
	if t.seen == nil {
		t.seen = make(map[string]bool)
	}
	if !t.seen[name] {
		t.seen[name] = true
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a row, extending the column union with any new keys. Map
// iteration order is not deterministic, so callers that care about column
// order should call EnsureColumn beforehand.
func (t *Table) Append(row map[string]string) {
	for name := range row {
		t.EnsureColumn(name)
	}
	t.Rows = append(t.Rows, row)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// Get returns the named value of row i, or "" when absent.
func (t *Table) Get(i int, column string) string {
	return t.Rows[i][column]
}

package table

import (
	"fmt"
	"strings"

	"churnprep/domain/core"
)

// Table is an in-memory tabular dataset: a header row plus string-valued
// data rows. Values stay strings until the pipeline coerces them; this keeps
// loading format-agnostic and makes the dirty-column rule explicit.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New creates an empty table with the given header row.
func New(headers []string) *Table {
	h := make([]string, len(headers))
	copy(h, headers)
	return &Table{Headers: h}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Headers)
}

// Append adds a data row, enforcing the header width.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.Headers) {
		return core.NewLoadError("", fmt.Errorf("row has %d values, header has %d", len(row), len(t.Headers)))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, core.NewSchemaError(name, "column not found")
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// SetColumn replaces the named column's values in place.
func (t *Table) SetColumn(name string, values []string) error {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return core.NewSchemaError(name, "column not found")
	}
	if len(values) != len(t.Rows) {
		return core.NewSchemaError(name, fmt.Sprintf("got %d values for %d rows", len(values), len(t.Rows)))
	}
	for i := range t.Rows {
		t.Rows[i][idx] = values[i]
	}
	return nil
}

// DropColumn returns a new table without the named column. The receiver is
// not modified.
func (t *Table) DropColumn(name string) (*Table, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, core.NewSchemaError(name, "column not found")
	}
	headers := make([]string, 0, len(t.Headers)-1)
	headers = append(headers, t.Headers[:idx]...)
	headers = append(headers, t.Headers[idx+1:]...)

	out := New(headers)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		nr := make([]string, 0, len(row)-1)
		nr = append(nr, row[:idx]...)
		nr = append(nr, row[idx+1:]...)
		out.Rows[i] = nr
	}
	return out, nil
}

// SelectRows returns a new table containing the given rows in the given
// order. Row slices are shared with the receiver, not copied.
func (t *Table) SelectRows(indices []int) *Table {
	out := New(t.Headers)
	out.Rows = make([][]string, len(indices))
	for i, idx := range indices {
		out.Rows[i] = t.Rows[idx]
	}
	return out
}

// SplitLabel separates the table into a feature table (all columns except
// the label) and the label vector. Label values must be the literals "0"
// or "1"; anything else is a schema violation.
func (t *Table) SplitLabel(labelColumn string) (*Table, []int, error) {
	raw, err := t.Column(labelColumn)
	if err != nil {
		return nil, nil, err
	}

	labels := make([]int, len(raw))
	for i, v := range raw {
		switch strings.TrimSpace(v) {
		case "0":
			labels[i] = 0
		case "1":
			labels[i] = 1
		default:
			return nil, nil, core.NewSchemaError(labelColumn,
				fmt.Sprintf("row %d: label %q is not one of \"0\", \"1\"", i, v))
		}
	}

	features, err := t.DropColumn(labelColumn)
	if err != nil {
		return nil, nil, err
	}
	return features, labels, nil
}

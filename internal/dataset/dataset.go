// Package dataset holds the in-memory representation of a loaded table.
//
// A Dataset is read once, kept read-only and passed explicitly to the
// query package; nothing in this module keeps rows in package state.
package dataset

// Row maps a column name to the raw cell text as it was read from the file.
type Row map[string]string

// Dataset is an ordered set of rows plus the header order of the source file.
type Dataset struct {
	Headers []string
	Rows    []Row
}

// New creates a dataset from headers and rows.
func New(headers []string, rows []Row) *Dataset {
	if rows == nil {
		rows = make([]Row, 0)
	}
	return &Dataset{Headers: headers, Rows: rows}
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// HasColumn reports whether the column is one of the dataset headers.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Derive returns a dataset with the same headers and the given rows.
func (d *Dataset) Derive(rows []Row) *Dataset {
	return New(d.Headers, rows)
}

// Records flattens rows into header order. Absent cells become "".
func (d *Dataset) Records() [][]string {
	records := make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		record := make([]string, len(d.Headers))
		for i, h := range d.Headers {
			record[i] = row[h]
		}
		records = append(records, record)
	}
	return records
}

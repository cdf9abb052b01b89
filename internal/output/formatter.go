// Package output renders tables of text cells.
//
// Supported formats:
//   - table: bordered grid for the console (default)
//   - csv: comma-separated values with a header row
//   - json / jsonl: one JSON object per row
//
// Example usage:
//
//	formatter, err := output.New("table", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(output.FromDataset(ds)); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/csvcat/internal/dataset"
)

// Formatter writes a table to the writer it was created with.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(t *Table) error
}

// Table is an ordered grid of text cells. Every row has one cell per header.
type Table struct {
	Headers []string
	Rows    [][]string
}

// FromDataset lays out the dataset rows in header order.
func FromDataset(ds *dataset.Dataset) *Table {
	return &Table{Headers: ds.Headers, Rows: ds.Records()}
}

// ErrUnsupportedFormat is returned by New for an unknown format name
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists the names accepted by New
var Formats = []string{"table", "csv", "json", "jsonl"}

// New returns the formatter registered under name.
func New(name string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "table":
		return NewTableFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w '%s' (supported: %s)", ErrUnsupportedFormat, name, strings.Join(Formats, ", "))
	}
}

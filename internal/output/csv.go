package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// Format writes the header row followed by every data row
func (c *CSVFormatter) Format(t *Table) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(t.Headers) > 0 {
		if err := csvWriter.Write(sanitizeRecord(t.Headers)); err != nil {
			return err
		}
	}

	for _, row := range t.Rows {
		if err := csvWriter.Write(sanitizeRecord(row)); err != nil {
			return err
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

func sanitizeRecord(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = sanitizeCell(cell)
	}
	return out
}

// sanitizeCell guards against CSV injection by prefixing cells that a
// spreadsheet would evaluate as a formula. Numbers such as -5.99 are left
// untouched.
func sanitizeCell(val string) string {
	if len(val) == 0 {
		return val
	}

	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		if _, err := strconv.ParseFloat(val, 64); err == nil {
			return val
		}
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}

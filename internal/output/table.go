package output

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
)

// EmptyMessage is printed by the table formatter instead of an empty grid
const EmptyMessage = "No data to display."

// truncationTail marks a cell shortened by MaxWidth
const truncationTail = "…"

// TableFormatter outputs a bordered grid with a line between rows
type TableFormatter struct {
	writer io.Writer

	// MaxWidth truncates cells wider than this many terminal columns.
	// Zero disables truncation.
	MaxWidth int
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// Format renders the table, or EmptyMessage when it has no rows
func (f *TableFormatter) Format(t *Table) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(f.writer, EmptyMessage)
		return err
	}

	tw := tablewriter.NewWriter(f.writer)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetRowLine(true)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	tw.SetHeader(f.fit(t.Headers))
	for _, row := range t.Rows {
		tw.Append(f.fit(row))
	}

	tw.Render()
	return nil
}

// fit truncates cells to MaxWidth display columns
func (f *TableFormatter) fit(cells []string) []string {
	if f.MaxWidth <= 0 {
		return cells
	}
	out := make([]string, len(cells))
	for i, c := range cells {
		if runewidth.StringWidth(c) > f.MaxWidth {
			c = runewidth.Truncate(c, f.MaxWidth, truncationTail)
		}
		out[i] = c
	}
	return out
}

package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/csvcat/internal/dataset"
)

const utf8BOM = "\ufeff"

// ReadCSV decodes CSV from r. The first record holds the column names.
//
// Rows shorter than the header leave the trailing columns absent; extra
// fields beyond the header are dropped. An empty input yields an empty
// dataset with no headers.
func ReadCSV(r io.Reader, opts Options) (*dataset.Dataset, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	if opts.Delimiter != 0 {
		csvReader.Comma = opts.Delimiter
	}

	headers, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dataset.New(nil, nil), nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}

	rows := make([]dataset.Row, 0)
	for {
		record, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := make(dataset.Row, len(headers))
		for i, h := range headers {
			if i >= len(record) {
				break
			}
			row[h] = record[i]
		}
		rows = append(rows, row)
	}

	return dataset.New(headers, rows), nil
}

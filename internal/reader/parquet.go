package reader

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/csvcat/internal/dataset"
)

// rowBatchSize is the number of rows requested per ReadRows call
const rowBatchSize = 128

// readParquet reads every row of a parquet file.
//
// Headers are the leaf column paths joined with '.', which for flat files
// are the plain field names. Null values leave the cell absent. Repeated
// values are joined with ','.
func readParquet(input io.ReaderAt, size int64) (*dataset.Dataset, error) {
	pqFile, err := parquet.OpenFile(input, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	paths := pqFile.Schema().Columns()
	headers := make([]string, len(paths))
	for i, path := range paths {
		headers[i] = strings.Join(path, ".")
	}

	reader := parquet.NewReader(pqFile)
	defer reader.Close()

	rows := make([]dataset.Row, 0, pqFile.NumRows())
	buf := make([]parquet.Row, rowBatchSize)
	for {
		n, err := reader.ReadRows(buf)
		for _, values := range buf[:n] {
			rows = append(rows, toRow(headers, values))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return dataset.New(headers, rows), nil
}

// toRow maps the leaf values of one parquet row onto column names
func toRow(headers []string, values parquet.Row) dataset.Row {
	row := make(dataset.Row, len(headers))
	for _, v := range values {
		col := v.Column()
		if col < 0 || col >= len(headers) || v.IsNull() {
			continue
		}
		cell := formatValue(v)
		name := headers[col]
		if prev, ok := row[name]; ok {
			cell = prev + "," + cell
		}
		row[name] = cell
	}
	return row
}

// formatValue converts a parquet value to cell text
func formatValue(v parquet.Value) string {
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return fmt.Sprintf("%v", v)
	}
}

package reader

import (
	"math"
	"strconv"
	"strings"

	"github.com/vegasq/csvcat/internal/dataset"
)

// Column types reported by Describe
const (
	TypeNumber = "NUMBER"
	TypeText   = "TEXT"
	TypeMixed  = "MIXED"
	TypeEmpty  = "EMPTY"
)

// ColumnInfo describes a single column of a loaded dataset.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Values   int    `json:"values"`
	Numeric  int    `json:"numeric"`
	Distinct int    `json:"distinct"`
}

// Describe infers column information from the cell values.
//
// A column is NUMBER when every non-empty cell parses as a number, TEXT when
// none do, MIXED otherwise and EMPTY when it has no values at all. Columns
// are returned in header order.
func Describe(ds *dataset.Dataset) []ColumnInfo {
	infos := make([]ColumnInfo, 0, len(ds.Headers))
	for _, h := range ds.Headers {
		infos = append(infos, describeColumn(ds, h))
	}
	return infos
}

func describeColumn(ds *dataset.Dataset, name string) ColumnInfo {
	info := ColumnInfo{Name: name}
	seen := make(map[string]struct{})

	for _, row := range ds.Rows {
		cell, ok := row[name]
		if !ok {
			continue
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		info.Values++
		seen[cell] = struct{}{}
		if isNumeric(cell) {
			info.Numeric++
		}
	}
	info.Distinct = len(seen)
	info.Type = columnType(info)

	return info
}

func columnType(info ColumnInfo) string {
	switch {
	case info.Values == 0:
		return TypeEmpty
	case info.Numeric == info.Values:
		return TypeNumber
	case info.Numeric == 0:
		return TypeText
	default:
		return TypeMixed
	}
}

func isNumeric(cell string) bool {
	f, err := strconv.ParseFloat(cell, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/vegasq/csvcat/internal/dataset"
)

// Evaluate reports whether the row satisfies the condition.
//
// A row without the column, or with a cell that is not a number when the
// condition value is, never matches.
func (c *Condition) Evaluate(row dataset.Row) bool {
	cell, exists := row[c.Column]
	if !exists {
		return false
	}

	switch v := c.Value.(type) {
	case Number:
		n, ok := parseNumber(cell)
		if !ok {
			return false
		}
		return compareNumbers(n, c.Operator, float64(v))
	case Text:
		return compareStrings(cell, c.Operator, string(v))
	default:
		return false
	}
}

// parseNumber parses a cell as float64, ignoring surrounding whitespace.
// NaN and infinities, including values that overflow float64, are not
// usable numbers for comparison or aggregation.
func parseNumber(cell string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// compareNumbers compares two numbers
func compareNumbers(left float64, operator Operator, right float64) bool {
	switch operator {
	case GreaterThan:
		return left > right
	case LessThan:
		return left < right
	case Equals:
		return left == right
	default:
		return false
	}
}

// compareStrings compares two strings (case-sensitive)
func compareStrings(left string, operator Operator, right string) bool {
	switch operator {
	case GreaterThan:
		return left > right
	case LessThan:
		return left < right
	case Equals:
		return left == right
	default:
		return false
	}
}

// ApplyFilter returns the rows matching the condition in their original order.
func ApplyFilter(ds *dataset.Dataset, cond *Condition) *dataset.Dataset {
	if cond == nil {
		return ds
	}

	filtered := make([]dataset.Row, 0)
	for _, row := range ds.Rows {
		if cond.Evaluate(row) {
			filtered = append(filtered, row)
		}
	}

	return ds.Derive(filtered)
}

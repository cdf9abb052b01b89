package query

import (
	"strconv"
	"strings"

	"github.com/vegasq/csvcat/internal/dataset"
)

// Operation is an aggregate function over a single column.
type Operation int

const (
	OpAvg Operation = iota
	OpMin
	OpMax
)

// Operation names as accepted on the command line
var supportedOperations = []string{"avg", "min", "max"}

// String returns the command line name of the operation
func (o Operation) String() string {
	switch o {
	case OpAvg:
		return "avg"
	case OpMin:
		return "min"
	case OpMax:
		return "max"
	default:
		return "unknown"
	}
}

// Label returns the human readable operation name used in result tables.
func (o Operation) Label() string {
	switch o {
	case OpAvg:
		return "Average"
	case OpMin:
		return "Minimum"
	case OpMax:
		return "Maximum"
	default:
		return "Unknown"
	}
}

// ParseOperation resolves an operation name (case-insensitive).
func ParseOperation(name string) (Operation, error) {
	switch strings.ToLower(name) {
	case "avg":
		return OpAvg, nil
	case "min":
		return OpMin, nil
	case "max":
		return OpMax, nil
	default:
		return 0, &UnsupportedOperationError{Operation: name, Supported: supportedOperations}
	}
}

// AggregateSpec names the column to reduce and how.
type AggregateSpec struct {
	Column    string
	Operation Operation
}

// Result is the outcome of an aggregation.
type Result struct {
	Operation Operation
	Column    string
	Value     float64

	// Count is the number of numeric cells reduced, Skipped the cells that
	// were absent or not numeric.
	Count   int
	Skipped int
}

// FormattedValue renders the value with exactly two decimals
func (r *Result) FormattedValue() string {
	return strconv.FormatFloat(r.Value, 'f', 2, 64)
}

// ParseAggregate parses "column=operation", e.g. "price=avg".
func ParseAggregate(input string) (*AggregateSpec, error) {
	if err := ValidateExpression(input); err != nil {
		return nil, &ParseError{Input: input, Reason: err.Error(), Err: err}
	}

	p := NewParser(input, Tokenize(input))
	column, opTok, rawOp, err := p.parseTriple()
	if err != nil {
		return nil, p.fail("expected column=operation", ErrMissingOperator)
	}
	if opTok.Type != TokenEqual {
		return nil, p.fail("expected '=' between column and operation, got "+strconv.Quote(opTok.Value), ErrMissingOperator)
	}

	column = strings.TrimSpace(column)
	if err := ValidateColumnName(column); err != nil {
		return nil, p.fail(err.Error(), err)
	}

	name := strings.TrimSpace(rawOp)
	if name == "" {
		return nil, p.fail("missing operation (use one of avg, min, max)", ErrEmptyValue)
	}

	op, err := ParseOperation(name)
	if err != nil {
		return nil, err
	}

	return &AggregateSpec{Column: column, Operation: op}, nil
}

// Aggregate reduces one column of the dataset.
//
// Cells that are absent or do not parse as numbers are skipped. When no
// numeric value is left an *EmptyColumnError is returned.
func Aggregate(ds *dataset.Dataset, spec *AggregateSpec) (*Result, error) {
	var (
		count    int
		skipped  int
		sum      float64
		min, max float64
	)

	for _, row := range ds.Rows {
		cell, exists := row[spec.Column]
		if !exists {
			skipped++
			continue
		}
		v, ok := parseNumber(cell)
		if !ok {
			skipped++
			continue
		}

		if count == 0 || v < min {
			min = v
		}
		if count == 0 || v > max {
			max = v
		}
		sum += v
		count++
	}

	if count == 0 {
		return nil, &EmptyColumnError{Column: spec.Column}
	}

	result := &Result{
		Operation: spec.Operation,
		Column:    spec.Column,
		Count:     count,
		Skipped:   skipped,
	}

	switch spec.Operation {
	case OpAvg:
		result.Value = mean(sum, count, min, max)
	case OpMin:
		result.Value = min
	case OpMax:
		result.Value = max
	default:
		return nil, &UnsupportedOperationError{Operation: spec.Operation.String(), Supported: supportedOperations}
	}

	return result, nil
}

// mean divides sum by count, kept within [min, max] since float rounding
// can push sum/count slightly past either bound.
func mean(sum float64, count int, min, max float64) float64 {
	avg := sum / float64(count)
	if avg < min {
		return min
	}
	if avg > max {
		return max
	}
	return avg
}

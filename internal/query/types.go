// Package query provides condition parsing, row filtering and column
// aggregation for CSV data.
//
// A condition has the form column<op>value where op is one of '>', '<' or
// '='. The value is typed once at parse time: a finite number is compared
// numerically, everything else (including NaN and Inf) is compared as text.
//
// Example usage:
//
//	cond, err := ParseCondition("price>500")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	filtered := ApplyFilter(ds, cond)
//
//	spec, err := ParseAggregate("price=avg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := Aggregate(ds, spec)
package query

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Operators
	TokenGreater TokenType = iota // >
	TokenLess                     // <
	TokenEqual                    // =

	// Operands
	TokenColumn
	TokenValue

	// Special
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenGreater:
		return ">"
	case TokenLess:
		return "<"
	case TokenEqual:
		return "="
	case TokenColumn:
		return "column"
	case TokenValue:
		return "value"
	case TokenEOF:
		return "end of input"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Operator is a comparison operator in a condition.
type Operator int

const (
	GreaterThan Operator = iota
	LessThan
	Equals
)

// String returns the operator symbol
func (o Operator) String() string {
	switch o {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case Equals:
		return "="
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// operatorFor maps an operator token to its Operator.
func operatorFor(t TokenType) (Operator, bool) {
	switch t {
	case TokenGreater:
		return GreaterThan, true
	case TokenLess:
		return LessThan, true
	case TokenEqual:
		return Equals, true
	default:
		return 0, false
	}
}

// Value is the typed right-hand side of a condition: either Number or Text.
type Value interface {
	isValue()
	String() string
}

// Number is a condition value compared numerically.
type Number float64

// Text is a condition value compared as a case-sensitive string.
type Text string

func (Number) isValue() {}
func (Text) isValue()   {}

func (n Number) String() string { return fmt.Sprintf("%g", float64(n)) }
func (s Text) String() string   { return string(s) }

// Condition is a parsed column/operator/value triple.
type Condition struct {
	Column   string
	Operator Operator
	Value    Value

	// Raw is the value as the user typed it, after trimming.
	Raw string
}

// String renders the condition as "column op value".
func (c *Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Column, c.Operator, c.Raw)
}

package query

import (
	"fmt"
	"strings"
)

// ParseError is returned when a condition or aggregate string is malformed.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid expression %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedOperationError is returned for an aggregate operation other than
// avg, min or max, or a comparison operator other than '>', '<' or '='.
type UnsupportedOperationError struct {
	Operation string
	Supported []string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %q (supported: %s)", e.Operation, strings.Join(e.Supported, ", "))
}

// EmptyColumnError is returned when an aggregation finds no numeric values.
type EmptyColumnError struct {
	Column string
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("no numeric values found in column %q", e.Column)
}

package query

import (
	"errors"
	"fmt"
)

// Validation limits for user-supplied expressions
const (
	// MaxExpressionLength is the maximum allowed condition or aggregate string length (64KB)
	MaxExpressionLength = 64 * 1024

	// MaxColumnNameLength is the maximum length for a column name
	MaxColumnNameLength = 256
)

var (
	// ErrExpressionTooLong is returned when an expression exceeds MaxExpressionLength
	ErrExpressionTooLong = errors.New("expression too long")

	// ErrColumnNameTooLong is returned when column name is too long
	ErrColumnNameTooLong = errors.New("column name too long")

	// ErrEmptyColumnName is returned when the column part of an expression is blank
	ErrEmptyColumnName = errors.New("column name cannot be empty")

	// ErrEmptyValue is returned when the right-hand side of an expression is blank
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrMissingOperator is returned when no comparison operator is present
	ErrMissingOperator = errors.New("missing operator")
)

// ValidateExpression checks the raw expression length
func ValidateExpression(input string) error {
	if len(input) > MaxExpressionLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrExpressionTooLong, len(input), MaxExpressionLength)
	}
	return nil
}

// ValidateColumnName validates column name presence and length
func ValidateColumnName(name string) error {
	if name == "" {
		return ErrEmptyColumnName
	}
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}

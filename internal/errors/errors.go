// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrUnparseableSource indicates document content that cannot be read as
	// rows or text (binary data, invalid encoding).
	ErrUnparseableSource = errors.New("unparseable source")

	// ErrEmptySource indicates a document with no rows or no text.
	ErrEmptySource = errors.New("empty source")

	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file kind no adapter can read.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// IsUnparseable reports whether err is or wraps ErrUnparseableSource.
func IsUnparseable(err error) bool {
	return errors.Is(err, ErrUnparseableSource)
}

// IsUnsupportedFormat reports whether err is or wraps ErrUnsupportedFormat.
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ExtractionError describes a recovered failure while mining one source.
// Sheet is empty for free-text sources.
type ExtractionError struct {
	Source string
	Sheet  string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("extraction error (source=%s, sheet=%s): %v", e.Source, e.Sheet, e.Err)
	}
	return fmt.Sprintf("extraction error (source=%s): %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new extraction error.
func NewExtractionError(source, sheet string, err error) *ExtractionError {
	return &ExtractionError{
		Source: source,
		Sheet:  sheet,
		Err:    err,
	}
}

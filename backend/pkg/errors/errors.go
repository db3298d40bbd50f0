package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeSource represents listing file errors
	ErrorTypeSource ErrorType = "source"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Source Errors

// ErrMissingSource is returned when a required listing file is absent from the input directory
type ErrMissingSource struct {
	*BaseError
	Dir  string
	Name string
}

func NewMissingSource(dir, name string) *ErrMissingSource {
	return &ErrMissingSource{
		BaseError: NewBaseError(ErrorTypeSource, fmt.Sprintf("input directory %s must contain %s", dir, name), nil),
		Dir:       dir,
		Name:      name,
	}
}

// ErrSourceRead is returned when reading a listing stream fails part way
type ErrSourceRead struct {
	*BaseError
	Source string
}

func NewSourceRead(source string, err error) *ErrSourceRead {
	return &ErrSourceRead{
		BaseError: NewBaseError(ErrorTypeSource, fmt.Sprintf("failed to read %s", source), err),
		Source:    source,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphBatchFailed is returned when writing or committing a batch fails.
// Batches before Batch are committed; Committed counts the persons they hold.
type ErrGraphBatchFailed struct {
	*BaseError
	Batch     int
	Committed int
}

func NewGraphBatchFailed(batch, committed int, err error) *ErrGraphBatchFailed {
	return &ErrGraphBatchFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("batch %d failed after %d committed persons", batch, committed), err),
		Batch:     batch,
		Committed: committed,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}
	if typed, ok := err.(interface{ errorType() ErrorType }); ok {
		if typed.errorType() == errType {
			return true
		}
	}
	// Check wrapped errors
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		return IsErrorType(wrapped.Unwrap(), errType)
	}
	return false
}

func (e *BaseError) errorType() ErrorType {
	return e.Type
}

// IsRetryable checks if an error is retryable. Only graph failures are: the
// caller can rerun the load, committed batches are found rather than recreated.
func IsRetryable(err error) bool {
	return IsErrorType(err, ErrorTypeGraph)
}

package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// Import and reconciliation treat it as a benign signal on retries.
var ErrDuplicate = errors.New("resource already exists")

// ErrEmptyImport indicates a statement import with no lines to ingest.
var ErrEmptyImport = errors.New("statement contains no importable lines")

// ErrInvalidRange indicates a period whose start is after its end.
var ErrInvalidRange = errors.New("period start must not be after period end")

// ErrNoStatementData indicates that no statement overlaps a requested reconciliation period.
var ErrNoStatementData = errors.New("no statement data for the requested period")

// ErrPersistence indicates a non-duplicate failure of the underlying store.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

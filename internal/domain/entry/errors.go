package entry

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound indicates the entry doesn't exist.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrProjectNotFound indicates the project was never created.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDuplicateID indicates a caller-supplied identifier already exists.
	ErrDuplicateID = errors.New("entry id already exists")
	// ErrInvalidInput indicates invalid input for entry operations.
	ErrInvalidInput = errors.New("invalid entry input")
)

// ValidationError reports which field violated which bound, so callers can
// self-correct. It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

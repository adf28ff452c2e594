package mcp

import (
	"errors"
	"fmt"

	"github.com/sabren/worklog/internal/domain/entry"
	"github.com/sabren/worklog/internal/domain/project"
)

// APIError is the structured failure payload returned to tool callers.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to stable tool error codes. Unknown errors
// map to a generic storage failure so no caller sees raw internals.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var validation *entry.ValidationError
	if errors.As(err, &validation) {
		return &APIError{
			Code:         "VALIDATION_FAILED",
			Message:      validation.Error(),
			RecoveryHint: "Fix the named field and retry",
		}
	}

	switch {
	case errors.Is(err, entry.ErrInvalidInput), errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "VALIDATION_FAILED", Message: err.Error()}
	case errors.Is(err, entry.ErrEntryNotFound):
		return &APIError{Code: "ENTRY_NOT_FOUND", Message: "entry not found", RecoveryHint: "Check the project_id and id"}
	case errors.Is(err, entry.ErrProjectNotFound), errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Projects are created by the first log_work call"}
	case errors.Is(err, entry.ErrDuplicateID):
		return &APIError{Code: "DUPLICATE_ID", Message: "entry id already exists", RecoveryHint: "Omit id to have one generated"}
	default:
		return &APIError{Code: "STORAGE_ERROR", Message: err.Error()}
	}
}

package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/ccsearch/internal/domain/activity"
	"github.com/rpggio/ccsearch/internal/domain/project"
	"github.com/rpggio/ccsearch/internal/domain/search"
)

// Error codes reported by tools.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeUnavailable  = "UNAVAILABLE"
	CodeInternal     = "INTERNAL"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	Err          error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// MapError maps domain errors to MCP error codes. Errors with no mapping
// come back as INTERNAL.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		return &APIError{Code: CodeInvalidInput, Message: "query must not be empty", RecoveryHint: "Pass a non-blank query", Err: err}
	case errors.Is(err, search.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: CodeInvalidInput, Message: err.Error(), Err: err}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: CodeNotFound, Message: err.Error(), RecoveryHint: "Call list_projects for valid names", Err: err}
	case errors.Is(err, project.ErrRecordNotFound):
		return &APIError{Code: CodeNotFound, Message: err.Error(), RecoveryHint: "Check the id or reload_projects", Err: err}
	case errors.Is(err, project.ErrRootNotFound):
		return &APIError{Code: CodeUnavailable, Message: err.Error(), RecoveryHint: "Check the configured projects root", Err: err}
	default:
		return &APIError{Code: CodeInternal, Message: err.Error(), Err: err}
	}
}

func invalidInput(format string, args ...any) *APIError {
	return &APIError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/pixelarium/backend/internal/repository"
	"github.com/pixelarium/backend/internal/utils"
)

// Error kinds. Every *Error unwraps to exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// Error is a domain failure with a translation key for the client message.
type Error struct {
	Kind    error
	Key     string
	Message string
	Details []utils.ValidationError
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(key, format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Key: key, Message: fmt.Sprintf(format, args...)}
}

func invalidInput(key, format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidInput, Key: key, Message: fmt.Sprintf(format, args...)}
}

func conflict(key, format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Key: key, Message: fmt.Sprintf(format, args...)}
}

// validationFailed converts a validator error into an InvalidInput error carrying field details.
func validationFailed(err error) error {
	return &Error{
		Kind:    ErrInvalidInput,
		Message: err.Error(),
		Details: utils.GetValidationErrors(err),
	}
}

// lookupError maps a repository miss to NotFound and wraps anything else.
func lookupError(err error, key, what string, id interface{}) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(key, "%s %v not found", what, id)
	}
	return fmt.Errorf("database error: %w", err)
}

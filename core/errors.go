package core

import "github.com/pkg/errors"

var (
	// ErrSessionExpired signals a 401-class upstream response; a higher-level
	// collaborator reacts to it (global logout), not this engine.
	ErrSessionExpired = errors.New("session expired")

	// ErrStaleRequest signals a response that resolved after its originating
	// selection changed; callers discard the result and keep current state.
	ErrStaleRequest = errors.New("stale request: selection changed while in flight")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

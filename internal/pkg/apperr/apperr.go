package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("invalid argument")
	// ErrUnauthenticated marks a request without a resolvable caller identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden marks a resolvable caller that does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks an id that does not resolve or a scoped write that touched no rows.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation reported by the store.
	ErrConflict = errors.New("conflict")
)

// Error attaches a user-facing message to one of the sentinel kinds.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "application error"
}

// Is lets errors.Is match the sentinel kind.
func (e *Error) Is(target error) bool {
	return e != nil && e.Kind == target
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap keeps the cause for logging while exposing message to the caller.
func Wrap(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error { return New(ErrValidation, message) }

func NotFound(message string) *Error { return New(ErrNotFound, message) }

func Forbidden(message string) *Error { return New(ErrForbidden, message) }

// Status maps an error to its HTTP status code. Unknown errors are internal.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text safe to show to the caller.
func PublicMessage(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	for _, kind := range []error{ErrValidation, ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return err.Error()
}

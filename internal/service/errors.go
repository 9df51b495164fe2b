// Package service holds the business rules of CinePedia: input validation,
// the ownership policy for movies and comments, and the use cases the HTTP
// layer calls.  Services speak in repository sentinels plus the error
// types below; they never return driver errors verbatim.
package service

import (
	"errors"

	"github.com/iliyamo/cinepedia/internal/repository"
)

// ErrInvalidCredentials is returned by Login for an unknown email and for a
// wrong password alike, so callers cannot tell which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError carries a single user-facing message describing the
// first rule an input broke.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// ForbiddenError is a policy denial.  It matches repository.ErrForbidden
// under errors.Is and carries the reason shown to the user.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

func (e *ForbiddenError) Unwrap() error { return repository.ErrForbidden }

// Outcome classifies err for metrics and logs.
func Outcome(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ve):
		return "invalid"
	case errors.Is(err, ErrInvalidCredentials):
		return "bad_credentials"
	case errors.Is(err, repository.ErrForbidden):
		return "forbidden"
	case errors.Is(err, repository.ErrConflict):
		return "conflict"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// ConflictError reports that a unique value (email, movie title) is taken.
// It matches repository.ErrConflict under errors.Is.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func (e *ConflictError) Unwrap() error { return repository.ErrConflict }

package shared

import "errors"

var (
	// ErrNotFound indicates a referenced entity or relation is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness constraint violation.
	ErrConflict = errors.New("conflict")
	// ErrForbidden indicates the permission resolver denied the caller.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput indicates a malformed action or identifier.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSelfDeletion indicates a user attempted to delete their own account.
	ErrSelfDeletion = errors.New("self deletion rejected")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing or stale caller identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// Package services contains the domain logic of the forum and the
// machine catalog: account management, thread/reply operations, catalog
// CRUD, and the authorization policy every mutation passes through.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a genuinely missing resource and an
	// ownership denial, so callers cannot probe for existence.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a non-admin attempts a catalog
	// mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is returned for both an unknown username
	// and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateUser is returned when a registration collides with an
	// existing username.
	ErrDuplicateUser = errors.New("username already taken")
)

// ValidationError reports rejected user input. It is recovered locally
// by handlers and re-shown to the user.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

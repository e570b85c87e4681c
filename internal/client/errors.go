package client

import (
	"errors"
	"sort"
	"strings"
)

// Error taxonomy of the client. Callers compare with errors.Is.
var (
	// ErrAuthentication wraps every sign-in/sign-up failure.
	ErrAuthentication = errors.New("authentication failed")
	// ErrPersistence wraps failures of the document store on add/remove.
	ErrPersistence = errors.New("could not save changes")
	// ErrValidation is matched by *ValidationError.
	ErrValidation = errors.New("card is incomplete")
	// ErrWrongPassword is the rejection of an unlock attempt.
	ErrWrongPassword = errors.New("incorrect password, try again")
	ErrNotSignedIn   = errors.New("not signed in")
	ErrCardNotFound  = errors.New("card not found")
)

// Errors reported by the identity provider and the document store adapters.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrNotFound           = errors.New("record not found")
)

// ValidationError lists the form fields that block a submission.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)
	return ErrValidation.Error() + ": " + strings.Join(fields, ", ")
}

// Is makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

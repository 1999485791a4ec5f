package app

import "errors"

var (
	// ErrUnauthenticated is returned when an operation requiring a caller
	// identity receives none.
	ErrUnauthenticated = errors.New("Unauthenticated")

	// ErrUnauthorized is returned when the caller does not own the referenced
	// store. A store owned by somebody else and a store that does not exist
	// produce the same signal so owner identity is never leaked.
	ErrUnauthorized = errors.New("Unauthorized")

	// ErrNotFound is returned when a referenced entity is absent on a read path.
	ErrNotFound = errors.New("not found")
)

// ValidationError names the missing or malformed payload field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is a payload validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Package apperr holds the error kinds shared by all use cases.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when an entity exists but belongs to another user.
	ErrForbidden = errors.New("not authorized to access this resource")
)

// ValidationError is a caller-fixable input error.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

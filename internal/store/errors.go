package store

import (
	"errors"

	sqlite "modernc.org/sqlite"
)

// Sentinel errors handlers map to HTTP status codes.
var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint or a precondition was violated.
	ErrConflict = errors.New("conflict")

	// ErrInsufficientStock means an allocation exceeds available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition means a state change was requested out of order.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// SQLite extended result codes for constraint violations.
const (
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
// The schema's unique indexes are the source of truth for uniqueness; there
// are no pre-insert existence checks to race against.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqliteConstraintUnique || se.Code() == sqliteConstraintPrimaryKey
	}
	return false
}

// mapConstraint converts unique-constraint errors to ErrConflict, leaving
// other errors untouched.
func mapConstraint(err error) error {
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

package books

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound means no row exists for the requested isbn.
	ErrNotFound = errors.New("book not found")
	// ErrConflict means a create hit an isbn that already exists.
	ErrConflict = errors.New("isbn already exists")
)

// ValidationError carries every schema violation found in a payload. It is
// always raised before any storage access.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

package todolist

import (
	"errors"
	"fmt"
)

// ErrMalformedStorage is matched by every decode failure.
var ErrMalformedStorage = errors.New("malformed storage")

// ParseError describes where a JSON or CSV document failed to decode.
type ParseError struct {
	Format string // "json" or "csv"
	Line   int    // 1-based CSV line, 0 when unknown
	Path   string // JSON path, empty at the document root
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("malformed %s line %d: %s", e.Format, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("malformed %s %s: %s", e.Format, e.Path, e.Err)
	default:
		return fmt.Sprintf("malformed %s: %s", e.Format, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformedStorage so callers need not know the concrete type.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedStorage
}

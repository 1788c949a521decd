package jsonpath

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath means a path expression could not be parsed.
	ErrInvalidPath = errors.New("invalid path expression")

	// ErrParse means a response body was not well-formed JSON.
	ErrParse = errors.New("malformed JSON")

	// ErrFieldNotFound means a key was absent from an object, or a field was requested
	// from a value that is not an object.
	ErrFieldNotFound = errors.New("field not found")

	// ErrIndexOutOfRange means an index was beyond the bounds of a list, or was applied to
	// a value that is not a list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotScalar means resolution ended on an object or a list where a single string,
	// number, boolean, or null was required.
	ErrNotScalar = errors.New("not a scalar value")

	// ErrIncomparable means two scalars of different kinds were compared for ordering.
	ErrIncomparable = errors.New("values are not comparable")
)

// PathError describes a failure to resolve a path expression against a document.
type PathError struct {
	// Path is the full expression as the caller wrote it.
	Path string
	// Segment is the part of the expression at which resolution failed.
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("path %q: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("path %q at %q: %s", e.Path, e.Segment, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

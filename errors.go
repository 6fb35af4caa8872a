package dialectcsv

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by parse calls, wrapped in a [ParseError].
var (
	// ErrFieldTooLong is returned when a field exceeds the configured
	// maximum field length.
	ErrFieldTooLong = errors.New("field exceeds maximum length")

	// ErrBufferLimit is returned when growing the field buffer would
	// exceed the absolute capacity cap.
	ErrBufferLimit = errors.New("field buffer exceeds capacity limit")

	// ErrQuote is returned by strict dialects for malformed quoting: an
	// unexpected byte after a closing quote, or an unterminated quoted
	// field at end of input.
	ErrQuote = errors.New("extraneous or missing \" in quoted-field")

	// ErrEmbeddedNewline is returned by strict dialects for a raw
	// newline inside an unquoted field.
	ErrEmbeddedNewline = errors.New("newline in unquoted field")

	// ErrNulByte is returned when the input contains a raw NUL byte,
	// which is reserved internally as the line terminator marker.
	ErrNulByte = errors.New("NUL byte in input")

	// ErrFieldCount is returned by [Reader] when a record has the wrong
	// number of fields.
	ErrFieldCount = errors.New("wrong number of fields")
)

// ParseError reports the first failure of a parse call with its
// coordinates in the input. Later errors in the same call are suppressed.
type ParseError struct {
	Line  int   // 1-based line number where the error occurred
	Field int   // 0-based field number where the error occurred
	Err   error // Underlying error
}

// Error returns a formatted error message with location information.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d, field %d: %v", e.Line, e.Field, e.Err)
}

// Unwrap returns the underlying error for use with [errors.Is] and [errors.As].
func (e *ParseError) Unwrap() error {
	return e.Err
}

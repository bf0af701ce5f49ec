// Package encoder implements Pass 2: turning a sized, label-bound
// parser.Program into a byte stream, a set of forward-reference patches,
// and listing lines.
package encoder

import (
	"fmt"

	"github.com/corewood/z80asm/parser"
)

// EncodingError carries the source line alongside an encoding failure
// message, so callers can format a diagnostic without re-deriving
// context from the statement.
type EncodingError struct {
	Line    int
	Message string
	Wrapped error
}

func (e *EncodingError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *EncodingError) Unwrap() error { return e.Wrapped }

func NewEncodingError(stmt *parser.Statement, message string) *EncodingError {
	return &EncodingError{Line: stmt.Line, Message: message}
}

func WrapEncodingError(stmt *parser.Statement, err error) error {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*EncodingError); ok {
		return ee
	}
	return &EncodingError{Line: stmt.Line, Message: "failed to encode instruction", Wrapped: err}
}

package template

import (
	"errors"
	"fmt"
)

// UnresolvedError reports a placeholder with no value in the context.
type UnresolvedError struct {
	Name string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved placeholder {%s}", e.Name)
}

// SyntaxError reports malformed braces in a template line.
type SyntaxError struct {
	Line   string
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax at offset %d: %s in %q", e.Offset, e.Reason, e.Line)
}

// EncodingError reports a substituted value that cannot be written in
// the output encoding (UTF-8).
type EncodingError struct {
	Name  string
	Value string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("value of {%s} is not valid UTF-8: %q", e.Name, e.Value)
}

// IsUnresolved reports whether err is or wraps an UnresolvedError.
func IsUnresolved(err error) bool {
	var e *UnresolvedError
	return errors.As(err, &e)
}

// IsSyntax reports whether err is or wraps a SyntaxError.
func IsSyntax(err error) bool {
	var e *SyntaxError
	return errors.As(err, &e)
}

// IsEncoding reports whether err is or wraps an EncodingError.
func IsEncoding(err error) bool {
	var e *EncodingError
	return errors.As(err, &e)
}

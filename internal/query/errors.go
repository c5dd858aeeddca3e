package query

import (
	"errors"
	"fmt"
)

// Error attaches a source location to any compilation or execution error
// so the runner can point at the offending query text.
type Error struct {
	Span LocInfo
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a source span.
func NewError(span LocInfo, err error) *Error {
	return &Error{Span: span, Err: err}
}

// Errorf wraps a formatted message with a source span.
func Errorf(span LocInfo, format string, args ...any) *Error {
	return &Error{Span: span, Err: fmt.Errorf(format, args...)}
}

// SpanOf extracts the source span of an error produced during compilation
// or execution; ok is false when the error carries none.
func SpanOf(err error) (LocInfo, bool) {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Span, true
	}
	return LocInfo{}, false
}

// Parse error kinds. Each is reported wrapped in an *Error carrying the
// offending span.
var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnrecognizedToken = errors.New("unrecognized token")
	ErrExtraToken        = errors.New("extra token")
	ErrUnexpectedEOF     = errors.New("unexpected end of query")
	ErrDuplicatedKey     = errors.New("duplicated key in from clause")
)

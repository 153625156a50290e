// Package smpserr defines the small closed set of error types the SMPS
// parsers raise. Fatal errors (NotFoundError, ValueError, SyntaxError)
// abort parsing immediately; warnings are handled separately by each
// parser's logger (see the parser package) and never appear here.
package smpserr

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// NotFoundError reports that a parser's location did not resolve to an
// existing file under any of its accepted extensions.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no file found for location %q", e.Location)
}

// NewNotFoundError builds a NotFoundError for the given location.
func NewNotFoundError(location string) error {
	return &NotFoundError{Location: location}
}

// ValueError reports a value that is syntactically fine but semantically
// not understood: an unknown bound type, an unknown distribution family,
// an unknown modification keyword, or a scenario probability outside
// (0, 1).
type ValueError struct {
	msg string
	err error
}

func (e *ValueError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err)
	}
	return e.msg
}

func (e *ValueError) Unwrap() error { return e.err }

// NewValueError builds a ValueError with the given message.
func NewValueError(format string, args ...interface{}) error {
	return &ValueError{msg: fmt.Sprintf(format, args...)}
}

// WrapValueError wraps an underlying error (typically a strconv or field
// validation failure) as a ValueError, retaining its cause via Unwrap.
func WrapValueError(err error, format string, args ...interface{}) error {
	return &ValueError{msg: fmt.Sprintf(format, args...), err: errors.WithStack(err)}
}

// SyntaxError reports malformed input that the grammar itself rejects:
// an unparseable numeric literal, or a structural element required by
// the current section that the data line does not carry.
type SyntaxError struct {
	msg string
	err error
}

func (e *SyntaxError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err)
	}
	return e.msg
}

func (e *SyntaxError) Unwrap() error { return e.err }

// NewSyntaxError builds a SyntaxError with the given message.
func NewSyntaxError(format string, args ...interface{}) error {
	return &SyntaxError{msg: fmt.Sprintf(format, args...)}
}

// WrapSyntaxError wraps an underlying error as a SyntaxError.
func WrapSyntaxError(err error, format string, args ...interface{}) error {
	return &SyntaxError{msg: fmt.Sprintf(format, args...), err: errors.WithStack(err)}
}

// RequireNumber returns value unchanged unless it is NaN - the sentinel
// dataline's field parser returns for a blank or unparseable numeric
// field (see dataline's parseField) - in which case it raises a
// SyntaxError built from format/args.
func RequireNumber(value float64, format string, args ...interface{}) (float64, error) {
	if math.IsNaN(value) {
		return 0, NewSyntaxError(format, args...)
	}
	return value, nil
}

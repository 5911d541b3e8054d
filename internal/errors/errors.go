// Package errors provides standardized error handling for the basejump
// application. It defines common error kinds, constants, and helper functions
// for consistent error creation, wrapping, and handling across the
// conversion, transcoding, and evaluation layers.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Numeral error kinds
	InvalidDigit
	InvalidCharacter
	InvalidBase
	// Evaluation error kinds
	ParseError
	TrailingInput
	DivisionByZero
	ResultOutOfRange
	// Configuration error kinds
	InvalidConfig
)

// CalcError is the base error type for all calculator errors
type CalcError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *CalcError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *CalcError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *CalcError) Kind() ErrorKind {
	return e.kind
}

// New creates a new error with a message and kind
func New(kind ErrorKind, msg string) error {
	return &CalcError{
		msg:  msg,
		kind: kind,
	}
}

// Newf creates a new error with a formatted message and kind
func Newf(kind ErrorKind, format string, args ...interface{}) error {
	return &CalcError{
		msg:  fmt.Sprintf(format, args...),
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context, preserving the
// kind of the wrapped error.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &CalcError{
		msg:  msg,
		err:  err,
		kind: kindOf(err),
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &CalcError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: kindOf(err),
	}
}

func kindOf(err error) ErrorKind {
	var calcErr *CalcError
	if errors.As(err, &calcErr) {
		return calcErr.Kind()
	}
	return Unknown
}

// IsKind checks whether any error in the chain carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	var calcErr *CalcError
	if errors.As(err, &calcErr) {
		return calcErr.Kind() == kind
	}
	return false
}

// IsInvalidDigit checks if the error is an invalid digit error
func IsInvalidDigit(err error) bool {
	return IsKind(err, InvalidDigit)
}

// IsInvalidCharacter checks if the error is an invalid character error
func IsInvalidCharacter(err error) bool {
	return IsKind(err, InvalidCharacter)
}

// IsInvalidBase checks if the error is an invalid base error
func IsInvalidBase(err error) bool {
	return IsKind(err, InvalidBase)
}

// IsParseError checks if the error is a parse error
func IsParseError(err error) bool {
	return IsKind(err, ParseError)
}

// IsTrailingInput checks if the error is a trailing input error
func IsTrailingInput(err error) bool {
	return IsKind(err, TrailingInput)
}

// IsDivisionByZero checks if the error is a division by zero error
func IsDivisionByZero(err error) bool {
	return IsKind(err, DivisionByZero)
}

// IsResultOutOfRange checks if the error is a result out of range error
func IsResultOutOfRange(err error) bool {
	return IsKind(err, ResultOutOfRange)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	return IsKind(err, InvalidConfig)
}

// Package errors defines the coded errors returned while loading inputs and
// configuration for a compatibility check.
//
// The audit in package compat never fails; everything around it can. Report
// loaders, the config reader and the fetcher return an [*Error] whose [Code]
// tells the CLI what went wrong without parsing messages:
//
//	results, err := io.LoadFile("deps.txt", io.FormatAuto, fallback)
//	if errors.Is(err, errors.ErrCodeFileNotFound) {
//	    // the report was never generated
//	}
//
// Codes are grouped by prefix: INVALID_* for rejected input, FILE_NOT_FOUND
// for missing reports, NETWORK_ERROR and TIMEOUT for remote inputs, and
// UNSUPPORTED for unknown formats.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"     // unparsable report or JSON
	ErrCodeInvalidCoordinate  Code = "INVALID_COORDINATE" // bad group:name:version
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"     // composecheck.toml or settings
	ErrCodeInvalidProjectPath Code = "INVALID_PROJECT_PATH"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a Code, a message and the error that caused it, if any.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message: cause".
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err without code prefixes. Messages of nested causes
// are kept, so "FILE_NOT_FOUND: open a.txt: no such file" reads
// "open a.txt: no such file".
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}

package htmlmd

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"  // validation failed
	EINTERNAL = "internal" // internal error
)

// Error represents an application error. Errors carry a machine-readable
// code and a human-readable message. Validation errors additionally name
// the offending option field.
type Error struct {
	// Machine-readable error code.
	Code string

	// Option field that failed validation, when Code is EINVALID.
	Field string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise; the message is for operators and logs.
func (e *Error) Error() string {
	return fmt.Sprintf("htmlmd error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorField unwraps an application error and returns the offending
// option field, if any.
func ErrorField(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Package errors provides coded errors shared by the orgchart CLI and HTTP API.
//
// Every [Error] carries a machine-readable [Code]. Codes fall into a small
// number of classes (see [Class]) that callers use to decide how to react:
// the server turns them into status codes, the CLI into exit messages.
//
//	err := errors.New(errors.ErrCodeDuplicateEmployee, "duplicate employee id %q", id)
//	if errors.ClassOf(err) == errors.ClassInvalid {
//	    // reject the request
//	}
//
// Wrap keeps the cause reachable through errors.Is and errors.As:
//
//	err := errors.Wrap(errors.ErrCodeNetwork, cause, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidEmployee   Code = "INVALID_EMPLOYEE"
	ErrCodeDuplicateEmployee Code = "DUPLICATE_EMPLOYEE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidViewport   Code = "INVALID_VIEWPORT"
	ErrCodeInvalidQuestion   Code = "INVALID_QUESTION"
	ErrCodeUnknownQuestion   Code = "UNKNOWN_QUESTION_KIND"
	ErrCodeInvalidAnswer     Code = "INVALID_ANSWER"

	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeEmployeeNotFound Code = "EMPLOYEE_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Class groups codes by who is at fault.
type Class int

const (
	ClassInternal    Class = iota // bug or unexpected state
	ClassInvalid                  // caller sent bad input
	ClassNotFound                 // the referenced employee or file does not exist
	ClassUpstream                 // the directory backend failed or is throttling
	ClassDenied                   // the directory backend refused our credentials
	ClassUnsupported              // the feature is unavailable in this build or host
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:      ClassInvalid,
	ErrCodeInvalidEmployee:   ClassInvalid,
	ErrCodeDuplicateEmployee: ClassInvalid,
	ErrCodeInvalidFormat:     ClassInvalid,
	ErrCodeInvalidViewport:   ClassInvalid,
	ErrCodeInvalidQuestion:   ClassInvalid,
	ErrCodeUnknownQuestion:   ClassInvalid,
	ErrCodeInvalidAnswer:     ClassInvalid,

	ErrCodeNotFound:         ClassNotFound,
	ErrCodeEmployeeNotFound: ClassNotFound,
	ErrCodeFileNotFound:     ClassNotFound,

	ErrCodeNetwork:     ClassUpstream,
	ErrCodeTimeout:     ClassUpstream,
	ErrCodeRateLimited: ClassUpstream,

	ErrCodeUnauthorized: ClassDenied,
	ErrCodeUnsupported:  ClassUnsupported,
}

// Class returns the class of c. Unknown codes are internal.
func (c Code) Class() Class { return classes[c] }

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// as finds the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// ClassOf returns the class of err's code. Uncoded errors are internal.
func ClassOf(err error) Class { return GetCode(err).Class() }

// UserMessage returns the message without the code prefix and cause, or
// err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err is the caller's fault.
func IsInvalid(err error) bool { return ClassOf(err) == ClassInvalid }

// IsNotFound reports whether err names something that does not exist.
func IsNotFound(err error) bool { return ClassOf(err) == ClassNotFound }

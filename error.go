package pagemd

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// Fetch failures.
	ETIMEOUT = "timeout"
	EHTTP    = "http"
	ENETWORK = "network"

	// EASSET marks a single image that could not be fetched or saved.
	EASSET = "asset"

	// EWRITE marks an output document that could not be persisted.
	EWRITE = "write"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pagemd error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
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

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// IsFetchFailure reports whether err is a timeout, HTTP or network failure.
func IsFetchFailure(err error) bool {
	switch ErrorCode(err) {
	case ETIMEOUT, EHTTP, ENETWORK:
		return true
	}
	return false
}

// IsTransient reports whether a fetch failure is worth retrying.
// HTTP status failures are considered final.
func IsTransient(err error) bool {
	switch ErrorCode(err) {
	case ETIMEOUT, ENETWORK:
		return true
	}
	return false
}

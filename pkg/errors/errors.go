// Package errors provides the coded, structured error type used across
// agentlink. Codes are stable so tests and the CLI can branch on them
// without matching message text.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Manifest errors
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Link errors. Every code in this group is a LinkError.
	ErrLinkSourceMissing ErrorCode = "LINK_SOURCE_MISSING"
	ErrLinkParent        ErrorCode = "LINK_PARENT"
	ErrLinkRemove        ErrorCode = "LINK_REMOVE"
	ErrLinkCreate        ErrorCode = "LINK_CREATE"

	// Install errors. Every code in this group is an InstallError.
	ErrInstallSourceDirMissing ErrorCode = "INSTALL_SOURCE_DIR_MISSING"
	ErrInstallTargetDir        ErrorCode = "INSTALL_TARGET_DIR"
	ErrInstallUnknownTarget    ErrorCode = "INSTALL_UNKNOWN_TARGET"
	ErrInstallLocked           ErrorCode = "INSTALL_LOCKED"
	ErrInstallEnumerate        ErrorCode = "INSTALL_ENUMERATE"
	ErrInstallSourceAccess     ErrorCode = "INSTALL_SOURCE_ACCESS"
	ErrInstallIncomplete       ErrorCode = "INSTALL_INCOMPLETE"

	// Cleanup errors
	ErrSweepFailed ErrorCode = "SWEEP_FAILED"

	// Post-install action errors
	ErrMergeFailed ErrorCode = "MERGE_FAILED"
)

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil
func GetErrorDetails(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// IsLinkError reports whether err is a failure to create or replace a link.
func IsLinkError(err error) bool {
	return hasCodePrefix(err, "LINK_")
}

// IsInstallError reports whether err is a structural install failure.
func IsInstallError(err error) bool {
	return hasCodePrefix(err, "INSTALL_")
}

func hasCodePrefix(err error, prefix string) bool {
	var e *Error
	if errors.As(err, &e) {
		return strings.HasPrefix(string(e.Code), prefix)
	}
	return false
}

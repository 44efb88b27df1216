package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Operator interaction
	ErrOperatorCancelled ErrorCode = "OPERATOR_CANCELLED"

	// Manifest errors
	ErrManifestUnavailable ErrorCode = "MANIFEST_UNAVAILABLE"
	ErrManifestInvalid     ErrorCode = "MANIFEST_INVALID"

	// Installation errors
	ErrPrerequisiteInstallFailed ErrorCode = "PREREQUISITE_INSTALL_FAILED"
	ErrRecordInstallFailed       ErrorCode = "RECORD_INSTALL_FAILED"
	ErrSubprocessFailed          ErrorCode = "SUBPROCESS_FAILED"

	// System configuration errors
	ErrUserCreate ErrorCode = "USER_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// fatalCodes abort a bootstrap run immediately.
var fatalCodes = map[ErrorCode]bool{
	ErrOperatorCancelled:         true,
	ErrManifestUnavailable:       true,
	ErrManifestInvalid:           true,
	ErrPrerequisiteInstallFailed: true,
	ErrUserCreate:                true,
}

// RigupError represents a structured error with code and details
type RigupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RigupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RigupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RigupError) Is(target error) bool {
	var targetErr *RigupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RigupError with the given code and message
func New(code ErrorCode, message string) *RigupError {
	return &RigupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RigupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RigupError {
	return &RigupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RigupError
func Wrap(err error, code ErrorCode, message string) *RigupError {
	if err == nil {
		return nil
	}
	return &RigupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RigupError {
	if err == nil {
		return nil
	}
	return &RigupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RigupError) WithDetail(key string, value interface{}) *RigupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rigupErr *RigupError
	if errors.As(err, &rigupErr) {
		return rigupErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any RigupError in the chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, &RigupError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RigupError
func GetErrorCode(err error) ErrorCode {
	var rigupErr *RigupError
	if errors.As(err, &rigupErr) {
		return rigupErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RigupError
func GetErrorDetails(err error) map[string]interface{} {
	var rigupErr *RigupError
	if errors.As(err, &rigupErr) {
		return rigupErr.Details
	}
	return nil
}

// IsFatal reports whether the outermost RigupError in err carries a code
// that must abort the run. A fatal code wrapped by a non-fatal one, such as
// a malformed manifest line reported as RECORD_INSTALL_FAILED, does not count.
func IsFatal(err error) bool {
	return fatalCodes[GetErrorCode(err)]
}

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
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Recipe errors
	ErrInvalidRecipe ErrorCode = "INVALID_RECIPE"
	ErrInvalidName   ErrorCode = "INVALID_NAME"
	ErrRecipeLoad    ErrorCode = "RECIPE_LOAD"
	ErrRecipeFailed  ErrorCode = "RECIPE_FAILED"

	// Execution errors
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"
	ErrDownload      ErrorCode = "DOWNLOAD_FAILED"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// DeptoolError represents a structured error with code and details
type DeptoolError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DeptoolError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DeptoolError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DeptoolError carrying the same code
func (e *DeptoolError) Is(target error) bool {
	var targetErr *DeptoolError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DeptoolError with the given code and message
func New(code ErrorCode, message string) *DeptoolError {
	return &DeptoolError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DeptoolError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DeptoolError {
	return &DeptoolError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DeptoolError
func Wrap(err error, code ErrorCode, message string) *DeptoolError {
	if err == nil {
		return nil
	}
	return &DeptoolError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DeptoolError {
	if err == nil {
		return nil
	}
	return &DeptoolError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DeptoolError) WithDetail(key string, value interface{}) *DeptoolError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DeptoolError) WithDetails(details map[string]interface{}) *DeptoolError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode reports whether err, or any error it wraps, carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, &DeptoolError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DeptoolError
func GetErrorCode(err error) ErrorCode {
	var deptoolErr *DeptoolError
	if errors.As(err, &deptoolErr) {
		return deptoolErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DeptoolError
func GetErrorDetails(err error) map[string]interface{} {
	var deptoolErr *DeptoolError
	if errors.As(err, &deptoolErr) {
		return deptoolErr.Details
	}
	return nil
}

// FindError returns the outermost DeptoolError in err's chain carrying code.
func FindError(err error, code ErrorCode) (*DeptoolError, bool) {
	for err != nil {
		var deptoolErr *DeptoolError
		if !errors.As(err, &deptoolErr) {
			return nil, false
		}
		if deptoolErr.Code == code {
			return deptoolErr, true
		}
		err = deptoolErr.Wrapped
	}
	return nil, false
}

// Package errors provides structured error types for tabletkv.
// Every error carries a category, a code, a message and a retryable flag so
// callers can tell a definite negative answer from an unknown outcome.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by the kind of failure.
type ErrorCategory string

const (
	ErrCategoryValidation ErrorCategory = "VALIDATION"
	ErrCategoryConflict   ErrorCategory = "CONFLICT"
	ErrCategoryNotFound   ErrorCategory = "NOT_FOUND"
	ErrCategoryTimeout    ErrorCategory = "TIMEOUT"
	ErrCategoryDecode     ErrorCategory = "DECODE"
	ErrCategoryTransport  ErrorCategory = "TRANSPORT"
	ErrCategoryStorage    ErrorCategory = "STORAGE"
	ErrCategoryInternal   ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Validation codes
	CodeInvalidTTL       = "INVALID_TTL"
	CodeInvalidTable     = "INVALID_TABLE"
	CodeInvalidScanRange = "INVALID_SCAN_RANGE"
	CodeInvalidArgument  = "INVALID_ARGUMENT"

	// Conflict codes
	CodeTableExists = "TABLE_EXISTS"

	// Not found codes
	CodeTableNotFound    = "TABLE_NOT_FOUND"
	CodeKeyNotFound      = "KEY_NOT_FOUND"
	CodeSnapshotNotFound = "SNAPSHOT_NOT_FOUND"

	// Timeout codes
	CodeDeadlineExceeded = "DEADLINE_EXCEEDED"

	// Decode codes
	CodeCorruptBuffer = "CORRUPT_BUFFER"
	CodeBadResponse   = "BAD_RESPONSE"

	// Transport codes
	CodeUnavailable = "UNAVAILABLE"
	CodeCanceled    = "CANCELED"
	CodeRemote      = "REMOTE"

	// Storage codes
	CodeUploadFailed   = "UPLOAD_FAILED"
	CodeDownloadFailed = "DOWNLOAD_FAILED"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// TabletError is the structured error type used throughout the module.
type TabletError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Details   map[string]interface{}
	Cause     error
	Retryable bool
}

// Error returns a formatted error string.
func (e *TabletError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *TabletError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
// A target with an empty code matches every error of its category.
func (e *TabletError) Is(target error) bool {
	var t *TabletError
	if !errors.As(target, &t) {
		return false
	}
	if e.Category != t.Category {
		return false
	}
	return t.Code == "" || e.Code == t.Code
}

// New creates a new TabletError.
func New(category ErrorCategory, code, message string) *TabletError {
	return &TabletError{
		Category:  category,
		Code:      code,
		Message:   message,
		Retryable: isRetryable(category, code),
	}
}

// Wrap creates a new TabletError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *TabletError {
	return &TabletError{
		Category:  category,
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: isRetryable(category, code),
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *TabletError) WithDetails(details map[string]interface{}) *TabletError {
	cp := *e
	cp.Details = details
	return &cp
}

// IsRetryable checks whether an error (or its chain) is retryable.
// Nothing in this module retries; the flag is advice for the caller.
func IsRetryable(err error) bool {
	var te *TabletError
	if errors.As(err, &te) {
		return te.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a TabletError.
func GetCategory(err error) ErrorCategory {
	var te *TabletError
	if errors.As(err, &te) {
		return te.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a TabletError.
func GetCode(err error) string {
	var te *TabletError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// IsTimeout reports whether err is a deadline failure with an unknown outcome.
func IsTimeout(err error) bool {
	return GetCategory(err) == ErrCategoryTimeout
}

// IsDecode reports whether err is a malformed response or scan buffer.
func IsDecode(err error) bool {
	return GetCategory(err) == ErrCategoryDecode
}

func isRetryable(category ErrorCategory, code string) bool {
	switch {
	case category == ErrCategoryTimeout:
		return true
	case category == ErrCategoryTransport && code == CodeUnavailable:
		return true
	case category == ErrCategoryStorage && code == CodeUploadFailed:
		return true
	case category == ErrCategoryStorage && code == CodeDownloadFailed:
		return true
	default:
		return false
	}
}

// Convenience constructors for common errors.

func NewValidationError(code, message string) *TabletError {
	return New(ErrCategoryValidation, code, message)
}

func NewTimeoutError(message string, cause error) *TabletError {
	return Wrap(ErrCategoryTimeout, CodeDeadlineExceeded, message, cause)
}

func NewDecodeError(code, message string, cause error) *TabletError {
	return Wrap(ErrCategoryDecode, code, message, cause)
}

func NewTransportError(code, message string, cause error) *TabletError {
	return Wrap(ErrCategoryTransport, code, message, cause)
}

func NewStorageError(code, message string, cause error) *TabletError {
	return Wrap(ErrCategoryStorage, code, message, cause)
}

func NewInternalError(message string, cause error) *TabletError {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}

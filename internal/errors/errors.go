// Package errors provides unified error handling across the pocket-composer system.
//
// SYSTEM ARCHITECTURE ROLE:
// This module is the foundation for error handling across both front ends (CLI and TUI)
// and the composition engine behind them. It standardizes how a failure is represented,
// categorized and displayed.
//
// KEY RESPONSIBILITIES:
// - Define the error codes of the engine: configuration errors, I/O failures and
//   non-fatal validation warnings
// - Provide the structured AppError type with severity and context
// - Let callers tell "no templates yet" apart from "corrupt file, recovered"
//
// INTEGRATION POINTS:
// - internal/schema: unknown categories and fields surface as ConfigurationError
// - internal/validation: every coerced or defaulted field becomes a ValidationWarning
// - internal/storage: template, history and export writes return IOFailure
// - internal/service: engine operations propagate AppErrors unchanged
// - internal/cli: CLIErrorHandler formats AppErrors for terminal display
// - internal/ui: TUI status line styles errors by severity
//
// USAGE PATTERNS:
// - Create errors: ConfigurationError(), IOFailure(), ValidationWarning(), NotFoundError()
// - Wrap errors: Wrap() adds an error code to an existing error
// - Check types: IsCode() and GetAppError() work through wrapped chains
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Configuration errors are programmer errors: unknown category or field
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"

	// Validation problems never abort composition
	ErrCodeValidationWarning ErrorCode = "VALIDATION_WARNING"
	ErrCodeInvalidInput      ErrorCode = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Storage errors
	ErrCodeIOFailure     ErrorCode = "IO_FAILURE"
	ErrCodeFileCorrupted ErrorCode = "FILE_CORRUPTED"

	// System integration
	ErrCodeClipboardUnavailable ErrorCode = "CLIPBOARD_UNAVAILABLE"
	ErrCodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryValidation    ErrorCategory = "validation"
	CategoryStorage       ErrorCategory = "storage"
	CategoryService       ErrorCategory = "service"
	CategorySystem        ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsFatal reports whether the error should abort the current operation.
// Validation warnings and informational errors are not fatal.
func (e *AppError) IsFatal() bool {
	return e.Severity == SeverityError || e.Severity == SeverityCritical
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeConfiguration:
		return CategoryConfiguration, SeverityError

	case ErrCodeValidationWarning:
		return CategoryValidation, SeverityWarning
	case ErrCodeInvalidInput:
		return CategoryValidation, SeverityError

	case ErrCodeNotFound:
		return CategoryService, SeverityInfo

	case ErrCodeIOFailure:
		return CategoryStorage, SeverityError
	case ErrCodeFileCorrupted:
		return CategoryStorage, SeverityWarning

	case ErrCodeClipboardUnavailable:
		return CategorySystem, SeverityWarning
	case ErrCodeInternalError:
		return CategorySystem, SeverityCritical

	default:
		return CategorySystem, SeverityError
	}
}

// IsCode reports whether err carries the given error code anywhere in its chain
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// ConfigurationError reports an unknown category, field or configuration value
func ConfigurationError(format string, args ...interface{}) *AppError {
	return NewAppError(ErrCodeConfiguration, fmt.Sprintf(format, args...))
}

// IOFailure wraps a failed read or write of a store, history or export file
func IOFailure(operation string, err error) *AppError {
	return Wrap(err, ErrCodeIOFailure, fmt.Sprintf("I/O operation failed: %s", operation))
}

// CorruptedFileError reports a file whose content could not be decoded
func CorruptedFileError(path string, err error) *AppError {
	return Wrap(err, ErrCodeFileCorrupted, fmt.Sprintf("File is corrupted: %s", path))
}

// ValidationWarning reports a field that fell back to its default
func ValidationWarning(field, message string) *AppError {
	return NewAppError(ErrCodeValidationWarning, message).WithContext("field", field)
}

func InvalidInputError(message string) *AppError {
	return NewAppError(ErrCodeInvalidInput, message)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

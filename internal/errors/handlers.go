// Package errors/handlers provides interface-specific error handling implementations.
//
// SYSTEM ARCHITECTURE ROLE:
// This module implements the interface layer of the error handling system, providing
// customized error formatting for the two front ends (CLI and TUI).
//
// ERROR FLOW:
// 1. Engine or store generates an AppError
// 2. Interface-specific handler logs it through zap
// 3. Handler formats the error for display
// 4. Formatted error is shown to the user
package errors

import (
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for CLI interface
type CLIErrorHandler struct {
	Verbose bool
	logger  *zap.Logger
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool, logger *zap.Logger) *CLIErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLIErrorHandler{
		Verbose: verbose,
		logger:  logger,
	}
}

// HandleError logs the error and returns it formatted for display
func (h *CLIErrorHandler) HandleError(err error) error {
	if err == nil {
		return nil
	}
	appErr := GetAppError(err)

	logError(h.logger, appErr)

	return stderrors.New(h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if h.Verbose {
		if appErr.Details != "" {
			message = fmt.Sprintf("%s (%s)", message, appErr.Details)
		}
		if appErr.Cause != nil {
			message = fmt.Sprintf("%s: %v", message, appErr.Cause)
		}
	}

	switch appErr.Severity {
	case SeverityCritical:
		return fmt.Sprintf("❌ CRITICAL: %s", message)
	case SeverityError:
		return fmt.Sprintf("❌ ERROR: %s", message)
	case SeverityWarning:
		return fmt.Sprintf("⚠️  WARNING: %s", message)
	case SeverityInfo:
		return fmt.Sprintf("ℹ️  INFO: %s", message)
	default:
		return fmt.Sprintf("❌ %s", message)
	}
}

// TUIErrorHandler handles errors for TUI interface
type TUIErrorHandler struct {
	ShowDetails bool
	logger      *zap.Logger
}

// NewTUIErrorHandler creates a new TUI error handler
func NewTUIErrorHandler(showDetails bool, logger *zap.Logger) *TUIErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TUIErrorHandler{
		ShowDetails: showDetails,
		logger:      logger,
	}
}

// HandleError logs the error to the TUI log sink
func (h *TUIErrorHandler) HandleError(err error) error {
	if err == nil {
		return nil
	}
	appErr := GetAppError(err)
	logError(h.logger, appErr)
	return appErr
}

// FormatError formats an error for the single-line TUI status bar
func (h *TUIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if h.ShowDetails && appErr.Details != "" {
		message = fmt.Sprintf("%s: %s", message, appErr.Details)
	}

	return message
}

// SeverityRole maps an error to the status style role the TUI should use
func (h *TUIErrorHandler) SeverityRole(err error) string {
	switch GetAppError(err).Severity {
	case SeverityCritical, SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

func logError(logger *zap.Logger, appErr *AppError) {
	fields := []zap.Field{
		zap.String("code", string(appErr.Code)),
		zap.String("category", string(appErr.Category)),
	}
	if appErr.Details != "" {
		fields = append(fields, zap.String("details", appErr.Details))
	}
	if appErr.Cause != nil {
		fields = append(fields, zap.NamedError("cause", appErr.Cause))
	}
	if len(appErr.Context) > 0 {
		fields = append(fields, zap.Any("context", appErr.Context))
	}

	switch appErr.Severity {
	case SeverityInfo:
		logger.Info(appErr.Message, fields...)
	case SeverityWarning:
		logger.Warn(appErr.Message, fields...)
	default:
		logger.Error(appErr.Message, fields...)
	}
}

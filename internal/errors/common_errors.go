package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeMissingFile ErrorType = "MISSING_FILE"
	ErrTypeSchema      ErrorType = "SCHEMA"
	ErrTypeParsing     ErrorType = "PARSING"
	ErrTypeStorage     ErrorType = "STORAGE"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeConfig      ErrorType = "CONFIG"
	ErrTypeRender      ErrorType = "RENDER"
)

// AppError represents an application-specific error.
// Op names the operation the failure originated in.
type AppError struct {
	Type    ErrorType
	Op      string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel registered for the error's type
func (e *AppError) Is(target error) bool {
	sentinel, ok := sentinels[e.Type]
	return ok && target == sentinel
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, op, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Op:      op,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewParsingError creates a parsing-related error
func NewParsingError(op, message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, op, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(op, message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, op, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(op, message string) *AppError {
	return NewAppError(ErrTypeValidation, op, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(op, message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, op, message, cause)
}

// NewRenderError creates a chart rendering error
func NewRenderError(op, message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, op, message, cause)
}

package models

import "errors"

// ErrorCode identifies a client-side validation failure
type ErrorCode string

// Validation error codes. All of these are raised before the transport is
// touched; a call that fails with one of them never reached the network.
const (
	CodeCannotEdit        ErrorCode = "cannot_edit"
	CodeCannotDelete      ErrorCode = "cannot_delete"
	CodeTooManyMediaFiles ErrorCode = "too_many_media_files"
	CodeFileTooLarge      ErrorCode = "file_too_large"
	CodeUnsupportedType   ErrorCode = "unsupported_type"
	CodeEmptyID           ErrorCode = "empty_id"
	CodeReportNotFound    ErrorCode = "report_not_found"
	CodeInvalidInput      ErrorCode = "invalid_input"
)

// ValidationError is a failure detected on the client before any request
// is issued
type ValidationError struct {
	Code    ErrorCode
	Message string
}

// NewValidationError builds a ValidationError with the given code and message
func NewValidationError(code ErrorCode, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError with the given code
func IsValidation(err error, code ErrorCode) bool {
	var v *ValidationError
	return errors.As(err, &v) && v.Code == code
}

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a numwords error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInputTooLarge  ErrorCode = "INPUT_TOO_LARGE" // 413
	ErrBatchTooLarge  ErrorCode = "BATCH_TOO_LARGE" // 413
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// NumwordsError represents a structured error with code, status, and details.
type NumwordsError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *NumwordsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *NumwordsError {
	return &NumwordsError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a conversion record cannot be found.
func NewNotFound(id string) *NumwordsError {
	return &NumwordsError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("conversion not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewInputTooLarge creates a 413 error when input text exceeds the size limit.
func NewInputTooLarge(max, actual int) *NumwordsError {
	return &NumwordsError{
		Code:    ErrInputTooLarge,
		Status:  413,
		Message: fmt.Sprintf("input exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewBatchTooLarge creates a 413 error when a batch has too many items.
func NewBatchTooLarge(max, actual int) *NumwordsError {
	return &NumwordsError{
		Code:    ErrBatchTooLarge,
		Status:  413,
		Message: fmt.Sprintf("batch exceeds maximum items: %d (max %d)", actual, max),
		Details: map[string]any{"max_items": max, "actual_items": actual},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging.
func NewInternal(err error) *NumwordsError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &NumwordsError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error (or any error it wraps) is a NumwordsError with the given code.
func Is(err error, code ErrorCode) bool {
	var nErr *NumwordsError
	if stderrors.As(err, &nErr) {
		return nErr.Code == code
	}
	return false
}

// From finds the NumwordsError in err's chain, or wraps err as an internal
// error when there is none. The returned message keeps any prefix added by
// wrapping, e.g. "texts[2]: input exceeds maximum size".
func From(err error) (*NumwordsError, string) {
	var nErr *NumwordsError
	if !stderrors.As(err, &nErr) {
		nErr = NewInternal(err)
		return nErr, nErr.Message
	}
	message := nErr.Message
	if full := err.Error(); full != nErr.Error() {
		message = strings.TrimSuffix(full, nErr.Error()) + nErr.Message
	}
	return nErr, message
}

package cli

import (
	stderrors "errors"
	"fmt"

	"timegrid/internal/errors"
	"timegrid/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return fmt.Errorf("failed to %s: %w", operation, eh.HandleSimple(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	// Field errors carry the most specific message, even when wrapped
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return &userError{message: validationErr.GetUserFriendlyMessage(), cause: err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &userError{message: errors.GetUserMessage(err), cause: err}
	}

	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsRestrictionError checks if an edit fell outside the editable window
func (eh *ErrorHandler) IsRestrictionError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeRestriction)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// userError carries a display message while keeping the original error
// reachable through errors.As and errors.Is.
type userError struct {
	message string
	cause   error
}

func (e *userError) Error() string { return e.message }

func (e *userError) Unwrap() error { return e.cause }

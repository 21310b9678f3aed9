package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("hours must be numeric")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "123")

	if err.Message != "task not found: 123" {
		t.Errorf("NewNotFoundError message = %v", err.Message)
	}
	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}
}

func TestNewRestrictionError(t *testing.T) {
	err := NewRestrictionError("2024-03-01", "more than 2 days in the past")

	if err.Type != ErrorTypeRestriction {
		t.Errorf("NewRestrictionError type = %v", err.Type)
	}
	if err.Code != "DATE_RESTRICTED" {
		t.Errorf("NewRestrictionError code = %v", err.Code)
	}
	day, _ := err.GetContext("day")
	if day != "2024-03-01" {
		t.Errorf("NewRestrictionError day context = %v", day)
	}
}

func TestClassifyWriteError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected ErrorType
	}{
		{"plain error becomes transient", errors.New("connection refused"), ErrorTypeTransientWrite},
		{"database error becomes transient", NewDatabaseError("insert", errors.New("locked")), ErrorTypeTransientWrite},
		{"rate limit keeps its type", NewRateLimitError("create", nil), ErrorTypeRateLimit},
		{"wrapped rate limit keeps its type", fmt.Errorf("store: %w", NewRateLimitError("create", nil)), ErrorTypeRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyWriteError("create", tt.input)
			if result == nil {
				t.Fatal("ClassifyWriteError returned nil")
			}
			if result.Type != tt.expected {
				t.Errorf("ClassifyWriteError type = %v, want %v", result.Type, tt.expected)
			}
		})
	}

	if ClassifyWriteError("create", nil) != nil {
		t.Error("ClassifyWriteError(nil) should be nil")
	}
}

func TestIsErrorType(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewRateLimitError("update", nil))

	if !IsErrorType(err, ErrorTypeRateLimit) {
		t.Error("IsErrorType should see through wrapping")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeRateLimit) {
		t.Error("IsErrorType should be false for non-AppError")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"restriction passes message", NewRestrictionError("2024-03-01", "locked"), "2024-03-01 is not editable: locked"},
		{"database hides detail", NewDatabaseError("insert", errors.New("disk")), "A database error occurred. Please try again."},
		{"transient write", NewTransientWriteError("create", nil), "Your change could not be saved. Edit the cell again to retry."},
		{"plain error", errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.expected {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestShouldLogError(t *testing.T) {
	if ShouldLogError(NewRestrictionError("2024-03-01", "locked")) {
		t.Error("restriction errors are user errors")
	}
	if !ShouldLogError(NewTransientWriteError("create", nil)) {
		t.Error("transient write errors should be logged")
	}
	if GetErrorCode(errors.New("plain")) != "UNKNOWN_ERROR" {
		t.Error("GetErrorCode should default to UNKNOWN_ERROR")
	}
}

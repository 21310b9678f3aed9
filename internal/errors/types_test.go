package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Database", ErrorTypeDatabase, "database"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Restriction", ErrorTypeRestriction, "restriction"},
		{"TransientWrite", ErrorTypeTransientWrite, "transient_write"},
		{"RateLimit", ErrorTypeRateLimit, "rate_limit"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.errorType.String()
			if result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "Error without cause",
			appError: &AppError{
				Type:    ErrorTypeValidation,
				Message: "invalid input",
			},
			expected: "validation: invalid input",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeTransientWrite,
				Message: "write failed: create",
				Cause:   errors.New("connection reset"),
			},
			expected: "transient_write: write failed: create (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("boom")
	err := NewTransientWriteError("update", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !errors.Is(err, &AppError{Type: ErrorTypeTransientWrite, Code: "WRITE_FAILED"}) {
		t.Error("errors.Is should match on type and code")
	}
	if errors.Is(err, &AppError{Type: ErrorTypeRateLimit, Code: "RATE_LIMITED"}) {
		t.Error("errors.Is should not match a different type")
	}
}

func TestAppError_Context(t *testing.T) {
	err := &AppError{Type: ErrorTypeValidation}

	if _, ok := err.GetContext("missing"); ok {
		t.Error("GetContext on nil context should report missing")
	}

	err.WithContext("cell", "7|2024-03-06")
	value, ok := err.GetContext("cell")
	if !ok || value != "7|2024-03-06" {
		t.Errorf("GetContext() = %v, %v", value, ok)
	}
}

package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidID checks if an identifier is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidDay checks if a value normalizes to a calendar day
func (v *Validator) IsValidDay(day any) bool {
	return calendar.Normalize(day) != ""
}

// IsValidHours checks hours are within [0, 24] and on a quarter hour
func (v *Validator) IsValidHours(hours decimal.Decimal) bool {
	if hours.IsNegative() || hours.GreaterThan(domain.MaxHours) {
		return false
	}
	return domain.IsQuarterHour(hours)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

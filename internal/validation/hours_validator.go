package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"timegrid/internal/domain"
)

// HoursValidator parses raw cell input into hours
type HoursValidator struct {
	validator *Validator
}

// NewHoursValidator creates a new hours validator
func NewHoursValidator() *HoursValidator {
	return &HoursValidator{validator: NewValidator()}
}

// ParseHours converts the raw text of a cell into hours rounded to the
// nearest quarter hour. Empty input means zero. A comma is accepted as the
// decimal separator.
func (hv *HoursValidator) ParseHours(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(hv.validator.TrimAndValidateString(raw), ",", ".")
	if cleaned == "" {
		return decimal.Zero, nil
	}

	hours, err := decimal.NewFromString(cleaned)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("hours", raw, "a number such as 4, 1.5 or 0.25")
		return decimal.Zero, validationError
	}

	if hours.IsNegative() || hours.GreaterThan(domain.MaxHours) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("hours", raw, "must be between 0 and 24")
		return decimal.Zero, validationError
	}

	return domain.RoundToQuarter(hours), nil
}

package validation

import (
	"timegrid/internal/calendar"
	"timegrid/internal/domain"
)

// PayloadValidator validates write requests reaching the timesheet store
type PayloadValidator struct {
	validator *Validator
}

// NewPayloadValidator creates a new payload validator
func NewPayloadValidator() *PayloadValidator {
	return &PayloadValidator{validator: NewValidator()}
}

// ValidateEntryPayload validates a create or update request
func (pv *PayloadValidator) ValidateEntryPayload(p domain.EntryPayload) error {
	validationError := NewValidationError()

	if !pv.validator.IsValidID(p.UserID) {
		validationError.AddInvalidValueError("user_id", p.UserID, "must be a positive integer")
	}
	if !pv.validator.IsValidID(p.ProjectID) {
		validationError.AddInvalidValueError("project_id", p.ProjectID, "must be a positive integer")
	}
	if !pv.validator.IsValidID(p.TaskID) {
		validationError.AddInvalidValueError("task_id", p.TaskID, "must be a positive integer")
	}
	if calendar.JoinDay(p.Year, p.Month, p.Day) == "" {
		validationError.AddInvalidValueError("date", []int{p.Year, p.Month, p.Day}, "year, month and day must form a calendar day")
	}
	if !pv.validator.IsValidHours(p.Hours) {
		validationError.AddInvalidRangeError("hours", p.Hours.String(), "must be between 0 and 24 in quarter hours")
	}
	if !pv.validator.IsValidStringLength(p.Description, 0, 1000) {
		validationError.AddInvalidValueError("description", len(p.Description), "must be at most 1000 characters")
	}

	return validationError.orNil()
}

// ValidateID validates an entity identifier
func (pv *PayloadValidator) ValidateID(field string, id int64) error {
	if !pv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError(field, id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateRange validates a day range used to list entries
func (pv *PayloadValidator) ValidateRange(startDate, endDate string) error {
	validationError := NewValidationError()

	if !pv.validator.IsValidDay(startDate) {
		validationError.AddInvalidFormatError("start_date", startDate, "YYYY-MM-DD")
	}
	if !pv.validator.IsValidDay(endDate) {
		validationError.AddInvalidFormatError("end_date", endDate, "YYYY-MM-DD")
	}
	if validationError.HasErrors() {
		return validationError
	}

	if n, _ := calendar.DaysBetween(startDate, endDate); n < 0 {
		validationError.AddInvalidRangeError("date_range", []string{startDate, endDate}, "end date must not be before start date")
	}

	return validationError.orNil()
}

// ValidateName validates a project or task name
func (pv *PayloadValidator) ValidateName(field, name string) error {
	if !pv.validator.IsNonEmptyString(name) {
		validationError := NewValidationError()
		validationError.AddRequiredError(field)
		return validationError
	}
	if !pv.validator.IsValidStringLength(name, 1, 255) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError(field, name, "must be at most 255 characters")
		return validationError
	}
	return nil
}

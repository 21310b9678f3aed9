package domain

import (
	"github.com/shopspring/decimal"

	"timegrid/internal/calendar"
	"timegrid/internal/errors"
)

// EntryPayload is the body of a create or update call. The date travels as
// discrete integers so neither end can reinterpret it in another zone.
type EntryPayload struct {
	UserID      int64           `json:"userId"`
	ProjectID   int64           `json:"projectId"`
	TaskID      int64           `json:"taskId"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Day         int             `json:"day"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
}

// NewEntryPayload splits the entry's day key into the wire triple.
func NewEntryPayload(te TimeEntry) (EntryPayload, error) {
	year, month, day, ok := calendar.SplitDay(te.Date)
	if !ok {
		return EntryPayload{}, errors.NewInvalidInputError("date", te.Date, "must be a calendar day")
	}
	return EntryPayload{
		UserID:      te.UserID,
		ProjectID:   te.ProjectID,
		TaskID:      te.TaskID,
		Year:        year,
		Month:       month,
		Day:         day,
		Hours:       te.Hours,
		Description: te.Description,
	}, nil
}

// DayKey rebuilds the canonical day, or "" if the triple is impossible.
func (p EntryPayload) DayKey() string {
	return calendar.JoinDay(p.Year, p.Month, p.Day)
}

// TimeEntry converts the payload back into entry values.
func (p EntryPayload) TimeEntry() TimeEntry {
	return TimeEntry{
		UserID:      p.UserID,
		ProjectID:   p.ProjectID,
		TaskID:      p.TaskID,
		Date:        p.DayKey(),
		Hours:       p.Hours,
		Description: p.Description,
	}
}

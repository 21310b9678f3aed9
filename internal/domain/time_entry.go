package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"timegrid/internal/calendar"
)

// CellKey addresses one editable cell of the grid.
type CellKey struct {
	TaskID int64
	Date   string
}

// NewCellKey builds a key, normalizing the date to a canonical day.
func NewCellKey(taskID int64, date any) CellKey {
	return CellKey{TaskID: taskID, Date: calendar.Normalize(date)}
}

// String renders the key as "taskId|date".
func (k CellKey) String() string {
	return fmt.Sprintf("%d|%s", k.TaskID, k.Date)
}

// IsValid reports whether the key names a real task and day.
func (k CellKey) IsValid() bool {
	return k.TaskID > 0 && k.Date != ""
}

// TimeEntry holds the values of a time entry shared by durable and pending entries.
// Date is a canonical day key and Hours uses quarter-hour granularity.
type TimeEntry struct {
	UserID      int64
	ProjectID   int64
	TaskID      int64
	Date        string
	Hours       decimal.Decimal
	Description string
}

// Cell returns the cell this entry belongs to.
func (te TimeEntry) Cell() CellKey {
	return CellKey{TaskID: te.TaskID, Date: te.Date}
}

// Entry is either a DurableEntry or a PendingEntry.
type Entry interface {
	Cell() CellKey
	Values() TimeEntry
	isEntry()
}

// DurableEntry is a time entry confirmed by the timesheet store.
type DurableEntry struct {
	ID int64
	TimeEntry
}

// PendingEntry is a local stand-in for a cell while its write is outstanding.
type PendingEntry struct {
	LocalID uuid.UUID
	TimeEntry
}

// NewPendingEntry creates a placeholder with a fresh local id.
func NewPendingEntry(values TimeEntry) PendingEntry {
	return PendingEntry{LocalID: uuid.New(), TimeEntry: values}
}

func (e DurableEntry) Values() TimeEntry { return e.TimeEntry }
func (e PendingEntry) Values() TimeEntry { return e.TimeEntry }

func (DurableEntry) isEntry() {}
func (PendingEntry) isEntry() {}

// IsDurable reports whether e has been confirmed by the store.
func IsDurable(e Entry) bool {
	_, ok := e.(DurableEntry)
	return ok
}

var (
	quarter  = decimal.NewFromInt(4)
	MaxHours = decimal.NewFromInt(24)
)

// RoundToQuarter rounds hours to the nearest quarter hour.
func RoundToQuarter(hours decimal.Decimal) decimal.Decimal {
	return hours.Mul(quarter).Round(0).Div(quarter)
}

// IsQuarterHour reports whether hours is a whole number of quarter hours.
func IsQuarterHour(hours decimal.Decimal) bool {
	return hours.Mul(quarter).IsInteger()
}

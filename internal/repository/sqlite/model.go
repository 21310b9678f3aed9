package sqlite

import "github.com/shopspring/decimal"

// Project represents a row of the projects table
type Project struct {
	ID     int64
	Name   string
	Status string
	Area   string
}

// Task represents a row of the tasks table
type Task struct {
	ID        int64
	ProjectID int64
	Name      string
}

// TimeEntry represents a row of the time_entries table.
// EntryDate is a canonical "YYYY-MM-DD" day, never a timestamp.
type TimeEntry struct {
	ID          int64
	UserID      int64
	ProjectID   int64
	TaskID      int64
	EntryDate   string
	Hours       decimal.Decimal
	Description string
}

// ProjectSearch contains the project list filters
type ProjectSearch struct {
	Status string
	Area   string
	Search string
}

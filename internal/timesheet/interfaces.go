// Package timesheet is the editing core of the week grid: it keeps durable
// and optimistic hours per cell, debounces writes to the timesheet store and
// merges the store's answers back.
package timesheet

import (
	"context"

	"timegrid/internal/domain"
)

// ProjectProvider supplies the rows of the grid. Filtering is the
// provider's concern; the grid keeps whatever it is given, in order.
type ProjectProvider interface {
	ListProjects(ctx context.Context, filters domain.ProjectFilter) ([]domain.Project, error)
	ListTasks(ctx context.Context, projectID int64) ([]domain.Task, error)
}

// TimesheetStore persists durable time entries.
type TimesheetStore interface {
	Create(ctx context.Context, payload domain.EntryPayload) (domain.DurableEntry, error)
	Update(ctx context.Context, id int64, payload domain.EntryPayload) (domain.DurableEntry, error)
	Delete(ctx context.Context, id int64) error
	ListByRange(ctx context.Context, userID int64, startDate, endDate string) ([]domain.DurableEntry, error)
}

// RestrictionConfigProvider supplies the editable date window. It is read
// on every edit.
type RestrictionConfigProvider interface {
	DateRestriction(ctx context.Context) (domain.DateRestrictionConfig, error)
}

// NoRestriction leaves every day editable.
type NoRestriction struct{}

func (NoRestriction) DateRestriction(context.Context) (domain.DateRestrictionConfig, error) {
	return domain.DateRestrictionConfig{}, nil
}

package api

import (
	"context"
	"fmt"

	"timegrid/internal/domain"
	"timegrid/internal/errors"
	"timegrid/internal/repository/sqlite"
	"timegrid/internal/validation"
)

// TimesheetAPI is the validated timesheet store and project/task provider
// the grid talks to.
type TimesheetAPI interface {
	// Time entry writes
	Create(ctx context.Context, payload domain.EntryPayload) (domain.DurableEntry, error)
	Update(ctx context.Context, id int64, payload domain.EntryPayload) (domain.DurableEntry, error)
	Delete(ctx context.Context, id int64) error
	ListByRange(ctx context.Context, userID int64, startDate, endDate string) ([]domain.DurableEntry, error)

	// Projects and tasks
	ListProjects(ctx context.Context, filters domain.ProjectFilter) ([]domain.Project, error)
	ListTasks(ctx context.Context, projectID int64) ([]domain.Task, error)
	CreateProject(ctx context.Context, name, area string) (domain.Project, error)
	CreateTask(ctx context.Context, projectID int64, name string) (domain.Task, error)
}

type timesheetAPIImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.PayloadValidator
}

// NewTimesheetAPI creates a TimesheetAPI backed by repo.
func NewTimesheetAPI(repo sqlite.Repository) TimesheetAPI {
	return &timesheetAPIImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewPayloadValidator(),
	}
}

// Create stores a new entry. A second create for the same user, task and
// day updates the existing row and returns its id, so a cell never holds
// two durable entries.
func (a *timesheetAPIImpl) Create(ctx context.Context, payload domain.EntryPayload) (domain.DurableEntry, error) {
	if err := a.validator.ValidateEntryPayload(payload); err != nil {
		return domain.DurableEntry{}, errors.NewValidationError("invalid time entry", err)
	}
	if err := a.checkTaskOwnership(ctx, payload); err != nil {
		return domain.DurableEntry{}, err
	}

	row := a.mapper.TimeEntry.FromPayload(0, payload)
	if err := a.repo.UpsertTimeEntry(ctx, &row); err != nil {
		return domain.DurableEntry{}, err
	}
	return a.mapper.TimeEntry.FromDatabase(row), nil
}

// Update replaces the values of an existing entry.
func (a *timesheetAPIImpl) Update(ctx context.Context, id int64, payload domain.EntryPayload) (domain.DurableEntry, error) {
	if err := a.validator.ValidateID("id", id); err != nil {
		return domain.DurableEntry{}, errors.NewValidationError("invalid time entry ID", err)
	}
	if err := a.validator.ValidateEntryPayload(payload); err != nil {
		return domain.DurableEntry{}, errors.NewValidationError("invalid time entry", err)
	}
	if err := a.checkTaskOwnership(ctx, payload); err != nil {
		return domain.DurableEntry{}, err
	}

	row := a.mapper.TimeEntry.FromPayload(id, payload)
	if err := a.repo.UpdateTimeEntry(ctx, &row); err != nil {
		return domain.DurableEntry{}, err
	}

	stored, err := a.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return domain.DurableEntry{}, err
	}
	return a.mapper.TimeEntry.FromDatabase(*stored), nil
}

// Delete removes an entry.
func (a *timesheetAPIImpl) Delete(ctx context.Context, id int64) error {
	if err := a.validator.ValidateID("id", id); err != nil {
		return errors.NewValidationError("invalid time entry ID", err)
	}
	return a.repo.DeleteTimeEntry(ctx, id)
}

// ListByRange lists a user's entries between two days, inclusive.
func (a *timesheetAPIImpl) ListByRange(ctx context.Context, userID int64, startDate, endDate string) ([]domain.DurableEntry, error) {
	if err := a.validator.ValidateID("user_id", userID); err != nil {
		return nil, errors.NewValidationError("invalid user ID", err)
	}
	if err := a.validator.ValidateRange(startDate, endDate); err != nil {
		return nil, errors.NewValidationError("invalid date range", err)
	}

	rows, err := a.repo.ListTimeEntriesByRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return a.mapper.TimeEntry.FromDatabaseSlice(rows), nil
}

// ListProjects lists the projects matching filters, in creation order.
func (a *timesheetAPIImpl) ListProjects(ctx context.Context, filters domain.ProjectFilter) ([]domain.Project, error) {
	rows, err := a.repo.ListProjects(ctx, a.mapper.Project.FilterToDatabase(filters))
	if err != nil {
		return nil, err
	}
	return a.mapper.Project.FromDatabaseSlice(rows), nil
}

// ListTasks lists a project's tasks, in creation order.
func (a *timesheetAPIImpl) ListTasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
	if err := a.validator.ValidateID("project_id", projectID); err != nil {
		return nil, errors.NewValidationError("invalid project ID", err)
	}

	rows, err := a.repo.ListTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return a.mapper.Task.FromDatabaseSlice(rows), nil
}

// CreateProject creates an active project.
func (a *timesheetAPIImpl) CreateProject(ctx context.Context, name, area string) (domain.Project, error) {
	if err := a.validator.ValidateName("name", name); err != nil {
		return domain.Project{}, errors.NewValidationError("invalid project name", err)
	}

	row := a.mapper.Project.ToDatabase(domain.Project{
		Name:   validation.NewValidator().TrimAndValidateString(name),
		Status: domain.ProjectStatusActive,
		Area:   area,
	})
	if err := a.repo.CreateProject(ctx, &row); err != nil {
		return domain.Project{}, err
	}
	return a.mapper.Project.FromDatabase(row), nil
}

// CreateTask adds a task to a project.
func (a *timesheetAPIImpl) CreateTask(ctx context.Context, projectID int64, name string) (domain.Task, error) {
	if err := a.validator.ValidateID("project_id", projectID); err != nil {
		return domain.Task{}, errors.NewValidationError("invalid project ID", err)
	}
	if err := a.validator.ValidateName("name", name); err != nil {
		return domain.Task{}, errors.NewValidationError("invalid task name", err)
	}

	row := a.mapper.Task.ToDatabase(domain.Task{
		ProjectID: projectID,
		Name:      validation.NewValidator().TrimAndValidateString(name),
	})
	if err := a.repo.CreateTask(ctx, &row); err != nil {
		return domain.Task{}, err
	}
	return a.mapper.Task.FromDatabase(row), nil
}

func (a *timesheetAPIImpl) checkTaskOwnership(ctx context.Context, payload domain.EntryPayload) error {
	task, err := a.repo.GetTask(ctx, payload.TaskID)
	if err != nil {
		return err
	}
	if task.ProjectID != payload.ProjectID {
		return errors.NewInvalidInputError("project_id", fmt.Sprintf("%d", payload.ProjectID),
			fmt.Sprintf("task %d belongs to project %d", task.ID, task.ProjectID))
	}
	return nil
}

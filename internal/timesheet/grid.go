package timesheet

import (
	"context"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
	"timegrid/internal/errors"
)

// Group is one project and its task rows.
type Group struct {
	Project domain.Project
	Tasks   []domain.Task
}

// Grid is the row and column structure of one week.
type Grid struct {
	Days   []string
	Groups []Group

	tasks map[int64]domain.Task
}

// BuildGrid lists the filtered projects and their tasks and lays them out
// against the seven days starting at anchor. Projects without tasks are
// kept so the caller can offer task creation for them.
func BuildGrid(ctx context.Context, provider ProjectProvider, filters domain.ProjectFilter, anchor any) (*Grid, error) {
	days := calendar.WeekDays(anchor)
	if days == nil {
		return nil, errors.NewInvalidInputError("anchor", anchor, "must be a calendar day")
	}

	projects, err := provider.ListProjects(ctx, filters)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to list projects")
	}

	grid := &Grid{
		Days:   days,
		Groups: make([]Group, 0, len(projects)),
		tasks:  make(map[int64]domain.Task),
	}
	for _, project := range projects {
		tasks, err := provider.ListTasks(ctx, project.ID)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to list tasks").
				WithContext("project_id", project.ID)
		}
		for _, task := range tasks {
			grid.tasks[task.ID] = task
		}
		grid.Groups = append(grid.Groups, Group{Project: project, Tasks: tasks})
	}
	return grid, nil
}

// StartDate returns the first day of the week.
func (g *Grid) StartDate() string { return g.Days[0] }

// EndDate returns the last day of the week.
func (g *Grid) EndDate() string { return g.Days[len(g.Days)-1] }

// HasDay reports whether day is one of the grid's columns.
func (g *Grid) HasDay(day any) bool {
	key := calendar.Normalize(day)
	for _, d := range g.Days {
		if d == key {
			return true
		}
	}
	return false
}

// Task returns the row for taskID.
func (g *Grid) Task(taskID int64) (domain.Task, bool) {
	task, ok := g.tasks[taskID]
	return task, ok
}

// TaskProject returns the project owning taskID.
func (g *Grid) TaskProject(taskID int64) (int64, bool) {
	task, ok := g.tasks[taskID]
	return task.ProjectID, ok
}

// TaskCount returns the number of task rows.
func (g *Grid) TaskCount() int {
	return len(g.tasks)
}

package domain

import (
	"timegrid/internal/repository/sqlite"
)

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(p Project) sqlite.Project {
	return sqlite.Project{ID: p.ID, Name: p.Name, Status: p.Status, Area: p.Area}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(p sqlite.Project) Project {
	return Project{ID: p.ID, Name: p.Name, Status: p.Status, Area: p.Area}
}

// FromDatabaseSlice converts database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(rows []*sqlite.Project) []Project {
	projects := make([]Project, len(rows))
	for i, row := range rows {
		projects[i] = m.FromDatabase(*row)
	}
	return projects
}

// FilterToDatabase converts a domain ProjectFilter to database search options.
func (m *ProjectMapper) FilterToDatabase(f ProjectFilter) sqlite.ProjectSearch {
	return sqlite.ProjectSearch{Status: f.Status, Area: f.Area, Search: f.Search}
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(t Task) sqlite.Task {
	return sqlite.Task{ID: t.ID, ProjectID: t.ProjectID, Name: t.Name}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(t sqlite.Task) Task {
	return Task{ID: t.ID, ProjectID: t.ProjectID, Name: t.Name}
}

// FromDatabaseSlice converts database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(rows []*sqlite.Task) []Task {
	tasks := make([]Task, len(rows))
	for i, row := range rows {
		tasks[i] = m.FromDatabase(*row)
	}
	return tasks
}

// TimeEntryMapper handles conversion between durable entries and database rows.
type TimeEntryMapper struct{}

// ToDatabase converts a durable entry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(e DurableEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:          e.ID,
		UserID:      e.UserID,
		ProjectID:   e.ProjectID,
		TaskID:      e.TaskID,
		EntryDate:   e.Date,
		Hours:       e.Hours,
		Description: e.Description,
	}
}

// FromDatabase converts a database TimeEntry to a durable entry.
func (m *TimeEntryMapper) FromDatabase(row sqlite.TimeEntry) DurableEntry {
	return DurableEntry{
		ID: row.ID,
		TimeEntry: TimeEntry{
			UserID:      row.UserID,
			ProjectID:   row.ProjectID,
			TaskID:      row.TaskID,
			Date:        row.EntryDate,
			Hours:       row.Hours,
			Description: row.Description,
		},
	}
}

// FromPayload converts a wire payload to a database TimeEntry with the given id.
func (m *TimeEntryMapper) FromPayload(id int64, p EntryPayload) sqlite.TimeEntry {
	return m.ToDatabase(DurableEntry{ID: id, TimeEntry: p.TimeEntry()})
}

// FromDatabaseSlice converts database TimeEntries to durable entries.
func (m *TimeEntryMapper) FromDatabaseSlice(rows []*sqlite.TimeEntry) []DurableEntry {
	entries := make([]DurableEntry, len(rows))
	for i, row := range rows {
		entries[i] = m.FromDatabase(*row)
	}
	return entries
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Project   *ProjectMapper
	Task      *TaskMapper
	TimeEntry *TimeEntryMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Project:   &ProjectMapper{},
		Task:      &TaskMapper{},
		TimeEntry: &TimeEntryMapper{},
	}
}

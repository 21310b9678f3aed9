package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"timegrid/internal/errors"
	"timegrid/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Projects and tasks
	CreateProject(ctx context.Context, project *Project) error
	ListProjects(ctx context.Context, search ProjectSearch) ([]*Project, error)
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context, projectID int64) ([]*Task, error)

	// Time entries
	UpsertTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id int64) error
	ListTimeEntriesByRange(ctx context.Context, userID int64, startDate, endDate string) ([]*TimeEntry, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const timeEntryColumns = `id, user_id, project_id, task_id, entry_date, hours, description`

// CreateProject creates a new project
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	query := `INSERT INTO projects (name, status, area) VALUES (?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, project.Name, project.Status, project.Area)
	if err != nil {
		return err
	}
	project.ID = id
	return nil
}

// ListProjects retrieves projects matching the search, in creation order
func (r *SQLiteRepository) ListProjects(ctx context.Context, search ProjectSearch) ([]*Project, error) {
	var conditions []string
	var args []interface{}

	if search.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, search.Status)
	}
	if search.Area != "" {
		conditions = append(conditions, "area = ?")
		args = append(args, search.Area)
	}
	if search.Search != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+search.Search+"%")
	}

	query := `SELECT id, name, status, area FROM projects`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects", args...)
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `INSERT INTO tasks (project_id, name) VALUES (?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, task.ProjectID, task.Name)
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `SELECT id, project_id, name FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasks retrieves the tasks of a project, in creation order
func (r *SQLiteRepository) ListTasks(ctx context.Context, projectID int64) ([]*Task, error) {
	query := `SELECT id, project_id, name FROM tasks WHERE project_id = ? ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", projectID)
}

// UpsertTimeEntry inserts a time entry, or updates the existing entry for the
// same (user, task, day). entry.ID is set to the durable id either way.
func (r *SQLiteRepository) UpsertTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	INSERT INTO time_entries (user_id, project_id, task_id, entry_date, hours, description)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (user_id, task_id, entry_date) DO UPDATE SET
		project_id = excluded.project_id,
		hours = excluded.hours,
		description = excluded.description`

	_, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.ProjectID, entry.TaskID, entry.EntryDate,
		FormatHoursForDB(entry.Hours), entry.Description)
	if err != nil {
		return HandleDatabaseError("upsert time entry", err)
	}

	lookup := `SELECT ` + timeEntryColumns + ` FROM time_entries
	WHERE user_id = ? AND task_id = ? AND entry_date = ?`
	stored, err := QuerySingle(ctx, r.db, lookup, ScanTimeEntry, "time entry",
		fmt.Sprintf("%d/%d/%s", entry.UserID, entry.TaskID, entry.EntryDate),
		entry.UserID, entry.TaskID, entry.EntryDate)
	if err != nil {
		return err
	}

	*entry = *stored
	return nil
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", fmt.Sprintf("%d", id), id)
}

// UpdateTimeEntry updates an existing time entry
func (r *SQLiteRepository) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	UPDATE time_entries
	SET user_id = ?, project_id = ?, task_id = ?, entry_date = ?, hours = ?, description = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", entry.ID),
		entry.UserID, entry.ProjectID, entry.TaskID, entry.EntryDate,
		FormatHoursForDB(entry.Hours), entry.Description, entry.ID)
}

// DeleteTimeEntry deletes a time entry by ID
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id int64) error {
	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", id), id)
}

// ListTimeEntriesByRange retrieves a user's entries between two days, inclusive.
// Day keys sort lexically, so the range compares as TEXT.
func (r *SQLiteRepository) ListTimeEntriesByRange(ctx context.Context, userID int64, startDate, endDate string) ([]*TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
	WHERE user_id = ? AND entry_date >= ? AND entry_date <= ?
	ORDER BY entry_date ASC, task_id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", userID, startDate, endDate)
}

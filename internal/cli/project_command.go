package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"timegrid/internal/domain"
	"timegrid/internal/errors"
)

// ProjectAddCommand creates a project
type ProjectAddCommand struct {
	app  *App
	Area string
}

// NewProjectAddCommand creates a new project add command handler
func NewProjectAddCommand(app *App) *ProjectAddCommand {
	return &ProjectAddCommand{app: app}
}

// Execute runs the project add command
func (c *ProjectAddCommand) Execute(ctx context.Context, args []string) error {
	project, err := c.app.api.CreateProject(ctx, strings.Join(args, " "), c.Area)
	if err != nil {
		return NewErrorHandler().Handle("add project", err)
	}
	fmt.Fprintf(c.app.out, "Added project %s [%d]\n", project.Name, project.ID)
	return nil
}

// ProjectListCommand lists projects and their tasks
type ProjectListCommand struct {
	app     *App
	Filters domain.ProjectFilter
}

// NewProjectListCommand creates a new project list command handler
func NewProjectListCommand(app *App) *ProjectListCommand {
	return &ProjectListCommand{app: app}
}

// Execute runs the project list command
func (c *ProjectListCommand) Execute(ctx context.Context, args []string) error {
	errorHandler := NewErrorHandler()

	projects, err := c.app.api.ListProjects(ctx, c.Filters)
	if err != nil {
		return errorHandler.Handle("list projects", err)
	}
	if len(projects) == 0 {
		fmt.Fprintln(c.app.out, "No projects found")
		return nil
	}

	for _, project := range projects {
		line := fmt.Sprintf("[%d] %s (%s)", project.ID, project.Name, project.Status)
		if project.Area != "" {
			line += " area=" + project.Area
		}
		fmt.Fprintln(c.app.out, line)

		tasks, err := c.app.api.ListTasks(ctx, project.ID)
		if err != nil {
			return errorHandler.Handle("list tasks", err)
		}
		for _, task := range tasks {
			fmt.Fprintf(c.app.out, "    [%d] %s\n", task.ID, task.Name)
		}
	}
	return nil
}

// TaskAddCommand adds a task to a project
type TaskAddCommand struct {
	app *App
}

// NewTaskAddCommand creates a new task add command handler
func NewTaskAddCommand(app *App) *TaskAddCommand {
	return &TaskAddCommand{app: app}
}

// Execute runs the task add command: task add <project-id> <name>
func (c *TaskAddCommand) Execute(ctx context.Context, args []string) error {
	errorHandler := NewErrorHandler()

	if len(args) < 2 {
		return errorHandler.Handle("add task", errors.NewInvalidInputError("arguments", len(args), "expected <project-id> <name>"))
	}
	projectID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errorHandler.Handle("add task", errors.NewInvalidInputError("project-id", args[0], "must be a positive integer"))
	}

	task, err := c.app.api.CreateTask(ctx, projectID, strings.Join(args[1:], " "))
	if err != nil {
		return errorHandler.Handle("add task", err)
	}
	fmt.Fprintf(c.app.out, "Added task %s [%d] to project %d\n", task.Name, task.ID, task.ProjectID)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"strconv"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
	"timegrid/internal/errors"
	"timegrid/internal/timesheet"
)

// SetCommand records hours for a task on one or more days of the same week
type SetCommand struct {
	app *App
}

// NewSetCommand creates a new set command handler
func NewSetCommand(app *App) *SetCommand {
	return &SetCommand{app: app}
}

type cellEdit struct {
	day string
	raw string
}

// Execute runs the set command: set <task-id> <day> <hours> [<day> <hours>...]
func (c *SetCommand) Execute(ctx context.Context, args []string) error {
	errorHandler := NewErrorHandler()

	taskID, edits, err := c.parseArgs(args)
	if err != nil {
		return errorHandler.Handle("set hours", err)
	}

	editor := c.app.newEditor()
	defer editor.Close()

	if err := editor.LoadWeek(ctx, domain.ProjectFilter{}, calendar.StartOfWeek(edits[0].day)); err != nil {
		return errorHandler.Handle("set hours", err)
	}
	task, ok := editor.Grid().Task(taskID)
	if !ok {
		return errorHandler.Handle("set hours", errors.NewNotFoundError("task", strconv.FormatInt(taskID, 10)))
	}

	for _, edit := range edits {
		if err := editor.OnEdit(ctx, taskID, edit.day, edit.raw); err != nil {
			return errorHandler.Handle(fmt.Sprintf("set hours on %s", edit.day), err)
		}
	}

	editor.Flush()
	editor.Wait()

	failed := 0
	for _, edit := range edits {
		status := editor.SaveStatus(taskID, edit.day)
		if status == timesheet.StatusError {
			failed++
		}
		fmt.Fprintf(c.app.out, "%s %s: %s (%s)\n", task.Name, edit.day,
			formatHours(editor.HoursFor(taskID, edit.day)), statusLabel(status))
	}
	fmt.Fprintf(c.app.out, "Week total for %s: %s\n", task.Name, formatHours(editor.TaskTotal(taskID)))

	if failed > 0 {
		return errorHandler.Handle("set hours", errors.NewTransientWriteError("save", fmt.Errorf("%d cell(s) not saved", failed)))
	}
	return nil
}

func (c *SetCommand) parseArgs(args []string) (int64, []cellEdit, error) {
	if len(args) < 3 || len(args)%2 == 0 {
		return 0, nil, errors.NewInvalidInputError("arguments", len(args), "expected <task-id> <day> <hours> [<day> <hours>...]")
	}

	taskID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || taskID <= 0 {
		return 0, nil, errors.NewInvalidInputError("task-id", args[0], "must be a positive integer")
	}

	var edits []cellEdit
	week := ""
	for i := 1; i < len(args); i += 2 {
		day := c.app.resolveDay(args[i])
		if day == "" {
			return 0, nil, errors.NewInvalidInputError("day", args[i], "expected YYYY-MM-DD, today, yesterday or tomorrow")
		}
		if week == "" {
			week = calendar.StartOfWeek(day)
		} else if calendar.StartOfWeek(day) != week {
			return 0, nil, errors.NewInvalidInputError("day", args[i], "all days must fall in the same week")
		}
		edits = append(edits, cellEdit{day: day, raw: args[i+1]})
	}
	return taskID, edits, nil
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
	"timegrid/internal/errors"
	"timegrid/internal/timesheet"
)

// WeekCommand prints the grid of one week with its totals
type WeekCommand struct {
	app     *App
	Filters domain.ProjectFilter
	// FromDate starts the grid on the given day instead of its Monday
	FromDate bool
}

// NewWeekCommand creates a new week command handler
func NewWeekCommand(app *App) *WeekCommand {
	return &WeekCommand{app: app}
}

// Execute runs the week command. The optional argument picks the week.
func (c *WeekCommand) Execute(ctx context.Context, args []string) error {
	errorHandler := NewErrorHandler()

	day := ""
	if len(args) > 0 {
		day = args[0]
	}
	anchor := c.app.resolveDay(day)
	if anchor == "" {
		return errorHandler.Handle("show week", errors.NewInvalidInputError("date", day, "expected YYYY-MM-DD, today, yesterday or tomorrow"))
	}
	if !c.FromDate {
		anchor = calendar.StartOfWeek(anchor)
	}

	editor := c.app.newEditor()
	defer editor.Close()

	if err := editor.LoadWeek(ctx, c.Filters, anchor); err != nil {
		return errorHandler.Handle("show week", err)
	}
	c.render(editor)
	return nil
}

func (c *WeekCommand) render(editor *timesheet.Editor) {
	grid := editor.Grid()
	out := c.app.out
	nameWidth := c.app.config.Display.TaskNameWidth
	cellWidth := c.app.config.Display.CellWidth
	width := nameWidth + (len(grid.Days)+1)*(cellWidth+1)

	fmt.Fprintf(out, "Week of %s to %s\n", grid.StartDate(), grid.EndDate())

	header := []string{padRight("Task", nameWidth)}
	for _, day := range grid.Days {
		header = append(header, padLeft(columnLabel(day), cellWidth))
	}
	header = append(header, padLeft("Total", cellWidth))
	fmt.Fprintln(out, strings.Join(header, " "))
	fmt.Fprintln(out, rule(width))

	if len(grid.Groups) == 0 {
		fmt.Fprintln(out, "No projects match the filters")
		return
	}

	for _, group := range grid.Groups {
		fmt.Fprintln(out, truncate(group.Project.Name, width))
		if len(group.Tasks) == 0 {
			fmt.Fprintf(out, "  (no tasks, add one with: task add %d <name>)\n", group.Project.ID)
			continue
		}
		for _, task := range group.Tasks {
			row := []string{padRight(fmt.Sprintf("  %s [%d]", task.Name, task.ID), nameWidth)}
			for _, day := range grid.Days {
				row = append(row, padLeft(formatHours(editor.HoursFor(task.ID, day)), cellWidth))
			}
			row = append(row, padLeft(formatHours(editor.TaskTotal(task.ID)), cellWidth))
			fmt.Fprintln(out, strings.Join(row, " "))
		}
	}

	fmt.Fprintln(out, rule(width))
	totals := []string{padRight("Total", nameWidth)}
	week := decimal.Zero
	for _, day := range grid.Days {
		total := editor.DayTotal(day)
		week = week.Add(total)
		totals = append(totals, padLeft(formatHours(total), cellWidth))
	}
	totals = append(totals, padLeft(formatHours(week), cellWidth))
	fmt.Fprintln(out, strings.Join(totals, " "))
}

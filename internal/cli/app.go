package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"timegrid/internal/api"
	"timegrid/internal/calendar"
	"timegrid/internal/config"
	"timegrid/internal/errors"
	"timegrid/internal/logging"
	"timegrid/internal/timesheet"
)

// App represents the main CLI application
type App struct {
	api    api.TimesheetAPI
	config *config.Config
	out    io.Writer
	clock  calendar.Clock
	logger *slog.Logger
}

// NewApp creates a new CLI application writing to stdout
func NewApp(apiInstance api.TimesheetAPI, cfg *config.Config) *App {
	return NewAppWithOutput(apiInstance, cfg, os.Stdout)
}

// NewAppWithOutput creates a new CLI application writing to out
func NewAppWithOutput(apiInstance api.TimesheetAPI, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    out,
		clock:  calendar.SystemClock{},
		logger: newLogger(cfg),
	}
}

// newLogger logs engine activity to stderr only in verbose or debug mode
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.Application.Verbose || logging.DebugEnabled() {
		return logging.NewLogger(os.Stderr)
	}
	return logging.Discard()
}

// Run executes the command line in args
func (a *App) Run(ctx context.Context, args []string) error {
	root := NewRootCommand(a)
	root.cmd.SetArgs(args)
	root.cmd.SetOut(a.out)

	err := root.cmd.ExecuteContext(ctx)
	if err != nil && errors.ShouldLogError(err) {
		a.logger.Error("command_failed", "code", errors.GetErrorCode(err), "error", err)
	}
	return err
}

// today returns the current day key
func (a *App) today() string {
	return calendar.Today(a.clock)
}

// newEditor wires an editor over the app's store and configuration
func (a *App) newEditor() *timesheet.Editor {
	cfg := a.config
	opts := timesheet.Options{
		UserID:   cfg.Application.UserID,
		Clock:    a.clock,
		Logger:   a.logger,
		Debounce: cfg.Autosave.Debounce,
		Cooldown: cfg.Autosave.Cooldown,
		Display: timesheet.StatusDisplay{
			Saved:     cfg.Autosave.SavedDisplay,
			Error:     cfg.Autosave.ErrorDisplay,
			RateLimit: cfg.Autosave.RateLimitDisplay,
		},
		WriteTimeout: cfg.GetWriteTimeout(),
	}
	return timesheet.NewEditor(timesheet.Dependencies{
		Projects:     a.api,
		Store:        a.api,
		Restrictions: cfg.NewRestrictionProvider(),
	}, opts)
}

// resolveDay accepts "today", "yesterday", "tomorrow" or a calendar day
func (a *App) resolveDay(arg string) string {
	switch arg {
	case "", "today":
		return a.today()
	case "yesterday":
		return calendar.AddDays(a.today(), -1)
	case "tomorrow":
		return calendar.AddDays(a.today(), 1)
	default:
		return calendar.Normalize(arg)
	}
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"timegrid/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "tg",
		Short: "A weekly timesheet grid with autosave",
		Long: `Timegrid (tg) keeps a weekly grid of hours per task and day.

Every cell edit is applied locally at once, debounced, and written to the
timesheet store in the background. Each cell reports its own save status.

EXAMPLES:
  tg project add "Website relaunch" --area marketing
  tg task add 1 "Design review"
  tg week                                  # This week, starting Monday
  tg week 2024-03-06                       # The week containing 6 March 2024
  tg set 3 today 4                         # 4 hours on task 3 today
  tg set 3 2024-03-04 7.5 2024-03-05 0     # Several cells of one week; 0 deletes
  tg project list --status active
  tg config                                # Print the effective configuration

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Database Configuration:
    TG_DB_DIR                              Database directory (default: ~/.timegrid)
    TG_DB_FILENAME                         Database filename (default: timegrid.db)
    TG_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    TG_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)

  Autosave Configuration:
    TG_AUTOSAVE_DEBOUNCE                   Quiet period before a cell is written (default: 2s)
    TG_AUTOSAVE_COOLDOWN                   Pause after a write before the cell may write again (default: 1s)
    TG_AUTOSAVE_SAVED_DISPLAY              How long "saved" stays visible (default: 2s)
    TG_AUTOSAVE_ERROR_DISPLAY              How long an error stays visible (default: 5s)
    TG_AUTOSAVE_RATE_LIMIT_DISPLAY         How long a rate-limit error stays visible (default: 15s)

  Date Restriction Configuration:
    TG_RESTRICTION_ENABLED                 Limit which days are editable (default: false)
    TG_RESTRICTION_PAST_DAYS               Editable days before today (default: 14)
    TG_RESTRICTION_FUTURE_DAYS             Editable days after today (default: 7)
    TG_RESTRICTION_FILE                    YAML file read at every edit instead of the above

  Display Configuration:
    TG_DISPLAY_CELL_WIDTH                  Width of a day column (default: 7)
    TG_DISPLAY_TASK_WIDTH                  Width of the task column (default: 28)

  Application Configuration:
    TG_APP_TIMEOUT                         Application timeout (default: 60s)
    TG_APP_VERBOSE                         Log autosave activity to stderr (default: false)
    TG_USER_ID                             User the timesheet belongs to (default: 1)
    TG_DEBUG                               Debug logging
    TG_ENV                                 development, testing or production (default: production)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags(cmd.Flags())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Autosave configuration
	flags.Duration("debounce", 0, "Quiet period before a cell is written (overrides TG_AUTOSAVE_DEBOUNCE)")
	flags.Duration("cooldown", 0, "Pause after a write before the cell may write again (overrides TG_AUTOSAVE_COOLDOWN)")

	// Restriction configuration
	flags.Bool("restriction-enabled", false, "Limit which days are editable (overrides TG_RESTRICTION_ENABLED)")
	flags.Int("past-days", 0, "Editable days before today (overrides TG_RESTRICTION_PAST_DAYS)")
	flags.Int("future-days", 0, "Editable days after today (overrides TG_RESTRICTION_FUTURE_DAYS)")
	flags.String("restriction-file", "", "YAML restriction file (overrides TG_RESTRICTION_FILE)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TG_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Log autosave activity to stderr (overrides TG_APP_VERBOSE)")
	flags.Int64("user-id", 0, "User the timesheet belongs to (overrides TG_USER_ID)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Week command
	week := NewWeekCommand(r.app)
	weekCmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Show the timesheet grid for a week",
		Long: `Show hours per task and day for one week, with day and task totals.

The date may be YYYY-MM-DD, today, yesterday or tomorrow. The grid starts on
the Monday of that week unless --from-date is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd.Context())
			defer cancel()

			return week.Execute(ctx, args)
		},
	}
	weekCmd.Flags().StringVar(&week.Filters.Status, "status", "", "Only projects with this status")
	weekCmd.Flags().StringVar(&week.Filters.Area, "area", "", "Only projects in this area")
	weekCmd.Flags().StringVar(&week.Filters.Search, "search", "", "Only projects whose name contains this text")
	weekCmd.Flags().BoolVar(&week.FromDate, "from-date", false, "Start the grid on the given date instead of its Monday")

	// Set command
	setCmd := &cobra.Command{
		Use:   "set <task-id> <date> <hours> [<date> <hours>...]",
		Short: "Set hours for a task",
		Long: `Set the hours of one or more cells of a task. All dates must fall in
the same week. Hours are rounded to the quarter hour; 0 deletes the entry.

Examples:
  tg set 3 today 4
  tg set 3 2024-03-04 7.5 2024-03-05 0`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd.Context())
			defer cancel()

			return NewSetCommand(r.app).Execute(ctx, args)
		},
	}

	// Project commands
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	projectAdd := NewProjectAddCommand(r.app)
	projectAddCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd.Context())
			defer cancel()

			return projectAdd.Execute(ctx, args)
		},
	}
	projectAddCmd.Flags().StringVar(&projectAdd.Area, "area", "", "Area the project belongs to")

	projectList := NewProjectListCommand(r.app)
	projectListCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects and their tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd.Context())
			defer cancel()

			return projectList.Execute(ctx, args)
		},
	}
	projectListCmd.Flags().StringVar(&projectList.Filters.Status, "status", "", "Only projects with this status")
	projectListCmd.Flags().StringVar(&projectList.Filters.Area, "area", "", "Only projects in this area")
	projectListCmd.Flags().StringVar(&projectList.Filters.Search, "search", "", "Only projects whose name contains this text")

	projectCmd.AddCommand(projectAddCmd, projectListCmd)

	// Task commands
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	taskAddCmd := &cobra.Command{
		Use:   "add <project-id> <name>",
		Short: "Add a task to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd.Context())
			defer cancel()

			return NewTaskAddCommand(r.app).Execute(ctx, args)
		},
	}
	taskCmd.AddCommand(taskAddCmd)

	// Config command
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewConfigCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(
		weekCmd,
		setCmd,
		projectCmd,
		taskCmd,
		configCmd,
	)
}

// withTimeout bounds a command by the configured application timeout
func (r *RootCommand) withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app != nil && r.app.config != nil && r.app.config.Application.Timeout > 0 {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with the flags set on the command line
func (r *RootCommand) getConfigFromFlags(flags *pflag.FlagSet) error {
	if r.app == nil || r.app.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	overrides := &config.ConfigOverrides{}

	if flags.Changed("debounce") {
		v, _ := flags.GetDuration("debounce")
		overrides.Debounce = &v
	}
	if flags.Changed("cooldown") {
		v, _ := flags.GetDuration("cooldown")
		overrides.Cooldown = &v
	}
	if flags.Changed("restriction-enabled") {
		v, _ := flags.GetBool("restriction-enabled")
		overrides.RestrictionEnabled = &v
	}
	if flags.Changed("past-days") {
		v, _ := flags.GetInt("past-days")
		overrides.PastDaysAllowed = &v
	}
	if flags.Changed("future-days") {
		v, _ := flags.GetInt("future-days")
		overrides.FutureDaysAllowed = &v
	}
	if flags.Changed("restriction-file") {
		v, _ := flags.GetString("restriction-file")
		overrides.RestrictionFile = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("user-id") {
		v, _ := flags.GetInt64("user-id")
		overrides.UserID = &v
	}

	r.app.config.ApplyOverrides(overrides)
	if err := r.app.config.Validate(); err != nil {
		return err
	}
	r.app.logger = newLogger(r.app.config)
	return nil
}

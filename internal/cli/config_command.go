package cli

import (
	"context"

	"gopkg.in/yaml.v3"

	"timegrid/internal/errors"
)

type configView struct {
	Database struct {
		Path         string `yaml:"path"`
		QueryTimeout string `yaml:"query_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"database"`
	Autosave struct {
		Debounce         string `yaml:"debounce"`
		Cooldown         string `yaml:"cooldown"`
		SavedDisplay     string `yaml:"saved_display"`
		ErrorDisplay     string `yaml:"error_display"`
		RateLimitDisplay string `yaml:"rate_limit_display"`
	} `yaml:"autosave"`
	Restriction struct {
		Enabled           bool   `yaml:"enabled"`
		PastDaysAllowed   int    `yaml:"past_days_allowed"`
		FutureDaysAllowed int    `yaml:"future_days_allowed"`
		File              string `yaml:"file,omitempty"`
	} `yaml:"restriction"`
	Application struct {
		UserID  int64  `yaml:"user_id"`
		Timeout string `yaml:"timeout"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"application"`
}

// ConfigCommand prints the effective configuration as YAML
type ConfigCommand struct {
	app *App
}

// NewConfigCommand creates a new config command handler
func NewConfigCommand(app *App) *ConfigCommand {
	return &ConfigCommand{app: app}
}

// Execute runs the config command
func (c *ConfigCommand) Execute(ctx context.Context, args []string) error {
	cfg := c.app.config

	var view configView
	view.Database.Path = cfg.GetDatabasePath()
	view.Database.QueryTimeout = cfg.GetQueryTimeout().String()
	view.Database.WriteTimeout = cfg.GetWriteTimeout().String()
	view.Autosave.Debounce = cfg.Autosave.Debounce.String()
	view.Autosave.Cooldown = cfg.Autosave.Cooldown.String()
	view.Autosave.SavedDisplay = cfg.Autosave.SavedDisplay.String()
	view.Autosave.ErrorDisplay = cfg.Autosave.ErrorDisplay.String()
	view.Autosave.RateLimitDisplay = cfg.Autosave.RateLimitDisplay.String()
	view.Restriction.Enabled = cfg.Restriction.Enabled
	view.Restriction.PastDaysAllowed = cfg.Restriction.PastDaysAllowed
	view.Restriction.FutureDaysAllowed = cfg.Restriction.FutureDaysAllowed
	view.Restriction.File = cfg.Restriction.File
	view.Application.UserID = cfg.Application.UserID
	view.Application.Timeout = cfg.Application.Timeout.String()
	view.Application.Verbose = cfg.Application.Verbose

	enc := yaml.NewEncoder(c.app.out)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return NewErrorHandler().Handle("print configuration", errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode configuration"))
	}
	return enc.Close()
}

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the timesheet grid
type Config struct {
	Database    DatabaseConfig
	Autosave    AutosaveConfig
	Restriction RestrictionConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TG_DB_DIR"`
	Filename       string        `env:"TG_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TG_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TG_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TG_DB_DIR_PERMISSIONS"`
}

// AutosaveConfig holds the autosave timings
type AutosaveConfig struct {
	Debounce         time.Duration `env:"TG_AUTOSAVE_DEBOUNCE"`
	Cooldown         time.Duration `env:"TG_AUTOSAVE_COOLDOWN"`
	SavedDisplay     time.Duration `env:"TG_AUTOSAVE_SAVED_DISPLAY"`
	ErrorDisplay     time.Duration `env:"TG_AUTOSAVE_ERROR_DISPLAY"`
	RateLimitDisplay time.Duration `env:"TG_AUTOSAVE_RATE_LIMIT_DISPLAY"`
}

// RestrictionConfig holds the editable date window. When File is set the
// window is read from that YAML file at every edit instead.
type RestrictionConfig struct {
	Enabled           bool   `env:"TG_RESTRICTION_ENABLED"`
	PastDaysAllowed   int    `env:"TG_RESTRICTION_PAST_DAYS"`
	FutureDaysAllowed int    `env:"TG_RESTRICTION_FUTURE_DAYS"`
	File              string `env:"TG_RESTRICTION_FILE"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	CellWidth     int `env:"TG_DISPLAY_CELL_WIDTH"`
	TaskNameWidth int `env:"TG_DISPLAY_TASK_WIDTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TG_APP_TIMEOUT"`
	Verbose bool          `env:"TG_APP_VERBOSE"`
	UserID  int64         `env:"TG_USER_ID"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".timegrid")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "timegrid.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Autosave: AutosaveConfig{
			Debounce:         2 * time.Second,
			Cooldown:         1 * time.Second,
			SavedDisplay:     2 * time.Second,
			ErrorDisplay:     5 * time.Second,
			RateLimitDisplay: 15 * time.Second,
		},
		Restriction: RestrictionConfig{
			Enabled:           false,
			PastDaysAllowed:   14,
			FutureDaysAllowed: 7,
		},
		Display: DisplayConfig{
			CellWidth:     7,
			TaskNameWidth: 28,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
			UserID:  1,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored and the current value is kept.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TG_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TG_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if v := os.Getenv("TG_DB_QUERY_TIMEOUT"); v != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(v, c.Database.QueryTimeout)
	}
	if v := os.Getenv("TG_DB_WRITE_TIMEOUT"); v != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(v, c.Database.WriteTimeout)
	}
	if v := os.Getenv("TG_DB_DIR_PERMISSIONS"); v != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(v, 8, c.Database.DirPermissions)
	}

	// Autosave configuration
	if v := os.Getenv("TG_AUTOSAVE_DEBOUNCE"); v != "" {
		c.Autosave.Debounce = ParseDurationWithFallback(v, c.Autosave.Debounce)
	}
	if v := os.Getenv("TG_AUTOSAVE_COOLDOWN"); v != "" {
		c.Autosave.Cooldown = ParseDurationWithFallback(v, c.Autosave.Cooldown)
	}
	if v := os.Getenv("TG_AUTOSAVE_SAVED_DISPLAY"); v != "" {
		c.Autosave.SavedDisplay = ParseDurationWithFallback(v, c.Autosave.SavedDisplay)
	}
	if v := os.Getenv("TG_AUTOSAVE_ERROR_DISPLAY"); v != "" {
		c.Autosave.ErrorDisplay = ParseDurationWithFallback(v, c.Autosave.ErrorDisplay)
	}
	if v := os.Getenv("TG_AUTOSAVE_RATE_LIMIT_DISPLAY"); v != "" {
		c.Autosave.RateLimitDisplay = ParseDurationWithFallback(v, c.Autosave.RateLimitDisplay)
	}

	// Restriction configuration
	if v := os.Getenv("TG_RESTRICTION_ENABLED"); v != "" {
		c.Restriction.Enabled = ParseBoolWithFallback(v, c.Restriction.Enabled)
	}
	if v := os.Getenv("TG_RESTRICTION_PAST_DAYS"); v != "" {
		c.Restriction.PastDaysAllowed = ParseIntWithFallback(v, c.Restriction.PastDaysAllowed)
	}
	if v := os.Getenv("TG_RESTRICTION_FUTURE_DAYS"); v != "" {
		c.Restriction.FutureDaysAllowed = ParseIntWithFallback(v, c.Restriction.FutureDaysAllowed)
	}
	if v := os.Getenv("TG_RESTRICTION_FILE"); v != "" {
		c.Restriction.File = v
	}

	// Display configuration
	if v := os.Getenv("TG_DISPLAY_CELL_WIDTH"); v != "" {
		c.Display.CellWidth = ParseIntWithFallback(v, c.Display.CellWidth)
	}
	if v := os.Getenv("TG_DISPLAY_TASK_WIDTH"); v != "" {
		c.Display.TaskNameWidth = ParseIntWithFallback(v, c.Display.TaskNameWidth)
	}

	// Application configuration
	if v := os.Getenv("TG_APP_TIMEOUT"); v != "" {
		c.Application.Timeout = ParseDurationWithFallback(v, c.Application.Timeout)
	}
	if v := os.Getenv("TG_APP_VERBOSE"); v != "" {
		c.Application.Verbose = ParseBoolWithFallback(v, c.Application.Verbose)
	}
	if v := os.Getenv("TG_USER_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Application.UserID = id
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate autosave configuration
	if c.Autosave.Debounce <= 0 {
		return &ConfigError{Field: "autosave.debounce", Message: "debounce must be positive"}
	}
	if c.Autosave.Cooldown < 0 {
		return &ConfigError{Field: "autosave.cooldown", Message: "cooldown cannot be negative"}
	}
	if c.Autosave.SavedDisplay <= 0 || c.Autosave.ErrorDisplay <= 0 {
		return &ConfigError{Field: "autosave.display", Message: "status display durations must be positive"}
	}
	if c.Autosave.RateLimitDisplay < c.Autosave.ErrorDisplay {
		return &ConfigError{Field: "autosave.rate_limit_display", Message: "rate limit display must be at least the error display"}
	}

	// Validate restriction configuration
	if c.Restriction.PastDaysAllowed < 0 {
		return &ConfigError{Field: "restriction.past_days_allowed", Message: "past days allowed cannot be negative"}
	}
	if c.Restriction.FutureDaysAllowed < 0 {
		return &ConfigError{Field: "restriction.future_days_allowed", Message: "future days allowed cannot be negative"}
	}

	// Validate display configuration
	if c.Display.CellWidth < 5 {
		return &ConfigError{Field: "display.cell_width", Message: "cell width must be at least 5"}
	}
	if c.Display.TaskNameWidth < 8 {
		return &ConfigError{Field: "display.task_name_width", Message: "task name width must be at least 8"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if c.Application.UserID <= 0 {
		return &ConfigError{Field: "application.user_id", Message: "user id must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

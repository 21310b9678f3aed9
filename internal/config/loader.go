package config

import (
	"strconv"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		config.ApplyOverrides(overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir      *string
	DBFilename *string

	// Autosave overrides
	Debounce *time.Duration
	Cooldown *time.Duration

	// Restriction overrides
	RestrictionEnabled *bool
	PastDaysAllowed    *int
	FutureDaysAllowed  *int
	RestrictionFile    *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
	UserID  *int64
}

// ApplyOverrides applies command line overrides to the configuration.
// Nil fields leave the current value untouched.
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) {
	if overrides == nil {
		return
	}
	if overrides.DBDir != nil {
		c.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		c.Database.Filename = *overrides.DBFilename
	}

	if overrides.Debounce != nil {
		c.Autosave.Debounce = *overrides.Debounce
	}
	if overrides.Cooldown != nil {
		c.Autosave.Cooldown = *overrides.Cooldown
	}

	if overrides.RestrictionEnabled != nil {
		c.Restriction.Enabled = *overrides.RestrictionEnabled
	}
	if overrides.PastDaysAllowed != nil {
		c.Restriction.PastDaysAllowed = *overrides.PastDaysAllowed
	}
	if overrides.FutureDaysAllowed != nil {
		c.Restriction.FutureDaysAllowed = *overrides.FutureDaysAllowed
	}
	if overrides.RestrictionFile != nil {
		c.Restriction.File = *overrides.RestrictionFile
	}

	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		c.Application.Verbose = *overrides.Verbose
	}
	if overrides.UserID != nil {
		c.Application.UserID = *overrides.UserID
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}

package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"timegrid/internal/domain"
	"timegrid/internal/timesheet"
)

// StaticRestrictionProvider serves the restriction window held in Config.
type StaticRestrictionProvider struct {
	Config domain.DateRestrictionConfig
}

var (
	_ timesheet.RestrictionConfigProvider = StaticRestrictionProvider{}
	_ timesheet.RestrictionConfigProvider = FileRestrictionProvider{}
)

// DateRestriction returns the configured window.
func (p StaticRestrictionProvider) DateRestriction(ctx context.Context) (domain.DateRestrictionConfig, error) {
	return p.Config, nil
}

// FileRestrictionProvider reads the restriction window from a YAML file on
// every call, so edits to the file apply to the next keystroke.
//
//	enabled: true
//	past_days_allowed: 14
//	future_days_allowed: 0
type FileRestrictionProvider struct {
	Path string
}

// DateRestriction loads and decodes the YAML file.
func (p FileRestrictionProvider) DateRestriction(ctx context.Context) (domain.DateRestrictionConfig, error) {
	var cfg domain.DateRestrictionConfig

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return cfg, fmt.Errorf("read restriction file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse restriction file %s: %w", p.Path, err)
	}
	if cfg.PastDaysAllowed < 0 || cfg.FutureDaysAllowed < 0 {
		return cfg, &ConfigError{Field: "restriction", Message: "day counts cannot be negative"}
	}
	return cfg, nil
}

// NewRestrictionProvider picks the provider for the loaded configuration.
func (c *Config) NewRestrictionProvider() timesheet.RestrictionConfigProvider {
	if c.Restriction.File != "" {
		return FileRestrictionProvider{Path: c.Restriction.File}
	}
	return StaticRestrictionProvider{Config: domain.DateRestrictionConfig{
		Enabled:           c.Restriction.Enabled,
		PastDaysAllowed:   c.Restriction.PastDaysAllowed,
		FutureDaysAllowed: c.Restriction.FutureDaysAllowed,
	}}
}

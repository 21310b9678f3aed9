package validation

import (
	"fmt"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
)

// RestrictionDecision is the outcome of a date restriction check.
type RestrictionDecision struct {
	IsValid bool
	Reason  string
}

// DateRestrictionPolicy decides whether a calendar day may be edited.
// Today is read from the clock on every call, so a day that leaves the
// window between render and keystroke is rejected at the keystroke.
type DateRestrictionPolicy struct {
	config domain.DateRestrictionConfig
	clock  calendar.Clock
}

// NewDateRestrictionPolicy creates a policy for cfg.
func NewDateRestrictionPolicy(cfg domain.DateRestrictionConfig, clock calendar.Clock) *DateRestrictionPolicy {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &DateRestrictionPolicy{config: cfg, clock: clock}
}

// IsAllowed reports whether day lies within
// [today - pastDaysAllowed, today + futureDaysAllowed].
func (p *DateRestrictionPolicy) IsAllowed(day any) RestrictionDecision {
	if !p.config.Enabled {
		return RestrictionDecision{IsValid: true}
	}

	key := calendar.Normalize(day)
	if key == "" {
		return RestrictionDecision{Reason: "invalid date"}
	}

	offset, ok := calendar.DaysBetween(calendar.Today(p.clock), key)
	if !ok {
		return RestrictionDecision{Reason: "invalid date"}
	}

	if offset < -p.config.PastDaysAllowed {
		return RestrictionDecision{Reason: fmt.Sprintf("only %d day(s) in the past may be edited", p.config.PastDaysAllowed)}
	}
	if offset > p.config.FutureDaysAllowed {
		return RestrictionDecision{Reason: fmt.Sprintf("only %d day(s) in the future may be edited", p.config.FutureDaysAllowed)}
	}
	return RestrictionDecision{IsValid: true}
}

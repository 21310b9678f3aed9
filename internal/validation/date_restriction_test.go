package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timegrid/internal/calendar"
	"timegrid/internal/domain"
)

func TestDateRestrictionPolicy_IsAllowed(t *testing.T) {
	clock := calendar.NewFakeClock(time.Date(2024, 3, 10, 15, 0, 0, 0, time.Local))
	window := domain.DateRestrictionConfig{Enabled: true, PastDaysAllowed: 2, FutureDaysAllowed: 0}

	tests := []struct {
		name   string
		config domain.DateRestrictionConfig
		day    any
		valid  bool
	}{
		{"disabled allows anything", domain.DateRestrictionConfig{}, "1999-01-01", true},
		{"disabled allows even invalid input", domain.DateRestrictionConfig{}, "junk", true},
		{"today", window, "2024-03-10", true},
		{"lower edge", window, "2024-03-08", true},
		{"one past the lower edge", window, "2024-03-07", false},
		{"tomorrow with no future days", window, "2024-03-11", false},
		{"timestamp string on an allowed day", window, "2024-03-09T23:00:00Z", true},
		{"local time value", window, time.Date(2024, 3, 9, 1, 0, 0, 0, time.Local), true},
		{"invalid day when enabled", window, "junk", false},
		{"future window", domain.DateRestrictionConfig{Enabled: true, FutureDaysAllowed: 3}, "2024-03-13", true},
		{"past the future window", domain.DateRestrictionConfig{Enabled: true, FutureDaysAllowed: 3}, "2024-03-14", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := NewDateRestrictionPolicy(tt.config, clock).IsAllowed(tt.day)
			assert.Equal(t, tt.valid, decision.IsValid)
			if !tt.valid {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}

func TestDateRestrictionPolicy_ReadsTodayAtCallTime(t *testing.T) {
	clock := calendar.NewFakeClock(time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local))
	policy := NewDateRestrictionPolicy(domain.DateRestrictionConfig{Enabled: true, PastDaysAllowed: 2}, clock)

	assert.True(t, policy.IsAllowed("2024-03-08").IsValid)

	// Midnight passes between render and keystroke.
	clock.Advance(2 * time.Minute)
	assert.False(t, policy.IsAllowed("2024-03-08").IsValid)
}

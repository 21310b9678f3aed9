package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"timegrid/internal/calendar"
	"timegrid/internal/timesheet"
)

// formatHours renders hours for a grid cell, with "-" for an empty cell
func formatHours(h decimal.Decimal) string {
	if h.IsZero() {
		return "-"
	}
	return h.String()
}

// columnLabel renders a day key as "Mon 04"
func columnLabel(day string) string {
	t, err := time.Parse(calendar.DayLayout, day)
	if err != nil {
		return day
	}
	return t.Format("Mon 02")
}

// statusLabel renders a save status for command output
func statusLabel(s timesheet.SaveStatus) string {
	switch s {
	case timesheet.StatusSaved:
		return "saved"
	case timesheet.StatusSaving:
		return "saving"
	case timesheet.StatusError:
		return "not saved"
	default:
		return "unchanged"
	}
}

// truncate shortens s to width, marking the cut with "~"
func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "~"
}

func padRight(s string, width int) string {
	return fmt.Sprintf("%-*s", width, truncate(s, width))
}

func padLeft(s string, width int) string {
	return fmt.Sprintf("%*s", width, truncate(s, width))
}

func rule(width int) string {
	return strings.Repeat("-", width)
}


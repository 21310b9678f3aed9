package calendar

import (
	"time"
)

// DaysPerWeek is the number of columns in a grid week.
const DaysPerWeek = 7

// parseKey parses a canonical key at UTC midnight. Day arithmetic runs in
// UTC so daylight saving transitions never add or drop a day.
func parseKey(day any) (time.Time, bool) {
	key := Normalize(day)
	if key == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DayLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays returns the day key n days after day, or "" if day is invalid.
func AddDays(day any, n int) string {
	t, ok := parseKey(day)
	if !ok {
		return ""
	}
	return t.AddDate(0, 0, n).Format(DayLayout)
}

// DaysBetween returns to - from in whole calendar days.
func DaysBetween(from, to any) (int, bool) {
	a, ok := parseKey(from)
	if !ok {
		return 0, false
	}
	b, ok := parseKey(to)
	if !ok {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// SplitDay returns the year, month and day-of-month of a day key.
func SplitDay(day any) (year, month, dayOfMonth int, ok bool) {
	t, ok := parseKey(day)
	if !ok {
		return 0, 0, 0, false
	}
	y, m, d := t.Date()
	return y, int(m), d, true
}

// JoinDay builds a day key from its parts, rejecting impossible dates.
func JoinDay(year, month, dayOfMonth int) string {
	t := time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != dayOfMonth {
		return ""
	}
	return t.Format(DayLayout)
}

// StartOfWeek returns the Monday on or before day.
func StartOfWeek(day any) string {
	t, ok := parseKey(day)
	if !ok {
		return ""
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(DayLayout)
}

// WeekDays returns the seven consecutive day keys starting at anchor.
func WeekDays(anchor any) []string {
	start, ok := parseKey(anchor)
	if !ok {
		return nil
	}
	days := make([]string, DaysPerWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i).Format(DayLayout)
	}
	return days
}

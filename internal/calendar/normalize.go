// Package calendar works with calendar days as canonical "YYYY-MM-DD" keys.
//
// A day key never carries a time of day or a zone. Values are decomposed
// with the calendar fields of whatever location they already carry, so a
// local-midnight timestamp and its UTC rendering name the same day.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical day key layout.
const DayLayout = "2006-01-02"

// Normalize converts a date representation into a canonical day key.
// Strings and time values are accepted. Anything unusable yields "", which
// callers must treat as "no match" and never as today.
func Normalize(input any) string {
	switch v := input.(type) {
	case string:
		return normalizeString(v)
	case time.Time:
		return normalizeTime(v)
	case *time.Time:
		if v == nil {
			return ""
		}
		return normalizeTime(*v)
	default:
		return ""
	}
}

// normalizeString truncates timestamps at the date boundary instead of
// parsing them as instants, which would shift the day across zones.
func normalizeString(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < len(DayLayout) {
		return ""
	}
	if len(s) > len(DayLayout) {
		if sep := s[len(DayLayout)]; sep != 'T' && sep != ' ' {
			return ""
		}
	}
	prefix := s[:len(DayLayout)]
	if _, err := time.Parse(DayLayout, prefix); err != nil {
		return ""
	}
	return prefix
}

func normalizeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

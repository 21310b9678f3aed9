package sqlite

import (
	"github.com/shopspring/decimal"
)

// FormatHoursForDB formats hours with two decimals for consistent TEXT storage
func FormatHoursForDB(h decimal.Decimal) string {
	return h.StringFixed(2)
}

// ParseHoursFromDB parses an hours value stored by FormatHoursForDB
func ParseHoursFromDB(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

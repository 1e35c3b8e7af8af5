package valueobjects

import (
	"fmt"
	"strconv"
	"strings"
)

// MonthYear is a value object for an MM/YYYY date
type MonthYear struct {
	month int
	year  int
}

// NewMonthYear creates a MonthYear from numeric parts
func NewMonthYear(month, year int) (MonthYear, error) {
	if month < 1 || month > 12 {
		return MonthYear{}, fmt.Errorf("month out of range: %d", month)
	}
	if year < 1 {
		return MonthYear{}, fmt.Errorf("year out of range: %d", year)
	}
	return MonthYear{month: month, year: year}, nil
}

// ParseMonthYear parses an MM/YYYY string
func ParseMonthYear(s string) (MonthYear, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return MonthYear{}, fmt.Errorf("invalid month/year: %q", s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return MonthYear{}, fmt.Errorf("invalid month in %q", s)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return MonthYear{}, fmt.Errorf("invalid year in %q", s)
	}
	return NewMonthYear(month, year)
}

// Month returns the month (1-12)
func (m MonthYear) Month() int {
	return m.month
}

// Year returns the year
func (m MonthYear) Year() int {
	return m.year
}

// String returns the MM/YYYY representation
func (m MonthYear) String() string {
	return fmt.Sprintf("%02d/%d", m.month, m.year)
}

// Before reports whether m is chronologically before other
func (m MonthYear) Before(other MonthYear) bool {
	if m.year != other.year {
		return m.year < other.year
	}
	return m.month < other.month
}

// Equals checks if two MonthYears are equal
func (m MonthYear) Equals(other MonthYear) bool {
	return m.month == other.month && m.year == other.year
}

// IsZero checks if the MonthYear is the zero value
func (m MonthYear) IsZero() bool {
	return m.month == 0 && m.year == 0
}

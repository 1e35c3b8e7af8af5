package utils

import (
	"fmt"
	"time"
)

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// CurrentMonthYear returns the current month in MM/YYYY form
func CurrentMonthYear() string {
	now := time.Now()
	return fmt.Sprintf("%02d/%d", int(now.Month()), now.Year())
}

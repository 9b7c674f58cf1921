package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
)

// ParseDate parses a YYYY-MM-DD calendar-day string.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// FormatDate renders a time as a YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// WeekStart returns the Monday of the ISO week containing the date.
func WeekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekBounds returns the Monday and Sunday of the ISO week containing the date.
func WeekBounds(day time.Time) (time.Time, time.Time) {
	start := WeekStart(day)
	return start, start.AddDate(0, 0, 6)
}

// MonthBounds returns the first and last day of the month containing the date.
func MonthBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}

// DaysBetween returns the inclusive day count from start to end.
// Returns 0 when end precedes start.
func DaysBetween(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// MinDate returns the earlier of two dates.
func MinDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDate returns the later of two dates.
func MaxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// LoadLocation loads an IANA timezone, falling back to the system timezone
// for "Local" or an empty name.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// TodayInTimezone returns today's date string (YYYY-MM-DD) in the given
// timezone, so "today" follows the user's configured zone rather than the
// system clock's.
func TodayInTimezone(timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc).Format(constants.DateFormat), nil
}

package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2026-01-05")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if day.Year() != 2026 || day.Month() != time.January || day.Day() != 5 {
		t.Errorf("unexpected parse result %v", day)
	}

	for _, bad := range []string{"", "01-05-2026", "2026-1-5", "2026-01-05T00:00:00Z", "not a date"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	day, _ := ParseDate("2026-02-28")
	if got := FormatDate(day); got != "2026-02-28" {
		t.Errorf("expected round trip, got %s", got)
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2026-01-05", "2026-01-05"}, // Monday
		{"2026-01-07", "2026-01-05"}, // Wednesday
		{"2026-01-11", "2026-01-05"}, // Sunday
		{"2026-01-12", "2026-01-12"}, // next Monday
		{"2026-01-01", "2025-12-29"}, // week spans the year boundary
	}
	for _, tc := range cases {
		day, _ := ParseDate(tc.date)
		if got := FormatDate(WeekStart(day)); got != tc.want {
			t.Errorf("WeekStart(%s): expected %s, got %s", tc.date, tc.want, got)
		}
	}
}

func TestWeekBounds(t *testing.T) {
	day, _ := ParseDate("2026-01-07")
	start, end := WeekBounds(day)
	if FormatDate(start) != "2026-01-05" || FormatDate(end) != "2026-01-11" {
		t.Errorf("unexpected week bounds %s..%s", FormatDate(start), FormatDate(end))
	}
}

func TestMonthBounds(t *testing.T) {
	cases := []struct {
		date      string
		wantStart string
		wantEnd   string
	}{
		{"2026-01-15", "2026-01-01", "2026-01-31"},
		{"2026-02-10", "2026-02-01", "2026-02-28"},
		{"2028-02-10", "2028-02-01", "2028-02-29"}, // leap year
		{"2026-12-31", "2026-12-01", "2026-12-31"},
	}
	for _, tc := range cases {
		day, _ := ParseDate(tc.date)
		start, end := MonthBounds(day)
		if FormatDate(start) != tc.wantStart || FormatDate(end) != tc.wantEnd {
			t.Errorf("MonthBounds(%s): expected %s..%s, got %s..%s",
				tc.date, tc.wantStart, tc.wantEnd, FormatDate(start), FormatDate(end))
		}
	}
}

func TestDaysBetween(t *testing.T) {
	parse := func(s string) time.Time {
		day, err := ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate failed: %v", err)
		}
		return day
	}

	if got := DaysBetween(parse("2026-01-05"), parse("2026-01-05")); got != 1 {
		t.Errorf("same day must count as 1, got %d", got)
	}
	if got := DaysBetween(parse("2026-01-05"), parse("2026-01-11")); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := DaysBetween(parse("2026-01-11"), parse("2026-01-05")); got != 0 {
		t.Errorf("reversed range must be 0, got %d", got)
	}
}

func TestMinMaxDate(t *testing.T) {
	a, _ := ParseDate("2026-01-05")
	b, _ := ParseDate("2026-01-10")
	if !MinDate(a, b).Equal(a) || !MinDate(b, a).Equal(a) {
		t.Error("MinDate must pick the earlier date")
	}
	if !MaxDate(a, b).Equal(b) || !MaxDate(b, a).Equal(b) {
		t.Error("MaxDate must pick the later date")
	}
	if !MinDate(a, a).Equal(a) {
		t.Error("MinDate of equal dates must return the date")
	}
}

func TestLoadLocation(t *testing.T) {
	if loc, err := LoadLocation(""); err != nil || loc != time.Local {
		t.Errorf("empty timezone must fall back to local, got %v/%v", loc, err)
	}
	if _, err := LoadLocation("America/New_York"); err != nil {
		t.Errorf("valid zone rejected: %v", err)
	}
	if _, err := LoadLocation("Mars/Olympus"); err == nil {
		t.Error("expected error for unknown zone")
	}
}

package cli

import (
	"testing"

	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/models"
)

func TestScoringRangeStart(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{
			name:     "mid month weekday",
			date:     "2026-01-14", // Wednesday
			expected: "2026-01-12", // Monday of that week
		},
		{
			name:     "week start precedes month start",
			date:     "2026-01-01", // Thursday
			expected: "2025-12-29", // Monday of the week spanning the month boundary
		},
		{
			name:     "monday mid month",
			date:     "2026-01-12",
			expected: "2026-01-12",
		},
		{
			name:     "month start precedes week start",
			date:     "2026-03-15", // Sunday; week starts Mar 9, month starts Mar 1
			expected: "2026-03-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoringRangeStart(tt.date)
			if err != nil {
				t.Fatalf("ScoringRangeStart(%q) error = %v", tt.date, err)
			}
			if got != tt.expected {
				t.Errorf("ScoringRangeStart(%q) = %q, want %q", tt.date, got, tt.expected)
			}
		})
	}

	t.Run("invalid date", func(t *testing.T) {
		if _, err := ScoringRangeStart("not-a-date"); err == nil {
			t.Error("ScoringRangeStart should reject an unparseable date")
		}
	})
}

func TestParseTagWeights(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  map[string]float64
		wantError bool
	}{
		{
			name:     "empty string",
			input:    "",
			expected: map[string]float64{},
		},
		{
			name:     "bare names default to one",
			input:    "run,bike",
			expected: map[string]float64{"run": 1, "bike": 1},
		},
		{
			name:     "explicit weights",
			input:    "run=2,bike=0.5",
			expected: map[string]float64{"run": 2, "bike": 0.5},
		},
		{
			name:     "mixed with whitespace",
			input:    " run = 2 , bike ",
			expected: map[string]float64{"run": 2, "bike": 1},
		},
		{
			name:      "zero weight rejected",
			input:     "run=0",
			wantError: true,
		},
		{
			name:      "negative weight rejected",
			input:     "run=-1",
			wantError: true,
		},
		{
			name:      "non-numeric weight rejected",
			input:     "run=lots",
			wantError: true,
		},
		{
			name:      "empty name rejected",
			input:     "=2",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTagWeights(tt.input)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseTagWeights(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
			if tt.wantError {
				return
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ParseTagWeights(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for name, weight := range tt.expected {
				if got[name] != weight {
					t.Errorf("ParseTagWeights(%q)[%q] = %v, want %v", tt.input, name, got[name], weight)
				}
			}
		})
	}
}

func TestParseNameList(t *testing.T) {
	got := ParseNameList(" run, , bike ,swim")
	expected := []string{"run", "bike", "swim"}
	if len(got) != len(expected) {
		t.Fatalf("ParseNameList() = %v, want %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("ParseNameList()[%d] = %q, want %q", i, got[i], expected[i])
		}
	}

	if names := ParseNameList("  "); len(names) != 0 {
		t.Errorf("ParseNameList on blanks = %v, want empty", names)
	}
}

func TestStatusGlyph(t *testing.T) {
	tests := []struct {
		status   models.Status
		expected string
	}{
		{models.StatusMet, "✓"},
		{models.StatusPartial, "◐"},
		{models.StatusMissed, "✗"},
		{models.StatusNA, "-"},
	}
	for _, tt := range tests {
		if got := StatusGlyph(tt.status); got != tt.expected {
			t.Errorf("StatusGlyph(%q) = %q, want %q", tt.status, got, tt.expected)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name     string
		status   engine.GoalStatus
		expected string
	}{
		{
			name:     "not applicable",
			status:   engine.GoalStatus{Applicable: false},
			expected: "n/a",
		},
		{
			name: "count goal week window",
			status: engine.GoalStatus{
				Applicable:   true,
				ScoringMode:  models.ModeCount,
				TargetWindow: models.WindowWeek,
				Progress:     2,
				Target:       3,
			},
			expected: "2/3 this week",
		},
		{
			name: "rating goal with samples",
			status: engine.GoalStatus{
				Applicable:  true,
				ScoringMode: models.ModeRating,
				Progress:    72.5,
				Target:      70,
				Samples:     3,
				WindowDays:  7,
			},
			expected: "avg 72.5/70 (3/7 rated)",
		},
		{
			name: "rating goal without samples",
			status: engine.GoalStatus{
				Applicable:  true,
				ScoringMode: models.ModeRating,
				Target:      70,
			},
			expected: "no ratings yet (target avg 70)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatProgress(tt.status); got != tt.expected {
				t.Errorf("FormatProgress() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	ctx := &Context{Timezone: "UTC"}

	t.Run("explicit date passes through", func(t *testing.T) {
		got, err := ctx.ResolveDate("2026-02-03")
		if err != nil {
			t.Fatalf("ResolveDate error = %v", err)
		}
		if got != "2026-02-03" {
			t.Errorf("ResolveDate = %q, want 2026-02-03", got)
		}
	})

	t.Run("invalid date rejected", func(t *testing.T) {
		if _, err := ctx.ResolveDate("02/03/2026"); err == nil {
			t.Error("ResolveDate should reject non ISO dates")
		}
	})

	t.Run("empty date resolves to today", func(t *testing.T) {
		got, err := ctx.ResolveDate("")
		if err != nil {
			t.Fatalf("ResolveDate error = %v", err)
		}
		if len(got) != 10 {
			t.Errorf("ResolveDate(\"\") = %q, want a YYYY-MM-DD date", got)
		}
	})
}

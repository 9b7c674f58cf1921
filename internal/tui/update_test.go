package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
)

func setupTestModel(t *testing.T) (Model, *storage.SQLiteStore) {
	t.Helper()

	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	tag := models.Tag{ID: "tag-1", Name: "run", Category: "health", Active: true, CreatedAt: time.Now()}
	if err := store.AddTag(tag); err != nil {
		t.Fatalf("Failed to add tag: %v", err)
	}

	return NewModel(store, "UTC"), store
}

func TestSubmitLogEventRejectsInvalidCounts(t *testing.T) {
	m, store := setupTestModel(t)

	tests := []struct {
		name  string
		count string
	}{
		{"negative count", "-3"},
		{"zero count", "0"},
		{"non-numeric count", "lots"},
		{"blank count", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.logForm = &LogFormModel{TagID: "tag-1", Count: tt.count}
			if err := m.submitLogEvent(); err == nil {
				t.Fatalf("submitLogEvent with count %q should fail", tt.count)
			}

			events, err := store.GetTagEvents("0000-01-01", "9999-12-31")
			if err != nil {
				t.Fatalf("GetTagEvents error = %v", err)
			}
			if len(events) != 0 {
				t.Fatalf("invalid count %q was stored: %+v", tt.count, events)
			}
		})
	}

	// The day must still be scorable after the rejected submissions
	snap, err := store.LoadSnapshot(m.today, m.today)
	if err != nil {
		t.Fatalf("LoadSnapshot error = %v", err)
	}
	if _, err := engine.ScoreDay(snap, m.today); err != nil {
		t.Errorf("ScoreDay after rejected events error = %v", err)
	}
}

func TestSubmitLogEventStoresValidEvent(t *testing.T) {
	m, store := setupTestModel(t)

	m.logForm = &LogFormModel{TagID: "tag-1", Count: "2", Note: "morning"}
	if err := m.submitLogEvent(); err != nil {
		t.Fatalf("submitLogEvent error = %v", err)
	}
	if m.loadError != "" {
		t.Fatalf("rescoring after log failed: %s", m.loadError)
	}

	events, err := store.GetTagEvents("0000-01-01", "9999-12-31")
	if err != nil {
		t.Fatalf("GetTagEvents error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].TagID != "tag-1" || events[0].Count != 2 || events[0].Date != m.today {
		t.Errorf("stored event = %+v, want tag-1 count 2 on %s", events[0], m.today)
	}
	if events[0].Note != "morning" {
		t.Errorf("stored note = %q, want %q", events[0].Note, "morning")
	}
}

package tui

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/goaltrack/internal/models"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	// Handle Log Activity State
	if m.state == stateLogForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.formError = ""
			m.state = m.returnState
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if err := m.submitLogEvent(); err != nil {
				m.formError = err.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.formError = ""
			m.state = m.returnState
		case huh.StateAborted:
			m.formError = ""
			m.state = m.returnState
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Rate Goal State
	if m.state == stateRateForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.formError = ""
			m.state = m.returnState
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			score, err := strconv.Atoi(strings.TrimSpace(m.rateForm.Score))
			if err != nil || score < 1 || score > 100 {
				m.formError = "Rating must be a whole number from 1 to 100."
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}

			rating := models.GoalRating{
				Date:   m.today,
				GoalID: m.rateForm.GoalID,
				Rating: score,
				Note:   strings.TrimSpace(m.rateForm.Note),
			}
			if err := m.store.SetGoalRating(rating); err != nil {
				m.formError = fmt.Sprintf("Failed to save rating: %v", err)
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}

			m.formError = ""
			m.refreshToday()
			m.refreshTrends()
			m.state = m.returnState
		case huh.StateAborted:
			m.formError = ""
			m.state = m.returnState
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Day Note State
	if m.state == stateNoteForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.formError = ""
			m.state = m.returnState
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if err := m.saveDayNote(strings.TrimSpace(m.noteForm.Text)); err != nil {
				m.formError = fmt.Sprintf("Failed to save note: %v", err)
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.formError = ""
			m.refreshToday()
			m.state = m.returnState
		case huh.StateAborted:
			m.formError = ""
			m.state = m.returnState
		}
		return m, tea.Batch(cmds...)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.formError = ""

		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + tabCount - 1) % tabCount
			m.formError = ""

		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, m.keys.Enter):
			if m.state == stateNotifications {
				m.markSelectedRead()
			}

		case key.Matches(msg, m.keys.Log):
			if m.state == stateToday && m.openLogForm() {
				m.returnState = stateToday
				m.state = stateLogForm
				cmds = append(cmds, m.form.Init())
			}

		case key.Matches(msg, m.keys.Rate):
			if m.state == stateToday && m.openRateForm() {
				m.returnState = stateToday
				m.state = stateRateForm
				cmds = append(cmds, m.form.Init())
			}

		case key.Matches(msg, m.keys.Note):
			if m.state == stateToday {
				m.openNoteForm()
				m.returnState = stateToday
				m.state = stateNoteForm
				cmds = append(cmds, m.form.Init())
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// submitLogEvent validates and stores the activity described by the log form,
// then rescores the day. Events are validated before insert; the scoring
// engine rejects whole snapshots containing bad counts, so one malformed row
// would break every later score until removed.
func (m *Model) submitLogEvent() error {
	count, err := strconv.Atoi(strings.TrimSpace(m.logForm.Count))
	if err != nil {
		return errors.New("count must be a whole number")
	}

	now := time.Now()
	event := models.TagEvent{
		ID:    uuid.New().String(),
		Date:  m.today,
		TagID: m.logForm.TagID,
		Count: count,
		TS:    &now,
		Note:  strings.TrimSpace(m.logForm.Note),
	}
	if err := event.Validate(); err != nil {
		return err
	}
	if err := m.store.AddTagEvent(event); err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	m.refreshToday()
	m.refreshTrends()
	return nil
}

func (m *Model) moveCursor(delta int) {
	switch m.state {
	case stateToday:
		m.cursor = clamp(m.cursor+delta, 0, len(m.statuses)-1)
	case stateNotifications:
		m.notifCursor = clamp(m.notifCursor+delta, 0, len(m.notifs)-1)
	}
}

func (m *Model) markSelectedRead() {
	if m.notifCursor < 0 || m.notifCursor >= len(m.notifs) {
		return
	}
	notif := m.notifs[m.notifCursor]
	if notif.ReadAt != nil {
		return
	}
	if err := m.store.MarkNotificationRead(notif.ID); err != nil {
		m.formError = fmt.Sprintf("Failed to mark notification read: %v", err)
		return
	}
	m.refreshNotifications()
}

// saveDayNote upserts the free-text note for today, preserving the original
// creation time on update.
func (m *Model) saveDayNote(text string) error {
	now := time.Now()
	entry := models.DayEntry{Date: m.today, Note: text, CreatedAt: now, UpdatedAt: now}

	existing, err := m.store.GetDayEntry(m.today)
	if err == nil {
		entry.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	return m.store.SaveDayEntry(entry)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

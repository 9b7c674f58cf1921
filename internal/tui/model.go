package tui

import (
	"database/sql"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/utils"
)

type sessionState int

const (
	stateToday sessionState = iota
	stateTrends
	stateNotifications
	stateLogForm
	stateRateForm
	stateNoteForm
)

// tabCount is the number of browsable tabs; the form states come after and
// are never reachable by tab cycling.
const tabCount = 3

type LogFormModel struct {
	TagID string
	Count string
	Note  string
}

type RateFormModel struct {
	GoalID string
	Score  string
	Note   string
}

type NoteFormModel struct {
	Text string
}

type Model struct {
	store       storage.Provider
	timezone    string
	today       string
	state       sessionState
	returnState sessionState
	keys        KeyMap
	help        help.Model

	statuses []engine.GoalStatus
	summary  engine.Summary
	dayNote  string
	cursor   int

	series []engine.TrendSeries

	notifs      []models.Notification
	notifCursor int

	tags []models.Tag

	form      *huh.Form
	logForm   *LogFormModel
	rateForm  *RateFormModel
	noteForm  *NoteFormModel
	formError string

	loadError string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider, timezone string) Model {
	today, err := utils.TodayInTimezone(timezone)
	if err != nil {
		today = time.Now().Format(constants.DateFormat)
	}

	m := Model{
		store:    store,
		timezone: timezone,
		today:    today,
		state:    stateToday,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}

	m.refreshToday()
	m.refreshTrends()
	m.refreshNotifications()

	return m
}

// refreshToday rescores the current date and reloads everything the Today
// tab displays.
func (m *Model) refreshToday() {
	m.loadError = ""

	start, err := cli.ScoringRangeStart(m.today)
	if err != nil {
		m.loadError = err.Error()
		return
	}
	snap, err := m.store.LoadSnapshot(start, m.today)
	if err != nil {
		m.loadError = err.Error()
		return
	}
	statuses, err := engine.ScoreDay(snap, m.today)
	if err != nil {
		m.loadError = err.Error()
		return
	}
	m.statuses = statuses
	m.summary = engine.SummarizeStatuses(statuses)
	if m.cursor >= len(m.statuses) {
		m.cursor = 0
	}

	m.dayNote = ""
	entry, err := m.store.GetDayEntry(m.today)
	if err == nil {
		m.dayNote = entry.Note
	} else if !errors.Is(err, sql.ErrNoRows) {
		m.loadError = err.Error()
	}

	tags, err := m.store.GetAllTags(false)
	if err == nil {
		m.tags = tags
	}
}

// refreshTrends rebuilds the trailing four weeks of day-bucketed history for
// every active goal.
func (m *Model) refreshTrends() {
	day, err := utils.ParseDate(m.today)
	if err != nil {
		return
	}
	start := utils.FormatDate(day.AddDate(0, 0, -27))

	lookback, err := cli.ScoringRangeStart(start)
	if err != nil {
		return
	}
	snap, err := m.store.LoadSnapshot(lookback, m.today)
	if err != nil {
		m.loadError = err.Error()
		return
	}

	var goalIDs []string
	for _, goal := range snap.Goals {
		if goal.Active {
			goalIDs = append(goalIDs, goal.ID)
		}
	}
	if len(goalIDs) == 0 {
		m.series = nil
		return
	}

	series, err := engine.BuildTrend(snap, goalIDs, start, m.today, models.BucketDay)
	if err != nil {
		m.loadError = err.Error()
		return
	}
	m.series = series
}

func (m *Model) refreshNotifications() {
	notifs, err := m.store.GetNotifications(false, 50)
	if err != nil {
		m.loadError = err.Error()
		return
	}
	m.notifs = notifs
	if m.notifCursor >= len(m.notifs) {
		m.notifCursor = 0
	}
}

// selectedStatus returns the goal status under the cursor on the Today tab.
func (m *Model) selectedStatus() *engine.GoalStatus {
	if m.cursor < 0 || m.cursor >= len(m.statuses) {
		return nil
	}
	return &m.statuses[m.cursor]
}

func (m *Model) openLogForm() bool {
	if len(m.tags) == 0 {
		m.formError = "No active tags. Create one with 'goaltrack tag add' first."
		return false
	}

	options := make([]huh.Option[string], 0, len(m.tags))
	for _, tag := range m.tags {
		options = append(options, huh.NewOption(tag.Name, tag.ID))
	}

	m.logForm = &LogFormModel{TagID: m.tags[0].ID, Count: "1"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Tag").
				Options(options...).
				Value(&m.logForm.TagID),
			huh.NewInput().
				Title("Count").
				Value(&m.logForm.Count),
			huh.NewInput().
				Title("Note (optional)").
				Value(&m.logForm.Note),
		),
	)
	return true
}

func (m *Model) openRateForm() bool {
	status := m.selectedStatus()
	if status == nil {
		return false
	}
	if status.ScoringMode != models.ModeRating {
		m.formError = "Selected goal is not rating-scored."
		return false
	}

	m.rateForm = &RateFormModel{GoalID: status.GoalID, Score: "50"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Rating (1-100) for " + status.GoalName).
				Value(&m.rateForm.Score),
			huh.NewInput().
				Title("Note (optional)").
				Value(&m.rateForm.Note),
		),
	)
	return true
}

func (m *Model) openNoteForm() {
	m.noteForm = &NoteFormModel{Text: m.dayNote}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Note for " + m.today).
				Value(&m.noteForm.Text),
		),
	)
}

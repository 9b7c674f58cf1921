package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/engine"
	"github.com/julianstephens/goaltrack/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case stateToday:
		content = m.viewToday()
	case stateTrends:
		content = m.viewTrends()
	case stateNotifications:
		content = m.viewNotifications()
	case stateLogForm, stateRateForm, stateNoteForm:
		content = m.form.View()
		if m.formError != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.formError), content)
		}
		return docStyle.Render(content)
	}

	var banner string
	if m.loadError != "" {
		banner = dangerStyle.Render("⚠ " + m.loadError)
	} else if m.formError != "" {
		banner = warningStyle.Render(m.formError)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Today", "Trends", "Notifications"}
	for i, title := range tabTitles {
		if m.state == sessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	var b strings.Builder

	header := fmt.Sprintf("%s: %d/%d goals met", m.today, m.summary.MetGoals, m.summary.ApplicableGoals)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	if len(m.statuses) == 0 {
		b.WriteString(mutedStyle.Render("No goals yet. Create one with 'goaltrack goal add'."))
		return docStyle.Render(b.String())
	}

	for i, status := range m.statuses {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s %-24s %s", marker, cli.StatusGlyph(status.Status), status.GoalName, cli.FormatProgress(status))
		if !status.Applicable {
			line = mutedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.dayNote != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Note: " + m.dayNote))
	}

	return docStyle.Render(b.String())
}

func (m Model) viewTrends() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Last 28 days"))
	b.WriteString("\n\n")

	if len(m.series) == 0 {
		b.WriteString(mutedStyle.Render("No active goals to chart."))
		return docStyle.Render(b.String())
	}

	for _, series := range m.series {
		b.WriteString(fmt.Sprintf("%-24s %s\n", series.GoalName, sparkline(series.Points)))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Each cell is one day; height tracks progress toward target."))

	return docStyle.Render(b.String())
}

func (m Model) viewNotifications() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Notifications"))
	b.WriteString("\n\n")

	if len(m.notifs) == 0 {
		b.WriteString(mutedStyle.Render("Nothing here yet."))
		return docStyle.Render(b.String())
	}

	for i, notif := range m.notifs {
		marker := "  "
		if i == m.notifCursor {
			marker = "> "
		}
		bullet := "●"
		line := fmt.Sprintf("%s%s %s  %s", marker, bullet, notif.CreatedAt.Format("Jan 02 15:04"), notif.Title)
		if notif.ReadAt != nil {
			bullet = "○"
			line = fmt.Sprintf("%s%s %s  %s", marker, bullet, notif.CreatedAt.Format("Jan 02 15:04"), notif.Title)
			line = mutedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if i == m.notifCursor {
			b.WriteString(mutedStyle.Render("    " + notif.Body))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter marks the selected notification read"))

	return docStyle.Render(b.String())
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline renders one cell per trend point, scaled by ratio of progress to
// target. Non-applicable days render as a dot.
func sparkline(points []engine.TrendPoint) string {
	var b strings.Builder
	for _, p := range points {
		if !p.Applicable || p.Status == models.StatusNA {
			b.WriteString(mutedStyle.Render("·"))
			continue
		}
		ratio := p.Ratio
		if ratio > 1 {
			ratio = 1
		}
		if ratio < 0 {
			ratio = 0
		}
		level := int(ratio * float64(len(sparkLevels)-1))
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}

// Package tui implements the read-only week grid viewer launched by
// `weekplan schedule --tui` (§7): it renders one completed SolveResult and
// never writes back to storage.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/weekplan/weekplan/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	dayHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Model is a read-only viewport over one SolveResult.
type Model struct {
	viewport viewport.Model
	result   models.SolveResult
	ready    bool
}

// NewModel builds a viewer for the given solve result. There is no store or
// scheduler reference here: a solve is never persisted (§6), so the viewer
// only ever has the in-memory result from the call that produced it.
func NewModel(result models.SolveResult) Model {
	return Model{result: result}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.gridContent())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.viewport.View(), m.footerView())
}

func (m Model) headerView() string {
	return titleStyle.Render(fmt.Sprintf("weekplan schedule — %s", m.result.Status))
}

func (m Model) footerView() string {
	return footerStyle.Render(fmt.Sprintf(
		"completion %.0f%%  leisure %.0fm  objective %.2f  (q to quit)",
		m.result.CompletionRate*100, m.result.RawTotalLeisureMinutes, m.result.ObjectiveValue,
	))
}

func (m Model) gridContent() string {
	if len(m.result.Schedule) == 0 {
		return statusStyle.Render("  No tasks were placed on the grid.")
	}

	byDay := make(map[string][]models.ScheduleEntry)
	var order []string
	for _, entry := range m.result.Schedule {
		day := entry.StartTime.Format("Monday, Jan 2")
		if _, seen := byDay[day]; !seen {
			order = append(order, day)
		}
		byDay[day] = append(byDay[day], entry)
	}

	var b strings.Builder
	for _, day := range order {
		b.WriteString(dayHeaderStyle.Render(day))
		b.WriteString("\n")
		for _, entry := range byDay[day] {
			line := fmt.Sprintf("%s  %s",
				timeStyle.Render(entry.StartTime.Format("15:04")+"-"+entry.EndTime.Format("15:04")),
				taskStyle.Render(entry.Name))
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

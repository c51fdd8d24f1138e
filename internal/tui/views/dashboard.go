package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/service"
	"github.com/xolan/daylog/internal/stats"
	"github.com/xolan/daylog/internal/tui/ui"
)

// summaryLoadedMsg carries a freshly computed dashboard.
type summaryLoadedMsg struct {
	summary stats.Summary
	err     error
}

// DashboardModel shows the weekly summary, the 7-day chart, the category
// distribution and the insights.
type DashboardModel struct {
	ctx      context.Context
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width   int
	height  int
	summary stats.Summary
	loaded  bool
	loading bool
	err     error
}

// NewDashboardModel creates the dashboard view.
func NewDashboardModel(ctx context.Context, services *service.Services, styles ui.Styles, keys ui.KeyMap) DashboardModel {
	return DashboardModel{
		ctx:      ctx,
		services: services,
		styles:   styles,
		keys:     keys,
	}
}

// Init implements tea.Model
func (m DashboardModel) Init() tea.Cmd {
	return m.load()
}

// SetSize updates the view dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m DashboardModel) load() tea.Cmd {
	ctx, dashboard := m.ctx, m.services.Dashboard
	return func() tea.Msg {
		s, err := dashboard.Summary(ctx)
		return summaryLoadedMsg{summary: s, err: err}
	}
}

// Update implements tea.Model
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.loaded = true
		}
		return m, nil

	case ui.EntriesChangedMsg:
		m.loading = true
		return m, m.load()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

// View implements tea.Model
func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Dashboard"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Could not load the dashboard: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Press r to retry"))
		return b.String()
	}
	if !m.loaded {
		b.WriteString(m.styles.StatLabel.Render("Loading..."))
		return b.String()
	}

	s := m.summary
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("This week", fmt.Sprintf("%d", s.WeekCount)),
		m.card("Average mood", s.AverageMood.String()),
		m.card("Average energy", s.AverageEnergy.String()),
		m.card("Average sleep", cli.FormatSleep(s.AverageSleep)),
	))
	b.WriteString("\n\n")

	b.WriteString(m.styles.StatLabel.Render("Mood & energy (last 7 days)"))
	b.WriteString("\n")
	for _, p := range s.Series {
		b.WriteString(pad(cli.DayLabel(p.Date), 10))
		b.WriteString(m.styles.BarMood.Render(pad(cli.Bar(p.Mood), cli.BarWidth+6)))
		b.WriteString(" ")
		b.WriteString(m.styles.BarEnergy.Render(cli.Bar(p.Energy)))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.BarMood.Render("■ mood"))
	b.WriteString("  ")
	b.WriteString(m.styles.BarEnergy.Render("■ energy"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.StatLabel.Render("Categories"))
	b.WriteString("\n")
	b.WriteString(m.renderDistribution())
	b.WriteString("\n")

	b.WriteString(m.styles.StatLabel.Render("Insights"))
	b.WriteString("\n")
	for _, insight := range s.Insights {
		b.WriteString("  • ")
		b.WriteString(insight)
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(m.styles.StatLabel.Render("Refreshing..."))
	}
	return b.String()
}

func (m DashboardModel) card(label, value string) string {
	return m.styles.Card.Render(m.styles.StatLabel.Render(label) + "\n" + m.styles.CardValue.Render(value))
}

func (m DashboardModel) renderDistribution() string {
	counts := m.summary.Distribution
	if len(counts) == 0 {
		return m.styles.StatLabel.Render("  No entries yet") + "\n"
	}

	total, width := 0, 0
	for _, c := range counts {
		total += c.Count
		width = max(width, lipgloss.Width(c.Category.Label()))
	}

	var b strings.Builder
	for _, c := range counts {
		share := float64(c.Count) / float64(total) * 100
		b.WriteString("  ")
		b.WriteString(m.styles.EntryCategory.Render(pad(c.Category.Label(), width)))
		b.WriteString(m.styles.StatValue.Render(fmt.Sprintf("  %3d", c.Count)))
		b.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("  %3.0f%%", share)))
		b.WriteString("\n")
	}
	return b.String()
}

// Package tui provides the terminal user interface for daylog.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/daylog/internal/service"
	"github.com/xolan/daylog/internal/tui/ui"
	"github.com/xolan/daylog/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabJournal Tab = iota
	TabDashboard
	TabHelp
)

var tabNames = []string{"Journal", "Dashboard", "Help"}

// themeSavedMsg reports the outcome of persisting the theme.
type themeSavedMsg struct {
	err error
}

// Model is the root TUI model
type Model struct {
	services *service.Services

	activeTab Tab
	width     int
	height    int
	notice    string

	journalView   views.JournalModel
	dashboardView views.DashboardModel
	helpView      views.HelpModel

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates the root model. The theme comes from the config file.
func New(ctx context.Context, services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().TUI.Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabJournal,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		journalView:   views.NewJournalModel(ctx, services, styles, keys),
		dashboardView: views.NewDashboardModel(ctx, services, styles, keys),
		helpView:      views.NewHelpModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.journalView.Init(),
		m.dashboardView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While an input has focus only ctrl+c leaves; every other key
		// belongs to the input.
		if m.isInputMode() {
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.activeTab = TabHelp
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			name := m.themeProvider.NextTheme()
			return m.applyTheme(name)
		case key.Matches(msg, m.keys.NextTab):
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, nil
		case key.Matches(msg, m.keys.Tab1):
			m.activeTab = TabJournal
			return m, nil
		case key.Matches(msg, m.keys.Tab2):
			m.activeTab = TabDashboard
			return m, nil
		case key.Matches(msg, m.keys.Tab3):
			m.activeTab = TabHelp
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.journalView.SetSize(m.width, contentHeight)
		m.dashboardView.SetSize(m.width, contentHeight)
		m.helpView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		return m.applyTheme(m.themeProvider.CurrentName())

	case themeSavedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Theme not saved: %v", msg.err)
		}
		return m, nil

	case ui.EntriesChangedMsg:
		var cmd tea.Cmd
		m.dashboardView, cmd = m.dashboardView.Update(msg)
		return m, cmd
	}

	return m.routeToViews(msg)
}

// routeToViews delivers keys to the active view and everything else to the
// view that owns the message.
func (m Model) routeToViews(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if _, ok := msg.(tea.KeyMsg); ok {
		switch m.activeTab {
		case TabJournal:
			m.journalView, cmd = m.journalView.Update(msg)
		case TabDashboard:
			m.dashboardView, cmd = m.dashboardView.Update(msg)
		case TabHelp:
			m.helpView, cmd = m.helpView.Update(msg)
		}
		return m, cmd
	}

	var cmds []tea.Cmd
	m.journalView, cmd = m.journalView.Update(msg)
	cmds = append(cmds, cmd)
	m.dashboardView, cmd = m.dashboardView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// applyTheme switches every view to the named theme and saves it.
func (m Model) applyTheme(name string) (tea.Model, tea.Cmd) {
	m.styles = m.themeProvider.Styles()
	m.notice = ""

	themeMsg := ui.ThemeChangedMsg{ThemeName: name, Styles: m.styles}
	m.journalView, _ = m.journalView.Update(themeMsg)
	m.dashboardView, _ = m.dashboardView.Update(themeMsg)
	m.helpView, _ = m.helpView.Update(themeMsg)

	return m, m.saveThemeConfig(name)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabJournal:
		b.WriteString(m.journalView.View())
	case TabDashboard:
		b.WriteString(m.dashboardView.View())
	case TabHelp:
		b.WriteString(m.helpView.View())
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.styles.Error.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	title := m.styles.StatLabel.Render("  " + m.themeProvider.CurrentDisplayName())
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, title)...))
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.isInputMode() {
		parts = append(parts, m.renderKeyHelp("Tab", "next field"))
		parts = append(parts, m.renderKeyHelp("Enter", "confirm"))
		parts = append(parts, m.renderKeyHelp("Esc", "back"))
	} else {
		switch m.activeTab {
		case TabJournal:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("/", "filter"))
			parts = append(parts, m.renderKeyHelp("c", "category"))
			parts = append(parts, m.renderKeyHelp("t", "today"))
			parts = append(parts, m.renderKeyHelp("x", "clear"))
			parts = append(parts, m.renderKeyHelp("r", "reload"))
		case TabDashboard:
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabHelp:
			parts = append(parts, m.renderKeyHelp("Enter", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-3", "views"))
		parts = append(parts, m.renderKeyHelp("T", "theme"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isInputMode reports whether the active view has an input focused.
func (m Model) isInputMode() bool {
	switch m.activeTab {
	case TabJournal:
		return m.journalView.IsInputMode()
	case TabHelp:
		return m.helpView.IsInputMode()
	}
	return false
}

// saveThemeConfig writes the theme to the config file.
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	config := m.services.Config
	return func() tea.Msg {
		cfg := config.Get()
		cfg.TUI.Theme = themeName
		return themeSavedMsg{err: config.Update(cfg)}
	}
}

// Run starts the TUI and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, services *service.Services) error {
	p := tea.NewProgram(New(ctx, services), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

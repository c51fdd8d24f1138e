package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/daylog/internal/service"
	"github.com/xolan/daylog/internal/tui/ui"
)

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// HelpModel lists the key bindings, the active configuration and the
// theme selector.
type HelpModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	width     int
	height    int
	themeName string

	// Theme selector state
	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int
}

// NewHelpModel creates the help view.
func NewHelpModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) HelpModel {
	m := HelpModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themeProvider.AvailableThemes(),
		themeName:     themeProvider.CurrentName(),
	}
	m.resetCursor()
	return m
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode reports whether the theme selector is open.
func (m HelpModel) IsInputMode() bool {
	return m.selectingTheme
}

// Update implements tea.Model
func (m HelpModel) Update(msg tea.Msg) (HelpModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}
		if key.Matches(msg, m.keys.Select) {
			m.selectingTheme = true
			m.themeOffset = visibleRange(m.themeCursor, m.themeOffset, maxVisibleThemes)
		}

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.resetCursor()
	}
	return m, nil
}

func (m HelpModel) handleThemeSelection(msg tea.KeyMsg) (HelpModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
		}
	case key.Matches(msg, m.keys.Select):
		selected := m.themes[m.themeCursor]
		m.selectingTheme = false
		return m, func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: selected} }
	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		m.resetCursor()
	}
	m.themeOffset = visibleRange(m.themeCursor, m.themeOffset, maxVisibleThemes)
	return m, nil
}

func (m *HelpModel) resetCursor() {
	for i, t := range m.themes {
		if t == m.themeName {
			m.themeCursor = i
			return
		}
	}
}

// View implements tea.Model
func (m HelpModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Help"))
	b.WriteString("\n")

	m.section(&b, "Global", [][2]string{
		{"Tab/1-3", "Switch views"},
		{"T", "Next theme"},
		{"?", "Show this help"},
		{"q", "Quit"},
	})
	m.section(&b, "Journal", [][2]string{
		{"↑/↓", "Move"},
		{"n", "New entry"},
		{"/", "Filter by text, date and time"},
		{"c", "Filter by category"},
		{"t", "Today's entries"},
		{"x", "Clear the filter"},
		{"r", "Reload from the backend"},
	})
	m.section(&b, "Entry form", [][2]string{
		{"Tab/↓", "Next field"},
		{"←/→", "Choose an option"},
		{"Ctrl+S", "Save"},
		{"Esc", "Back"},
	})

	cfg := m.services.Config.Get()
	b.WriteString(m.styles.StatLabel.Render("Configuration"))
	b.WriteString("\n")
	m.line(&b, "Config file", m.services.Config.GetPath())
	m.line(&b, "Backend", cfg.Backend)

	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
	} else {
		m.line(&b, "Theme", m.themeName)
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Press Enter to change theme"))
	}
	return b.String()
}

func (m HelpModel) section(b *strings.Builder, title string, rows [][2]string) {
	b.WriteString(m.styles.StatLabel.Render(title))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("  ")
		b.WriteString(m.styles.HelpKey.Render(r[0]))
		b.WriteString(m.styles.HelpDesc.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m HelpModel) line(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(m.styles.HelpKey.Render(label))
	b.WriteString(m.styles.StatValue.Render(value))
	b.WriteString("\n")
}

func (m HelpModel) renderThemeSelector() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.StatValue.Render("Select a theme"))
	b.WriteString("\n")

	end := min(len(m.themes), m.themeOffset+maxVisibleThemes)
	if m.themeOffset > 0 {
		b.WriteString(m.styles.StatLabel.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}
	for i := m.themeOffset; i < end; i++ {
		theme := m.themes[i]
		current := ""
		if theme == m.themeName {
			current = " (current)"
		}
		if i == m.themeCursor {
			b.WriteString(m.styles.EntrySelected.Render("▸ " + theme))
			b.WriteString(m.styles.Success.Render(current))
		} else {
			b.WriteString("  ")
			b.WriteString(m.styles.StatValue.Render(theme))
			b.WriteString(m.styles.Success.Render(current))
		}
		b.WriteString("\n")
	}
	if end < len(m.themes) {
		b.WriteString(m.styles.StatLabel.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.StatLabel.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

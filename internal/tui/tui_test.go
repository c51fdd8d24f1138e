package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/daylog/internal/config"
	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/service"
	"github.com/xolan/daylog/internal/tui/ui"
)

func setupTestServices(t *testing.T, theme string) *service.Services {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendMemory
	cfg.TUI.Theme = theme
	services, err := service.NewServices(context.Background(), service.Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Now:        func() time.Time { return time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewServices failed: %v", err)
	}
	return services
}

func newModel(t *testing.T) Model {
	t.Helper()
	m := New(context.Background(), setupTestServices(t, ""))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew(t *testing.T) {
	model := New(context.Background(), setupTestServices(t, ""))

	if model.activeTab != TabJournal {
		t.Errorf("expected initial tab to be Journal, got %d", model.activeTab)
	}
	if model.services == nil {
		t.Error("expected services to be set")
	}
	if model.themeProvider.CurrentName() != ui.DefaultTheme {
		t.Errorf("expected default theme, got %q", model.themeProvider.CurrentName())
	}
}

func TestNew_ThemeFromConfig(t *testing.T) {
	services := setupTestServices(t, "nord")
	model := New(context.Background(), services)
	if model.themeProvider.CurrentName() != "nord" {
		t.Skip("nord theme not available in this build")
	}
}

func TestInit(t *testing.T) {
	model := New(context.Background(), setupTestServices(t, ""))
	if cmd := model.Init(); cmd == nil {
		t.Error("expected Init to return a command")
	}
}

func TestView_BeforeSize(t *testing.T) {
	model := New(context.Background(), setupTestServices(t, ""))
	if got := model.View(); got != "Loading..." {
		t.Errorf("expected Loading..., got %q", got)
	}
}

func TestView_TabsAndStatusBar(t *testing.T) {
	m := newModel(t)
	view := m.View()
	for _, want := range append(tabNames, "new", "filter", "quit") {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestUpdate_TabSwitching(t *testing.T) {
	m := newModel(t)

	tests := []struct {
		msg  tea.KeyMsg
		want Tab
	}{
		{runes("2"), TabDashboard},
		{runes("3"), TabHelp},
		{runes("1"), TabJournal},
		{tea.KeyMsg{Type: tea.KeyTab}, TabDashboard},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, TabJournal},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, TabHelp},
		{runes("?"), TabHelp},
	}
	for _, tt := range tests {
		m, _ = press(m, tt.msg)
		if m.activeTab != tt.want {
			t.Errorf("after %q expected tab %d, got %d", tt.msg.String(), tt.want, m.activeTab)
		}
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := newModel(t)
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestUpdate_InputModeBlocksGlobalKeys(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, runes("/"))
	if !m.isInputMode() {
		t.Fatal("expected the journal filter to capture input")
	}

	m, _ = press(m, runes("q"))
	if !m.isInputMode() {
		t.Error("expected q to be typed into the filter")
	}
	m, _ = press(m, runes("2"))
	if m.activeTab != TabJournal {
		t.Error("expected tab keys to be typed while filtering")
	}

	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected ctrl+c to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from ctrl+c")
	}
}

func TestUpdate_ThemeCycleSaves(t *testing.T) {
	m := newModel(t)
	before := m.themeProvider.CurrentName()

	m, cmd := press(m, runes("T"))
	after := m.themeProvider.CurrentName()
	if len(m.themeProvider.AvailableThemes()) > 1 && after == before {
		t.Errorf("expected theme to change from %q", before)
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	saved, ok := cmd().(themeSavedMsg)
	if !ok {
		t.Fatalf("expected themeSavedMsg, got %T", cmd())
	}
	if saved.err != nil {
		t.Fatalf("saving theme failed: %v", saved.err)
	}
	if got := m.services.Config.Get().TUI.Theme; got != after {
		t.Errorf("expected config theme %q, got %q", after, got)
	}
}

func TestUpdate_ThemeChangeRequest(t *testing.T) {
	m := newModel(t)
	updated, cmd := m.Update(ui.ThemeChangeRequestMsg{ThemeName: ui.DefaultTheme})
	m = updated.(Model)
	if m.themeProvider.CurrentName() != ui.DefaultTheme {
		t.Errorf("expected %q, got %q", ui.DefaultTheme, m.themeProvider.CurrentName())
	}
	if cmd == nil {
		t.Error("expected a save command")
	}
}

func TestUpdate_EntriesChangedRefreshesDashboard(t *testing.T) {
	services := setupTestServices(t, "")
	m := New(context.Background(), services)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	ctx := context.Background()
	if err := services.Journal.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := services.Journal.Store().Append(ctx, entry.Entry{
		Category: entry.CategoryFood, Title: "Lunch", Date: "2024-03-10", Time: "12:00",
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	updated, cmd := m.Update(ui.EntriesChangedMsg{})
	if cmd == nil {
		t.Fatal("expected the dashboard to reload")
	}
	updated, _ = updated.Update(cmd())
	m = updated.(Model)

	m, _ = press(m, runes("2"))
	if !strings.Contains(m.View(), "Food") {
		t.Errorf("expected the dashboard to show the new category, got:\n%s", m.View())
	}
}

func TestStatusBar_InputHints(t *testing.T) {
	m := newModel(t)
	m, _ = press(m, runes("n"))
	if !strings.Contains(m.renderStatusBar(), "back") {
		t.Error("expected input hints while the form is open")
	}
}

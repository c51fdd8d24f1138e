package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/filter"
	"github.com/xolan/daylog/internal/service"
	"github.com/xolan/daylog/internal/timeutil"
	"github.com/xolan/daylog/internal/tui/ui"
)

type journalMode int

const (
	modeList journalMode = iota
	modeFilter
	modeForm
)

// Filter inputs, in focus order.
const (
	filterText = iota
	filterCategory
	filterDate
	filterTime
	filterInputs
)

var filterLabels = [filterInputs]string{"Search", "Category", "Date", "Time"}

// entriesLoadedMsg carries the result of loading the journal.
type entriesLoadedMsg struct {
	entries []entry.Entry
	err     error
}

// JournalModel lists the journal with a live filter and hosts the entry form.
type JournalModel struct {
	ctx      context.Context
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	all     []entry.Entry
	visible []entry.Entry
	cursor  int
	offset  int
	loading bool
	err     error
	notice  string

	mode        journalMode
	filters     [filterInputs]textinput.Model
	filterFocus int
	form        EntryFormModel
}

// NewJournalModel creates the journal view.
func NewJournalModel(ctx context.Context, services *service.Services, styles ui.Styles, keys ui.KeyMap) JournalModel {
	m := JournalModel{
		ctx:      ctx,
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
	}
	for i := range m.filters {
		in := textinput.New()
		in.CharLimit = 100
		in.Width = 30
		m.filters[i] = in
	}
	m.filters[filterText].Placeholder = "text in title, content or tags"
	m.filters[filterCategory].Placeholder = "all (←/→ to choose)"
	m.filters[filterDate].Placeholder = "YYYY-MM-DD"
	m.filters[filterTime].Placeholder = "HH:MM"
	return m
}

// Init implements tea.Model
func (m JournalModel) Init() tea.Cmd {
	return m.load(false)
}

// SetSize updates the view dimensions
func (m *JournalModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode reports whether keystrokes go to an input.
func (m JournalModel) IsInputMode() bool {
	return m.mode != modeList
}

// Entries returns the entries passing the current filter.
func (m JournalModel) Entries() []entry.Entry {
	return m.visible
}

// load fetches the journal in the background. reload drops the cached
// entries first.
func (m JournalModel) load(reload bool) tea.Cmd {
	ctx, journal := m.ctx, m.services.Journal
	return func() tea.Msg {
		if reload {
			if err := journal.Reload(ctx); err != nil {
				return entriesLoadedMsg{err: err}
			}
		}
		result, err := journal.List(ctx, nil)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		return entriesLoadedMsg{entries: result.Entries}
	}
}

// Update implements tea.Model
func (m JournalModel) Update(msg tea.Msg) (JournalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.all = msg.entries
		m.refilter()
		return m, nil

	case entrySubmittedMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		if msg.err != nil {
			return m, cmd
		}
		m.mode = modeList
		m.all = m.services.Journal.Store().Entries()
		m.refilter()
		m.notice = fmt.Sprintf("Entry added: %s", msg.entry.Title)
		return m, tea.Batch(cmd, func() tea.Msg { return ui.EntriesChangedMsg{} })

	case formClosedMsg:
		m.mode = modeList
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.form, _ = m.form.Update(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		case modeFilter:
			return m.handleFilterKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m JournalModel) handleListKeys(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.New):
		m.notice = ""
		m.mode = modeForm
		m.form = NewEntryFormModel(m.ctx, m.services.Journal.NewForm(), m.styles, m.keys)
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.openFilter(filterText)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Category):
		m.openFilter(filterCategory)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Today):
		m.filters[filterDate].SetValue(timeutil.DateString(m.services.Now()))
		m.refilter()
	case key.Matches(msg, m.keys.ClearFilter):
		for i := range m.filters {
			m.filters[i].SetValue("")
		}
		m.refilter()
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.notice = ""
		return m, m.load(true)
	}
	m.offset = visibleRange(m.cursor, m.offset, m.listRows())
	return m, nil
}

func (m JournalModel) handleFilterKeys(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
		m.filters[m.filterFocus].Blur()
		m.mode = modeList
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.focusFilter((m.filterFocus + 1) % filterInputs)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.PrevField):
		m.focusFilter((m.filterFocus + filterInputs - 1) % filterInputs)
		return m, textinput.Blink
	case m.filterFocus == filterCategory && (key.Matches(msg, m.keys.Left) || key.Matches(msg, m.keys.Right)):
		step := 1
		if key.Matches(msg, m.keys.Left) {
			step = -1
		}
		m.filters[filterCategory].SetValue(cycleCategory(m.filters[filterCategory].Value(), step))
		m.filters[filterCategory].CursorEnd()
		m.refilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filters[m.filterFocus], cmd = m.filters[m.filterFocus].Update(msg)
	m.refilter()
	return m, cmd
}

func (m *JournalModel) openFilter(focus int) {
	m.mode = modeFilter
	m.notice = ""
	m.focusFilter(focus)
}

func (m *JournalModel) focusFilter(i int) {
	m.filters[m.filterFocus].Blur()
	m.filterFocus = i
	m.filters[i].Focus()
}

// currentFilter turns the filter inputs into criteria. Partially typed
// dates and times are passed through unchanged and simply match nothing.
func (m JournalModel) currentFilter() *filter.Filter {
	category := filter.CategoryAll
	if raw := strings.TrimSpace(m.filters[filterCategory].Value()); raw != "" && !strings.EqualFold(raw, filter.CategoryAll) {
		if c, err := entry.ParseCategory(raw); err == nil {
			category = string(c)
		} else {
			category = raw
		}
	}

	date := strings.TrimSpace(m.filters[filterDate].Value())
	if d, err := timeutil.NormalizeDate(date); err == nil {
		date = d
	}
	clock := strings.TrimSpace(m.filters[filterTime].Value())
	if c, err := timeutil.NormalizeClock(clock); err == nil {
		clock = c
	}
	return filter.NewFilter(strings.TrimSpace(m.filters[filterText].Value()), category, date, clock)
}

func (m JournalModel) filtered() bool {
	for _, in := range m.filters {
		if strings.TrimSpace(in.Value()) != "" {
			return true
		}
	}
	return false
}

func (m *JournalModel) refilter() {
	m.visible = filter.Apply(m.all, m.currentFilter())
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	m.offset = visibleRange(m.cursor, m.offset, m.listRows())
}

// listRows is the number of entry lines that fit below the header.
func (m JournalModel) listRows() int {
	rows := m.height - 4
	if m.mode == modeFilter || m.filtered() {
		rows -= filterInputs + 1
	}
	if m.cursor < len(m.visible) {
		rows -= 3
	}
	return max(1, rows)
}

// View implements tea.Model
func (m JournalModel) View() string {
	if m.mode == modeForm {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Journal"))
	b.WriteString("\n")

	if m.mode == modeFilter || m.filtered() {
		b.WriteString(m.renderFilters())
		b.WriteString("\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.styles.StatLabel.Render("Loading entries..."))
		return b.String()
	case m.err != nil:
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Could not load entries: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Press r to retry"))
		return b.String()
	}

	if m.notice != "" {
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n")
	}

	if len(m.visible) == 0 {
		if len(m.all) == 0 {
			b.WriteString(m.styles.StatLabel.Render("No entries yet. Press n to write one."))
		} else {
			b.WriteString(m.styles.StatLabel.Render("No entries match the current filter. Press x to clear it."))
		}
		return b.String()
	}

	b.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("Showing %d of %d %s", len(m.visible), len(m.all), cli.Pluralize("entry", len(m.all)))))
	b.WriteString("\n\n")
	b.WriteString(RenderEntryList(m.visible, m.styles, EntryRenderOptions{
		Width:  m.width - 4,
		Cursor: m.cursor,
		Offset: m.offset,
		Limit:  m.listRows(),
	}))

	if e := m.visible[m.cursor]; e.Content != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.EntryDetails.Render(truncate(e.Content, max(10, m.width-4))))
	}
	return b.String()
}

func (m JournalModel) renderFilters() string {
	var b strings.Builder
	for i, in := range m.filters {
		label := filterLabels[i]
		if m.mode == modeFilter && i == m.filterFocus {
			b.WriteString(m.styles.FieldFocused.Render("▸ " + label))
		} else {
			b.WriteString(m.styles.FieldLabel.Render("  " + label))
		}
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}

// cycleCategory steps through "all" followed by every category.
func cycleCategory(current string, step int) string {
	choices := make([]string, 0, len(entry.Categories)+1)
	choices = append(choices, filter.CategoryAll)
	for _, c := range entry.Categories {
		choices = append(choices, string(c))
	}

	idx := 0
	if c, err := entry.ParseCategory(current); err == nil {
		for i, choice := range choices {
			if choice == string(c) {
				idx = i
			}
		}
	}
	return choices[(idx+step+len(choices))%len(choices)]
}

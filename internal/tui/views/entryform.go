package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/form"
	"github.com/xolan/daylog/internal/tui/ui"
)

// fieldOptions lists the choices of the enumerated fields.
var fieldOptions = map[form.Field]entry.Options{
	form.FieldMood:           entry.MoodOptions,
	form.FieldEnergy:         entry.EnergyOptions,
	form.FieldSleepQuality:   entry.SleepQualityOptions,
	form.FieldExerciseType:   entry.ExerciseOptions,
	form.FieldIntensity:      entry.IntensityOptions,
	form.FieldSocialType:     entry.SocialTypeOptions,
	form.FieldSocialEnergy:   entry.SocialEnergyOptions,
	form.FieldSkillStatus:    entry.SkillStatusOptions,
	form.FieldLearningMethod: entry.LearningMethodOptions,
	form.FieldCreativeType:   entry.CreativeTypeOptions,
	form.FieldCreativeEnergy: entry.CreativeEnergyOptions,
	form.FieldCareerFeeling:  entry.CareerFeelingOptions,
}

var fieldPlaceholders = map[form.Field]string{
	form.FieldDate:         "YYYY-MM-DD",
	form.FieldTime:         "HH:MM",
	form.FieldTags:         "comma, separated",
	form.FieldSleepHours:   "hours",
	form.FieldDuration:     "minutes",
	form.FieldLearningTime: "minutes",
	form.FieldCareerHours:  "hours",
}

// entrySubmittedMsg carries the outcome of a form submission.
type entrySubmittedMsg struct {
	entry entry.Entry
	err   error
}

// formClosedMsg is sent when the user leaves the form without saving.
type formClosedMsg struct{}

// EntryFormModel is the add-entry form: a category picker followed by the
// fields of the picked category.
type EntryFormModel struct {
	ctx        context.Context
	controller *form.Controller
	styles     ui.Styles
	keys       ui.KeyMap

	choosing  bool
	catCursor int

	fields     []form.Field
	inputs     []textinput.Model
	focus      int
	submitting bool
	err        error
}

// NewEntryFormModel returns a form that starts at the category picker.
func NewEntryFormModel(ctx context.Context, controller *form.Controller, styles ui.Styles, keys ui.KeyMap) EntryFormModel {
	return EntryFormModel{
		ctx:        ctx,
		controller: controller,
		styles:     styles,
		keys:       keys,
		choosing:   true,
	}
}

// Update implements tea.Model
func (m EntryFormModel) Update(msg tea.Msg) (EntryFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.choosing {
			return m.handleCategoryKeys(msg)
		}
		return m.handleFieldKeys(msg)

	case entrySubmittedMsg:
		m.submitting = false
		m.err = msg.err
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if !m.choosing && m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m EntryFormModel) handleCategoryKeys(msg tea.KeyMsg) (EntryFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.catCursor > 0 {
			m.catCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.catCursor < len(entry.Categories)-1 {
			m.catCursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.selectCategory(entry.Categories[m.catCursor])
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return formClosedMsg{} }
	}
	return m, nil
}

func (m EntryFormModel) handleFieldKeys(msg tea.KeyMsg) (EntryFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.submitting {
			return m, nil
		}
		m.choosing = true
		m.err = nil
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Select):
		if m.focus == len(m.inputs)-1 {
			return m.submit()
		}
		return m.moveFocus(1), textinput.Blink

	case key.Matches(msg, m.keys.NextField):
		return m.moveFocus(1), textinput.Blink

	case key.Matches(msg, m.keys.PrevField):
		return m.moveFocus(-1), textinput.Blink

	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		if opts, ok := fieldOptions[m.fields[m.focus]]; ok {
			step := 1
			if key.Matches(msg, m.keys.Left) {
				step = -1
			}
			m.inputs[m.focus].SetValue(cycleOption(opts, m.inputs[m.focus].Value(), step))
			m.inputs[m.focus].CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// selectCategory switches the controller to cat and builds one input per
// visible field, keeping the values already entered for common fields.
func (m *EntryFormModel) selectCategory(cat entry.Category) {
	for i, f := range m.fields {
		_ = m.controller.Set(f, m.inputs[i].Value())
	}
	m.controller.SelectCategory(cat)
	m.choosing = false
	m.err = nil
	m.fields = m.controller.Fields()
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.CharLimit = 500
		in.Width = 40
		in.Placeholder = fieldPlaceholders[f]
		if _, ok := fieldOptions[f]; ok {
			in.Placeholder = "←/→ to choose"
		}
		in.SetValue(m.controller.Value(f))
		m.inputs[i] = in
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m EntryFormModel) moveFocus(step int) EntryFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + step + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

// submit copies the inputs into the controller and submits it in the
// background. Further submits are ignored while one is in flight.
func (m EntryFormModel) submit() (EntryFormModel, tea.Cmd) {
	if m.submitting || m.controller.Submitting() {
		return m, nil
	}
	for i, f := range m.fields {
		if err := m.controller.Set(f, m.inputs[i].Value()); err != nil {
			m.err = err
			return m, nil
		}
	}
	if _, err := m.controller.Build(); err != nil {
		m.err = err
		return m, nil
	}

	m.submitting = true
	m.err = nil
	ctx, controller := m.ctx, m.controller
	return m, func() tea.Msg {
		e, err := controller.Submit(ctx)
		return entrySubmittedMsg{entry: e, err: err}
	}
}

// View implements tea.Model
func (m EntryFormModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("New Entry"))
	b.WriteString("\n")

	if m.choosing {
		b.WriteString(m.styles.StatLabel.Render("Pick a category"))
		b.WriteString("\n\n")
		for i, c := range entry.Categories {
			if i == m.catCursor {
				b.WriteString(m.styles.EntrySelected.Render("▸ " + c.Label()))
			} else {
				b.WriteString("  " + c.Label())
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("↑/↓ navigate  Enter select  Esc cancel"))
		return b.String()
	}

	b.WriteString(m.styles.EntryCategory.Render(m.controller.Category().Label()))
	b.WriteString("\n\n")
	for i, f := range m.fields {
		label := fieldLabel(f)
		if m.controller.Required(f) {
			label += " *"
		}
		if i == m.focus {
			b.WriteString(m.styles.FieldFocused.Render("▸ " + label))
		} else {
			b.WriteString(m.styles.FieldLabel.Render("  " + label))
		}
		b.WriteString(m.inputs[i].View())
		if opts, ok := fieldOptions[f]; ok && i == m.focus {
			b.WriteString("  ")
			b.WriteString(m.styles.StatLabel.Render(strings.Join(opts.Plain(), " / ")))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.submitting:
		b.WriteString(m.styles.Warning.Render("Saving..."))
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	default:
		b.WriteString(m.styles.StatLabel.Render("Tab/↓ next field  Ctrl+S save  Esc change category"))
	}
	return b.String()
}

// Submitting reports whether a submission is in flight.
func (m EntryFormModel) Submitting() bool {
	return m.submitting
}

// fieldLabel turns "sleep_hours" into "Sleep hours".
func fieldLabel(f form.Field) string {
	s := strings.ReplaceAll(string(f), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// cycleOption returns the option step places away from current, wrapping
// around. An unknown current value starts from the first option.
func cycleOption(opts entry.Options, current string, step int) string {
	idx := -1
	if canonical, err := opts.Normalize("", current); err == nil {
		for i, o := range opts {
			if o == canonical {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return opts[0]
	}
	return opts[(idx+step+len(opts))%len(opts)]
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style
	EntryWhen     lipgloss.Style
	EntryCategory lipgloss.Style
	EntryDetails  lipgloss.Style
	EntryTag      lipgloss.Style

	// Dashboard
	Card      lipgloss.Style
	CardValue lipgloss.Style
	BarMood   lipgloss.Style
	BarEnergy lipgloss.Style
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Form
	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style

	Dialog lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// NewStylesFromRegistry builds the styles from the current tint of r:
// purple for titles and categories, cyan for dates, tags and keys, bright
// purple for values, bright black for muted text.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	primary := r.Purple()
	secondary := r.Cyan()
	accent := r.BrightPurple()
	muted := r.BrightBlack()
	success := r.Green()
	warning := r.Yellow()
	errorColor := r.Red()
	fg := r.Fg()
	bg := r.Bg()

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted),
		TabActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(fg).
			Background(bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		EntrySelected: lipgloss.NewStyle().
			Background(muted).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),
		EntryWhen: lipgloss.NewStyle().
			Foreground(secondary),
		EntryCategory: lipgloss.NewStyle().
			Foreground(primary),
		EntryDetails: lipgloss.NewStyle().
			Foreground(muted),
		EntryTag: lipgloss.NewStyle().
			Foreground(secondary),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			MarginRight(1),
		CardValue: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		BarMood: lipgloss.NewStyle().
			Foreground(primary),
		BarEnergy: lipgloss.NewStyle().
			Foreground(secondary),
		StatLabel: lipgloss.NewStyle().
			Foreground(muted),
		StatValue: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),

		HelpKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true).
			Width(12),
		HelpDesc: lipgloss.NewStyle().
			Foreground(muted),

		FieldLabel: lipgloss.NewStyle().
			Foreground(muted).
			Width(18),
		FieldFocused: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Width(18),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2).
			Width(50),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}

// Package cli provides the CLI presentation layer for daylog.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/stats"
	"github.com/xolan/daylog/internal/storage"
	"github.com/xolan/daylog/internal/timeutil"
)

// BarWidth is the width of a full series bar.
const BarWidth = 20

var (
	titleColor = color.New(color.Bold, color.Underline)
	faintColor = color.New(color.Faint)
	dateColor  = color.New(color.FgHiYellow)
	moodColor  = color.New(color.FgMagenta)
	energyFill = color.New(color.FgCyan)
)

// Title renders a section title.
func Title(s string) string {
	return titleColor.Sprint(s)
}

// Faint renders secondary text.
func Faint(s string) string {
	return faintColor.Sprint(s)
}

// FormatTags formats tags as "#a #b", or "" without tags.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return strings.Join(parts, " ")
}

// FormatDetails summarizes the category-specific fields of e.
// Examples: "😊 Happy · High (7-10) · 7.5h sleep", "Running · 30 min · High"
func FormatDetails(e entry.Entry) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	switch d := e.Details.(type) {
	case entry.Wellness:
		add(d.Mood)
		add(d.Energy)
		if d.SleepHours != nil {
			add(formatNumber(*d.SleepHours) + "h sleep")
		}
		if d.SleepQuality != "" {
			add(d.SleepQuality + " sleep")
		}
	case entry.Exercise:
		add(d.Kind)
		if d.DurationMinutes != nil {
			add(fmt.Sprintf("%d min", *d.DurationMinutes))
		}
		add(d.Intensity)
	case entry.Social:
		add(d.Type)
		add(d.Energy)
	case entry.Learning:
		add(d.Skill)
		if d.Minutes != nil {
			add(fmt.Sprintf("%d min", *d.Minutes))
		}
		add(d.Status)
		add(d.Method)
	case entry.Creative:
		add(d.Type)
		add(d.Energy)
	case entry.Career:
		add(d.Activity)
		add(d.Feeling)
		if d.Hours != nil {
			add(formatNumber(*d.Hours) + "h")
		}
	}
	return strings.Join(parts, " · ")
}

// FormatWhen formats the date and optional time of an entry.
// Example: "2024-03-10 09:30"
func FormatWhen(e entry.Entry) string {
	if e.Time == "" {
		return e.Date
	}
	return e.Date + " " + e.Time
}

// EntryTable lays entries out one per row: when, category, title with
// tags, details and content.
func EntryTable(entries []entry.Entry) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60

	for _, e := range entries {
		title := e.Title
		if tags := FormatTags(e.Tags); tags != "" {
			title += " " + faintColor.Sprint(tags)
		}
		tbl.AddRow(dateColor.Sprint(FormatWhen(e)), e.Category.Label(), title, FormatDetails(e))
		if e.Content != "" {
			tbl.AddRow("", "", faintColor.Sprint(e.Content), "")
		}
	}
	return tbl
}

// EntryCard formats a single entry over several lines, the way a saved
// entry is echoed back.
func EntryCard(e entry.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", e.Category.Label(), titleColor.Sprint(e.Title))
	when := timeutil.FormatLongDate(e.Date)
	if e.Time != "" {
		when += " at " + timeutil.FormatClock12(e.Time)
	}
	fmt.Fprintf(&b, "  %s\n", when)
	if details := FormatDetails(e); details != "" {
		fmt.Fprintf(&b, "  %s\n", details)
	}
	if tags := FormatTags(e.Tags); tags != "" {
		fmt.Fprintf(&b, "  %s\n", faintColor.Sprint(tags))
	}
	if e.Content != "" {
		fmt.Fprintf(&b, "  %s\n", e.Content)
	}
	return b.String()
}

// SummaryTable lays out the four summary cards.
func SummaryTable(s stats.Summary) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("This week:", fmt.Sprintf("%d %s", s.WeekCount, Pluralize("entry", s.WeekCount)))
	tbl.AddRow("Average mood:", s.AverageMood.String())
	tbl.AddRow("Average energy:", s.AverageEnergy.String())
	tbl.AddRow("Average sleep:", FormatSleep(s.AverageSleep))
	return tbl
}

// FormatSleep renders a sleep average as hours.
func FormatSleep(a stats.Average) string {
	if !a.Valid() {
		return a.String()
	}
	return a.String() + "h"
}

// SeriesTable lays out the 7-day mood and energy series as bars.
func SeriesTable(points []stats.DayPoint) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("DAY", "MOOD", "ENERGY")
	for _, p := range points {
		tbl.AddRow(DayLabel(p.Date), moodColor.Sprint(Bar(p.Mood)), energyFill.Sprint(Bar(p.Energy)))
	}
	return tbl
}

// DayLabel turns a YYYY-MM-DD date into "Mon 03/04".
func DayLabel(date string) string {
	t, err := timeutil.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Mon 01/02")
}

// Bar renders a value on a 0-10 scale as a bar of BarWidth cells with
// the value appended. A nil value is a missing sample.
func Bar(v *float64) string {
	if v == nil {
		return "·"
	}
	n := int(math.Round(*v / 10 * BarWidth))
	n = max(0, min(n, BarWidth))
	return strings.Repeat("█", n) + " " + formatNumber(*v)
}

// DistributionTable lays out entry counts per category with their share.
func DistributionTable(counts []stats.CategoryCount) *uitable.Table {
	total := 0
	for _, c := range counts {
		total += c.Count
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range counts {
		share := 0.0
		if total > 0 {
			share = float64(c.Count) / float64(total) * 100
		}
		tbl.AddRow(c.Category.Label(), c.Count, fmt.Sprintf("%.0f%%", share))
	}
	return tbl
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning storage.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count.
// Words ending in a consonant and "y" take "ies".
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") && len(word) > 1 && !strings.ContainsAny(word[len(word)-2:len(word)-1], "aeiou") {
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}

func formatNumber(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", f), "0"), ".")
}

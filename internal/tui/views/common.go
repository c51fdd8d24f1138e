package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/tui/ui"
)

// EntryRenderOptions configures how entries are rendered
type EntryRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Currently selected entry index (-1 for none)
	Offset int // Index of the first entry shown
	Limit  int // Number of entries shown, 0 for all
}

// RenderEntryList renders entries one per line with aligned when and
// category columns, followed by the title, tags and details.
func RenderEntryList(entries []entry.Entry, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 {
		return ""
	}

	end := len(entries)
	if opts.Limit > 0 {
		end = min(end, opts.Offset+opts.Limit)
	}
	start := max(0, min(opts.Offset, end))

	whenWidth, labelWidth := 0, 0
	for _, e := range entries[start:end] {
		whenWidth = max(whenWidth, lipgloss.Width(cli.FormatWhen(e)))
		labelWidth = max(labelWidth, lipgloss.Width(e.Category.Label()))
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		e := entries[i]
		parts := []string{
			styles.EntryWhen.Render(pad(cli.FormatWhen(e), whenWidth)),
			styles.EntryCategory.Render(pad(e.Category.Label(), labelWidth)),
			e.Title,
		}
		if tags := cli.FormatTags(e.Tags); tags != "" {
			parts = append(parts, styles.EntryTag.Render(tags))
		}
		if details := cli.FormatDetails(e); details != "" {
			parts = append(parts, styles.EntryDetails.Render(details))
		}
		line := strings.Join(parts, "  ")
		if opts.Width > 0 && lipgloss.Width(line) > opts.Width {
			// Styled text cannot be cut safely; fall back to plain text.
			line = truncate(strings.Join(plainParts(e, whenWidth, labelWidth), "  "), opts.Width)
		}

		style := styles.EntryNormal
		if i == opts.Cursor {
			style = styles.EntrySelected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func plainParts(e entry.Entry, whenWidth, labelWidth int) []string {
	parts := []string{pad(cli.FormatWhen(e), whenWidth), pad(e.Category.Label(), labelWidth), e.Title}
	if tags := cli.FormatTags(e.Tags); tags != "" {
		parts = append(parts, tags)
	}
	if details := cli.FormatDetails(e); details != "" {
		parts = append(parts, details)
	}
	return parts
}

// pad right-pads s to width terminal cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// truncate cuts s to at most width terminal cells, ending in "…" when cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String() + "…"
}

// visibleRange keeps cursor inside a window of size rows starting at offset.
func visibleRange(cursor, offset, rows int) int {
	if rows <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+rows {
		return cursor - rows + 1
	}
	return offset
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/filter"
	"github.com/xolan/daylog/internal/service"
	"github.com/xolan/daylog/internal/shared"
)

// ListEntries lists the entries matching f, newest first
func ListEntries(ctx context.Context, deps *cli.Deps, f *filter.Filter) {
	result, err := deps.Services.Journal.List(ctx, f)
	if err != nil {
		fail(deps, err)
		return
	}

	if result.Total == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries yet. Add one with 'daylog add'.")
		return
	}
	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s. Try adjusting your search.\n", describeFilter(f))
		return
	}

	heading := "Entries"
	if result.Filtered() {
		heading = fmt.Sprintf("Entries for %s", describeFilter(f))
	}
	_, _ = fmt.Fprintln(deps.Stdout, cli.Title(heading))
	_, _ = fmt.Fprintln(deps.Stdout, cli.EntryTable(result.Entries))
	if result.Filtered() {
		_, _ = fmt.Fprintf(deps.Stdout, "Showing %d of %d %s\n", len(result.Entries), result.Total, cli.Pluralize("entry", result.Total))
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Total: %d %s\n", result.Total, cli.Pluralize("entry", result.Total))
	}
}

// SearchEntries lists the entries containing text
func SearchEntries(ctx context.Context, deps *cli.Deps, text string, f *filter.Filter) {
	if strings.TrimSpace(text) == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Search text cannot be empty")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: daylog search <text>")
		deps.Exit(1)
		return
	}

	result, err := deps.Services.Journal.Search(ctx, text, f)
	if err != nil {
		fail(deps, err)
		return
	}

	if result.Total == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found matching %q\n", result.Query)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s\n", cli.Title(fmt.Sprintf("Search results for %q", result.Query)))
	_, _ = fmt.Fprintln(deps.Stdout, cli.EntryTable(result.Entries))
	_, _ = fmt.Fprintf(deps.Stdout, "Found %d matching %s\n", result.Total, cli.Pluralize("entry", result.Total))
}

// AddEntry submits a new entry and echoes it back
func AddEntry(ctx context.Context, deps *cli.Deps, req service.AddRequest) {
	e, err := deps.Services.Journal.Add(ctx, req)
	if err != nil {
		if shared.IsValidation(err) && req.Category == "" && req.Preset == "" {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Usage: daylog add --category <category> --title <title> [flags]")
			_, _ = fmt.Fprintln(deps.Stderr, "Example: daylog add -c wellness -t \"Morning check-in\" --mood happy")
			deps.Exit(1)
			return
		}
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Entry added successfully!")
	_, _ = fmt.Fprint(deps.Stdout, cli.EntryCard(e))
}

// ClearEntries deletes every entry of the current user after confirmation.
// yes skips the prompt.
func ClearEntries(ctx context.Context, deps *cli.Deps, yes bool) {
	confirm := func() bool {
		if yes {
			return true
		}
		return deps.Confirm("Are you sure you want to clear all data? This action cannot be undone. [y/N]: ")
	}

	err := deps.Services.Journal.Clear(ctx, confirm)
	if errors.Is(err, shared.ErrNotConfirmed) {
		_, _ = fmt.Fprintln(deps.Stdout, "Cancelled. No entries were deleted.")
		return
	}
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "All data cleared")
}

func describeFilter(f *filter.Filter) string {
	if f == nil || f.IsEmpty() {
		return "all entries"
	}
	var parts []string
	if f.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", f.Text))
	}
	if f.Category != "" && f.Category != filter.CategoryAll {
		parts = append(parts, "category "+f.Category)
	}
	if f.Date != "" {
		parts = append(parts, f.Date)
	}
	if f.Time != "" {
		parts = append(parts, "at "+f.Time)
	}
	return strings.Join(parts, ", ")
}

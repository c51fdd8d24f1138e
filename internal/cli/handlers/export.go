package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/export"
)

// ExportEntries writes every entry as csv or json to target
func ExportEntries(ctx context.Context, deps *cli.Deps, formatName, target string) {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: daylog export <csv|json> [--output <path|-|s3://bucket/key>]")
		deps.Exit(1)
		return
	}

	result, err := deps.Services.Export.Export(ctx, format, target, deps.Stdout)
	if err != nil {
		fail(deps, err)
		return
	}

	// Stdout carries the export itself.
	out := deps.Stdout
	if result.Destination.Kind == export.DestStdout {
		out = deps.Stderr
	}
	_, _ = fmt.Fprintf(out, "Exported %d %s to %s\n", result.Count, cli.Pluralize("entry", result.Count), result.Destination)
}

// ImportEntries appends the entries of a JSON export. path "-" reads stdin.
func ImportEntries(ctx context.Context, deps *cli.Deps, path string) {
	var r io.Reader = deps.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to open import file: %v\n", err)
			deps.Exit(1)
			return
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	n, err := deps.Services.Export.Import(ctx, r)
	if err != nil {
		if n == 0 && hintFor(err) == "" {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid file format: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "No entries were imported.")
			deps.Exit(1)
			return
		}
		if n > 0 {
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: Imported %d %s before failing\n", n, cli.Pluralize("entry", n))
		}
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries imported successfully! (%d %s)\n", n, cli.Pluralize("entry", n))
}

package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/storage"
)

// ValidateStorage reports the health of the local entries file
func ValidateStorage(deps *cli.Deps) {
	if !localStorage(deps) {
		return
	}

	health, err := deps.Services.Storage.Validate()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to validate storage: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Storage file: %s\n", deps.Services.Storage.Path())
	_, _ = fmt.Fprintf(deps.Stdout, "Total lines: %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid entries: %d\n", health.ValidEntries)
	if health.CorruptedEntries == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Storage is healthy")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Corrupted entries: %d\n", health.CorruptedEntries)
	for _, w := range health.Warnings {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(w))
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Corrupted lines are skipped when loading. Run 'daylog restore' to recover from a backup.")
	deps.Exit(1)
}

// ListBackups prints the available backups of the local entries file
func ListBackups(deps *cli.Deps) {
	if !localStorage(deps) {
		return
	}

	backups := deps.Services.Storage.Backups()
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for i, backup := range backups {
		if i == 0 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", backup.Number, backup.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", backup.Number, backup.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Restore with 'daylog restore <n>'")
}

// RestoreBackup replaces the local entries file with backup arg
func RestoreBackup(ctx context.Context, deps *cli.Deps, arg string) {
	if !localStorage(deps) {
		return
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", arg)
		deps.Exit(1)
		return
	}
	if n < 1 || n > storage.MaxBackupCount {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, n)
		deps.Exit(1)
		return
	}

	if err := deps.Services.Storage.Restore(n); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if err := deps.Services.Journal.Reload(ctx); err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", n)
}

func localStorage(deps *cli.Deps) bool {
	if deps.Services.Storage != nil {
		return true
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Backups and validation need the local backend (current: %s)\n", deps.Config.Backend)
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Set backend = \"local\" in the config file")
	deps.Exit(1)
	return false
}

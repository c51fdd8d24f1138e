package handlers

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestValidateStorage_Healthy(t *testing.T) {
	deps, stdout, _, exitCode := setupLocalDeps(t)
	addEntry(t, deps, "journal", "Morning pages", nil)

	ValidateStorage(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Valid entries: 1") || !strings.Contains(stdout.String(), "Storage is healthy") {
		t.Errorf("expected healthy report, got %q", stdout.String())
	}
}

func TestValidateStorage_Corrupted(t *testing.T) {
	deps, stdout, _, exitCode := setupLocalDeps(t)
	addEntry(t, deps, "journal", "Morning pages", nil)

	f, err := os.OpenFile(deps.Services.Storage.Path(), os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("{not json\n")
	_ = f.Close()

	ValidateStorage(deps)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Corrupted entries: 1") || !strings.Contains(stdout.String(), "Line 2: {not json") {
		t.Errorf("expected corruption report, got %q", stdout.String())
	}
}

func TestValidateStorage_NotLocal(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	ValidateStorage(deps)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "need the local backend (current: memory)") {
		t.Errorf("expected backend error, got %q", stderr.String())
	}
}

func TestListBackups_None(t *testing.T) {
	deps, stdout, _, _ := setupLocalDeps(t)

	ListBackups(deps)

	if !strings.Contains(stdout.String(), "No backups available") {
		t.Errorf("expected no backups, got %q", stdout.String())
	}
}

func TestRestoreBackup_AfterClear(t *testing.T) {
	deps, stdout, _, exitCode := setupLocalDeps(t)
	addEntry(t, deps, "journal", "Precious", nil)
	ClearEntries(context.Background(), deps, true)
	if deps.Services.Journal.Store().Len() != 0 {
		t.Fatal("expected cleared journal")
	}

	stdout.Reset()
	ListBackups(deps)
	if !strings.Contains(stdout.String(), "1: ") || !strings.Contains(stdout.String(), "(most recent)") {
		t.Errorf("expected a backup, got %q", stdout.String())
	}

	stdout.Reset()
	RestoreBackup(context.Background(), deps, "1")

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Successfully restored from backup 1") {
		t.Errorf("expected restore message, got %q", stdout.String())
	}
	entries := deps.Services.Journal.Store().Entries()
	if len(entries) != 1 || entries[0].Title != "Precious" {
		t.Errorf("expected restored entry, got %+v", entries)
	}
}

func TestRestoreBackup_InvalidNumber(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"abc", "Invalid backup number 'abc'"},
		{"0", "must be between 1 and 3"},
		{"4", "must be between 1 and 3"},
		{"2", "backup 2 does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			deps, _, stderr, exitCode := setupLocalDeps(t)

			RestoreBackup(context.Background(), deps, tt.arg)

			if *exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", *exitCode)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("expected %q in stderr, got %q", tt.want, stderr.String())
			}
		})
	}
}

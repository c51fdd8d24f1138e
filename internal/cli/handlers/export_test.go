package handlers

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportEntries_File(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	addEntry(t, deps, "journal", "Morning pages", nil)
	path := filepath.Join(t.TempDir(), "out.json")

	ExportEntries(context.Background(), deps, "json", path)

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Exported 1 entry to "+path) {
		t.Errorf("expected summary, got %q", stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if len(records) != 1 || records[0]["title"] != "Morning pages" {
		t.Errorf("unexpected export: %s", data)
	}
}

func TestExportEntries_Stdout(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	addEntry(t, deps, "journal", "Morning pages", nil)

	ExportEntries(context.Background(), deps, "csv", "-")

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.HasPrefix(stdout.String(), "Date,Time,Type") {
		t.Errorf("expected CSV on stdout, got %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "Exported") {
		t.Error("summary must not mix with the export")
	}
	if !strings.Contains(stderr.String(), "Exported 1 entry to stdout") {
		t.Errorf("expected summary on stderr, got %q", stderr.String())
	}
}

func TestExportEntries_BadFormat(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	ExportEntries(context.Background(), deps, "xml", "")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Usage: daylog export") {
		t.Errorf("expected usage, got %q", stderr.String())
	}
}

func TestImportEntries(t *testing.T) {
	source, _, _, _ := setupTestDeps(t)
	addEntry(t, source, "journal", "First", nil)
	addEntry(t, source, "food", "Second", nil)
	path := filepath.Join(t.TempDir(), "backup.json")
	ExportEntries(context.Background(), source, "json", path)

	deps, stdout, _, exitCode := setupTestDeps(t)
	ImportEntries(context.Background(), deps, path)

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Entries imported successfully! (2 entries)") {
		t.Errorf("expected success message, got %q", stdout.String())
	}
	entries := deps.Services.Journal.Store().Entries()
	if len(entries) != 2 || entries[0].Title != "Second" {
		t.Errorf("expected export order to be kept, got %+v", entries)
	}
}

func TestImportEntries_Stdin(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	deps.Stdin = strings.NewReader(`[{"type":"journal","title":"Piped","date":"2024-03-01"}]`)

	ImportEntries(context.Background(), deps, "-")

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "(1 entry)") {
		t.Errorf("expected success message, got %q", stdout.String())
	}
}

func TestImportEntries_InvalidFile(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"not":"a list"}`), 0644); err != nil {
		t.Fatal(err)
	}

	ImportEntries(context.Background(), deps, path)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Invalid file format") || !strings.Contains(stderr.String(), "No entries were imported") {
		t.Errorf("expected invalid format error, got %q", stderr.String())
	}
	if deps.Services.Journal.Store().Len() != 0 {
		t.Error("expected nothing imported")
	}
}

func TestImportEntries_MissingFile(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	ImportEntries(context.Background(), deps, filepath.Join(t.TempDir(), "missing.json"))

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Failed to open import file") {
		t.Errorf("expected open error, got %q", stderr.String())
	}
}

package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/daylog/internal/export"
	"github.com/xolan/daylog/internal/form"
)

func TestExportService_CSVToDirectory(t *testing.T) {
	s := newTestServices(t)
	addEntry(t, s, "journal", "First", nil)
	addEntry(t, s, "exercise", "Run", map[form.Field]string{form.FieldExerciseType: "running", form.FieldDuration: "25"})

	dir := t.TempDir()
	result, err := s.Export.Export(context.Background(), export.FormatCSV, dir, nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	want := filepath.Join(dir, "daily-journal-2024-03-10.csv")
	if result.Destination.Path != want {
		t.Errorf("expected %q, got %q", want, result.Destination.Path)
	}
	if result.Count != 2 {
		t.Errorf("expected 2 entries, got %d", result.Count)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], `2024-03-10,09:30,exercise,"Run"`) {
		t.Errorf("unexpected first row %q", lines[1])
	}
}

func TestExportService_JSONRoundTrip(t *testing.T) {
	s := newTestServices(t)
	addEntry(t, s, "journal", "Older", nil)
	addEntry(t, s, "wellness", "Newer", map[form.Field]string{form.FieldMood: "happy"})

	var out bytes.Buffer
	if _, err := s.Export.Export(context.Background(), export.FormatJSON, "-", &out); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	other := newTestServices(t)
	n, err := other.Export.Import(context.Background(), &out)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported entries, got %d", n)
	}

	result, _ := other.Journal.List(context.Background(), nil)
	if result.Entries[0].Title != "Newer" || result.Entries[1].Title != "Older" {
		t.Errorf("expected export order to be kept, got %q then %q", result.Entries[0].Title, result.Entries[1].Title)
	}
}

func TestExportService_ImportInvalid(t *testing.T) {
	s := newTestServices(t)

	n, err := s.Export.Import(context.Background(), strings.NewReader(`{"not":"an array"}`))
	if err == nil {
		t.Fatal("expected an error")
	}
	if n != 0 || s.Journal.Store().Len() != 0 {
		t.Error("expected nothing to be imported")
	}
}

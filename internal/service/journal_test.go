package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/filter"
	"github.com/xolan/daylog/internal/form"
	"github.com/xolan/daylog/internal/shared"
)

func addEntry(t *testing.T, s *Services, category, title string, values map[form.Field]string) entry.Entry {
	t.Helper()
	if values == nil {
		values = map[form.Field]string{}
	}
	values[form.FieldTitle] = title
	e, err := s.Journal.Add(context.Background(), AddRequest{Category: category, Values: values})
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", title, err)
	}
	return e
}

func TestJournalService_AddDefaults(t *testing.T) {
	s := newTestServices(t)

	e := addEntry(t, s, "journal", "  Morning pages  ", nil)

	if e.ID == "" {
		t.Error("expected an assigned id")
	}
	if e.UserID != "local" {
		t.Errorf("expected user 'local', got %q", e.UserID)
	}
	if e.Title != "Morning pages" {
		t.Errorf("expected trimmed title, got %q", e.Title)
	}
	if e.Date != "2024-03-10" || e.Time != "09:30" {
		t.Errorf("expected date and time defaults, got %q %q", e.Date, e.Time)
	}
}

func TestJournalService_AddDetails(t *testing.T) {
	s := newTestServices(t)

	e := addEntry(t, s, "wellness", "Check-in", map[form.Field]string{
		form.FieldMood:       "calm",
		form.FieldSleepHours: "7.5",
		form.FieldTags:       "morning, ,calm",
	})

	w, ok := e.Details.(entry.Wellness)
	if !ok {
		t.Fatalf("expected wellness details, got %T", e.Details)
	}
	if w.Mood != "😌 Calm" {
		t.Errorf("expected canonical mood, got %q", w.Mood)
	}
	if w.SleepHours == nil || *w.SleepHours != 7.5 {
		t.Errorf("expected 7.5 sleep hours, got %v", w.SleepHours)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "morning" || e.Tags[1] != "calm" {
		t.Errorf("expected tags [morning calm], got %v", e.Tags)
	}
}

func TestJournalService_AddRejections(t *testing.T) {
	tests := []struct {
		name string
		req  AddRequest
	}{
		{"missing category", AddRequest{Values: map[form.Field]string{form.FieldTitle: "x"}}},
		{"missing title", AddRequest{Category: "journal"}},
		{"exercise without type", AddRequest{Category: "exercise", Values: map[form.Field]string{form.FieldTitle: "x"}}},
		{"field of another group", AddRequest{Category: "social", Values: map[form.Field]string{form.FieldTitle: "x", form.FieldMood: "happy"}}},
		{"unknown enum", AddRequest{Category: "wellness", Values: map[form.Field]string{form.FieldTitle: "x", form.FieldMood: "elated"}}},
		{"unknown preset", AddRequest{Preset: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t)
			_, err := s.Journal.Add(context.Background(), tt.req)
			if !shared.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if s.Journal.Store().Len() != 0 {
				t.Error("expected nothing to be stored")
			}
		})
	}
}

func TestJournalService_AddPreset(t *testing.T) {
	s := newTestServices(t)

	e, err := s.Journal.Add(context.Background(), AddRequest{
		Preset: "run",
		Values: map[form.Field]string{form.FieldDuration: "30"},
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if e.Title != "Evening run" || e.Category != entry.CategoryExercise {
		t.Errorf("expected preset title and category, got %q %q", e.Title, e.Category)
	}
	ex := e.Details.(entry.Exercise)
	if ex.Kind != "Running" || ex.Intensity != "Moderate" || ex.DurationMinutes == nil || *ex.DurationMinutes != 30 {
		t.Errorf("unexpected exercise details: %+v", ex)
	}
}

func TestJournalService_ListAndSearch(t *testing.T) {
	s := newTestServices(t)
	addEntry(t, s, "journal", "Groceries", map[form.Field]string{form.FieldContent: "milk and bread"})
	addEntry(t, s, "exercise", "Run", map[form.Field]string{form.FieldExerciseType: "running"})
	addEntry(t, s, "journal", "Call mom", map[form.Field]string{form.FieldDate: "2024-03-09"})

	all, err := s.Journal.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if all.Total != 3 || len(all.Entries) != 3 || all.Filtered() {
		t.Fatalf("expected 3 unfiltered entries, got %d of %d", len(all.Entries), all.Total)
	}
	if all.Entries[0].Title != "Call mom" {
		t.Errorf("expected newest first, got %q", all.Entries[0].Title)
	}

	journal, err := s.Journal.List(context.Background(), filter.NewFilter("", "journal", "2024-03-10", ""))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(journal.Entries) != 1 || journal.Entries[0].Title != "Groceries" || !journal.Filtered() {
		t.Errorf("expected only Groceries, got %+v", journal.Entries)
	}

	found, err := s.Journal.Search(context.Background(), "RUNNING", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if found.Total != 1 || found.Entries[0].Title != "Run" {
		t.Errorf("expected the run entry by its exercise type, got %+v", found.Entries)
	}
	if found.Query != "RUNNING" {
		t.Errorf("expected query to be kept, got %q", found.Query)
	}

	none, err := s.Journal.Search(context.Background(), "bread", filter.NewFilter("", "exercise", "", ""))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if none.Total != 0 {
		t.Errorf("expected no results, got %d", none.Total)
	}
}

func TestJournalService_Clear(t *testing.T) {
	s := newTestServices(t)
	addEntry(t, s, "journal", "One", nil)

	err := s.Journal.Clear(context.Background(), func() bool { return false })
	if !errors.Is(err, shared.ErrNotConfirmed) {
		t.Errorf("expected ErrNotConfirmed, got %v", err)
	}
	if s.Journal.Store().Len() != 1 {
		t.Error("expected entries to survive a declined clear")
	}

	if err := s.Journal.Clear(context.Background(), func() bool { return true }); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	result, _ := s.Journal.List(context.Background(), nil)
	if result.Total != 0 {
		t.Errorf("expected no entries after clear, got %d", result.Total)
	}
}

func TestJournalService_Reload(t *testing.T) {
	s := newTestServices(t)
	addEntry(t, s, "journal", "Kept", nil)

	if err := s.Journal.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if s.Journal.Store().Len() != 1 {
		t.Errorf("expected the backend entry after reload, got %d", s.Journal.Store().Len())
	}
}

package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/xolan/daylog/internal/form"
	"github.com/xolan/daylog/internal/stats"
)

func TestShowDashboard_Empty(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ShowDashboard(context.Background(), deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	out := stdout.String()
	if !strings.Contains(out, "0 entries") {
		t.Errorf("expected zero weekly count, got %q", out)
	}
	if !strings.Contains(out, stats.EmptyInsight) {
		t.Errorf("expected empty insight, got %q", out)
	}
	if strings.Contains(out, "Categories") {
		t.Errorf("expected no distribution without entries, got %q", out)
	}
}

func TestShowDashboard(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)
	addEntry(t, deps, "wellness", "Check-in", map[form.Field]string{
		form.FieldMood:       "happy",
		form.FieldEnergy:     "high",
		form.FieldSleepHours: "8",
	})
	addEntry(t, deps, "exercise", "Run", map[form.Field]string{form.FieldExerciseType: "running"})

	ShowDashboard(context.Background(), deps)

	out := stdout.String()
	for _, want := range []string{
		"2 entries",
		"Average mood:",
		"5.0",
		"8.0h",
		"Sun 03/10",
		"😊 Wellness",
		"50%",
		"You've logged 1 exercise sessions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

package cmd

import (
	"strings"
	"testing"
)

func TestClearCmd_Declined(t *testing.T) {
	r := setupMemory(t)
	r.add(t, "-c", "journal", "-t", "Keep me")
	r.deps.Stdin = strings.NewReader("n\n")
	r.stdout.Reset()

	if err := execute(t, "clear"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if !strings.Contains(r.stdout.String(), "Cancelled. No entries were deleted.") {
		t.Errorf("expected cancel message, got: %s", r.stdout.String())
	}
	if r.deps.Services.Journal.Store().Len() != 1 {
		t.Error("declined clear must keep entries")
	}
}

func TestClearCmd_Confirmed(t *testing.T) {
	r := setupMemory(t)
	r.add(t, "-c", "journal", "-t", "Gone")
	r.deps.Stdin = strings.NewReader("yes\n")
	r.stdout.Reset()

	if err := execute(t, "clear"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if !strings.Contains(r.stdout.String(), "All data cleared") {
		t.Errorf("expected cleared message, got: %s", r.stdout.String())
	}
	if r.deps.Services.Journal.Store().Len() != 0 {
		t.Error("expected an empty journal")
	}
}

package handlers

import (
	"strings"
	"testing"
)

func TestShowConfig(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ShowConfig(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	out := stdout.String()
	for _, want := range []string{"Configuration:", "Config file:", "Using defaults", "backend:", "memory", "presets:", "run"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestShowConfig_MasksSecrets(t *testing.T) {
	deps, stdout, _, _, _ := setupAccountDeps(t)
	cfg := deps.Services.Config.Get()
	cfg.Supabase.URL = "https://abc.supabase.co"
	cfg.Supabase.AnonKey = "anon-key-0123456789"
	if err := deps.Services.Config.Update(cfg); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	ShowConfig(deps)

	out := stdout.String()
	if !strings.Contains(out, "https://abc.supabase.co") {
		t.Errorf("expected url, got %q", out)
	}
	if strings.Contains(out, "anon-key-0123456789") {
		t.Errorf("expected anon key to be masked, got %q", out)
	}
	if !strings.Contains(out, "anon…6789") {
		t.Errorf("expected masked key, got %q", out)
	}
}

func TestShowConfig_WithFile(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	InitConfig(deps)
	stdout.Reset()

	ShowConfig(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "File exists") {
		t.Errorf("expected 'File exists' in output, got %q", stdout.String())
	}
}

func TestInitConfig(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	InitConfig(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Created config file:") {
		t.Errorf("expected 'Created config file:' in output, got %q", stdout.String())
	}
}

func TestInitConfig_AlreadyExists(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	InitConfig(deps)
	InitConfig(deps)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "already exists") {
		t.Errorf("expected 'already exists' in stderr, got %q", stderr.String())
	}
}

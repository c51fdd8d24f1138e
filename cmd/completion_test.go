package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestGenerateCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "bash completion"},
		{"zsh", "#compdef daylog"},
		{"fish", "complete -c daylog"},
		{"powershell", "Register-ArgumentCompleter"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			setupMemory(t)
			out := &bytes.Buffer{}

			generateCompletion(out, tt.shell)

			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("expected %q in %s completion", tt.want, tt.shell)
			}
		})
	}
}

func TestGenerateCompletion_InvalidShell(t *testing.T) {
	r := setupMemory(t)
	out := &bytes.Buffer{}

	generateCompletion(out, "tcsh")

	if r.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", r.exitCode)
	}
	if !strings.Contains(r.stderr.String(), "Unsupported shell 'tcsh'") {
		t.Errorf("expected unsupported shell error, got: %s", r.stderr.String())
	}
	if out.Len() != 0 {
		t.Error("expected no script for an unsupported shell")
	}
}

func TestCompletionCmd_RejectsUnknownShell(t *testing.T) {
	setupMemory(t)

	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected an error for an invalid shell argument")
	}
}

func TestCompleteCategories(t *testing.T) {
	names, directive := completeCategories(rootCmd, nil, "")
	if names[0] != "all" || !contains(names, "wellness") {
		t.Errorf("root completion = %v, want all plus categories", names)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("expected ShellCompDirectiveNoFileComp, got %d", directive)
	}

	names, _ = completeCategories(addCmd, nil, "")
	if contains(names, "all") {
		t.Errorf("add completion must not offer 'all': %v", names)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xolan/daylog/internal/shared"
	"github.com/xolan/daylog/internal/supabase"
)

func TestLogin(t *testing.T) {
	deps, stdout, _, exitCode, auth := setupAccountDeps(t)
	deps.ReadPassword = func(string) (string, error) { return "secret", nil }

	Login(context.Background(), deps, "ada@example.com")

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if auth.email != "ada@example.com" {
		t.Errorf("expected sign in as ada, got %q", auth.email)
	}
	if !strings.Contains(stdout.String(), "Login successful!") {
		t.Errorf("expected success message, got %q", stdout.String())
	}

	stdout.Reset()
	Whoami(context.Background(), deps)
	if !strings.Contains(stdout.String(), "Email:   ada@example.com") {
		t.Errorf("expected signed-in user, got %q", stdout.String())
	}
}

func TestLogin_PromptsForEmail(t *testing.T) {
	deps, stdout, _, exitCode, auth := setupAccountDeps(t)
	deps.Stdin = strings.NewReader("ada@example.com\nsecret\n")

	Login(context.Background(), deps, "")

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if auth.email != "ada@example.com" {
		t.Errorf("expected email from stdin, got %q", auth.email)
	}
	if !strings.Contains(stdout.String(), "Email: ") || !strings.Contains(stdout.String(), "Password: ") {
		t.Errorf("expected prompts, got %q", stdout.String())
	}
}

func TestLogin_WaitsForRedirect(t *testing.T) {
	deps, _, _, _, _ := setupAccountDeps(t)
	deps.ReadPassword = func(string) (string, error) { return "secret", nil }
	var waited []time.Duration
	deps.Sleep = func(d time.Duration) { waited = append(waited, d) }

	Login(context.Background(), deps, "ada@example.com")

	// The test gateway has no redirect delay.
	if len(waited) != 0 {
		t.Errorf("expected no wait, got %v", waited)
	}
}

func TestLogin_ServiceError(t *testing.T) {
	deps, _, stderr, exitCode, auth := setupAccountDeps(t)
	auth.err = &shared.AuthError{Status: 400, Message: "Invalid login credentials"}
	deps.ReadPassword = func(string) (string, error) { return "wrong", nil }

	Login(context.Background(), deps, "ada@example.com")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Error: Invalid login credentials") {
		t.Errorf("expected verbatim service message, got %q", stderr.String())
	}
}

func TestLogin_InvalidEmail(t *testing.T) {
	deps, _, stderr, exitCode, auth := setupAccountDeps(t)
	deps.ReadPassword = func(string) (string, error) { return "secret", nil }

	Login(context.Background(), deps, "not-an-email")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Error: Please enter a valid email address") {
		t.Errorf("expected validation message, got %q", stderr.String())
	}
	if auth.email != "" {
		t.Error("expected no service call")
	}
}

func TestLogin_NoAccounts(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	deps.ReadPassword = func(string) (string, error) { return "secret", nil }

	Login(context.Background(), deps, "ada@example.com")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Hint: Set backend = \"supabase\"") {
		t.Errorf("expected backend hint, got %q", stderr.String())
	}
}

func TestSignup_ConfirmationPending(t *testing.T) {
	deps, stdout, _, exitCode, auth := setupAccountDeps(t)
	auth.signUp = &supabase.SignUpResult{User: &supabase.User{ID: "user-2", Email: "bob@example.com"}}
	deps.ReadPassword = func(string) (string, error) { return "secret", nil }

	Signup(context.Background(), deps, "bob@example.com")

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Please check your email to confirm your account.") {
		t.Errorf("expected confirmation message, got %q", stdout.String())
	}
}

func TestSignup_PasswordMismatch(t *testing.T) {
	deps, _, stderr, exitCode, _ := setupAccountDeps(t)
	passwords := []string{"secret", "different"}
	deps.ReadPassword = func(string) (string, error) {
		p := passwords[0]
		passwords = passwords[1:]
		return p, nil
	}

	Signup(context.Background(), deps, "bob@example.com")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Passwords do not match") {
		t.Errorf("expected mismatch message, got %q", stderr.String())
	}
}

func TestResetPassword(t *testing.T) {
	deps, stdout, _, exitCode, auth := setupAccountDeps(t)

	ResetPassword(context.Background(), deps, "ada@example.com")

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if auth.email != "ada@example.com" {
		t.Errorf("expected recovery for ada, got %q", auth.email)
	}
	if !strings.Contains(stdout.String(), "Password reset email sent!") {
		t.Errorf("expected reset message, got %q", stdout.String())
	}
}

func TestChangePassword_NoRecovery(t *testing.T) {
	deps, _, stderr, exitCode, _ := setupAccountDeps(t)
	deps.ReadPassword = func(string) (string, error) { return "newsecret", nil }

	ChangePassword(context.Background(), deps, "")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "--recovery-url") {
		t.Errorf("expected recovery hint, got %q", stderr.String())
	}
}

func TestChangePassword(t *testing.T) {
	deps, stdout, _, exitCode, _ := setupAccountDeps(t)
	deps.ReadPassword = func(string) (string, error) { return "newsecret", nil }

	ChangePassword(context.Background(), deps, "https://journal.example.com/#access_token=recovery-token&refresh_token=r&expires_in=3600&token_type=bearer&type=recovery")

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Password updated successfully!") {
		t.Errorf("expected success message, got %q", stdout.String())
	}
}

func TestLogout(t *testing.T) {
	deps, stdout, _, exitCode, _ := setupAccountDeps(t)
	deps.ReadPassword = func(string) (string, error) { return "secret", nil }
	Login(context.Background(), deps, "ada@example.com")
	stdout.Reset()

	Logout(context.Background(), deps)

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Logged out successfully!") {
		t.Errorf("expected logout message, got %q", stdout.String())
	}
}

func TestWhoami_Local(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	Whoami(context.Background(), deps)

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Backend: memory") || !strings.Contains(stdout.String(), "User ID: local") {
		t.Errorf("expected local owner, got %q", stdout.String())
	}
}

func TestWhoami_NotSignedIn(t *testing.T) {
	deps, _, stderr, exitCode, _ := setupAccountDeps(t)

	Whoami(context.Background(), deps)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "daylog login") {
		t.Errorf("expected login hint, got %q", stderr.String())
	}
}

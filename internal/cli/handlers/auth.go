package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/session"
)

// Login signs in with email and a password read from the terminal
func Login(ctx context.Context, deps *cli.Deps, email string) {
	email, ok := askEmail(deps, email)
	if !ok {
		return
	}
	password, err := deps.Secret("Password: ")
	if err != nil {
		fail(deps, fmt.Errorf("failed to read password: %w", err))
		return
	}

	redirect, err := deps.Services.Auth.SignIn(ctx, email, password)
	if err != nil {
		authFailed(deps, err)
		return
	}
	follow(deps, redirect)
}

// Signup creates an account
func Signup(ctx context.Context, deps *cli.Deps, email string) {
	email, ok := askEmail(deps, email)
	if !ok {
		return
	}
	password, err := deps.Secret("Password: ")
	if err != nil {
		fail(deps, fmt.Errorf("failed to read password: %w", err))
		return
	}
	confirm, err := deps.Secret("Confirm password: ")
	if err != nil {
		fail(deps, fmt.Errorf("failed to read password: %w", err))
		return
	}

	_, redirect, err := deps.Services.Auth.SignUp(ctx, email, password, confirm)
	if err != nil {
		authFailed(deps, err)
		return
	}
	follow(deps, redirect)
}

// ResetPassword sends a password recovery email
func ResetPassword(ctx context.Context, deps *cli.Deps, email string) {
	email, ok := askEmail(deps, email)
	if !ok {
		return
	}
	if err := deps.Services.Auth.RequestPasswordReset(ctx, email); err != nil {
		authFailed(deps, err)
		return
	}
	printMessage(deps)
	_, _ = fmt.Fprintln(deps.Stdout, "Then run 'daylog passwd --recovery-url <link>' with the link from the email.")
}

// ChangePassword completes a password recovery started from the link in
// the recovery email
func ChangePassword(ctx context.Context, deps *cli.Deps, recoveryURL string) {
	password, err := deps.Secret("New password: ")
	if err != nil {
		fail(deps, fmt.Errorf("failed to read password: %w", err))
		return
	}
	confirm, err := deps.Secret("Confirm new password: ")
	if err != nil {
		fail(deps, fmt.Errorf("failed to read password: %w", err))
		return
	}

	redirect, err := deps.Services.Auth.ChangePassword(ctx, recoveryURL, password, confirm)
	if err != nil {
		authFailed(deps, err)
		return
	}
	follow(deps, redirect)
}

// Logout signs the current user out
func Logout(ctx context.Context, deps *cli.Deps) {
	if err := deps.Services.Auth.SignOut(ctx); err != nil {
		fail(deps, err)
		return
	}
	printMessage(deps)
}

// Whoami shows who owns the journal
func Whoami(ctx context.Context, deps *cli.Deps) {
	account, err := deps.Services.Auth.Whoami(ctx)
	if err != nil {
		fail(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Backend: %s\n", account.Backend)
	if account.Email != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Email:   %s\n", account.Email)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "User ID: %s\n", account.UserID)
	if !account.Confirmed {
		_, _ = fmt.Fprintln(deps.Stdout, cli.Faint("Email not confirmed yet"))
	}
}

func askEmail(deps *cli.Deps, email string) (string, bool) {
	if strings.TrimSpace(email) != "" {
		return email, true
	}
	email, err := deps.ReadLine("Email: ")
	if err != nil {
		fail(deps, fmt.Errorf("failed to read email: %w", err))
		return "", false
	}
	return email, true
}

// authFailed reports the gateway's message for err, which is the text the
// auth service returned.
func authFailed(deps *cli.Deps, err error) {
	msg := deps.Services.Auth.Message()
	if msg.Kind != session.MessageError {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", msg.Text)
	if hint := hintFor(err); hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

func printMessage(deps *cli.Deps) {
	if msg := deps.Services.Auth.Message(); msg.Text != "" {
		_, _ = fmt.Fprintln(deps.Stdout, msg.Text)
	}
}

// follow prints the outcome, waits out the redirect delay, then says where
// the user landed.
func follow(deps *cli.Deps, r session.Redirect) {
	printMessage(deps)
	deps.Wait(r.After)

	switch r.To {
	case session.ScreenApp:
		_, _ = fmt.Fprintln(deps.Stdout, "Run 'daylog' to see your entries or 'daylog tui' to open the journal.")
	case session.ScreenLogin:
		_, _ = fmt.Fprintln(deps.Stdout, "Sign in with 'daylog login'.")
	}
}

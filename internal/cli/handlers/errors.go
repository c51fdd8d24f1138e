package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/service"
	"github.com/xolan/daylog/internal/shared"
)

// fail prints err with a hint for the failures a user can act on, then
// exits with status 1.
func fail(deps *cli.Deps, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	if hint := hintFor(err); hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, shared.ErrNotAuthenticated):
		return "Sign in with 'daylog login' or create an account with 'daylog signup'"
	case errors.Is(err, shared.ErrNotConfigured):
		return "Run 'daylog config --init' and fill in the connection settings"
	case errors.Is(err, service.ErrNoAccounts):
		return "Set backend = \"supabase\" in the config file to use accounts"
	case errors.Is(err, shared.ErrNoRecoverySession):
		return "Pass the link from the recovery email with --recovery-url"
	case shared.IsStore(err):
		return "Check your connection and try again"
	}
	return ""
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/cli/handlers"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in to your account",
	Long: `Sign in with email and password. The password is read from the terminal
without echo. The session is kept in the cache directory until 'daylog logout'.

Examples:
  daylog login
  daylog login me@example.com`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.Login(cmd.Context(), d, emailArg(args))
		}
	},
}

// signupCmd represents the signup command
var signupCmd = &cobra.Command{
	Use:   "signup [email]",
	Short: "Create an account",
	Long: `Create an account with email and password. Depending on the server
settings you are signed in right away or asked to confirm your email first.

Examples:
  daylog signup me@example.com`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.Signup(cmd.Context(), d, emailArg(args))
		}
	},
}

// resetCmd represents the reset-password command
var resetCmd = &cobra.Command{
	Use:     "reset-password [email]",
	Aliases: []string{"reset"},
	Short:   "Send a password reset email",
	Long: `Send a password reset email. Open the link from the email with
'daylog passwd --recovery-url <link>' to choose a new password.

Examples:
  daylog reset-password me@example.com`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.ResetPassword(cmd.Context(), d, emailArg(args))
		}
	},
}

// passwdCmd represents the passwd command
var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Choose a new password",
	Long: `Choose a new password. Pass the link from the recovery email with
--recovery-url; it carries the recovery session that authorizes the change.

Examples:
  daylog passwd --recovery-url 'https://example.com/#access_token=...&type=recovery'`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		recoveryURL, _ := cmd.Flags().GetString("recovery-url")
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.ChangePassword(cmd.Context(), d, recoveryURL)
		}
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.Logout(cmd.Context(), d)
		}
	},
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.Whoami(cmd.Context(), d)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(passwdCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	passwdCmd.Flags().String("recovery-url", "", "Link from the password recovery email")
}

// emailArg returns the optional email argument; "" makes the handler prompt.
func emailArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/spectra-io/client/internal/router"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	Long:  "Prompts for credentials, exchanges them for an access token and stores the token for later sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNavigation(cmd, router.LoginPath)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	Long:  "Prompts for an email and password and registers a new account. On success you are taken to login",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNavigation(cmd, router.SignupPath)
	},
}

func init() {
	// Add the commands to the root
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
}

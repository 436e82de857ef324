package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spectra-io/client/internal/pages"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Long:  "Removes the stored access token for the configured API. The server is not contacted",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd)
		if err != nil {
			return err
		}

		wasAuthenticated := app.store.Authenticated()

		if _, err := pages.Logout(app.context(cmd.Context())); err != nil {
			return fmt.Errorf("failed to log out: %w", err)
		}

		if wasAuthenticated {
			fmt.Fprintln(app.out, successStyle.Render("Logged out."))
		} else {
			fmt.Fprintln(app.out, infoStyle.Render("No active session."))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

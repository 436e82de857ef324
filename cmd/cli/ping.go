package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spectra-io/client/internal/api"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the API is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := api.New(cfg.GetAPIBaseURL(), api.WithDebug(cfg.API.Debug))
		out := cmd.OutOrStdout()

		response, err := client.Ping(cmd.Context())
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("%s is unreachable", cfg.GetAPIBaseURL())))
			return err
		}

		fmt.Fprintf(out, "%s %s\n", successStyle.Render(cfg.GetAPIBaseURL()), response.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

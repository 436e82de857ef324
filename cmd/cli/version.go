package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spectra-io/client/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	// Version needs no configuration.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		version, ok := common.GetVersion()
		if !ok {
			fmt.Fprintln(out, "Failed to get version information")
			return
		}

		fmt.Fprintf(out, "Spectra %s\n", version)
	},
}

func init() {

	rootCmd.AddCommand(versionCmd)
}

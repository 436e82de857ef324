package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spectra-io/client/internal/common"
	"github.com/spectra-io/client/internal/config"
	"github.com/spectra-io/client/internal/router"
)

// Global configuration instance
var cfg *config.Config

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")

	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	// Load configuration before any command runs
	var err error
	cfg, err = loadConfig(cmd)

	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
		cfg.API.Debug = true
	}

	// Get the API URL override from the flag
	apiURL, err := cmd.Flags().GetString("api-url")
	if err == nil && len(apiURL) > 0 {
		if err := cfg.SetAPIBaseURL(apiURL); err != nil {
			return fmt.Errorf("failed to set API URL: %w", err)
		}
	}

	if !cfg.HasAPIBaseURL() {
		logrus.Warnln("No API base URL configured. Set SPECTRA_API_BASE_URL or pass --api-url")
	}

	logrus.WithFields(logrus.Fields{
		"api":     cfg.GetAPIBaseURL(),
		"storage": cfg.GetStoragePath(),
	}).Debugln("Configuration loaded")

	return nil
}

var rootCmd = &cobra.Command{
	Use:   "spectra",
	Short: "Spectra - sign up, log in and keep a session with the Spectra API",
	Long: `Spectra is the terminal client for the Spectra API.

Run without a subcommand to start at the login screen. The session token is
kept per API host under ~/.config/spectra/ and survives restarts.`,
	PersistentPreRunE: preRunConfigE,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNavigation(cmd, router.RootPath)
	},
}

func init() {

	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $HOME/.config/spectra/config.yaml)")
	// Add the api-url flag
	rootCmd.PersistentFlags().String("api-url", "", "Override the API base URL (e.g., http://localhost:8000)")

}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}

// Execute runs the root command until it completes or the process is
// interrupted.
func Execute() error {
	ctx, cleanup := common.WithInterrupt(context.Background())
	defer cleanup()

	return rootCmd.ExecuteContext(ctx)
}

// Package cli defines the demiurgos command tree. Each command lives in its
// own file and registers itself on the root command from init().
package cli

import (
	"fmt"
	"os"

	"github.com/demiurgos-labs/demiurgos/internal/branding"
	"github.com/demiurgos-labs/demiurgos/internal/config"
	"github.com/demiurgos-labs/demiurgos/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` fetches generator packages (templates, static files, and
default values) from local directories, git repositories, or remote archives,
installs them into a versioned local store, and renders them against a JSON
configuration to produce an output file tree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		level := logLevel
		if level == "" {
			level = config.Get(config.KeyLogLevel)
		}
		return logging.Setup(level)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

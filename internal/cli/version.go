package cli

import (
	"encoding/json"
	"fmt"

	"github.com/demiurgos-labs/demiurgos/internal/branding"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the bare version string")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	if versionShort {
		fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
		return nil
	}

	if versionJSON {
		out, err := json.MarshalIndent(map[string]string{
			"version": buildVersion,
			"commit":  buildCommit,
			"date":    buildDate,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling version info: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", branding.CLIName(), buildVersion)
	fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", buildCommit)
	fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", buildDate)
	return nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/demiurgos-labs/demiurgos/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a Generator.yaml manifest against its schema",
	Long: `Validate a generator manifest. The path may point at a Generator.yaml
file directly or at a package directory containing one.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}

	for _, issue := range result.Issues {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", issue.Path, issue.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Summary())

	if !result.Valid {
		return fmt.Errorf("%s failed validation", path)
	}
	return nil
}

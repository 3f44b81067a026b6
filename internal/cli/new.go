package cli

import (
	"fmt"

	"github.com/demiurgos-labs/demiurgos/internal/scaffold"
	"github.com/spf13/cobra"
)

var newOutputDir string

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a blank generator package",
	Long: `Create a new generator package skeleton: Generator.yaml, values.yaml,
a starter template, and a README. The output directory must be empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newOutputDir, "output", "o", "", "Output directory (defaults to ./<name>)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]

	outputDir := newOutputDir
	if outputDir == "" {
		outputDir = "./" + name
	}

	result, err := scaffold.Generate(scaffold.NewData(name), outputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created generator package %q in %s\n", name, result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
	}
	return nil
}

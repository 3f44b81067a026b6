package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/demiurgos-labs/demiurgos/internal/generator"
	"github.com/demiurgos-labs/demiurgos/internal/render"
	"github.com/demiurgos-labs/demiurgos/internal/resolver"
	"github.com/demiurgos-labs/demiurgos/internal/source"
	"github.com/demiurgos-labs/demiurgos/internal/store"
	"github.com/demiurgos-labs/demiurgos/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	generateName    string
	generateVersion string
	generatePath    string
	generateURI     string
	generateConfig  string
	generateOutput  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a generator package against a configuration",
	Long: `Render a generator package into an output directory. The package is
selected from the local store (--name with --version), an on-disk directory
(--generator-path), or a remote source (--uri). Static files are copied
verbatim; templates are rendered with the resolved configuration.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateName, "name", "", "Installed generator name (requires --version)")
	generateCmd.Flags().StringVar(&generateVersion, "version", "", "Installed generator version (requires --name)")
	generateCmd.Flags().StringVar(&generatePath, "generator-path", "", "Path to an on-disk generator package")
	generateCmd.Flags().StringVar(&generateURI, "uri", "", "Remote source to fetch and use")
	generateCmd.Flags().StringVarP(&generateConfig, "config", "c", "", "Path to the JSON configuration document")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", ".", "Destination directory")
	generateCmd.MarkFlagRequired("config")
	generateCmd.MarkFlagsRequiredTogether("name", "version")
	generateCmd.MarkFlagsMutuallyExclusive("name", "generator-path", "uri")
	generateCmd.MarkFlagsOneRequired("name", "generator-path", "uri")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	packageDir, cleanup, err := selectPackageDir()
	if err != nil {
		return err
	}
	defer cleanup()

	pkg, err := generator.Load(packageDir)
	if err != nil {
		return err
	}

	context, issues, err := resolver.Resolve(generateConfig)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", issue)
	}

	dest, err := filepath.Abs(generateOutput)
	if err != nil {
		return fmt.Errorf("resolving output directory %s: %w", generateOutput, err)
	}
	// Injected after dereferencing so a reference can never override it.
	resolver.InjectOutputFolder(context, dest)

	engine, err := render.NewEngine(filepath.Join(pkg.BasePath, generator.TemplatesDir))
	if err != nil {
		return err
	}

	if err := render.Render(pkg, dest, context, engine); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s %s into %s\n", pkg.Name(), pkg.Version(), dest)
	return nil
}

// selectPackageDir resolves the mutually exclusive package selectors to a
// directory, staging remote sources when needed.
func selectPackageDir() (string, func(), error) {
	noop := func() {}

	switch {
	case generatePath != "":
		return generatePath, noop, nil

	case generateURI != "":
		return source.Stage(generateURI)

	default:
		generatorsRoot, err := userdata.GetGeneratorsRoot()
		if err != nil {
			return "", noop, fmt.Errorf("resolving generators root: %w", err)
		}
		dir := store.New(generatorsRoot).Path(generateName, generateVersion)
		if _, err := os.Stat(dir); err != nil {
			return "", noop, fmt.Errorf("generator %s version %s is not installed (run 'demiurgos list')", generateName, generateVersion)
		}
		return dir, noop, nil
	}
}

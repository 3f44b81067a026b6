package cli

import (
	"fmt"

	"github.com/demiurgos-labs/demiurgos/internal/generator"
	"github.com/demiurgos-labs/demiurgos/internal/source"
	"github.com/demiurgos-labs/demiurgos/internal/store"
	"github.com/demiurgos-labs/demiurgos/internal/userdata"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <source>",
	Short: "Install a generator package into the local store",
	Long: `Install a generator package from a local directory, a hosted git
repository URL, or a direct zip/tar.gz archive URL. The package is staged,
verified, and copied to the store under <name>/<version>. Installing an
already-present (name, version) pair is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	uri := args[0]

	generatorsRoot, err := userdata.GetGeneratorsRoot()
	if err != nil {
		return fmt.Errorf("resolving generators root: %w", err)
	}

	staged, cleanup, err := source.Stage(uri)
	if err != nil {
		return err
	}
	defer cleanup()

	// Full load up front: a package that cannot load is not worth storing.
	pkg, err := generator.Load(staged)
	if err != nil {
		return err
	}

	installed, err := store.New(generatorsRoot).Install(staged)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Installed %s %s to %s\n", pkg.Name(), pkg.Version(), installed)
	return nil
}

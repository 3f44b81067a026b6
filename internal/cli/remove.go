package cli

import (
	"fmt"

	"github.com/demiurgos-labs/demiurgos/internal/store"
	"github.com/demiurgos-labs/demiurgos/internal/userdata"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name> <version>",
	Short: "Remove an installed generator package",
	Args:  cobra.ExactArgs(2),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	name, version := args[0], args[1]

	generatorsRoot, err := userdata.GetGeneratorsRoot()
	if err != nil {
		return fmt.Errorf("resolving generators root: %w", err)
	}

	if err := store.New(generatorsRoot).Remove(name, version); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", name, version)
	return nil
}

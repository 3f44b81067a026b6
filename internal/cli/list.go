package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/demiurgos-labs/demiurgos/internal/store"
	"github.com/demiurgos-labs/demiurgos/internal/userdata"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed generator packages",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	generatorsRoot, err := userdata.GetGeneratorsRoot()
	if err != nil {
		return fmt.Errorf("resolving generators root: %w", err)
	}

	entries, err := store.New(generatorsRoot).List()
	if err != nil {
		return err
	}

	if listJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling entries: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No generators installed yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tPATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Version, e.Path)
	}
	return w.Flush()
}

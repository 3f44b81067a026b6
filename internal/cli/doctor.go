package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/demiurgos-labs/demiurgos/internal/config"
	"github.com/demiurgos-labs/demiurgos/internal/source"
	"github.com/demiurgos-labs/demiurgos/internal/userdata"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local environment for problems",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type doctorCheck struct {
	name string
	run  func() (string, error)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	checks := []doctorCheck{
		{"git available", checkGit},
		{"generators root writable", checkGeneratorsRoot},
		{"config file", checkConfigFile},
	}

	failures := 0
	for _, c := range checks {
		detail, err := c.run()
		if err != nil {
			failures++
			fmt.Fprintf(cmd.OutOrStdout(), "[FAIL] %s: %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[ OK ] %s: %s\n", c.name, detail)
	}

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All checks passed.")
	return nil
}

func checkGit() (string, error) {
	if err := source.EnsureGit(); err != nil {
		return "", err
	}
	return "found on PATH", nil
}

func checkGeneratorsRoot() (string, error) {
	root, err := userdata.GetGeneratorsRoot()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", root, err)
	}
	probe := filepath.Join(root, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return "", fmt.Errorf("writing to %s: %w", root, err)
	}
	os.Remove(probe)
	return root, nil
}

func checkConfigFile() (string, error) {
	path := config.FilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path + " (not present, defaults in effect)", nil
	} else if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return path, nil
}

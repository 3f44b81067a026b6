package source

import (
	"fmt"
	"os/exec"
	"strings"
)

// EnsureGit checks that the git binary is available on PATH.
func EnsureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required to fetch repository sources but was not found on PATH: %w", err)
	}
	return nil
}

// gitClone performs a shallow clone of repoURL into destDir.
func gitClone(repoURL, destDir string) error {
	if err := EnsureGit(); err != nil {
		return err
	}

	cmd := exec.Command("git", "clone", "--depth=1", repoURL, destDir)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cloning %s: %w: %s", repoURL, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

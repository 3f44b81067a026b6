// Package userdata resolves the on-disk locations the CLI owns: the
// installed-generators store under the user's data directory. Roots are
// overridable through environment variables so tests and callers can inject
// a temporary tree instead of touching real user state.
package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/demiurgos-labs/demiurgos/internal/branding"
	"github.com/demiurgos-labs/demiurgos/internal/config"
)

// GetGeneratorsRoot returns the root of the installed-generators store.
// Precedence: DEMIURGOS_GENERATORS env var, the generators_root config key,
// then ~/.demiurgos/generators.
func GetGeneratorsRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("GENERATORS")); v != "" {
		return v, nil
	}
	if v := config.Get(config.KeyGeneratorsRoot); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir(), branding.GeneratorsDir()), nil
}

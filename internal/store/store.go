// Package store manages the versioned local tree of installed generator
// packages, laid out as <root>/<name>/<version>/. Installs are idempotent
// and never overwrite an existing (name, version) entry.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/demiurgos-labs/demiurgos/internal/logging"
	"github.com/demiurgos-labs/demiurgos/internal/manifest"
)

// excludedNames are entries never copied into the store.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
}

// tmpSuffix is appended to the destination during the copy so the final
// rename is atomic: a concurrent install of the same (name, version) loses
// the rename race and takes the no-op path.
const tmpSuffix = ".tmp"

// Store is an installed-generators tree rooted at Root.
type Store struct {
	Root string
}

// New returns a Store over the given root directory.
func New(root string) *Store {
	return &Store{Root: root}
}

// Entry identifies one installed package.
type Entry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

// Path returns the directory an entry for (name, version) occupies.
func (s *Store) Path(name, version string) string {
	return filepath.Join(s.Root, name, version)
}

// Install copies the staged package tree into the store under its manifest's
// (name, version). Installing an already-present pair is a no-op that
// reports success without touching the existing entry. The returned path is
// the entry's directory either way.
func (s *Store) Install(stagedDir string) (string, error) {
	m, err := manifest.Parse(stagedDir)
	if err != nil {
		return "", err
	}

	dest := s.Path(m.Name, m.Version)
	if _, err := os.Stat(dest); err == nil {
		logging.L().Infow("generator already installed, leaving it untouched",
			"name", m.Name, "version", m.Version, "path", dest)
		return dest, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("creating store directory for %s: %w", m.Name, err)
	}

	tmp := dest + tmpSuffix
	_ = os.RemoveAll(tmp)
	if err := copyDir(stagedDir, tmp); err != nil {
		_ = os.RemoveAll(tmp)
		return "", fmt.Errorf("copying %s into store: %w", stagedDir, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.RemoveAll(tmp)
		// A concurrent install may have won the race; existing wins.
		if _, statErr := os.Stat(dest); statErr == nil {
			logging.L().Infow("generator installed concurrently, keeping existing entry",
				"name", m.Name, "version", m.Version)
			return dest, nil
		}
		return "", fmt.Errorf("finalizing install of %s/%s: %w", m.Name, m.Version, err)
	}

	logging.L().Infow("installed generator", "name", m.Name, "version", m.Version, "path", dest)
	return dest, nil
}

// List returns all installed entries, names ascending and versions in
// descending semver order within a name.
func (s *Store) List() ([]Entry, error) {
	names, err := os.ReadDir(s.Root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store root %s: %w", s.Root, err)
	}

	var entries []Entry
	for _, nameEntry := range names {
		if !nameEntry.IsDir() {
			continue
		}
		name := nameEntry.Name()

		versionDirs, err := os.ReadDir(filepath.Join(s.Root, name))
		if err != nil {
			return nil, fmt.Errorf("reading store entry %s: %w", name, err)
		}

		var versions []string
		for _, v := range versionDirs {
			if v.IsDir() {
				versions = append(versions, v.Name())
			}
		}
		sortVersionsDesc(versions)

		for _, v := range versions {
			entries = append(entries, Entry{
				Name:    name,
				Version: v,
				Path:    s.Path(name, v),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Remove deletes one installed (name, version) entry and prunes the name
// directory when it becomes empty.
func (s *Store) Remove(name, version string) error {
	dir := s.Path(name, version)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("generator %s version %s is not installed", name, version)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}

	// Prune the now-possibly-empty name directory.
	nameDir := filepath.Join(s.Root, name)
	if remaining, err := os.ReadDir(nameDir); err == nil && len(remaining) == 0 {
		_ = os.Remove(nameDir)
	}

	return nil
}

// sortVersionsDesc orders version strings newest-first by semver, falling
// back to a lexical sort for entries that do not parse.
func sortVersionsDesc(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, errI := semver.NewVersion(versions[i])
		vj, errJ := semver.NewVersion(versions[j])
		if errI != nil || errJ != nil {
			return versions[i] > versions[j]
		}
		return vi.GreaterThan(vj)
	})
}

// copyDir recursively copies src to dst, skipping excluded entries.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Symlinks and other special files are skipped.
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode().Perm())
}

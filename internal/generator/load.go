package generator

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/demiurgos-labs/demiurgos/internal/logging"
	"github.com/demiurgos-labs/demiurgos/internal/manifest"
)

// Load reads the package rooted at dir. The manifest and the templates/
// directory are mandatory; values.yaml defaults to an empty map; LICENSE,
// README.md, schema.json, files/ and dependencies/ are optional. Enumeration
// of files and templates is sorted so repeated loads of an unchanged
// directory are identical.
func Load(dir string) (*Package, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving package path %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("package directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("package path %s is not a directory", abs)
	}

	m, err := manifest.Parse(abs)
	if err != nil {
		return nil, err
	}

	values, err := readValues(abs)
	if err != nil {
		return nil, err
	}

	schema, err := readSchema(abs)
	if err != nil {
		return nil, err
	}

	templates, err := listTemplates(abs)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		BasePath:     abs,
		Manifest:     m,
		License:      readOptionalText(abs, LicenseFile),
		Readme:       readOptionalText(abs, ReadmeFile),
		Values:       values,
		Schema:       schema,
		Files:        listFiles(abs),
		Templates:    templates,
		Dependencies: loadDependencies(abs),
	}

	logging.L().Debugw("loaded generator package",
		"path", abs,
		"name", m.Name,
		"version", m.Version,
		"files", len(pkg.Files),
		"templates", len(pkg.Templates),
		"dependencies", len(pkg.Dependencies),
	)

	return pkg, nil
}

// readValues loads values.yaml, returning an empty map when the file does
// not exist. A present-but-invalid file is a load failure.
func readValues(dir string) (map[string]any, error) {
	path := filepath.Join(dir, ValuesFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return values, nil
}

// readSchema loads schema.json if present. The document round-trips through
// the model untouched; it is not evaluated here.
func readSchema(dir string) (map[string]any, error) {
	path := filepath.Join(dir, SchemaFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return schema, nil
}

func readOptionalText(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return string(data)
}

// listFiles walks files/ recursively collecting regular files. Returns nil
// when the directory is absent or holds no files.
func listFiles(dir string) []string {
	root := filepath.Join(dir, FilesDir)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.L().Debugw("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})

	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)
	return files
}

// listTemplates enumerates the direct children of templates/. The directory
// is mandatory; its contents may be empty.
func listTemplates(dir string) ([]string, error) {
	root := filepath.Join(dir, TemplatesDir)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("package %s: required directory %q not found", dir, TemplatesDir)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	templates := []string{}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			templates = append(templates, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(templates)
	return templates, nil
}

// loadDependencies loads each subdirectory of dependencies/ as a nested
// package. A malformed entry is logged and skipped so it cannot block its
// siblings; an absent directory yields nil.
func loadDependencies(dir string) []*Package {
	root := filepath.Join(dir, DependenciesDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var deps []*Package
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		depPath := filepath.Join(root, entry.Name())
		dep, err := Load(depPath)
		if err != nil {
			logging.L().Warnw("skipping malformed dependency package", "path", depPath, "error", err)
			continue
		}
		deps = append(deps, dep)
	}
	return deps
}

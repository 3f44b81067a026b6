// Package generator defines the in-memory model of a generator package and
// the loader that reads one from disk. A Package is an immutable snapshot of
// a package directory: manifest, default values, optional schema and docs,
// static files, templates, and recursively loaded dependency packages.
package generator

import "github.com/demiurgos-labs/demiurgos/internal/manifest"

// File and directory names that make up a package's on-disk shape.
const (
	ValuesFile      = "values.yaml"
	SchemaFile      = "schema.json"
	LicenseFile     = "LICENSE"
	ReadmeFile      = "README.md"
	FilesDir        = "files"
	TemplatesDir    = "templates"
	DependenciesDir = "dependencies"
)

// Package is a loaded generator package. Fields are populated once by Load
// and never mutated afterwards.
type Package struct {
	// BasePath is the package's root directory at load time.
	BasePath string

	Manifest *manifest.Manifest

	// License and Readme hold the raw file contents, empty when absent.
	License string
	Readme  string

	// Values is the default configuration document. Never nil: a missing
	// values.yaml yields an empty map.
	Values map[string]any

	// Schema is the raw schema.json document. It round-trips through the
	// model but is never evaluated here. Nil when absent.
	Schema map[string]any

	// Files lists absolute paths under files/, sorted. Nil when the
	// directory is absent or empty; callers branch on that distinction.
	Files []string

	// Templates lists absolute paths of the direct children of templates/,
	// sorted. Always non-nil, possibly empty.
	Templates []string

	// Dependencies holds one loaded package per well-formed subdirectory of
	// dependencies/. Nil when the directory is absent.
	Dependencies []*Package
}

// Name returns the package name from the manifest.
func (p *Package) Name() string { return p.Manifest.Name }

// Version returns the package version from the manifest.
func (p *Package) Version() string { return p.Manifest.Version }

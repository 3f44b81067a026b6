package manifest

// FileName is the manifest file expected at the root of every generator
// package directory.
const FileName = "Generator.yaml"

// Manifest describes a generator package: its identity, metadata, and
// declared dependencies. It maps the Generator.yaml document.
type Manifest struct {
	APIVersion  string        `yaml:"apiVersion" json:"apiVersion"`
	Name        string        `yaml:"name" json:"name"`
	Version     string        `yaml:"version" json:"version"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Keywords    []string      `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Home        string        `yaml:"home,omitempty" json:"home,omitempty"`
	Sources     []string      `yaml:"sources,omitempty" json:"sources,omitempty"`
	Dependencies []Dependency `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Maintainers []Maintainer  `yaml:"maintainers,omitempty" json:"maintainers,omitempty"`
	Icon        string        `yaml:"icon,omitempty" json:"icon,omitempty"`
	Deprecated  bool          `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Annotations *Annotations  `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// Dependency is a declared dependency reference in the manifest. It is
// metadata only: the packages that actually load recursively live under the
// dependencies/ subdirectory of the package.
type Dependency struct {
	Name         string   `yaml:"name" json:"name"`
	URL          string   `yaml:"url" json:"url"`
	Condition    string   `yaml:"condition,omitempty" json:"condition,omitempty"`
	Tags         []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	ImportValues []string `yaml:"import-values,omitempty" json:"import-values,omitempty"`
	Alias        string   `yaml:"alias,omitempty" json:"alias,omitempty"`
}

// Maintainer identifies a package maintainer.
type Maintainer struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Annotations carries free-form manifest annotations.
type Annotations struct {
	Example string `yaml:"example,omitempty" json:"example,omitempty"`
}

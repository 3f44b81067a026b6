// Package scaffold creates a blank generator package from embedded
// templates. It powers the "new" command, producing a manifest, default
// values, a starter template, and a README ready to edit.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed templates
var scaffoldFS embed.FS

const blankSet = "templates/blank"

// Data holds the variables available to scaffold templates.
type Data struct {
	Name    string
	Version string
	Year    int
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
}

// NewData creates scaffold data for a package name with defaults filled in.
func NewData(name string) *Data {
	return &Data{
		Name:    name,
		Version: "0.1.0",
		Year:    time.Now().Year(),
	}
}

// Generate writes a blank generator package into outputDir. Files ending in
// .tmpl are rendered with text/template and the suffix stripped; everything
// else (notably the starter .tpl template, whose braces belong to the
// generator's own engine) is copied verbatim.
func Generate(data *Data, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Refuse to scribble over existing work.
	existing, err := os.ReadDir(outputDir)
	if err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{OutputDir: outputDir}

	err = fs.WalkDir(scaffoldFS, blankSet, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(blankSet, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			return os.MkdirAll(filepath.Join(outputDir, rel), 0755)
		}

		raw, err := fs.ReadFile(scaffoldFS, path)
		if err != nil {
			return fmt.Errorf("reading scaffold template %s: %w", path, err)
		}

		outRel := rel
		content := raw
		if strings.HasSuffix(rel, ".tmpl") {
			outRel = strings.TrimSuffix(rel, ".tmpl")
			content, err = renderTemplate(rel, raw, data)
			if err != nil {
				return err
			}
		}

		outPath := filepath.Join(outputDir, outRel)
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func renderTemplate(name string, raw []byte, data *Data) ([]byte, error) {
	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing scaffold template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering scaffold template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Package render walks a loaded generator package deterministically, copying
// its static files verbatim and dispatching each non-partial template to an
// Engine. It owns selection, ordering, and output placement; template
// syntax belongs entirely to the Engine.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/demiurgos-labs/demiurgos/internal/generator"
	"github.com/demiurgos-labs/demiurgos/internal/logging"
)

// PartialExt marks include-only templates: a template whose filename starts
// with an underscore and carries this extension is never emitted.
const PartialExt = ".tpl"

// Render produces the package's output tree under dest using the given
// context. An empty template set is a successful no-op. File copy failures
// and engine failures are fatal; there is no partial-success policy here.
func Render(pkg *generator.Package, dest string, context map[string]any, engine Engine) error {
	if len(pkg.Templates) == 0 {
		logging.L().Debugw("package has no templates, nothing to render", "name", pkg.Name())
		return nil
	}

	if err := ensureDir(dest); err != nil {
		return err
	}

	if err := copyFiles(pkg, dest); err != nil {
		return err
	}

	return renderTemplates(pkg, dest, context, engine)
}

// ensureDir creates dest recursively; a pre-existing non-directory is fatal.
func ensureDir(dest string) error {
	info, err := os.Stat(dest)
	if err == nil && !info.IsDir() {
		return fmt.Errorf("destination %s exists and is not a directory", dest)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("creating destination %s: %w", dest, err)
	}
	return nil
}

// copyFiles copies every files/ entry into dest, preserving the path
// relative to files/.
func copyFiles(pkg *generator.Package, dest string) error {
	if pkg.Files == nil {
		return nil
	}

	base := filepath.Join(pkg.BasePath, generator.FilesDir)
	for _, file := range pkg.Files {
		rel, err := filepath.Rel(base, file)
		if err != nil {
			return fmt.Errorf("resolving file path %s: %w", file, err)
		}
		target := filepath.Join(dest, rel)

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", target, err)
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", file, err)
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("copying %s to %s: %w", file, target, err)
		}
		logging.L().Debugw("copied file", "from", file, "to", target)
	}
	return nil
}

// renderTemplates dispatches each non-partial template, in sorted order, to
// the engine and writes the output.
func renderTemplates(pkg *generator.Package, dest string, context map[string]any, engine Engine) error {
	templates := append([]string(nil), pkg.Templates...)
	sort.Strings(templates)

	for _, tmplPath := range templates {
		name := filepath.Base(tmplPath)
		if isPartial(name) {
			logging.L().Debugw("skipping partial template", "template", name)
			continue
		}

		text, err := os.ReadFile(tmplPath)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		rendered, err := engine.RenderString(string(text), context)
		if err != nil {
			return fmt.Errorf("rendering template %s: %w", name, err)
		}

		fm, body, err := splitFrontmatter(rendered)
		if err != nil {
			return fmt.Errorf("template %s: %w", name, err)
		}

		outRel := strings.TrimSuffix(name, PartialExt)
		if fm != nil && fm.To != "" {
			outRel = filepath.FromSlash(fm.To)
		}
		target := filepath.Join(dest, outRel)

		if fm != nil && fm.SkipExists {
			if _, err := os.Stat(target); err == nil {
				logging.L().Infow("output exists, skipping", "template", name, "path", target)
				continue
			}
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", target, err)
		}
		if err := os.WriteFile(target, []byte(body), 0644); err != nil {
			return fmt.Errorf("writing rendered output %s: %w", target, err)
		}

		logging.L().Infow("rendered template", "template", name, "output", target)
		if fm != nil && fm.Message != "" {
			fmt.Println(fm.Message)
		}
	}
	return nil
}

// isPartial reports whether a template filename names an include-only
// partial: leading underscore plus the partial extension.
func isPartial(name string) bool {
	return strings.HasPrefix(name, "_") && filepath.Ext(name) == PartialExt
}

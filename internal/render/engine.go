package render

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// Engine is the seam between orchestration and template syntax. The
// orchestrator selects, orders, and places output; an Engine only turns one
// template's text plus a context into rendered text.
type Engine interface {
	RenderString(templateText string, data map[string]any) (string, error)
}

// PongoEngine renders Jinja-style templates with pongo2. The template set is
// rooted at a package's templates/ directory so templates can include
// partials by name, e.g. {% include "_macros.tpl" %}.
type PongoEngine struct {
	set *pongo2.TemplateSet
}

// NewEngine builds a PongoEngine whose include lookups resolve inside
// templatesDir.
func NewEngine(templatesDir string) (*PongoEngine, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(templatesDir)
	if err != nil {
		return nil, fmt.Errorf("creating template loader for %s: %w", templatesDir, err)
	}
	return &PongoEngine{set: pongo2.NewSet("generator", loader)}, nil
}

// RenderString parses and executes one template's text against data.
func (e *PongoEngine) RenderString(templateText string, data map[string]any) (string, error) {
	tmpl, err := e.set.FromString(templateText)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return out, nil
}

package render

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/demiurgos-labs/demiurgos/internal/generator"
)

// fakeEngine records every dispatch and echoes the template text.
type fakeEngine struct {
	calls []call
}

type call struct {
	text string
	data map[string]any
}

func (f *fakeEngine) RenderString(templateText string, data map[string]any) (string, error) {
	f.calls = append(f.calls, call{text: templateText, data: data})
	return templateText, nil
}

func writeTestPackage(t *testing.T, dir string) {
	t.Helper()
	mustWrite(t, filepath.Join(dir, "Generator.yaml"), "apiVersion: v1\nname: demo\nversion: 1.0.0\n")
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0755); err != nil {
		t.Fatal(err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func loadTestPackage(t *testing.T, dir string) *generator.Package {
	t.Helper()
	pkg, err := generator.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return pkg
}

func TestRenderEmptyTemplatesIsNoOp(t *testing.T) {
	dir := t.TempDir()
	writeTestPackage(t, dir)
	pkg := loadTestPackage(t, dir)

	dest := filepath.Join(t.TempDir(), "never-created")
	engine := &fakeEngine{}
	if err := Render(pkg, dest, map[string]any{}, engine); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(engine.calls) != 0 {
		t.Errorf("engine invoked %d times, want 0", len(engine.calls))
	}
	if _, err := os.Stat(dest); err == nil {
		t.Error("destination should not be created for a no-op render")
	}
}

func TestRenderFailsOnNonDirectoryDestination(t *testing.T) {
	dir := t.TempDir()
	writeTestPackage(t, dir)
	mustWrite(t, filepath.Join(dir, "templates", "index.tpl"), "hi")
	pkg := loadTestPackage(t, dir)

	dest := filepath.Join(t.TempDir(), "occupied")
	mustWrite(t, dest, "a file, not a directory")

	if err := Render(pkg, dest, map[string]any{}, &fakeEngine{}); err == nil {
		t.Fatal("expected error for non-directory destination")
	}
}

func TestRenderCopiesFilesAndDispatchesTemplates(t *testing.T) {
	dir := t.TempDir()
	writeTestPackage(t, dir)
	logo := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}
	mustWrite(t, filepath.Join(dir, "files", "logo.png"), string(logo))
	mustWrite(t, filepath.Join(dir, "files", "assets", "style.css"), "body{}")
	mustWrite(t, filepath.Join(dir, "templates", "page.tpl"), "page body")
	pkg := loadTestPackage(t, dir)

	dest := t.TempDir()
	engine := &fakeEngine{}
	context := map[string]any{"title": "Hi"}

	if err := Render(pkg, dest, context, engine); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "logo.png"))
	if err != nil {
		t.Fatalf("copied file missing: %v", err)
	}
	if string(got) != string(logo) {
		t.Error("copied file is not byte-identical")
	}
	if _, err := os.Stat(filepath.Join(dest, "assets", "style.css")); err != nil {
		t.Errorf("nested file path not preserved: %v", err)
	}

	if len(engine.calls) != 1 {
		t.Fatalf("engine invoked %d times, want 1", len(engine.calls))
	}
	if engine.calls[0].text != "page body" {
		t.Errorf("engine received %q", engine.calls[0].text)
	}
	if !reflect.DeepEqual(engine.calls[0].data, context) {
		t.Errorf("engine received context %#v, want %#v", engine.calls[0].data, context)
	}

	out, err := os.ReadFile(filepath.Join(dest, "page"))
	if err != nil {
		t.Fatalf("rendered output missing: %v", err)
	}
	if string(out) != "page body" {
		t.Errorf("output = %q", out)
	}
}

func TestRenderSkipsPartials(t *testing.T) {
	dir := t.TempDir()
	writeTestPackage(t, dir)
	mustWrite(t, filepath.Join(dir, "templates", "_macros.tpl"), "macro body")
	mustWrite(t, filepath.Join(dir, "templates", "index.tpl"), "index body")
	pkg := loadTestPackage(t, dir)

	dest := t.TempDir()
	engine := &fakeEngine{}
	if err := Render(pkg, dest, map[string]any{}, engine); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(engine.calls) != 1 || engine.calls[0].text != "index body" {
		t.Errorf("calls = %+v, want only index.tpl", engine.calls)
	}
	if _, err := os.Stat(filepath.Join(dest, "_macros")); err == nil {
		t.Error("partial must not produce output")
	}
	if _, err := os.Stat(filepath.Join(dest, "_macros.tpl")); err == nil {
		t.Error("partial must not be copied")
	}
}

func TestRenderDispatchOrderIsSorted(t *testing.T) {
	dir := t.TempDir()
	writeTestPackage(t, dir)
	mustWrite(t, filepath.Join(dir, "templates", "c.tpl"), "c")
	mustWrite(t, filepath.Join(dir, "templates", "a.tpl"), "a")
	mustWrite(t, filepath.Join(dir, "templates", "b.tpl"), "b")
	pkg := loadTestPackage(t, dir)

	engine := &fakeEngine{}
	if err := Render(pkg, t.TempDir(), map[string]any{}, engine); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var order []string
	for _, c := range engine.calls {
		order = append(order, c.text)
	}
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("dispatch order = %v", order)
	}
}

func TestRenderFrontmatterControlsPlacement(t *testing.T) {
	dir := t.TempDir()
	writeTestPackage(t, dir)
	mustWrite(t, filepath.Join(dir, "templates", "model.tpl"),
		"---\nto: src/models/user.go\n---\npackage models\n")
	pkg := loadTestPackage(t, dir)

	dest := t.TempDir()
	if err := Render(pkg, dest, map[string]any{}, &fakeEngine{}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "src", "models", "user.go"))
	if err != nil {
		t.Fatalf("frontmatter-placed output missing: %v", err)
	}
	if string(got) != "package models\n" {
		t.Errorf("body = %q", got)
	}
}

func TestRenderFrontmatterSkipExists(t *testing.T) {
	dir := t.TempDir()
	writeTestPackage(t, dir)
	mustWrite(t, filepath.Join(dir, "templates", "init.tpl"),
		"---\nto: config.ini\nskip_exists: true\n---\nfresh content\n")
	pkg := loadTestPackage(t, dir)

	dest := t.TempDir()
	mustWrite(t, filepath.Join(dest, "config.ini"), "user content")

	if err := Render(pkg, dest, map[string]any{}, &fakeEngine{}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "config.ini"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "user content" {
		t.Errorf("existing file overwritten despite skip_exists: %q", got)
	}
}

func TestPongoEngineRendersContext(t *testing.T) {
	engine, err := NewEngine(t.TempDir())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	out, err := engine.RenderString("Hello {{ title }}!", map[string]any{"title": "World"})
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if out != "Hello World!" {
		t.Errorf("out = %q", out)
	}
}

func TestPongoEngineResolvesIncludes(t *testing.T) {
	templatesDir := t.TempDir()
	mustWrite(t, filepath.Join(templatesDir, "_header.tpl"), "== {{ title }} ==")

	engine, err := NewEngine(templatesDir)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	out, err := engine.RenderString(`{% include "_header.tpl" %}`+"\nbody", map[string]any{"title": "Doc"})
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if out != "== Doc ==\nbody" {
		t.Errorf("out = %q", out)
	}
}

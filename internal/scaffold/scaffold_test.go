package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/demiurgos-labs/demiurgos/internal/generator"
)

func TestGenerateProducesLoadablePackage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "my-gen")

	result, err := Generate(NewData("my-gen"), out)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Files) == 0 {
		t.Fatal("no files generated")
	}

	// The scaffolded tree must be a valid package.
	pkg, err := generator.Load(out)
	if err != nil {
		t.Fatalf("scaffolded package does not load: %v", err)
	}
	if pkg.Name() != "my-gen" || pkg.Version() != "0.1.0" {
		t.Errorf("identity = (%s, %s)", pkg.Name(), pkg.Version())
	}
	if len(pkg.Templates) == 0 {
		t.Error("scaffold should include a starter template")
	}
}

func TestGenerateKeepsEngineBracesVerbatim(t *testing.T) {
	out := filepath.Join(t.TempDir(), "g")
	if _, err := Generate(NewData("g"), out); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "templates", "hello.tpl"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "{{ title }}") {
		t.Errorf("starter template braces were mangled: %q", data)
	}
}

func TestGenerateRefusesNonEmptyDirectory(t *testing.T) {
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(out, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(NewData("g"), out); err == nil {
		t.Fatal("expected error for non-empty output directory")
	}
}

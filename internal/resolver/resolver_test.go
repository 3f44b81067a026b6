package resolver

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeJSON(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDereferencesEntity(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "config.json"), `{"entities":{"a":{"$ref":"b.json"}}}`)
	writeJSON(t, filepath.Join(dir, "b.json"), `{"x":1}`)

	doc, issues, err := Resolve(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}

	want := map[string]any{"entities": map[string]any{"a": map[string]any{"x": float64(1)}}}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("doc = %#v, want %#v", doc, want)
	}
}

func TestResolveLeavesExtraKeyObjectUntouched(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "config.json"), `{"entities":{"a":{"$ref":"b.json","note":"keep"}}}`)
	writeJSON(t, filepath.Join(dir, "b.json"), `{"x":1}`)

	doc, issues, err := Resolve(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}

	entity := doc["entities"].(map[string]any)["a"].(map[string]any)
	if entity["$ref"] != "b.json" || entity["note"] != "keep" {
		t.Errorf("entity = %#v, want original object preserved", entity)
	}
}

func TestResolveLeavesNonStringRefUntouched(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "config.json"), `{"entities":{"a":{"$ref":42}}}`)

	doc, issues, err := Resolve(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}

	entity := doc["entities"].(map[string]any)["a"].(map[string]any)
	if entity["$ref"] != float64(42) {
		t.Errorf("entity = %#v", entity)
	}
}

func TestResolveMissingReferenceIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "config.json"),
		`{"entities":{"bad":{"$ref":"missing.json"},"good":{"$ref":"b.json"}}}`)
	writeJSON(t, filepath.Join(dir, "b.json"), `{"x":1}`)

	doc, issues, err := Resolve(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly one", issues)
	}

	entities := doc["entities"].(map[string]any)
	bad := entities["bad"].(map[string]any)
	if bad["$ref"] != "missing.json" {
		t.Errorf("unresolved entity must keep its $ref object, got %#v", bad)
	}
	good := entities["good"].(map[string]any)
	if good["x"] != float64(1) {
		t.Errorf("sibling entity not resolved: %#v", good)
	}
}

// Dereferencing is single-pass: a $ref inside a referenced document stays
// unresolved. This pins a known limitation rather than a desired behavior.
func TestResolveNestedRefNotResolved(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "config.json"), `{"entities":{"a":{"$ref":"b.json"}}}`)
	writeJSON(t, filepath.Join(dir, "b.json"), `{"inner":{"$ref":"c.json"}}`)
	writeJSON(t, filepath.Join(dir, "c.json"), `{"x":1}`)

	doc, issues, err := Resolve(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}

	a := doc["entities"].(map[string]any)["a"].(map[string]any)
	inner := a["inner"].(map[string]any)
	if inner["$ref"] != "c.json" {
		t.Errorf("nested $ref should remain unresolved, got %#v", inner)
	}
}

func TestResolveWithoutEntitiesIsPassthrough(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "config.json"), `{"title":"Hi"}`)

	doc, issues, err := Resolve(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues = %v", issues)
	}
	if doc["title"] != "Hi" {
		t.Errorf("doc = %#v", doc)
	}
}

func TestResolveInvalidConfigIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "config.json"), `{not json`)

	if _, _, err := Resolve(filepath.Join(dir, "config.json")); err == nil {
		t.Fatal("expected fatal error for invalid config JSON")
	}
}

func TestInjectOutputFolderWinsOverReference(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "config.json"), `{"entities":{"a":{"$ref":"b.json"}},"outputFolder":"from-config"}`)
	writeJSON(t, filepath.Join(dir, "b.json"), `{"outputFolder":"from-ref"}`)

	doc, _, err := Resolve(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	InjectOutputFolder(doc, "/final/dest")
	if doc["outputFolder"] != "/final/dest" {
		t.Errorf("outputFolder = %v, want the injected value", doc["outputFolder"])
	}
}

// Package resolver loads a JSON configuration document and dereferences the
// internal pointers a generator's config may carry: any value under the
// top-level "entities" mapping that is exactly {"$ref": "<path>"} is replaced
// by the contents of that file, resolved relative to the config file's own
// directory.
//
// The match is deliberately narrow: a single-key object with a string value.
// Objects carrying extra keys alongside $ref, or a non-string $ref, are left
// untouched. Dereferencing is single-pass: a loaded document's own $ref
// objects are not resolved.
package resolver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/demiurgos-labs/demiurgos/internal/logging"
)

const (
	refKey          = "$ref"
	entitiesKey     = "entities"
	outputFolderKey = "outputFolder"
)

// Resolve loads the JSON document at path and dereferences entity $ref
// objects in place. Per-entity failures (missing or invalid referenced
// files) are collected and returned alongside the document; the entity
// keeps its unresolved $ref object and resolution continues. The error
// return is reserved for failures that abort the whole resolve: an
// unreadable or unparseable config file.
func Resolve(path string) (map[string]any, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	issues := dereference(doc, filepath.Dir(path))
	return doc, issues, nil
}

// dereference performs the single-pass $ref replacement under entities.
func dereference(doc map[string]any, baseDir string) []error {
	entities, ok := doc[entitiesKey].(map[string]any)
	if !ok {
		return nil
	}

	var issues []error
	for key, value := range entities {
		ref, ok := refTarget(value)
		if !ok {
			continue
		}

		refPath := filepath.Join(baseDir, ref)
		logging.L().Debugw("dereferencing entity", "entity", key, "ref", refPath)

		loaded, err := loadJSON(refPath)
		if err != nil {
			issues = append(issues, fmt.Errorf("entity %q: %w", key, err))
			continue
		}
		entities[key] = loaded
	}
	return issues
}

// refTarget reports whether value is exactly a single-key {"$ref": string}
// object, returning the reference string when it is.
func refTarget(value any) (string, bool) {
	obj, ok := value.(map[string]any)
	if !ok || len(obj) != 1 {
		return "", false
	}
	ref, ok := obj[refKey].(string)
	return ref, ok
}

func loadJSON(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading referenced file %s: %w", path, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing referenced file %s: %w", path, err)
	}
	return doc, nil
}

// InjectOutputFolder sets the top-level outputFolder key. Callers invoke it
// after Resolve so a dereferenced document can never override the value.
func InjectOutputFolder(doc map[string]any, dest string) {
	doc[outputFolderKey] = dest
}

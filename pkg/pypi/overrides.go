package pypi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"os"

	"github.com/matzehuels/py3ready/pkg/extract"
)

// Projects marked compatible regardless of their classifiers, mostly
// standard library backports whose PyPI releases predate the Python 3
// classifiers.

//go:embed overrides.json
var overridesJSON []byte

// DefaultOverrides returns the built-in override set. Keys are
// normalized project names, values explain why the override exists.
func DefaultOverrides() map[string]string {
	overrides := make(map[string]string)
	if err := json.Unmarshal(overridesJSON, &overrides); err != nil {
		// The embedded file ships with the binary; failing to decode it
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("pypi: embedded overrides.json: %v", err))
	}
	return normalizeOverrides(overrides)
}

// LoadOverrides reads a user override file, a JSON object mapping
// project names to a short reason, and merges it over the defaults.
// User entries win on conflict.
func LoadOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	extra := make(map[string]string)
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w", path, err)
	}

	merged := DefaultOverrides()
	maps.Copy(merged, normalizeOverrides(extra))
	return merged, nil
}

func normalizeOverrides(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for name, reason := range m {
		out[extract.Normalize(name)] = reason
	}
	return out
}

package pypi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultOverrides(t *testing.T) {
	overrides := DefaultOverrides()
	if len(overrides) == 0 {
		t.Fatal("expected built-in overrides")
	}
	if _, ok := overrides["mock"]; !ok {
		t.Error("expected mock in the built-in overrides")
	}
	for name := range overrides {
		if name != strings.ToLower(name) || strings.Contains(name, "_") {
			t.Errorf("override key %q is not normalized", name)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	content := `{"My_Internal_Fork": "patched in-house", "mock": "custom reason"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	overrides, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}
	if got := overrides["my-internal-fork"]; got != "patched in-house" {
		t.Errorf("user entry = %q, want normalized key with reason", got)
	}
	if got := overrides["mock"]; got != "custom reason" {
		t.Errorf("user entries should win on conflict, got %q", got)
	}
	if _, ok := overrides["wsgiref"]; !ok {
		t.Error("defaults should survive the merge")
	}
}

func TestLoadOverrides_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	if err := os.WriteFile(path, []byte(`{"unterminated": `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOverrides(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoadOverrides_MissingFile(t *testing.T) {
	if _, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckOptsSeeds(t *testing.T) {
	dir := t.TempDir()
	reqs := writeFile(t, dir, "requirements.txt", "Django==4.2\nrequests\n# comment\n")
	meta := writeFile(t, dir, "PKG-INFO", "Name: demo\nRequires-Dist: celery\nRequires-Dist: requests\n")
	pyp := writeFile(t, dir, "pyproject.toml", "[project]\nname = \"demo\"\ndependencies = [\"flask>=2\"]\n")

	opts := checkOpts{
		projects:     []string{"My_App"},
		requirements: []string{reqs},
		metadata:     []string{meta},
		pyproject:    []string{pyp},
	}

	seeds, err := opts.seeds(context.Background())
	if err != nil {
		t.Fatalf("seeds() error = %v", err)
	}
	want := []string{"my-app", "django", "requests", "celery", "flask"}
	if !slices.Equal(seeds, want) {
		t.Errorf("seeds() = %v, want %v", seeds, want)
	}
}

func TestCheckOptsSeeds_MissingFile(t *testing.T) {
	opts := checkOpts{requirements: []string{filepath.Join(t.TempDir(), "nope.txt")}}
	if _, err := opts.seeds(context.Background()); err == nil {
		t.Fatal("seeds() should fail for a missing file")
	}
}

func TestCheckOptsSeeds_MalformedPyproject(t *testing.T) {
	pyp := writeFile(t, t.TempDir(), "pyproject.toml", "= not toml")
	opts := checkOpts{pyproject: []string{pyp}}
	if _, err := opts.seeds(context.Background()); err == nil {
		t.Fatal("seeds() should fail for malformed pyproject.toml")
	}
}

func TestHasSources(t *testing.T) {
	if (&checkOpts{}).hasSources() {
		t.Error("empty opts should have no sources")
	}
	if !(&checkOpts{projects: []string{"django"}}).hasSources() {
		t.Error("projects flag should count as a source")
	}
	if !(&checkOpts{pyproject: []string{"pyproject.toml"}}).hasSources() {
		t.Error("pyproject flag should count as a source")
	}
}

func TestRunCheck_NoSources(t *testing.T) {
	t.Chdir(t.TempDir())

	err := runCheck(context.Background(), &checkOpts{})
	if !errors.Is(err, errNoSources) {
		t.Fatalf("runCheck() error = %v, want errNoSources", err)
	}
}

func TestRunCheck_Blocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"info": {"classifiers": [], "requires_dist": []}}`)
	}))
	defer server.Close()

	opts := checkOpts{projects: []string{"legacy-lib"}, indexURL: server.URL, workers: 1}
	err := runCheck(withLogger(context.Background(), newLogger(io.Discard, log.InfoLevel)), &opts)
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("runCheck() error = %v, want ErrBlocked", err)
	}
}

func TestRunCheck_Clean(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"info": {"classifiers": ["Programming Language :: Python :: 3"], "requires_dist": []}}`)
	}))
	defer server.Close()

	opts := checkOpts{projects: []string{"requests"}, indexURL: server.URL, workers: 1}
	if err := runCheck(withLogger(context.Background(), newLogger(io.Discard, log.InfoLevel)), &opts); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
}

func TestCheckOptsOracle_BadOverrides(t *testing.T) {
	opts := checkOpts{overrides: filepath.Join(t.TempDir(), "missing.json")}
	if _, err := opts.oracle(newLogger(io.Discard, log.InfoLevel)); err == nil {
		t.Fatal("oracle() should fail for an unreadable overrides file")
	}
}

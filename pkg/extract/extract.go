// Package extract pulls project names out of the places Python projects
// declare their dependencies: requirements files, installed-package
// metadata, and pyproject.toml.
//
// All extractors return normalized, deduplicated names in input order and
// never perform I/O; callers hand them loaded content. Lines that carry
// no usable name (options, bare URLs, malformed entries) are skipped
// rather than treated as errors, so one odd line never sinks a whole
// requirements file.
package extract

import (
	"bufio"
	"path"
	"regexp"
	"strings"
)

var nameRE = regexp.MustCompile(`^[a-zA-Z0-9][-a-zA-Z0-9._]*`)

// archive suffixes stripped from file: path stems, longest first so
// .tar.gz wins over .tar.
var archiveExts = []string{".tar.gz", ".tar.bz2", ".tar.xz", ".tgz", ".tbz2", ".zip", ".whl", ".tar"}

// Normalize converts a project name to its canonical form following
// PEP 503: lowercase with underscores replaced by hyphens. PyPI treats
// names that normalize identically as the same project.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// Name extracts the normalized project name from a single requirement
// specifier such as "FooProject >= 1.2" or "Fizzy[foo]". Version
// constraints, extras, and environment markers are dropped, never
// evaluated. ok is false when no name can be found.
func Name(req string) (string, bool) {
	m := nameRE.FindString(strings.TrimSpace(req))
	if m == "" {
		return "", false
	}
	return Normalize(m), true
}

// FromRequirements extracts project names from requirements file content.
//
// Blank lines and # comments are skipped. Editable installs and URLs with
// an #egg= fragment contribute the fragment name; file: paths without one
// contribute the path stem (archive suffixes stripped). Anything else is
// read as a requirement specifier per [Name]. pip options (-r, -c,
// --index-url, ...) and bare URLs are skipped.
func FromRequirements(text string) []string {
	seen := make(map[string]bool)
	var result []string
	add := func(name string, ok bool) {
		if ok && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}

		switch {
		case strings.Contains(line, "egg="):
			add(eggName(line))
		case strings.HasPrefix(line, "file:"):
			add(stemName(line))
		case strings.HasPrefix(line, "-") || strings.Contains(line, "://"):
			// Options and bare URLs carry no usable name.
		default:
			add(Name(line))
		}
	}
	return result
}

// FromMetadata extracts project names from core metadata content
// (PKG-INFO or METADATA files). Only Requires-Dist fields are read;
// environment markers after ";" are dropped without being evaluated, so
// platform-conditional dependencies are always included.
func FromMetadata(text string) []string {
	seen := make(map[string]bool)
	var result []string

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lower := strings.ToLower(line)
		if !strings.HasPrefix(lower, "requires-dist:") {
			continue
		}
		if name, ok := Name(line[len("requires-dist:"):]); ok && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	return result
}

// Union merges name lists into one deduplicated list, preserving the
// order names first appear.
func Union(lists ...[]string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, list := range lists {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	return result
}

// eggName pulls the project name out of an #egg= fragment.
func eggName(line string) (string, bool) {
	frag := line[strings.Index(line, "egg=")+len("egg="):]
	if i := strings.IndexAny(frag, "&#"); i >= 0 {
		frag = frag[:i]
	}
	return Name(frag)
}

// stemName derives a name from a file: path by taking the last path
// segment and stripping archive suffixes.
func stemName(line string) (string, bool) {
	p := strings.TrimPrefix(line, "file:")
	if i := strings.IndexAny(p, "#?"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	base := path.Base(p)
	for _, ext := range archiveExts {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	return Name(base)
}

package extract

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type pyprojectFile struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// FromPyProject extracts project names from pyproject.toml content.
//
// Only [project] dependencies are read (PEP 621); optional-dependencies
// groups are ignored, matching how extras are treated elsewhere. Unlike
// the line-oriented inputs, a broken TOML document is an error: the whole
// file is unusable, not just one entry.
func FromPyProject(data []byte) ([]string, error) {
	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse pyproject.toml: %w", err)
	}

	seen := make(map[string]bool)
	var result []string
	for _, dep := range file.Project.Dependencies {
		if name, ok := Name(dep); ok && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	return result, nil
}

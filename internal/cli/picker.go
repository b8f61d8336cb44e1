package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	kindRequirements = "requirements"
	kindMetadata     = "metadata"
	kindPyproject    = "pyproject"
)

// candidate is a dependency source found in the working directory,
// mapped to the flag it would have been passed with.
type candidate struct {
	path string
	kind string
}

// findCandidates scans dir for dependency files worth offering.
func findCandidates(dir string) []candidate {
	var found []candidate

	matches, _ := filepath.Glob(filepath.Join(dir, "*requirements*.txt"))
	for _, m := range matches {
		found = append(found, candidate{path: m, kind: kindRequirements})
	}
	for _, fixed := range []struct{ name, kind string }{
		{"pyproject.toml", kindPyproject},
		{"PKG-INFO", kindMetadata},
		{"METADATA", kindMetadata},
	} {
		p := filepath.Join(dir, fixed.name)
		if _, err := os.Stat(p); err == nil {
			found = append(found, candidate{path: p, kind: fixed.kind})
		}
	}
	return found
}

// pickerModel is the bubbletea model for interactive source selection.
type pickerModel struct {
	candidates []candidate
	cursor     int
	selected   *candidate
}

func newPickerModel(candidates []candidate) pickerModel {
	return pickerModel{candidates: candidates}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.candidates)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = &m.candidates[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dependency Source"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, c := range m.candidates {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-30s  %s", cursor, c.path, listDimStyle.Render(c.kind))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickSource offers known dependency files from the working directory
// when no source flags were given. Outside a terminal, or when nothing
// is found or selected, it leaves opts untouched and the usage error
// surfaces downstream.
func pickSource(opts *checkOpts) error {
	if !isTerminal(os.Stdout) {
		return nil
	}
	candidates := findCandidates(".")
	if len(candidates) == 0 {
		return nil
	}

	out, err := tea.NewProgram(newPickerModel(candidates)).Run()
	if err != nil {
		return err
	}
	m, ok := out.(pickerModel)
	if !ok || m.selected == nil {
		printDetail("No selection made")
		return nil
	}

	switch m.selected.kind {
	case kindRequirements:
		opts.requirements = append(opts.requirements, m.selected.path)
	case kindMetadata:
		opts.metadata = append(opts.metadata, m.selected.path)
	case kindPyproject:
		opts.pyproject = append(opts.pyproject, m.selected.path)
	}
	printInfo("Checking %s", m.selected.path)
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

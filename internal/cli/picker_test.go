package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFindCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", "")
	writeFile(t, dir, "dev-requirements.txt", "")
	writeFile(t, dir, "pyproject.toml", "")
	writeFile(t, dir, "readme.md", "")

	got := findCandidates(dir)
	if len(got) != 3 {
		t.Fatalf("findCandidates() = %v, want 3 entries", got)
	}

	kinds := make(map[string]int)
	for _, c := range got {
		kinds[c.kind]++
	}
	if kinds[kindRequirements] != 2 || kinds[kindPyproject] != 1 {
		t.Errorf("kinds = %v, want 2 requirements and 1 pyproject", kinds)
	}
}

func TestFindCandidates_Empty(t *testing.T) {
	if got := findCandidates(t.TempDir()); len(got) != 0 {
		t.Errorf("findCandidates() = %v, want none", got)
	}
}

func TestPickerModelSelect(t *testing.T) {
	m := newPickerModel([]candidate{
		{path: "requirements.txt", kind: kindRequirements},
		{path: "pyproject.toml", kind: kindPyproject},
	})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(pickerModel).Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := next.(pickerModel)
	if got.selected == nil || got.selected.path != "pyproject.toml" {
		t.Errorf("selected = %+v, want pyproject.toml", got.selected)
	}
}

func TestPickerModelQuit(t *testing.T) {
	m := newPickerModel([]candidate{{path: "requirements.txt", kind: kindRequirements}})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit the picker")
	}
	if next.(pickerModel).selected != nil {
		t.Error("quitting should not select a candidate")
	}
}

func TestPickerModelView(t *testing.T) {
	m := newPickerModel([]candidate{
		{path: "requirements.txt", kind: kindRequirements},
	})
	view := m.View()
	if !strings.Contains(view, "requirements.txt") {
		t.Errorf("View() missing candidate path:\n%s", view)
	}
}

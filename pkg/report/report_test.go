package report

import (
	"slices"
	"testing"

	"github.com/matzehuels/py3ready/pkg/check"
)

func TestRender_NoBlockers(t *testing.T) {
	want := []string{"You have 0 projects blocking you from using Python 3!"}
	if got := Render(nil); !slices.Equal(got, want) {
		t.Errorf("Render(nil) = %q, want %q", got, want)
	}
	if got := Render([]check.Chain{{}}); !slices.Equal(got, want) {
		t.Errorf("Render(empty chain) = %q, want %q", got, want)
	}
}

func TestRender_SingleBlocker(t *testing.T) {
	chains := []check.Chain{{"app"}}
	want := []string{
		"You need 1 project to transition to Python 3.",
		"Of that 1 project, 1 has no direct dependencies blocking its transition:",
		"app",
	}
	if got := Render(chains); !slices.Equal(got, want) {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_SharedBlocker(t *testing.T) {
	chains := []check.Chain{
		{"alpha", "unported"},
		{"beta", "unported"},
		{"gamma"},
	}
	want := []string{
		"You need 3 projects to transition to Python 3.",
		"Of those 3 projects, 2 have no direct dependencies blocking their transition:",
		"unported (which is blocking alpha)",
		"unported (which is blocking beta)",
		"gamma",
	}
	if got := Render(chains); !slices.Equal(got, want) {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_PrefixChain(t *testing.T) {
	// One seed is itself the blocker of another; the bare root line
	// must still appear ahead of the longer path through it.
	chains := []check.Chain{
		{"legacy"},
		{"webapp", "legacy"},
	}
	want := []string{
		"You need 2 projects to transition to Python 3.",
		"Of those 2 projects, 1 has no direct dependencies blocking its transition:",
		"legacy",
		"legacy (which is blocking webapp)",
	}
	if got := Render(chains); !slices.Equal(got, want) {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestMerge_SharedSuffix(t *testing.T) {
	chains := []check.Chain{
		{"appa", "middle", "unported"},
		{"appb", "middle", "unported"},
	}
	want := []string{
		"unported (which is blocking middle, which is blocking appa)",
		"unported (which is blocking middle, which is blocking appb)",
	}
	if got := Merge(chains).Lines(); !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestLines_RootOrder(t *testing.T) {
	// Roots blocking more seeds come first; equal counts fall back to
	// name order.
	chains := []check.Chain{
		{"s1", "zeta"},
		{"s2", "zeta"},
		{"s3", "beta"},
		{"s4", "alpha"},
	}
	got := Merge(chains).Lines()
	want := []string{
		"zeta (which is blocking s1)",
		"zeta (which is blocking s2)",
		"alpha (which is blocking s4)",
		"beta (which is blocking s3)",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestFormatChain(t *testing.T) {
	tests := []struct {
		name string
		path []string
		want string
	}{
		{"single", []string{"x"}, "x"},
		{"pair", []string{"x", "y"}, "x (which is blocking y)"},
		{"triple", []string{"x", "y", "z"}, "x (which is blocking y, which is blocking z)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatChain(tt.path); got != tt.want {
				t.Errorf("formatChain(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

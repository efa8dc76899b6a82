package keybind

import (
	"testing"

	"github.com/bpetrich/skipper/internal/command"
	"github.com/bpetrich/skipper/internal/config"
)

func buildTestTree(t *testing.T) *Composite {
	t.Helper()
	root, err := FromKeymap(config.Keymap{
		"q": "quit",
		"d": map[string]any{
			"d": "cut",
			"D": "delete",
		},
		"o": map[string]any{
			"m": map[string]any{
				"k": "mkdir",
			},
		},
	})
	if err != nil {
		t.Fatalf("FromKeymap failed: %v", err)
	}
	return root
}

func beginChord(t *testing.T, root *Composite, key string) *Resolver {
	t.Helper()
	node, ok := root.Child(key)
	if !ok {
		t.Fatalf("%s binding missing", key)
	}
	composite, ok := node.(*Composite)
	if !ok {
		t.Fatalf("%s should be a Composite binding", key)
	}
	r := &Resolver{}
	r.Begin(composite)
	return r
}

func TestResolverResolvesChord(t *testing.T) {
	root := buildTestTree(t)
	r := beginChord(t, root, "d")

	cmd, state := r.Step("d")
	if state != StepResolved {
		t.Fatalf("state = %v, want StepResolved", state)
	}
	if _, ok := cmd.(command.Cut); !ok {
		t.Errorf("resolved command = %s, want cut", cmd.Name())
	}
	if r.Pending() {
		t.Error("resolver should be idle after resolution")
	}
}

func TestResolverDescendsNestedChord(t *testing.T) {
	root := buildTestTree(t)
	r := beginChord(t, root, "o")

	cmd, state := r.Step("m")
	if state != StepPending {
		t.Fatalf("state = %v, want StepPending", state)
	}
	if cmd != nil {
		t.Error("no command should resolve mid-chord")
	}
	if !r.Pending() {
		t.Fatal("resolver should still be pending")
	}

	cmd, state = r.Step("k")
	if state != StepResolved {
		t.Fatalf("state = %v, want StepResolved", state)
	}
	if _, ok := cmd.(command.Mkdir); !ok {
		t.Errorf("resolved command = %s, want mkdir", cmd.Name())
	}
}

func TestResolverAborts(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"escape", "esc"},
		{"unmapped character", "x"},
		{"non-character input", "ctrl+home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := buildTestTree(t)
			r := beginChord(t, root, "d")

			cmd, state := r.Step(tt.key)
			if state != StepAborted {
				t.Fatalf("state = %v, want StepAborted", state)
			}
			if cmd != nil {
				t.Error("aborted chord must not yield a command")
			}
			if r.Pending() {
				t.Error("resolver should be idle after abort")
			}
		})
	}
}

func TestResolverEscapeAtDepth(t *testing.T) {
	root := buildTestTree(t)
	r := beginChord(t, root, "o")

	if _, state := r.Step("m"); state != StepPending {
		t.Fatalf("setup: expected pending state, got %v", state)
	}
	if _, state := r.Step("esc"); state != StepAborted {
		t.Fatal("escape should abort at any depth")
	}
	if r.Pending() {
		t.Error("resolver should be idle after deep escape")
	}
}

func TestResolverConsistentAfterAbort(t *testing.T) {
	root := buildTestTree(t)
	r := beginChord(t, root, "d")

	if _, state := r.Step("x"); state != StepAborted {
		t.Fatal("setup: expected abort")
	}

	// A fresh chord must behave exactly like the first one
	r = beginChord(t, root, "d")
	cmd, state := r.Step("D")
	if state != StepResolved {
		t.Fatalf("state = %v, want StepResolved", state)
	}
	if _, ok := cmd.(command.Delete); !ok {
		t.Errorf("resolved command = %s, want delete", cmd.Name())
	}
}

func TestResolverStepWhileIdle(t *testing.T) {
	r := &Resolver{}
	cmd, state := r.Step("d")
	if state != StepAborted || cmd != nil {
		t.Error("stepping an idle resolver should abort with no command")
	}
}

package keybind

import "github.com/bpetrich/skipper/internal/command"

// StepState reports what a resolver step did with a key
type StepState int

const (
	// StepResolved means the chord reached a command
	StepResolved StepState = iota
	// StepPending means the chord descended another level and more keys
	// are expected
	StepPending
	// StepAborted means the chord ended without a command (Escape, an
	// unmapped key, or non-character input)
	StepAborted
)

// Resolver walks the keybinding tree one key at a time. It replaces the
// original recursive resolution with an explicit walk: the only state is
// the composite node currently awaiting its next key.
type Resolver struct {
	node *Composite
}

// Pending reports whether a chord is in progress
func (r *Resolver) Pending() bool {
	return r.node != nil
}

// Begin starts chord resolution at the given composite node
func (r *Resolver) Begin(node *Composite) {
	r.node = node
}

// Abort resets the resolver to idle
func (r *Resolver) Abort() {
	r.node = nil
}

// Menu returns the menu entries for the level awaiting input
func (r *Resolver) Menu() []MenuEntry {
	if r.node == nil {
		return nil
	}
	return r.node.Menu()
}

// Step feeds the next key into an in-progress chord. Escape aborts at any
// depth; a key mapped to a Simple binding resolves; a key mapped to a
// Composite descends. Anything else aborts. Whatever happens, the resolver
// is left in a consistent state for the next input
func (r *Resolver) Step(key string) (command.Command, StepState) {
	if r.node == nil {
		return nil, StepAborted
	}

	if key == "esc" {
		r.node = nil
		return nil, StepAborted
	}

	node, ok := r.node.Child(key)
	if !ok {
		r.node = nil
		return nil, StepAborted
	}

	switch n := node.(type) {
	case Simple:
		r.node = nil
		return n.Cmd, StepResolved
	case *Composite:
		r.node = n
		return nil, StepPending
	default:
		r.node = nil
		return nil, StepAborted
	}
}

// Package keybind maps key presses onto commands, including chorded
// sequences resolved through a tree of nested bindings.
package keybind

import (
	"fmt"
	"sort"

	"github.com/bpetrich/skipper/internal/command"
	"github.com/bpetrich/skipper/internal/config"
)

// Node is one entry in the keybinding tree: either a Simple binding that
// resolves to a command, or a Composite holding the next chord level.
// Trees are built once at startup and never mutated afterwards.
type Node interface {
	Description() string
}

// Simple binds a key directly to a command
type Simple struct {
	Cmd command.Command
}

func (s Simple) Description() string { return s.Cmd.Name() }

// Composite binds a key to a deeper table of bindings
type Composite struct {
	children map[string]Node
}

// NewComposite returns an empty binding table
func NewComposite() *Composite {
	return &Composite{children: make(map[string]Node)}
}

func (c *Composite) Description() string { return "..." }

// Bind adds a child binding under key
func (c *Composite) Bind(key string, node Node) {
	c.children[key] = node
}

// Child looks up the binding for a single key
func (c *Composite) Child(key string) (Node, bool) {
	node, ok := c.children[key]
	return node, ok
}

// Len returns the number of bindings at this level
func (c *Composite) Len() int {
	return len(c.children)
}

// MenuEntry is one row of the chord menu overlay
type MenuEntry struct {
	Key  string
	Desc string
}

// Menu lists this level's bindings sorted by key, for display while the
// resolver waits for the next chord key
func (c *Composite) Menu() []MenuEntry {
	entries := make([]MenuEntry, 0, len(c.children))
	for key, node := range c.children {
		entries = append(entries, MenuEntry{Key: key, Desc: node.Description()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// FromKeymap builds the binding tree from the raw keymap table. String
// values are command specs; nested maps become deeper chord levels
func FromKeymap(keymap config.Keymap) (*Composite, error) {
	root := NewComposite()
	for key, value := range keymap {
		node, err := buildNode(key, value)
		if err != nil {
			return nil, err
		}
		root.Bind(key, node)
	}
	return root, nil
}

func buildNode(key string, value any) (Node, error) {
	switch v := value.(type) {
	case string:
		cmd, err := command.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		return Simple{Cmd: cmd}, nil
	case map[string]any:
		if len(v) == 0 {
			return nil, fmt.Errorf("binding %q: empty chord table", key)
		}
		child := NewComposite()
		for childKey, childValue := range v {
			node, err := buildNode(childKey, childValue)
			if err != nil {
				return nil, fmt.Errorf("binding %q: %w", key, err)
			}
			child.Bind(childKey, node)
		}
		return child, nil
	default:
		return nil, fmt.Errorf("binding %q: expected command string or nested table, got %T", key, value)
	}
}

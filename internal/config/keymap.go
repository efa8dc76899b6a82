package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bpetrich/skipper/internal/logger"
)

// Keymap is the raw keybinding table as parsed from keymap.json.
// Each value is either a command string ("cursor_down 1") or a nested
// Keymap-shaped map for chorded sequences.
type Keymap map[string]any

// DefaultKeymap returns the built-in keybindings
func DefaultKeymap() Keymap {
	return Keymap{
		"q":         "quit",
		"up":        "cursor_up 1",
		"k":         "cursor_up 1",
		"down":      "cursor_down 1",
		"j":         "cursor_down 1",
		"pgup":      "cursor_up 10",
		"pgdown":    "cursor_down 10",
		"home":      "cursor_home",
		"end":       "cursor_end",
		"G":         "cursor_end",
		"left":      "parent_dir",
		"h":         "parent_dir",
		"right":     "open",
		"l":         "open",
		"enter":     "open",
		"t":         "new_tab",
		"w":         "close_tab",
		"tab":       "tab_next",
		"shift+tab": "tab_prev",
		".":         "toggle_hidden",
		"r":         "reload",
		"/":         "filter",
		"a":         "rename",
		"Y":         "copy_path",
		"D":         "delete",
		"g": map[string]any{
			"g": "cursor_home",
		},
		"y": map[string]any{
			"y": "yank",
		},
		"d": map[string]any{
			"d": "cut",
			"D": "delete",
		},
		"p": map[string]any{
			"p": "paste",
		},
		"o": map[string]any{
			"f": "touch",
			"d": "mkdir",
		},
		"s": map[string]any{
			"n": "sort name",
			"s": "sort size",
			"m": "sort mtime",
			"e": "sort ext",
		},
	}
}

// LoadKeymap reads keybindings from ~/.config/skipper/keymap.json,
// writing the defaults on first run
func LoadKeymap() Keymap {
	dir, err := configDir()
	if err != nil {
		logger.Error("Failed to resolve config directory: %v", err)
		return DefaultKeymap()
	}
	keymapPath := filepath.Join(dir, "keymap.json")

	data, err := os.ReadFile(keymapPath)
	if err != nil {
		keymap := DefaultKeymap()
		if err := SaveKeymap(keymap); err != nil {
			logger.Warn("Failed to save default keymap: %v", err)
		}
		return keymap
	}

	keymap := Keymap{}
	if err := json.Unmarshal(data, &keymap); err != nil {
		logger.Warn("Failed to parse keymap file %s: %v, using defaults", keymapPath, err)
		return DefaultKeymap()
	}
	if len(keymap) == 0 {
		logger.Warn("Keymap file %s is empty, using defaults", keymapPath)
		return DefaultKeymap()
	}

	return keymap
}

// SaveKeymap writes keybindings to ~/.config/skipper/keymap.json
func SaveKeymap(keymap Keymap) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	keymapPath := filepath.Join(dir, "keymap.json")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(keymap, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal keymap: %w", err)
	}

	if err := os.WriteFile(keymapPath, data, 0644); err != nil {
		return fmt.Errorf("cannot write keymap file: %w", err)
	}

	return nil
}

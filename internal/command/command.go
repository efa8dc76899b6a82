// Package command defines the unit of work the main loop dispatches to.
// Commands are looked up by name so the user keymap can reference them.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bpetrich/skipper/internal/app"
	"github.com/bpetrich/skipper/internal/tab"
)

// Command is a single executable action. Execute mutates the context; a
// returned error is shown on the status bar and never terminates the loop.
type Command interface {
	Name() string
	Execute(ctx *app.Context) error
}

// Parse resolves a keymap command spec like "cursor_down 5" or "sort size"
// into a Command
func Parse(spec string) (Command, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "quit":
		return Quit{}, nil
	case "cursor_up", "cursor_down":
		count := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%s: bad count %q", name, args[0])
			}
			count = n
		}
		if name == "cursor_up" {
			return CursorMove{Delta: -count}, nil
		}
		return CursorMove{Delta: count}, nil
	case "cursor_home":
		return CursorHome{}, nil
	case "cursor_end":
		return CursorEnd{}, nil
	case "parent_dir":
		return ParentDir{}, nil
	case "open":
		return Open{}, nil
	case "cd":
		if len(args) != 1 {
			return nil, fmt.Errorf("cd: expected one path argument")
		}
		return ChangeDir{Path: args[0]}, nil
	case "new_tab":
		return NewTab{}, nil
	case "close_tab":
		return CloseTab{}, nil
	case "tab_next":
		return TabSwitch{Delta: 1}, nil
	case "tab_prev":
		return TabSwitch{Delta: -1}, nil
	case "toggle_hidden":
		return ToggleHidden{}, nil
	case "sort":
		if len(args) != 1 {
			return nil, fmt.Errorf("sort: expected a mode argument")
		}
		mode, err := tab.SortModeFromName(args[0])
		if err != nil {
			return nil, err
		}
		return SetSort{Mode: mode}, nil
	case "reload":
		return Reload{}, nil
	case "filter":
		return Filter{}, nil
	case "rename":
		return Rename{}, nil
	case "mkdir":
		return Mkdir{}, nil
	case "touch":
		return Touch{}, nil
	case "delete":
		return Delete{}, nil
	case "yank":
		return Yank{}, nil
	case "cut":
		return Cut{}, nil
	case "paste":
		return Paste{}, nil
	case "copy_path":
		return CopyPath{}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", name)
	}
}

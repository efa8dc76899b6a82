package command

import (
	"fmt"
	"path/filepath"

	"github.com/skratchdot/open-golang/open"

	"github.com/bpetrich/skipper/internal/app"
	"github.com/bpetrich/skipper/internal/tab"
)

// Quit sets the exit flag; the loop terminates cleanly afterwards
type Quit struct{}

func (Quit) Name() string { return "quit" }

func (Quit) Execute(ctx *app.Context) error {
	ctx.Exit = true
	return nil
}

// CursorMove moves the cursor by Delta rows in the active listing
type CursorMove struct {
	Delta int
}

func (c CursorMove) Name() string {
	if c.Delta < 0 {
		return fmt.Sprintf("cursor_up %d", -c.Delta)
	}
	return fmt.Sprintf("cursor_down %d", c.Delta)
}

func (c CursorMove) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	cur.MoveCursor(c.Delta)
	return nil
}

// CursorHome jumps to the first entry
type CursorHome struct{}

func (CursorHome) Name() string { return "cursor_home" }

func (CursorHome) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	cur.CursorHome()
	return nil
}

// CursorEnd jumps to the last entry
type CursorEnd struct{}

func (CursorEnd) Name() string { return "cursor_end" }

func (CursorEnd) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	cur.CursorEnd()
	return nil
}

// ParentDir navigates the active tab to its parent directory
type ParentDir struct{}

func (ParentDir) Name() string { return "parent_dir" }

func (ParentDir) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	parent := filepath.Dir(cur.Path)
	if parent == cur.Path {
		return nil // already at the root
	}
	return cur.ChangeDir(parent)
}

// Open enters the selected directory, or hands a file to the system opener
type Open struct{}

func (Open) Name() string { return "open" }

func (Open) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	selected, ok := cur.Selected()
	if !ok {
		return fmt.Errorf("nothing selected")
	}
	if selected.IsDir {
		return cur.ChangeDir(selected.Path)
	}
	if err := open.Run(selected.Path); err != nil {
		return fmt.Errorf("cannot open %s: %w", selected.Name, err)
	}
	return nil
}

// ChangeDir navigates the active tab to a fixed path
type ChangeDir struct {
	Path string
}

func (c ChangeDir) Name() string { return "cd " + c.Path }

func (c ChangeDir) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	return cur.ChangeDir(c.Path)
}

// NewTab opens another tab at the active tab's directory
type NewTab struct{}

func (NewTab) Name() string { return "new_tab" }

func (NewTab) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	t, err := tab.New(cur.Path, ctx.TabOptions())
	if err != nil {
		return err
	}
	ctx.AddTab(t)
	return nil
}

// CloseTab closes the active tab; closing the last one exits
type CloseTab struct{}

func (CloseTab) Name() string { return "close_tab" }

func (CloseTab) Execute(ctx *app.Context) error {
	ctx.CloseCurrent()
	return nil
}

// TabSwitch cycles the active tab by Delta, wrapping around
type TabSwitch struct {
	Delta int
}

func (c TabSwitch) Name() string {
	if c.Delta < 0 {
		return "tab_prev"
	}
	return "tab_next"
}

func (c TabSwitch) Execute(ctx *app.Context) error {
	if len(ctx.Tabs) == 0 {
		return fmt.Errorf("no open tab")
	}
	n := len(ctx.Tabs)
	ctx.CurrentTab = ((ctx.CurrentTab+c.Delta)%n + n) % n
	return nil
}

// ToggleHidden flips dotfile visibility in the active tab
type ToggleHidden struct{}

func (ToggleHidden) Name() string { return "toggle_hidden" }

func (ToggleHidden) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	return cur.ToggleHidden()
}

// SetSort switches the active tab's listing order
type SetSort struct {
	Mode tab.SortMode
}

func (c SetSort) Name() string { return "sort " + c.Mode.Name() }

func (c SetSort) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	cur.SetSort(c.Mode)
	ctx.SetStatus("Sorting by %s", c.Mode.Name())
	return nil
}

// Reload re-reads the active tab's listing
type Reload struct{}

func (Reload) Name() string { return "reload" }

func (Reload) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	return cur.Reload()
}

// Filter prompts for a fuzzy filter over the active listing. An empty
// answer clears the filter
type Filter struct{}

func (Filter) Name() string { return "filter" }

func (Filter) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	ctx.RequestPrompt(&app.Prompt{
		Label:   "filter: ",
		Initial: cur.Filter,
		Apply: func(ctx *app.Context, value string) error {
			cur := ctx.Current()
			if cur == nil {
				return fmt.Errorf("no open tab")
			}
			cur.SetFilter(value)
			if value != "" {
				ctx.SetStatus("%d match(es)", len(cur.Visible))
			}
			return nil
		},
	})
	return nil
}

package command

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/bpetrich/skipper/internal/app"
	"github.com/bpetrich/skipper/internal/fileops"
	"github.com/bpetrich/skipper/internal/task"
)

// Rename prompts for a new name for the selected entry
type Rename struct{}

func (Rename) Name() string { return "rename" }

func (Rename) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	selected, ok := cur.Selected()
	if !ok {
		return fmt.Errorf("nothing selected")
	}

	oldPath := selected.Path
	ctx.RequestPrompt(&app.Prompt{
		Label:   "rename: ",
		Initial: selected.Name,
		Apply: func(ctx *app.Context, value string) error {
			if value == "" || value == filepath.Base(oldPath) {
				return nil
			}
			if err := fileops.Rename(oldPath, value); err != nil {
				return fmt.Errorf("rename failed: %w", err)
			}
			cur := ctx.Current()
			if cur == nil {
				return nil
			}
			return cur.Reload()
		},
	})
	return nil
}

// Mkdir prompts for a directory name and creates it in the active tab
type Mkdir struct{}

func (Mkdir) Name() string { return "mkdir" }

func (Mkdir) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}

	dir := cur.Path
	ctx.RequestPrompt(&app.Prompt{
		Label: "mkdir: ",
		Apply: func(ctx *app.Context, value string) error {
			if value == "" {
				return nil
			}
			if err := fileops.CreateDir(dir, value); err != nil {
				return fmt.Errorf("mkdir failed: %w", err)
			}
			cur := ctx.Current()
			if cur == nil {
				return nil
			}
			return cur.Reload()
		},
	})
	return nil
}

// Touch prompts for a file name and creates it empty in the active tab
type Touch struct{}

func (Touch) Name() string { return "touch" }

func (Touch) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}

	dir := cur.Path
	ctx.RequestPrompt(&app.Prompt{
		Label: "touch: ",
		Apply: func(ctx *app.Context, value string) error {
			if value == "" {
				return nil
			}
			if err := fileops.CreateFile(dir, value); err != nil {
				return fmt.Errorf("touch failed: %w", err)
			}
			cur := ctx.Current()
			if cur == nil {
				return nil
			}
			return cur.Reload()
		},
	})
	return nil
}

// Delete removes the selected entry, asking first when the config says so
type Delete struct{}

func (Delete) Name() string { return "delete" }

func (Delete) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	selected, ok := cur.Selected()
	if !ok {
		return fmt.Errorf("nothing selected")
	}

	apply := func(ctx *app.Context) error {
		if err := fileops.Delete(selected.Path, selected.IsDir); err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}
		ctx.SetStatus("Deleted %s", selected.Name)
		cur := ctx.Current()
		if cur == nil {
			return nil
		}
		return cur.Reload()
	}

	if ctx.Config.ConfirmDelete {
		ctx.RequestConfirm(&app.Confirm{
			Question: fmt.Sprintf("delete %s?", selected.Name),
			Apply:    apply,
		})
		return nil
	}
	return apply(ctx)
}

// Yank marks the selected entry for a later copying paste
type Yank struct{}

func (Yank) Name() string { return "yank" }

func (Yank) Execute(ctx *app.Context) error {
	return stageClipboard(ctx, app.OpCopy, "Yanked")
}

// Cut marks the selected entry for a later moving paste
type Cut struct{}

func (Cut) Name() string { return "cut" }

func (Cut) Execute(ctx *app.Context) error {
	return stageClipboard(ctx, app.OpCut, "Cut")
}

func stageClipboard(ctx *app.Context, op app.ClipboardOp, verb string) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	selected, ok := cur.Selected()
	if !ok {
		return fmt.Errorf("nothing selected")
	}

	ctx.Clipboard = []string{selected.Path}
	ctx.ClipboardOp = op
	ctx.ClipboardTab = ctx.CurrentTab
	ctx.SetStatus("%s %s", verb, selected.Name)
	return nil
}

// Paste spawns a tracked background operation transferring the clipboard
// into the active tab. The tracker reloads both affected tabs once the
// worker finishes
type Paste struct{}

func (Paste) Name() string { return "paste" }

func (Paste) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	if len(ctx.Clipboard) == 0 || ctx.ClipboardOp == app.OpNone {
		return fmt.Errorf("clipboard is empty")
	}

	sources := append([]string(nil), ctx.Clipboard...)
	destDir := cur.Path

	kind := "copy"
	transfer := fileops.CopyAll
	if ctx.ClipboardOp == app.OpCut {
		kind = "move"
		transfer = fileops.MoveAll
	}

	op := task.Spawn(kind, ctx.ClipboardTab, ctx.CurrentTab, func(report fileops.ProgressFunc) error {
		return transfer(sources, destDir, report)
	})
	ctx.Tracker.Register(op)
	ctx.SetStatus("%s started: %d item(s)", kind, len(sources))

	// A cut clipboard is single use; the sources are gone after the move
	if ctx.ClipboardOp == app.OpCut {
		ctx.Clipboard = nil
		ctx.ClipboardOp = app.OpNone
	}
	return nil
}

// CopyPath puts the selected entry's absolute path on the system clipboard
type CopyPath struct{}

func (CopyPath) Name() string { return "copy_path" }

func (CopyPath) Execute(ctx *app.Context) error {
	cur := ctx.Current()
	if cur == nil {
		return fmt.Errorf("no open tab")
	}
	selected, ok := cur.Selected()
	if !ok {
		return fmt.Errorf("nothing selected")
	}
	if err := clipboard.WriteAll(selected.Path); err != nil {
		return fmt.Errorf("cannot copy path: %w", err)
	}
	ctx.SetStatus("Copied: %s", selected.Path)
	return nil
}

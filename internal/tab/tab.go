package tab

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// SortMode selects the listing order
type SortMode int

const (
	SortByName SortMode = iota
	SortBySize
	SortByDate
	SortByType
)

// SortModeFromName maps config/keymap names to sort modes
func SortModeFromName(name string) (SortMode, error) {
	switch name {
	case "name":
		return SortByName, nil
	case "size":
		return SortBySize, nil
	case "mtime":
		return SortByDate, nil
	case "ext":
		return SortByType, nil
	default:
		return SortByName, fmt.Errorf("unknown sort mode: %s", name)
	}
}

// Name returns the config-facing name of the sort mode
func (s SortMode) Name() string {
	switch s {
	case SortBySize:
		return "size"
	case SortByDate:
		return "mtime"
	case SortByType:
		return "ext"
	default:
		return "name"
	}
}

// Options control how a tab reads and orders its listing
type Options struct {
	ShowHidden       bool
	DirectoriesFirst bool
	Sort             SortMode
}

// Entry is one item in a directory listing
type Entry struct {
	Path       string
	Name       string
	IsDir      bool
	Size       int64
	ModTime    time.Time
	IsSymlink  bool
	LinkTarget string
}

// Tab is an independent directory browsing context: a location plus its
// cached listing, cursor and filter state
type Tab struct {
	Path    string
	Entries []Entry // full sorted listing
	Visible []Entry // listing after the fuzzy filter
	Matches [][]int // matched character positions per visible entry
	Cursor  int
	Scroll  int
	Filter  string
	Opts    Options
}

// New creates a tab rooted at path and loads its listing. Failure here is
// the caller's problem; at startup it is fatal
func New(path string, opts Options) (*Tab, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", path, err)
	}

	t := &Tab{Path: abs, Opts: opts}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload re-reads the directory listing from the filesystem, keeping the
// cursor on a valid entry
func (t *Tab) Reload() error {
	entries, err := os.ReadDir(t.Path)
	if err != nil {
		return fmt.Errorf("cannot read directory %s: %w", t.Path, err)
	}

	t.Entries = t.Entries[:0]
	for _, entry := range entries {
		if !t.Opts.ShowHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		itemPath := filepath.Join(t.Path, entry.Name())

		// Lstat so broken symlinks still show up
		linfo, err := os.Lstat(itemPath)
		if err != nil {
			continue
		}

		item := Entry{
			Path:    itemPath,
			Name:    entry.Name(),
			IsDir:   linfo.IsDir(),
			Size:    linfo.Size(),
			ModTime: linfo.ModTime(),
		}

		if linfo.Mode()&os.ModeSymlink != 0 {
			item.IsSymlink = true
			if target, err := os.Readlink(itemPath); err == nil {
				if !filepath.IsAbs(target) {
					target = filepath.Join(t.Path, target)
				}
				item.LinkTarget = target
			}
			if targetInfo, err := os.Stat(itemPath); err == nil {
				item.IsDir = targetInfo.IsDir()
				item.Size = targetInfo.Size()
				item.ModTime = targetInfo.ModTime()
			}
		}

		t.Entries = append(t.Entries, item)
	}

	t.sortEntries()
	t.applyFilter()
	t.clampCursor()
	return nil
}

// ChangeDir points the tab at a new directory and reloads. The old listing
// is kept untouched when the new directory is unreadable
func (t *Tab) ChangeDir(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", path, err)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return fmt.Errorf("cannot read directory %s: %w", abs, err)
	}

	t.Path = abs
	t.Cursor = 0
	t.Scroll = 0
	t.Filter = ""
	return t.Reload()
}

// SetSort switches the listing order and re-sorts the cached listing
func (t *Tab) SetSort(mode SortMode) {
	t.Opts.Sort = mode
	t.sortEntries()
	t.applyFilter()
	t.clampCursor()
}

// ToggleHidden flips dotfile visibility. The listing must be re-read since
// hidden entries were never loaded
func (t *Tab) ToggleHidden() error {
	t.Opts.ShowHidden = !t.Opts.ShowHidden
	return t.Reload()
}

// SetFilter applies a fuzzy filter over the listing
func (t *Tab) SetFilter(query string) {
	t.Filter = query
	t.applyFilter()
	t.Cursor = 0
	t.Scroll = 0
}

// ClearFilter restores the unfiltered listing
func (t *Tab) ClearFilter() {
	t.SetFilter("")
}

// Selected returns the entry under the cursor
func (t *Tab) Selected() (Entry, bool) {
	if t.Cursor < 0 || t.Cursor >= len(t.Visible) {
		return Entry{}, false
	}
	return t.Visible[t.Cursor], true
}

// MoveCursor moves the cursor by delta rows, clamped to the listing
func (t *Tab) MoveCursor(delta int) {
	t.Cursor += delta
	t.clampCursor()
}

// CursorHome moves the cursor to the first entry
func (t *Tab) CursorHome() {
	t.Cursor = 0
}

// CursorEnd moves the cursor to the last entry
func (t *Tab) CursorEnd() {
	t.Cursor = len(t.Visible) - 1
	if t.Cursor < 0 {
		t.Cursor = 0
	}
}

// ClampView adjusts cursor and scroll offset for a viewport of the given
// height, keeping margin rows of context where possible
func (t *Tab) ClampView(height, margin int) {
	t.clampCursor()
	if height <= 0 {
		return
	}

	if t.Cursor-margin < t.Scroll {
		t.Scroll = t.Cursor - margin
	}
	if t.Cursor+margin >= t.Scroll+height {
		t.Scroll = t.Cursor + margin - height + 1
	}

	maxScroll := len(t.Visible) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if t.Scroll > maxScroll {
		t.Scroll = maxScroll
	}
	if t.Scroll < 0 {
		t.Scroll = 0
	}
}

func (t *Tab) clampCursor() {
	if t.Cursor >= len(t.Visible) {
		t.Cursor = len(t.Visible) - 1
	}
	if t.Cursor < 0 {
		t.Cursor = 0
	}
}

func (t *Tab) sortEntries() {
	sort.SliceStable(t.Entries, func(i, j int) bool {
		a, b := t.Entries[i], t.Entries[j]

		if t.Opts.DirectoriesFirst && t.Opts.Sort != SortBySize && a.IsDir != b.IsDir {
			return a.IsDir
		}

		switch t.Opts.Sort {
		case SortBySize:
			return a.Size > b.Size
		case SortByDate:
			return a.ModTime.After(b.ModTime)
		case SortByType:
			extA := strings.ToLower(filepath.Ext(a.Name))
			extB := strings.ToLower(filepath.Ext(b.Name))
			if extA != extB {
				return extA < extB
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
}

func (t *Tab) applyFilter() {
	if t.Filter == "" {
		t.Visible = t.Entries
		t.Matches = nil
		return
	}

	names := make([]string, len(t.Entries))
	for i, entry := range t.Entries {
		names[i] = entry.Name
	}

	results := fuzzy.Find(t.Filter, names)
	t.Visible = make([]Entry, 0, len(results))
	t.Matches = make([][]int, 0, len(results))
	for _, match := range results {
		t.Visible = append(t.Visible, t.Entries[match.Index])
		t.Matches = append(t.Matches, match.MatchedIndexes)
	}
}

// Package app holds the session state threaded through every command: the
// open tabs, the active tab index and the tracked background operations.
package app

import (
	"fmt"
	"time"

	"github.com/bpetrich/skipper/internal/config"
	"github.com/bpetrich/skipper/internal/tab"
	"github.com/bpetrich/skipper/internal/task"
)

const statusTTL = 3 * time.Second

// ClipboardOp marks what a paste should do with the yanked paths
type ClipboardOp int

const (
	OpNone ClipboardOp = iota
	OpCopy
	OpCut
)

// Prompt asks the main loop to collect one line of input and hand it back
type Prompt struct {
	Label   string
	Initial string
	Apply   func(ctx *Context, value string) error
}

// Confirm asks the main loop for a yes/no answer before running Apply
type Confirm struct {
	Question string
	Apply    func(ctx *Context) error
}

// Context is the process-wide session state. It is owned exclusively by the
// main loop and passed into command execution; worker goroutines never see it.
type Context struct {
	Tabs       []*tab.Tab
	CurrentTab int
	Config     *config.Config
	Tracker    *task.Tracker
	Exit       bool

	Clipboard    []string
	ClipboardOp  ClipboardOp
	ClipboardTab int // tab the paths were yanked from

	status        string
	statusExpiry  time.Time
	pendingPrompt *Prompt
	pendingConfirm *Confirm
}

// New creates a context with no tabs yet
func New(cfg *config.Config) *Context {
	return &Context{
		Config:  cfg,
		Tracker: task.NewTracker(),
	}
}

// TabOptions derives listing options for a fresh tab from the config
func (c *Context) TabOptions() tab.Options {
	sortMode, err := tab.SortModeFromName(c.Config.SortBy)
	if err != nil {
		sortMode = tab.SortByName
	}
	return tab.Options{
		ShowHidden:       c.Config.ShowHidden,
		DirectoriesFirst: c.Config.DirectoriesFirst,
		Sort:             sortMode,
	}
}

// Current returns the active tab, or nil when no tabs are open
func (c *Context) Current() *tab.Tab {
	if !c.ValidTab(c.CurrentTab) {
		return nil
	}
	return c.Tabs[c.CurrentTab]
}

// ValidTab reports whether index still names an open tab. Operations can
// outlive the tabs they were started from
func (c *Context) ValidTab(index int) bool {
	return index >= 0 && index < len(c.Tabs)
}

// AddTab appends a tab and makes it active
func (c *Context) AddTab(t *tab.Tab) {
	c.Tabs = append(c.Tabs, t)
	c.CurrentTab = len(c.Tabs) - 1
}

// CloseCurrent removes the active tab. Closing the last tab exits
func (c *Context) CloseCurrent() {
	if !c.ValidTab(c.CurrentTab) {
		return
	}
	c.Tabs = append(c.Tabs[:c.CurrentTab], c.Tabs[c.CurrentTab+1:]...)
	if len(c.Tabs) == 0 {
		c.Exit = true
		return
	}
	if c.CurrentTab >= len(c.Tabs) {
		c.CurrentTab = len(c.Tabs) - 1
	}
}

// SetStatus puts a message on the status bar for a few seconds
func (c *Context) SetStatus(format string, args ...any) {
	c.status = fmt.Sprintf(format, args...)
	c.statusExpiry = time.Now().Add(statusTTL)
}

// Status returns the current status message, dropping it once expired
func (c *Context) Status() string {
	if c.status != "" && time.Now().After(c.statusExpiry) {
		c.status = ""
	}
	return c.status
}

// RequestPrompt queues an input request for the main loop to service
func (c *Context) RequestPrompt(p *Prompt) {
	c.pendingPrompt = p
}

// TakePrompt hands the queued input request to the main loop
func (c *Context) TakePrompt() *Prompt {
	p := c.pendingPrompt
	c.pendingPrompt = nil
	return p
}

// RequestConfirm queues a yes/no request for the main loop to service
func (c *Context) RequestConfirm(conf *Confirm) {
	c.pendingConfirm = conf
}

// TakeConfirm hands the queued yes/no request to the main loop
func (c *Context) TakeConfirm() *Confirm {
	conf := c.pendingConfirm
	c.pendingConfirm = nil
	return conf
}

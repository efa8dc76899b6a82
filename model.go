package main

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bpetrich/skipper/internal/app"
	"github.com/bpetrich/skipper/internal/keybind"
)

type mode int

const (
	modeNormal mode = iota
	modePrompt
	modeConfirm
)

const (
	// pollInterval bounds how long a running operation can go unobserved;
	// the tracker poll fires on this cadence whether or not input arrives
	pollInterval = 100 * time.Millisecond

	uiOverhead    = 2 // tab bar + status bar
	minListHeight = 3
)

type tickMsg time.Time

type model struct {
	ctx      *app.Context
	keys     *keybind.Composite
	resolver keybind.Resolver

	mode      mode
	prompt    *app.Prompt
	confirm   *app.Confirm
	textInput textinput.Model

	width  int
	height int
}

func newModel(ctx *app.Context, keys *keybind.Composite) *model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	return &model{
		ctx:       ctx,
		keys:      keys,
		textInput: ti,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("skipper"),
		pollTick(),
	)
}

func pollTick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listHeight is the number of listing rows that fit under the tab bar,
// above the status bar and any open chord menu
func (m *model) listHeight() int {
	h := m.height - uiOverhead
	if m.resolver.Pending() {
		h -= len(m.resolver.Menu()) + 1
	}
	if h < minListHeight {
		h = minListHeight
	}
	return h
}

// clampTabs recomputes cursor and scroll bounds for every tab, used after
// geometry changes
func (m *model) clampTabs() {
	height := m.listHeight()
	for _, t := range m.ctx.Tabs {
		t.ClampView(height, m.ctx.Config.ScrollMargin)
	}
}

// clampActive keeps the active tab's viewport consistent after a command
func (m *model) clampActive() {
	if cur := m.ctx.Current(); cur != nil {
		cur.ClampView(m.listHeight(), m.ctx.Config.ScrollMargin)
	}
}

package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bpetrich/skipper/internal/command"
	"github.com/bpetrich/skipper/internal/keybind"
	"github.com/bpetrich/skipper/internal/logger"
	"github.com/bpetrich/skipper/internal/task"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampTabs()
		return m, nil

	case tickMsg:
		// One tracker poll pass per tick, input or not, so progress and
		// completions never starve while the user is idle
		if done := m.ctx.Tracker.Poll(); done != nil {
			m.finishOperation(done)
		}
		return m, pollTick()

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case modePrompt:
			cmd = m.updatePrompt(msg)
		case modeConfirm:
			m.updateConfirm(msg)
		default:
			m.handleKey(msg)
		}
		if m.ctx.Exit {
			return m, tea.Quit
		}
		m.clampActive()
		return m, cmd
	}

	return m, nil
}

// handleKey dispatches normal-mode input: either a continuation of an
// in-progress chord, or a fresh lookup in the root keybinding table
func (m *model) handleKey(msg tea.KeyMsg) {
	key := msg.String()

	if m.resolver.Pending() {
		cmd, state := m.resolver.Step(key)
		switch state {
		case keybind.StepResolved:
			m.execute(cmd)
		case keybind.StepPending:
			// deeper chord level, menu redraws on the next frame
		default:
			m.ctx.SetStatus("Unknown keycode: %s", key)
		}
		return
	}

	if key == "ctrl+c" {
		m.ctx.Exit = true
		return
	}

	node, ok := m.keys.Child(key)
	if !ok {
		m.ctx.SetStatus("Unknown keycode: %s", key)
		return
	}
	switch n := node.(type) {
	case *keybind.Composite:
		m.resolver.Begin(n)
	case keybind.Simple:
		m.execute(n.Cmd)
	}
}

// execute runs a command against the context. Failures become status
// messages, never terminate the loop
func (m *model) execute(cmd command.Command) {
	if err := cmd.Execute(m.ctx); err != nil {
		logger.Error("command %s: %v", cmd.Name(), err)
		m.ctx.SetStatus("%v", err)
	}

	if p := m.ctx.TakePrompt(); p != nil {
		m.mode = modePrompt
		m.prompt = p
		m.textInput.SetValue(p.Initial)
		m.textInput.CursorEnd()
		m.textInput.Focus()
	}
	if c := m.ctx.TakeConfirm(); c != nil {
		m.mode = modeConfirm
		m.confirm = c
	}
}

func (m *model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		prompt := m.prompt
		value := m.textInput.Value()
		m.closePrompt()
		if prompt != nil {
			if err := prompt.Apply(m.ctx, value); err != nil {
				logger.Error("prompt %s: %v", prompt.Label, err)
				m.ctx.SetStatus("%v", err)
			}
		}
		return nil
	case "esc", "ctrl+c":
		m.closePrompt()
		return nil
	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return cmd
	}
}

func (m *model) closePrompt() {
	m.mode = modeNormal
	m.prompt = nil
	m.textInput.Blur()
	m.textInput.SetValue("")
}

func (m *model) updateConfirm(msg tea.KeyMsg) {
	confirm := m.confirm
	m.mode = modeNormal
	m.confirm = nil

	switch msg.String() {
	case "y", "Y":
		if confirm != nil {
			if err := confirm.Apply(m.ctx); err != nil {
				logger.Error("confirm %s: %v", confirm.Question, err)
				m.ctx.SetStatus("%v", err)
			}
		}
	default:
		m.ctx.SetStatus("Cancelled")
	}
}

// finishOperation reconciles one completed background operation: a join
// error is surfaced and reloads are skipped, otherwise the source tab is
// reloaded first and the destination after it when distinct
func (m *model) finishOperation(done *task.Done) {
	op := done.Op
	if done.Err != nil {
		logger.Error("%s operation failed: %v", op.Kind, done.Err)
		m.ctx.SetStatus("%s failed: %v", op.Kind, done.Err)
		return
	}

	m.reloadTab(op.SrcTab)
	if op.DestTab != op.SrcTab {
		m.reloadTab(op.DestTab)
	}
	m.ctx.SetStatus("%s finished", op.Kind)
}

// reloadTab refreshes one tab's listing after an operation touched it.
// Indexes of tabs closed while the operation ran are silently skipped; the
// active tab repaints on the next frame, other tabs keep the refreshed
// cache until activated
func (m *model) reloadTab(index int) {
	if !m.ctx.ValidTab(index) {
		return
	}
	if err := m.ctx.Tabs[index].Reload(); err != nil {
		logger.Error("reload tab %d: %v", index, err)
		m.ctx.SetStatus("%v", err)
	}
}

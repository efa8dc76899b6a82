package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bpetrich/skipper/internal/utils"
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderTabBar(),
		m.renderListing(m.listHeight()),
	}
	if m.resolver.Pending() {
		// chord menu sits between the listing and the status bar, sized
		// to its entries plus a title row
		sections = append(sections, m.renderChordMenu())
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *model) renderTabBar() string {
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("235")).
		Background(lipgloss.Color("99")).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Background(lipgloss.Color("236")).
		Padding(0, 1)
	barStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width)

	var parts []string
	for i, t := range m.ctx.Tabs {
		label := fmt.Sprintf("%d %s", i+1, filepath.Base(t.Path))
		if i == m.ctx.CurrentTab {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, inactiveStyle.Render(label))
		}
	}
	tabs := strings.Join(parts, " ")

	var path string
	if cur := m.ctx.Current(); cur != nil {
		path = cur.Path
	}
	pathStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("235"))

	gap := m.width - lipgloss.Width(tabs) - lipgloss.Width(path) - 2
	if gap < 1 {
		// not enough room, drop the path
		return barStyle.Render(tabs)
	}
	return barStyle.Render(tabs + strings.Repeat(" ", gap) + pathStyle.Render(path))
}

func (m *model) renderListing(height int) string {
	cur := m.ctx.Current()
	if cur == nil {
		return lipgloss.NewStyle().Height(height).Render("")
	}

	cursorStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("235")).
		Background(lipgloss.Color("214"))
	dirStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
	linkStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("51"))

	var b strings.Builder
	rows := 0
	for i := cur.Scroll; i < len(cur.Visible) && rows < height; i++ {
		entry := cur.Visible[i]

		name := entry.Name
		if cur.Filter != "" && i < len(cur.Matches) {
			name = utils.HighlightMatches(name, cur.Matches[i])
		}

		icon := " "
		if m.ctx.Config.IconsEnabled {
			if entry.IsDir {
				icon = "📁"
			} else {
				icon = utils.FileIcon(entry.Name)
			}
		}

		size := ""
		if !entry.IsDir {
			size = utils.FormatFileSizeColored(entry.Size)
		}

		line := fmt.Sprintf("%s %s", icon, name)
		switch {
		case i == cur.Cursor:
			line = cursorStyle.Render(fmt.Sprintf("> %s %s", icon, entry.Name))
		case entry.IsSymlink:
			line = "  " + linkStyle.Render(line+" -> "+entry.LinkTarget)
		case entry.IsDir:
			line = "  " + dirStyle.Render(line)
		default:
			line = "  " + line
		}

		if size != "" {
			pad := m.width - lipgloss.Width(line) - lipgloss.Width(size) - 1
			if pad > 0 {
				line += strings.Repeat(" ", pad) + size
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
		rows++
	}

	if len(cur.Visible) == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("  (empty)")
		b.WriteString(empty)
		b.WriteString("\n")
		rows++
	}

	for ; rows < height; rows++ {
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// renderChordMenu draws the pending chord's bindings, one row per entry
// under a title row, anchored above the status bar
func (m *model) renderChordMenu() string {
	entries := m.resolver.Menu()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Background(lipgloss.Color("236")).
		Width(m.width)
	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("236")).
		Width(m.width)
	keyStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))

	lines := []string{titleStyle.Render(" key    command")}
	for _, entry := range entries {
		row := fmt.Sprintf(" %s%s", keyStyle.Render(fmt.Sprintf("%-6s", entry.Key)), entry.Desc)
		lines = append(lines, rowStyle.Render(row))
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderStatusBar() string {
	barStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Width(m.width)

	switch m.mode {
	case modePrompt:
		label := ""
		if m.prompt != nil {
			label = m.prompt.Label
		}
		return barStyle.Render(label + m.textInput.View())
	case modeConfirm:
		question := ""
		if m.confirm != nil {
			question = m.confirm.Question
		}
		return barStyle.Render(question + " (y/N)")
	}

	left := m.ctx.Status()
	if left == "" {
		left = m.selectionInfo()
	}

	right := m.progressInfo()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return barStyle.Render(left)
	}
	return barStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) selectionInfo() string {
	cur := m.ctx.Current()
	if cur == nil {
		return ""
	}
	selected, ok := cur.Selected()
	if !ok {
		return fmt.Sprintf(" 0/%d", len(cur.Visible))
	}
	info := fmt.Sprintf(" %d/%d  %s", cur.Cursor+1, len(cur.Visible), selected.Name)
	if !selected.IsDir {
		info += "  " + utils.FormatFileSize(selected.Size)
	}
	if cur.Filter != "" {
		info += fmt.Sprintf("  [filter: %s]", cur.Filter)
	}
	return info
}

// progressInfo summarizes running background operations for the status bar
func (m *model) progressInfo() string {
	ops := m.ctx.Tracker.Operations()
	if len(ops) == 0 {
		return ""
	}

	progressStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("235"))

	text := fmt.Sprintf("%s starting... ", ops[0].Kind)
	for _, op := range ops {
		if !op.HasProg {
			continue
		}
		pct := 0
		if op.Latest.TotalBytes > 0 {
			pct = int(op.Latest.DoneBytes * 100 / op.Latest.TotalBytes)
		}
		text = fmt.Sprintf("%s %d%% (%d/%d files  %s) ",
			op.Kind, pct, op.Latest.DoneFiles, op.Latest.TotalFiles,
			filepath.Base(op.Latest.Current))
		break
	}
	if len(ops) > 1 {
		text += fmt.Sprintf("[%d ops] ", len(ops))
	}
	return progressStyle.Render(text)
}

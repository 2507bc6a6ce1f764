package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/handling-analyzer/internal/flags"
)

// View renders the UI.
func (m Model) View() string {
	if m.state == StateAccepted || m.state == StateCanceled {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderSearch(),
		m.renderList(),
	}
	if m.config.ShowHelp {
		sections = append(sections, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(fmt.Sprintf("Edit %s flags", m.catalog.Name))
	mask := m.theme.Mask.Render(flags.ToHex(m.Mask()))

	status := fmt.Sprintf("%d active", len(m.selected))
	if m.Changed() {
		status += fmt.Sprintf(", was %s", flags.ToHex(flags.Encode(m.original)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", mask, "  ", m.theme.Subtitle.Render(status))
}

func (m Model) renderSearch() string {
	if m.state == StateSearch || m.search.Value() != "" {
		return m.search.View()
	}
	return m.theme.Subtitle.Render("press / to search")
}

func (m Model) renderList() string {
	if len(m.visible) == 0 {
		return m.theme.Warning.Render("No flags match the search")
	}

	end := min(len(m.visible), m.offset+m.pageSize())
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(m.visible[i], i == m.cursor))
	}
	return m.theme.BorderedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(def flags.Definition, focused bool) string {
	box := m.theme.Unchecked.Render("[ ]")
	if m.selected.Has(def.Value) {
		box = m.theme.Checked.Render("[x]")
	}

	name := def.Name
	if focused {
		name = m.theme.Selected.Render(name)
	} else {
		name = m.theme.Normal.Render(name)
	}

	row := fmt.Sprintf("%s %s %s", box, name, m.theme.Subtitle.Render(flags.ToHex(def.Value)))
	if !def.Recommended {
		row += " " + m.theme.Warning.Render("(not recommended)")
	}

	if focused && def.Description != "" {
		desc := def.Description
		if limit := m.width - 10; limit > 20 && len(desc) > limit {
			desc = desc[:limit-3] + "..."
		}
		row += "\n      " + m.theme.Description.Render(desc)
	}
	return row
}

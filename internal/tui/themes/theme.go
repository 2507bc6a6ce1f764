// Package themes holds the color schemes used by the flag editor.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Selected    lipgloss.Style
	Checked     lipgloss.Style
	Unchecked   lipgloss.Style
	Warning     lipgloss.Style
	Description lipgloss.Style
	Mask        lipgloss.Style
	BorderedBox lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Success     lipgloss.Color
	Warn        lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#7c3aed"),
	Muted:   lipgloss.Color("#737373"),
	Border:  lipgloss.Color("#404040"),
	Success: lipgloss.Color("#10b981"),
	Warn:    lipgloss.Color("#f59e0b"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#7c3aed")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	Checked: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	Unchecked: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")),
	Description: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Italic(true),
	Mask: lipgloss.NewStyle().
		Background(lipgloss.Color("#262626")).
		Foreground(lipgloss.Color("#e5e5e5")).
		Padding(0, 1),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}

// Plain renders without colors, for tests and dumb terminals.
var Plain = Theme{
	Title:       lipgloss.NewStyle(),
	Subtitle:    lipgloss.NewStyle(),
	Normal:      lipgloss.NewStyle(),
	Selected:    lipgloss.NewStyle(),
	Checked:     lipgloss.NewStyle(),
	Unchecked:   lipgloss.NewStyle(),
	Warning:     lipgloss.NewStyle(),
	Description: lipgloss.NewStyle(),
	Mask:        lipgloss.NewStyle(),
	BorderedBox: lipgloss.NewStyle(),
}

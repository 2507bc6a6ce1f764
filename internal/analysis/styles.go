package analysis

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/handling-analyzer/internal/cli"
)

// Styles holds the lipgloss styles used by CLIFormatter.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	Score     lipgloss.Style
	FlagBox   lipgloss.Style
	ChangeBox lipgloss.Style
}

func panel(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		MarginTop(1)
}

// NewStyles builds the report styles on top of the shared CLI palette.
func NewStyles() *Styles {
	return &Styles{
		Title:     cli.TitleStyle,
		Subtitle:  cli.SubtitleStyle,
		Success:   cli.SuccessStyle,
		Warning:   cli.WarningStyle,
		Error:     cli.ErrorStyle,
		Info:      cli.InfoStyle,
		Subtle:    cli.SubtleStyle,
		Normal:    lipgloss.NewStyle(),
		Score:     lipgloss.NewStyle().Bold(true).Padding(0, 1),
		FlagBox:   panel(cli.WarningColor),
		ChangeBox: panel(cli.SuccessColor),
	}
}

// WithWidth narrows the panels for terminals under 100 columns.
func (s *Styles) WithWidth(width int) *Styles {
	out := *s
	if width > 0 && width < 100 {
		out.FlagBox = s.FlagBox.Width(width - 4)
		out.ChangeBox = s.ChangeBox.Width(width - 4)
	}
	return &out
}

// ForSeverity picks the style for an issue line.
func (s *Styles) ForSeverity(severity Severity) lipgloss.Style {
	switch severity {
	case SeverityError:
		return s.Error
	case SeverityWarning:
		return s.Warning
	case SeverityInfo:
		return s.Subtle
	default:
		return s.Normal
	}
}

// ForScore colours a grade: green for A, amber for B and C, red otherwise.
func (s *Styles) ForScore(score Score) lipgloss.Style {
	color := cli.ErrorColor
	switch score {
	case ScoreA:
		color = cli.SuccessColor
	case ScoreB, ScoreC:
		color = cli.WarningColor
	}
	return s.Score.Foreground(color)
}

// RenderBox draws content inside box. lipgloss has no border titles, so a
// non-empty title becomes the first line.
func (s *Styles) RenderBox(content, title string, box lipgloss.Style) string {
	if title == "" {
		return box.Render(content)
	}
	return box.Render(s.Info.Bold(true).Render(" "+title+" ") + "\n" + content)
}

// RenderScoreBar draws one filled cell per grade step from F up to score.
func (s *Styles) RenderScoreBar(score Score) string {
	const steps = 5
	filled := steps - score.Rank()
	return s.ForScore(score).Render(strings.Repeat("█", filled) + strings.Repeat("░", steps-filled))
}

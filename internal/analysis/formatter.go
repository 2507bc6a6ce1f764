package analysis

import (
	"fmt"
	"strings"

	"github.com/Veraticus/handling-analyzer/internal/flags"
	"github.com/Veraticus/handling-analyzer/internal/guideline"
)

// Summary bundles what a report shows about one analyzed document.
type Summary struct {
	Result      *Result            `json:"result"`
	Name        string             `json:"name"`
	Class       guideline.Class    `json:"class"`
	ActiveFlags []flags.Definition `json:"active_flags"`
	IsFragment  bool               `json:"is_fragment"`
}

// CLIFormatter renders analysis output for terminal display.
type CLIFormatter struct {
	styles *Styles
	// Verbose includes info issues.
	Verbose bool
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// WithWidth adapts box widths to the terminal.
func (f *CLIFormatter) WithWidth(width int) *CLIFormatter {
	return &CLIFormatter{styles: f.styles.WithWidth(width), Verbose: f.Verbose}
}

// FormatSummary renders the score, issues and active flags of an analysis.
func (f *CLIFormatter) FormatSummary(summary *Summary) string {
	if summary == nil || summary.Result == nil {
		return f.styles.Error.Render("No analysis available")
	}

	sections := []string{
		f.formatHeader(summary),
		f.formatScore(summary.Result),
		f.formatIssues(summary.Result),
	}

	if len(summary.ActiveFlags) > 0 {
		sections = append(sections, f.formatFlags(summary.ActiveFlags))
	}

	return strings.Join(sections, "\n\n")
}

// FormatIssue formats a single issue line.
func (f *CLIFormatter) FormatIssue(issue Issue) string {
	style := f.styles.ForSeverity(issue.Severity)
	return style.Render(fmt.Sprintf("%s %s", severityIcon(issue.Severity), issue.Message))
}

// FormatFixReport lists the fields a fix pass rewrote.
func (f *CLIFormatter) FormatFixReport(report *FixReport) string {
	if report == nil || report.NoOp() {
		return f.styles.Success.Render("✅ Nothing to fix: values already follow the guidelines")
	}

	lines := make([]string, 0, len(report.Changes))
	for _, c := range report.Changes {
		old := c.Old
		if old == "" {
			old = "(absent)"
		}
		lines = append(lines, fmt.Sprintf("%s %s → %s",
			f.styles.Info.Render(guideline.DisplayName(c.Field)),
			f.styles.Subtle.Render(old),
			c.New))
	}

	title := fmt.Sprintf("🔧 %d value(s) fixed (%s targets)", len(report.Changes), report.Bucket)
	return f.styles.RenderBox(strings.Join(lines, "\n"), title, f.styles.ChangeBox)
}

// FormatGuidelines renders one class record with each field's policy.
func (f *CLIFormatter) FormatGuidelines(class guideline.Class, record guideline.Record) string {
	title := f.styles.Title.Render(fmt.Sprintf("📐 Guidelines: %s", class))

	lines := make([]string, 0, len(guideline.Fields))
	for _, field := range guideline.Fields {
		expected, ok := record[field.Name]
		if !ok {
			continue
		}
		policy := ""
		if field.Policy != guideline.PolicyBoth {
			policy = f.styles.Subtle.Render(fmt.Sprintf(" (%s only)", field.Policy))
		}
		lines = append(lines, fmt.Sprintf("%-26s %-10s%s", field.Display, expected, policy))
	}

	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatHeader(summary *Summary) string {
	title := f.styles.Title.Render("📊 Handling Analysis: " + summary.Name)

	shape := "full document"
	if summary.IsFragment {
		shape = "fragment"
	}
	meta := f.styles.Subtitle.Render(fmt.Sprintf("Vehicle class: %s · Input: %s", summary.Class, shape))

	return title + "\n" + meta
}

func (f *CLIFormatter) formatScore(result *Result) string {
	grade := f.styles.ForScore(result.Score).Render("Score: " + string(result.Score))
	return grade + " " + f.styles.RenderScoreBar(result.Score)
}

func (f *CLIFormatter) formatIssues(result *Result) string {
	title := f.styles.Subtitle.Render(fmt.Sprintf("Issues: %d errors, %d warnings, %d checks passed",
		result.Count(SeverityError), result.Count(SeverityWarning), result.Count(SeverityInfo)))

	severities := []Severity{SeverityError, SeverityWarning}
	if f.Verbose {
		severities = append(severities, SeverityInfo)
	}

	var lines []string
	for _, severity := range severities {
		for _, issue := range result.BySeverity(severity) {
			lines = append(lines, f.FormatIssue(issue))
		}
	}

	if len(lines) == 0 {
		return title + "\n" + f.styles.Success.Render("✅ No problems found!")
	}
	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatFlags(active []flags.Definition) string {
	lines := make([]string, 0, len(active))
	for _, def := range active {
		marker := f.styles.Success.Render("✓")
		if !def.Recommended {
			marker = f.styles.Warning.Render("!")
		}
		lines = append(lines, fmt.Sprintf("%s %-28s %s", marker, def.Name, f.styles.Subtle.Render(flags.ToHex(def.Value))))
	}
	return f.styles.RenderBox(strings.Join(lines, "\n"), "🚩 Active handling flags", f.styles.FlagBox)
}

func severityIcon(severity Severity) string {
	switch severity {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠️"
	default:
		return "✓"
	}
}

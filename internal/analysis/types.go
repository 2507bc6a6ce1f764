// Package analysis grades handling documents against vehicle-class
// guidelines and applies best-effort corrections.
package analysis

import (
	"github.com/samber/lo"
)

// Score is the letter grade of an analysis.
type Score string

const (
	// ScoreA means every checked field matches its guideline.
	ScoreA Score = "A"
	// ScoreB means only unrecommended flags were found.
	ScoreB Score = "B"
	// ScoreC means at least one field violates its guideline.
	ScoreC Score = "C"
	// ScoreD means more than five errors were found.
	ScoreD Score = "D"
	// ScoreF means a structural inconsistency or more than ten errors.
	ScoreF Score = "F"
)

// Rank orders scores from best (0) to worst (4).
func (s Score) Rank() int {
	switch s {
	case ScoreA:
		return 0
	case ScoreB:
		return 1
	case ScoreC:
		return 2
	case ScoreD:
		return 3
	default:
		return 4
	}
}

// Worsen returns the worse of s and floor. A score never improves.
func (s Score) Worsen(floor Score) Score {
	if floor.Rank() > s.Rank() {
		return floor
	}
	return s
}

// Severity represents the severity level of an issue.
type Severity string

const (
	// SeverityError marks a guideline violation or structural problem.
	SeverityError Severity = "error"
	// SeverityWarning marks a discouraged but legal configuration.
	SeverityWarning Severity = "warning"
	// SeverityInfo confirms a checked field.
	SeverityInfo Severity = "info"
)

// Order returns the display priority of a severity (lower is more severe).
func (s Severity) Order() int {
	switch s {
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 3
	default:
		return 4
	}
}

// Issue is one finding of an analysis.
type Issue struct {
	Severity Severity `json:"severity"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}

// Result is the outcome of validating one document. It is built fresh on
// every call and never mutated afterwards.
type Result struct {
	Score  Score   `json:"score"`
	Issues []Issue `json:"issues"`
}

// BySeverity returns the issues with the given severity, in order.
func (r *Result) BySeverity(severity Severity) []Issue {
	return lo.Filter(r.Issues, func(issue Issue, _ int) bool {
		return issue.Severity == severity
	})
}

// Count returns the number of issues with the given severity.
func (r *Result) Count(severity Severity) int {
	return lo.CountBy(r.Issues, func(issue Issue) bool {
		return issue.Severity == severity
	})
}

// ForField returns the issues raised for a field.
func (r *Result) ForField(field string) []Issue {
	return lo.Filter(r.Issues, func(issue Issue, _ int) bool {
		return issue.Field == field
	})
}

// Package storage persists analysis history in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/handling-analyzer/internal/analysis"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidLimit  = errors.New("limit must be positive")
	ErrInvalidRecord = errors.New("invalid analysis record")
	ErrInvalidScore  = errors.New("invalid score")
	ErrInvalidIssue  = errors.New("invalid issue")
)

var (
	validScores = map[analysis.Score]bool{
		analysis.ScoreA: true, analysis.ScoreB: true, analysis.ScoreC: true, analysis.ScoreD: true, analysis.ScoreF: true,
	}
	validSeverities = map[analysis.Severity]bool{
		analysis.SeverityError: true, analysis.SeverityWarning: true, analysis.SeverityInfo: true,
	}
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord checks a record before it is written.
func validateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateString(record.ID, "id"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if err := validateString(record.Source, "source"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if err := validateString(string(record.Class), "class"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if !validScores[record.Score] {
		return fmt.Errorf("%w: %q", ErrInvalidScore, record.Score)
	}
	if record.CreatedAt.IsZero() {
		return fmt.Errorf("%w: created_at is required", ErrInvalidRecord)
	}
	for i, issue := range record.Issues {
		if !validSeverities[issue.Severity] {
			return fmt.Errorf("%w at index %d: severity %q", ErrInvalidIssue, i, issue.Severity)
		}
		if strings.TrimSpace(issue.Message) == "" {
			return fmt.Errorf("%w at index %d: empty message", ErrInvalidIssue, i)
		}
	}
	return nil
}

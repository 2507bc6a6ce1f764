package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/handling-analyzer/internal/analysis"
	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/guideline"
)

// Record is one stored analysis.
type Record struct {
	CreatedAt    time.Time        `json:"created_at"`
	ID           string           `json:"id"`
	Source       string           `json:"source"`
	HandlingName string           `json:"handling_name"`
	Class        guideline.Class  `json:"class"`
	Score        analysis.Score   `json:"score"`
	Issues       []analysis.Issue `json:"issues,omitempty"`
	IsFragment   bool             `json:"is_fragment"`
}

// SaveAnalysis stores a record and its issues in one transaction.
func (s *SQLiteStorage) SaveAnalysis(ctx context.Context, record *Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO analyses (id, source, handling_name, vehicle_class, score, is_fragment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Source, record.HandlingName, string(record.Class),
		string(record.Score), record.IsFragment, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", record.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO analysis_issues (analysis_id, position, severity, field, message)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare issue insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, issue := range record.Issues {
		if _, err := stmt.ExecContext(ctx, record.ID, i, string(issue.Severity), issue.Field, issue.Message); err != nil {
			return fmt.Errorf("failed to save issue %d of analysis %s: %w", i, record.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis %s: %w", record.ID, err)
	}
	return nil
}

// GetAnalysis loads a record with its issues.
func (s *SQLiteStorage) GetAnalysis(ctx context.Context, id string) (*Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, handling_name, vehicle_class, score, is_fragment, created_at
		FROM analyses WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT severity, field, message FROM analysis_issues
		WHERE analysis_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues of analysis %s: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var issue analysis.Issue
		var severity string
		if err := rows.Scan(&severity, &issue.Field, &issue.Message); err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issue.Severity = analysis.Severity(severity)
		record.Issues = append(record.Issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read issues of analysis %s: %w", id, err)
	}

	return record, nil
}

// ListAnalyses returns the newest records first, without their issues.
func (s *SQLiteStorage) ListAnalyses(ctx context.Context, limit int) ([]Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, handling_name, vehicle_class, score, is_fragment, created_at
		FROM analyses ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return records, nil
}

// DeleteAnalysis removes a record and its issues.
func (s *SQLiteStorage) DeleteAnalysis(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("analysis %s: %w", id, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var record Record
	var class, score string
	if err := row.Scan(&record.ID, &record.Source, &record.HandlingName, &class, &score,
		&record.IsFragment, &record.CreatedAt); err != nil {
		return nil, err
	}
	record.Class = guideline.Class(class)
	record.Score = analysis.Score(score)
	return &record, nil
}

// Package engine runs the normalize, parse, validate, fix and serialize
// pipeline over handling documents and records analyses in history.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/handling-analyzer/internal/analysis"
	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/flags"
	"github.com/Veraticus/handling-analyzer/internal/guideline"
	"github.com/Veraticus/handling-analyzer/internal/handling"
	"github.com/Veraticus/handling-analyzer/internal/storage"
)

// HistoryStore persists finished analyses.
type HistoryStore interface {
	SaveAnalysis(ctx context.Context, record *storage.Record) error
}

// Config holds configuration options for the engine.
type Config struct {
	// Workers bounds concurrent file analyses.
	Workers int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Workers: 4}
}

// Options selects how one document is analyzed.
type Options struct {
	Class guideline.Class
	// HandlingName picks an item in multi-item documents.
	HandlingName string
	// Save records the analysis in history when a store is configured.
	Save bool
}

// Report is a finished analysis of one source.
type Report struct {
	analysis.Summary
	CreatedAt time.Time          `json:"created_at"`
	Document  *handling.Document `json:"-"`
	ID        string             `json:"id"`
	Source    string             `json:"source"`
	Saved     bool               `json:"saved"`
}

// Engine orchestrates document analysis.
type Engine struct {
	validator *analysis.Validator
	history   HistoryStore
	now       func() time.Time
	newID     func() string
	workers   int
}

// New creates an engine. history may be nil to disable saving.
func New(validator *analysis.Validator, history HistoryStore, config Config) *Engine {
	if validator == nil {
		validator = analysis.NewValidator(nil)
	}
	workers := config.Workers
	if workers < 1 {
		workers = DefaultConfig().Workers
	}
	return &Engine{
		validator: validator,
		history:   history,
		now:       time.Now,
		newID:     uuid.NewString,
		workers:   workers,
	}
}

// Parse normalizes and parses text.
func (e *Engine) Parse(text, handlingName string) (*handling.Document, error) {
	doc, err := handling.ParseWithOptions(text, handling.ParseOptions{HandlingName: handlingName})
	if err != nil {
		return nil, common.NewUserError("Could not read the handling data", err)
	}
	return doc, nil
}

// Analyze parses text from source and validates it.
func (e *Engine) Analyze(ctx context.Context, source, text string, opts Options) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := e.Parse(text, opts.HandlingName)
	if err != nil {
		return nil, err
	}
	return e.AnalyzeDocument(ctx, source, doc, opts)
}

// AnalyzeDocument validates an already parsed document.
func (e *Engine) AnalyzeDocument(ctx context.Context, source string, doc *handling.Document, opts Options) (*Report, error) {
	result, err := e.validator.Analyze(doc, opts.Class)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Summary: analysis.Summary{
			Result:      result,
			Name:        doc.Name(),
			Class:       opts.Class,
			ActiveFlags: flags.HandlingFlags.Active(doc.Flags(flags.HandlingFlags)),
			IsFragment:  doc.IsFragment,
		},
		CreatedAt: e.now(),
		Document:  doc,
		ID:        e.newID(),
		Source:    source,
	}

	slog.Debug("analysis complete",
		"id", report.ID,
		"source", source,
		"score", result.Score)

	if opts.Save && e.history != nil {
		if err := e.history.SaveAnalysis(ctx, ToRecord(report)); err != nil {
			return nil, fmt.Errorf("failed to save analysis of %s: %w", source, err)
		}
		report.Saved = true
	}

	return report, nil
}

// FixOutcome is the result of a fix run.
type FixOutcome struct {
	Document *handling.Document
	Report   *analysis.FixReport
	Output   string
}

// Fix parses text, applies the fixer and serializes the result in the input's
// shape.
func (e *Engine) Fix(text, handlingName string, opts analysis.FixOptions) (*FixOutcome, error) {
	doc, err := e.Parse(text, handlingName)
	if err != nil {
		return nil, err
	}

	report := analysis.NewFixer(opts).Fix(doc)
	return &FixOutcome{
		Document: doc,
		Report:   report,
		Output:   handling.Serialize(doc),
	}, nil
}

// Format re-renders text in canonical field order.
func (e *Engine) Format(text, handlingName string) (string, error) {
	doc, err := e.Parse(text, handlingName)
	if err != nil {
		return "", err
	}
	return handling.Serialize(doc), nil
}

// ToRecord converts a report into its history form.
func ToRecord(report *Report) *storage.Record {
	return &storage.Record{
		CreatedAt:    report.CreatedAt,
		ID:           report.ID,
		Source:       report.Source,
		HandlingName: report.Name,
		Class:        report.Class,
		Score:        report.Result.Score,
		Issues:       report.Result.Issues,
		IsFragment:   report.IsFragment,
	}
}

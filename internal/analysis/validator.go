package analysis

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/Veraticus/handling-analyzer/internal/flags"
	"github.com/Veraticus/handling-analyzer/internal/guideline"
	"github.com/Veraticus/handling-analyzer/internal/handling"
)

// Error-count thresholds of the final clamp.
const (
	failErrorCount     = 10
	poorErrorCount     = 5
	degradedErrorCount = 2
)

// Validator grades documents against a guideline table. It holds no state
// between calls and is safe for concurrent use.
type Validator struct {
	table   *guideline.Table
	catalog *flags.Catalog
}

// NewValidator creates a validator over table. A nil table selects the
// built-in guidelines.
func NewValidator(table *guideline.Table) *Validator {
	if table == nil {
		table = guideline.Default()
	}
	return &Validator{
		table:   table,
		catalog: flags.HandlingFlags,
	}
}

// Table returns the guideline table in use.
func (v *Validator) Table() *guideline.Table {
	return v.table
}

// Analyze validates doc for a vehicle class. Field values never cause an
// error: unparsable text reads as zero. Only an unknown class fails.
func (v *Validator) Analyze(doc *handling.Document, class guideline.Class) (*Result, error) {
	record, err := v.table.For(class)
	if err != nil {
		return nil, err
	}

	result := &Result{Score: ScoreA}

	for _, field := range guideline.Fields {
		text, ok := numericText(doc, field.Name)
		if !ok {
			continue
		}
		expected, ok := record[field.Name]
		if !ok {
			continue
		}

		actual := handling.Coerce(text)
		if expected.Violates(actual, field.Policy) {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityError,
				Field:    field.Name,
				Message:  violationMessage(field.Display, actual, expected, class),
			})
			result.Score = result.Score.Worsen(ScoreC)
			continue
		}
		result.Issues = append(result.Issues, Issue{
			Severity: SeverityInfo,
			Field:    field.Name,
			Message:  passMessage(field.Display, actual, expected),
		})
	}

	structural := v.checkBounds(doc, result)
	v.checkFlags(doc, result)

	errorCount := result.Count(SeverityError)
	switch {
	case errorCount > failErrorCount:
		result.Score = result.Score.Worsen(ScoreF)
	case errorCount > poorErrorCount:
		result.Score = result.Score.Worsen(ScoreD)
	case errorCount > degradedErrorCount:
		result.Score = result.Score.Worsen(ScoreC)
	}

	if structural {
		result.Score = ScoreF
	}

	slog.Debug("analyzed handling document",
		"name", doc.Name(),
		"class", class,
		"score", result.Score,
		"errors", errorCount)

	return result, nil
}

// checkBounds reports lower limits above their paired upper limit.
func (v *Validator) checkBounds(doc *handling.Document, result *Result) bool {
	inconsistent := false
	for _, bound := range guideline.Bounds {
		lowerText, lowerOK := numericText(doc, bound.Lower)
		upperText, upperOK := numericText(doc, bound.Upper)
		if !lowerOK || !upperOK {
			continue
		}
		lower, upper := handling.Coerce(lowerText), handling.Coerce(upperText)
		if lower > upper {
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityError,
				Field:    bound.Lower,
				Message: fmt.Sprintf("%s (%s) must not exceed %s (%s)",
					bound.Lower, handling.FormatNumber(lower), bound.Upper, handling.FormatNumber(upper)),
			})
			inconsistent = true
		}
	}
	return inconsistent
}

// checkFlags warns about active flags not marked as recommended.
func (v *Validator) checkFlags(doc *handling.Document, result *Result) {
	bad := v.catalog.Unrecommended(doc.Flags(v.catalog))
	if len(bad) == 0 {
		return
	}

	names := lo.Map(bad, func(def flags.Definition, _ int) string { return def.Name })
	noun := "flags"
	if len(bad) == 1 {
		noun = "flag"
	}
	result.Issues = append(result.Issues, Issue{
		Severity: SeverityWarning,
		Field:    handling.FieldHandlingFlags,
		Message:  fmt.Sprintf("%d unrecommended %s active: %s", len(bad), noun, strings.Join(names, ", ")),
	})
	result.Score = result.Score.Worsen(ScoreB)
}

// numericText returns the scalar text of a field. Absent, empty and vector
// fields are not checked.
func numericText(doc *handling.Document, name string) (string, bool) {
	value, ok := doc.Get(name)
	if !ok || value.IsVector() {
		return "", false
	}
	text := strings.TrimSpace(value.Text)
	return text, text != ""
}

func violationMessage(display string, actual float64, expected guideline.Expectation, class guideline.Class) string {
	if expected.IsRange {
		return fmt.Sprintf("%s is %s, should be between %s for %s",
			display, handling.FormatNumber(actual), expected, class)
	}
	return fmt.Sprintf("%s is %s, should be %s for %s",
		display, handling.FormatNumber(actual), expected, class)
}

func passMessage(display string, actual float64, expected guideline.Expectation) string {
	below, above := expected.Deviation(actual)
	switch {
	case below || above:
		return fmt.Sprintf("%s is acceptable (%s, guideline %s)", display, handling.FormatNumber(actual), expected)
	case expected.IsRange:
		return fmt.Sprintf("%s is within range (%s)", display, handling.FormatNumber(actual))
	default:
		return fmt.Sprintf("%s is correct (%s)", display, handling.FormatNumber(actual))
	}
}

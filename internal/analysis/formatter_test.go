package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/handling-analyzer/internal/flags"
	"github.com/Veraticus/handling-analyzer/internal/guideline"
)

func TestFormatSummary(t *testing.T) {
	result := &Result{
		Score: ScoreC,
		Issues: []Issue{
			{Severity: SeverityError, Field: "fBrakeForce", Message: "Brake Force is 2.2, should be 1.8 for import"},
			{Severity: SeverityWarning, Field: "strHandlingFlags", Message: "1 unrecommended flag active: no_reverse"},
			{Severity: SeverityInfo, Field: "fSteeringLock", Message: "Steering Lock is correct (35)"},
		},
	}
	summary := &Summary{
		Result:      result,
		Name:        "SULTAN",
		Class:       guideline.ClassImport,
		ActiveFlags: flags.HandlingFlags.Active(flags.NewSet(512, 8192)),
	}

	formatter := NewCLIFormatter()
	out := formatter.FormatSummary(summary)

	assert.Contains(t, out, "SULTAN")
	assert.Contains(t, out, "Score: C")
	assert.Contains(t, out, "Brake Force is 2.2")
	assert.Contains(t, out, "no_reverse")
	assert.Contains(t, out, "alt_ext_wheel_bounds_beh")
	assert.Contains(t, out, "full document")
	assert.NotContains(t, out, "Steering Lock is correct", "info issues are hidden unless verbose")

	formatter.Verbose = true
	assert.Contains(t, formatter.FormatSummary(summary), "Steering Lock is correct")
}

func TestFormatSummaryEmpty(t *testing.T) {
	formatter := NewCLIFormatter()
	assert.Contains(t, formatter.FormatSummary(nil), "No analysis available")

	out := formatter.FormatSummary(&Summary{Result: &Result{Score: ScoreA}, Name: "VEHICLE", IsFragment: true})
	assert.Contains(t, out, "No problems found")
	assert.Contains(t, out, "fragment")
}

func TestFormatFixReport(t *testing.T) {
	formatter := NewCLIFormatter()

	assert.Contains(t, formatter.FormatFixReport(&FixReport{Bucket: BucketStandard}), "Nothing to fix")

	out := formatter.FormatFixReport(&FixReport{
		Bucket: BucketHighPerformance,
		Changes: []Change{
			{Field: "fBrakeForce", Old: "3.5", New: "2.5"},
			{Field: "fMass", Old: "", New: "800.0"},
		},
	})
	assert.Contains(t, out, "2 value(s) fixed (high-performance targets)")
	assert.Contains(t, out, "Brake Force")
	assert.Contains(t, out, "(absent)")
}

func TestFormatGuidelines(t *testing.T) {
	record, err := guideline.Default().For(guideline.ClassImport)
	require.NoError(t, err)

	out := NewCLIFormatter().FormatGuidelines(guideline.ClassImport, record)
	assert.Contains(t, out, "Guidelines: import")
	assert.Contains(t, out, "Brake Force")
	assert.Contains(t, out, "(over only)")
	assert.Contains(t, out, "(under only)")
	assert.Contains(t, out, "65-80")
}

func TestStylesForScore(t *testing.T) {
	styles := NewStyles()
	for _, score := range []Score{ScoreA, ScoreB, ScoreC, ScoreD, ScoreF} {
		assert.Contains(t, styles.ForScore(score).Render(string(score)), string(score))
	}
	narrow := styles.WithWidth(60)
	assert.NotNil(t, narrow)
	assert.Contains(t, narrow.RenderBox("body", "", narrow.FlagBox), "body")
	assert.Contains(t, styles.RenderBox("body", "Flags", styles.ChangeBox), "Flags")
}

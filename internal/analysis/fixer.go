package analysis

import (
	"log/slog"
	"math"

	"github.com/Veraticus/handling-analyzer/internal/guideline"
	"github.com/Veraticus/handling-analyzer/internal/handling"
)

// Bucket is the target profile chosen by the fixer.
type Bucket string

const (
	// BucketStandard uses the import/company targets.
	BucketStandard Bucket = "standard"
	// BucketHighPerformance uses the patent targets.
	BucketHighPerformance Bucket = "high-performance"
)

// HighPerformanceDriveForce is the fInitialDriveForce above which a document
// is fixed towards the high-performance targets.
const HighPerformanceDriveForce = 0.31

type target struct {
	field   string
	literal string
}

// Targets are written as literals so fixed documents keep a familiar
// number format.
var bucketTargets = map[Bucket][]target{
	BucketStandard: {
		{field: "fInitialDriveForce", literal: "0.26"},
		{field: "fInitialDriveMaxFlatVel", literal: "220.0"},
		{field: "fBrakeForce", literal: "1.8"},
		{field: "fCollisionDamageMult", literal: "0.4"},
		{field: "fWeaponDamageMult", literal: "0.0033"},
		{field: "fDeformationDamageMult", literal: "0.3"},
		{field: "fEngineDamageMult", literal: "0.4"},
	},
	BucketHighPerformance: {
		{field: "fInitialDriveForce", literal: "0.37"},
		{field: "fInitialDriveMaxFlatVel", literal: "240.0"},
		{field: "fBrakeForce", literal: "2.5"},
		{field: "fCollisionDamageMult", literal: "0.3"},
		{field: "fWeaponDamageMult", literal: "0.0033"},
		{field: "fDeformationDamageMult", literal: "0.2"},
		{field: "fEngineDamageMult", literal: "0.3"},
	},
}

// Hard limits. Mass outside its band is replaced by a fallback rather than
// the nearest bound; brake force is clamped to the bound itself.
const (
	minMass         = 500.0
	maxMass         = 10000.0
	lightMassFix    = "800.0"
	heavyMassFix    = "4000.0"
	minBrakeForce   = 0.5
	maxBrakeForce   = 3.0
	minBrakeLiteral = "0.5"
	maxBrakeLiteral = "3.0"
)

// FixOptions tunes the fixer.
type FixOptions struct {
	// HonorPolicy rewrites a field only in the direction the validator
	// would flag. Off, any deviation beyond the tolerance is rewritten.
	HonorPolicy bool
}

// Change records one rewritten field.
type Change struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// FixReport describes what a fix pass did.
type FixReport struct {
	Bucket  Bucket   `json:"bucket"`
	Changes []Change `json:"changes"`
}

// NoOp reports whether the pass left the document untouched.
func (r *FixReport) NoOp() bool {
	return len(r.Changes) == 0
}

// Fixer rewrites out-of-guideline values in place.
type Fixer struct {
	opts FixOptions
}

// NewFixer creates a fixer.
func NewFixer(opts FixOptions) *Fixer {
	return &Fixer{opts: opts}
}

// BucketFor classifies doc by its drive force.
func BucketFor(doc *handling.Document) Bucket {
	if doc.Number("fInitialDriveForce") > HighPerformanceDriveForce {
		return BucketHighPerformance
	}
	return BucketStandard
}

// Fix applies the bucket targets and hard limits to doc. Absent fields read
// as zero, so a missing target field is added.
func (f *Fixer) Fix(doc *handling.Document) *FixReport {
	report := &FixReport{Bucket: BucketFor(doc)}

	for _, t := range bucketTargets[report.Bucket] {
		current := doc.Number(t.field)
		want := handling.Coerce(t.literal)
		if !f.needsFix(t.field, current, want) {
			continue
		}
		report.set(doc, t.field, t.literal)
	}

	switch mass := doc.Number("fMass"); {
	case mass < minMass:
		report.set(doc, "fMass", lightMassFix)
	case mass > maxMass:
		report.set(doc, "fMass", heavyMassFix)
	}

	switch brake := doc.Number("fBrakeForce"); {
	case brake < minBrakeForce:
		report.set(doc, "fBrakeForce", minBrakeLiteral)
	case brake > maxBrakeForce:
		report.set(doc, "fBrakeForce", maxBrakeLiteral)
	}

	if report.NoOp() {
		slog.Debug("fix pass made no changes", "name", doc.Name(), "bucket", report.Bucket)
	} else {
		slog.Info("fixed handling values",
			"name", doc.Name(),
			"bucket", report.Bucket,
			"changes", len(report.Changes))
	}
	return report
}

func (f *Fixer) needsFix(field string, current, want float64) bool {
	if f.opts.HonorPolicy {
		return guideline.Exact(want).Violates(current, guideline.PolicyFor(field))
	}
	return math.Abs(current-want) > guideline.Epsilon
}

func (r *FixReport) set(doc *handling.Document, field, literal string) {
	r.Changes = append(r.Changes, Change{Field: field, Old: doc.Text(field), New: literal})
	doc.SetText(field, literal)
}

// Package handling parses, edits and re-serializes CHandlingData documents
// from handling.meta files, either whole or as bare field fragments.
package handling

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/handling-analyzer/internal/common"
)

// Kind distinguishes scalar fields from x/y/z vector fields.
type Kind int

const (
	// KindScalar is a single textual value.
	KindScalar Kind = iota
	// KindVector is a three-component vector.
	KindVector
)

// Vector3 holds vector components as their original text.
type Vector3 struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
}

// Value is a field value. Text is kept verbatim so untouched fields are
// written back exactly as they were read.
type Value struct {
	Vec  Vector3 `json:"vec"`
	Text string  `json:"text,omitempty"`
	Kind Kind    `json:"kind"`
}

// Scalar builds a scalar value.
func Scalar(text string) Value {
	return Value{Kind: KindScalar, Text: text}
}

// Vector builds a vector value.
func Vector(x, y, z string) Value {
	return Value{Kind: KindVector, Vec: Vector3{X: x, Y: y, Z: z}}
}

// IsVector reports whether v is a vector.
func (v Value) IsVector() bool {
	return v.Kind == KindVector
}

func (v Value) String() string {
	if v.IsVector() {
		return fmt.Sprintf("(%s, %s, %s)", v.Vec.X, v.Vec.Y, v.Vec.Z)
	}
	return v.Text
}

// Coerce converts field text to a number the way a lenient float parser
// would: the longest leading decimal number is used and anything else becomes
// zero. Hex floats and spelled-out infinities are not numbers here, and
// out-of-range values read as zero. It never fails.
func Coerce(text string) float64 {
	prefix, ok := common.LeadingNumber(strings.TrimSpace(text))
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatNumber renders f in its shortest round-tripping decimal form.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

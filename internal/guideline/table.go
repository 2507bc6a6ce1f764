// Package guideline holds the per-vehicle-class numeric expectations used to
// grade handling documents, and the comparison policy of each checked field.
package guideline

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/handling-analyzer/internal/common"
)

//go:embed guidelines.yaml
var defaultTable []byte

// Class is a vehicle class with its own guideline record.
type Class string

// Built-in vehicle classes.
const (
	ClassImport    Class = "import"
	ClassPatent    Class = "patent"
	ClassCompany   Class = "company"
	ClassNonImport Class = "non-import"
)

// Expectation is either an exact target or an inclusive range.
type Expectation struct {
	Target  float64
	Min     float64
	Max     float64
	IsRange bool
}

// Exact builds an exact-target expectation.
func Exact(target float64) Expectation {
	return Expectation{Target: target}
}

// Range builds an inclusive range expectation.
func Range(lo, hi float64) Expectation {
	return Expectation{Min: lo, Max: hi, IsRange: true}
}

func (e Expectation) String() string {
	if e.IsRange {
		return formatFloat(e.Min) + "-" + formatFloat(e.Max)
	}
	return formatFloat(e.Target)
}

// Deviation reports whether actual lies below or above the expectation.
// Exact targets tolerate Epsilon; range bounds are inclusive and exact.
func (e Expectation) Deviation(actual float64) (below, above bool) {
	if e.IsRange {
		return actual < e.Min, actual > e.Max
	}
	diff := actual - e.Target
	return diff < -Epsilon, diff > Epsilon
}

// Violates applies policy to the deviation of actual.
func (e Expectation) Violates(actual float64, policy Policy) bool {
	below, above := e.Deviation(actual)
	switch policy {
	case PolicyOver:
		return above
	case PolicyUnder:
		return below
	default:
		return below || above
	}
}

// UnmarshalYAML accepts a number or a {min, max} mapping.
func (e *Expectation) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var target float64
		if err := node.Decode(&target); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*e = Exact(target)
		return nil
	case yaml.MappingNode:
		var r struct {
			Min *float64 `yaml:"min"`
			Max *float64 `yaml:"max"`
		}
		if err := node.Decode(&r); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if r.Min == nil || r.Max == nil {
			return fmt.Errorf("line %d: range needs both min and max: %w", node.Line, common.ErrInvalidConfig)
		}
		if *r.Min > *r.Max {
			return fmt.Errorf("line %d: range min %v exceeds max %v: %w", node.Line, *r.Min, *r.Max, common.ErrInvalidConfig)
		}
		*e = Range(*r.Min, *r.Max)
		return nil
	default:
		return fmt.Errorf("line %d: expectation must be a number or {min, max}: %w", node.Line, common.ErrInvalidConfig)
	}
}

// Record is one class's expectations keyed by field name.
type Record map[string]Expectation

// Table maps vehicle classes to their records.
type Table struct {
	classes map[Class]Record
}

type tableFile struct {
	Classes map[string]Record `yaml:"classes"`
}

// Load reads a guideline table from YAML.
func Load(r io.Reader) (*Table, error) {
	var file tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode guideline table: %w", err)
	}
	if len(file.Classes) == 0 {
		return nil, fmt.Errorf("guideline table has no classes: %w", common.ErrInvalidConfig)
	}

	t := &Table{classes: make(map[Class]Record, len(file.Classes))}
	for name, record := range file.Classes {
		for field := range record {
			if _, known := fieldIndex[field]; !known {
				slog.Warn("guideline for unchecked field", "class", name, "field", field)
			}
		}
		t.classes[Class(name)] = record
	}
	return t, nil
}

// LoadFile reads a guideline table from a YAML file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied config path
	if err != nil {
		return nil, fmt.Errorf("failed to open guideline table: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Default returns the built-in table.
func Default() *Table {
	t, err := Load(bytes.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("embedded guideline table is invalid: %v", err))
	}
	return t
}

// For returns the record for class.
func (t *Table) For(class Class) (Record, error) {
	record, ok := t.classes[class]
	if !ok {
		return nil, fmt.Errorf("%q: %w", class, common.ErrUnknownVehicleClass)
	}
	return record, nil
}

// Classes returns the table's classes, built-in ones first.
func (t *Table) Classes() []Class {
	builtin := []Class{ClassImport, ClassPatent, ClassCompany, ClassNonImport}
	out := make([]Class, 0, len(t.classes))
	seen := make(map[Class]bool, len(t.classes))
	for _, c := range builtin {
		if _, ok := t.classes[c]; ok {
			out = append(out, c)
			seen[c] = true
		}
	}
	var extra []Class
	for c := range t.classes {
		if !seen[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

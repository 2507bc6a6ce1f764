// Package documents builds handling documents for tests. A builder starts
// empty, can be filled with values that satisfy a vehicle class, and then
// overridden field by field.
//
// Example usage:
//
//	text := documents.NewBuilder(t).
//		Compliant(guideline.ClassImport).
//		WithField("fBrakeForce", "9.0").
//		String()
package documents

import (
	"testing"

	"github.com/Veraticus/handling-analyzer/internal/flags"
	"github.com/Veraticus/handling-analyzer/internal/guideline"
	"github.com/Veraticus/handling-analyzer/internal/handling"
)

// Builder provides a fluent interface for constructing test documents.
type Builder interface {
	// Compliant sets every checked field to a value accepted for class.
	Compliant(class guideline.Class) Builder

	// WithField sets one field's text, replacing any earlier value.
	WithField(name, text string) Builder

	// WithFlags sets strHandlingFlags to the sum of values.
	WithFlags(values ...uint64) Builder

	// WithName sets handlingName.
	WithName(name string) Builder

	// WithFixture applies a predefined set of fields.
	WithFixture(fixture Fixture) Builder

	// Full renders a complete handling.meta instead of a fragment.
	Full() Builder

	// Document returns the built document.
	Document() *handling.Document

	// String returns the built document serialized.
	String() string
}

type field struct {
	name string
	text string
}

type builder struct {
	t      *testing.T
	flags  flags.Set
	name   string
	fields []field
	full   bool
}

// NewBuilder creates an empty fragment builder.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &builder{t: t}
}

func (b *builder) Compliant(class guideline.Class) Builder {
	b.t.Helper()
	record, err := guideline.Default().For(class)
	if err != nil {
		b.t.Fatalf("no guidelines for class %q: %v", class, err)
	}

	for _, f := range guideline.Fields {
		exp, ok := record[f.Name]
		if !ok {
			continue
		}
		v := exp.Target
		if exp.IsRange {
			v = (exp.Min + exp.Max) / 2
		}
		b.set(f.Name, handling.FormatNumber(v))
	}
	return b
}

func (b *builder) WithField(name, text string) Builder {
	b.set(name, text)
	return b
}

func (b *builder) WithFlags(values ...uint64) Builder {
	b.flags = flags.NewSet(values...)
	return b
}

func (b *builder) WithName(name string) Builder {
	b.name = name
	return b
}

func (b *builder) WithFixture(fixture Fixture) Builder {
	for _, f := range fixture.Fields() {
		b.set(f[0], f[1])
	}
	if values := fixture.Flags(); values != nil {
		b.flags = flags.NewSet(values...)
	}
	return b
}

func (b *builder) Full() Builder {
	b.full = true
	return b
}

func (b *builder) Document() *handling.Document {
	doc := handling.NewDocument()
	doc.IsFragment = !b.full
	if b.name != "" {
		doc.SetName(b.name)
	}
	for _, f := range b.fields {
		doc.SetText(f.name, f.text)
	}
	if b.flags != nil {
		doc.SetFlags(b.flags)
	}
	return doc
}

func (b *builder) String() string {
	return handling.Serialize(b.Document())
}

func (b *builder) set(name, text string) {
	for i := range b.fields {
		if b.fields[i].name == name {
			b.fields[i].text = text
			return
		}
	}
	b.fields = append(b.fields, field{name: name, text: text})
}

package handling

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/handling-analyzer/internal/flags"
)

// Well-known field names.
const (
	FieldHandlingName  = "handlingName"
	FieldHandlingFlags = "strHandlingFlags"
	FieldSubHandling   = "SubHandlingData"
)

// Document is the decoded form of one CHandlingData item.
type Document struct {
	fields map[string]Value
	// RawFormats maps each leaf tag seen in the source text to the first
	// literal element for it. Serialize falls back to it for fields outside
	// the canonical order.
	RawFormats FormatRegistry
	order      []string
	// IsFragment is true when the source had no document wrapper. It is
	// sticky: Serialize reproduces the same shape.
	IsFragment bool
	// HasSubHandling records an opaque SubHandlingData list in the source.
	HasSubHandling bool
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		fields:     make(map[string]Value),
		RawFormats: make(FormatRegistry),
	}
}

// Get returns the value of a field.
func (d *Document) Get(name string) (Value, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// Has reports whether the field is present.
func (d *Document) Has(name string) bool {
	_, ok := d.fields[name]
	return ok
}

// Text returns a scalar field's text, or "" when absent or a vector.
func (d *Document) Text(name string) string {
	v, ok := d.fields[name]
	if !ok || v.IsVector() {
		return ""
	}
	return v.Text
}

// Number coerces a field to a number; absent fields read as zero.
func (d *Document) Number(name string) float64 {
	return Coerce(d.Text(name))
}

// Set stores a field, appending it to the field order when new.
func (d *Document) Set(name string, v Value) {
	if _, ok := d.fields[name]; !ok {
		d.order = append(d.order, name)
	}
	d.fields[name] = v
}

// SetText stores a scalar field.
func (d *Document) SetText(name, text string) {
	d.Set(name, Scalar(text))
}

// Delete removes a field.
func (d *Document) Delete(name string) {
	if _, ok := d.fields[name]; !ok {
		return
	}
	delete(d.fields, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Fields returns field names in the order they were first set.
func (d *Document) Fields() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of fields.
func (d *Document) Len() int {
	return len(d.fields)
}

// Snapshot returns a copy of the field map.
func (d *Document) Snapshot() map[string]Value {
	out := make(map[string]Value, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := NewDocument()
	c.IsFragment = d.IsFragment
	c.HasSubHandling = d.HasSubHandling
	for _, name := range d.order {
		c.Set(name, d.fields[name])
	}
	for k, v := range d.RawFormats {
		c.RawFormats[k] = v
	}
	return c
}

// Name returns the identity field, defaulting to DefaultName.
func (d *Document) Name() string {
	if name := strings.TrimSpace(d.Text(FieldHandlingName)); name != "" {
		return name
	}
	return DefaultName
}

// SetName sets the identity field.
func (d *Document) SetName(name string) {
	d.SetText(FieldHandlingName, name)
}

// Mask returns the strHandlingFlags mask. Missing or malformed text yields
// zero so a bad mask never blocks the rest of the analysis.
func (d *Document) Mask() uint64 {
	text := d.Text(FieldHandlingFlags)
	if text == "" {
		return 0
	}
	mask, err := flags.ParseHex(text)
	if err != nil {
		slog.Debug("ignoring malformed handling flags", "value", text, "error", err)
		return 0
	}
	return mask
}

// Flags decodes the mask against catalog.
func (d *Document) Flags(catalog *flags.Catalog) flags.Set {
	return flags.Decode(d.Mask(), catalog)
}

// SetFlags re-derives strHandlingFlags from an active set.
func (d *Document) SetFlags(s flags.Set) {
	d.SetText(FieldHandlingFlags, flags.ToHex(flags.Encode(s)))
}

package handling

import (
	"strings"
)

const fieldIndent = "\t\t\t"

var attrEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

var textEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// Serialize writes doc back to handling.meta text. Fragments come back as a
// bare field block; full documents get the declaration, the wrapper, the
// identity field and, when the source had one, a placeholder SubHandlingData
// list. The original list contents are not retained.
func Serialize(doc *Document) string {
	if doc.IsFragment {
		return fieldBlock(doc)
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n\n")
	b.WriteString("<" + RootTag + ">\n")
	b.WriteString("  <HandlingData>\n")
	b.WriteString(`    <Item type="` + ItemType + `">` + "\n")
	b.WriteString(fieldIndent + "<" + FieldHandlingName + ">" + textEscaper.Replace(doc.Name()) + "</" + FieldHandlingName + ">\n")
	b.WriteString(fieldBlock(doc))
	if doc.HasSubHandling {
		b.WriteString(fieldIndent + "<" + FieldSubHandling + ">\n")
		for i := 0; i < 3; i++ {
			b.WriteString(fieldIndent + "\t" + `<Item type="NULL" />` + "\n")
		}
		b.WriteString(fieldIndent + "</" + FieldSubHandling + ">\n")
	}
	b.WriteString("    </Item>\n")
	b.WriteString("  </HandlingData>\n")
	b.WriteString("</" + RootTag + ">")

	return b.String()
}

// fieldBlock renders canonical fields first, then pass-through fields in the
// order they were read.
func fieldBlock(doc *Document) string {
	var b strings.Builder

	for _, name := range CanonicalOrder {
		if v, ok := doc.Get(name); ok {
			b.WriteString(encodeField(name, v))
		}
	}

	for _, name := range doc.Fields() {
		if name == FieldHandlingName || IsCanonical(name) {
			continue
		}
		v, _ := doc.Get(name)
		if lit, ok := doc.RawFormats.LiteralFor(name, v); ok {
			b.WriteString(fieldIndent + lit + "\n")
			continue
		}
		b.WriteString(encodeField(name, v))
	}

	return b.String()
}

func encodeField(name string, v Value) string {
	switch EncodingOf(name, v) {
	case EncodingVector:
		return fieldIndent + "<" + name +
			` x="` + attrEscaper.Replace(v.Vec.X) +
			`" y="` + attrEscaper.Replace(v.Vec.Y) +
			`" z="` + attrEscaper.Replace(v.Vec.Z) + `" />` + "\n"
	case EncodingText:
		return fieldIndent + "<" + name + ">" + textEscaper.Replace(v.Text) + "</" + name + ">\n"
	default:
		return fieldIndent + "<" + name + ` value="` + attrEscaper.Replace(v.Text) + `" />` + "\n"
	}
}

package handling

import "strings"

// Document shape constants.
const (
	// DefaultName is the identity given to fragments, which carry none.
	DefaultName = "VEHICLE"
	// RootTag is the document root element.
	RootTag = "CHandlingDataMgr"
	// ItemType is the type attribute of a handling item.
	ItemType = "CHandlingData"

	xmlDeclMarker = "<?xml"
)

// Normalized is raw text made parseable by a single code path.
type Normalized struct {
	Text       string
	IsFragment bool
}

// IsFragment reports whether raw lacks both an XML declaration and the root
// container, meaning it is a bare run of field elements.
func IsFragment(raw string) bool {
	return !strings.Contains(raw, xmlDeclMarker) && !strings.Contains(raw, "<"+RootTag+">")
}

// Normalize wraps fragments in the minimal full-document shape.
func Normalize(raw string) Normalized {
	text := strings.TrimSpace(raw)
	if !IsFragment(text) {
		return Normalized{Text: text}
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString("<" + RootTag + ">\n")
	b.WriteString("  <HandlingData>\n")
	b.WriteString(`    <Item type="` + ItemType + `">` + "\n")
	b.WriteString("      <" + FieldHandlingName + ">" + DefaultName + "</" + FieldHandlingName + ">\n")
	b.WriteString("      " + text + "\n")
	b.WriteString("    </Item>\n")
	b.WriteString("  </HandlingData>\n")
	b.WriteString("</" + RootTag + ">")

	return Normalized{Text: b.String(), IsFragment: true}
}

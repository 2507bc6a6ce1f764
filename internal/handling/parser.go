package handling

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/flags"
)

const itemPath = "//Item[@type='" + ItemType + "']"

// ParseOptions tunes Parse.
type ParseOptions struct {
	// HandlingName selects an item by handlingName when a full document holds
	// several. Empty selects the first item.
	HandlingName string
}

// Parse decodes raw handling.meta text, full or fragment.
func Parse(raw string) (*Document, error) {
	return ParseWithOptions(raw, ParseOptions{})
}

// ParseWithOptions decodes raw text. Malformed input and a missing handling
// item both return an error wrapping common.ErrMalformedDocument.
func ParseWithOptions(raw string, opts ParseOptions) (*Document, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty input: %w", common.ErrMalformedDocument)
	}

	norm := Normalize(raw)
	items, err := readItems(norm.Text)
	if err != nil {
		return nil, err
	}

	item, err := selectItem(items, opts.HandlingName)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	doc.IsFragment = norm.IsFragment
	doc.RawFormats = CaptureFormats(raw)

	for _, child := range item.ChildElements() {
		if child.Tag == FieldSubHandling {
			doc.HasSubHandling = true
			continue
		}
		doc.Set(child.Tag, decodeField(child))
	}

	normalizeMask(doc)

	slog.Debug("parsed handling document",
		"name", doc.Name(),
		"fields", doc.Len(),
		"fragment", doc.IsFragment,
		"sub_handling", doc.HasSubHandling)

	return doc, nil
}

// ItemNames lists the handlingName of every item in raw, in document order.
func ItemNames(raw string) ([]string, error) {
	items, err := readItems(Normalize(raw).Text)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, itemName(item))
	}
	return names, nil
}

func readItems(text string) ([]*etree.Element, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromString(text); err != nil {
		return nil, fmt.Errorf("invalid XML: %v: %w", err, common.ErrMalformedDocument)
	}
	items := tree.FindElements(itemPath)
	if len(items) == 0 {
		return nil, fmt.Errorf("no %s item found: %w", ItemType, common.ErrMalformedDocument)
	}
	return items, nil
}

func selectItem(items []*etree.Element, name string) (*etree.Element, error) {
	if name == "" {
		return items[0], nil
	}
	for _, item := range items {
		if itemName(item) == name {
			return item, nil
		}
	}
	return nil, fmt.Errorf("no %s item named %q: %w", ItemType, name, common.ErrMalformedDocument)
}

func itemName(item *etree.Element) string {
	if el := item.SelectElement(FieldHandlingName); el != nil {
		if name := strings.TrimSpace(el.Text()); name != "" {
			return name
		}
	}
	return DefaultName
}

// decodeField applies the dual-source rule: x/y/z attributes make a vector,
// otherwise a non-empty value attribute wins over text content.
func decodeField(el *etree.Element) Value {
	x, y, z := el.SelectAttr("x"), el.SelectAttr("y"), el.SelectAttr("z")
	if x != nil && y != nil && z != nil {
		return Vector(x.Value, y.Value, z.Value)
	}
	if attr := el.SelectAttr("value"); attr != nil && attr.Value != "" {
		return Scalar(attr.Value)
	}
	return Scalar(el.Text())
}

// normalizeMask upper-cases a well-formed flag mask so output is canonical.
func normalizeMask(doc *Document) {
	text := doc.Text(FieldHandlingFlags)
	if text == "" {
		return
	}
	if _, err := flags.ParseHex(text); err != nil {
		slog.Debug("handling flags are not valid hex, treating mask as 0",
			"value", text,
			"error", err)
		return
	}
	doc.SetText(FieldHandlingFlags, strings.ToUpper(strings.TrimSpace(text)))
}

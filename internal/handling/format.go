package handling

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// Encoding is the on-the-wire shape of a field element.
type Encoding int

const (
	// EncodingAttribute is <Tag value="..." />.
	EncodingAttribute Encoding = iota
	// EncodingVector is <Tag x="..." y="..." z="..." />.
	EncodingVector
	// EncodingText is <Tag>...</Tag>.
	EncodingText
)

func (e Encoding) String() string {
	switch e {
	case EncodingVector:
		return "vector"
	case EncodingText:
		return "text"
	default:
		return "attribute"
	}
}

// CanonicalOrder is the field order used when writing a document.
var CanonicalOrder = []string{
	"fMass", "fInitialDragCoeff", "fDownforceModifier", "fPercentSubmerged",
	"vecCentreOfMassOffset", "vecInertiaMultiplier",
	"fDriveBiasFront", "nInitialDriveGears", "fInitialDriveForce", "fDriveInertia",
	"fClutchChangeRateScaleUpShift", "fClutchChangeRateScaleDownShift", "fInitialDriveMaxFlatVel",
	"fBrakeForce", "fBrakeBiasFront", "fHandBrakeForce", "fSteeringLock",
	"fTractionCurveMax", "fTractionCurveMin", "fTractionCurveLateral", "fTractionSpringDeltaMax",
	"fLowSpeedTractionLossMult", "fCamberStiffnesss", "fTractionBiasFront", "fTractionLossMult",
	"fSuspensionForce", "fSuspensionCompDamp", "fSuspensionReboundDamp",
	"fSuspensionUpperLimit", "fSuspensionLowerLimit", "fSuspensionRaise", "fSuspensionBiasFront",
	"fAntiRollBarForce", "fAntiRollBarBiasFront", "fRollCentreHeightFront", "fRollCentreHeightRear",
	"fCollisionDamageMult", "fWeaponDamageMult", "fDeformationDamageMult", "fEngineDamageMult",
	"fPetrolTankVolume", "fOilVolume",
	"fSeatOffsetDistX", "fSeatOffsetDistY", "fSeatOffsetDistZ",
	"nMonetaryValue", "strModelFlags", FieldHandlingFlags, "strDamageFlags", "AIHandling",
}

var canonicalIndex = func() map[string]int {
	m := make(map[string]int, len(CanonicalOrder))
	for i, name := range CanonicalOrder {
		m[name] = i
	}
	return m
}()

// textFields always use text content, never a value attribute.
var textFields = map[string]bool{
	"strModelFlags":    true,
	FieldHandlingFlags: true,
	"strDamageFlags":   true,
	"AIHandling":       true,
}

// IsCanonical reports whether name is part of CanonicalOrder.
func IsCanonical(name string) bool {
	_, ok := canonicalIndex[name]
	return ok
}

// EncodingOf classifies how a field is written. Vectors are recognised by
// value; unknown scalar fields default to the value attribute.
func EncodingOf(name string, v Value) Encoding {
	switch {
	case v.IsVector():
		return EncodingVector
	case textFields[name]:
		return EncodingText
	default:
		return EncodingAttribute
	}
}

// leafElementRe matches a self-closing element or an element holding only
// text. RE2 has no back-references, so closing tags are checked in code.
var leafElementRe = regexp.MustCompile(`<([A-Za-z_][\w.:-]*)(?:\s[^<>]*?)?(?:/>|>([^<]*)</([A-Za-z_][\w.:-]*)\s*>)`)

// FormatRegistry maps a tag to the first literal leaf element seen for it.
type FormatRegistry map[string]string

// CaptureFormats scans raw text for leaf elements, keeping the first literal
// per tag, whether or not the tag is a known field.
func CaptureFormats(raw string) FormatRegistry {
	formats := make(FormatRegistry)
	for _, m := range leafElementRe.FindAllStringSubmatchIndex(raw, -1) {
		tag := raw[m[2]:m[3]]
		if m[6] >= 0 && raw[m[6]:m[7]] != tag {
			continue
		}
		if _, seen := formats[tag]; !seen {
			formats[tag] = raw[m[0]:m[1]]
		}
	}
	return formats
}

// Literal returns the captured literal for tag.
func (r FormatRegistry) Literal(tag string) (string, bool) {
	lit, ok := r[tag]
	return lit, ok
}

// LiteralFor returns the captured literal for tag only when it still decodes
// to v, so edited fields are never written with stale text.
func (r FormatRegistry) LiteralFor(tag string, v Value) (string, bool) {
	lit, ok := r[tag]
	if !ok {
		return "", false
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(lit); err != nil || doc.Root() == nil {
		return "", false
	}
	if decodeField(doc.Root()) != v {
		return "", false
	}
	return strings.TrimSpace(lit), true
}

package handling

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/flags"
)

const fullDocument = `<?xml version="1.0" encoding="UTF-8"?>
<CHandlingDataMgr>
  <HandlingData>
    <Item type="CHandlingData">
      <handlingName>SULTAN</handlingName>
      <fMass value="1400.000000" />
      <fInitialDragCoeff value="5.000000" />
      <vecCentreOfMassOffset x="0.000000" y="0.000000" z="-0.050000" />
      <fBrakeForce value="1.800000" />
      <fSuspensionUpperLimit value="0.100000" />
      <fSuspensionLowerLimit value="-0.120000" />
      <nMonetaryValue value="25000" />
      <strModelFlags>440010</strModelFlags>
      <strHandlingFlags>20000</strHandlingFlags>
      <strDamageFlags>0</strDamageFlags>
      <AIHandling>AVERAGE</AIHandling>
      <fCustomTuning value="7.5" />
      <SubHandlingData>
        <Item type="CCarHandlingData">
          <fBackEndPopUpCarImpulseMult value="0.100000" />
        </Item>
        <Item type="NULL" />
        <Item type="NULL" />
      </SubHandlingData>
    </Item>
  </HandlingData>
</CHandlingDataMgr>`

func TestParseFullDocument(t *testing.T) {
	doc, err := Parse(fullDocument)
	require.NoError(t, err)

	assert.False(t, doc.IsFragment)
	assert.True(t, doc.HasSubHandling)
	assert.Equal(t, "SULTAN", doc.Name())
	assert.False(t, doc.Has(FieldSubHandling))

	want := map[string]Value{
		"handlingName":          Scalar("SULTAN"),
		"fMass":                 Scalar("1400.000000"),
		"fInitialDragCoeff":     Scalar("5.000000"),
		"vecCentreOfMassOffset": Vector("0.000000", "0.000000", "-0.050000"),
		"fBrakeForce":           Scalar("1.800000"),
		"fSuspensionUpperLimit": Scalar("0.100000"),
		"fSuspensionLowerLimit": Scalar("-0.120000"),
		"nMonetaryValue":        Scalar("25000"),
		"strModelFlags":         Scalar("440010"),
		"strHandlingFlags":      Scalar("20000"),
		"strDamageFlags":        Scalar("0"),
		"AIHandling":            Scalar("AVERAGE"),
		"fCustomTuning":         Scalar("7.5"),
	}
	if diff := cmp.Diff(want, doc.Snapshot()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, uint64(0x20000), doc.Mask())
	assert.Equal(t, []string{"tyres_can_clip"}, flags.HandlingFlags.Names(doc.Flags(flags.HandlingFlags)))
}

func TestParseMinimalFragment(t *testing.T) {
	doc, err := Parse(`<fMass value="1500.0"/><strHandlingFlags>2000</strHandlingFlags>`)
	require.NoError(t, err)

	assert.True(t, doc.IsFragment)
	assert.Equal(t, DefaultName, doc.Name())
	assert.Equal(t, "1500.0", doc.Text("fMass"))
	assert.Equal(t, uint64(0x2000), doc.Mask())
	assert.Equal(t, []string{"alt_ext_wheel_bounds_beh"}, flags.HandlingFlags.Names(doc.Flags(flags.HandlingFlags)))
}

func TestParseDualSourceRule(t *testing.T) {
	doc, err := Parse(`
<fEmptyValue value="">12</fEmptyValue>
<fBoth value="3">9</fBoth>
<strSomething>text only</strSomething>
<vecPartial x="1" y="2" />
<vecFull x="1" y="2" z="3" value="ignored" />`)
	require.NoError(t, err)

	assert.Equal(t, Scalar("12"), mustGet(t, doc, "fEmptyValue"))
	assert.Equal(t, Scalar("3"), mustGet(t, doc, "fBoth"))
	assert.Equal(t, Scalar("text only"), mustGet(t, doc, "strSomething"))
	assert.Equal(t, Scalar(""), mustGet(t, doc, "vecPartial"))
	assert.Equal(t, Vector("1", "2", "3"), mustGet(t, doc, "vecFull"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "   \n"},
		{name: "unclosed fragment", raw: `<fMass value="1500.0">`},
		{name: "mismatched tags", raw: `<fMass value="1"></fBrake>`},
		{name: "no item", raw: `<?xml version="1.0"?><CHandlingDataMgr><HandlingData /></CHandlingDataMgr>`},
		{name: "wrong item type", raw: `<?xml version="1.0"?><CHandlingDataMgr><HandlingData><Item type="CBikeHandlingData" /></HandlingData></CHandlingDataMgr>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.raw)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, common.ErrMalformedDocument)
		})
	}
}

func TestParseMalformedMaskDefaultsToZero(t *testing.T) {
	doc, err := Parse(`<fMass value="1500.0"/><strHandlingFlags>zz12</strHandlingFlags>`)
	require.NoError(t, err)

	assert.Equal(t, "zz12", doc.Text(FieldHandlingFlags))
	assert.Equal(t, uint64(0), doc.Mask())
	assert.Empty(t, doc.Flags(flags.HandlingFlags))
}

func TestParseUppercasesMask(t *testing.T) {
	doc, err := Parse(`<strHandlingFlags>2000a</strHandlingFlags>`)
	require.NoError(t, err)
	assert.Equal(t, "2000A", doc.Text(FieldHandlingFlags))
}

func TestParseSelectsItemByName(t *testing.T) {
	raw := `<?xml version="1.0" encoding="UTF-8"?>
<CHandlingDataMgr>
  <HandlingData>
    <Item type="CHandlingData">
      <handlingName>ADDER</handlingName>
      <fMass value="1800.0" />
    </Item>
    <Item type="CHandlingData">
      <handlingName>BLISTA</handlingName>
      <fMass value="1100.0" />
    </Item>
  </HandlingData>
</CHandlingDataMgr>`

	names, err := ItemNames(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"ADDER", "BLISTA"}, names)

	first, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "ADDER", first.Name())

	second, err := ParseWithOptions(raw, ParseOptions{HandlingName: "BLISTA"})
	require.NoError(t, err)
	assert.Equal(t, "1100.0", second.Text("fMass"))

	_, err = ParseWithOptions(raw, ParseOptions{HandlingName: "ZENTORNO"})
	assert.ErrorIs(t, err, common.ErrMalformedDocument)
}

func TestNormalize(t *testing.T) {
	frag := Normalize("  <fMass value=\"1\"/>  ")
	assert.True(t, frag.IsFragment)
	assert.Contains(t, frag.Text, "<handlingName>VEHICLE</handlingName>")
	assert.Contains(t, frag.Text, `<Item type="CHandlingData">`)
	assert.True(t, strings.HasPrefix(frag.Text, "<?xml"))

	full := Normalize(fullDocument)
	assert.False(t, full.IsFragment)
	assert.Equal(t, strings.TrimSpace(fullDocument), full.Text)

	assert.False(t, IsFragment(`<CHandlingDataMgr><HandlingData/></CHandlingDataMgr>`))
	assert.False(t, IsFragment(`<?xml version="1.0"?><Other/>`))
	assert.True(t, IsFragment(`<fMass value="1"/>`))
}

func TestCaptureFormats(t *testing.T) {
	formats := CaptureFormats(fullDocument)

	assert.Equal(t, `<fMass value="1400.000000" />`, formats["fMass"])
	assert.Equal(t, `<strModelFlags>440010</strModelFlags>`, formats["strModelFlags"])
	assert.Equal(t, `<vecCentreOfMassOffset x="0.000000" y="0.000000" z="-0.050000" />`, formats["vecCentreOfMassOffset"])
	assert.Equal(t, `<Item type="NULL" />`, formats["Item"])
	_, ok := formats["HandlingData"]
	assert.False(t, ok, "containers are not leaf elements")

	first := CaptureFormats(`<a value="1"/><a value="2"/>`)
	assert.Equal(t, `<a value="1"/>`, first["a"])
}

func TestLiteralFor(t *testing.T) {
	formats := CaptureFormats(`<fCustom value="7.50"   />`)

	lit, ok := formats.LiteralFor("fCustom", Scalar("7.50"))
	assert.True(t, ok)
	assert.Equal(t, `<fCustom value="7.50"   />`, lit)

	_, ok = formats.LiteralFor("fCustom", Scalar("8"))
	assert.False(t, ok, "edited values must not reuse the stale literal")

	_, ok = formats.LiteralFor("fMissing", Scalar("1"))
	assert.False(t, ok)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "1.8", want: 1.8},
		{in: " 220.000000 ", want: 220},
		{in: "0.5abc", want: 0.5},
		{in: "abc", want: 0},
		{in: "", want: 0},
		{in: "NaN", want: 0},
		{in: "Inf", want: 0},
		{in: "-3", want: -3},
		{in: ".5", want: 0.5},
		{in: "1e3x", want: 1000},
		{in: "0x1p3", want: 0},
		{in: "0x10", want: 0},
		{in: "Infinity", want: 0},
		{in: "1e999", want: 0},
		{in: "1_000", want: 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Coerce(tt.in), "Coerce(%q)", tt.in)
	}
}

func TestDocumentEditing(t *testing.T) {
	doc := NewDocument()
	doc.SetText("fMass", "1500")
	doc.Set("vecInertiaMultiplier", Vector("1", "1", "1"))
	doc.SetText("fBrakeForce", "1.0")
	doc.SetText("fMass", "1600")

	assert.Equal(t, []string{"fMass", "vecInertiaMultiplier", "fBrakeForce"}, doc.Fields())
	assert.Equal(t, 1600.0, doc.Number("fMass"))
	assert.Equal(t, "", doc.Text("vecInertiaMultiplier"))
	assert.Equal(t, 0.0, doc.Number("fMissing"))

	doc.Delete("vecInertiaMultiplier")
	assert.Equal(t, []string{"fMass", "fBrakeForce"}, doc.Fields())
	assert.Equal(t, 2, doc.Len())

	clone := doc.Clone()
	clone.SetText("fMass", "1")
	assert.Equal(t, "1600", doc.Text("fMass"))

	doc.SetFlags(flags.NewSet(0x2000, 0x80000000))
	assert.Equal(t, "80002000", doc.Text(FieldHandlingFlags))
	assert.Equal(t, uint64(0x80002000), doc.Mask())
}

func mustGet(t *testing.T, doc *Document, name string) Value {
	t.Helper()
	v, ok := doc.Get(name)
	require.True(t, ok, "field %s missing", name)
	return v
}

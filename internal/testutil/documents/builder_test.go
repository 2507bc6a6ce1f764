package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/handling-analyzer/internal/guideline"
	"github.com/Veraticus/handling-analyzer/internal/handling"
)

func TestBuilderFragment(t *testing.T) {
	doc := NewBuilder(t).
		WithField("fMass", "1500.0").
		WithField("fMass", "1600.0").
		WithFlags(1, 8).
		Document()

	assert.True(t, doc.IsFragment)
	assert.Equal(t, "1600.0", doc.Text("fMass"))
	assert.Equal(t, uint64(9), doc.Mask())
}

func TestBuilderCompliant(t *testing.T) {
	doc := NewBuilder(t).Compliant(guideline.ClassPatent).Document()

	for _, f := range guideline.Fields {
		assert.True(t, doc.Has(f.Name), f.Name)
	}
	assert.InDelta(t, 2.5, doc.Number("fBrakeForce"), 0.001)
}

func TestBuilderFullRoundTrip(t *testing.T) {
	text := NewBuilder(t).
		Full().
		WithName("SULTAN").
		WithFixture(FixtureOverTuned).
		String()

	doc, err := handling.Parse(text)
	require.NoError(t, err)
	assert.False(t, doc.IsFragment)
	assert.Equal(t, "SULTAN", doc.Name())
	assert.Equal(t, "9.0", doc.Text("fBrakeForce"))
}

func TestFixtures(t *testing.T) {
	for _, f := range []Fixture{FixtureOverTuned, FixtureInvertedSuspension, FixtureRallyFlags} {
		t.Run(f.Name(), func(t *testing.T) {
			doc := NewBuilder(t).WithFixture(f).Document()
			assert.Equal(t, len(f.Fields())+boolInt(f.Flags() != nil), doc.Len())
		})
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package flags

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/handling-analyzer/internal/common"
)

func TestCatalogs(t *testing.T) {
	require.Len(t, HandlingFlags.Definitions, 32)
	require.Len(t, WeaponFlags.Definitions, 10)

	for _, catalog := range []*Catalog{HandlingFlags, WeaponFlags} {
		for i, def := range catalog.Definitions {
			assert.Equal(t, uint64(1)<<uint(i), def.Value, "%s[%d] %s", catalog.Name, i, def.Name)
		}
	}

	last := HandlingFlags.Definitions[31]
	assert.Equal(t, "last_available_flag", last.Name)
	assert.Equal(t, uint64(2147483648), last.Value)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		mask uint64
		want []string
	}{
		{name: "zero", mask: 0, want: []string{}},
		{name: "0x2000", mask: 0x2000, want: []string{"alt_ext_wheel_bounds_beh"}},
		{name: "0x1000", mask: 0x1000, want: []string{"cvt"}},
		{name: "two bits", mask: 0x4 | 0x20000, want: []string{"has_kers", "tyres_can_clip"}},
		{name: "top bit", mask: 0x80000000, want: []string{"last_available_flag"}},
		{name: "bits above catalog ignored", mask: 1 << 40, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandlingFlags.Names(Decode(tt.mask, HandlingFlags))
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestDecodeCombinationEntry(t *testing.T) {
	catalog := &Catalog{Name: "test", Definitions: []Definition{
		{Value: 1, Name: "a"},
		{Value: 2, Name: "b"},
		{Value: 3, Name: "a_and_b"},
	}}

	assert.Equal(t, []string{"a"}, catalog.Names(Decode(1, catalog)))
	assert.Equal(t, []string{"a", "b", "a_and_b"}, catalog.Names(Decode(3, catalog)))
}

func TestFlagRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, catalog := range []*Catalog{HandlingFlags, WeaponFlags} {
		for i := 0; i < 500; i++ {
			s := make(Set)
			for _, def := range catalog.Definitions {
				if rng.Intn(2) == 1 {
					s[def.Value] = struct{}{}
				}
			}
			assert.Equal(t, s, Decode(Encode(s), catalog))
		}
	}

	full := make(Set)
	for _, def := range HandlingFlags.Definitions {
		full[def.Value] = struct{}{}
	}
	assert.Equal(t, uint64(0xFFFFFFFF), Encode(full))
	assert.Equal(t, full, Decode(Encode(full), HandlingFlags))
}

func TestHexRoundTrip(t *testing.T) {
	upperHex := regexp.MustCompile(`^[0-9A-F]+$`)
	rng := rand.New(rand.NewSource(7))

	values := []uint64{0, 1, 0x2000, 0x80000000, 0xFFFFFFFF, 0x1FFFFFFFF}
	for i := 0; i < 200; i++ {
		values = append(values, rng.Uint64()&0x1FFFFFFFF)
	}

	for _, v := range values {
		hex := ToHex(v)
		assert.Regexp(t, upperHex, hex)
		got, err := ParseHex(hex)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "1000", want: 0x1000},
		{in: "2000a", want: 0x2000A},
		{in: " 80000000\n", want: 0x80000000},
		{in: "", wantErr: true},
		{in: "0x10", wantErr: true},
		{in: "12zz", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidHex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetToggle(t *testing.T) {
	s := NewSet(4)
	s.Toggle(8)
	s.Toggle(4)

	assert.False(t, s.Has(4))
	assert.True(t, s.Has(8))
	assert.Equal(t, uint64(8), Encode(s))
	assert.Equal(t, []uint64{1, 8, 2147483648}, NewSet(2147483648, 8, 1).Values())

	clone := s.Clone()
	clone.Toggle(1)
	assert.False(t, s.Has(1))
}

func TestUnrecommended(t *testing.T) {
	s := NewSet(1, 4, 512, 8192)

	names := make([]string, 0)
	for _, def := range HandlingFlags.Unrecommended(s) {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"has_kers", "no_reverse"}, names)
}

func TestFromNames(t *testing.T) {
	s, err := HandlingFlags.FromNames("cvt", "no_reverse")
	require.NoError(t, err)
	assert.Equal(t, uint64(4096+512), Encode(s))

	_, err = HandlingFlags.FromNames("cvt", "warp_drive")
	assert.ErrorIs(t, err, common.ErrUnknownFlag)
}

func TestSearch(t *testing.T) {
	got := HandlingFlags.Search("steer", NewSet(128))
	require.NotEmpty(t, got)
	assert.Equal(t, "steer_all_wheels", got[0].Name)
	for _, def := range got {
		assert.Contains(t, def.Name+def.Description, "teer")
	}

	assert.Len(t, HandlingFlags.Search("", nil), 32)
	assert.Empty(t, WeaponFlags.Search("laser", nil))
}

func TestCatalogByName(t *testing.T) {
	c, err := CatalogByName("weapon")
	require.NoError(t, err)
	assert.Same(t, WeaponFlags, c)

	_, err = CatalogByName("engine")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

package flags

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/Veraticus/handling-analyzer/internal/common"
)

// Set is the active subset of a catalog, keyed by bit value.
type Set map[uint64]struct{}

// NewSet builds a set from bit values.
func NewSet(values ...uint64) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether value is active.
func (s Set) Has(value uint64) bool {
	_, ok := s[value]
	return ok
}

// Toggle flips value in place.
func (s Set) Toggle(value uint64) {
	if s.Has(value) {
		delete(s, value)
		return
	}
	s[value] = struct{}{}
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Values returns the members of s in ascending order.
func (s Set) Values() []uint64 {
	out := lo.Keys(s)
	slices.Sort(out)
	return out
}

// Decode returns every catalog definition fully contained in mask.
// The test is (mask & v) == v so combination entries decode correctly.
func Decode(mask uint64, catalog *Catalog) Set {
	s := make(Set)
	for _, def := range catalog.Definitions {
		if mask&def.Value == def.Value {
			s[def.Value] = struct{}{}
		}
	}
	return s
}

// Encode sums the members of s. Members are disjoint bits, so this equals
// their bitwise OR.
func Encode(s Set) uint64 {
	var total uint64
	for v := range s {
		total += v
	}
	return total
}

// ToHex renders value as uppercase hex without a prefix.
func ToHex(value uint64) string {
	return strings.ToUpper(strconv.FormatUint(value, 16))
}

// ParseHex parses a bare hex literal such as "1000" or "2000a".
func ParseHex(text string) (uint64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("empty mask: %w", common.ErrInvalidHex)
	}
	v, err := strconv.ParseUint(trimmed, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("mask %q: %w", trimmed, common.ErrInvalidHex)
	}
	return v, nil
}

// Active returns the catalog definitions present in s, in catalog order.
func (c *Catalog) Active(s Set) []Definition {
	return lo.Filter(c.Definitions, func(def Definition, _ int) bool {
		return s.Has(def.Value)
	})
}

// Names returns the names of the active definitions in catalog order.
func (c *Catalog) Names(s Set) []string {
	return lo.Map(c.Active(s), func(def Definition, _ int) string {
		return def.Name
	})
}

// Unrecommended returns the active definitions not marked as recommended.
func (c *Catalog) Unrecommended(s Set) []Definition {
	return lo.Filter(c.Active(s), func(def Definition, _ int) bool {
		return !def.Recommended
	})
}

// FromNames builds a set from flag names, failing on the first unknown name.
func (c *Catalog) FromNames(names ...string) (Set, error) {
	s := make(Set, len(names))
	for _, name := range names {
		def, err := c.ByName(name)
		if err != nil {
			return nil, err
		}
		s[def.Value] = struct{}{}
	}
	return s, nil
}

// Search filters the catalog by a case-insensitive substring of name or
// description. Active definitions come first; catalog order is kept otherwise.
func (c *Catalog) Search(query string, active Set) []Definition {
	q := strings.ToLower(strings.TrimSpace(query))
	matches := lo.Filter(c.Definitions, func(def Definition, _ int) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(def.Name), q) ||
			strings.Contains(strings.ToLower(def.Description), q)
	})
	on, off := lo.FilterReject(matches, func(def Definition, _ int) bool {
		return active.Has(def.Value)
	})
	return append(on, off...)
}

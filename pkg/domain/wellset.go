package domain

import (
	"slices"
	"strings"

	"microplate/pkg/orderedset"
)

// WellSet is a named, ordered set of wells with unique coordinates.
type WellSet struct {
	name  string
	wells *orderedset.Set[*Well]
}

// WellBound is one end of a well subrange.
type WellBound = orderedset.Bound[*Well]

// WellAt bounds a well subrange by ascending index.
func WellAt(index int) WellBound { return orderedset.At[*Well](index) }

// WellKey bounds a well subrange by coordinate string.
func WellKey(key string) WellBound { return orderedset.ByKey[*Well](key) }

// WellCoordinate bounds a well subrange by coordinate.
func WellCoordinate(c Coordinate) WellBound { return orderedset.ByItem(&Well{coord: c}) }

func newWellIndex() *orderedset.Set[*Well] {
	return orderedset.New(wellKey, CompareWells,
		orderedset.WithCloner(cloneWell),
		orderedset.WithProbe(probeWell))
}

// NewWellSet returns a set holding copies of wells. Later wells sharing a
// coordinate with an earlier one are ignored.
func NewWellSet(name string, wells ...*Well) *WellSet {
	s := &WellSet{name: name, wells: newWellIndex()}
	s.wells.Add(wells...)
	return s
}

// Name returns the set name.
func (s *WellSet) Name() string { return s.name }

// SetName renames the set.
func (s *WellSet) SetName(name string) { s.name = name }

// Add inserts copies of wells whose coordinate is not yet present.
func (s *WellSet) Add(wells ...*Well) bool { return s.wells.Add(wells...) }

// Remove deletes the members sharing a coordinate with any of wells.
func (s *WellSet) Remove(wells ...*Well) bool { return s.wells.Remove(wells...) }

// RemoveCoordinates deletes the members at the given positions.
func (s *WellSet) RemoveCoordinates(coords ...Coordinate) bool {
	return s.wells.RemoveKeys(coordinateKeys(coords)...)
}

// Retain keeps only members sharing a coordinate with one of wells.
func (s *WellSet) Retain(wells ...*Well) bool { return s.wells.Retain(wells...) }

// RetainCoordinates keeps only the members at the given positions.
func (s *WellSet) RetainCoordinates(coords ...Coordinate) bool {
	return s.wells.RetainKeys(coordinateKeys(coords)...)
}

// Contains reports whether a well exists at c.
func (s *WellSet) Contains(c Coordinate) bool { return s.wells.ContainsKey(c.String()) }

// ContainsKey reports whether a well exists at the coordinate string key.
func (s *WellSet) ContainsKey(key string) bool { return s.wells.ContainsKey(key) }

// Get returns the member at c. The returned well is owned by the set; its
// data may be edited in place.
func (s *WellSet) Get(c Coordinate) (*Well, bool) { return s.wells.Get(c.String()) }

// GetKey returns the member at the coordinate string key.
func (s *WellSet) GetKey(key string) (*Well, bool) { return s.wells.Get(key) }

// Len returns the number of wells.
func (s *WellSet) Len() int { return s.wells.Len() }

// IsEmpty reports whether the set has no wells.
func (s *WellSet) IsEmpty() bool { return s.wells.IsEmpty() }

// Wells returns the members in ascending coordinate order.
func (s *WellSet) Wells() []*Well { return s.wells.Snapshot() }

// Keys returns the member coordinate strings in ascending order.
func (s *WellSet) Keys() []string { return s.wells.Keys() }

// Coordinates returns the member positions in ascending order.
func (s *WellSet) Coordinates() []Coordinate {
	wells := s.wells.Snapshot()
	out := make([]Coordinate, len(wells))
	for i, w := range wells {
		out[i] = w.coord
	}
	return out
}

// MaxLen returns the length of the longest member sequence.
func (s *WellSet) MaxLen() int {
	n := 0
	for _, w := range s.wells.Snapshot() {
		n = max(n, w.Len())
	}
	return n
}

// Clone returns a deep copy.
func (s *WellSet) Clone() *WellSet {
	return &WellSet{name: s.name, wells: s.wells.Clone()}
}

// Floor returns the member at the greatest position <= c.
func (s *WellSet) Floor(c Coordinate) (*Well, bool) { return s.wells.Floor(&Well{coord: c}) }

// Ceiling returns the member at the least position >= c.
func (s *WellSet) Ceiling(c Coordinate) (*Well, bool) { return s.wells.Ceiling(&Well{coord: c}) }

// Lower returns the member at the greatest position < c.
func (s *WellSet) Lower(c Coordinate) (*Well, bool) { return s.wells.Lower(&Well{coord: c}) }

// Higher returns the member at the least position > c.
func (s *WellSet) Higher(c Coordinate) (*Well, bool) { return s.wells.Higher(&Well{coord: c}) }

// Subrange returns the members between begin and end inclusive.
func (s *WellSet) Subrange(begin, end WellBound) []*Well {
	return s.wells.Subrange(begin, end)
}

// Window returns a new set holding copies of the members between the
// positions begin and end inclusive, in row-major order.
func (s *WellSet) Window(begin, end Coordinate) *WellSet {
	return NewWellSet(s.name, s.Subrange(WellCoordinate(begin), WellCoordinate(end))...)
}

// Equal reports whether both sets hold equal wells. Names are ignored.
func (s *WellSet) Equal(o *WellSet) bool {
	return slices.EqualFunc(s.Wells(), o.Wells(), (*Well).Equal)
}

// String renders the set for debugging.
func (s *WellSet) String() string {
	parts := make([]string, 0, s.Len())
	for _, w := range s.Wells() {
		parts = append(parts, w.String())
	}
	return s.name + "{" + strings.Join(parts, " ") + "}"
}

// CompareWellSets orders sets by name, size and then well by well.
func CompareWellSets(a, b *WellSet) int {
	if r := strings.Compare(a.name, b.name); r != 0 {
		return r
	}
	return compareWellLists(a.Wells(), b.Wells())
}

func compareWellLists(a, b []*Well) int {
	if r := len(a) - len(b); r != 0 {
		return r
	}
	return slices.CompareFunc(a, b, CompareWells)
}

func coordinateKeys(coords []Coordinate) []string {
	keys := make([]string, len(coords))
	for i, c := range coords {
		keys[i] = c.String()
	}
	return keys
}

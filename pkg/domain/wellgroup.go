package domain

import (
	"fmt"
	"strings"

	"microplate/pkg/orderedset"
)

// WellGroup is a named subset of plate positions. It carries no data; a plate
// resolves a group to its wells on demand.
type WellGroup struct {
	name   string
	coords *orderedset.Set[Coordinate]
}

func newCoordinateSet() *orderedset.Set[Coordinate] {
	return orderedset.New(Coordinate.String, CompareCoordinates,
		orderedset.WithProbe(func(key string) (Coordinate, bool) {
			c, err := ParseCoordinate(key)
			return c, err == nil
		}))
}

// NewWellGroup returns a group holding the given coordinates.
func NewWellGroup(name string, coords ...Coordinate) (*WellGroup, error) {
	g := &WellGroup{name: name, coords: newCoordinateSet()}
	if _, err := g.Add(coords...); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseWellGroup is NewWellGroup for canonical coordinate strings.
func ParseWellGroup(name string, keys ...string) (*WellGroup, error) {
	coords := make([]Coordinate, 0, len(keys))
	for _, k := range keys {
		c, err := ParseCoordinate(k)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", name, err)
		}
		coords = append(coords, c)
	}
	return NewWellGroup(name, coords...)
}

// Name returns the group name.
func (g *WellGroup) Name() string { return g.name }

// Add inserts coordinates. Nothing is added when any coordinate is invalid.
func (g *WellGroup) Add(coords ...Coordinate) (bool, error) {
	for _, c := range coords {
		if !c.Valid() {
			return false, fmt.Errorf("group %s: %w: %s", g.name, ErrInvalidCoordinate, c)
		}
	}
	return g.coords.Add(coords...), nil
}

// Remove deletes coordinates from the group.
func (g *WellGroup) Remove(coords ...Coordinate) bool { return g.coords.Remove(coords...) }

// Contains reports whether c belongs to the group.
func (g *WellGroup) Contains(c Coordinate) bool { return g.coords.Contains(c) }

// Len returns the number of positions in the group.
func (g *WellGroup) Len() int { return g.coords.Len() }

// Coordinates returns the positions in ascending order.
func (g *WellGroup) Coordinates() []Coordinate { return g.coords.Snapshot() }

// Keys returns the canonical coordinate strings in ascending order.
func (g *WellGroup) Keys() []string { return g.coords.Keys() }

// Clone returns a deep copy.
func (g *WellGroup) Clone() *WellGroup {
	return &WellGroup{name: g.name, coords: g.coords.Clone()}
}

// Clip returns a copy keeping only positions inside rows x columns.
func (g *WellGroup) Clip(rows, columns int) *WellGroup {
	out := &WellGroup{name: g.name, coords: newCoordinateSet()}
	for _, c := range g.coords.Snapshot() {
		if c.Within(rows, columns) {
			out.coords.Add(c)
		}
	}
	return out
}

// outside returns the first coordinate not inside rows x columns.
func (g *WellGroup) outside(rows, columns int) (Coordinate, bool) {
	for _, c := range g.coords.Snapshot() {
		if !c.Within(rows, columns) {
			return c, true
		}
	}
	return Coordinate{}, false
}

// String renders the group for debugging.
func (g *WellGroup) String() string {
	return g.name + "{" + strings.Join(g.Keys(), ",") + "}"
}

// CompareWellGroups orders groups by name, then size.
func CompareWellGroups(a, b *WellGroup) int {
	if r := strings.Compare(a.name, b.name); r != 0 {
		return r
	}
	return a.Len() - b.Len()
}

func wellGroupKey(g *WellGroup) string { return g.name }

func cloneWellGroup(g *WellGroup) *WellGroup { return g.Clone() }

func newGroupSet() *orderedset.Set[*WellGroup] {
	return orderedset.New(wellGroupKey, CompareWellGroups, orderedset.WithCloner(cloneWellGroup))
}

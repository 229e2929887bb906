package domain

import (
	"cmp"
	"fmt"
	"strings"

	"microplate/pkg/orderedset"
)

// Shape is the geometry shared by every plate in a stack.
type Shape struct {
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Type    string `json:"type,omitempty"`
}

func (s Shape) String() string {
	if s.Type == "" {
		return fmt.Sprintf("%dx%d", s.Rows, s.Columns)
	}
	return fmt.Sprintf("%dx%d %s", s.Rows, s.Columns, s.Type)
}

// Plate is a well set bounded by rows and columns, plus named well groups.
// Every well and group position lies in [0,rows) x [1,columns].
type Plate struct {
	wells     *WellSet
	rows      int
	columns   int
	plateType string
	groups    *orderedset.Set[*WellGroup]
}

// NewPlate returns an empty plate.
func NewPlate(name string, rows, columns int, plateType string) (*Plate, error) {
	if rows < 1 || columns < 1 || int64(rows) > MaxRow+1 {
		return nil, fmt.Errorf("%w: plate %s %dx%d", ErrInvalidDimensions, name, rows, columns)
	}
	return &Plate{
		wells:     NewWellSet(name),
		rows:      rows,
		columns:   columns,
		plateType: plateType,
		groups:    newGroupSet(),
	}, nil
}

// NewPlateWithWells returns a plate holding copies of wells.
func NewPlateWithWells(name string, rows, columns int, plateType string, wells ...*Well) (*Plate, error) {
	p, err := NewPlate(name, rows, columns, plateType)
	if err != nil {
		return nil, err
	}
	if _, err := p.Add(wells...); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the plate name.
func (p *Plate) Name() string { return p.wells.Name() }

// SetName renames the plate. Stacks hold their own copies, so renaming a
// plate never affects a stack it was added to or read from.
func (p *Plate) SetName(name string) { p.wells.SetName(name) }

// Rows returns the number of rows.
func (p *Plate) Rows() int { return p.rows }

// Columns returns the number of columns.
func (p *Plate) Columns() int { return p.columns }

// Type returns the plate type label.
func (p *Plate) Type() string { return p.plateType }

// Shape returns rows, columns and type.
func (p *Plate) Shape() Shape {
	return Shape{Rows: p.rows, Columns: p.columns, Type: p.plateType}
}

// Capacity returns rows x columns.
func (p *Plate) Capacity() int { return p.rows * p.columns }

// InBounds reports whether c lies on the plate.
func (p *Plate) InBounds(c Coordinate) bool { return c.Within(p.rows, p.columns) }

// Add inserts copies of wells. When any well lies outside the plate a
// *BoundsViolation is returned and nothing is added.
func (p *Plate) Add(wells ...*Well) (bool, error) {
	for _, w := range wells {
		if !p.InBounds(w.coord) {
			return false, p.violation("", w.coord)
		}
	}
	return p.wells.Add(wells...), nil
}

// Fill adds an empty well at every position that has none.
func (p *Plate) Fill() bool {
	var missing []*Well
	for r := 0; r < p.rows; r++ {
		for c := MinColumn; c <= p.columns; c++ {
			coord := Coordinate{Row: r, Column: c}
			if !p.wells.Contains(coord) {
				missing = append(missing, &Well{coord: coord})
			}
		}
	}
	return p.wells.Add(missing...)
}

// Remove deletes wells sharing a coordinate with any of wells.
func (p *Plate) Remove(wells ...*Well) bool { return p.wells.Remove(wells...) }

// RemoveCoordinates deletes the wells at the given positions.
func (p *Plate) RemoveCoordinates(coords ...Coordinate) bool {
	return p.wells.RemoveCoordinates(coords...)
}

// Retain keeps only wells sharing a coordinate with one of wells.
func (p *Plate) Retain(wells ...*Well) bool { return p.wells.Retain(wells...) }

// RetainCoordinates keeps only the wells at the given positions.
func (p *Plate) RetainCoordinates(coords ...Coordinate) bool {
	return p.wells.RetainCoordinates(coords...)
}

// Contains reports whether a well exists at c.
func (p *Plate) Contains(c Coordinate) bool { return p.wells.Contains(c) }

// Get returns the well at c.
func (p *Plate) Get(c Coordinate) (*Well, bool) { return p.wells.Get(c) }

// GetKey returns the well at the coordinate string key.
func (p *Plate) GetKey(key string) (*Well, bool) { return p.wells.GetKey(key) }

// Len returns the number of wells.
func (p *Plate) Len() int { return p.wells.Len() }

// IsEmpty reports whether the plate has no wells.
func (p *Plate) IsEmpty() bool { return p.wells.IsEmpty() }

// Wells returns the wells in ascending coordinate order.
func (p *Plate) Wells() []*Well { return p.wells.Wells() }

// Keys returns the well coordinate strings in ascending order.
func (p *Plate) Keys() []string { return p.wells.Keys() }

// Coordinates returns the well positions in ascending order.
func (p *Plate) Coordinates() []Coordinate { return p.wells.Coordinates() }

// WellSet returns a copy of the plate's wells as an unbounded set.
func (p *Plate) WellSet() *WellSet { return p.wells.Clone() }

// Floor returns the well at the greatest position <= c.
func (p *Plate) Floor(c Coordinate) (*Well, bool) { return p.wells.Floor(c) }

// Ceiling returns the well at the least position >= c.
func (p *Plate) Ceiling(c Coordinate) (*Well, bool) { return p.wells.Ceiling(c) }

// Lower returns the well at the greatest position < c.
func (p *Plate) Lower(c Coordinate) (*Well, bool) { return p.wells.Lower(c) }

// Higher returns the well at the least position > c.
func (p *Plate) Higher(c Coordinate) (*Well, bool) { return p.wells.Higher(c) }

// Subrange returns the wells between begin and end inclusive, row-major.
func (p *Plate) Subrange(begin, end WellBound) []*Well { return p.wells.Subrange(begin, end) }

// SubPlate returns a plate of the same shape holding copies of the wells in
// the rectangle spanned by the corners a and b. Groups are clipped to the
// rectangle and dropped when empty.
func (p *Plate) SubPlate(a, b Coordinate) *Plate {
	top, bottom := min(a.Row, b.Row), max(a.Row, b.Row)
	left, right := min(a.Column, b.Column), max(a.Column, b.Column)
	inside := func(c Coordinate) bool {
		return c.Row >= top && c.Row <= bottom && c.Column >= left && c.Column <= right
	}

	out := p.emptyCopy()
	for _, w := range p.wells.Subrange(WellCoordinate(Coordinate{Row: top, Column: MinColumn}),
		WellCoordinate(Coordinate{Row: bottom, Column: p.columns})) {
		if inside(w.coord) {
			out.wells.Add(w)
		}
	}
	for _, g := range p.groups.Snapshot() {
		clipped := &WellGroup{name: g.name, coords: newCoordinateSet()}
		for _, c := range g.Coordinates() {
			if inside(c) {
				clipped.coords.Add(c)
			}
		}
		if clipped.Len() > 0 {
			out.groups.Add(clipped)
		}
	}
	return out
}

// AddGroups attaches copies of groups. When any group position lies outside
// the plate a *BoundsViolation is returned and nothing is attached. Groups
// whose name is already attached are ignored.
func (p *Plate) AddGroups(groups ...*WellGroup) (bool, error) {
	for _, g := range groups {
		if c, bad := g.outside(p.rows, p.columns); bad {
			return false, p.violation(g.name, c)
		}
	}
	return p.groups.Add(groups...), nil
}

// RemoveGroups detaches the named groups.
func (p *Plate) RemoveGroups(names ...string) bool { return p.groups.RemoveKeys(names...) }

// Group returns a copy of the named group. Attached groups change only
// through AddGroups and RemoveGroups.
func (p *Plate) Group(name string) (*WellGroup, bool) {
	g, ok := p.groups.Get(name)
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// Groups returns copies of the attached groups ordered by name.
func (p *Plate) Groups() []*WellGroup {
	groups := p.groups.Snapshot()
	for i, g := range groups {
		groups[i] = g.Clone()
	}
	return groups
}

// GroupCount returns the number of attached groups.
func (p *Plate) GroupCount() int { return p.groups.Len() }

// GroupWells returns copies of the wells covered by the named group.
// Positions of the group that hold no well are skipped.
func (p *Plate) GroupWells(name string) (*WellSet, error) {
	g, ok := p.groups.Get(name)
	if !ok {
		return nil, ErrGroupNotFound{Plate: p.Name(), Group: name}
	}
	out := NewWellSet(name)
	for _, c := range g.Coordinates() {
		if w, ok := p.wells.Get(c); ok {
			out.Add(w)
		}
	}
	return out, nil
}

// Clone returns a deep copy.
func (p *Plate) Clone() *Plate {
	return &Plate{
		wells:     p.wells.Clone(),
		rows:      p.rows,
		columns:   p.columns,
		plateType: p.plateType,
		groups:    p.groups.Clone(),
	}
}

// SameShape reports whether both plates share rows, columns and type.
func (p *Plate) SameShape(o *Plate) bool { return p.Shape() == o.Shape() }

// Equal reports whether both plates share a shape and hold equal wells.
// Names and groups are ignored.
func (p *Plate) Equal(o *Plate) bool {
	return p.SameShape(o) && p.wells.Equal(o.wells)
}

// String renders the plate for debugging.
func (p *Plate) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]", p.Name(), p.Shape())
	b.WriteString(strings.TrimPrefix(p.wells.String(), p.Name()))
	return b.String()
}

func (p *Plate) emptyCopy() *Plate {
	return &Plate{
		wells:     NewWellSet(p.Name()),
		rows:      p.rows,
		columns:   p.columns,
		plateType: p.plateType,
		groups:    newGroupSet(),
	}
}

func (p *Plate) violation(group string, c Coordinate) *BoundsViolation {
	return &BoundsViolation{
		Plate:      p.Name(),
		Group:      group,
		Coordinate: c,
		Rows:       p.rows,
		Columns:    p.columns,
	}
}

// ComparePlates orders plates by name, rows, columns, well count, well by
// well, and finally group count.
func ComparePlates(a, b *Plate) int {
	if r := strings.Compare(a.Name(), b.Name()); r != 0 {
		return r
	}
	if r := cmp.Compare(a.rows, b.rows); r != 0 {
		return r
	}
	if r := cmp.Compare(a.columns, b.columns); r != 0 {
		return r
	}
	if r := compareWellLists(a.Wells(), b.Wells()); r != 0 {
		return r
	}
	return cmp.Compare(a.GroupCount(), b.GroupCount())
}

func plateKey(p *Plate) string { return p.Name() }

func clonePlate(p *Plate) *Plate { return p.Clone() }

func probePlate(name string) (*Plate, bool) {
	return &Plate{wells: NewWellSet(name), groups: newGroupSet()}, true
}

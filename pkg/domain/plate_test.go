package domain

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlate(t *testing.T, name string, keys ...string) *Plate {
	t.Helper()
	p, err := NewPlate(name, 8, 12, "96-well")
	require.NoError(t, err)
	for i, k := range keys {
		_, err := p.Add(MustParseWell(k, float64(i+1)))
		require.NoError(t, err)
	}
	return p
}

func TestNewPlateValidatesDimensions(t *testing.T) {
	_, err := NewPlate("p", 0, 12, "")
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = NewPlate("p", 8, -1, "")
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	p, err := NewPlate("p", 8, 12, "96-well")
	require.NoError(t, err)
	assert.Equal(t, Shape{Rows: 8, Columns: 12, Type: "96-well"}, p.Shape())
	assert.Equal(t, 96, p.Capacity())
	assert.Equal(t, "8x12 96-well", p.Shape().String())
	assert.Equal(t, "8x12", Shape{Rows: 8, Columns: 12}.String())
}

func TestPlate_AddRejectsOutOfBoundsBatch(t *testing.T) {
	p := newTestPlate(t, "p", "A1")

	outside := NewWell(Coordinate{Row: 10, Column: 1}, 1)
	changed, err := p.Add(MustParseWell("B1"), outside)
	require.Error(t, err)
	assert.False(t, changed)

	var bv *BoundsViolation
	require.True(t, errors.As(err, &bv))
	assert.Equal(t, "K1", bv.Coordinate.String())
	assert.Equal(t, 8, bv.Rows)
	assert.Equal(t, "p", bv.Plate)
	assert.Contains(t, bv.Error(), "outside plate p")
	assert.Equal(t, []string{"A1"}, p.Keys(), "plate must be unchanged")

	_, err = p.Add(MustParseWell("A13"))
	assert.ErrorAs(t, err, &bv)
	_, err = NewPlateWithWells("q", 2, 2, "", MustParseWell("C1"))
	assert.ErrorAs(t, err, &bv)
	_, err = NewPlateWithWells("q", 0, 2, "")
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestPlate_Fill(t *testing.T) {
	p, err := NewPlateWithWells("p", 2, 3, "", MustParseWell("A2", 5))
	require.NoError(t, err)
	assert.True(t, p.Fill())
	assert.Equal(t, 6, p.Len())
	assert.False(t, p.Fill())
	w, _ := p.GetKey("A2")
	assert.Equal(t, []float64{5}, w.Data(), "existing wells keep their data")
	assert.Equal(t, []string{"A1", "A2", "A3", "B1", "B2", "B3"}, p.Keys())
}

func TestPlate_Groups(t *testing.T) {
	p := newTestPlate(t, "p", "A1", "A2", "B1")
	controls, err := ParseWellGroup("controls", "A1", "B1", "C1")
	require.NoError(t, err)
	changed, err := p.AddGroups(controls)
	require.NoError(t, err)
	assert.True(t, changed)

	wells, err := p.GroupWells("controls")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B1"}, wells.Keys())

	_, err = p.GroupWells("missing")
	var nf ErrGroupNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.Group)

	wide, _ := ParseWellGroup("wide", "A13")
	ok, _ := ParseWellGroup("ok", "A2")
	_, err = p.AddGroups(ok, wide)
	var bv *BoundsViolation
	require.ErrorAs(t, err, &bv)
	assert.Equal(t, "wide", bv.Group)
	assert.Contains(t, bv.Error(), "group wide")
	assert.Equal(t, 1, p.GroupCount(), "group batch is all-or-nothing")

	controls.Add(MustParseCoordinate("D1"))
	g, _ := p.Group("controls")
	assert.Equal(t, 3, g.Len(), "plate keeps its own copy of the group")

	assert.True(t, p.RemoveGroups("controls"))
	assert.Empty(t, p.Groups())
}

func TestPlate_MutationsAndQueries(t *testing.T) {
	p := newTestPlate(t, "p", "A1", "A2", "B5", "H12")
	assert.True(t, p.Contains(MustParseCoordinate("B5")))
	assert.True(t, p.RemoveCoordinates(MustParseCoordinate("A2")))
	assert.True(t, p.Remove(MustParseWell("A1")))
	assert.True(t, p.RetainCoordinates(MustParseCoordinate("H12")))
	assert.False(t, p.Retain(MustParseWell("H12")))
	assert.Equal(t, 1, p.Len())
	assert.False(t, p.IsEmpty())

	_, ok := p.Floor(MustParseCoordinate("H11"))
	assert.False(t, ok, "nothing at or before H11")
	w, ok := p.Ceiling(MustParseCoordinate("A1"))
	require.True(t, ok)
	assert.Equal(t, "H12", w.Key())
	_, ok = p.Lower(MustParseCoordinate("H12"))
	assert.False(t, ok)
	_, ok = p.Higher(MustParseCoordinate("H12"))
	assert.False(t, ok)
	_, ok = p.Get(MustParseCoordinate("H12"))
	assert.True(t, ok)

	set := p.WellSet()
	set.Add(NewWell(Coordinate{Row: 50, Column: 50}))
	assert.Equal(t, 1, p.Len(), "WellSet returns a detached copy")
}

func TestPlate_SubPlate(t *testing.T) {
	p := newTestPlate(t, "p", "A1", "A5", "B2", "B3", "C2", "D4")
	g, _ := ParseWellGroup("g", "B2", "D4")
	_, err := p.AddGroups(g)
	require.NoError(t, err)
	empty, _ := ParseWellGroup("far", "H12")
	_, err = p.AddGroups(empty)
	require.NoError(t, err)

	sub := p.SubPlate(MustParseCoordinate("C3"), MustParseCoordinate("B2"))
	assert.Equal(t, []string{"B2", "B3", "C2"}, sub.Keys())
	assert.True(t, sub.SameShape(p))
	require.Equal(t, 1, sub.GroupCount())
	sg, _ := sub.Group("g")
	assert.Equal(t, []string{"B2"}, sg.Keys())

	sub = p.SubPlate(MustParseCoordinate("B2"), MustParseCoordinate("C2"))
	assert.Equal(t, []string{"B2", "C2"}, sub.Keys())
}

func TestPlate_CloneIsDeep(t *testing.T) {
	p := newTestPlate(t, "p", "A1")
	g, _ := ParseWellGroup("g", "A1")
	p.AddGroups(g)
	c := p.Clone()
	w, _ := p.GetKey("A1")
	w.Append(100)
	cw, _ := c.GetKey("A1")
	assert.Equal(t, []float64{1}, cw.Data())
	assert.False(t, p.Equal(c))
	cw.Append(100)
	assert.True(t, p.Equal(c))
	assert.Equal(t, 1, c.GroupCount())
	assert.Contains(t, p.String(), "p[8x12 96-well]")
}

func TestComparePlates(t *testing.T) {
	mk := func(name string, rows, cols int, keys ...string) *Plate {
		p, err := NewPlate(name, rows, cols, "")
		require.NoError(t, err)
		for _, k := range keys {
			_, err := p.Add(MustParseWell(k))
			require.NoError(t, err)
		}
		return p
	}
	plates := []*Plate{
		mk("b", 8, 12),
		mk("a", 8, 12, "A1", "A2"),
		mk("a", 8, 12, "A1"),
		mk("a", 4, 6),
		mk("a", 8, 10),
		mk("a", 8, 12, "A1", "A3"),
	}
	slices.SortFunc(plates, ComparePlates)
	got := make([]string, len(plates))
	for i, p := range plates {
		got[i] = p.String()
	}
	want := []string{
		"a[4x6]{}",
		"a[8x10]{}",
		"a[8x12]{A1[]}",
		"a[8x12]{A1[] A2[]}",
		"a[8x12]{A1[] A3[]}",
		"b[8x12]{}",
	}
	assert.Equal(t, want, got)

	withGroup := mk("a", 8, 12, "A1")
	g, _ := ParseWellGroup("g", "A1")
	withGroup.AddGroups(g)
	assert.Negative(t, ComparePlates(mk("a", 8, 12, "A1"), withGroup))
}

func TestPlate_GroupAccessorsReturnCopies(t *testing.T) {
	p, err := NewPlate("p", 8, 12, "96-well")
	require.NoError(t, err)
	ctrl, _ := ParseWellGroup("ctrl", "A1")
	_, err = p.AddGroups(ctrl)
	require.NoError(t, err)

	g, ok := p.Group("ctrl")
	require.True(t, ok)
	_, err = g.Add(MustParseCoordinate("K1"))
	require.NoError(t, err)
	got, _ := p.Group("ctrl")
	assert.Equal(t, []string{"A1"}, got.Keys(), "Group hands out a detached copy")

	for _, g := range p.Groups() {
		_, err := g.Add(MustParseCoordinate("Z40"))
		require.NoError(t, err)
	}
	for _, g := range p.Groups() {
		for _, c := range g.Coordinates() {
			assert.True(t, p.InBounds(c), "group %s holds %s", g.Name(), c)
		}
	}

	_, ok = p.Group("missing")
	assert.False(t, ok)
}

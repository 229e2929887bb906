package domain

import (
	"fmt"
	"slices"
)

// Well is a sample well: a coordinate plus an ordered numeric sequence.
// Containers treat two wells as the same member when their coordinates match,
// whatever their data.
type Well struct {
	coord Coordinate
	data  []float64
}

// NewWell returns a well holding a copy of data.
func NewWell(c Coordinate, data ...float64) *Well {
	return &Well{coord: c, data: slices.Clone(data)}
}

// ParseWell builds a well from a canonical coordinate string.
func ParseWell(key string, data ...float64) (*Well, error) {
	c, err := ParseCoordinate(key)
	if err != nil {
		return nil, err
	}
	return NewWell(c, data...), nil
}

// MustParseWell is ParseWell that panics on error.
func MustParseWell(key string, data ...float64) *Well {
	w, err := ParseWell(key, data...)
	if err != nil {
		panic(err)
	}
	return w
}

// Coordinate returns the well position.
func (w *Well) Coordinate() Coordinate { return w.coord }

// Key returns the canonical coordinate string.
func (w *Well) Key() string { return w.coord.String() }

// Row returns the 0-based row.
func (w *Well) Row() int { return w.coord.Row }

// Column returns the 1-based column.
func (w *Well) Column() int { return w.coord.Column }

// Len returns the number of values held.
func (w *Well) Len() int { return len(w.data) }

// Data returns a copy of the values.
func (w *Well) Data() []float64 { return slices.Clone(w.data) }

// Value returns the value at index i.
func (w *Well) Value(i int) (float64, bool) {
	if i < 0 || i >= len(w.data) {
		return 0, false
	}
	return w.data[i], true
}

// Set overwrites the value at index i in place.
func (w *Well) Set(i int, v float64) error {
	if i < 0 || i >= len(w.data) {
		return fmt.Errorf("well %s: index %d out of range [0,%d)", w.Key(), i, len(w.data))
	}
	w.data[i] = v
	return nil
}

// Append adds values to the end of the sequence.
func (w *Well) Append(values ...float64) {
	w.data = append(w.data, values...)
}

// Replace swaps the whole sequence for a copy of data.
func (w *Well) Replace(data []float64) {
	w.data = slices.Clone(data)
}

// Clone returns a deep copy.
func (w *Well) Clone() *Well {
	return NewWell(w.coord, w.data...)
}

// Equal reports whether both wells have the same coordinate and values.
func (w *Well) Equal(o *Well) bool {
	if w == nil || o == nil {
		return w == o
	}
	return w.coord == o.coord && slices.Equal(w.data, o.data)
}

// String renders the well for debugging.
func (w *Well) String() string {
	return fmt.Sprintf("%s%v", w.Key(), w.data)
}

// CompareWells orders wells by coordinate.
func CompareWells(a, b *Well) int { return a.coord.Compare(b.coord) }

func wellKey(w *Well) string { return w.Key() }

func cloneWell(w *Well) *Well { return w.Clone() }

func probeWell(key string) (*Well, bool) {
	c, err := ParseCoordinate(key)
	if err != nil {
		return nil, false
	}
	return &Well{coord: c}, true
}

// Package domain defines the plate hierarchy: coordinates, sample wells, well
// groups, well sets, bounded plates and stacks of plates.
//
// Every collection is backed by an orderedset.Set and deep-copies the members
// it receives, so no two containers ever alias a well, group or plate.
// Mutating calls (Add, Remove, Retain) are all-or-nothing: a batch is fully
// validated before the receiver is touched.
package domain

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinColumn is the lowest valid column number. Columns are 1-based while rows
// are 0-based, matching the printed labels on physical plates (A1 is row 0).
const MinColumn = 1

// maxRowLetters caps decoded row labels well below int overflow.
const maxRowLetters = 10

// MaxRow is the largest row index, encoded as ten Zs.
const MaxRow int64 = 146813779479509

// ErrInvalidCoordinate is returned for negative rows, columns below MinColumn
// and malformed coordinate strings.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate identifies a well position on a plate.
type Coordinate struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// NewCoordinate validates and returns a coordinate.
func NewCoordinate(row, column int) (Coordinate, error) {
	c := Coordinate{Row: row, Column: column}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("%w: row %d column %d", ErrInvalidCoordinate, row, column)
	}
	return c, nil
}

// ParseCoordinate decodes a canonical coordinate string such as "A1" or
// "AB12". Row letters are case-insensitive.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	split := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if split <= 0 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	row, err := RowIndex(strings.ToUpper(s[:split]))
	if err != nil {
		return Coordinate{}, err
	}
	column, err := strconv.Atoi(s[split:])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	return NewCoordinate(row, column)
}

// MustParseCoordinate is ParseCoordinate that panics on error. It is meant
// for literals in tests and fixtures.
func MustParseCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether the row and column are within the coordinate domain.
func (c Coordinate) Valid() bool {
	return c.Row >= 0 && int64(c.Row) <= MaxRow && c.Column >= MinColumn
}

// String returns the canonical encoding: row letters followed by the column.
func (c Coordinate) String() string {
	return RowLetters(c.Row) + strconv.Itoa(c.Column)
}

// Compare orders coordinates by row, then column.
func (c Coordinate) Compare(o Coordinate) int {
	if r := cmp.Compare(c.Row, o.Row); r != 0 {
		return r
	}
	return cmp.Compare(c.Column, o.Column)
}

// Within reports whether c lies inside a plate of the given dimensions.
func (c Coordinate) Within(rows, columns int) bool {
	return c.Row >= 0 && c.Row < rows && c.Column >= MinColumn && c.Column <= columns
}

// CompareCoordinates is Coordinate.Compare as a free function.
func CompareCoordinates(a, b Coordinate) int { return a.Compare(b) }

// RowLetters encodes a row index in bijective base 26: 0 is "A", 25 is "Z",
// 26 is "AA". Rows outside [0, MaxRow] encode as the empty string.
func RowLetters(row int) string {
	if row < 0 || int64(row) > MaxRow {
		return ""
	}
	var buf [maxRowLetters + 4]byte
	i := len(buf)
	for n := row + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// RowIndex decodes upper-case row letters produced by RowLetters.
func RowIndex(letters string) (int, error) {
	if letters == "" || len(letters) > maxRowLetters {
		return 0, fmt.Errorf("%w: row %q", ErrInvalidCoordinate, letters)
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		ch := letters[i]
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: row %q", ErrInvalidCoordinate, letters)
		}
		n = n*26 + int(ch-'A') + 1
	}
	return n - 1, nil
}

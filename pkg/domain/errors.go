package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a plate is created with fewer than one
// row or column.
var ErrInvalidDimensions = errors.New("invalid plate dimensions")

// BoundsViolation is returned when a well or group position falls outside a
// plate. The offending call leaves the plate unchanged.
type BoundsViolation struct {
	Plate      string
	Group      string
	Coordinate Coordinate
	Rows       int
	Columns    int
}

func (e *BoundsViolation) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("group %s: coordinate %s outside plate %s (%d rows x %d columns)",
			e.Group, e.Coordinate, e.Plate, e.Rows, e.Columns)
	}
	return fmt.Sprintf("coordinate %s outside plate %s (%d rows x %d columns)",
		e.Coordinate, e.Plate, e.Rows, e.Columns)
}

// ShapeMismatchError is returned when a plate joining a stack does not share
// the stack's rows, columns and plate type.
type ShapeMismatchError struct {
	Stack string
	Plate string
	Want  Shape
	Got   Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("plate %s shape %s does not match stack %s shape %s", e.Plate, e.Got, e.Stack, e.Want)
}

// ErrGroupNotFound is returned when a plate has no group with the requested name.
type ErrGroupNotFound struct {
	Plate string
	Group string
}

func (e ErrGroupNotFound) Error() string {
	return fmt.Sprintf("plate %s has no group %s", e.Plate, e.Group)
}

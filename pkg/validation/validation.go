// Package validation holds the argument checks shared by the operation
// engine and the statistics package: shape predicates, range validation and
// the errors reported when a call does not match any accepted shape.
package validation

import (
	"fmt"
	"strings"

	"microplate/pkg/domain"
)

// ArgumentShapeError reports a positional argument combination that matches
// none of an entry point's declared shapes.
type ArgumentShapeError struct {
	Operation string
	Got       []string
	Accepted  []string
}

// NewArgumentShapeError describes args and records the accepted shapes.
func NewArgumentShapeError(operation string, args []any, accepted []string) *ArgumentShapeError {
	got := make([]string, len(args))
	for i, a := range args {
		got[i] = Describe(a)
	}
	return &ArgumentShapeError{Operation: operation, Got: got, Accepted: accepted}
}

func (e *ArgumentShapeError) Error() string {
	return fmt.Sprintf("%s: unsupported arguments (%s); accepted: %s",
		e.Operation, strings.Join(e.Got, ", "), strings.Join(e.Accepted, " | "))
}

// RangeError reports an invalid [begin,end) index pair.
type RangeError struct {
	Begin int
	End   int
}

func (e *RangeError) Error() string {
	switch {
	case e.Begin < 0:
		return fmt.Sprintf("invalid range [%d,%d): begin must be >= 0", e.Begin, e.End)
	default:
		return fmt.Sprintf("invalid range [%d,%d): end must be >= begin", e.Begin, e.End)
	}
}

// ValidateRange fails when begin < 0 or end < begin.
func ValidateRange(begin, end int) error {
	if begin < 0 || end < begin {
		return &RangeError{Begin: begin, End: end}
	}
	return nil
}

// Describe names the shape of an argument for error messages.
func Describe(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case *domain.Well:
		return "well"
	case *domain.WellSet:
		return "wellset"
	case *domain.Plate:
		return "plate"
	case *domain.Stack:
		return "stack"
	case []float64:
		return "numbers"
	case float64:
		return "number"
	case int:
		return "int"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// IsWell reports whether v is a non-nil well.
func IsWell(v any) bool {
	w, ok := v.(*domain.Well)
	return ok && w != nil
}

// IsWellSet reports whether v is a non-nil well set.
func IsWellSet(v any) bool {
	s, ok := v.(*domain.WellSet)
	return ok && s != nil
}

// IsPlate reports whether v is a non-nil plate.
func IsPlate(v any) bool {
	p, ok := v.(*domain.Plate)
	return ok && p != nil
}

// IsStack reports whether v is a non-nil stack.
func IsStack(v any) bool {
	s, ok := v.(*domain.Stack)
	return ok && s != nil
}

// IsNumeric reports whether v is a numeric sequence.
func IsNumeric(v any) bool {
	_, ok := v.([]float64)
	return ok
}

// IsScalar reports whether v is a float64 or int constant.
func IsScalar(v any) bool {
	switch v.(type) {
	case float64, int:
		return true
	}
	return false
}

// Scalar converts a float64 or int constant.
func Scalar(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

// TrailingRange splits a trailing begin, end int pair off args. It reports
// false when the last two arguments are not both ints.
func TrailingRange(args []any) (rest []any, begin, end int, ok bool) {
	if len(args) < 2 {
		return args, 0, 0, false
	}
	b, okB := args[len(args)-2].(int)
	e, okE := args[len(args)-1].(int)
	if !okB || !okE {
		return args, 0, 0, false
	}
	return args[:len(args)-2], b, e, true
}

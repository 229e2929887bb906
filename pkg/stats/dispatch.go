package stats

import (
	"microplate/pkg/domain"
	"microplate/pkg/validation"
)

// Shapes lists the argument shapes accepted by Dispatch.
var Shapes = []string{
	"(well)", "(well, begin, end)",
	"(wellset)", "(wellset, begin, end)",
	"(plate)", "(plate, begin, end)",
	"(stack)", "(stack, begin, end)",
}

// Dispatch applies stat to a single container, optionally followed by begin
// and end. A well yields a float64, a well set or plate yields []Value and a
// stack yields []PlateValues.
func Dispatch(stat Statistic, args ...any) (any, error) {
	operand := args
	if rest, begin, end, ok := validation.TrailingRange(args); ok && len(rest) == 1 {
		w, err := stat.Window(begin, end)
		if err != nil {
			return nil, err
		}
		stat, operand = w, rest
	}
	if len(operand) == 1 {
		switch v := operand[0].(type) {
		case *domain.Well:
			if v != nil {
				return stat.Well(v), nil
			}
		case *domain.WellSet:
			if v != nil {
				return stat.Set(v), nil
			}
		case *domain.Plate:
			if v != nil {
				return stat.Plate(v), nil
			}
		case *domain.Stack:
			if v != nil {
				return stat.Stack(v), nil
			}
		}
	}
	return nil, validation.NewArgumentShapeError(stat.Name(), args, Shapes)
}

// DispatchMerged is Dispatch for the merged form: every value of the
// container is reduced to one number.
func DispatchMerged(stat Statistic, args ...any) (float64, error) {
	operand := args
	if rest, begin, end, ok := validation.TrailingRange(args); ok && len(rest) == 1 {
		w, err := stat.Window(begin, end)
		if err != nil {
			return 0, err
		}
		stat, operand = w, rest
	}
	if len(operand) == 1 {
		switch v := operand[0].(type) {
		case *domain.Well:
			if v != nil {
				return stat.merge([]*domain.Well{v})
			}
		case *domain.WellSet:
			if v != nil {
				return stat.MergeSet(v)
			}
		case *domain.Plate:
			if v != nil {
				return stat.MergePlate(v)
			}
		case *domain.Stack:
			if v != nil {
				return stat.MergeStack(v)
			}
		}
	}
	return 0, validation.NewArgumentShapeError(stat.Name(), args, Shapes)
}

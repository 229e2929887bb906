package operation

import (
	"microplate/pkg/domain"
	"microplate/pkg/validation"
)

var levels = []string{"well", "wellset", "plate", "stack"}

// BinaryShapes lists the argument shapes accepted by Binary.Apply.
var BinaryShapes = binaryShapes()

// UnaryShapes lists the argument shapes accepted by Unary.Apply.
var UnaryShapes = unaryShapes()

func binaryShapes() []string {
	var out []string
	for _, lvl := range levels {
		for _, other := range []string{lvl, "numbers", "number"} {
			s := "(" + lvl + ", " + other
			out = append(out, s+")", s+", begin, end)")
		}
	}
	return out
}

func unaryShapes() []string {
	var out []string
	for _, lvl := range levels {
		out = append(out, "("+lvl+")", "("+lvl+", begin, end)")
	}
	return out
}

// splitRange separates a trailing begin, end pair when exactly want operands
// precede it.
func splitRange(args []any, want int) ([]any, []Range) {
	if rest, begin, end, ok := validation.TrailingRange(args); ok && len(rest) == want {
		return rest, []Range{{Begin: begin, End: end}}
	}
	return args, nil
}

func isContainer(v any) bool {
	return validation.IsWell(v) || validation.IsWellSet(v) || validation.IsPlate(v) || validation.IsStack(v)
}

func result[T any](v T, err error) (any, bool, error) {
	if err != nil {
		return nil, true, err
	}
	return v, true, nil
}

// Apply resolves the positional argument convention: two operands, each
// optionally followed by begin and end. The first operand is a well, well
// set, plate or stack; the second is a container of the same level, a
// []float64 or a number. Anything else yields an
// *validation.ArgumentShapeError.
func (b *Binary) Apply(args ...any) (any, error) {
	operands, window := splitRange(args, 2)
	if len(operands) == 2 && isContainer(operands[0]) {
		if out, ok, err := b.apply(operands[0], operands[1], window); ok {
			return out, err
		}
	}
	err := validation.NewArgumentShapeError(b.name, args, BinaryShapes)
	b.opts.logger.Warn("argument shape rejected", "operation", b.name, "error", err)
	return nil, err
}

func (b *Binary) apply(x, y any, window []Range) (any, bool, error) {
	xs, isArray := y.([]float64)
	k, isScalar := validation.Scalar(y)
	switch a := x.(type) {
	case *domain.Well:
		switch {
		case validation.IsWell(y):
			return result(b.Well(a, y.(*domain.Well), window...))
		case isArray:
			return result(b.WellArray(a, xs, window...))
		case isScalar:
			return result(b.WellConstant(a, k, window...))
		}
	case *domain.WellSet:
		switch {
		case validation.IsWellSet(y):
			return result(b.Set(a, y.(*domain.WellSet), window...))
		case isArray:
			return result(b.SetArray(a, xs, window...))
		case isScalar:
			return result(b.SetConstant(a, k, window...))
		}
	case *domain.Plate:
		switch {
		case validation.IsPlate(y):
			return result(b.Plate(a, y.(*domain.Plate), window...))
		case isArray:
			return result(b.PlateArray(a, xs, window...))
		case isScalar:
			return result(b.PlateConstant(a, k, window...))
		}
	case *domain.Stack:
		switch {
		case validation.IsStack(y):
			return result(b.Stack(a, y.(*domain.Stack), window...))
		case isArray:
			return result(b.StackArray(a, xs, window...))
		case isScalar:
			return result(b.StackConstant(a, k, window...))
		}
	}
	return nil, false, nil
}

// Apply resolves a single container, optionally followed by begin and end.
func (u *Unary) Apply(args ...any) (any, error) {
	operands, window := splitRange(args, 1)
	if len(operands) == 1 {
		switch a := operands[0].(type) {
		case *domain.Well:
			if a != nil {
				return unwrap(result(u.Well(a, window...)))
			}
		case *domain.WellSet:
			if a != nil {
				return unwrap(result(u.Set(a, window...)))
			}
		case *domain.Plate:
			if a != nil {
				return unwrap(result(u.Plate(a, window...)))
			}
		case *domain.Stack:
			if a != nil {
				return unwrap(result(u.Stack(a, window...)))
			}
		}
	}
	err := validation.NewArgumentShapeError(u.name, args, UnaryShapes)
	u.opts.logger.Warn("argument shape rejected", "operation", u.name, "error", err)
	return nil, err
}

func unwrap(v any, _ bool, err error) (any, error) { return v, err }

package operation

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownOperator is returned by the Lookup functions.
var ErrUnknownOperator = errors.New("unknown operator")

// Addition adds elementwise.
func Addition(opts ...Option) *Binary {
	return NewBinary("addition", Elementwise(func(x, y float64) float64 { return x + y }, TailPassThrough), opts...)
}

// Subtraction subtracts elementwise.
func Subtraction(opts ...Option) *Binary {
	return NewBinary("subtraction", Elementwise(func(x, y float64) float64 { return x - y }, TailPassThrough), opts...)
}

// Multiplication multiplies elementwise.
func Multiplication(opts ...Option) *Binary {
	return NewBinary("multiplication", Elementwise(func(x, y float64) float64 { return x * y }, TailPassThrough), opts...)
}

// Division divides elementwise. Division by zero follows IEEE 754.
func Division(opts ...Option) *Binary {
	return NewBinary("division", Elementwise(func(x, y float64) float64 { return x / y }, TailPassThrough), opts...)
}

// Modulus computes the remainder elementwise. The result takes the sign of
// the dividend.
func Modulus(opts ...Option) *Binary {
	return NewBinary("modulus", Elementwise(math.Mod, TailPassThrough), opts...)
}

// BitwiseAnd ands the 32-bit integer values of both operands.
func BitwiseAnd(opts ...Option) *Binary {
	return NewBinary("bitwise_and", Elementwise(func(x, y float64) float64 {
		return float64(toInt32(x) & toInt32(y))
	}, TailPassThrough), opts...)
}

// BitwiseOr ors the 32-bit integer values of both operands.
func BitwiseOr(opts ...Option) *Binary {
	return NewBinary("bitwise_or", Elementwise(func(x, y float64) float64 {
		return float64(toInt32(x) | toInt32(y))
	}, TailPassThrough), opts...)
}

// BitwiseXor xors the 32-bit integer values of both operands.
func BitwiseXor(opts ...Option) *Binary {
	return NewBinary("bitwise_xor", Elementwise(func(x, y float64) float64 {
		return float64(toInt32(x) ^ toInt32(y))
	}, TailPassThrough), opts...)
}

// Increment adds one to every value.
func Increment(opts ...Option) *Unary {
	return NewUnary("increment", Pointwise(func(x float64) float64 { return x + 1 }), opts...)
}

// Decrement subtracts one from every value.
func Decrement(opts ...Option) *Unary {
	return NewUnary("decrement", Pointwise(func(x float64) float64 { return x - 1 }), opts...)
}

// LeftShift shifts the 32-bit integer value of every element left by bits.
// Only the low five bits of bits are used.
func LeftShift(bits int, opts ...Option) *Unary {
	n := uint(bits) & 31
	return NewUnary("left_shift", Pointwise(func(x float64) float64 {
		return float64(toInt32(x) << n)
	}), opts...)
}

// RightShift shifts the 32-bit integer value of every element right by bits,
// preserving the sign.
func RightShift(bits int, opts ...Option) *Unary {
	n := uint(bits) & 31
	return NewUnary("right_shift", Pointwise(func(x float64) float64 {
		return float64(toInt32(x) >> n)
	}), opts...)
}

// ZeroFillRightShift shifts the unsigned 32-bit value of every element right
// by bits, filling with zeros.
func ZeroFillRightShift(bits int, opts ...Option) *Unary {
	n := uint(bits) & 31
	return NewUnary("zero_fill_right_shift", Pointwise(func(x float64) float64 {
		return float64(uint32(toInt32(x)) >> n)
	}), opts...)
}

// toInt32 truncates x and wraps it into the signed 32-bit range. NaN and
// infinities become zero.
func toInt32(x float64) int32 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int32(uint32(int64(math.Mod(math.Trunc(x), 1<<32))))
}

var binaries = map[string]func(...Option) *Binary{
	"addition":       Addition,
	"subtraction":    Subtraction,
	"multiplication": Multiplication,
	"division":       Division,
	"modulus":        Modulus,
	"bitwise_and":    BitwiseAnd,
	"bitwise_or":     BitwiseOr,
	"bitwise_xor":    BitwiseXor,
}

var unaries = map[string]func(...Option) *Unary{
	"increment": Increment,
	"decrement": Decrement,
}

var shifts = map[string]func(int, ...Option) *Unary{
	"left_shift":            LeftShift,
	"right_shift":           RightShift,
	"zero_fill_right_shift": ZeroFillRightShift,
}

// LookupBinary builds the named two-operand operator.
func LookupBinary(name string, opts ...Option) (*Binary, error) {
	ctor, ok := binaries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}
	return ctor(opts...), nil
}

// LookupUnary builds the named unary operator.
func LookupUnary(name string, opts ...Option) (*Unary, error) {
	ctor, ok := unaries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}
	return ctor(opts...), nil
}

// LookupShift builds the named shift operator.
func LookupShift(name string, bits int, opts ...Option) (*Unary, error) {
	ctor, ok := shifts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}
	return ctor(bits, opts...), nil
}

// Names lists every built-in operator name in ascending order.
func Names() []string {
	out := make([]string, 0, len(binaries)+len(unaries)+len(shifts))
	for name := range binaries {
		out = append(out, name)
	}
	for name := range unaries {
		out = append(out, name)
	}
	for name := range shifts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

package operation

// BinaryFuncs is the transform record supplied by a two-operand operator.
// The engine never calls the element function directly; it only composes
// these four sequence transforms.
type BinaryFuncs struct {
	// Calc combines two whole sequences. The result is as long as the longer
	// operand.
	Calc func(a, b []float64) []float64
	// CalcRange combines the [begin,end) windows of both sequences.
	CalcRange func(a, b []float64, begin, end int) []float64
	// CalcConstant combines a sequence with a constant.
	CalcConstant func(a []float64, k float64) []float64
	// CalcConstantRange combines the [begin,end) window of a with a constant.
	CalcConstantRange func(a []float64, k float64, begin, end int) []float64
}

// UnaryFuncs is the transform record supplied by a unary or shift operator.
type UnaryFuncs struct {
	Calc      func(a []float64) []float64
	CalcRange func(a []float64, begin, end int) []float64
}

// Tail decides what happens to the part of the longer sequence that has no
// counterpart when two sequences of unequal length are combined.
type Tail struct {
	passThrough bool
	identity    float64
}

// TailPassThrough copies the remainder of the longer sequence unchanged.
var TailPassThrough = Tail{passThrough: true}

// TailIdentity combines the remainder against an implicit operand v, as if
// the shorter sequence had been padded with v.
func TailIdentity(v float64) Tail { return Tail{identity: v} }

// PassesThrough reports whether the remainder is copied unchanged.
func (t Tail) PassesThrough() bool { return t.passThrough }

// Elementwise derives a BinaryFuncs record from an element function.
func Elementwise(fn func(x, y float64) float64, tail Tail) BinaryFuncs {
	calc := func(a, b []float64) []float64 {
		n := min(len(a), len(b))
		out := make([]float64, max(len(a), len(b)))
		for i := 0; i < n; i++ {
			out[i] = fn(a[i], b[i])
		}
		for i := n; i < len(a); i++ {
			if tail.passThrough {
				out[i] = a[i]
			} else {
				out[i] = fn(a[i], tail.identity)
			}
		}
		for i := n; i < len(b); i++ {
			if tail.passThrough {
				out[i] = b[i]
			} else {
				out[i] = fn(tail.identity, b[i])
			}
		}
		return out
	}
	calcConstant := func(a []float64, k float64) []float64 {
		out := make([]float64, len(a))
		for i, x := range a {
			out[i] = fn(x, k)
		}
		return out
	}
	return BinaryFuncs{
		Calc: calc,
		CalcRange: func(a, b []float64, begin, end int) []float64 {
			return calc(window(a, begin, end), window(b, begin, end))
		},
		CalcConstant: calcConstant,
		CalcConstantRange: func(a []float64, k float64, begin, end int) []float64 {
			return calcConstant(window(a, begin, end), k)
		},
	}
}

// Pointwise derives a UnaryFuncs record from an element function.
func Pointwise(fn func(x float64) float64) UnaryFuncs {
	calc := func(a []float64) []float64 {
		out := make([]float64, len(a))
		for i, x := range a {
			out[i] = fn(x)
		}
		return out
	}
	return UnaryFuncs{
		Calc: calc,
		CalcRange: func(a []float64, begin, end int) []float64 {
			return calc(window(a, begin, end))
		},
	}
}

// window returns a[begin:end] with end clamped to len(a). It is empty when
// begin is at or past the clamped end.
func window(a []float64, begin, end int) []float64 {
	end = min(end, len(a))
	if begin >= end {
		return nil
	}
	return a[begin:end]
}

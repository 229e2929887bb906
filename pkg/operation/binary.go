package operation

import (
	"time"

	"microplate/pkg/domain"
)

const (
	modeStandard = "standard"
	modeStrict   = "strict"
)

// Binary is a two-operand operator. The zero mode is standard: keys are
// aligned by union and unmatched members are carried through unchanged.
// Strict returns a copy that aligns by intersection and truncates sequences
// to the shorter operand.
//
// Every entry point accepts at most one Range. Operands are never modified;
// results are new containers.
type Binary struct {
	name   string
	funcs  BinaryFuncs
	strict bool
	opts   options
}

// NewBinary builds an operator from a transform record.
func NewBinary(name string, funcs BinaryFuncs, opts ...Option) *Binary {
	return &Binary{name: name, funcs: funcs, opts: newOptions(opts)}
}

// Name returns the operator name used in logs and metrics.
func (b *Binary) Name() string { return b.name }

// IsStrict reports whether b aligns by intersection.
func (b *Binary) IsStrict() bool { return b.strict }

// Strict returns a strict copy of b.
func (b *Binary) Strict() *Binary {
	c := *b
	c.strict = true
	return &c
}

// Standard returns a standard copy of b.
func (b *Binary) Standard() *Binary {
	c := *b
	c.strict = false
	return &c
}

func (b *Binary) mode() string {
	if b.strict {
		return modeStrict
	}
	return modeStandard
}

func (b *Binary) pair(window []Range) (seqPair, error) {
	r, err := resolveWindow(b.name, window)
	if err != nil {
		return nil, err
	}
	f := b.funcs
	switch {
	case r == nil && !b.strict:
		return f.Calc, nil
	case r == nil:
		return func(x, y []float64) []float64 {
			n := min(len(x), len(y))
			return f.Calc(x[:n], y[:n])
		}, nil
	case !b.strict:
		return func(x, y []float64) []float64 {
			return f.CalcRange(x, y, r.Begin, r.End)
		}, nil
	default:
		return func(x, y []float64) []float64 {
			end := min(r.End, len(x), len(y))
			return f.CalcRange(x, y, min(r.Begin, end), end)
		}, nil
	}
}

func (b *Binary) array(xs []float64, window []Range) (seqOne, error) {
	fn, err := b.pair(window)
	if err != nil {
		return nil, err
	}
	return func(a []float64) []float64 { return fn(a, xs) }, nil
}

func (b *Binary) constant(k float64, window []Range) (seqOne, error) {
	r, err := resolveWindow(b.name, window)
	if err != nil {
		return nil, err
	}
	f := b.funcs
	if r == nil {
		return func(a []float64) []float64 { return f.CalcConstant(a, k) }, nil
	}
	return func(a []float64) []float64 { return f.CalcConstantRange(a, k, r.Begin, r.End) }, nil
}

// Well combines two wells. The result takes x's coordinate.
func (b *Binary) Well(x, y *domain.Well, window ...Range) (out *domain.Well, err error) {
	defer b.opts.track(b.name, b.mode(), levelWell, time.Now(), &err)
	fn, err := b.pair(window)
	if err != nil {
		return nil, err
	}
	return combineWells(x, y, fn), nil
}

// WellArray combines a well with a numeric sequence.
func (b *Binary) WellArray(x *domain.Well, xs []float64, window ...Range) (out *domain.Well, err error) {
	defer b.opts.track(b.name, b.mode(), levelWell, time.Now(), &err)
	fn, err := b.array(xs, window)
	if err != nil {
		return nil, err
	}
	return mapWell(x, fn), nil
}

// WellConstant combines a well with a constant.
func (b *Binary) WellConstant(x *domain.Well, k float64, window ...Range) (out *domain.Well, err error) {
	defer b.opts.track(b.name, b.mode(), levelWell, time.Now(), &err)
	fn, err := b.constant(k, window)
	if err != nil {
		return nil, err
	}
	return mapWell(x, fn), nil
}

// Set combines two well sets, pairing wells by coordinate.
func (b *Binary) Set(x, y *domain.WellSet, window ...Range) (out *domain.WellSet, err error) {
	defer b.opts.track(b.name, b.mode(), levelSet, time.Now(), &err)
	fn, err := b.pair(window)
	if err != nil {
		return nil, err
	}
	return combineSets(x, y, b.strict, fn), nil
}

// SetArray combines every well of x with a numeric sequence.
func (b *Binary) SetArray(x *domain.WellSet, xs []float64, window ...Range) (out *domain.WellSet, err error) {
	defer b.opts.track(b.name, b.mode(), levelSet, time.Now(), &err)
	fn, err := b.array(xs, window)
	if err != nil {
		return nil, err
	}
	return mapSet(x, fn), nil
}

// SetConstant combines every well of x with a constant.
func (b *Binary) SetConstant(x *domain.WellSet, k float64, window ...Range) (out *domain.WellSet, err error) {
	defer b.opts.track(b.name, b.mode(), levelSet, time.Now(), &err)
	fn, err := b.constant(k, window)
	if err != nil {
		return nil, err
	}
	return mapSet(x, fn), nil
}

// Plate combines two plates, pairing wells by coordinate. The result spans
// the larger dimensions in standard mode and the smaller ones in strict mode.
func (b *Binary) Plate(x, y *domain.Plate, window ...Range) (out *domain.Plate, err error) {
	defer b.opts.track(b.name, b.mode(), levelPlate, time.Now(), &err)
	fn, err := b.pair(window)
	if err != nil {
		return nil, err
	}
	return combinePlates(x, y, b.strict, fn)
}

// PlateArray combines every well of x with a numeric sequence.
func (b *Binary) PlateArray(x *domain.Plate, xs []float64, window ...Range) (out *domain.Plate, err error) {
	defer b.opts.track(b.name, b.mode(), levelPlate, time.Now(), &err)
	fn, err := b.array(xs, window)
	if err != nil {
		return nil, err
	}
	return mapPlate(x, fn)
}

// PlateConstant combines every well of x with a constant.
func (b *Binary) PlateConstant(x *domain.Plate, k float64, window ...Range) (out *domain.Plate, err error) {
	defer b.opts.track(b.name, b.mode(), levelPlate, time.Now(), &err)
	fn, err := b.constant(k, window)
	if err != nil {
		return nil, err
	}
	return mapPlate(x, fn)
}

// Stack combines two stacks, pairing plates by name.
func (b *Binary) Stack(x, y *domain.Stack, window ...Range) (out []*domain.Plate, err error) {
	defer b.opts.track(b.name, b.mode(), levelStack, time.Now(), &err)
	fn, err := b.pair(window)
	if err != nil {
		return nil, err
	}
	return combineStacks(x, y, b.strict, fn)
}

// StackArray combines every plate of x with a numeric sequence.
func (b *Binary) StackArray(x *domain.Stack, xs []float64, window ...Range) (out []*domain.Plate, err error) {
	defer b.opts.track(b.name, b.mode(), levelStack, time.Now(), &err)
	fn, err := b.array(xs, window)
	if err != nil {
		return nil, err
	}
	return eachPlate(x, func(p *domain.Plate) (*domain.Plate, error) { return mapPlate(p, fn) })
}

// StackConstant combines every plate of x with a constant.
func (b *Binary) StackConstant(x *domain.Stack, k float64, window ...Range) (out []*domain.Plate, err error) {
	defer b.opts.track(b.name, b.mode(), levelStack, time.Now(), &err)
	fn, err := b.constant(k, window)
	if err != nil {
		return nil, err
	}
	return eachPlate(x, func(p *domain.Plate) (*domain.Plate, error) { return mapPlate(p, fn) })
}

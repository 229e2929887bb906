package operation

import (
	"time"

	"microplate/pkg/domain"
)

const (
	levelWell  = "well"
	levelSet   = "set"
	levelPlate = "plate"
	levelStack = "stack"
)

// Unary is a one-operand operator such as increment or a bit shift.
type Unary struct {
	name  string
	funcs UnaryFuncs
	opts  options
}

// NewUnary builds an operator from a transform record.
func NewUnary(name string, funcs UnaryFuncs, opts ...Option) *Unary {
	return &Unary{name: name, funcs: funcs, opts: newOptions(opts)}
}

// Name returns the operator name used in logs and metrics.
func (u *Unary) Name() string { return u.name }

func (u *Unary) one(window []Range) (seqOne, error) {
	r, err := resolveWindow(u.name, window)
	if err != nil {
		return nil, err
	}
	f := u.funcs
	if r == nil {
		return f.Calc, nil
	}
	return func(a []float64) []float64 { return f.CalcRange(a, r.Begin, r.End) }, nil
}

// Well transforms a single well.
func (u *Unary) Well(x *domain.Well, window ...Range) (out *domain.Well, err error) {
	defer u.opts.track(u.name, modeStandard, levelWell, time.Now(), &err)
	fn, err := u.one(window)
	if err != nil {
		return nil, err
	}
	return mapWell(x, fn), nil
}

// Set transforms every well of a set.
func (u *Unary) Set(x *domain.WellSet, window ...Range) (out *domain.WellSet, err error) {
	defer u.opts.track(u.name, modeStandard, levelSet, time.Now(), &err)
	fn, err := u.one(window)
	if err != nil {
		return nil, err
	}
	return mapSet(x, fn), nil
}

// Plate transforms every well of a plate. Dimensions, type and groups are
// preserved.
func (u *Unary) Plate(x *domain.Plate, window ...Range) (out *domain.Plate, err error) {
	defer u.opts.track(u.name, modeStandard, levelPlate, time.Now(), &err)
	fn, err := u.one(window)
	if err != nil {
		return nil, err
	}
	return mapPlate(x, fn)
}

// Stack transforms every plate of a stack.
func (u *Unary) Stack(x *domain.Stack, window ...Range) (out []*domain.Plate, err error) {
	defer u.opts.track(u.name, modeStandard, levelStack, time.Now(), &err)
	fn, err := u.one(window)
	if err != nil {
		return nil, err
	}
	return eachPlate(x, func(p *domain.Plate) (*domain.Plate, error) { return mapPlate(p, fn) })
}

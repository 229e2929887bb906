package operation

import (
	"slices"
	"strings"

	"microplate/pkg/domain"
)

type seqPair func(a, b []float64) []float64

type seqOne func(a []float64) []float64

// wellSource is satisfied by both *domain.WellSet and *domain.Plate.
type wellSource interface {
	Name() string
	Wells() []*domain.Well
	Get(c domain.Coordinate) (*domain.Well, bool)
	Contains(c domain.Coordinate) bool
}

func resultName(names ...string) string {
	return "Result - " + strings.Join(names, ", ")
}

func mapWell(w *domain.Well, fn seqOne) *domain.Well {
	return domain.NewWell(w.Coordinate(), fn(w.Data())...)
}

func combineWells(a, b *domain.Well, fn seqPair) *domain.Well {
	return domain.NewWell(a.Coordinate(), fn(a.Data(), b.Data())...)
}

// alignWells pairs wells by coordinate. Unmatched wells are carried through
// unchanged unless strict is set, in which case they are dropped.
func alignWells(a, b wellSource, strict bool, fn seqPair) []*domain.Well {
	var out []*domain.Well
	for _, w := range a.Wells() {
		if o, ok := b.Get(w.Coordinate()); ok {
			out = append(out, combineWells(w, o, fn))
		} else if !strict {
			out = append(out, w)
		}
	}
	if strict {
		return out
	}
	for _, w := range b.Wells() {
		if !a.Contains(w.Coordinate()) {
			out = append(out, w)
		}
	}
	return out
}

func mapWells(src wellSource, fn seqOne) []*domain.Well {
	wells := src.Wells()
	out := make([]*domain.Well, len(wells))
	for i, w := range wells {
		out[i] = mapWell(w, fn)
	}
	return out
}

func combineSets(a, b *domain.WellSet, strict bool, fn seqPair) *domain.WellSet {
	return domain.NewWellSet(resultName(a.Name(), b.Name()), alignWells(a, b, strict, fn)...)
}

func mapSet(a *domain.WellSet, fn seqOne) *domain.WellSet {
	return domain.NewWellSet(resultName(a.Name()), mapWells(a, fn)...)
}

// alignGroups merges the group lists of two plates by name and clips every
// group to rows x columns. The first plate wins on name collisions.
func alignGroups(a, b *domain.Plate, strict bool, rows, columns int) []*domain.WellGroup {
	var out []*domain.WellGroup
	for _, g := range a.Groups() {
		if _, ok := b.Group(g.Name()); ok || !strict {
			out = append(out, g.Clip(rows, columns))
		}
	}
	if strict {
		return out
	}
	for _, g := range b.Groups() {
		if _, ok := a.Group(g.Name()); !ok {
			out = append(out, g.Clip(rows, columns))
		}
	}
	return out
}

func combinePlates(a, b *domain.Plate, strict bool, fn seqPair) (*domain.Plate, error) {
	rows, columns := max(a.Rows(), b.Rows()), max(a.Columns(), b.Columns())
	if strict {
		rows, columns = min(a.Rows(), b.Rows()), min(a.Columns(), b.Columns())
	}
	plateType := ""
	if a.Type() == b.Type() {
		plateType = a.Type()
	}
	out, err := domain.NewPlate(resultName(a.Name(), b.Name()), rows, columns, plateType)
	if err != nil {
		return nil, err
	}
	if _, err := out.Add(alignWells(a, b, strict, fn)...); err != nil {
		return nil, err
	}
	if _, err := out.AddGroups(alignGroups(a, b, strict, rows, columns)...); err != nil {
		return nil, err
	}
	return out, nil
}

func mapPlate(a *domain.Plate, fn seqOne) (*domain.Plate, error) {
	out, err := domain.NewPlate(resultName(a.Name()), a.Rows(), a.Columns(), a.Type())
	if err != nil {
		return nil, err
	}
	if _, err := out.Add(mapWells(a, fn)...); err != nil {
		return nil, err
	}
	if _, err := out.AddGroups(a.Groups()...); err != nil {
		return nil, err
	}
	return out, nil
}

// combineStacks pairs plates by name. Standard mode carries unmatched plates
// through as copies. The result is sorted by domain.ComparePlates.
func combineStacks(a, b *domain.Stack, strict bool, fn seqPair) ([]*domain.Plate, error) {
	var out []*domain.Plate
	for _, p := range a.Plates() {
		o, ok := b.Get(p.Name())
		if !ok {
			if !strict {
				out = append(out, p.Clone())
			}
			continue
		}
		r, err := combinePlates(p, o, strict, fn)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if !strict {
		for _, p := range b.Plates() {
			if !a.Contains(p.Name()) {
				out = append(out, p.Clone())
			}
		}
	}
	slices.SortFunc(out, domain.ComparePlates)
	return out, nil
}

// eachPlate applies fn to every plate of a stack and sorts the results.
func eachPlate(s *domain.Stack, fn func(p *domain.Plate) (*domain.Plate, error)) ([]*domain.Plate, error) {
	plates := s.Plates()
	out := make([]*domain.Plate, 0, len(plates))
	for _, p := range plates {
		r, err := fn(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	slices.SortFunc(out, domain.ComparePlates)
	return out, nil
}

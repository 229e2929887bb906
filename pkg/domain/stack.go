package domain

import (
	"slices"
	"strings"

	"microplate/pkg/orderedset"
)

// Stack is a named set of plates keyed by plate name. All members share the
// same rows, columns and plate type; the first plate added fixes the shape.
type Stack struct {
	name   string
	plates *orderedset.Set[*Plate]
	shape  Shape
}

// PlateBound is one end of a plate subrange.
type PlateBound = orderedset.Bound[*Plate]

// PlateAt bounds a plate subrange by ascending index.
func PlateAt(index int) PlateBound { return orderedset.At[*Plate](index) }

// PlateName bounds a plate subrange by plate name.
func PlateName(name string) PlateBound { return orderedset.ByKey[*Plate](name) }

func newPlateIndex() *orderedset.Set[*Plate] {
	return orderedset.New(plateKey, ComparePlates,
		orderedset.WithCloner(clonePlate),
		orderedset.WithProbe(probePlate))
}

// NewStack returns a stack holding copies of plates.
func NewStack(name string, plates ...*Plate) (*Stack, error) {
	s := &Stack{name: name, plates: newPlateIndex()}
	if _, err := s.Add(plates...); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the stack name.
func (s *Stack) Name() string { return s.name }

// SetName renames the stack.
func (s *Stack) SetName(name string) { s.name = name }

// Shape returns the shared member shape. It is false for an empty stack.
func (s *Stack) Shape() (Shape, bool) {
	if s.plates.IsEmpty() {
		return Shape{}, false
	}
	return s.shape, true
}

// Add inserts copies of plates whose name is not yet present. When any plate
// differs in shape from the stack (or from the first plate of the batch on an
// empty stack) a *ShapeMismatchError is returned and nothing is added.
func (s *Stack) Add(plates ...*Plate) (bool, error) {
	if len(plates) == 0 {
		return false, nil
	}
	want, ok := s.Shape()
	if !ok {
		want = plates[0].Shape()
	}
	for _, p := range plates {
		if got := p.Shape(); got != want {
			return false, &ShapeMismatchError{Stack: s.name, Plate: p.Name(), Want: want, Got: got}
		}
	}
	s.shape = want
	return s.plates.Add(plates...), nil
}

// Remove deletes plates sharing a name with any of plates.
func (s *Stack) Remove(plates ...*Plate) bool { return s.plates.Remove(plates...) }

// RemoveNames deletes the named plates.
func (s *Stack) RemoveNames(names ...string) bool { return s.plates.RemoveKeys(names...) }

// Retain keeps only plates sharing a name with one of plates.
func (s *Stack) Retain(plates ...*Plate) bool { return s.plates.Retain(plates...) }

// RetainNames keeps only the named plates.
func (s *Stack) RetainNames(names ...string) bool { return s.plates.RetainKeys(names...) }

// Contains reports whether a plate with the given name is a member.
func (s *Stack) Contains(name string) bool { return s.plates.ContainsKey(name) }

// Get returns a copy of the named plate.
func (s *Stack) Get(name string) (*Plate, bool) { return copyPlate(s.plates.Get(name)) }

// Len returns the number of plates.
func (s *Stack) Len() int { return s.plates.Len() }

// IsEmpty reports whether the stack has no plates.
func (s *Stack) IsEmpty() bool { return s.plates.IsEmpty() }

// Plates returns copies of the members ordered by ComparePlates.
func (s *Stack) Plates() []*Plate { return copyPlates(s.plates.Snapshot()) }

// Names returns member names in ascending order.
func (s *Stack) Names() []string { return s.plates.Keys() }

// Clone returns a deep copy.
func (s *Stack) Clone() *Stack {
	return &Stack{name: s.name, plates: s.plates.Clone(), shape: s.shape}
}

// Floor returns the member with the greatest name <= name.
func (s *Stack) Floor(name string) (*Plate, bool) { return copyPlate(s.plates.FloorKey(name)) }

// Ceiling returns the member with the least name >= name.
func (s *Stack) Ceiling(name string) (*Plate, bool) { return copyPlate(s.plates.CeilingKey(name)) }

// Lower returns the member with the greatest name < name.
func (s *Stack) Lower(name string) (*Plate, bool) { return copyPlate(s.plates.LowerKey(name)) }

// Higher returns the member with the least name > name.
func (s *Stack) Higher(name string) (*Plate, bool) { return copyPlate(s.plates.HigherKey(name)) }

// Subrange returns copies of the members between begin and end inclusive.
func (s *Stack) Subrange(begin, end PlateBound) []*Plate {
	return copyPlates(s.plates.Subrange(begin, end))
}

// SubStack returns a stack holding copies of the plates named between first
// and last inclusive.
func (s *Stack) SubStack(first, last string) *Stack {
	out := &Stack{name: s.name, plates: newPlateIndex(), shape: s.shape}
	out.plates.Add(s.plates.Subrange(PlateName(first), PlateName(last))...)
	return out
}

// String renders the stack for debugging.
func (s *Stack) String() string {
	return s.name + "{" + strings.Join(s.Names(), ",") + "}"
}

// CompareStacks orders stacks by name, size and then plate by plate.
func CompareStacks(a, b *Stack) int {
	if r := strings.Compare(a.name, b.name); r != 0 {
		return r
	}
	if r := a.Len() - b.Len(); r != 0 {
		return r
	}
	return slices.CompareFunc(a.plates.Snapshot(), b.plates.Snapshot(), ComparePlates)
}

// Members are handed out as copies so a renamed plate cannot desync the
// name index.
func copyPlate(p *Plate, ok bool) (*Plate, bool) {
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func copyPlates(plates []*Plate) []*Plate {
	for i, p := range plates {
		plates[i] = p.Clone()
	}
	return plates
}

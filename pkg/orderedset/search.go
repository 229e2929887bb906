package orderedset

// Floor returns the greatest member <= x.
func (s *Set[T]) Floor(x T) (T, bool) { return s.at(s.upper(x) - 1) }

// Ceiling returns the least member >= x.
func (s *Set[T]) Ceiling(x T) (T, bool) { return s.at(s.lower(x)) }

// Lower returns the greatest member strictly below x.
func (s *Set[T]) Lower(x T) (T, bool) { return s.at(s.lower(x) - 1) }

// Higher returns the least member strictly above x.
func (s *Set[T]) Higher(x T) (T, bool) { return s.at(s.upper(x)) }

// FloorKey is Floor for a key. Absent keys are positioned with the probe.
func (s *Set[T]) FloorKey(key string) (T, bool) {
	return s.byProbe(key, s.Floor)
}

// CeilingKey is Ceiling for a key.
func (s *Set[T]) CeilingKey(key string) (T, bool) {
	return s.byProbe(key, s.Ceiling)
}

// LowerKey is Lower for a key.
func (s *Set[T]) LowerKey(key string) (T, bool) {
	return s.byProbe(key, s.Lower)
}

// HigherKey is Higher for a key.
func (s *Set[T]) HigherKey(key string) (T, bool) {
	return s.byProbe(key, s.Higher)
}

func (s *Set[T]) byProbe(key string, fn func(T) (T, bool)) (T, bool) {
	x, ok := s.resolveKey(key)
	if !ok {
		var zero T
		return zero, false
	}
	return fn(x)
}

// resolveKey maps a key onto a comparable item: the member itself when the
// key is present, otherwise whatever the probe builds.
func (s *Set[T]) resolveKey(key string) (T, bool) {
	if item, ok := s.byKey[key]; ok {
		return item, true
	}
	if s.probe != nil {
		return s.probe(key)
	}
	var zero T
	return zero, false
}

type boundKind uint8

const (
	boundIndex boundKind = iota
	boundKey
	boundItem
)

// Bound is one end of a Subrange. Build it with At, ByKey or ByItem.
type Bound[T any] struct {
	kind  boundKind
	index int
	key   string
	item  T
}

// At bounds a subrange by a raw ascending index.
func At[T any](index int) Bound[T] { return Bound[T]{kind: boundIndex, index: index} }

// ByKey bounds a subrange by a member key.
func ByKey[T any](key string) Bound[T] { return Bound[T]{kind: boundKey, key: key} }

// ByItem bounds a subrange by an item, member or not.
func ByItem[T any](item T) Bound[T] { return Bound[T]{kind: boundItem, item: item} }

// Subrange returns the inclusive ascending slice between begin and end.
// A key or item begin resolves to the ceiling index and a key or item end to
// the floor index; raw indexes are clamped into range. The result is empty
// when begin lies beyond the last member or end precedes the first.
func (s *Set[T]) Subrange(begin, end Bound[T]) []T {
	n := len(s.items)
	b, okB := s.beginIndex(begin)
	e, okE := s.endIndex(end)
	if !okB || !okE || n == 0 || b >= n || e < 0 || b > e {
		return []T{}
	}
	out := make([]T, e-b+1)
	copy(out, s.items[b:e+1])
	return out
}

func (s *Set[T]) beginIndex(b Bound[T]) (int, bool) {
	switch b.kind {
	case boundIndex:
		return max(b.index, 0), true
	case boundKey:
		x, ok := s.resolveKey(b.key)
		if !ok {
			return 0, false
		}
		return s.lower(x), true
	default:
		return s.lower(b.item), true
	}
}

func (s *Set[T]) endIndex(b Bound[T]) (int, bool) {
	switch b.kind {
	case boundIndex:
		return min(b.index, len(s.items)-1), true
	case boundKey:
		x, ok := s.resolveKey(b.key)
		if !ok {
			return 0, false
		}
		return s.upper(x) - 1, true
	default:
		return s.upper(b.item) - 1, true
	}
}

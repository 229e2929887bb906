// Package orderedset provides a sorted, deduplicated container keyed by a
// derived string. Every collection level of the plate hierarchy (well sets,
// plate groups, stacks) is built on Set.
//
// Members are kept in ascending order under a caller supplied comparator while
// identity (and therefore deduplication) is decided by the key function. The
// two are allowed to disagree on ordering: coordinate keys sort as strings
// ("A10" < "A2") while wells sort by row and column.
//
// A Set is not safe for concurrent mutation.
package orderedset

import (
	"slices"
	"sort"
)

// Option configures a Set.
type Option[T any] func(*Set[T])

// WithCloner installs a deep-copy function. It is applied to every item on
// insert and by Clone so a set never shares members with its caller.
func WithCloner[T any](fn func(T) T) Option[T] {
	return func(s *Set[T]) { s.clone = fn }
}

// WithProbe installs a function that builds a comparable stand-in for a key
// that is not a member. Key based order statistics use it to position keys
// that are absent from the set.
func WithProbe[T any](fn func(key string) (T, bool)) Option[T] {
	return func(s *Set[T]) { s.probe = fn }
}

// Set is an ordered, deduplicated collection of items.
type Set[T any] struct {
	key     func(T) string
	compare func(a, b T) int
	clone   func(T) T
	probe   func(string) (T, bool)

	items []T
	byKey map[string]T
}

// New constructs an empty set. key derives the identity of an item and
// compare orders two items (negative, zero or positive, as cmp.Compare).
func New[T any](key func(T) string, compare func(a, b T) int, opts ...Option[T]) *Set[T] {
	s := &Set[T]{
		key:     key,
		compare: compare,
		byKey:   make(map[string]T),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add inserts items whose key is not yet present. Items with an existing key
// are ignored, including later duplicates within the same call. It reports
// whether the set changed.
func (s *Set[T]) Add(items ...T) bool {
	changed := false
	for _, item := range items {
		k := s.key(item)
		if _, ok := s.byKey[k]; ok {
			continue
		}
		if s.clone != nil {
			item = s.clone(item)
		}
		i := s.upper(item)
		s.items = slices.Insert(s.items, i, item)
		s.byKey[k] = item
		changed = true
	}
	return changed
}

// Remove deletes the members sharing a key with any of items.
func (s *Set[T]) Remove(items ...T) bool {
	return s.RemoveKeys(s.keysOf(items)...)
}

// RemoveKeys deletes the members with the given keys. Unknown keys are ignored.
func (s *Set[T]) RemoveKeys(keys ...string) bool {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := s.byKey[k]; ok {
			drop[k] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return false
	}
	s.items = slices.DeleteFunc(s.items, func(item T) bool {
		_, ok := drop[s.key(item)]
		return ok
	})
	for k := range drop {
		delete(s.byKey, k)
	}
	return true
}

// Retain keeps only the members sharing a key with one of items.
func (s *Set[T]) Retain(items ...T) bool {
	return s.RetainKeys(s.keysOf(items)...)
}

// RetainKeys keeps only the members whose key is listed.
func (s *Set[T]) RetainKeys(keys ...string) bool {
	keep := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keep[k] = struct{}{}
	}
	var drop []string
	for k := range s.byKey {
		if _, ok := keep[k]; !ok {
			drop = append(drop, k)
		}
	}
	return s.RemoveKeys(drop...)
}

// Clear removes every member.
func (s *Set[T]) Clear() {
	s.items = nil
	s.byKey = make(map[string]T)
}

// Contains reports whether a member shares item's key.
func (s *Set[T]) Contains(item T) bool {
	return s.ContainsKey(s.key(item))
}

// ContainsKey reports whether key is present.
func (s *Set[T]) ContainsKey(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

// Get returns the member stored under key.
func (s *Set[T]) Get(key string) (T, bool) {
	item, ok := s.byKey[key]
	return item, ok
}

// GetItem returns the member sharing item's key.
func (s *Set[T]) GetItem(item T) (T, bool) {
	return s.Get(s.key(item))
}

// Key returns the identity key of item under this set's key function.
func (s *Set[T]) Key(item T) string {
	return s.key(item)
}

// Len returns the number of members.
func (s *Set[T]) Len() int { return len(s.items) }

// IsEmpty reports whether the set has no members.
func (s *Set[T]) IsEmpty() bool { return len(s.items) == 0 }

// Snapshot returns the members in ascending order. The slice is a copy; the
// members themselves are shared with the set.
func (s *Set[T]) Snapshot() []T {
	return slices.Clone(s.items)
}

// Keys returns member keys in ascending member order.
func (s *Set[T]) Keys() []string {
	out := make([]string, len(s.items))
	for i, item := range s.items {
		out[i] = s.key(item)
	}
	return out
}

// First returns the least member.
func (s *Set[T]) First() (T, bool) { return s.at(0) }

// Last returns the greatest member.
func (s *Set[T]) Last() (T, bool) { return s.at(len(s.items) - 1) }

// Clone returns a set with the same configuration and deep copies of every
// member when a cloner is configured.
func (s *Set[T]) Clone() *Set[T] {
	out := &Set[T]{
		key:     s.key,
		compare: s.compare,
		clone:   s.clone,
		probe:   s.probe,
		items:   make([]T, len(s.items)),
		byKey:   make(map[string]T, len(s.items)),
	}
	for i, item := range s.items {
		if s.clone != nil {
			item = s.clone(item)
		}
		out.items[i] = item
		out.byKey[s.key(item)] = item
	}
	return out
}

func (s *Set[T]) keysOf(items []T) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = s.key(item)
	}
	return keys
}

func (s *Set[T]) at(i int) (T, bool) {
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// lower returns the index of the first member >= x.
func (s *Set[T]) lower(x T) int {
	return sort.Search(len(s.items), func(i int) bool {
		return s.compare(s.items[i], x) >= 0
	})
}

// upper returns the index of the first member > x.
func (s *Set[T]) upper(x T) int {
	return sort.Search(len(s.items), func(i int) bool {
		return s.compare(s.items[i], x) > 0
	})
}

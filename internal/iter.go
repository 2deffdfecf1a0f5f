package internal

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// SortedAll iterates over a map in ascending key order.
func SortedAll[K cmp.Ordered, V any](m map[K]V) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, key := range slices.Sorted(maps.Keys(m)) {
			if !yield(key, m[key]) {
				return
			}
		}
	}
}

// OrderedSet is a set that remembers insertion order, so that picking
// from it with a seeded source is reproducible.
type OrderedSet[T comparable] struct {
	items []T
	index map[T]int
}

// Add inserts value, returning false if it was already present.
func (set *OrderedSet[T]) Add(value T) bool {
	if set.index == nil {
		set.index = make(map[T]int)
	}
	if set.Has(value) {
		return false
	}
	set.index[value] = len(set.items)
	set.items = append(set.items, value)
	return true
}

// Has reports membership.
func (set *OrderedSet[T]) Has(value T) bool {
	_, ok := set.index[value]
	return ok
}

// Len is the number of members.
func (set *OrderedSet[T]) Len() int {
	return len(set.items)
}

// At returns the n'th member in insertion order.
func (set *OrderedSet[T]) At(n int) T {
	return set.items[n]
}

// Values returns a copy of the members in insertion order.
func (set *OrderedSet[T]) Values() []T {
	return slices.Clone(set.items)
}

// Truncate keeps the first n members, in insertion order.
func (set *OrderedSet[T]) Truncate(n int) {
	if n >= len(set.items) {
		return
	}
	for _, value := range set.items[n:] {
		delete(set.index, value)
	}
	set.items = set.items[:n]
}

// Clear empties the set.
func (set *OrderedSet[T]) Clear() {
	set.items = nil
	set.index = nil
}

package set

import (
	"iter"
	"math"
)

// endIndex is the bucket index of the end sentinel.
const endIndex = math.MaxInt

// Iterator is a forward cursor over the keys of a Set, visiting buckets in
// index order and each chain front to back. Iterators are comparable with ==;
// two iterators are equal when they refer to the same table, bucket and node.
//
// Growing the set invalidates every iterator. Erasing a key invalidates only
// iterators positioned at that key. Keys inserted during a traversal may or
// may not be visited.
type Iterator[K comparable] struct {
	t      *table[K]
	bucket int
	node   *node[K]
}

// Begin returns an iterator at the first key, or End if the set is empty.
func (s *Set[K]) Begin() Iterator[K] {
	if s.t.size == 0 {
		return s.End()
	}
	i := s.t.nextNonEmpty(0)
	if i == endIndex {
		return s.End()
	}
	return Iterator[K]{t: s.t, bucket: i, node: s.t.buckets[i].head}
}

// End returns the sentinel iterator positioned past the last key.
func (s *Set[K]) End() Iterator[K] {
	return Iterator[K]{t: s.t, bucket: endIndex}
}

// All returns a sequence over the keys of s. The set must not grow while the
// sequence is being consumed.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := s.Begin(); it != s.End(); it.Next() {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Key returns the key the iterator is positioned at. It panics at End.
func (it Iterator[K]) Key() K {
	if it.node == nil {
		panic("set: Key called on end iterator")
	}
	return it.node.key
}

// Bucket returns the index of the bucket holding the current key.
func (it Iterator[K]) Bucket() int {
	return it.bucket
}

// Done reports whether the iterator is the end sentinel.
func (it Iterator[K]) Done() bool {
	return it.node == nil
}

// Next advances the iterator to the following key, or to End. Advancing End
// is a no-op.
func (it *Iterator[K]) Next() {
	if it.t == nil || it.node == nil {
		return
	}

	if it.node.next != nil {
		it.node = it.node.next
		return
	}

	it.bucket = it.t.nextNonEmpty(it.bucket + 1)
	if it.bucket == endIndex {
		it.node = nil
		return
	}
	it.node = it.t.buckets[it.bucket].head
}

func (it Iterator[K]) Equal(other Iterator[K]) bool {
	return it == other
}

// Package set provides Set, an unordered collection of unique keys stored in
// a separately chained hash table that doubles its bucket array whenever the
// load factor threshold is exceeded.
//
// A Set is not safe for concurrent use.
package set

import (
	"iter"

	"go.uber.org/zap"
)

// table is the state exchanged by Swap. Iterators hold a pointer to it, so an
// iterator follows its buckets into whichever Set owns them.
type table[K comparable] struct {
	buckets  []bucket[K]
	size     int
	capacity int
	hash     HashFunc[K]
	equal    EqualFunc[K]
}

func newTable[K comparable](capacity int, hash HashFunc[K], equal EqualFunc[K]) *table[K] {
	return &table[K]{
		buckets:  make([]bucket[K], capacity),
		capacity: capacity,
		hash:     hash,
		equal:    equal,
	}
}

// index reduces the key's hash modulo the current capacity.
func (t *table[K]) index(key K) int {
	return int(t.hash(key) % uint64(t.capacity))
}

// nextNonEmpty returns the first bucket index >= start holding a key, or
// endIndex when there is none.
func (t *table[K]) nextNonEmpty(start int) int {
	for i := start; i < t.capacity; i++ {
		if t.buckets[i].length > 0 {
			return i
		}
	}
	return endIndex
}

// Set is a hash set of keys of type K.
type Set[K comparable] struct {
	t        *table[K]
	cfg      config[K]
	rehashes int
}

// New creates an empty Set.
func New[K comparable](opts ...Option[K]) *Set[K] {
	cfg := newConfig(opts)
	return &Set[K]{
		t:   newTable(cfg.capacity, cfg.hash, cfg.equal),
		cfg: cfg,
	}
}

// Of creates a Set holding keys with the default options.
func Of[K comparable](keys ...K) *Set[K] {
	s := New[K]()
	s.InsertAll(keys...)
	return s
}

// FromRange creates a Set holding every key in [first, last).
func FromRange[K comparable](first, last Iterator[K], opts ...Option[K]) *Set[K] {
	s := New(opts...)
	s.InsertRange(first, last)
	return s
}

// Collect creates a Set holding every key yielded by seq.
func Collect[K comparable](seq iter.Seq[K], opts ...Option[K]) *Set[K] {
	s := New(opts...)
	s.InsertSeq(seq)
	return s
}

// Len returns the number of keys in the set.
func (s *Set[K]) Len() int {
	return s.t.size
}

// Empty returns true if the set holds no keys.
func (s *Set[K]) Empty() bool {
	return s.t.size == 0
}

// Capacity returns the current number of buckets.
func (s *Set[K]) Capacity() int {
	return s.t.capacity
}

func (s *Set[K]) MaxLoadFactor() int {
	return s.cfg.maxLoadFactor
}

// Find returns an iterator positioned at key, or End if key is absent.
func (s *Set[K]) Find(key K) Iterator[K] {
	i := s.t.index(key)
	n := s.t.buckets[i].find(key, s.t.equal)
	if n == nil {
		return s.End()
	}
	return Iterator[K]{t: s.t, bucket: i, node: n}
}

// Count returns 1 if key is present and 0 otherwise.
func (s *Set[K]) Count(key K) int {
	if s.Find(key) == s.End() {
		return 0
	}
	return 1
}

func (s *Set[K]) Contains(key K) bool {
	return s.Count(key) == 1
}

// Insert adds key if it is not already present. It returns an iterator at the
// stored key and whether an insertion took place. A successful insertion may
// grow the table, which invalidates every previously obtained iterator.
func (s *Set[K]) Insert(key K) (Iterator[K], bool) {
	if it := s.Find(key); it != s.End() {
		return it, false
	}

	i := s.t.index(key)
	n := s.t.buckets[i].add(key)
	s.t.size++

	if s.overloaded(s.t.capacity) {
		s.grow()
		return s.Find(key), true
	}
	return Iterator[K]{t: s.t, bucket: i, node: n}, true
}

// InsertAll inserts keys in order. Repeated keys are absorbed.
func (s *Set[K]) InsertAll(keys ...K) {
	for _, key := range keys {
		s.Insert(key)
	}
}

// InsertRange inserts every key in [first, last). The range must not come
// from s itself.
func (s *Set[K]) InsertRange(first, last Iterator[K]) {
	for it := first; it != last; it.Next() {
		s.Insert(it.Key())
	}
}

func (s *Set[K]) InsertSeq(seq iter.Seq[K]) {
	for key := range seq {
		s.Insert(key)
	}
}

// Erase removes key and returns the number of keys removed (0 or 1). Erase
// never shrinks the table; only iterators at the erased key are invalidated.
func (s *Set[K]) Erase(key K) int {
	i := s.t.index(key)
	if !s.t.buckets[i].remove(key, s.t.equal) {
		return 0
	}
	s.t.size--
	return 1
}

// Clear removes every key. The capacity is unchanged.
func (s *Set[K]) Clear() {
	for i := range s.t.buckets {
		s.t.buckets[i].clear()
	}
	s.t.size = 0
}

// Swap exchanges the contents of s and other in constant time.
func (s *Set[K]) Swap(other *Set[K]) {
	s.t, other.t = other.t, s.t
}

// Assign replaces the contents of s with a copy of the keys in other.
func (s *Set[K]) Assign(other *Set[K]) {
	if s == other {
		return
	}
	s.Clear()
	s.InsertRange(other.Begin(), other.End())
}

// Replace replaces the contents of s with keys.
func (s *Set[K]) Replace(keys ...K) {
	s.Clear()
	s.InsertAll(keys...)
}

// Clone returns an independent copy of s built by re-inserting every key.
func (s *Set[K]) Clone() *Set[K] {
	c := &Set[K]{cfg: s.cfg}
	c.t = newTable(s.cfg.capacity, s.t.hash, s.t.equal)
	c.InsertRange(s.Begin(), s.End())
	return c
}

// Equal reports whether s and other hold the same keys, regardless of layout.
func (s *Set[K]) Equal(other *Set[K]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for it := s.Begin(); it != s.End(); it.Next() {
		if !other.Contains(it.Key()) {
			return false
		}
	}
	return true
}

// Keys returns the keys in iteration order.
func (s *Set[K]) Keys() []K {
	keys := make([]K, 0, s.t.size)
	for it := s.Begin(); it != s.End(); it.Next() {
		keys = append(keys, it.Key())
	}
	return keys
}

func (s *Set[K]) overloaded(capacity int) bool {
	return 100*s.t.size/capacity > s.cfg.maxLoadFactor
}

// grow doubles the capacity until the load factor threshold holds again and
// rehashes once to the result.
func (s *Set[K]) grow() {
	n := s.t.capacity * 2
	for s.overloaded(n) {
		n *= 2
	}
	s.rehash(n)
}

// rehash moves every key into a fresh array of n buckets. Old buckets are
// visited in index order and each chain front to back; every key gets a new node.
func (s *Set[K]) rehash(n int) {
	from := s.t.capacity
	old := s.t.buckets

	s.t.buckets = make([]bucket[K], n)
	s.t.capacity = n
	for i := range old {
		for curr := old[i].head; curr != nil; curr = curr.next {
			s.t.buckets[s.t.index(curr.key)].add(curr.key)
		}
	}
	s.rehashes++

	s.cfg.logger.Debug("rehash",
		zap.Int("from", from),
		zap.Int("to", n),
		zap.Int("size", s.t.size))
}

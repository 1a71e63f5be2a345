package set

// node is one stored key and the link to the next key of the same bucket.
type node[K any] struct {
	key  K
	next *node[K]
}

// bucket is a singly linked chain holding the keys that hash to one slot.
type bucket[K any] struct {
	head   *node[K]
	length int
}

// add pushes key to the front of the chain. It does not check for duplicates.
func (b *bucket[K]) add(key K) *node[K] {
	n := &node[K]{key: key, next: b.head}
	b.head = n
	b.length++
	return n
}

func (b *bucket[K]) find(key K, eq func(a, b K) bool) *node[K] {
	for curr := b.head; curr != nil; curr = curr.next {
		if eq(curr.key, key) {
			return curr
		}
	}
	return nil
}

// remove unlinks the first node matching key and reports whether one was found.
func (b *bucket[K]) remove(key K, eq func(a, b K) bool) bool {
	var prev *node[K]
	for curr := b.head; curr != nil; prev, curr = curr, curr.next {
		if !eq(curr.key, key) {
			continue
		}
		if prev == nil {
			b.head = curr.next
		} else {
			prev.next = curr.next
		}
		curr.next = nil
		b.length--
		return true
	}
	return false
}

// nth returns the node at position index in chain order, or nil.
func (b *bucket[K]) nth(index int) *node[K] {
	if index < 0 {
		return nil
	}
	curr := b.head
	for i := 0; i < index && curr != nil; i++ {
		curr = curr.next
	}
	return curr
}

func (b *bucket[K]) clear() {
	b.head = nil
	b.length = 0
}

// Len returns the number of nodes in the chain.
func (b *bucket[K]) Len() int {
	return b.length
}

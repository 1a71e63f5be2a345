package set

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Dump writes the keys in iteration order as [k1->k2->k3]. A nil writer
// means os.Stderr. The format is for humans and may change.
func (s *Set[K]) Dump(w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}

	var b strings.Builder
	b.WriteString("[")
	first := true
	for key := range s.All() {
		if !first {
			b.WriteString("->")
		}
		fmt.Fprint(&b, key)
		first = false
	}
	b.WriteString("]\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// DumpLayout writes one line per bucket, "index: k k ", listing each chain
// front to back. A nil writer means os.Stderr.
func (s *Set[K]) DumpLayout(w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}

	var b strings.Builder
	for i := range s.t.buckets {
		fmt.Fprintf(&b, "%d: ", i)
		for curr := s.t.buckets[i].head; curr != nil; curr = curr.next {
			fmt.Fprintf(&b, "%v ", curr.key)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Layout is a structural copy of the bucket array.
type Layout[K comparable] struct {
	Capacity int
	Size     int
	Buckets  [][]K
}

// Snapshot copies the bucket array into a Layout.
func (s *Set[K]) Snapshot() Layout[K] {
	l := Layout[K]{
		Capacity: s.t.capacity,
		Size:     s.t.size,
		Buckets:  make([][]K, s.t.capacity),
	}
	for i := range s.t.buckets {
		b := &s.t.buckets[i]
		chain := make([]K, 0, b.Len())
		for n := b.nth(0); n != nil; n = n.next {
			chain = append(chain, n.key)
		}
		l.Buckets[i] = chain
	}
	return l
}

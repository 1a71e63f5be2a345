package set

// Stats summarizes the shape of a Set's table.
type Stats struct {
	Size          int
	Capacity      int
	LoadFactor    int // 100*Size/Capacity, truncated
	MaxLoadFactor int
	Rehashes      int // rehashes performed by this Set, not carried by Swap
	EmptyBuckets  int
	LongestChain  int
}

func (s *Set[K]) Stats() Stats {
	st := Stats{
		Size:          s.t.size,
		Capacity:      s.t.capacity,
		LoadFactor:    100 * s.t.size / s.t.capacity,
		MaxLoadFactor: s.cfg.maxLoadFactor,
		Rehashes:      s.rehashes,
	}
	for i := range s.t.buckets {
		n := s.t.buckets[i].Len()
		if n == 0 {
			st.EmptyBuckets++
		}
		if n > st.LongestChain {
			st.LongestChain = n
		}
	}
	return st
}

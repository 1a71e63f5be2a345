package set

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedKeys(s *Set[int]) []int {
	keys := s.Keys()
	slices.Sort(keys)
	return keys
}

func TestIteratorEmptySet(t *testing.T) {
	s := New[int]()
	assert.Equal(t, s.End(), s.Begin())
	assert.True(t, s.Begin().Done())
	assert.Panics(t, func() { s.End().Key() })

	end := s.End()
	end.Next()
	assert.Equal(t, s.End(), end, "advancing end stays at end")
}

func TestIteratorVisitsEveryKeyOnce(t *testing.T) {
	f := gofakeit.New(0)
	s := New[int]()
	want := map[int]struct{}{}
	for i := 0; i < 200; i++ {
		k := f.IntRange(-1000, 1000)
		s.Insert(k)
		want[k] = struct{}{}
	}

	seen := map[int]int{}
	n := 0
	for it := s.Begin(); it != s.End(); it.Next() {
		seen[it.Key()]++
		n++
	}

	assert.Equal(t, s.Len(), n)
	assert.Equal(t, len(want), len(seen))
	for k, c := range seen {
		assert.Equal(t, 1, c, "key %d visited more than once", k)
		_, ok := want[k]
		assert.True(t, ok, "key %d was never inserted", k)
	}
}

func TestIteratorOrder(t *testing.T) {
	s := New[int]()
	// 1 and 8 share bucket 1, 3 has bucket 3
	s.InsertAll(3, 1, 8)

	assert.Equal(t, []int{8, 1, 3}, s.Keys(), "bucket order, then chain order")
}

func TestIteratorEqual(t *testing.T) {
	a := Of(1, 2)
	b := Of(1, 2)

	assert.True(t, a.Find(1).Equal(a.Find(1)))
	assert.False(t, a.Find(1).Equal(a.Find(2)))
	assert.False(t, a.Find(1).Equal(b.Find(1)), "same key in another set is a different position")
	assert.False(t, a.End().Equal(b.End()))
}

func TestIteratorEndIsStable(t *testing.T) {
	s := New[int]()
	end := s.End()
	for i := 0; i < 20; i++ {
		s.Insert(i)
	}
	s.Erase(3)
	assert.Equal(t, end, s.End())
}

func TestIteratorSurvivesErase(t *testing.T) {
	s := New(WithHasher(func(int) uint64 { return 0 }))
	s.InsertAll(1, 2, 3)

	// chain is 3 -> 2 -> 1
	it := s.Find(1)
	s.Erase(2)
	s.Erase(3)
	assert.Equal(t, 1, it.Key())

	it.Next()
	assert.Equal(t, s.End(), it)
}

func TestIteratorSurvivesInsertWithoutGrowth(t *testing.T) {
	s := New(WithCapacity[int](100))
	s.InsertAll(5, 105)
	it := s.Find(5)
	s.Insert(205)

	require.Equal(t, 100, s.Capacity())
	assert.Equal(t, 5, it.Key())
	assert.Equal(t, s.Find(5), it)
}

func TestFromRange(t *testing.T) {
	src := Of(1, 2, 3, 4, 5, 6)
	all := FromRange(src.Begin(), src.End())
	assert.True(t, all.Equal(src))

	first := src.Begin()
	last := first
	last.Next()
	last.Next()
	part := FromRange(first, last)
	assert.Equal(t, 2, part.Len())
	assert.Equal(t, src.Keys()[:2], part.Keys())
}

func TestAllStopsEarly(t *testing.T) {
	s := Of(1, 2, 3, 4, 5)
	var got []int
	for k := range s.All() {
		got = append(got, k)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New[int]().Dump(&buf))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	s := New[int]()
	s.InsertAll(3, 1, 8)
	require.NoError(t, s.Dump(&buf))
	assert.Equal(t, "[8->1->3]\n", buf.String())
}

func TestDumpLayout(t *testing.T) {
	s := New[int]()
	for i := 1; i <= 11; i++ {
		s.Insert(i)
	}

	var buf bytes.Buffer
	require.NoError(t, s.DumpLayout(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, s.Capacity())
	for i, line := range lines {
		idx, keys, ok := strings.Cut(line, ": ")
		require.True(t, ok, "malformed line %q", line)
		assert.Equal(t, fmt.Sprint(i), idx)
		for _, k := range strings.Fields(keys) {
			var key int
			_, err := fmt.Sscan(k, &key)
			require.NoError(t, err)
			assert.Equal(t, i, key%s.Capacity(), "key %d in bucket %d", key, i)
		}
	}
}

func TestSnapshot(t *testing.T) {
	s := New(WithHasher(func(int) uint64 { return 2 }))
	s.InsertAll(1, 2, 3)

	l := s.Snapshot()
	assert.Equal(t, 7, l.Capacity)
	assert.Equal(t, 3, l.Size)
	assert.Equal(t, []int{3, 2, 1}, l.Buckets[2])
	assert.Empty(t, l.Buckets[0])
}

func TestSnapshotLongChain(t *testing.T) {
	s := New(WithHasher(func(int) uint64 { return 0 }), WithCapacity[int](1000))
	want := make([]int, 0, 500)
	for i := 0; i < 500; i++ {
		s.Insert(i)
		want = append(want, 499-i)
	}

	l := s.Snapshot()
	assert.Equal(t, want, l.Buckets[0], "chain is copied front to back")
	for i := 1; i < l.Capacity; i++ {
		assert.Empty(t, l.Buckets[i])
	}
}

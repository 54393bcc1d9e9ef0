package store

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryBasics(t *testing.T) {
	t.Parallel()

	s := NewMemory[string, int]()
	_, ok := s.Get("a")
	require.False(t, ok)

	s.Set("a", 1)
	s.Set("b", 2)
	v, ok := s.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.True(t, s.Exists("b"))
	require.Equal(t, 2, s.Len())
	require.ElementsMatch(t, []string{"a", "b"}, s.Keys())
	require.ElementsMatch(t, []int{1, 2}, s.Values())

	old, ok := s.Delete("a")
	require.True(t, ok)
	require.Equal(t, 1, old)
	_, ok = s.Delete("a")
	require.False(t, ok)

	s.Clear()
	require.Zero(t, s.Len())
}

func TestMemoryDeleteIf(t *testing.T) {
	t.Parallel()

	s := NewMemory[string, int]()
	s.Set("a", 1)

	require.False(t, s.DeleteIf("a", func(v int) bool { return v == 2 }))
	require.True(t, s.Exists("a"))
	require.False(t, s.DeleteIf("missing", func(int) bool { return true }))
	require.True(t, s.DeleteIf("a", func(v int) bool { return v == 1 }))
	require.False(t, s.Exists("a"))
}

func TestMemoryGetOrSetCreatesOnce(t *testing.T) {
	t.Parallel()

	s := NewMemory[string, *int]()
	calls := 0
	create := func() *int {
		calls++
		v := 7
		return &v
	}

	first := s.GetOrSet("k", create)
	second := s.GetOrSet("k", create)
	require.Same(t, first, second)
	require.Equal(t, 1, calls)
}

func TestMemoryConcurrentIterationWhileWriting(t *testing.T) {
	t.Parallel()

	s := NewMemory[string, int]()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa(w) + "-" + strconv.Itoa(i)
				s.Set(key, i)
				if i%3 == 0 {
					s.Delete(key)
				}
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			for _, k := range s.Keys() {
				_, _ = s.Get(k)
			}
		}
	}()
	wg.Wait()

	require.Equal(t, 4*(200-67), s.Len())
}

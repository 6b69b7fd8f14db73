package chain

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eqInt(a, b int) bool {
	return a == b
}

func Test_PrependBuildsMostRecentFirst(t *testing.T) {
	tb := New[int](3)
	for _, k := range []int{1, 2, 3} {
		tb.Prepend(1, k)
	}
	assert.Equal(t, 3, tb.Len())
	assert.Equal(t, []int{3, 2, 1}, slices.Collect(tb.Chain(1)))
	assert.Empty(t, slices.Collect(tb.Chain(0)))
	assert.Empty(t, slices.Collect(tb.Chain(2)))
}

func Test_Find(t *testing.T) {
	tb := New[int](2)
	h1 := tb.Prepend(0, 10)
	h2 := tb.Prepend(0, 20)
	assert.Equal(t, h1, tb.Find(0, 10, eqInt))
	assert.Equal(t, h2, tb.Find(0, 20, eqInt))
	assert.Zero(t, tb.Find(0, 30, eqInt))
	assert.Zero(t, tb.Find(1, 10, eqInt))
	assert.Equal(t, 10, tb.Key(h1))
	assert.Equal(t, h1, tb.Next(h2))
	assert.Zero(t, tb.Next(h1))
}

func Test_Unlink(t *testing.T) {
	for _, tc := range []struct {
		name   string
		remove int
		want   []int
	}{
		{"head", 4, []int{3, 2, 1}},
		{"middle", 2, []int{4, 3, 1}},
		{"tail", 1, []int{4, 3, 2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tb := New[int](1)
			for k := 1; k <= 4; k++ {
				tb.Prepend(0, k)
			}
			require.True(t, tb.Unlink(0, tc.remove, eqInt))
			assert.False(t, tb.Unlink(0, tc.remove, eqInt))
			assert.Equal(t, tc.want, slices.Collect(tb.Chain(0)))
			assert.Equal(t, 3, tb.Len())
		})
	}
}

func Test_FreedNodesAreReused(t *testing.T) {
	tb := New[*int](4)
	keys := make([]*int, 8)
	for i := range keys {
		keys[i] = new(int)
		*keys[i] = i
		tb.Prepend(i%4, keys[i])
	}
	eq := func(a, b *int) bool { return a == b }
	for i := range 4 {
		require.True(t, tb.Unlink(i%4, keys[i], eq))
	}
	released := 0
	for _, n := range tb.nodes {
		if n.key == nil {
			released++
		}
	}
	assert.Equal(t, 4, released)
	assert.Equal(t, 4, tb.Len())
	for i := range 4 {
		tb.Prepend(i, keys[i])
	}
	assert.Len(t, tb.nodes, 8)
	assert.Equal(t, 8, tb.Len())
	assert.Zero(t, tb.freeP1)
}

func Test_First(t *testing.T) {
	tb := New[int](5)
	b, h := tb.First(0, 5)
	assert.Equal(t, 5, b)
	assert.Zero(t, h)

	h3 := tb.Prepend(3, 7)
	b, h = tb.First(0, 5)
	assert.Equal(t, 3, b)
	assert.Equal(t, h3, h)

	b, h = tb.First(4, 5)
	assert.Equal(t, 5, b)
	assert.Zero(t, h)
}

func Test_Rebuild(t *testing.T) {
	tb := New[int](2)
	// bucket 0: 4 2 0, bucket 1: 5 3 1
	for k := range 6 {
		tb.Prepend(k%2, k)
	}
	tb.Rebuild(3, func(k int) int { return k % 3 })
	assert.Equal(t, 3, tb.Capacity())
	assert.Equal(t, 6, tb.Len())
	// walking 4 2 0 5 3 1 and prepending each
	assert.Equal(t, []int{3, 0}, slices.Collect(tb.Chain(0)))
	assert.Equal(t, []int{1, 4}, slices.Collect(tb.Chain(1)))
	assert.Equal(t, []int{5, 2}, slices.Collect(tb.Chain(2)))
}

func Test_RebuildPanicLeavesTableIntact(t *testing.T) {
	tb := New[int](2)
	for k := range 6 {
		tb.Prepend(k%2, k)
	}
	assert.Panics(t, func() {
		tb.Rebuild(5, func(k int) int {
			if k == 3 {
				panic("hash failure")
			}
			return k % 5
		})
	})
	assert.Equal(t, 2, tb.Capacity())
	assert.Equal(t, []int{4, 2, 0}, slices.Collect(tb.Chain(0)))
	assert.Equal(t, []int{5, 3, 1}, slices.Collect(tb.Chain(1)))

	assert.Panics(t, func() { tb.Rebuild(5, func(k int) int { return 5 }) })
	assert.Equal(t, 2, tb.Capacity())
}

func Test_InvalidArguments(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
	tb := New[int](1)
	assert.Panics(t, func() { tb.Rebuild(0, func(int) int { return 0 }) })
	assert.Panics(t, func() { tb.Key(0) })
	assert.Panics(t, func() { tb.Key(1) })
}

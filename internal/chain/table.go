package chain

import (
	"fmt"
	"iter"
)

// Handle addresses a node in the arena: index plus 1 - if zero, there is no node.
type Handle uint

type node[K any] struct {
	key    K
	nextP1 Handle
}

// Table is an array of buckets, each owning a singly linked chain of nodes. Nodes live in an arena
// and are linked by handle; unlinked nodes go to a free list and are reused before the arena grows.
// Table knows nothing about hashing: callers choose the bucket of every key.
type Table[K any] struct {
	buckets []Handle
	nodes   []node[K]
	freeP1  Handle
	len     int
}

func New[K any](capacity int) *Table[K] {
	if capacity < 1 {
		panic(fmt.Errorf("chain: invalid capacity %d", capacity))
	}
	return &Table[K]{
		buckets: make([]Handle, capacity),
	}
}

func (t *Table[K]) Len() int {
	return t.len
}

func (t *Table[K]) Capacity() int {
	return len(t.buckets)
}

func (t *Table[K]) Head(bucket int) Handle {
	return t.buckets[bucket]
}

func (t *Table[K]) Next(h Handle) Handle {
	return t.node(h).nextP1
}

func (t *Table[K]) Key(h Handle) K {
	return t.node(h).key
}

// Prepend stores key as the new head of the chain in bucket.
func (t *Table[K]) Prepend(bucket int, key K) Handle {
	var h Handle
	if t.freeP1 != 0 {
		h = t.freeP1
		t.freeP1 = t.nodes[h-1].nextP1
	} else {
		t.nodes = append(t.nodes, node[K]{})
		h = Handle(len(t.nodes))
	}
	n := &t.nodes[h-1]
	n.key = key
	n.nextP1 = t.buckets[bucket]
	t.buckets[bucket] = h
	t.len++
	return h
}

// Find returns the node in bucket holding a key equal to key, or zero.
func (t *Table[K]) Find(bucket int, key K, eq func(a, b K) bool) Handle {
	for h := t.buckets[bucket]; h != 0; h = t.nodes[h-1].nextP1 {
		if eq(t.nodes[h-1].key, key) {
			return h
		}
	}
	return 0
}

// Unlink removes the node in bucket holding a key equal to key and reports whether there was one.
func (t *Table[K]) Unlink(bucket int, key K, eq func(a, b K) bool) bool {
	link := &t.buckets[bucket]
	for h := *link; h != 0; h = *link {
		n := &t.nodes[h-1]
		if eq(n.key, key) {
			*link = n.nextP1
			t.release(h)
			return true
		}
		link = &n.nextP1
	}
	return false
}

// First returns the first non-empty bucket in [from, to) and its head, or (to, 0) if all are empty.
func (t *Table[K]) First(from, to int) (int, Handle) {
	for b := from; b < to; b++ {
		if h := t.buckets[b]; h != 0 {
			return b, h
		}
	}
	return to, 0
}

// Chain iterates the keys of bucket, head first.
func (t *Table[K]) Chain(bucket int) iter.Seq[K] {
	return func(yield func(K) bool) {
		for h := t.buckets[bucket]; h != 0; h = t.nodes[h-1].nextP1 {
			if !yield(t.nodes[h-1].key) {
				return
			}
		}
	}
}

// Rebuild replaces the bucket array with one of the given capacity, moving every node to the
// bucket returned by index. Old buckets are walked in ascending order and each node is prepended
// to its new chain. All targets are computed before the first link changes, so a panic in index
// leaves the table as it was.
func (t *Table[K]) Rebuild(capacity int, index func(K) int) {
	if capacity < 1 {
		panic(fmt.Errorf("chain: invalid capacity %d", capacity))
	}
	buckets := make([]Handle, capacity)
	target := make([]int, len(t.nodes))
	for b := range t.buckets {
		for h := t.buckets[b]; h != 0; h = t.nodes[h-1].nextP1 {
			i := index(t.nodes[h-1].key)
			if i < 0 || i >= capacity {
				panic(fmt.Errorf("chain: bucket %d outside capacity %d", i, capacity))
			}
			target[h-1] = i
		}
	}
	for b := range t.buckets {
		h := t.buckets[b]
		for h != 0 {
			n := &t.nodes[h-1]
			next := n.nextP1
			i := target[h-1]
			n.nextP1 = buckets[i]
			buckets[i] = h
			h = next
		}
	}
	t.buckets = buckets
}

func (t *Table[K]) node(h Handle) *node[K] {
	if h == 0 || uint(h) > uint(len(t.nodes)) {
		panic(fmt.Errorf("chain: invalid handle %d", h))
	}
	return &t.nodes[h-1]
}

func (t *Table[K]) release(h Handle) {
	n := &t.nodes[h-1]
	var zero K
	n.key = zero
	n.nextP1 = t.freeP1
	t.freeP1 = h
	t.len--
}

package set

import (
	"errors"
	"iter"

	"github.com/ddirect/chainset/internal/chain"
)

// Iterator is a position in a set: the bucket, the node within its chain and the bucket count at
// the time the position was taken. The zero value is the end position.
//
// Iterators are values and are resolved against the set on each use. Inserting or erasing keys
// invalidates every outstanding iterator; using one afterwards gives unspecified results.
type Iterator[K any] struct {
	s        *Set[K]
	bucket   int
	node     chain.Handle
	capacity int
}

// Begin returns the position of the first key, or End if the set is empty. Keys are visited in
// ascending bucket order and, within a bucket, most recently inserted first.
func (s *Set[K]) Begin() Iterator[K] {
	if b, h := s.t.First(0, s.t.Capacity()); h != 0 {
		return s.at(b, h)
	}
	return Iterator[K]{}
}

// End returns the position past the last key, equal to the zero Iterator.
func (s *Set[K]) End() Iterator[K] {
	return Iterator[K]{}
}

func (s *Set[K]) at(bucket int, h chain.Handle) Iterator[K] {
	return Iterator[K]{
		s:        s,
		bucket:   bucket,
		node:     h,
		capacity: s.t.Capacity(),
	}
}

// Valid reports whether it points at a key, i.e. it is not End.
func (it Iterator[K]) Valid() bool {
	return it.node != 0
}

// Key returns the key at it. It panics on End.
func (it Iterator[K]) Key() K {
	if !it.Valid() {
		panic(errors.New("chainset: Key called on the end iterator"))
	}
	return it.s.t.Key(it.node)
}

// Next returns the following position, or End after the last key.
func (it Iterator[K]) Next() Iterator[K] {
	if !it.Valid() {
		return it
	}
	t := it.s.t
	if h := t.Next(it.node); h != 0 {
		it.node = h
		return it
	}
	if b, h := t.First(it.bucket+1, it.capacity); h != 0 {
		it.bucket, it.node = b, h
		return it
	}
	return Iterator[K]{}
}

// Values iterates the keys in the same order as Begin and Next.
func (s *Set[K]) Values() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := s.Begin(); it.Valid(); it = it.Next() {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Package set implements an unordered set of unique keys stored in a hash table with separate
// chaining. The table grows automatically to keep its load factor at or below MaxLoadFactor and
// never shrinks, except on Clear.
//
// A Set is not safe for concurrent use. Any insertion or erasure invalidates outstanding iterators.
package set

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/ddirect/chainset"
	"github.com/ddirect/chainset/internal/chain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const MaxLoadFactor = 0.7

type Set[K any] struct {
	t    *chain.Table[K]
	hash chainset.Hasher[K]
	eq   chainset.Equal[K]
	opts options
}

// New returns an empty set using the default hash and == for equality.
func New[K comparable](opts ...Option) *Set[K] {
	return NewFunc(chainset.DefaultHasher[K](), chainset.DefaultEqual[K](), opts...)
}

// NewFunc returns an empty set using the given hash and equality. Keys that are equal must hash
// to the same value.
func NewFunc[K any](hash chainset.Hasher[K], eq chainset.Equal[K], opts ...Option) *Set[K] {
	if hash == nil || eq == nil {
		panic(errors.New("chainset: nil hash or equality"))
	}
	return newSet(hash, eq, buildOptions(opts))
}

// Of returns a set holding the given keys; repeated keys are stored once. The set starts with
// DefaultCapacity buckets; use From(slices.Values(keys), opts...) to configure it.
func Of[K comparable](keys ...K) *Set[K] {
	s := New[K]()
	s.InsertKeys(keys...)
	return s
}

// From returns a set holding the keys produced by seq.
func From[K comparable](seq iter.Seq[K], opts ...Option) *Set[K] {
	s := New[K](opts...)
	s.InsertAll(seq)
	return s
}

func newSet[K any](hash chainset.Hasher[K], eq chainset.Equal[K], opts options) *Set[K] {
	return &Set[K]{
		t:    chain.New[K](opts.capacity),
		hash: hash,
		eq:   eq,
		opts: opts,
	}
}

func (s *Set[K]) empty() *Set[K] {
	return newSet(s.hash, s.eq, s.opts)
}

// Len returns the number of keys in the set.
func (s *Set[K]) Len() int {
	return s.t.Len()
}

// Empty reports whether the set holds no keys.
func (s *Set[K]) Empty() bool {
	return s.Len() == 0
}

// Capacity returns the current number of buckets.
func (s *Set[K]) Capacity() int {
	return s.t.Capacity()
}

// LoadFactor returns the number of keys per bucket.
func (s *Set[K]) LoadFactor() float64 {
	return float64(s.Len()) / float64(s.Capacity())
}

func (s *Set[K]) bucket(k K) int {
	return int(s.hash(k) % uint64(s.t.Capacity()))
}

// Find returns an iterator positioned at k, or End if k is not in the set.
func (s *Set[K]) Find(k K) Iterator[K] {
	b := s.bucket(k)
	if h := s.t.Find(b, k, s.eq); h != 0 {
		return s.at(b, h)
	}
	return Iterator[K]{}
}

// Count returns 1 if k is in the set, 0 otherwise.
func (s *Set[K]) Count(k K) int {
	if s.Exists(k) {
		return 1
	}
	return 0
}

// Exists reports whether k is in the set.
func (s *Set[K]) Exists(k K) bool {
	return s.t.Find(s.bucket(k), k, s.eq) != 0
}

// Insert adds k unless an equal key is already present. It returns the position of the key in the
// set and whether it was added.
func (s *Set[K]) Insert(k K) (Iterator[K], bool) {
	if it := s.Find(k); it.Valid() {
		return it, false
	}
	s.Reserve(s.Len() + 1)
	return s.insertDirect(k), true
}

// InsertAll inserts every key of seq and returns how many were added.
func (s *Set[K]) InsertAll(seq iter.Seq[K]) int {
	n := 0
	for k := range seq {
		if _, inserted := s.Insert(k); inserted {
			n++
		}
	}
	return n
}

// InsertKeys inserts the given keys and returns how many were added.
func (s *Set[K]) InsertKeys(keys ...K) int {
	n := 0
	for _, k := range keys {
		if _, inserted := s.Insert(k); inserted {
			n++
		}
	}
	return n
}

// insertDirect links k without looking for duplicates or checking the load factor.
func (s *Set[K]) insertDirect(k K) Iterator[K] {
	b := s.bucket(k)
	return s.at(b, s.t.Prepend(b, k))
}

// Erase removes k and returns the number of keys removed: 1 if it was present, 0 otherwise.
// The bucket array is never shrunk.
func (s *Set[K]) Erase(k K) int {
	if s.t.Unlink(s.bucket(k), k, s.eq) {
		return 1
	}
	return 0
}

// Reserve grows the bucket array, if needed, so that n keys fit within MaxLoadFactor.
// The new capacity is obtained by repeatedly doubling the current one and adding one.
func (s *Set[K]) Reserve(n int) {
	if n < 0 {
		panic(fmt.Errorf("chainset: invalid reserve count %d", n))
	}
	capacity := s.t.Capacity()
	if fits(n, capacity) {
		return
	}
	for !fits(n, capacity) {
		if capacity > (math.MaxInt-1)/2 {
			panic(fmt.Errorf("chainset: reserve count %d too large", n))
		}
		capacity = capacity*2 + 1
	}
	s.rehash(capacity)
}

func fits(n, capacity int) bool {
	return float64(n) <= float64(capacity)*MaxLoadFactor
}

func (s *Set[K]) rehash(capacity int) {
	from := s.t.Capacity()
	s.t.Rebuild(capacity, func(k K) int {
		return int(s.hash(k) % uint64(capacity))
	})
	s.opts.log.Debug("rehash", zap.Int("from", from), zap.Int("to", capacity), zap.Int("size", s.Len()))
}

// Clear removes every key and restores the initial capacity.
func (s *Set[K]) Clear() {
	s.opts.log.Debug("clear", zap.Int("size", s.Len()), zap.Int("capacity", s.Capacity()))
	s.Swap(s.empty())
}

// Swap exchanges the contents and configuration of s and other.
func (s *Set[K]) Swap(other *Set[K]) {
	*s, *other = *other, *s
}

// Clone returns an independent copy of s, sized for its keys up front.
func (s *Set[K]) Clone() *Set[K] {
	c := s.empty()
	c.Reserve(s.Len())
	for k := range s.Values() {
		c.insertDirect(k)
	}
	return c
}

// Assign replaces the contents of s with a copy of other.
func (s *Set[K]) Assign(other *Set[K]) {
	if s == other {
		return
	}
	s.Swap(other.Clone())
}

// AssignKeys replaces the contents of s with the given keys.
func (s *Set[K]) AssignKeys(keys ...K) {
	tmp := s.empty()
	tmp.InsertKeys(keys...)
	s.Swap(tmp)
}

// Equal reports whether s and other hold the same keys, regardless of order and capacity.
func (s *Set[K]) Equal(other *Set[K]) bool {
	if s == other {
		return true
	}
	if s.Len() != other.Len() {
		return false
	}
	for k := range other.Values() {
		if !s.Exists(k) {
			return false
		}
	}
	return true
}

// Keys returns the keys in iteration order.
func (s *Set[K]) Keys() []K {
	keys := make([]K, 0, s.Len())
	for k := range s.Values() {
		keys = append(keys, k)
	}
	return keys
}

func (s *Set[K]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	sep := ""
	for k := range s.Values() {
		b.WriteString(sep)
		fmt.Fprint(&b, k)
		sep = " "
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalLogArray lets a set be logged with zap.Array.
func (s *Set[K]) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for k := range s.Values() {
		if err := enc.AppendReflected(k); err != nil {
			return err
		}
	}
	return nil
}

package chainset

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps a key to a bucket-independent hash. It must return the same value for keys that
// compare equal.
type Hasher[K any] func(K) uint64

// Equal reports whether two keys are the same key.
type Equal[K any] func(a, b K) bool

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var seed = maphash.MakeSeed()

// DefaultHasher returns the hash used when none is supplied. Integers hash to their own value,
// strings use xxhash and every other comparable type goes through maphash.
func DefaultHasher[K comparable]() Hasher[K] {
	var zero K
	switch any(zero).(type) {
	case int:
		return identity[K, int]
	case int8:
		return identity[K, int8]
	case int16:
		return identity[K, int16]
	case int32:
		return identity[K, int32]
	case int64:
		return identity[K, int64]
	case uint:
		return identity[K, uint]
	case uint8:
		return identity[K, uint8]
	case uint16:
		return identity[K, uint16]
	case uint32:
		return identity[K, uint32]
	case uint64:
		return identity[K, uint64]
	case uintptr:
		return identity[K, uintptr]
	case string:
		return func(k K) uint64 {
			return xxhash.Sum64String(any(k).(string))
		}
	}
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// DefaultEqual returns the equality used when none is supplied: ==.
func DefaultEqual[K comparable]() Equal[K] {
	return func(a, b K) bool {
		return a == b
	}
}

func identity[K any, I integer](k K) uint64 {
	return uint64(any(k).(I))
}

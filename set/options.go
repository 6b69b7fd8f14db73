package set

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultCapacity is the bucket count of a set built without WithCapacity.
const DefaultCapacity = 11

type options struct {
	capacity int
	log      *zap.Logger
}

type Option func(*options)

// WithCapacity sets the initial bucket count, which is also the bucket count restored by Clear.
func WithCapacity(n int) Option {
	if n < 1 {
		panic(fmt.Errorf("chainset: invalid capacity %d", n))
	}
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger enables debug logging of rehash and clear events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		capacity: DefaultCapacity,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

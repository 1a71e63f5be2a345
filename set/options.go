package set

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultCapacity is the number of buckets a new set starts with.
	DefaultCapacity = 7
	// DefaultMaxLoadFactor is the percentage of size over capacity that
	// triggers growth.
	DefaultMaxLoadFactor = 70
)

type config[K comparable] struct {
	capacity      int
	maxLoadFactor int
	hash          HashFunc[K]
	equal         EqualFunc[K]
	logger        *zap.Logger
}

// Option configures a Set at construction time.
type Option[K comparable] func(*config[K])

// WithCapacity sets the initial number of buckets.
func WithCapacity[K comparable](n int) Option[K] {
	return func(c *config[K]) {
		c.capacity = n
	}
}

// WithMaxLoadFactor sets the growth threshold as an integer percentage.
func WithMaxLoadFactor[K comparable](pct int) Option[K] {
	return func(c *config[K]) {
		c.maxLoadFactor = pct
	}
}

func WithHasher[K comparable](h HashFunc[K]) Option[K] {
	return func(c *config[K]) {
		c.hash = h
	}
}

func WithEqual[K comparable](eq EqualFunc[K]) Option[K] {
	return func(c *config[K]) {
		c.equal = eq
	}
}

// WithLogger makes the set report rehashes at debug level.
func WithLogger[K comparable](l *zap.Logger) Option[K] {
	return func(c *config[K]) {
		c.logger = l
	}
}

func newConfig[K comparable](opts []Option[K]) config[K] {
	c := config[K]{
		capacity:      DefaultCapacity,
		maxLoadFactor: DefaultMaxLoadFactor,
		hash:          DefaultHash[K],
		equal:         defaultEqual[K],
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	if c.capacity < 1 {
		panic(fmt.Sprintf("set: capacity must be at least 1, got %d", c.capacity))
	}
	if c.maxLoadFactor < 1 {
		panic(fmt.Sprintf("set: max load factor must be at least 1, got %d", c.maxLoadFactor))
	}
	if c.hash == nil {
		c.hash = DefaultHash[K]
	}
	if c.equal == nil {
		c.equal = defaultEqual[K]
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

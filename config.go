package cashew

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

// Ordering defines the key order of a set.
//
// Less must be a strict weak order, and Equal must agree with it:
// for keys a, b exactly one of Less(a, b), Less(b, a), Equal(a, b) holds.
// Both are assumed cheap; the same two keys may be compared repeatedly.
type Ordering[K any] interface {
	Less(a, b K) bool
	Equal(a, b K) bool
}

// Natural is the natural order of an ordered Go type. NaN is treated as a
// single key smaller than any other float.
type Natural[K cmp.Ordered] struct{}

func (Natural[K]) Less(a, b K) bool  { return cmp.Less(a, b) }
func (Natural[K]) Equal(a, b K) bool { return cmp.Compare(a, b) == 0 }

type funcOrdering[K any] struct {
	less, equal func(a, b K) bool
}

func (o funcOrdering[K]) Less(a, b K) bool  { return o.less(a, b) }
func (o funcOrdering[K]) Equal(a, b K) bool { return o.equal(a, b) }

// OrderBy creates an Ordering from predicate functions. If equal is nil,
// two keys are equal if neither is less than the other.
func OrderBy[K any](less, equal func(a, b K) bool) Ordering[K] {
	if less == nil {
		return nil
	}
	if equal == nil {
		equal = func(a, b K) bool { return !less(a, b) && !less(b, a) }
	}
	return funcOrdering[K]{less: less, equal: equal}
}

// Config configures a set.
type Config[K any] struct {
	// Ordering defines the key order. Required.
	Ordering Ordering[K]
}

func (cfg Config[K]) normalized() Config[K] {
	return cfg
}

func (cfg Config[K]) validate() error {
	cfg = cfg.normalized()
	if cfg.Ordering == nil {
		return errors.Wrap(ErrInvalidConfig, "ordering is required")
	}
	return nil
}

package cashew

import (
	"cmp"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/cashew/internal/invariants"
)

// Set is an ordered set of keys of type K, stored in cache-line sized nodes
// holding up to len(A) keys each.
//
// The zero value is not usable; create sets with New or NewOrdered.
type Set[K any, A Slots[K]] struct {
	cfg   Config[K]
	ord   Ordering[K]
	root  node[K, A]
	depth int // depth of every leaf; the root is at depth 1
	size  int
	slab  slab[K, A]
}

// New creates an empty set with a validated configuration. It fails with
// ErrInvalidLayout if A does not make a node fill exactly one cache line.
func New[K any, A Slots[K]](cfg Config[K]) (*Set[K, A], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := validateLayout[K, A](); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	return &Set[K, A]{cfg: cfg, ord: cfg.Ordering, depth: 1}, nil
}

// NewOrdered creates an empty set of an ordered Go type in its natural order.
func NewOrdered[K cmp.Ordered, A Slots[K]]() (*Set[K, A], error) {
	return New[K, A](Config[K]{Ordering: Natural[K]{}})
}

// Config returns a copy of the effective set configuration.
func (s *Set[K, A]) Config() Config[K] {
	return s.cfg
}

// Insert adds key to the set. It returns true if key has been inserted and
// false if it was already present.
//
// If Insert fails, the set is reset to empty before the failure is reported.
// This holds for errors, which signal internal consistency bugs (see IsBug),
// as well as for panics raised by the set's Ordering, which are passed on.
func (s *Set[K, A]) Insert(key K) (inserted bool, err error) {
	if s == nil {
		return false, errors.Wrap(ErrInvalidConfig, "cashew: insert into nil set")
	}
	ok := false
	defer func() {
		if !ok {
			s.reset(err)
		}
	}()
	if inserted, err = s.insert(key); err == nil && invariants.Enabled {
		err = s.Check()
	}
	if ok = err == nil; !ok {
		inserted = false
	}
	return inserted, err
}

func (s *Set[K, A]) insert(key K) (bool, error) {
	r, err := s.tryInsert(&s.root, 1, key)
	if err != nil {
		return false, err
	}
	switch r.status {
	case duplicateFound:
		return false, nil
	case insertDone:
		return true, nil
	}
	if err := s.splitRoot(key, r); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Set[K, A]) reset(err error) {
	if err != nil {
		T().Errorf("cashew: insert failed, dropping %d keys: %v", s.size, err)
	} else {
		T().Errorf("cashew: insert panicked, dropping %d keys", s.size)
	}
	s.Clear()
}

// Count returns 1 if key is in the set, 0 otherwise.
func (s *Set[K, A]) Count(key K) int {
	if s == nil {
		return 0
	}
	n := &s.root
	for {
		less := 0
		for i := 0; i < n.count(); i++ {
			k := n.key(i)
			if s.ord.Equal(k, key) {
				return 1
			}
			if s.ord.Less(k, key) {
				less++
			}
		}
		if n.isLeaf() {
			return 0
		}
		n = &n.children()[less]
	}
}

// Contains reports whether key is in the set.
func (s *Set[K, A]) Contains(key K) bool {
	return s.Count(key) == 1
}

// Size returns the number of keys in the set.
func (s *Set[K, A]) Size() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Empty reports whether the set has no keys.
func (s *Set[K, A]) Empty() bool {
	return s.Size() == 0
}

// Depth returns the depth of every leaf, where 1 means the root is a leaf.
func (s *Set[K, A]) Depth() int {
	if s == nil {
		return 0
	}
	return s.depth
}

// Clear drops all keys and nodes, leaving an empty set of depth 1. Clearing a
// nil set does nothing.
func (s *Set[K, A]) Clear() {
	if s == nil {
		return
	}
	s.root.clear()
	s.slab.reset()
	s.depth = 1
	s.size = 0
}

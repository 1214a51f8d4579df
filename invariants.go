package cashew

import (
	"slices"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Check validates the structural invariants of the whole tree:
//
//   - every leaf sits at Depth(), and every node above it has a family,
//   - family blocks are cache-line aligned,
//   - children beyond count()+1 are empty,
//   - no key is duplicated, and each key lies between the keys of its
//     ancestors which bound the subtree it is in,
//   - the number of keys in the tree matches Size().
//
// Check walks every node and is meant for tests and debugging. Errors wrap
// ErrCorrupt.
func (s *Set[K, A]) Check() error {
	if s == nil {
		return errors.Wrap(ErrInvalidConfig, "nil set")
	}
	if s.depth < 1 {
		return errors.Wrapf(ErrCorrupt, "tree depth is %d", s.depth)
	}
	total, err := s.checkSubtree(&s.root, 1, nil, nil)
	if err != nil {
		return err
	}
	if total != s.size {
		return errors.Wrapf(ErrCorrupt, "tree holds %d keys, size is %d", total, s.size)
	}
	return nil
}

// checkSubtree validates n at depth, whose keys must lie strictly between
// lo and hi; nil bounds are open. It returns the number of keys below n.
func (s *Set[K, A]) checkSubtree(n *node[K, A], depth int, lo, hi *K) (int, error) {
	if err := s.checkNode(n, depth); err != nil {
		return 0, errors.Mark(err, ErrCorrupt)
	}
	if depth < s.depth && n.isLeaf() {
		return 0, errors.Wrapf(ErrCorrupt, "leaf at depth %d above tree depth %d", depth, s.depth)
	}
	sorted := make([]K, n.count())
	for i := range sorted {
		k := n.key(i)
		if lo != nil && !s.ord.Less(*lo, k) || hi != nil && !s.ord.Less(k, *hi) {
			return 0, errors.Wrapf(ErrCorrupt, "key #%d at depth %d is out of its subtree's range", i, depth)
		}
		sorted[i] = k
	}
	slices.SortFunc(sorted, s.compare)
	for i := 1; i < len(sorted); i++ {
		if s.ord.Equal(sorted[i-1], sorted[i]) {
			return 0, errors.Wrapf(ErrCorrupt, "duplicate key in node at depth %d", depth)
		}
	}
	total := n.count()
	if n.isLeaf() {
		return total, nil
	}
	if err := verifyAlignment(uintptr(unsafe.Pointer(n.family))); err != nil {
		return 0, errors.Mark(err, ErrCorrupt)
	}
	kids := n.children()
	for c := n.count() + 1; c < len(kids); c++ {
		if !kids[c].isEmpty() {
			return 0, errors.Wrapf(ErrCorrupt, "unused child %d at depth %d is not empty", c, depth+1)
		}
	}
	for c := 0; c <= n.count(); c++ {
		clo, chi := lo, hi
		if c > 0 {
			clo = &sorted[c-1]
		}
		if c < n.count() {
			chi = &sorted[c]
		}
		sub, err := s.checkSubtree(&kids[c], depth+1, clo, chi)
		if err != nil {
			return 0, err
		}
		total += sub
	}
	return total, nil
}

func (s *Set[K, A]) compare(a, b K) int {
	switch {
	case s.ord.Less(a, b):
		return -1
	case s.ord.Less(b, a):
		return 1
	}
	return 0
}

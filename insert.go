package cashew

type insertStatus uint8

const (
	insertDone     insertStatus = iota // key inserted, nothing left to do upstream
	duplicateFound                     // key already present, nothing changed
	familySplit                        // caller has to integrate family0 and family1
)

// insertResult is the outcome of inserting below a node.
//
// For familySplit, family0 and family1 replace the family of the node which
// was descended into: family0 stays with that node, family1 goes to a new
// sibling right of it. Both are nil if the split node is a leaf.
type insertResult[K any, A Slots[K]] struct {
	family0, family1 []node[K, A]
	status           insertStatus
}

// checkNode validates a node before insertion touches it.
func (s *Set[K, A]) checkNode(n *node[K, A], depth int) error {
	if n.count() > n.capacity() {
		return bugf("node holds %d keys, capacity is %d", n.count(), n.capacity())
	}
	if depth > s.depth {
		return bugf("node at depth %d is below tree depth %d", depth, s.depth)
	}
	if depth == s.depth && !n.isLeaf() {
		return bugf("node at tree depth %d has children", depth)
	}
	return nil
}

// tryInsert inserts key into the subtree of n, which sits at depth. If the
// result is familySplit, it is up to the caller to fix the tree at n's level
// and above.
func (s *Set[K, A]) tryInsert(n *node[K, A], depth int, key K) (insertResult[K, A], error) {
	if err := s.checkNode(n, depth); err != nil {
		return insertResult[K, A]{}, err
	}
	less := 0
	for i := 0; i < n.count(); i++ {
		k := n.key(i)
		if s.ord.Equal(k, key) {
			return insertResult[K, A]{status: duplicateFound}, nil
		}
		if s.ord.Less(k, key) {
			less++
		}
	}
	if n.count() < n.capacity() {
		return s.insertSpacious(n, depth, key, less)
	}
	return s.insertFull(n, depth, key, less)
}

// insertSpacious inserts key below n, where n has room for one more key and
// less is the number of keys of n less than key. Never returns familySplit.
func (s *Set[K, A]) insertSpacious(n *node[K, A], depth int, key K, less int) (insertResult[K, A], error) {
	if depth < s.depth {
		if n.isLeaf() {
			kids, err := s.slab.family()
			if err != nil {
				return insertResult[K, A]{}, err
			}
			n.adopt(kids)
		}
		kids := n.children()
		r, err := s.tryInsert(&kids[less], depth+1, key)
		if err != nil || r.status != familySplit {
			return r, err
		}
		// Child less has split. Shift its right siblings to make room for the
		// new one at less+1; n has a free child slot since it has a free key slot.
		for i := n.count() + 1; i > less+1; i-- {
			kids[i].assign(&kids[i-1])
		}
		lt, gt := &kids[less], &kids[less+1]
		lt.adopt(r.family0)
		gt.adopt(r.family1)
		lt.splitKeysInto(gt, key, s.ord)
	}
	n.addKey(key)
	s.size++
	return insertResult[K, A]{status: insertDone}, nil
}

// insertFull inserts key below n, where n has no room for another key and
// less is the number of keys of n less than key. If a child split reaches n,
// n's family is split as well and handed to the caller; n's own keys are left
// for the caller to distribute.
func (s *Set[K, A]) insertFull(n *node[K, A], depth int, key K, less int) (insertResult[K, A], error) {
	if depth == s.depth {
		return insertResult[K, A]{status: familySplit}, nil
	}
	if n.isLeaf() {
		return insertResult[K, A]{}, bugf("full node at depth %d of %d has no children", depth, s.depth)
	}
	kids := n.children()
	r, err := s.tryInsert(&kids[less], depth+1, key)
	if err != nil || r.status != familySplit {
		return r, err
	}
	nibling, err := s.slab.family()
	if err != nil {
		return insertResult[K, A]{}, err
	}
	// Children right of the split child are adopted by the new sibling family,
	// leaving slot 0 of it for the split child's new right half.
	for i := less + 1; i <= n.count(); i++ {
		nibling[i-less].assign(&kids[i])
	}
	lt, gt := &kids[less], &nibling[0]
	lt.adopt(r.family0)
	gt.adopt(r.family1)
	lt.splitKeysInto(gt, key, s.ord)
	n.family = nil
	return insertResult[K, A]{family0: kids, family1: nibling, status: familySplit}, nil
}

// splitRoot handles a split which propagated all the way up. This is the only
// place where the tree grows in depth.
func (s *Set[K, A]) splitRoot(key K, r insertResult[K, A]) error {
	kids, err := s.slab.family()
	if err != nil {
		return err
	}
	kids[0].adopt(r.family0)
	kids[1].adopt(r.family1)
	s.root.splitKeys(&kids[0], &kids[1], key, s.ord)
	s.root.adopt(kids)
	s.root.addKey(key)
	s.depth++
	s.size++
	T().Debugf("cashew: root split, depth is now %d", s.depth)
	return nil
}

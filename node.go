package cashew

import (
	"math/bits"
	"unsafe"
)

// node is a tree node of exactly one cache line.
//
// Keys are unordered. For a key x not present in the node, the subtree to
// search is child c, with c the number of keys less than x.
type node[K any, A Slots[K]] struct {
	// family points to child 0 of a block of len(keys)+1 contiguous nodes
	// owned by this node. It is nil for leaves.
	family *node[K, A]
	// keys[:n] are live; keys[n:] always hold the zero value of K.
	keys A
	n    uint8
}

func (n *node[K, A]) count() int { return int(n.n) }

func (n *node[K, A]) capacity() int { return len(n.keys) }

func (n *node[K, A]) key(i int) K { return n.keys[i] }

func (n *node[K, A]) isLeaf() bool { return n.family == nil }

func (n *node[K, A]) isEmpty() bool { return n.n == 0 && n.family == nil }

// children returns the node's family as a slice of len(keys)+1 nodes, or nil
// for a leaf. Only children()[:count()+1] are meaningful; the rest are empty.
func (n *node[K, A]) children() []node[K, A] {
	if n.family == nil {
		return nil
	}
	return unsafe.Slice(n.family, len(n.keys)+1)
}

// adopt makes n the owner of family kids.
func (n *node[K, A]) adopt(kids []node[K, A]) {
	if len(kids) == 0 {
		n.family = nil
		return
	}
	mustHold(len(kids) == len(n.keys)+1, "adopt with family of wrong size")
	n.family = &kids[0]
}

// addKey appends key. Does not touch the family, which the caller has to
// rearrange.
func (n *node[K, A]) addKey(key K) {
	mustHold(int(n.n) < len(n.keys), "addKey on full node")
	n.keys[n.n] = key
	n.n++
}

// clear drops all keys and the family with its whole subtree.
func (n *node[K, A]) clear() {
	var empty A
	n.keys = empty
	n.n = 0
	n.family = nil
}

// assign moves src into n, keys and family, and leaves src empty.
func (n *node[K, A]) assign(src *node[K, A]) {
	if n == src {
		return
	}
	*n = *src // dead slots of src are zero, so no stale keys survive in n
	*src = node[K, A]{}
}

// below returns a bit set of the keys less than pivot. All comparisons happen
// here, before any key moves, so a panicking Less leaves the node untouched.
func (n *node[K, A]) below(pivot K, ord Ordering[K]) uint64 {
	var set uint64
	for i := 0; i < int(n.n); i++ {
		if ord.Less(n.keys[i], pivot) {
			set |= 1 << i
		}
	}
	return set
}

// splitKeys distributes the keys of n between the empty nodes left and right:
// keys less than pivot go left, the rest go right. n is left without keys.
// No key may equal pivot. Does not touch any family.
func (n *node[K, A]) splitKeys(left, right *node[K, A], pivot K, ord Ordering[K]) {
	mustHold(left != n && right != n && left != right, "splitKeys with aliased nodes")
	mustHold(left.n == 0 && right.n == 0, "splitKeys into non-empty nodes")
	lt := n.below(pivot, ord)
	var zero K
	for i := 0; i < int(n.n); i++ {
		if lt&(1<<i) != 0 {
			left.keys[left.n] = n.keys[i]
			left.n++
		} else {
			right.keys[right.n] = n.keys[i]
			right.n++
		}
		n.keys[i] = zero
	}
	n.n = 0
}

// splitKeysInto keeps the keys of n less than pivot, compacted, and appends
// the rest to that. No key may equal pivot. Does not touch any family.
func (n *node[K, A]) splitKeysInto(that *node[K, A], pivot K, ord Ordering[K]) {
	mustHold(that != n, "splitKeysInto with aliased nodes")
	lt := n.below(pivot, ord)
	moving := int(n.n) - bits.OnesCount64(lt)
	mustHold(int(that.n)+moving <= len(that.keys), "splitKeysInto overflows destination")
	var zero K
	kept := 0
	for i := 0; i < int(n.n); i++ {
		key := n.keys[i]
		n.keys[i] = zero
		if lt&(1<<i) != 0 {
			n.keys[kept] = key
			kept++
		} else {
			that.keys[that.n] = key
			that.n++
		}
	}
	n.n = uint8(kept)
}

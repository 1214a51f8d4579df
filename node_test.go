package cashew

import (
	"slices"
	"testing"
)

type intNode = node[int32, Int32Slots]

var intOrder = Natural[int32]{}

func makeNode(keys ...int32) *intNode {
	n := &intNode{}
	for _, k := range keys {
		n.addKey(k)
	}
	return n
}

func keysOf(n *intNode) []int32 {
	keys := make([]int32, n.count())
	for i := range keys {
		keys[i] = n.key(i)
	}
	return keys
}

func deadSlotsZero(n *intNode) bool {
	for i := n.count(); i < n.capacity(); i++ {
		if n.keys[i] != 0 {
			return false
		}
	}
	return true
}

func TestNodeStates(t *testing.T) {
	n := &intNode{}
	if !n.isEmpty() || !n.isLeaf() {
		t.Fatalf("zero node should be an empty leaf")
	}
	n.addKey(3)
	if n.isEmpty() || !n.isLeaf() || n.count() != 1 {
		t.Fatalf("expected leaf with one key")
	}
	kids := make([]intNode, n.capacity()+1)
	n.adopt(kids)
	if n.isLeaf() || len(n.children()) != n.capacity()+1 {
		t.Fatalf("expected non-leaf with full-size family")
	}
	if &n.children()[0] != &kids[0] {
		t.Errorf("children not backed by adopted family")
	}
	n.clear()
	if !n.isEmpty() || !deadSlotsZero(n) {
		t.Errorf("clear left keys or family behind")
	}
}

func TestNodeAddKeyOnFullNodePanics(t *testing.T) {
	n := &intNode{}
	for i := 0; i < n.capacity(); i++ {
		n.addKey(int32(i))
	}
	defer func() {
		if r := recover(); r != "addKey on full node" {
			t.Errorf("expected addKey on full node to panic, recovered %v", r)
		}
	}()
	n.addKey(99)
}

func TestNodeAssignMovesKeysAndFamily(t *testing.T) {
	src := makeNode(5, 1, 9)
	kids := make([]intNode, src.capacity()+1)
	src.adopt(kids)
	dst := makeNode(7, 8, 2, 4, 6)
	dst.assign(src)
	if !slices.Equal(keysOf(dst), []int32{5, 1, 9}) {
		t.Errorf("unexpected keys after assign: %v", keysOf(dst))
	}
	if !deadSlotsZero(dst) {
		t.Errorf("surplus keys of destination survived assign")
	}
	if dst.family != &kids[0] {
		t.Errorf("family not transferred")
	}
	if !src.isEmpty() {
		t.Errorf("source not empty after assign")
	}
	dst.assign(dst)
	if dst.count() != 3 {
		t.Errorf("self-assign changed node")
	}
}

func TestNodeSplitKeys(t *testing.T) {
	n := makeNode(8, 3, 12, 1, 6)
	left, right := &intNode{}, &intNode{}
	n.splitKeys(left, right, 7, intOrder)
	if !slices.Equal(keysOf(left), []int32{3, 1, 6}) {
		t.Errorf("left = %v", keysOf(left))
	}
	if !slices.Equal(keysOf(right), []int32{8, 12}) {
		t.Errorf("right = %v", keysOf(right))
	}
	if n.count() != 0 || !deadSlotsZero(n) {
		t.Errorf("split source keeps keys")
	}
}

func TestNodeSplitKeysAllOneSide(t *testing.T) {
	n := makeNode(4, 5, 6)
	left, right := &intNode{}, &intNode{}
	n.splitKeys(left, right, 100, intOrder)
	if left.count() != 3 || right.count() != 0 {
		t.Errorf("expected all keys left, have %d/%d", left.count(), right.count())
	}
}

func TestNodeSplitKeysInto(t *testing.T) {
	n := makeNode(8, 3, 12, 1, 6)
	that := makeNode(20)
	n.splitKeysInto(that, 7, intOrder)
	if !slices.Equal(keysOf(n), []int32{3, 1, 6}) {
		t.Errorf("kept = %v", keysOf(n))
	}
	if !slices.Equal(keysOf(that), []int32{20, 8, 12}) {
		t.Errorf("moved = %v", keysOf(that))
	}
	if !deadSlotsZero(n) {
		t.Errorf("compaction left stale keys")
	}
}

type panickyOrder struct {
	calls, failAt int
}

func (o *panickyOrder) Less(a, b int32) bool {
	o.calls++
	if o.calls == o.failAt {
		panic("less failed")
	}
	return a < b
}

func (o *panickyOrder) Equal(a, b int32) bool { return a == b }

func TestNodeSplitKeysIntoPanicLeavesNodesIntact(t *testing.T) {
	n := makeNode(8, 3, 12, 1, 6)
	that := &intNode{}
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic from ordering")
			}
		}()
		n.splitKeysInto(that, 7, &panickyOrder{failAt: 4})
	}()
	if !slices.Equal(keysOf(n), []int32{8, 3, 12, 1, 6}) || that.count() != 0 {
		t.Errorf("nodes changed by failed split: %v / %v", keysOf(n), keysOf(that))
	}
}

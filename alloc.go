package cashew

import "unsafe"

// slabBytes is the size of a block of families. It is a whole number of 8 KiB
// runtime pages above the 32 KiB small-object limit, so the runtime hands it out
// page-aligned and without a malloc header in front of it.
const slabBytes = 5 * 8192

// slab carves cache-line aligned families out of large node blocks.
//
// Families are never released individually: the tree never drops a family
// except when the whole set is cleared, which releases all slabs at once.
type slab[K any, A Slots[K]] struct {
	free []node[K, A]
	n    int // families handed out since the last reset
}

// family returns a block of len(A)+1 empty, contiguous nodes.
func (sl *slab[K, A]) family() ([]node[K, A], error) {
	fanout := keyCapacity[K, A]() + 1
	if len(sl.free) < fanout {
		sl.free = make([]node[K, A], slabBytes/CacheLineSize)
	}
	kids := sl.free[:fanout:fanout]
	sl.free = sl.free[fanout:]
	if err := verifyAlignment(uintptr(unsafe.Pointer(&kids[0]))); err != nil {
		return nil, err
	}
	sl.n++
	return kids, nil
}

func (sl *slab[K, A]) reset() {
	sl.free = nil
	sl.n = 0
}

func verifyAlignment(addr uintptr) error {
	if addr&(CacheLineSize-1) != 0 {
		return bugf("family allocated at %#x is not aligned to %d bytes", addr, CacheLineSize)
	}
	return nil
}

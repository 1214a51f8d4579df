package cashew

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/cpu"
)

const (
	// CacheLineSize is the size of every tree node in bytes.
	CacheLineSize = 64

	ptrSize   = 4 << (^uintptr(0) >> 63)
	countSize = 1 // node key count is a uint8

	// KeyBytes is the room left for keys in a node after the family pointer
	// and the key count: 55 bytes on 64-bit platforms, 59 on 32-bit ones.
	KeyBytes = CacheLineSize - ptrSize - countSize

	// MaxSlots bounds the key capacity of any layout. A uint8 count must be
	// able to hold the number of children, MaxSlots+1.
	MaxSlots = 59
)

// Slots constrains the key storage array of a node, and thus the maximum
// number of keys per node. A slot array [N]K must leave a node of exactly
// CacheLineSize bytes; New checks this. The predefined slot types below are
// sized KeyBytes/sizeof(K) and always fit.
//
// Clients with other key types declare their own, e.g.
//
//	type PointSlots [cashew.KeyBytes / unsafe.Sizeof(Point{})]Point
type Slots[K any] interface {
	~[1]K | ~[2]K | ~[3]K | ~[4]K | ~[5]K | ~[6]K | ~[7]K | ~[8]K | ~[9]K |
		~[10]K | ~[11]K | ~[12]K | ~[13]K | ~[14]K | ~[15]K | ~[16]K | ~[17]K |
		~[18]K | ~[19]K | ~[20]K | ~[21]K | ~[22]K | ~[23]K | ~[24]K | ~[25]K |
		~[26]K | ~[27]K | ~[28]K | ~[29]K | ~[30]K | ~[31]K | ~[32]K | ~[33]K |
		~[34]K | ~[35]K | ~[36]K | ~[37]K | ~[38]K | ~[39]K | ~[40]K | ~[41]K |
		~[42]K | ~[43]K | ~[44]K | ~[45]K | ~[46]K | ~[47]K | ~[48]K | ~[49]K |
		~[50]K | ~[51]K | ~[52]K | ~[53]K | ~[54]K | ~[55]K | ~[56]K | ~[57]K |
		~[58]K | ~[59]K
}

// Slot arrays for builtin key types.
type (
	IntSlots     [KeyBytes / unsafe.Sizeof(int(0))]int
	Int8Slots    [KeyBytes / unsafe.Sizeof(int8(0))]int8
	Int16Slots   [KeyBytes / unsafe.Sizeof(int16(0))]int16
	Int32Slots   [KeyBytes / unsafe.Sizeof(int32(0))]int32
	Int64Slots   [KeyBytes / unsafe.Sizeof(int64(0))]int64
	UintSlots    [KeyBytes / unsafe.Sizeof(uint(0))]uint
	Uint8Slots   [KeyBytes / unsafe.Sizeof(uint8(0))]uint8
	Uint16Slots  [KeyBytes / unsafe.Sizeof(uint16(0))]uint16
	Uint32Slots  [KeyBytes / unsafe.Sizeof(uint32(0))]uint32
	Uint64Slots  [KeyBytes / unsafe.Sizeof(uint64(0))]uint64
	UintptrSlots [KeyBytes / unsafe.Sizeof(uintptr(0))]uintptr
	Float32Slots [KeyBytes / unsafe.Sizeof(float32(0))]float32
	Float64Slots [KeyBytes / unsafe.Sizeof(float64(0))]float64
	StringSlots  [KeyBytes / unsafe.Sizeof("")]string
)

// Compile-time checks that every predefined layout fills exactly one cache
// line. A node that is too small or too large makes one of the constant
// array lengths underflow uintptr.
var (
	_ [CacheLineSize - unsafe.Sizeof(node[int, IntSlots]{})]struct{}
	_ [unsafe.Sizeof(node[int, IntSlots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[int8, Int8Slots]{})]struct{}
	_ [unsafe.Sizeof(node[int8, Int8Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[int16, Int16Slots]{})]struct{}
	_ [unsafe.Sizeof(node[int16, Int16Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[int32, Int32Slots]{})]struct{}
	_ [unsafe.Sizeof(node[int32, Int32Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[int64, Int64Slots]{})]struct{}
	_ [unsafe.Sizeof(node[int64, Int64Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[uint, UintSlots]{})]struct{}
	_ [unsafe.Sizeof(node[uint, UintSlots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[uint8, Uint8Slots]{})]struct{}
	_ [unsafe.Sizeof(node[uint8, Uint8Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[uint16, Uint16Slots]{})]struct{}
	_ [unsafe.Sizeof(node[uint16, Uint16Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[uint32, Uint32Slots]{})]struct{}
	_ [unsafe.Sizeof(node[uint32, Uint32Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[uint64, Uint64Slots]{})]struct{}
	_ [unsafe.Sizeof(node[uint64, Uint64Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[uintptr, UintptrSlots]{})]struct{}
	_ [unsafe.Sizeof(node[uintptr, UintptrSlots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[float32, Float32Slots]{})]struct{}
	_ [unsafe.Sizeof(node[float32, Float32Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[float64, Float64Slots]{})]struct{}
	_ [unsafe.Sizeof(node[float64, Float64Slots]{}) - CacheLineSize]struct{}
	_ [CacheLineSize - unsafe.Sizeof(node[string, StringSlots]{})]struct{}
	_ [unsafe.Sizeof(node[string, StringSlots]{}) - CacheLineSize]struct{}
)

// PlatformCacheLineSize returns the cache line size of the running platform
// as known to golang.org/x/sys/cpu. Nodes are always CacheLineSize bytes; on
// platforms with longer lines a node covers only part of one.
func PlatformCacheLineSize() int {
	return int(unsafe.Sizeof(cpu.CacheLinePad{}))
}

// keyCapacity is the maximum number of keys per node for slot array A.
func keyCapacity[K any, A Slots[K]]() int {
	var a A
	return len(a)
}

// validateLayout checks that a node built on slot array A fills exactly one
// cache line.
func validateLayout[K any, A Slots[K]]() error {
	var n node[K, A]
	if sz := unsafe.Sizeof(n); sz != CacheLineSize {
		var k K
		return errors.Wrapf(ErrInvalidLayout, "%d slots of %d bytes make a node of %d bytes, need %d",
			len(n.keys), unsafe.Sizeof(k), sz, CacheLineSize)
	}
	if cpuLine := PlatformCacheLineSize(); cpuLine != CacheLineSize {
		T().Infof("cashew: platform cache line is %d bytes, nodes are laid out for %d",
			cpuLine, CacheLineSize)
	}
	return nil
}

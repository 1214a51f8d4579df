/*
Package cashew implements an in-memory ordered set as a B-tree variant whose
nodes each occupy exactly one hardware cache line.

Every node is 64 bytes long. It stores as many keys as fit next to a single
child pointer and a one-byte key count, e.g. 13 keys of type int32 on a 64-bit
platform. Keys within a node are not kept sorted; a linear scan over one cache
line is cheap. When a key x is not found in a node, the search continues in
child c, where c is the number of keys in the node that are less than x.

Node states:

  - empty:    no keys and no family
  - leaf:     no family, any number of keys
  - non-leaf: a family of len(keys)+1 children

A node's children live in a contiguous, cache-line aligned block (its family)
which is always sized for the maximum number of children. Unused trailing
children are kept empty.

Nodes are split at the value being inserted rather than at a median. This keeps
insertion uniform, but it means a split may produce a node without any keys
sitting above a non-empty child ("thin" chains). Depth stays uniform: every leaf
is exactly Depth() levels below the root, and depth grows only when a split
reaches the root.

The set is a set, not a map. There is no deletion and no iteration. A Set is
not safe for concurrent use.

Any failure during Insert, be it an internal consistency bug or a panic from a
client's Ordering, resets the set to empty before the failure is reported.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package cashew

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// mustHold panics with msg if condition is false. It guards programming
// errors inside node primitives.
func mustHold(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

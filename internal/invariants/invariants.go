// Package invariants tells whether expensive invariant checks are compiled in.
//
// Build with tag 'invariants' to have a set validate its whole tree after
// every insertion.
package invariants

//go:build invariants

package invariants

// Enabled is true if the 'invariants' build tag is set.
const Enabled = true

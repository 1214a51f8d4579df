package cashew

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidConfig signals an invalid set configuration.
	ErrInvalidConfig = errors.New("cashew: invalid configuration")
	// ErrInvalidLayout signals a slot array which does not make a node fill
	// exactly one cache line.
	ErrInvalidLayout = errors.Wrap(ErrInvalidConfig, "cashew: invalid node layout")
	// ErrCorrupt signals a structural invariant violation found by Check.
	ErrCorrupt = errors.New("cashew: corrupt tree")
)

// bugf creates an internal-consistency error. These are never expected to
// happen; if one does, the set has been reset by the time it is returned.
func bugf(format string, args ...interface{}) error {
	return errors.AssertionFailedf("cashew: "+format, args...)
}

// IsBug reports whether err signals an internal consistency bug of a set, as
// opposed to an operational error.
func IsBug(err error) bool {
	return errors.HasAssertionFailure(err)
}

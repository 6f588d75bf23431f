package vec

import "errors"

// Failure classes reported by mutating operations. A concrete failure
// wraps both its class and the element hook's own error, so callers
// can match either one with errors.Is.
var (
	// ErrAlloc reports that storage for a requested capacity could
	// not be obtained.
	ErrAlloc = errors.New("allocation failed")

	// ErrConstruct reports that building an element into a vacant
	// slot failed.
	ErrConstruct = errors.New("element construction failed")

	// ErrAssign reports that replacing a live element failed during
	// an in-place update or shift.
	ErrAssign = errors.New("element assignment failed")

	// ErrNoClone reports that an operation needed to duplicate
	// elements of a type declared NoClone.
	ErrNoClone = errors.New("element type cannot be cloned")
)

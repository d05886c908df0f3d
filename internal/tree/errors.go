package tree

import "errors"

var (
	// ErrNotFound is returned when an id is not in the tree.
	ErrNotFound = errors.New("node not found")
	// ErrCycleDetected is returned when a listing nests a path under itself.
	ErrCycleDetected = errors.New("cycle detected in listing")
	// ErrDuplicatePath is returned when a listing contains the same path twice.
	ErrDuplicatePath = errors.New("duplicate path in listing")
)

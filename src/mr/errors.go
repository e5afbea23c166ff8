package mr

import "errors"

// Usage errors, rejected by the Start functions before any worker is spawned.
var (
	ErrInvalidThreadLevel = errors.New("mr: multiThreadLevel must be positive")
	ErrNilClient          = errors.New("mr: client is nil")
	ErrNilOutput          = errors.New("mr: output vector is nil")
	ErrNilComparator      = errors.New("mr: key comparator is nil")
)

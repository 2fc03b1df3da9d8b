package bufferpool

import "errors"

var (
	// ErrPoolExhausted is returned when no free slot exists and the
	// replacer has no evictable frame either.
	ErrPoolExhausted = errors.New("bufferpool: no free frame available")

	// ErrGuardDropped is returned by Delete when called on a guard that has
	// already been dropped or deleted. A repeated Drop returns nil instead.
	ErrGuardDropped = errors.New("bufferpool: frame guard already dropped")

	// ErrPagePinned is returned by the thin pool when a page already has a
	// live guard outstanding.
	ErrPagePinned = errors.New("bufferpool: page already pinned")
)

package pagestore

import "errors"

var (
	// ErrIO is returned when a read/write/seek against the backing file fails.
	ErrIO = errors.New("pagestore: I/O error")

	// ErrInvalidPage is returned for an out-of-range or invalid page id.
	ErrInvalidPage = errors.New("pagestore: invalid page id")
)

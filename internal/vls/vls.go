// Package vls implements the variable-length record store described in
// spec.md §4.4: a bump allocator that packs length-agnostic byte runs into
// buffer-pool frames and hands back stable 32-bit record ids encoding
// (page id, byte offset).
//
// Grounded on the page-chaining allocation loop of
// _examples/tuannm99-novasql/internal/storage/overflow.go — generalized from
// "always start a fresh page" (that package never reuses a page's tail
// space) to "reuse the current frame's tail when the next record fits",
// which is what spec.md §4.4's top_pos arithmetic requires — and on the
// slotted-page insert contract of
// _examples/tuannm99-novasql/internal/heap/heap_page.go, restructured around
// a non-reclaiming monotonic cursor rather than a page-local free-space
// slot directory (spec.md §4.4 explicitly forbids deallocation).
package vls

import (
	"ticketstore/internal/bufferpool"
)

// RecordID names a stored byte run as page_id*FRAME_SIZE + offset (spec.md
// GLOSSARY "Record id").
type RecordID int32

// Store is a bump allocator over a bufferpool.Pool. Its only persistent
// state is top_pos, kept in one info-page slot.
type Store struct {
	pool    *bufferpool.Pool
	topSlot int
}

// New constructs a Store persisting top_pos in the disk manager's info-page
// slot topSlot. When fresh is true, top_pos is reset to 0.
func New(pool *bufferpool.Pool, topSlot int, fresh bool) *Store {
	s := &Store{pool: pool, topSlot: topSlot}
	if fresh {
		s.setTopPos(0)
	}
	return s
}

func (s *Store) topPos() int32     { return *s.pool.Info(s.topSlot) }
func (s *Store) setTopPos(v int32) { *s.pool.Info(s.topSlot) = v }

// Handle is a pinned view onto a stored record's bytes. Callers must Drop it
// once done, exactly like a bufferpool.FrameGuard.
type Handle struct {
	guard  *bufferpool.FrameGuard
	offset int
	size   int
}

// Bytes returns the record's bytes for reading.
func (h *Handle) Bytes() []byte { return h.guard.Data()[h.offset : h.offset+h.size] }

// BytesMut returns the record's bytes for writing, marking the frame dirty.
func (h *Handle) BytesMut() []byte { return h.guard.DataMut()[h.offset : h.offset+h.size] }

// Drop releases the handle's underlying pin.
func (h *Handle) Drop() error { return h.guard.Drop() }

// Allocate reserves size contiguous bytes, returning their record id and a
// pinned handle to write them. It never reclaims space freed by anything;
// top_pos only ever grows (spec.md §4.4 "No deallocation").
func (s *Store) Allocate(size int) (RecordID, *Handle, error) {
	frameSize := int32(s.pool.FrameSize())
	if size <= 0 || int32(size) > frameSize {
		return 0, nil, ErrRecordTooLarge
	}

	top := s.topPos()
	remaining := (frameSize - top%frameSize) % frameSize

	var guard *bufferpool.FrameGuard
	var pageID, offset int32

	if int32(size) > remaining {
		g, pid, err := s.pool.NewFrameGuarded()
		if err != nil {
			return 0, nil, err
		}
		guard, pageID, offset = g, pid, 0
		top = pageID * frameSize
	} else {
		pageID = top / frameSize
		offset = top % frameSize
		g, err := s.pool.FetchFrameBasic(pageID)
		if err != nil {
			return 0, nil, err
		}
		guard = g
	}

	id := RecordID(top)
	s.setTopPos(top + int32(size))
	return id, &Handle{guard: guard, offset: int(offset), size: size}, nil
}

// Get returns a pinned handle to the size bytes starting at id.
func (s *Store) Get(id RecordID, size int) (*Handle, error) {
	if id < 0 {
		return nil, ErrInvalidRecordID
	}
	frameSize := int32(s.pool.FrameSize())
	pageID := int32(id) / frameSize
	offset := int32(id) % frameSize
	guard, err := s.pool.FetchFrameBasic(pageID)
	if err != nil {
		return nil, err
	}
	return &Handle{guard: guard, offset: int(offset), size: size}, nil
}

// Package bufferpool implements the buffer pool and LRU-K replacer described
// in spec.md §4.2: a fixed-capacity set of in-memory frame descriptors,
// pinned/unpinned through FrameGuard handles, backed by a pagestore.DiskManager.
//
// Grounded on _examples/original_source/src/buffer_pool_manager.h (pin/evict
// contract), restructured around the frame-slice + page-table map + free-id
// stack + log/slog debug tracing shape of
// _examples/tuannm99-novasql/internal/bufferpool/{pool,global_pool}.go.
package bufferpool

import (
	"fmt"
	"log/slog"

	"ticketstore/internal/pagestore"
)

type frameDesc struct {
	pageID   int32
	dirty    bool
	pinCount int
	data     []byte
}

// Pool is the caching buffer pool variant (spec.md §4.2.2), recommended by
// spec.md §9 for parity with the production configuration and the one wired
// into internal/btree and internal/vls.
type Pool struct {
	disk      *pagestore.DiskManager
	replacer  *LRUKReplacer
	frames    []frameDesc
	pageTable map[int32]int32
	freeList  []int32
}

// NewPool constructs a buffer pool of the given capacity over disk, using an
// LRU-K replacer with the given K (spec.md §6.3 defaults: POOL_SIZE=2500,
// LRU_K=20).
func NewPool(disk *pagestore.DiskManager, capacity int, k int) *Pool {
	p := &Pool{
		disk:      disk,
		replacer:  NewLRUKReplacer(k),
		frames:    make([]frameDesc, capacity),
		pageTable: make(map[int32]int32, capacity),
		freeList:  make([]int32, capacity),
	}
	for i := 0; i < capacity; i++ {
		p.frames[i].pageID = pagestore.InvalidPageID
		p.frames[i].data = make([]byte, disk.FrameSize())
		p.freeList[i] = int32(capacity - 1 - i)
	}
	return p
}

// Disk returns the underlying disk manager.
func (p *Pool) Disk() *pagestore.DiskManager { return p.disk }

// FrameSize returns the frame size of the underlying disk manager.
func (p *Pool) FrameSize() int { return p.disk.FrameSize() }

// Info delegates to the underlying disk manager's info-page slot.
func (p *Pool) Info(slot int) *int32 { return p.disk.Info(slot) }

// ensureFreeSlot guarantees a free frame index is available, evicting one
// via the replacer if the free stack is empty.
func (p *Pool) ensureFreeSlot() (int32, error) {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return idx, nil
	}

	frameID, pageID, ok := p.replacer.Evict()
	if !ok {
		return 0, ErrPoolExhausted
	}
	fr := &p.frames[frameID]
	if fr.dirty {
		if err := p.disk.WriteFrame(fr.pageID, fr.data); err != nil {
			return 0, err
		}
	}
	delete(p.pageTable, pageID)
	p.replacer.Remove(frameID, pageID)
	fr.pageID = pagestore.InvalidPageID
	fr.dirty = false
	fr.pinCount = 0
	slog.Debug("bufferpool: evicted frame", "frame", frameID, "page", pageID)
	return frameID, nil
}

// NewFrameGuarded allocates a brand new page via the disk manager and
// returns a pinned guard over a zero-initialized frame holding it.
func (p *Pool) NewFrameGuarded() (*FrameGuard, int32, error) {
	idx, err := p.ensureFreeSlot()
	if err != nil {
		return nil, pagestore.InvalidPageID, err
	}
	pageID, err := p.disk.AllocateFrame()
	if err != nil {
		p.freeList = append(p.freeList, idx)
		return nil, pagestore.InvalidPageID, err
	}

	fr := &p.frames[idx]
	fr.pageID = pageID
	fr.dirty = false
	fr.pinCount = 1
	for i := range fr.data {
		fr.data[i] = 0
	}
	p.pageTable[pageID] = idx
	p.replacer.RecordAccess(pageID)
	p.replacer.SetNonEvictable(idx)
	slog.Debug("bufferpool: new frame", "frame", idx, "page", pageID)
	return &FrameGuard{pool: p, idx: idx}, pageID, nil
}

// FetchFrameBasic returns a pinned guard over pageID, loading it from disk
// if it is not already cached.
func (p *Pool) FetchFrameBasic(pageID int32) (*FrameGuard, error) {
	if idx, ok := p.pageTable[pageID]; ok {
		fr := &p.frames[idx]
		if fr.pinCount == 0 {
			p.replacer.SetNonEvictable(idx)
		}
		fr.pinCount++
		p.replacer.RecordAccess(pageID)
		slog.Debug("bufferpool: fetch hit", "frame", idx, "page", pageID)
		return &FrameGuard{pool: p, idx: idx}, nil
	}

	idx, err := p.ensureFreeSlot()
	if err != nil {
		return nil, err
	}
	fr := &p.frames[idx]
	if err := p.disk.ReadFrame(pageID, fr.data); err != nil {
		p.freeList = append(p.freeList, idx)
		return nil, err
	}
	fr.pageID = pageID
	fr.dirty = false
	fr.pinCount = 1
	p.pageTable[pageID] = idx
	p.replacer.RecordAccess(pageID)
	p.replacer.SetNonEvictable(idx)
	slog.Debug("bufferpool: fetch miss", "frame", idx, "page", pageID)
	return &FrameGuard{pool: p, idx: idx}, nil
}

// unpin decrements the pin count of idx, marking the frame evictable once it
// reaches zero. Dirtiness is tracked separately via FrameGuard.DataMut.
func (p *Pool) unpin(idx int32) {
	fr := &p.frames[idx]
	if fr.pinCount > 0 {
		fr.pinCount--
	}
	if fr.pinCount == 0 {
		p.replacer.SetEvictable(idx, fr.pageID)
	}
}

// clone increments the pin count of idx for a cloned guard (caching-variant
// re-pin semantics per spec.md §5 / §9).
func (p *Pool) clone(idx int32) {
	fr := &p.frames[idx]
	if fr.pinCount == 0 {
		p.replacer.SetNonEvictable(idx)
	}
	fr.pinCount++
}

// deletePage unlinks pageID/idx from the buffer entirely and deallocates its
// disk frame. The frame's bytes are not written back.
func (p *Pool) deletePage(idx, pageID int32) error {
	fr := &p.frames[idx]
	delete(p.pageTable, pageID)
	p.replacer.Remove(idx, pageID)
	fr.pageID = pagestore.InvalidPageID
	fr.dirty = false
	fr.pinCount = 0
	p.freeList = append(p.freeList, idx)
	return p.disk.DeallocateFrame(pageID)
}

// Close flushes every dirty frame to disk. Every pin count must already be
// zero (spec.md §5 pin-discipline invariant).
func (p *Pool) Close() error {
	for i := range p.frames {
		fr := &p.frames[i]
		if fr.pageID == pagestore.InvalidPageID {
			continue
		}
		if fr.pinCount != 0 {
			return fmt.Errorf("bufferpool: frame %d (page %d) still pinned at shutdown", i, fr.pageID)
		}
		if fr.dirty {
			if err := p.disk.WriteFrame(fr.pageID, fr.data); err != nil {
				return err
			}
			fr.dirty = false
		}
	}
	return nil
}

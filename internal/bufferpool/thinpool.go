package bufferpool

import "ticketstore/internal/pagestore"

// ThinPool is the no-cache buffer pool variant (spec.md §4.2.3): one
// descriptor per fetch, immediate write-back on drop, no eviction. It
// forbids simultaneously holding two guards on the same page.
//
// Grounded on the BufferPoolManager<1> specialization in
// _examples/original_source/src/buffer_pool_manager.h.
type ThinPool struct {
	disk   *pagestore.DiskManager
	pinned map[int32]bool
}

// NewThinPool constructs a thin pool over disk.
func NewThinPool(disk *pagestore.DiskManager) *ThinPool {
	return &ThinPool{disk: disk, pinned: make(map[int32]bool)}
}

// Disk returns the underlying disk manager.
func (p *ThinPool) Disk() *pagestore.DiskManager { return p.disk }

// ThinFrameGuard is the thin pool's guard: it owns its own buffer and writes
// back immediately on Drop if dirty. It cannot be cloned.
type ThinFrameGuard struct {
	pool    *ThinPool
	pageID  int32
	data    []byte
	dirty   bool
	dropped bool
}

// NewFrameGuarded allocates a new page and returns a guard over a
// zero-initialized buffer.
func (p *ThinPool) NewFrameGuarded() (*ThinFrameGuard, int32, error) {
	pageID, err := p.disk.AllocateFrame()
	if err != nil {
		return nil, pagestore.InvalidPageID, err
	}
	p.pinned[pageID] = true
	return &ThinFrameGuard{pool: p, pageID: pageID, data: make([]byte, p.disk.FrameSize())}, pageID, nil
}

// FetchFrameBasic reads pageID from disk into a fresh buffer. It is an error
// to fetch a page that already has an outstanding guard.
func (p *ThinPool) FetchFrameBasic(pageID int32) (*ThinFrameGuard, error) {
	if p.pinned[pageID] {
		return nil, ErrPagePinned
	}
	buf := make([]byte, p.disk.FrameSize())
	if err := p.disk.ReadFrame(pageID, buf); err != nil {
		return nil, err
	}
	p.pinned[pageID] = true
	return &ThinFrameGuard{pool: p, pageID: pageID, data: buf}, nil
}

// PageID returns the guarded page id.
func (g *ThinFrameGuard) PageID() int32 { return g.pageID }

// Data returns the guard's bytes for reading.
func (g *ThinFrameGuard) Data() []byte { return g.data }

// DataMut returns the guard's bytes for writing, marking it dirty.
func (g *ThinFrameGuard) DataMut() []byte {
	g.dirty = true
	return g.data
}

// Drop writes the frame back to disk immediately if dirty, then releases
// the pin.
func (g *ThinFrameGuard) Drop() error {
	if g.dropped {
		return nil
	}
	g.dropped = true
	delete(g.pool.pinned, g.pageID)
	if g.dirty {
		return g.pool.disk.WriteFrame(g.pageID, g.data)
	}
	return nil
}

// Delete deallocates the page without writing it back.
func (g *ThinFrameGuard) Delete() error {
	if g.dropped {
		return ErrGuardDropped
	}
	g.dropped = true
	delete(g.pool.pinned, g.pageID)
	return g.pool.disk.DeallocateFrame(g.pageID)
}

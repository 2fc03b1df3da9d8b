package pagestore

import (
	"fmt"
	"log/slog"
	"os"

	"ticketstore/internal/bx"
)

// DiskManager owns the single backing file for one database instance: raw
// frame I/O, the free-frame intrusive list, and info-page persistence.
//
// Grounded on _examples/original_source/src/disk_manager.h, restructured in
// a pager/storage-manager idiom
// (_examples/tuannm99-novasql/internal/storage/{pager,sm}.go).
type DiskManager struct {
	file       *os.File
	pagesPerFrame int
	frameSize  int
	numFrames  int32
	info       [infoSlots]int32
}

// Open opens (or creates) path as a backing file. If reset is true the file
// is truncated and a fresh info page is written (slot 0 holds InvalidPageID
// for an empty free list, every other slot is zero); otherwise the existing
// info page and frame count are recovered from the file.
func Open(path string, reset bool, pagesPerFrame int) (*DiskManager, error) {
	if pagesPerFrame <= 0 {
		pagesPerFrame = 1
	}
	flag := os.O_RDWR | os.O_CREATE
	if reset {
		flag |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}

	dm := &DiskManager{
		file:          f,
		pagesPerFrame: pagesPerFrame,
		frameSize:     PageSize * pagesPerFrame,
	}
	dm.info[FreeListHeadSlot] = InvalidPageID

	if reset {
		if err := dm.flushInfo(); err != nil {
			f.Close()
			return nil, err
		}
		return dm, nil
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIO, path, err)
	}
	if st.Size() < PageSize {
		if err := dm.flushInfo(); err != nil {
			f.Close()
			return nil, err
		}
		return dm, nil
	}

	buf := make([]byte, PageSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: read info page: %v", ErrIO, err)
	}
	for i := 0; i < infoSlots; i++ {
		dm.info[i] = bx.I32At(buf, i*4)
	}
	dm.numFrames = int32((st.Size() - PageSize) / int64(dm.frameSize))
	return dm, nil
}

// FrameSize returns the size in bytes of one frame (PageSize * PagesPerFrame).
func (d *DiskManager) FrameSize() int { return d.frameSize }

// NumFrames returns the number of frames ever allocated in the backing file
// (including ones currently on the free list).
func (d *DiskManager) NumFrames() int32 { return d.numFrames }

func (d *DiskManager) offset(pageID int32) int64 {
	return int64(PageSize) + int64(pageID)*int64(d.frameSize)
}

func (d *DiskManager) checkValid(pageID int32) error {
	if pageID < 0 || pageID >= d.numFrames {
		return fmt.Errorf("%w: page %d (numFrames=%d)", ErrInvalidPage, pageID, d.numFrames)
	}
	return nil
}

// AllocateFrame pops the free list if non-empty, else extends the file by
// one frame. Returns the new page id.
func (d *DiskManager) AllocateFrame() (int32, error) {
	head := d.info[FreeListHeadSlot]
	if head != InvalidPageID {
		next := make([]byte, 4)
		if _, err := d.file.ReadAt(next, d.offset(head)); err != nil {
			return InvalidPageID, fmt.Errorf("%w: read free head %d: %v", ErrIO, head, err)
		}
		d.info[FreeListHeadSlot] = bx.I32(next)
		slog.Debug("pagestore: allocate from free list", "page", head)
		return head, nil
	}
	id := d.numFrames
	zero := make([]byte, d.frameSize)
	if _, err := d.file.WriteAt(zero, d.offset(id)); err != nil {
		return InvalidPageID, fmt.Errorf("%w: extend to frame %d: %v", ErrIO, id, err)
	}
	d.numFrames++
	slog.Debug("pagestore: allocate by extend", "page", id)
	return id, nil
}

// DeallocateFrame returns a frame to the free list. The frame's payload
// bytes become undefined; its first 4 bytes are overwritten with the
// previous free-list head.
func (d *DiskManager) DeallocateFrame(pageID int32) error {
	if err := d.checkValid(pageID); err != nil {
		return err
	}
	var head [4]byte
	bx.PutI32(head[:], d.info[FreeListHeadSlot])
	if _, err := d.file.WriteAt(head[:], d.offset(pageID)); err != nil {
		return fmt.Errorf("%w: write free link %d: %v", ErrIO, pageID, err)
	}
	d.info[FreeListHeadSlot] = pageID
	slog.Debug("pagestore: deallocate", "page", pageID)
	return nil
}

// ReadFrame transfers exactly FrameSize bytes from pageID into buf.
func (d *DiskManager) ReadFrame(pageID int32, buf []byte) error {
	if err := d.checkValid(pageID); err != nil {
		return err
	}
	if len(buf) != d.frameSize {
		return fmt.Errorf("%w: buffer size %d != frame size %d", ErrIO, len(buf), d.frameSize)
	}
	if _, err := d.file.ReadAt(buf, d.offset(pageID)); err != nil {
		return fmt.Errorf("%w: read frame %d: %v", ErrIO, pageID, err)
	}
	return nil
}

// WriteFrame transfers exactly FrameSize bytes from buf to pageID.
func (d *DiskManager) WriteFrame(pageID int32, buf []byte) error {
	if err := d.checkValid(pageID); err != nil {
		return err
	}
	if len(buf) != d.frameSize {
		return fmt.Errorf("%w: buffer size %d != frame size %d", ErrIO, len(buf), d.frameSize)
	}
	if _, err := d.file.WriteAt(buf, d.offset(pageID)); err != nil {
		return fmt.Errorf("%w: write frame %d: %v", ErrIO, pageID, err)
	}
	return nil
}

// Info returns a mutable reference to info-page slot i. Slot 0 is reserved
// for the free-list head; slots 1+ are caller-owned metadata.
func (d *DiskManager) Info(i int) *int32 {
	return &d.info[i]
}

func (d *DiskManager) flushInfo() error {
	buf := make([]byte, PageSize)
	for i := 0; i < infoSlots; i++ {
		bx.PutI32At(buf, i*4, d.info[i])
	}
	if _, err := d.file.WriteAt(buf, 0); err != nil {
		return fmt.Errorf("%w: flush info page: %v", ErrIO, err)
	}
	return nil
}

// Close flushes the info page and closes the backing file.
func (d *DiskManager) Close() error {
	if err := d.flushInfo(); err != nil {
		d.file.Close()
		return err
	}
	if err := d.file.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrIO, err)
	}
	return nil
}

package vls

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ticketstore/internal/bufferpool"
	"ticketstore/internal/pagestore"
)

func TestStore_AllocateGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.bin")
	disk, err := pagestore.Open(path, true, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = disk.Close() })
	pool := bufferpool.NewPool(disk, 8, 2)
	s := New(pool, 2, true)

	payload := []byte("a fixed-size ticket seat record")
	id, h, err := s.Allocate(len(payload))
	require.NoError(t, err)
	copy(h.BytesMut(), payload)
	require.NoError(t, h.Drop())

	h2, err := s.Get(id, len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, h2.Bytes())
	require.NoError(t, h2.Drop())
}

func TestStore_AllocateRejectsOversizedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.bin")
	disk, err := pagestore.Open(path, true, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = disk.Close() })
	pool := bufferpool.NewPool(disk, 8, 2)
	s := New(pool, 2, true)

	_, _, err = s.Allocate(disk.FrameSize() + 1)
	require.ErrorIs(t, err, ErrRecordTooLarge)
}

// TestStore_PersistsAcrossReopen exercises spec.md §8.4 seed scenario 7:
// three allocations of sizes 100, 4000, 50 — the 4000-byte allocation forces
// a new frame, and the 50-byte allocation lands in that same new frame —
// followed by a close/reopen cycle that must preserve every byte.
func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.bin")
	disk, err := pagestore.Open(path, true, 1)
	require.NoError(t, err)
	pool := bufferpool.NewPool(disk, 8, 2)
	s := New(pool, 2, true)

	buf100 := bytes(100, 1)
	buf4000 := bytes(4000, 2)
	buf50 := bytes(50, 3)

	id1, h1, err := s.Allocate(len(buf100))
	require.NoError(t, err)
	copy(h1.BytesMut(), buf100)
	require.NoError(t, h1.Drop())

	id2, h2, err := s.Allocate(len(buf4000))
	require.NoError(t, err)
	copy(h2.BytesMut(), buf4000)
	require.NoError(t, h2.Drop())

	id3, h3, err := s.Allocate(len(buf50))
	require.NoError(t, err)
	copy(h3.BytesMut(), buf50)
	require.NoError(t, h3.Drop())

	// The 4000-byte record forced a new frame; the 50-byte record landed on
	// that same frame rather than starting yet another one.
	frameSize := int32(disk.FrameSize())
	require.Equal(t, int32(id2)/frameSize, int32(id3)/frameSize)

	require.NoError(t, pool.Close())
	require.NoError(t, disk.Close())

	disk2, err := pagestore.Open(path, false, 1)
	require.NoError(t, err)
	defer disk2.Close()
	pool2 := bufferpool.NewPool(disk2, 8, 2)
	s2 := New(pool2, 2, false)

	for id, want := range map[RecordID][]byte{id1: buf100, id2: buf4000, id3: buf50} {
		h, err := s2.Get(id, len(want))
		require.NoError(t, err)
		require.Equal(t, want, h.Bytes())
		require.NoError(t, h.Drop())
	}
}

func bytes(n int, seed byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(int(seed)+i) % 251
	}
	return out
}

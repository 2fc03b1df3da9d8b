package pagestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDisk(t *testing.T) *DiskManager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.bin")
	dm, err := Open(path, true, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dm.Close() })
	return dm
}

func TestDiskManager_AllocateExtendsFile(t *testing.T) {
	dm := newTestDisk(t)

	p0, err := dm.AllocateFrame()
	require.NoError(t, err)
	require.EqualValues(t, 0, p0)

	p1, err := dm.AllocateFrame()
	require.NoError(t, err)
	require.EqualValues(t, 1, p1)
	require.EqualValues(t, 2, dm.NumFrames())
}

func TestDiskManager_ReadWriteRoundTrip(t *testing.T) {
	dm := newTestDisk(t)

	pid, err := dm.AllocateFrame()
	require.NoError(t, err)

	out := make([]byte, dm.FrameSize())
	for i := range out {
		out[i] = byte(i % 251)
	}
	require.NoError(t, dm.WriteFrame(pid, out))

	in := make([]byte, dm.FrameSize())
	require.NoError(t, dm.ReadFrame(pid, in))
	require.Equal(t, out, in)
}

func TestDiskManager_DeallocateThenReallocateReusesFrame(t *testing.T) {
	dm := newTestDisk(t)

	p0, _ := dm.AllocateFrame()
	p1, _ := dm.AllocateFrame()
	require.NoError(t, dm.DeallocateFrame(p1))
	require.NoError(t, dm.DeallocateFrame(p0))

	reused, err := dm.AllocateFrame()
	require.NoError(t, err)
	require.EqualValues(t, p0, reused)

	reused2, err := dm.AllocateFrame()
	require.NoError(t, err)
	require.EqualValues(t, p1, reused2)

	// free list is exhausted now; next allocation must extend the file.
	fresh, err := dm.AllocateFrame()
	require.NoError(t, err)
	require.EqualValues(t, 2, fresh)
}

func TestDiskManager_InfoPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.bin")
	dm, err := Open(path, true, 1)
	require.NoError(t, err)

	pid, err := dm.AllocateFrame()
	require.NoError(t, err)
	*dm.Info(1) = 42
	require.NoError(t, dm.Close())

	reopened, err := Open(path, false, 1)
	require.NoError(t, err)
	defer reopened.Close()

	require.EqualValues(t, 42, *reopened.Info(1))
	require.EqualValues(t, 1, reopened.NumFrames())

	buf := make([]byte, reopened.FrameSize())
	require.NoError(t, reopened.ReadFrame(pid, buf))
}

func TestDiskManager_InvalidPageRejected(t *testing.T) {
	dm := newTestDisk(t)
	buf := make([]byte, dm.FrameSize())
	err := dm.ReadFrame(5, buf)
	require.ErrorIs(t, err, ErrInvalidPage)
}

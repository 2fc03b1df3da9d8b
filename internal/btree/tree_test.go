package btree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ticketstore/internal/bufferpool"
	"ticketstore/internal/codec"
	"ticketstore/internal/pagestore"
)

func newTestPool(t *testing.T, capacity int) *bufferpool.Pool {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.bin")
	disk, err := pagestore.Open(path, true, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = disk.Close() })
	return bufferpool.NewPool(disk, capacity, 2)
}

func newInt64Tree(t *testing.T, maxDegree int) *Tree[int64, int64] {
	t.Helper()
	pool := newTestPool(t, 64)
	return New[int64, int64](pool, codec.Int64Codec{}, codec.Int64Codec{}, codec.CompareInt64, 1, true, maxDegree)
}

func TestTree_InsertGetRoundTrip(t *testing.T) {
	tr := newInt64Tree(t, 0)

	for _, k := range []int64{10, 3, 7, 1, 20} {
		ok, err := tr.Insert(k, k*100)
		require.NoError(t, err)
		require.True(t, ok)
	}

	for _, k := range []int64{10, 3, 7, 1, 20} {
		v, found, err := tr.Get(k)
		require.NoError(t, err)
		require.True(t, found)
		require.EqualValues(t, k*100, v)
	}

	_, found, err := tr.Get(999)
	require.NoError(t, err)
	require.False(t, found)

	ok, valid := tr.Validate()
	require.Empty(t, valid)
	require.True(t, ok)
}

func TestTree_InsertDuplicateRejected(t *testing.T) {
	tr := newInt64Tree(t, 0)

	ok, err := tr.Insert(5, 50)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = tr.Insert(5, 999)
	require.NoError(t, err)
	require.False(t, ok)

	v, found, err := tr.Get(5)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 50, v)
}

func TestTree_SetValueOverwritesExisting(t *testing.T) {
	tr := newInt64Tree(t, 0)
	ok, err := tr.Insert(1, 100)
	require.NoError(t, err)
	require.True(t, ok)

	// Overwriting an existing key reports false (no insert happened).
	ok, err = tr.SetValue(1, 200)
	require.NoError(t, err)
	require.False(t, ok)

	v, found, err := tr.Get(1)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 200, v)

	// Setting a missing key reports true and actually inserts it.
	ok, err = tr.SetValue(2, 1)
	require.NoError(t, err)
	require.True(t, ok)

	v, found, err = tr.Get(2)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 1, v)
}

func TestTree_OrderedScanViaIterator(t *testing.T) {
	tr := newInt64Tree(t, 4)

	keys := []int64{50, 10, 90, 30, 70, 20, 60, 40, 80, 5, 15, 25, 35}
	for _, k := range keys {
		ok, err := tr.Insert(k, k)
		require.NoError(t, err)
		require.True(t, ok)
	}

	hint, err := tr.LowerBound(0)
	require.NoError(t, err)
	require.True(t, hint.Found())

	it, err := tr.NewIterator(hint)
	require.NoError(t, err)
	defer it.Close()

	var seen []int64
	for it.Valid() {
		seen = append(seen, it.Key())
		require.NoError(t, it.Next())
	}

	want := append([]int64(nil), keys...)
	sortInt64s(want)
	require.Equal(t, want, seen)
}

func sortInt64s(s []int64) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func TestTree_LowerBoundCrossesLeafBoundary(t *testing.T) {
	tr := newInt64Tree(t, 4)
	for _, k := range []int64{10, 20, 30, 40, 50, 60, 70, 80} {
		ok, err := tr.Insert(k, k)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Leaves are [10 20 30] and [40 ...] with separator 40: target 35 descends
	// into the first leaf, finds nothing >= 35 there, and resolves to the
	// next leaf's first key.
	hint, err := tr.LowerBound(35)
	require.NoError(t, err)
	require.True(t, hint.Found())
	it, err := tr.NewIterator(hint)
	require.NoError(t, err)
	defer it.Close()
	require.True(t, it.Valid())
	require.EqualValues(t, 40, it.Key())

	_, err = tr.LowerBound(1000)
	require.NoError(t, err)
}

func TestTree_SplitAndResplitStaysValid(t *testing.T) {
	tr := newInt64Tree(t, 4)

	for i := int64(1); i <= 40; i++ {
		ok, err := tr.Insert(i, i*10)
		require.NoError(t, err)
		require.True(t, ok)
		valid, issues := tr.Validate()
		require.Truef(t, valid, "after inserting %d: %v", i, issues)
	}

	for i := int64(1); i <= 40; i++ {
		v, found, err := tr.Get(i)
		require.NoError(t, err)
		require.True(t, found)
		require.EqualValues(t, i*10, v)
	}
}

func TestTree_BorrowThenMergeStaysValid(t *testing.T) {
	tr := newInt64Tree(t, 4)

	for i := int64(1); i <= 40; i++ {
		ok, err := tr.Insert(i, i)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Remove in an order that forces both borrow and merge rebalancing.
	for i := int64(1); i <= 40; i += 2 {
		ok, err := tr.Remove(i)
		require.NoError(t, err)
		require.True(t, ok)
		valid, issues := tr.Validate()
		require.Truef(t, valid, "after removing %d: %v", i, issues)
	}

	for i := int64(1); i <= 40; i++ {
		_, found, err := tr.Get(i)
		require.NoError(t, err)
		require.Equal(t, i%2 == 0, found)
	}

	for i := int64(2); i <= 40; i += 2 {
		ok, err := tr.Remove(i)
		require.NoError(t, err)
		require.True(t, ok)
		valid, issues := tr.Validate()
		require.Truef(t, valid, "after removing %d: %v", i, issues)
	}

	require.True(t, tr.Empty())
}

func TestTree_RemoveMissingKeyIsNoop(t *testing.T) {
	tr := newInt64Tree(t, 0)
	ok, err := tr.Remove(42)
	require.NoError(t, err)
	require.False(t, ok)
}

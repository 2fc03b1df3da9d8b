package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt64Codec_RoundTrip(t *testing.T) {
	var c Int64Codec
	buf := make([]byte, c.Size())
	c.Encode(buf, -12345)
	require.EqualValues(t, -12345, c.Decode(buf))
}

func TestPairCodec_RoundTrip(t *testing.T) {
	pc := PairCodec[int64, int32]{First: Int64Codec{}, Second: Int32Codec{}}
	buf := make([]byte, pc.Size())
	in := Pair[int64, int32]{First: 7, Second: -3}
	pc.Encode(buf, in)
	require.Equal(t, in, pc.Decode(buf))
}

func TestComparePair_Lexicographic(t *testing.T) {
	cmp := ComparePair[int64, int32](CompareInt64, CompareInt32)

	require.Equal(t, -1, cmp(Pair[int64, int32]{1, 9}, Pair[int64, int32]{2, 0}))
	require.Equal(t, 1, cmp(Pair[int64, int32]{2, 0}, Pair[int64, int32]{1, 9}))
	require.Equal(t, -1, cmp(Pair[int64, int32]{1, 1}, Pair[int64, int32]{1, 2}))
	require.Equal(t, 0, cmp(Pair[int64, int32]{1, 1}, Pair[int64, int32]{1, 1}))
}

// Package codec provides fixed-size on-disk encodings for B+ tree keys and
// values, generalizing a hard-coded per-type encode/decode
// pairs (_examples/tuannm99-novasql/internal/btree/entry.go, which hard-codes
// KeyType = int64) into a reusable generic FixedCodec[T].
package codec

import "ticketstore/internal/bx"

// FixedCodec encodes and decodes a fixed-size value T to/from a byte slice.
type FixedCodec[T any] interface {
	Size() int
	Encode(buf []byte, v T)
	Decode(buf []byte) T
}

// Comparator defines a total, transitive ordering over T, per spec.md §9
// ("Key comparison: keys are compared as opaque ordered values").
type Comparator[T any] func(a, b T) int

// Int32Codec encodes int32 values in 4 bytes, little-endian.
type Int32Codec struct{}

func (Int32Codec) Size() int                 { return 4 }
func (Int32Codec) Encode(buf []byte, v int32) { bx.PutI32(buf, v) }
func (Int32Codec) Decode(buf []byte) int32    { return bx.I32(buf) }

// CompareInt32 orders int32 values ascending.
func CompareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Int64Codec encodes int64 values in 8 bytes, little-endian.
type Int64Codec struct{}

func (Int64Codec) Size() int                 { return 8 }
func (Int64Codec) Encode(buf []byte, v int64) { bx.PutI64(buf, v) }
func (Int64Codec) Decode(buf []byte) int64    { return bx.I64(buf) }

// CompareInt64 orders int64 values ascending.
func CompareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// FixedBytesCodec encodes a byte slice of exactly N bytes verbatim. Useful
// for opaque fixed-size record values (e.g. VLS record headers) indexed by
// the B+ tree.
type FixedBytesCodec struct {
	N int
}

func (c FixedBytesCodec) Size() int { return c.N }
func (c FixedBytesCodec) Encode(buf []byte, v []byte) {
	copy(buf[:c.N], v)
}
func (c FixedBytesCodec) Decode(buf []byte) []byte {
	out := make([]byte, c.N)
	copy(out, buf[:c.N])
	return out
}

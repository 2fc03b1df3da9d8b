package btree

import "ticketstore/internal/bx"

// leafEntry is the in-memory representation of one (key, value) slot.
type leafEntry[K any, V any] struct {
	key K
	val V
}

// internalEntry is the in-memory representation of one (separator key,
// right child) pair. An internal node's leftmost child is carried
// separately since it has no associated key (spec.md §3.4: "P[0..n]"
// children for "n" keys).
type internalEntry[K any] struct {
	key   K
	child int32
}

func isLeafPage(buf []byte) bool {
	leaf, _ := unpackHeader(bx.U32(buf[0:4]))
	return leaf
}

func (t *Tree[K, V]) decodeLeaf(buf []byte) (next int32, entries []leafEntry[K, V]) {
	_, size := unpackHeader(bx.U32(buf[0:4]))
	next = bx.I32(buf[4:8])
	ks := t.keyCodec.Size()
	vs := t.valCodec.Size()
	keysOff := leafHeaderSize
	valsOff := leafHeaderSize + t.maxLeaf*ks
	entries = make([]leafEntry[K, V], size)
	for i := 0; i < size; i++ {
		entries[i].key = t.keyCodec.Decode(buf[keysOff+i*ks : keysOff+(i+1)*ks])
		entries[i].val = t.valCodec.Decode(buf[valsOff+i*vs : valsOff+(i+1)*vs])
	}
	return next, entries
}

func (t *Tree[K, V]) encodeLeaf(buf []byte, next int32, entries []leafEntry[K, V]) {
	bx.PutU32(buf[0:4], packHeader(true, len(entries)))
	bx.PutI32(buf[4:8], next)
	ks := t.keyCodec.Size()
	vs := t.valCodec.Size()
	keysOff := leafHeaderSize
	valsOff := leafHeaderSize + t.maxLeaf*ks
	for i, e := range entries {
		t.keyCodec.Encode(buf[keysOff+i*ks:keysOff+(i+1)*ks], e.key)
		t.valCodec.Encode(buf[valsOff+i*vs:valsOff+(i+1)*vs], e.val)
	}
}

func (t *Tree[K, V]) decodeInternal(buf []byte) (leftmost int32, entries []internalEntry[K]) {
	_, size := unpackHeader(bx.U32(buf[0:4]))
	ks := t.keyCodec.Size()
	keysOff := 4
	childrenOff := 4 + t.maxInternal*ks
	leftmost = bx.I32(buf[childrenOff : childrenOff+4])
	entries = make([]internalEntry[K], size)
	for i := 0; i < size; i++ {
		entries[i].key = t.keyCodec.Decode(buf[keysOff+i*ks : keysOff+(i+1)*ks])
		entries[i].child = bx.I32(buf[childrenOff+(i+1)*4 : childrenOff+(i+2)*4])
	}
	return leftmost, entries
}

func (t *Tree[K, V]) encodeInternal(buf []byte, leftmost int32, entries []internalEntry[K]) {
	bx.PutU32(buf[0:4], packHeader(false, len(entries)))
	ks := t.keyCodec.Size()
	keysOff := 4
	childrenOff := 4 + t.maxInternal*ks
	bx.PutI32(buf[childrenOff:childrenOff+4], leftmost)
	for i, e := range entries {
		t.keyCodec.Encode(buf[keysOff+i*ks:keysOff+(i+1)*ks], e.key)
		bx.PutI32(buf[childrenOff+(i+1)*4:childrenOff+(i+2)*4], e.child)
	}
}

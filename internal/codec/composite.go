package codec

// Pair is a composite key (K1, K2) as described in spec.md §3: a tree over
// Pair[A,B] keys supports duplicate-key range queries via PartialSearch on
// the first component.
type Pair[A any, B any] struct {
	First  A
	Second B
}

// PairCodec encodes a Pair[A,B] as the concatenation of its component
// encodings.
type PairCodec[A any, B any] struct {
	First  FixedCodec[A]
	Second FixedCodec[B]
}

func (c PairCodec[A, B]) Size() int {
	return c.First.Size() + c.Second.Size()
}

func (c PairCodec[A, B]) Encode(buf []byte, v Pair[A, B]) {
	n := c.First.Size()
	c.First.Encode(buf[:n], v.First)
	c.Second.Encode(buf[n:n+c.Second.Size()], v.Second)
}

func (c PairCodec[A, B]) Decode(buf []byte) Pair[A, B] {
	n := c.First.Size()
	return Pair[A, B]{
		First:  c.First.Decode(buf[:n]),
		Second: c.Second.Decode(buf[n : n+c.Second.Size()]),
	}
}

// ComparePair builds a lexicographic comparator for Pair[A,B] out of
// per-component comparators (spec.md §9: "composite keys use lexicographic
// ordering on their components").
func ComparePair[A any, B any](cmpA Comparator[A], cmpB Comparator[B]) Comparator[Pair[A, B]] {
	return func(a, b Pair[A, B]) int {
		if c := cmpA(a.First, b.First); c != 0 {
			return c
		}
		return cmpB(a.Second, b.Second)
	}
}

package btree

import "ticketstore/internal/codec"

// PartialSearch scans a Tree keyed by codec.Pair[A, B] for every value whose
// key's First component equals first, per spec.md §4.3.5's duplicate-key
// range query pattern (composite keys stand in for a secondary index).
// minSecond must be a value no comparator-greater than any Second the caller
// will ever store alongside first (callers typically pass the type's
// minimum representable value).
func PartialSearch[A any, B any, V any](
	t *Tree[codec.Pair[A, B], V],
	first A,
	minSecond B,
	cmpFirst codec.Comparator[A],
) ([]V, error) {
	hint, err := t.LowerBound(codec.Pair[A, B]{First: first, Second: minSecond})
	if err != nil {
		return nil, err
	}
	if !hint.Found() {
		return nil, nil
	}
	it, err := t.NewIterator(hint)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []V
	for it.Valid() {
		k := it.Key()
		if cmpFirst(k.First, first) != 0 {
			break
		}
		out = append(out, it.Value())
		if err := it.Next(); err != nil {
			return out, err
		}
	}
	return out, nil
}

// RemoveAll deletes every entry whose key's First component equals first,
// returning the number removed. Matching keys are collected before any
// removal begins, since removal can split or merge the very leaves an
// in-progress scan is pinned to.
func RemoveAll[A any, B any, V any](
	t *Tree[codec.Pair[A, B], V],
	first A,
	minSecond B,
	cmpFirst codec.Comparator[A],
) (int, error) {
	hint, err := t.LowerBound(codec.Pair[A, B]{First: first, Second: minSecond})
	if err != nil {
		return 0, err
	}
	if !hint.Found() {
		return 0, nil
	}
	it, err := t.NewIterator(hint)
	if err != nil {
		return 0, err
	}

	var keys []codec.Pair[A, B]
	for it.Valid() {
		k := it.Key()
		if cmpFirst(k.First, first) != 0 {
			break
		}
		keys = append(keys, k)
		if err := it.Next(); err != nil {
			it.Close()
			return 0, err
		}
	}
	if err := it.Close(); err != nil {
		return 0, err
	}

	n := 0
	for _, k := range keys {
		ok, err := t.Remove(k)
		if err != nil {
			return n, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

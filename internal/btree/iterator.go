package btree

import (
	"ticketstore/internal/bufferpool"
	"ticketstore/internal/pagestore"
)

// Iterator is a forward cursor over leaf entries, holding a pinned leaf
// frame between calls (spec.md §4.3.1). Callers must Close it when done, or
// exhaust it via Next until !Valid().
type Iterator[K any, V any] struct {
	tree    *Tree[K, V]
	guard   *bufferpool.FrameGuard
	entries []leafEntry[K, V]
	idx     int
	next    int32
	done    bool
}

// NewIterator positions an iterator at hint. A not-found hint yields an
// iterator that is immediately !Valid().
func (t *Tree[K, V]) NewIterator(hint PositionHint) (*Iterator[K, V], error) {
	if !hint.Found() {
		return &Iterator[K, V]{done: true}, nil
	}
	guard, err := t.pool.FetchFrameBasic(hint.PageID)
	if err != nil {
		return nil, err
	}
	next, entries := t.decodeLeaf(guard.Data())
	return &Iterator[K, V]{tree: t, guard: guard, entries: entries, idx: hint.Index, next: next}, nil
}

// Valid reports whether Key/Value may be called.
func (it *Iterator[K, V]) Valid() bool {
	return !it.done && it.idx < len(it.entries)
}

// Key returns the current entry's key. Valid must be true.
func (it *Iterator[K, V]) Key() K { return it.entries[it.idx].key }

// Value returns the current entry's value. Valid must be true.
func (it *Iterator[K, V]) Value() V { return it.entries[it.idx].val }

// Next advances to the following entry, crossing into the next leaf via its
// next-leaf pointer when the current one is exhausted.
func (it *Iterator[K, V]) Next() error {
	if it.done {
		return nil
	}
	it.idx++
	if it.idx < len(it.entries) {
		return nil
	}
	if it.next == pagestore.InvalidPageID {
		it.done = true
		return it.guard.Drop()
	}
	nextPageID := it.next
	if err := it.guard.Drop(); err != nil {
		return err
	}
	guard, err := it.tree.pool.FetchFrameBasic(nextPageID)
	if err != nil {
		return err
	}
	next, entries := it.tree.decodeLeaf(guard.Data())
	it.guard = guard
	it.entries = entries
	it.next = next
	it.idx = 0
	if len(entries) == 0 {
		it.done = true
		return it.guard.Drop()
	}
	return nil
}

// Close releases the iterator's pinned frame, if any. Safe to call more
// than once and after the iterator is exhausted.
func (it *Iterator[K, V]) Close() error {
	if it.guard == nil {
		return nil
	}
	g := it.guard
	it.guard = nil
	it.done = true
	return g.Drop()
}

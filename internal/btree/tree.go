// Package btree implements a disk-backed B+ tree mapping fixed-size keys to
// fixed-size values, per spec.md §4.3. Pages are fetched and pinned through
// a bufferpool.Pool; no parent pointers are kept in memory — instead each
// descent records a breadcrumb stack of (pageID, childIdx) hints used to
// walk back up on split/merge, mirroring the recursive insert/erase
// structure of _examples/original_source/src/b_plus_tree.cpp while replacing
// its in-place fixed-array node layout with decode-to-slice-then-reencode,
// which is simpler in Go and produces identical split points (see
// SPEC_FULL.md §4.3 implementation note).
package btree

import (
	"fmt"
	"sort"

	"ticketstore/internal/bufferpool"
	"ticketstore/internal/codec"
	"ticketstore/internal/pagestore"
)

// Tree is a generic B+ tree index over a bufferpool.Pool. K and V must have
// fixed on-disk sizes described by keyCodec/valCodec.
type Tree[K any, V any] struct {
	pool     *bufferpool.Pool
	keyCodec codec.FixedCodec[K]
	valCodec codec.FixedCodec[V]
	cmp      codec.Comparator[K]

	rootSlot int

	maxLeaf, minLeaf         int
	maxInternal, minInternal int
}

// posHint is a breadcrumb recording that, while descending, the tree moved
// into the childIdx'th child of the node at pageID. childIdx 0 means the
// internal node's leftmost child; childIdx i>=1 means entries[i-1].child.
type posHint struct {
	pageID   int32
	childIdx int
}

// New constructs a Tree backed by pool, persisting its root page id in the
// given disk-manager info-page slot (spec.md §3.3: "small fixed metadata
// lives in the info page"). When fresh is true the slot is initialized to an
// empty tree; otherwise the existing root id is trusted as-is.
//
// maxDegree, when nonzero, overrides the frame-size-derived fanout — used by
// tests to exercise small trees (spec.md §8.4 boundary scenarios use
// maxSize=4).
func New[K any, V any](
	pool *bufferpool.Pool,
	keyCodec codec.FixedCodec[K],
	valCodec codec.FixedCodec[V],
	cmp codec.Comparator[K],
	rootSlot int,
	fresh bool,
	maxDegree int,
) *Tree[K, V] {
	t := &Tree[K, V]{
		pool:     pool,
		keyCodec: keyCodec,
		valCodec: valCodec,
		cmp:      cmp,
		rootSlot: rootSlot,
	}
	if maxDegree > 0 {
		t.maxLeaf = maxDegree
		t.maxInternal = maxDegree
	} else {
		t.maxLeaf = maxLeafSize(pool.FrameSize(), keyCodec.Size(), valCodec.Size())
		t.maxInternal = maxInternalSize(pool.FrameSize(), keyCodec.Size())
	}
	t.minLeaf = t.maxLeaf / 2
	t.minInternal = t.maxInternal / 2
	if fresh {
		t.setRootPageID(pagestore.InvalidPageID)
	}
	return t
}

func (t *Tree[K, V]) rootPageID() int32     { return *t.pool.Info(t.rootSlot) }
func (t *Tree[K, V]) setRootPageID(id int32) { *t.pool.Info(t.rootSlot) = id }

// Empty reports whether the tree currently holds no entries.
func (t *Tree[K, V]) Empty() bool { return t.rootPageID() == pagestore.InvalidPageID }

// childAt resolves logical child index idx (0 = leftmost) to a page id.
func childAt[K any](leftmost int32, entries []internalEntry[K], idx int) int32 {
	if idx == 0 {
		return leftmost
	}
	return entries[idx-1].child
}

// descendToLeaf walks from the root to the leaf that would contain key,
// returning the leaf's page id and the breadcrumb stack of internal hops
// taken to reach it. Each internal frame is fetched and dropped immediately;
// only the leaf (if any) is left for the caller to fetch itself.
func (t *Tree[K, V]) descendToLeaf(key K) (int32, []posHint, error) {
	root := t.rootPageID()
	if root == pagestore.InvalidPageID {
		return pagestore.InvalidPageID, nil, nil
	}
	var path []posHint
	pageID := root
	for {
		guard, err := t.pool.FetchFrameBasic(pageID)
		if err != nil {
			return pagestore.InvalidPageID, nil, err
		}
		if isLeafPage(guard.Data()) {
			if err := guard.Drop(); err != nil {
				return pagestore.InvalidPageID, nil, err
			}
			return pageID, path, nil
		}
		leftmost, entries := t.decodeInternal(guard.Data())
		if err := guard.Drop(); err != nil {
			return pagestore.InvalidPageID, nil, err
		}
		idx := sort.Search(len(entries), func(i int) bool { return t.cmp(entries[i].key, key) > 0 })
		path = append(path, posHint{pageID: pageID, childIdx: idx})
		pageID = childAt(leftmost, entries, idx)
	}
}

// Get looks up key, returning its value and true if present.
func (t *Tree[K, V]) Get(key K) (V, bool, error) {
	var zero V
	leafPageID, _, err := t.descendToLeaf(key)
	if err != nil {
		return zero, false, err
	}
	if leafPageID == pagestore.InvalidPageID {
		return zero, false, nil
	}
	guard, err := t.pool.FetchFrameBasic(leafPageID)
	if err != nil {
		return zero, false, err
	}
	defer guard.Drop()
	_, entries := t.decodeLeaf(guard.Data())
	i := sort.Search(len(entries), func(i int) bool { return t.cmp(entries[i].key, key) >= 0 })
	if i < len(entries) && t.cmp(entries[i].key, key) == 0 {
		return entries[i].val, true, nil
	}
	return zero, false, nil
}

// PositionHint names a leaf entry by the page that holds it and its index
// within that page's decoded entry slice.
type PositionHint struct {
	PageID int32
	Index  int
}

// NotFound is the sentinel PositionHint returned when a query has no match.
var NotFound = PositionHint{PageID: pagestore.InvalidPageID, Index: -1}

// Found reports whether h names a real position.
func (h PositionHint) Found() bool { return h.Index >= 0 }

// LowerBound returns a hint to the first entry with key >= target (spec.md
// §9 open question, resolved as the literal "first key >= target" contract).
func (t *Tree[K, V]) LowerBound(target K) (PositionHint, error) {
	leafPageID, _, err := t.descendToLeaf(target)
	if err != nil {
		return NotFound, err
	}
	if leafPageID == pagestore.InvalidPageID {
		return NotFound, nil
	}
	guard, err := t.pool.FetchFrameBasic(leafPageID)
	if err != nil {
		return NotFound, err
	}
	next, entries := t.decodeLeaf(guard.Data())
	if err := guard.Drop(); err != nil {
		return NotFound, err
	}
	i := sort.Search(len(entries), func(i int) bool { return t.cmp(entries[i].key, target) >= 0 })
	if i < len(entries) {
		return PositionHint{PageID: leafPageID, Index: i}, nil
	}
	if next == pagestore.InvalidPageID {
		return NotFound, nil
	}
	return PositionHint{PageID: next, Index: 0}, nil
}

// SetValue inserts key if absent (reporting true, per spec.md §4.3.1: "insert
// if not found, return true if inserted") or overwrites its value in place if
// present (reporting false).
func (t *Tree[K, V]) SetValue(key K, val V) (bool, error) {
	if t.Empty() {
		return true, t.insertFirst(key, val)
	}

	leafPageID, path, err := t.descendToLeaf(key)
	if err != nil {
		return false, err
	}
	guard, err := t.pool.FetchFrameBasic(leafPageID)
	if err != nil {
		return false, err
	}
	next, entries := t.decodeLeaf(guard.Data())
	i := sort.Search(len(entries), func(i int) bool { return t.cmp(entries[i].key, key) >= 0 })
	if i < len(entries) && t.cmp(entries[i].key, key) == 0 {
		entries[i].val = val
		t.encodeLeaf(guard.DataMut(), next, entries)
		return false, guard.Drop()
	}

	return true, t.insertIntoLeaf(guard, leafPageID, path, next, entries, i, key, val)
}

// Insert adds (key, val), reporting false without error if key is already
// present (spec.md: duplicate keys are rejected, not overwritten).
func (t *Tree[K, V]) Insert(key K, val V) (bool, error) {
	if t.Empty() {
		return true, t.insertFirst(key, val)
	}

	leafPageID, path, err := t.descendToLeaf(key)
	if err != nil {
		return false, err
	}
	guard, err := t.pool.FetchFrameBasic(leafPageID)
	if err != nil {
		return false, err
	}
	next, entries := t.decodeLeaf(guard.Data())
	i := sort.Search(len(entries), func(i int) bool { return t.cmp(entries[i].key, key) >= 0 })
	if i < len(entries) && t.cmp(entries[i].key, key) == 0 {
		return false, guard.Drop()
	}

	return true, t.insertIntoLeaf(guard, leafPageID, path, next, entries, i, key, val)
}

// insertFirst creates the tree's first leaf, holding (key, val) alone.
func (t *Tree[K, V]) insertFirst(key K, val V) error {
	guard, pageID, err := t.pool.NewFrameGuarded()
	if err != nil {
		return err
	}
	t.encodeLeaf(guard.DataMut(), pagestore.InvalidPageID, []leafEntry[K, V]{{key: key, val: val}})
	if err := guard.Drop(); err != nil {
		return err
	}
	t.setRootPageID(pageID)
	return nil
}

// insertIntoLeaf places (key, val) at sorted position i within the already
// fetched leaf (guard, pageID leafPageID, next-leaf pointer next, decoded
// entries), splitting and propagating up path if the leaf overflows. The
// caller must already have established that key is not present at i.
func (t *Tree[K, V]) insertIntoLeaf(
	guard *bufferpool.FrameGuard,
	leafPageID int32,
	path []posHint,
	next int32,
	entries []leafEntry[K, V],
	i int,
	key K,
	val V,
) error {
	newEntries := make([]leafEntry[K, V], 0, len(entries)+1)
	newEntries = append(newEntries, entries[:i]...)
	newEntries = append(newEntries, leafEntry[K, V]{key: key, val: val})
	newEntries = append(newEntries, entries[i:]...)

	if len(newEntries) <= t.maxLeaf {
		t.encodeLeaf(guard.DataMut(), next, newEntries)
		return guard.Drop()
	}

	splitCount := (len(newEntries) + 1) / 2
	leftEntries := newEntries[:splitCount]
	rightEntries := newEntries[splitCount:]

	rguard, rPageID, err := t.pool.NewFrameGuarded()
	if err != nil {
		return err
	}
	t.encodeLeaf(rguard.DataMut(), next, rightEntries)
	if err := rguard.Drop(); err != nil {
		return err
	}

	t.encodeLeaf(guard.DataMut(), rPageID, leftEntries)
	if err := guard.Drop(); err != nil {
		return err
	}

	sepKey := rightEntries[0].key
	return t.insertInParent(path, leafPageID, sepKey, rPageID)
}

// insertInParent propagates a freshly-split child back up the breadcrumb
// stack, possibly splitting internal nodes in turn.
func (t *Tree[K, V]) insertInParent(path []posHint, leftPageID int32, sepKey K, rightPageID int32) error {
	if len(path) == 0 {
		guard, newRootID, err := t.pool.NewFrameGuarded()
		if err != nil {
			return err
		}
		t.encodeInternal(guard.DataMut(), leftPageID, []internalEntry[K]{{key: sepKey, child: rightPageID}})
		if err := guard.Drop(); err != nil {
			return err
		}
		t.setRootPageID(newRootID)
		return nil
	}

	last := path[len(path)-1]
	path = path[:len(path)-1]

	guard, err := t.pool.FetchFrameBasic(last.pageID)
	if err != nil {
		return err
	}
	leftmost, entries := t.decodeInternal(guard.Data())

	insertPos := last.childIdx
	newEntries := make([]internalEntry[K], 0, len(entries)+1)
	newEntries = append(newEntries, entries[:insertPos]...)
	newEntries = append(newEntries, internalEntry[K]{key: sepKey, child: rightPageID})
	newEntries = append(newEntries, entries[insertPos:]...)

	if len(newEntries) <= t.maxInternal {
		t.encodeInternal(guard.DataMut(), leftmost, newEntries)
		return guard.Drop()
	}

	splitIdx := len(newEntries) / 2
	leftEntries := newEntries[:splitIdx]
	promoted := newEntries[splitIdx]
	rightEntries := newEntries[splitIdx+1:]

	rguard, rPageID, err := t.pool.NewFrameGuarded()
	if err != nil {
		return err
	}
	t.encodeInternal(rguard.DataMut(), promoted.child, rightEntries)
	if err := rguard.Drop(); err != nil {
		return err
	}

	t.encodeInternal(guard.DataMut(), leftmost, leftEntries)
	if err := guard.Drop(); err != nil {
		return err
	}

	return t.insertInParent(path, last.pageID, promoted.key, rPageID)
}

// Remove deletes key, reporting false without error if it was not present.
func (t *Tree[K, V]) Remove(key K) (bool, error) {
	if t.Empty() {
		return false, nil
	}
	leafPageID, path, err := t.descendToLeaf(key)
	if err != nil {
		return false, err
	}
	guard, err := t.pool.FetchFrameBasic(leafPageID)
	if err != nil {
		return false, err
	}
	next, entries := t.decodeLeaf(guard.Data())
	i := sort.Search(len(entries), func(i int) bool { return t.cmp(entries[i].key, key) >= 0 })
	if i >= len(entries) || t.cmp(entries[i].key, key) != 0 {
		return false, guard.Drop()
	}

	newEntries := make([]leafEntry[K, V], 0, len(entries)-1)
	newEntries = append(newEntries, entries[:i]...)
	newEntries = append(newEntries, entries[i+1:]...)

	isRoot := len(path) == 0
	if isRoot {
		if len(newEntries) == 0 {
			t.setRootPageID(pagestore.InvalidPageID)
			return true, guard.Delete()
		}
		t.encodeLeaf(guard.DataMut(), next, newEntries)
		return true, guard.Drop()
	}

	if len(newEntries) >= t.minLeaf {
		t.encodeLeaf(guard.DataMut(), next, newEntries)
		return true, guard.Drop()
	}

	return true, t.rebalanceLeaf(guard, next, newEntries, path)
}

// rebalanceLeaf borrows from or merges with a sibling leaf per the
// find_sibling rule (spec.md §4.3.4): the right sibling if this leaf is its
// parent's leftmost child, otherwise the left sibling.
func (t *Tree[K, V]) rebalanceLeaf(guard *bufferpool.FrameGuard, next int32, entries []leafEntry[K, V], path []posHint) error {
	parentHint := path[len(path)-1]
	parentPath := path[:len(path)-1]

	pguard, err := t.pool.FetchFrameBasic(parentHint.pageID)
	if err != nil {
		return err
	}
	leftmost, pentries := t.decodeInternal(pguard.Data())
	c := parentHint.childIdx

	if c == 0 {
		siblingPageID := childAt(leftmost, pentries, 1)
		sguard, err := t.pool.FetchFrameBasic(siblingPageID)
		if err != nil {
			return err
		}
		snext, sentries := t.decodeLeaf(sguard.Data())

		if len(sentries) > t.minLeaf {
			borrowed := sentries[0]
			sentries = sentries[1:]
			entries = append(entries, borrowed)
			pentries[0].key = sentries[0].key
			t.encodeLeaf(guard.DataMut(), next, entries)
			t.encodeLeaf(sguard.DataMut(), snext, sentries)
			t.encodeInternal(pguard.DataMut(), leftmost, pentries)
			if err := guard.Drop(); err != nil {
				return err
			}
			if err := sguard.Drop(); err != nil {
				return err
			}
			return pguard.Drop()
		}

		merged := append(entries, sentries...)
		t.encodeLeaf(guard.DataMut(), snext, merged)
		if err := guard.Drop(); err != nil {
			return err
		}
		if err := sguard.Delete(); err != nil {
			return err
		}
		return t.removeFromInternal(pguard, leftmost, pentries[1:], parentPath)
	}

	siblingPageID := childAt(leftmost, pentries, c-1)
	sguard, err := t.pool.FetchFrameBasic(siblingPageID)
	if err != nil {
		return err
	}
	snext, sentries := t.decodeLeaf(sguard.Data())

	if len(sentries) > t.minLeaf {
		borrowed := sentries[len(sentries)-1]
		sentries = sentries[:len(sentries)-1]
		entries = append([]leafEntry[K, V]{borrowed}, entries...)
		pentries[c-1].key = entries[0].key
		t.encodeLeaf(sguard.DataMut(), snext, sentries)
		t.encodeLeaf(guard.DataMut(), next, entries)
		t.encodeInternal(pguard.DataMut(), leftmost, pentries)
		if err := sguard.Drop(); err != nil {
			return err
		}
		if err := guard.Drop(); err != nil {
			return err
		}
		return pguard.Drop()
	}

	merged := append(sentries, entries...)
	t.encodeLeaf(sguard.DataMut(), next, merged)
	if err := sguard.Drop(); err != nil {
		return err
	}
	if err := guard.Delete(); err != nil {
		return err
	}
	newPentries := append(append([]internalEntry[K]{}, pentries[:c-1]...), pentries[c:]...)
	return t.removeFromInternal(pguard, leftmost, newPentries, parentPath)
}

// removeFromInternal installs entries as pageID's (already-pinned via
// pguard) new contents, rebalancing up the tree on underflow. Unlike leaf
// merges, an internal merge pulls the separating parent key down into the
// merged node rather than discarding it (spec.md §4.3.4).
func (t *Tree[K, V]) removeFromInternal(pguard *bufferpool.FrameGuard, leftmost int32, entries []internalEntry[K], path []posHint) error {
	isRoot := len(path) == 0
	if isRoot {
		if len(entries) == 0 {
			t.setRootPageID(leftmost)
			return pguard.Delete()
		}
		t.encodeInternal(pguard.DataMut(), leftmost, entries)
		return pguard.Drop()
	}

	if len(entries) >= t.minInternal {
		t.encodeInternal(pguard.DataMut(), leftmost, entries)
		return pguard.Drop()
	}

	parentHint := path[len(path)-1]
	parentPath := path[:len(path)-1]

	ppguard, err := t.pool.FetchFrameBasic(parentHint.pageID)
	if err != nil {
		return err
	}
	pleftmost, ppentries := t.decodeInternal(ppguard.Data())
	c := parentHint.childIdx

	if c == 0 {
		siblingPageID := childAt(pleftmost, ppentries, 1)
		sguard, err := t.pool.FetchFrameBasic(siblingPageID)
		if err != nil {
			return err
		}
		sleftmost, sentries := t.decodeInternal(sguard.Data())

		if len(sentries) > t.minInternal {
			entries = append(entries, internalEntry[K]{key: ppentries[0].key, child: sleftmost})
			ppentries[0].key = sentries[0].key
			sleftmost = sentries[0].child
			sentries = sentries[1:]
			t.encodeInternal(pguard.DataMut(), leftmost, entries)
			t.encodeInternal(sguard.DataMut(), sleftmost, sentries)
			t.encodeInternal(ppguard.DataMut(), pleftmost, ppentries)
			if err := pguard.Drop(); err != nil {
				return err
			}
			if err := sguard.Drop(); err != nil {
				return err
			}
			return ppguard.Drop()
		}

		merged := append(entries, internalEntry[K]{key: ppentries[0].key, child: sleftmost})
		merged = append(merged, sentries...)
		t.encodeInternal(pguard.DataMut(), leftmost, merged)
		if err := pguard.Drop(); err != nil {
			return err
		}
		if err := sguard.Delete(); err != nil {
			return err
		}
		return t.removeFromInternal(ppguard, pleftmost, ppentries[1:], parentPath)
	}

	siblingPageID := childAt(pleftmost, ppentries, c-1)
	sguard, err := t.pool.FetchFrameBasic(siblingPageID)
	if err != nil {
		return err
	}
	sleftmost, sentries := t.decodeInternal(sguard.Data())

	if len(sentries) > t.minInternal {
		last := sentries[len(sentries)-1]
		entries = append([]internalEntry[K]{{key: ppentries[c-1].key, child: leftmost}}, entries...)
		leftmost = last.child
		ppentries[c-1].key = last.key
		sentries = sentries[:len(sentries)-1]
		t.encodeInternal(pguard.DataMut(), leftmost, entries)
		t.encodeInternal(sguard.DataMut(), sleftmost, sentries)
		t.encodeInternal(ppguard.DataMut(), pleftmost, ppentries)
		if err := sguard.Drop(); err != nil {
			return err
		}
		if err := pguard.Drop(); err != nil {
			return err
		}
		return ppguard.Drop()
	}

	merged := append(sentries, internalEntry[K]{key: ppentries[c-1].key, child: leftmost})
	merged = append(merged, entries...)
	t.encodeInternal(sguard.DataMut(), sleftmost, merged)
	if err := sguard.Drop(); err != nil {
		return err
	}
	if err := pguard.Delete(); err != nil {
		return err
	}
	newPPEntries := append(append([]internalEntry[K]{}, ppentries[:c-1]...), ppentries[c:]...)
	return t.removeFromInternal(ppguard, pleftmost, newPPEntries, parentPath)
}

// Validate performs a structural self-check: key ordering within and across
// nodes, parent-separator range containment, uniform leaf depth, non-root
// occupancy bounds, and a forward leaf-chain traversal. It is intended for
// tests, not production call paths.
func (t *Tree[K, V]) Validate() (bool, []string) {
	var issues []string
	root := t.rootPageID()
	if root == pagestore.InvalidPageID {
		return true, nil
	}

	depth := -1
	var walk func(pageID int32, isRoot bool, lo, hi *K, level int)
	walk = func(pageID int32, isRoot bool, lo, hi *K, level int) {
		guard, err := t.pool.FetchFrameBasic(pageID)
		if err != nil {
			issues = append(issues, fmt.Sprintf("page %d: fetch error: %v", pageID, err))
			return
		}
		data := append([]byte(nil), guard.Data()...)
		if err := guard.Drop(); err != nil {
			issues = append(issues, fmt.Sprintf("page %d: drop error: %v", pageID, err))
			return
		}

		if isLeafPage(data) {
			_, entries := t.decodeLeaf(data)
			if depth == -1 {
				depth = level
			} else if depth != level {
				issues = append(issues, fmt.Sprintf("leaf %d at depth %d, expected %d", pageID, level, depth))
			}
			if !isRoot && len(entries) < t.minLeaf {
				issues = append(issues, fmt.Sprintf("leaf %d underflow: %d < %d", pageID, len(entries), t.minLeaf))
			}
			if len(entries) > t.maxLeaf {
				issues = append(issues, fmt.Sprintf("leaf %d overflow: %d > %d", pageID, len(entries), t.maxLeaf))
			}
			t.checkBounds(pageID, "leaf", entries, lo, hi, &issues)
			return
		}

		leftmost, entries := t.decodeInternal(data)
		if !isRoot && len(entries) < t.minInternal {
			issues = append(issues, fmt.Sprintf("internal %d underflow: %d < %d", pageID, len(entries), t.minInternal))
		}
		if len(entries) > t.maxInternal {
			issues = append(issues, fmt.Sprintf("internal %d overflow: %d > %d", pageID, len(entries), t.maxInternal))
		}
		for i := 1; i < len(entries); i++ {
			if t.cmp(entries[i-1].key, entries[i].key) >= 0 {
				issues = append(issues, fmt.Sprintf("internal %d separators out of order at %d", pageID, i))
			}
		}

		childLo := lo
		for i := 0; i <= len(entries); i++ {
			child := childAt(leftmost, entries, i)
			var childHi *K
			if i < len(entries) {
				k := entries[i].key
				childHi = &k
			} else {
				childHi = hi
			}
			walk(child, false, childLo, childHi, level+1)
			if i < len(entries) {
				k := entries[i].key
				childLo = &k
			}
		}
	}
	walk(root, true, nil, nil, 0)

	if ok, msg := t.validateLeafChain(); !ok {
		issues = append(issues, msg)
	}

	return len(issues) == 0, issues
}

func (t *Tree[K, V]) checkBounds(pageID int32, kind string, entries []leafEntry[K, V], lo, hi *K, issues *[]string) {
	for i := 1; i < len(entries); i++ {
		if t.cmp(entries[i-1].key, entries[i].key) >= 0 {
			*issues = append(*issues, fmt.Sprintf("%s %d keys out of order at %d", kind, pageID, i))
		}
	}
	for _, e := range entries {
		if lo != nil && t.cmp(e.key, *lo) < 0 {
			*issues = append(*issues, fmt.Sprintf("%s %d key below lower bound", kind, pageID))
		}
		if hi != nil && t.cmp(e.key, *hi) >= 0 {
			*issues = append(*issues, fmt.Sprintf("%s %d key at/above upper bound", kind, pageID))
		}
	}
}

func (t *Tree[K, V]) validateLeafChain() (bool, string) {
	pageID := t.rootPageID()
	if pageID == pagestore.InvalidPageID {
		return true, ""
	}
	for {
		guard, err := t.pool.FetchFrameBasic(pageID)
		if err != nil {
			return false, fmt.Sprintf("leaf chain: fetch error: %v", err)
		}
		data := guard.Data()
		if isLeafPage(data) {
			if err := guard.Drop(); err != nil {
				return false, fmt.Sprintf("leaf chain: drop error: %v", err)
			}
			break
		}
		leftmost, _ := t.decodeInternal(data)
		if err := guard.Drop(); err != nil {
			return false, fmt.Sprintf("leaf chain: drop error: %v", err)
		}
		pageID = leftmost
	}

	var prevKey *K
	for pageID != pagestore.InvalidPageID {
		guard, err := t.pool.FetchFrameBasic(pageID)
		if err != nil {
			return false, fmt.Sprintf("leaf chain: fetch error: %v", err)
		}
		next, entries := t.decodeLeaf(guard.Data())
		if err := guard.Drop(); err != nil {
			return false, fmt.Sprintf("leaf chain: drop error: %v", err)
		}
		for _, e := range entries {
			if prevKey != nil && t.cmp(*prevKey, e.key) >= 0 {
				return false, "leaf chain: keys not strictly increasing across chain"
			}
			k := e.key
			prevKey = &k
		}
		pageID = next
	}
	return true, ""
}

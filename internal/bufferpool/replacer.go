package bufferpool

// DefaultK is the default window size for the LRU-K replacer (spec.md §6.3).
const DefaultK = 20

// window is a fixed-size ring buffer of the K most recent access timestamps
// for one page, mirroring the queue/tail pattern in
// _examples/original_source/src/lru_k_replacer.cpp.
type window struct {
	buf   []uint64
	tail  int
	count int
}

func newWindow(k int) *window {
	return &window{buf: make([]uint64, k)}
}

func (w *window) record(ts uint64) {
	w.buf[w.tail] = ts
	w.tail = (w.tail + 1) % len(w.buf)
	if w.count < len(w.buf) {
		w.count++
	}
}

// kDistance returns the (oldestInWindow, mostRecent) pair used for
// lexicographic eviction ordering (spec.md §4.2.1). oldestInWindow is 0 when
// fewer than K accesses have been recorded.
func (w *window) kDistance() (oldest, newest uint64) {
	if w.count == 0 {
		return 0, 0
	}
	newest = w.buf[(w.tail-1+len(w.buf))%len(w.buf)]
	if w.count < len(w.buf) {
		return 0, newest
	}
	// The slot about to be overwritten next holds the oldest timestamp
	// still inside the window.
	return w.buf[w.tail], newest
}

// LRUKReplacer selects an eviction victim among a set of currently-evictable
// frames by smallest backward K-distance.
//
// Grounded on _examples/original_source/src/lru_k_replacer.h (the
// access-history-per-page + evictable-set design); wired behind the same
// Replacer-shaped contract exposed in
// _examples/tuannm99-novasql/internal/bufferpool/replacer_clock_adapter.go,
// with a real LRU-K algorithm in place of a CLOCK adapter.
type LRUKReplacer struct {
	k       int
	clock   uint64
	history map[int32]*window // keyed by page id
	evictable map[int32]int32 // frame id -> page id, only frames currently evictable
}

// NewLRUKReplacer constructs a replacer with the given K.
func NewLRUKReplacer(k int) *LRUKReplacer {
	if k <= 0 {
		k = DefaultK
	}
	return &LRUKReplacer{
		k:         k,
		history:   make(map[int32]*window),
		evictable: make(map[int32]int32),
	}
}

// RecordAccess advances the global counter and records an access to pageID.
func (r *LRUKReplacer) RecordAccess(pageID int32) {
	r.clock++
	w, ok := r.history[pageID]
	if !ok {
		w = newWindow(r.k)
		r.history[pageID] = w
	}
	w.record(r.clock)
}

// SetEvictable marks frameID (currently caching pageID) as a candidate for
// eviction.
func (r *LRUKReplacer) SetEvictable(frameID, pageID int32) {
	r.evictable[frameID] = pageID
}

// SetNonEvictable removes frameID from the evictable set.
func (r *LRUKReplacer) SetNonEvictable(frameID int32) {
	delete(r.evictable, frameID)
}

// Remove drops all replacer state for frameID/pageID (used when a page is
// deleted from the buffer pool entirely).
func (r *LRUKReplacer) Remove(frameID, pageID int32) {
	delete(r.evictable, frameID)
	delete(r.history, pageID)
}

// Size returns the number of currently evictable frames.
func (r *LRUKReplacer) Size() int {
	return len(r.evictable)
}

// Evict returns the evictable frame with the smallest backward K-distance,
// and the page id it was caching, or ok=false if no frame is evictable.
func (r *LRUKReplacer) Evict() (frameID int32, pageID int32, ok bool) {
	var bestFrame, bestPage int32
	var bestOldest, bestNewest uint64
	found := false
	for f, p := range r.evictable {
		w := r.history[p]
		oldest, newest := uint64(0), uint64(0)
		if w != nil {
			oldest, newest = w.kDistance()
		}
		if !found || oldest < bestOldest || (oldest == bestOldest && newest < bestNewest) {
			found = true
			bestFrame, bestPage = f, p
			bestOldest, bestNewest = oldest, newest
		}
	}
	if !found {
		return 0, 0, false
	}
	return bestFrame, bestPage, true
}

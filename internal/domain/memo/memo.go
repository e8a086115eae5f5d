// Package memo caches classification vectors keyed by the raw input strings.
package memo

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/omahatools/bucketd/internal/domain/buckets"
)

// Key builds the cache key for a (hole, board) pair. The inputs are used
// verbatim, so callers that want suit-order-insensitive hits should normalize
// before calling.
func Key(hole, board string) string {
	return hole + "|" + board
}

// Memoizer caches classification results so repeated rows skip the engine.
type Memoizer interface {
	// Get returns the cached vector for key and whether it was present.
	Get(ctx context.Context, key string) (buckets.Vector, bool)

	// Put stores the vector for key, evicting an older entry when the cache
	// is at capacity.
	Put(ctx context.Context, key string, v buckets.Vector)

	Size() int64
}

// node represents a single entry in the linked list
type node struct {
	key    string
	vector buckets.Vector
	next   *node
}

// reset clears the node state for reuse
func (n *node) reset() {
	n.key = ""
	n.vector = buckets.Vector{}
	n.next = nil
}

// inMemoryMemo implements Memoizer using an in-memory linked list with LIFO eviction.
// For bounded mode (maxSize > 0): uses linked list with LIFO eviction and sync.Pool for nodes
// For unbounded mode (maxSize <= 0): uses simple map (no eviction, no size limit)
type inMemoryMemo struct {
	mu       sync.RWMutex
	entries  map[string]*node // key -> node pointer; value-only entries in unbounded mode
	values   map[string]buckets.Vector
	head     *node        // head of linked list (most recently added)
	maxSize  int          // maximum number of entries to keep (0 or negative = UNBOUNDED)
	size     atomic.Int64 // current number of entries (atomic)
	nodePool sync.Pool    // pool for reusing node objects
}

// NewInMemoryMemo creates a new in-memory memoizer with configuration options.
func NewInMemoryMemo(opts ...Option) Memoizer {
	m := &inMemoryMemo{
		maxSize: 50000, // default max size
	}

	for _, opt := range opts {
		opt(m)
	}

	m.entries = make(map[string]*node)
	m.values = make(map[string]buckets.Vector)

	if m.maxSize > 0 {
		m.nodePool = sync.Pool{
			New: func() interface{} {
				return &node{}
			},
		}
	}

	return m
}

// Get returns the cached vector for key and whether it was present.
func (m *inMemoryMemo) Get(ctx context.Context, key string) (buckets.Vector, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.maxSize > 0 {
		if n, exists := m.entries[key]; exists {
			return n.vector, true
		}
		return buckets.Vector{}, false
	}
	v, exists := m.values[key]
	return v, exists
}

// Put stores the vector for key. Storing an existing key is a no-op; the
// cached result never changes for the same inputs.
func (m *inMemoryMemo) Put(ctx context.Context, key string, v buckets.Vector) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSize > 0 {
		// BOUNDED MODE: use linked list with LIFO eviction
		if _, exists := m.entries[key]; exists {
			return
		}
		if len(m.entries) >= m.maxSize {
			m.evictLIFO()
		}

		n := m.nodePool.Get().(*node)
		n.key = key
		n.vector = v
		n.next = m.head

		m.head = n
		m.entries[key] = n
	} else {
		// UNBOUNDED MODE: just use the value map
		if _, exists := m.values[key]; exists {
			return
		}
		m.values[key] = v
	}
	m.size.Add(1)
}

// evictLIFO removes the least recently added entry (tail of list) from the map.
// Must be called with m.mu.Lock() held.
func (m *inMemoryMemo) evictLIFO() {
	if len(m.entries) == 0 || m.head == nil {
		return
	}

	var prev *node
	current := m.head

	// Single node list.
	if current.next == nil {
		delete(m.entries, current.key)
		current.reset()
		m.nodePool.Put(current)
		m.head = nil
		m.size.Add(-1)
		return
	}

	// Walk to the tail.
	for current.next != nil {
		prev = current
		current = current.next
	}

	if prev != nil {
		prev.next = nil
		delete(m.entries, current.key)
		current.reset()
		m.nodePool.Put(current)
		m.size.Add(-1)
	}
}

// Size returns the current number of cached entries.
func (m *inMemoryMemo) Size() int64 {
	return m.size.Load()
}

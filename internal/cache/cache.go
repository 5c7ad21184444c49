// Package cache provides a bounded least-recently-used map.
//
// It backs palette color lookups, where the same source colors repeat across
// pictures and frames:
//
//	c := cache.New[color.NRGBA, uint8](4096)
//	idx := c.GetOrCreate(key, func() uint8 { return search(key) })
//
// An LRU is owned by one document and is not safe for concurrent use.
package cache

// node is an entry in the recency list. The head is the most recently used.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// LRU is a fixed-capacity map that evicts its least recently used entry.
type LRU[K comparable, V any] struct {
	items    map[K]*node[K, V]
	head     *node[K, V]
	tail     *node[K, V]
	capacity int

	hits   uint64
	misses uint64
}

// New creates an LRU holding at most capacity entries (minimum 1).
func New[K comparable, V any](capacity int) *LRU[K, V] {
	capacity = max(capacity, 1)
	return &LRU[K, V]{
		items:    make(map[K]*node[K, V], capacity),
		capacity: capacity,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(n)
	return n.value, true
}

// Set stores value under key, evicting the oldest entry when full.
func (c *LRU[K, V]) Set(key K, value V) {
	if n, ok := c.items[key]; ok {
		n.value = value
		c.moveToFront(n)
		return
	}
	if len(c.items) >= c.capacity {
		c.evict()
	}
	n := &node[K, V]{key: key, value: value}
	c.items[key] = n
	c.pushFront(n)
}

// GetOrCreate returns the cached value for key, calling create and storing
// its result on a miss.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Set(key, v)
	return v
}

// Stats contains cache statistics.
type Stats struct {
	Len      int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Len:      len(c.items),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}

func (c *LRU[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *LRU[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

func (c *LRU[K, V]) moveToFront(n *node[K, V]) {
	if c.head == n {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

// evict drops the least recently used entry.
func (c *LRU[K, V]) evict() {
	if c.tail == nil {
		return
	}
	n := c.tail
	c.unlink(n)
	delete(c.items, n.key)
}

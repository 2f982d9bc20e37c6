package pathcache

// mru manages MRU ordering and eviction for mruCache.
type mru struct {
	minCapacity int
	maxCapacity int
	dll         *doublyLinkedList
	cache       *mruCache
}

func newMRU(c *mruCache, minCapacity, maxCapacity int) *mru {
	return &mru{
		cache:       c,
		minCapacity: minCapacity,
		maxCapacity: maxCapacity,
		dll:         newDoublyLinkedList(),
	}
}

// add inserts the key at the head of the MRU list and returns its node handle.
func (m *mru) add(key Key) *node {
	return m.dll.addToHead(key)
}

// remove unchains the node from the MRU list.
func (m *mru) remove(n *node) {
	m.dll.delete(n)
}

// evict removes entries from the tail while the cache exceeds its capacity.
func (m *mru) evict() {
	for m.dll.count() > m.maxCapacity {
		key, ok := m.dll.deleteFromTail()
		if !ok {
			break
		}
		if v, found := m.cache.lookup[key]; found {
			v.dllNode = nil
			delete(m.cache.lookup, key)
		}
	}
}

// isFull reports whether the cache has reached its maximum capacity.
func (m *mru) isFull() bool {
	return m.dll.count() >= m.maxCapacity
}

package pathcache

import core "github.com/elembranch/core"

// Key identifies one cached path resolution: a branch (by its stable
// branch-id string, §3) and a root-relative path within it.
type Key struct {
	BranchID string
	RRPath   core.RelPath
}

// Entry is the cache's internal pairing of a key with its resolved EID,
// used only for bulk Set calls.
type Entry struct {
	Key   Key
	Value core.EID
}

// Cache is a generic MRU lookup cache from Key to resolved EID. Its shape
// mirrors a standard in-process path/attribute cache: bulk set/get,
// capacity-bounded, least-recently-used eviction.
type Cache interface {
	Clear()
	Set(items []Entry)
	Get(keys []Key) []core.EID
	Delete(keys []Key)
	Count() int
	IsFull() bool
	Evict()
}

type cacheEntry struct {
	data    core.EID
	present bool
	dllNode *node
}

type mruCache struct {
	lookup map[Key]*cacheEntry
	mru    *mru
}

// NewMRU creates an in-process cache holding at most maxCapacity entries:
// once a Set pushes Count past maxCapacity, least-recently-used entries are
// evicted until Count is back at maxCapacity. minCapacity does not affect
// eviction.
func NewMRU(minCapacity, maxCapacity int) Cache {
	c := &mruCache{lookup: make(map[Key]*cacheEntry, maxCapacity)}
	c.mru = newMRU(c, minCapacity, maxCapacity)
	return c
}

func (c *mruCache) Clear() {
	c.lookup = make(map[Key]*cacheEntry, c.mru.maxCapacity)
	c.mru = newMRU(c, c.mru.minCapacity, c.mru.maxCapacity)
}

func (c *mruCache) Set(items []Entry) {
	for i := range items {
		if v, ok := c.lookup[items[i].Key]; ok {
			v.data = items[i].Value
			v.present = true
			c.mru.remove(v.dllNode)
			v.dllNode = c.mru.add(items[i].Key)
			continue
		}
		n := c.mru.add(items[i].Key)
		c.lookup[items[i].Key] = &cacheEntry{data: items[i].Value, present: true, dllNode: n}
	}
	c.Evict()
}

func (c *mruCache) Get(keys []Key) []core.EID {
	out := make([]core.EID, len(keys))
	for i := range keys {
		if v, ok := c.lookup[keys[i]]; ok {
			c.mru.remove(v.dllNode)
			v.dllNode = c.mru.add(keys[i])
			out[i] = v.data
		} else {
			out[i] = core.NoEID
		}
	}
	return out
}

func (c *mruCache) Delete(keys []Key) {
	for i := range keys {
		if v, ok := c.lookup[keys[i]]; ok {
			c.mru.remove(v.dllNode)
			v.dllNode = nil
			delete(c.lookup, keys[i])
		}
	}
}

func (c *mruCache) Count() int { return len(c.lookup) }

func (c *mruCache) IsFull() bool { return c.mru.isFull() }

func (c *mruCache) Evict() { c.mru.evict() }

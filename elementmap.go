package core

import "sort"

// ElementMap is the mapping from EID to element content for one branch
// instance (§4.2). It is a bare container: validation of invariants lives
// on BranchInstance, which knows the owning branch's root EID and family —
// context a raw map cannot supply on its own.
type ElementMap struct {
	entries map[EID]*ElementContent
}

// NewElementMap returns an empty element map.
func NewElementMap() *ElementMap {
	return &ElementMap{entries: make(map[EID]*ElementContent)}
}

// Get returns the element content for eid, if present.
func (m *ElementMap) Get(eid EID) (*ElementContent, bool) {
	c, ok := m.entries[eid]
	return c, ok
}

// Keys returns every EID currently present, sorted ascending. Sorting makes
// the "linear scan, first found wins" tie-break of eid_by_path (§4.3)
// deterministic, since Go map iteration order is unspecified.
func (m *ElementMap) Keys() []EID {
	keys := make([]EID, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ChildrenOf returns the EIDs whose ParentEID equals parent, sorted ascending.
func (m *ElementMap) ChildrenOf(parent EID) []EID {
	var children []EID
	for _, k := range m.Keys() {
		if m.entries[k].ParentEID == parent {
			children = append(children, k)
		}
	}
	return children
}

// Len returns the number of elements currently stored.
func (m *ElementMap) Len() int { return len(m.entries) }

// setRaw inserts or replaces content for eid without validation. A nil
// content deletes the entry, per §4.2 ("content may be null to delete").
func (m *ElementMap) setRaw(eid EID, content *ElementContent) {
	if content == nil {
		delete(m.entries, eid)
		return
	}
	m.entries[eid] = content
}

// Clone returns a shallow copy: a new entries map pointing at the same
// ElementContent values. §4.6 calls this out explicitly — callers must not
// mutate shared content objects in place, only replace entries wholesale.
func (m *ElementMap) Clone() *ElementMap {
	out := make(map[EID]*ElementContent, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return &ElementMap{entries: out}
}

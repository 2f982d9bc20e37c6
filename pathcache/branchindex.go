package pathcache

import core "github.com/elembranch/core"

// BranchIndex adapts a shared Cache to one branch instance's
// core.BranchInstance.Index field: every lookup and store is scoped to BranchID, and Invalidate
// only evicts the keys this adapter itself populated, leaving the rest of
// a Cache shared across several branches untouched. Matches core.PathIndex
// structurally, so core never imports this package.
type BranchIndex struct {
	Cache    Cache
	BranchID string

	stored []Key
}

// NewBranchIndex scopes cache to one branch instance's path resolution.
func NewBranchIndex(cache Cache, branchID string) *BranchIndex {
	return &BranchIndex{Cache: cache, BranchID: branchID}
}

// Lookup resolves path against the underlying cache.
func (b *BranchIndex) Lookup(path core.RelPath) (core.EID, bool) {
	out := b.Cache.Get([]Key{{BranchID: b.BranchID, RRPath: path}})
	if len(out) == 0 || out[0] == core.NoEID {
		return core.NoEID, false
	}
	return out[0], true
}

// Store records path -> eid, tracking the key so Invalidate can evict
// exactly what this adapter wrote.
func (b *BranchIndex) Store(path core.RelPath, eid core.EID) {
	key := Key{BranchID: b.BranchID, RRPath: path}
	b.Cache.Set([]Entry{{Key: key, Value: eid}})
	b.stored = append(b.stored, key)
}

// Invalidate evicts every key this adapter has stored and forgets them.
func (b *BranchIndex) Invalidate() {
	if len(b.stored) == 0 {
		return
	}
	b.Cache.Delete(b.stored)
	b.stored = b.stored[:0]
}

package core

import "strings"

// RelPath is a '/'-separated path relative to some branch instance's root
// ("" denotes the root itself).
type RelPath string

// PathIndex is the optional lookup-index hook EIDByPath consults before
// falling back to the linear scan (§4.3's "implementations may add an
// index; behavior must match the scan"). A BranchInstance's Index field
// holds one scoped to that instance; pathcache.BranchIndex is the
// provided implementation, matched structurally so this package need not
// import pathcache.
type PathIndex interface {
	Lookup(path RelPath) (EID, bool)
	Store(path RelPath, eid EID)
	Invalidate()
}

func joinRel(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "/" + b
}

// PathByEID walks the parent chain from eid up to branch's root, joining
// names on the way down. Returns false if the chain is broken before
// reaching the root (an orphan) — §4.3.
func PathByEID(branch *BranchInstance, eid EID) (RelPath, bool) {
	if eid == branch.RootEID() {
		return "", true
	}
	var segments []string
	cur := eid
	// Bound the walk by the element count + 1: invariant 7 (§3) guarantees
	// no cycles in a valid map, but a defensive bound keeps a corrupted map
	// from hanging this call instead of just reporting "broken".
	limit := branch.EMap.Len() + 1
	for i := 0; i < limit; i++ {
		content, ok := branch.Get(cur)
		if !ok {
			return "", false
		}
		segments = append(segments, content.Name)
		if content.ParentEID == branch.RootEID() {
			return RelPath(joinReversed(segments)), true
		}
		if content.ParentEID == NoEID {
			return "", false
		}
		cur = content.ParentEID
	}
	return "", false
}

func joinReversed(segments []string) string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[len(segments)-1-i] = s
	}
	return strings.Join(out, "/")
}

// RootRRPath returns the full path of branch's root relative to the
// outermost (top) branch instance: "" at top, otherwise the outer branch's
// root-relative path joined with the path of the outer anchor element
// (§4.3).
func RootRRPath(branch *BranchInstance) RelPath {
	if branch.IsTop() {
		return ""
	}
	outerRoot := RootRRPath(branch.OuterBranch)
	anchorPath, ok := PathByEID(branch.OuterBranch, branch.OuterEID)
	if !ok {
		// The outer anchor element must exist for a live (non-orphaned)
		// nested branch; if it doesn't, purge_r (§4.5) would already have
		// deleted this instance. Report the outer root path alone rather
		// than panicking on a data structure the caller hasn't purged yet.
		return outerRoot
	}
	return RelPath(joinRel(string(outerRoot), string(anchorPath)))
}

// RRPathByEID concatenates RootRRPath(branch) and PathByEID(branch, eid).
func RRPathByEID(branch *BranchInstance, eid EID) (RelPath, bool) {
	p, ok := PathByEID(branch, eid)
	if !ok {
		return "", false
	}
	return RelPath(joinRel(string(RootRRPath(branch)), string(p))), true
}

// EIDByPath performs the linear scan described in §4.3: compare every
// element's computed path against path, first match wins (by ascending EID
// order, to make the tie-break deterministic). Returns NoEID if absent.
// If branch.Index is set, a hit there is returned without scanning, and a
// scan result is stored back into it for next time.
func EIDByPath(branch *BranchInstance, path RelPath) EID {
	if branch.Index != nil {
		if eid, ok := branch.Index.Lookup(path); ok {
			return eid
		}
	}
	for _, eid := range branch.EMap.Keys() {
		p, ok := PathByEID(branch, eid)
		if ok && p == path {
			if branch.Index != nil {
				branch.Index.Store(path, eid)
			}
			return eid
		}
	}
	return NoEID
}

// EIDByRRPath strips branch's root-relative path prefix from rrpath and
// calls EIDByPath; returns NoEID if rrpath falls outside the branch.
func EIDByRRPath(branch *BranchInstance, rrpath RelPath) EID {
	root := string(RootRRPath(branch))
	rp := string(rrpath)
	if root == "" {
		return EIDByPath(branch, RelPath(rp))
	}
	if rp == root {
		return EIDByPath(branch, "")
	}
	prefix := root + "/"
	if !strings.HasPrefix(rp, prefix) {
		return NoEID
	}
	return EIDByPath(branch, RelPath(strings.TrimPrefix(rp, prefix)))
}

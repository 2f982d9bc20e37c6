package core

import "log/slog"

// PurgeOrphans removes every non-root element whose parent is absent from
// the map, repeating until a full pass makes no change — i.e. it keeps only
// elements reachable from the root (§4.5). Returns the EIDs removed.
func PurgeOrphans(branch *BranchInstance) []EID {
	var removed []EID
	root := branch.RootEID()
	for {
		changed := false
		for _, eid := range branch.EMap.Keys() {
			if eid == root {
				continue
			}
			content, ok := branch.EMap.Get(eid)
			if !ok {
				continue
			}
			if content.ParentEID == NoEID {
				branch.EMap.setRaw(eid, nil)
				removed = append(removed, eid)
				changed = true
				continue
			}
			parent, ok := branch.EMap.Get(content.ParentEID)
			if !ok {
				branch.EMap.setRaw(eid, nil)
				removed = append(removed, eid)
				changed = true
				continue
			}
			if parent.Payload == nil && parent.ParentEID == NoEID && content.ParentEID != root {
				// A kept parent with no payload that isn't a legitimate
				// sub-branch anchor is a structural surprise purge_orphans
				// isn't meant to paper over — log it rather than silently
				// dropping the child.
				slog.Warn("purge: kept parent has no payload", "eid", content.ParentEID, "child", eid)
			}
		}
		if !changed {
			break
		}
	}
	return removed
}

// PurgeR runs PurgeOrphans on branch, then recurses into every immediate
// sub-branch whose anchor EID still exists; sub-branches whose anchor was
// purged are themselves deleted recursively (§4.5, §4.8).
func PurgeR(branch *BranchInstance) []EID {
	removed := PurgeOrphans(branch)
	for _, sub := range branch.RevRoot.ImmediateSubBranches(branch) {
		if _, ok := branch.EMap.Get(sub.OuterEID); ok {
			removed = append(removed, PurgeR(sub)...)
		} else {
			DeleteBranchInstanceR(sub)
		}
	}
	return removed
}

// purgeOrphansMap runs the same fixed-point orphan sweep directly over a
// free-standing element map (no branch instance), used by
// InstantiateSubtree (§4.6) to drop the incoming fragment's elements that
// are not reachable from its root before they are copied into the
// destination branch.
func purgeOrphansMap(m *ElementMap, root EID) {
	for {
		changed := false
		for _, eid := range m.Keys() {
			if eid == root {
				continue
			}
			content, ok := m.Get(eid)
			if !ok {
				continue
			}
			if content.ParentEID == NoEID {
				m.setRaw(eid, nil)
				changed = true
				continue
			}
			if _, ok := m.Get(content.ParentEID); !ok {
				m.setRaw(eid, nil)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

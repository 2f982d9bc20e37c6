package core

// Subtree is a detached, self-contained fragment of an element map: a
// shallow copy of some branch's element map together with the EID that
// marks its root within that copy (§4.6). It carries no reference to any
// live branch instance.
type Subtree struct {
	EMap    *ElementMap
	RootEID EID
}

// GetSubtree takes a shallow copy of branch's whole element map, rooted at
// eid. The copy intentionally includes elements unrelated to eid's subtree
// — consumers re-filter by reachability (§4.6).
func GetSubtree(branch *BranchInstance, eid EID) Subtree {
	return Subtree{EMap: branch.EMap.Clone(), RootEID: eid}
}

// AddSubtree copies subtree into toBranch with fresh EIDs for every
// element: this is the "copy" operation (§4.6). If toEID is NoEID a new EID
// is allocated for the subtree's root; its children are recursively
// assigned new EIDs of their own. The subtree root's existing content
// decides whether the destination element is a full element (update) or a
// content-less sub-branch anchor (update_as_subbranch_root).
func AddSubtree(toBranch *BranchInstance, toEID EID, newParentEID EID, newName string, subtree Subtree) (EID, error) {
	if toEID == NoEID {
		toEID = toBranch.Sibling.Family.AllocateEID()
	}
	root, ok := subtree.EMap.Get(subtree.RootEID)
	if !ok {
		return NoEID, newError(InvalidElement, subtree.RootEID, "subtree has no element at its declared root %s", subtree.RootEID)
	}
	if root.Payload != nil {
		if err := toBranch.Update(toEID, newParentEID, newName, root.Payload.Clone()); err != nil {
			return NoEID, err
		}
	} else {
		if err := toBranch.UpdateAsSubbranchRoot(toEID, newParentEID, newName); err != nil {
			return NoEID, err
		}
	}
	for _, childEID := range subtree.EMap.ChildrenOf(subtree.RootEID) {
		child := Subtree{EMap: subtree.EMap, RootEID: childEID}
		childContent, _ := subtree.EMap.Get(childEID)
		if _, err := AddSubtree(toBranch, NoEID, toEID, childContent.Name, child); err != nil {
			return NoEID, err
		}
	}
	return toEID, nil
}

// InstantiateSubtree copies subtree into toBranch preserving every EID
// exactly as it appears in the subtree — this is the "branch" operation
// (§4.6), the one that gives moves their cross-branch identity. The root is
// placed first at its original EID (so sibling branch instances may share
// that EID), orphans are then purged from the incoming fragment, and every
// surviving non-root element is copied across unchanged.
func InstantiateSubtree(toBranch *BranchInstance, newParentEID EID, newName string, subtree Subtree) error {
	root, ok := subtree.EMap.Get(subtree.RootEID)
	if !ok {
		return newError(InvalidElement, subtree.RootEID, "subtree has no element at its declared root %s", subtree.RootEID)
	}
	if err := toBranch.Update(subtree.RootEID, newParentEID, newName, root.Payload); err != nil {
		return err
	}
	working := subtree.EMap.Clone()
	purgeOrphansMap(working, subtree.RootEID)
	for _, eid := range working.Keys() {
		if eid == subtree.RootEID {
			continue
		}
		content, _ := working.Get(eid)
		if err := toBranch.Set(eid, content); err != nil {
			return err
		}
	}
	return nil
}

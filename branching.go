package core

// BranchSubtree creates a brand-new branch instance nested inside
// toOuterBranch at a freshly allocated anchor EID, and instantiates the
// subtree rooted at fromEID (in fromBranch) into it with a freshly
// allocated sibling — i.e. "branch this subtree off as its own sibling"
// (§4.7, step 1-4).
func BranchSubtree(fromBranch *BranchInstance, fromEID EID, toOuterBranch *BranchInstance, toOuterParentEID EID, newName string) (*BranchInstance, error) {
	if _, ok := PathByEID(fromBranch, fromEID); !ok {
		return nil, newError(Branching, fromEID, "branch_subtree: source element %s has no path in %s", fromEID, fromBranch)
	}
	family := toOuterBranch.Sibling.Family
	toOuterEID := family.AllocateEID()
	if err := toOuterBranch.UpdateAsSubbranchRoot(toOuterEID, toOuterParentEID, newName); err != nil {
		return nil, err
	}
	newSibling := family.AllocateBranchSibling(fromEID)
	return branchSubtreeR2(fromBranch, fromEID, toOuterBranch, toOuterEID, newSibling)
}

// branchSubtreeR2 materialises a new branch instance anchored at
// toOuterBranch:toOuterEID using newSibling, instantiates the subtree
// extracted from fromBranch:fromEID into it, and recurses over every
// immediate sub-branch nested under fromBranch:fromEID — reusing each
// sub-branch's existing sibling, so logical siblings across the new branch
// share the same nested-branch identities (§4.7.b-c).
func branchSubtreeR2(fromBranch *BranchInstance, fromEID EID, toOuterBranch *BranchInstance, toOuterEID EID, newSibling *BranchSibling) (*BranchInstance, error) {
	newInstance := NewBranchInstance(newSibling, toOuterBranch.RevRoot, toOuterBranch, toOuterEID)
	toOuterBranch.RevRoot.AddInstance(newInstance)

	subtree := GetSubtree(fromBranch, fromEID)
	// The subtree root becomes the new instance's own root, so it must
	// satisfy the root invariant regardless of what parent/name it had in
	// fromBranch (§3 invariant 2).
	if err := InstantiateSubtree(newInstance, NoEID, "", subtree); err != nil {
		return nil, err
	}

	for _, sub := range fromBranch.RevRoot.ImmediateSubBranchesAt(fromBranch, fromEID) {
		if _, err := branchSubtreeR2(sub, sub.RootEID(), newInstance, sub.OuterEID, sub.Sibling); err != nil {
			return nil, err
		}
	}
	return newInstance, nil
}

// BranchInto grafts the subtree rooted at fromBranch:fromEID into an
// existing branch instance toBranch, preserving EIDs (§4.7 branch_into).
// Nested sub-branches are recreated via branchSubtreeR2 exactly as in
// BranchSubtree, reusing their existing siblings.
func BranchInto(fromBranch *BranchInstance, fromEID EID, toBranch *BranchInstance, toParentEID EID, newName string) error {
	if _, ok := PathByEID(fromBranch, fromEID); !ok {
		return newError(Branching, fromEID, "branch_into: source element %s has no path in %s", fromEID, fromBranch)
	}
	subtree := GetSubtree(fromBranch, fromEID)
	if err := InstantiateSubtree(toBranch, toParentEID, newName, subtree); err != nil {
		return err
	}
	for _, sub := range fromBranch.RevRoot.ImmediateSubBranchesAt(fromBranch, fromEID) {
		if _, err := branchSubtreeR2(sub, sub.RootEID(), toBranch, sub.OuterEID, sub.Sibling); err != nil {
			return err
		}
	}
	return nil
}

// CopySubtreeR copies the subtree rooted at fromBranch:fromEID into
// toBranch with fresh EIDs throughout (§4.7 copy_subtree_r, via
// add_subtree). Copying a subtree that contains a nested sub-branch anchor
// is rejected: the resulting new-EID copy could not preserve the nested
// branch's identity, so that case is left explicitly unsupported rather
// than silently dropping or duplicating the nested branch.
func CopySubtreeR(fromBranch *BranchInstance, fromEID EID, toBranch *BranchInstance, toParentEID EID, toName string) (EID, error) {
	if _, ok := PathByEID(fromBranch, fromEID); !ok {
		return NoEID, newError(Branching, fromEID, "copy_subtree_r: source element %s has no path in %s", fromEID, fromBranch)
	}
	subtree := GetSubtree(fromBranch, fromEID)
	reachable := reachableEIDs(subtree.EMap, fromEID)
	for _, inst := range fromBranch.RevRoot.Instances {
		if inst.OuterBranch == fromBranch && reachable[inst.OuterEID] {
			return NoEID, newError(Branching, fromEID, "copy_subtree_r: subtree contains nested sub-branch anchor %s, copying nested branches is unsupported", inst.OuterEID)
		}
	}
	return AddSubtree(toBranch, NoEID, toParentEID, toName, subtree)
}

// reachableEIDs returns the set of EIDs reachable from root by following
// child links within m.
func reachableEIDs(m *ElementMap, root EID) map[EID]bool {
	out := map[EID]bool{root: true}
	frontier := []EID{root}
	for len(frontier) > 0 {
		next := frontier[0]
		frontier = frontier[1:]
		for _, child := range m.ChildrenOf(next) {
			if !out[child] {
				out[child] = true
				frontier = append(frontier, child)
			}
		}
	}
	return out
}

package core

// FindNestedBranchElementByRRPath resolves rrpath starting from top. At
// each branch it first checks whether any immediate sub-branch's own
// anchor path is a prefix of the remaining rrpath; if so it strips that
// prefix and recurses into the sub-branch instance, since the sub-branch's
// interior elements live only in that instance's own element map, never
// copied into the outer branch's. Only once no sub-branch claims a prefix
// does it resolve the remaining path within the current branch (§4.4).
// When more than one sub-branch is anchored at the same element, the one
// with the lowest BSID wins. Returns the innermost branch instance that
// contains eid together with eid itself, or ok=false if rrpath resolves to
// nothing in top or any of its descendants.
func FindNestedBranchElementByRRPath(top *BranchInstance, rrpath RelPath) (branch *BranchInstance, eid EID, ok bool) {
	branch = top
	remaining := rrpath
	for {
		subs := branch.RevRoot.ImmediateSubBranches(branch)
		var bestSub *BranchInstance
		var bestRest string
		bestLen := -1
		for _, sub := range subs {
			anchorPath, ok := PathByEID(branch, sub.OuterEID)
			if !ok {
				continue
			}
			prefix := string(anchorPath)
			rp := string(remaining)
			var rest string
			switch {
			case prefix == "":
				rest = rp
			case rp == prefix:
				rest = ""
			case len(rp) > len(prefix) && rp[:len(prefix)+1] == prefix+"/":
				rest = rp[len(prefix)+1:]
			default:
				continue
			}
			if len(prefix) > bestLen {
				bestLen = len(prefix)
				bestSub = sub
				bestRest = rest
			}
		}
		if bestSub == nil {
			eid = EIDByPath(branch, remaining)
			if eid == NoEID {
				return nil, NoEID, false
			}
			return branch, eid, true
		}
		branch = bestSub
		remaining = RelPath(bestRest)
	}
}

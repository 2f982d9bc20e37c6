package core

// DeleteBranchInstanceR removes branch and, recursively, every instance
// nested inside it from their revision roots. It does not touch any outer
// branch's element map — callers that are deleting branch because its
// anchor element vanished have already handled that (§4.5, §4.8).
func DeleteBranchInstanceR(branch *BranchInstance) {
	for _, sub := range branch.RevRoot.ImmediateSubBranches(branch) {
		DeleteBranchInstanceR(sub)
	}
	branch.RevRoot.RemoveInstance(branch)
}

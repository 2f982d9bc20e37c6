package core

import "testing"

func TestDeleteBranchInstanceRRemovesNestedInstancesToo(t *testing.T) {
	repo, rr, top := freshTopBranch()
	dirEID := repo.Family.AllocateEID()
	if err := top.Update(dirEID, top.RootEID(), "dir", &Payload{Kind: KindDirectory}); err != nil {
		t.Fatalf("update dir: %v", err)
	}
	outer, err := BranchSubtree(top, dirEID, top, top.RootEID(), "outer-branch")
	if err != nil {
		t.Fatalf("branch_subtree: %v", err)
	}
	innerEID := repo.Family.AllocateEID()
	if err := outer.Update(innerEID, outer.RootEID(), "inner-dir", &Payload{Kind: KindDirectory}); err != nil {
		t.Fatalf("update inner dir: %v", err)
	}
	inner, err := BranchSubtree(outer, innerEID, outer, outer.RootEID(), "inner-branch")
	if err != nil {
		t.Fatalf("nested branch_subtree: %v", err)
	}

	before := len(rr.Instances)
	DeleteBranchInstanceR(outer)

	for _, inst := range rr.Instances {
		if inst == outer || inst == inner {
			t.Fatalf("instance %v should have been removed", inst)
		}
	}
	if got, want := len(rr.Instances), before-2; got != want {
		t.Fatalf("instance count after recursive delete = %d; want %d", got, want)
	}
}

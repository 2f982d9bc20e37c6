package core

import "testing"

func freshTopBranch() (*Repository, *RevisionRoot, *BranchInstance) {
	repo := NewRepository()
	rr := repo.NewRevision()
	root := repo.Family.AllocateEID()
	sib := repo.Family.AllocateBranchSibling(root)
	top := NewBranchInstance(sib, rr, nil, NoEID)
	rr.AddInstance(top)
	return repo, rr, top
}

func TestPathByEIDFreshBranch(t *testing.T) {
	repo, _, top := freshTopBranch()
	eid := repo.Family.AllocateEID()
	if err := top.Update(eid, top.RootEID(), "file.txt", &Payload{Ref: &PayloadRef{Rev: 0, RelPath: "file.txt"}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	path, ok := PathByEID(top, eid)
	if !ok || path != "file.txt" {
		t.Fatalf("path_by_eid = %q, %v; want \"file.txt\", true", path, ok)
	}
	if got := EIDByPath(top, "file.txt"); got != eid {
		t.Fatalf("eid_by_path = %s; want %s", got, eid)
	}
}

func TestPathByEIDOrphanIsUndefined(t *testing.T) {
	_, _, top := freshTopBranch()
	// Inject a structural orphan directly, bypassing validation, to model
	// an element whose parent has already been removed.
	top.EMap.setRaw(EID(5), &ElementContent{ParentEID: EID(9), Name: "ghost"})
	if _, ok := PathByEID(top, 5); ok {
		t.Fatalf("expected no path for an orphaned element")
	}
}

func TestEIDByRRPathOutsideBranch(t *testing.T) {
	_, _, top := freshTopBranch()
	if got := EIDByRRPath(top, "nowhere/at/all"); got != NoEID {
		t.Fatalf("eid_by_rrpath(outside) = %s; want NoEID", got)
	}
}

func TestRootRRPathEmptyAtTopBranch(t *testing.T) {
	_, _, top := freshTopBranch()
	if got := RootRRPath(top); got != "" {
		t.Fatalf("root_rrpath(top) = %q; want \"\"", got)
	}
	if got := EIDByRRPath(top, ""); got != top.RootEID() {
		t.Fatalf("eid_by_rrpath(top, \"\") = %s; want root %s", got, top.RootEID())
	}
}

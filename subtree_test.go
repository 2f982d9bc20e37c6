package core

import "testing"

func TestAddSubtreeAssignsFreshEIDs(t *testing.T) {
	repo, _, top := freshTopBranch()
	dirEID := repo.Family.AllocateEID()
	if err := top.Update(dirEID, top.RootEID(), "dir", &Payload{Kind: KindDirectory}); err != nil {
		t.Fatalf("update dir: %v", err)
	}
	fileEID := repo.Family.AllocateEID()
	if err := top.Update(fileEID, dirEID, "f.txt", &Payload{Kind: KindFile}); err != nil {
		t.Fatalf("update file: %v", err)
	}

	subtree := GetSubtree(top, dirEID)
	newEID, err := AddSubtree(top, NoEID, top.RootEID(), "dir-copy", subtree)
	if err != nil {
		t.Fatalf("add_subtree: %v", err)
	}
	if newEID == dirEID {
		t.Fatalf("add_subtree should allocate a fresh EID, got original %s", dirEID)
	}
	path, ok := PathByEID(top, newEID)
	if !ok || path != "dir-copy" {
		t.Fatalf("path of copy = %q, %v; want \"dir-copy\", true", path, ok)
	}
	children := top.EMap.ChildrenOf(newEID)
	if len(children) != 1 {
		t.Fatalf("expected one copied child, got %d", len(children))
	}
	if children[0] == fileEID {
		t.Fatalf("copied child should have a fresh EID, kept original %s", fileEID)
	}
}

func TestInstantiateSubtreePreservesEIDs(t *testing.T) {
	repo, _, top := freshTopBranch()
	dirEID := repo.Family.AllocateEID()
	if err := top.Update(dirEID, top.RootEID(), "dir", &Payload{Kind: KindDirectory}); err != nil {
		t.Fatalf("update dir: %v", err)
	}

	sib2 := repo.Family.AllocateBranchSibling(dirEID)
	other := NewBranchInstance(sib2, top.RevRoot, nil, NoEID)
	top.RevRoot.AddInstance(other)

	subtree := GetSubtree(top, dirEID)
	if err := InstantiateSubtree(other, NoEID, "", subtree); err != nil {
		t.Fatalf("instantiate_subtree: %v", err)
	}
	if other.RootEID() != dirEID {
		t.Fatalf("instantiate_subtree must preserve the root EID, got %s want %s", other.RootEID(), dirEID)
	}
}

func TestInstantiateSubtreeIsIdempotent(t *testing.T) {
	repo, _, top := freshTopBranch()
	dirEID := repo.Family.AllocateEID()
	if err := top.Update(dirEID, top.RootEID(), "dir", &Payload{Kind: KindDirectory}); err != nil {
		t.Fatalf("update dir: %v", err)
	}
	sib2 := repo.Family.AllocateBranchSibling(dirEID)
	other := NewBranchInstance(sib2, top.RevRoot, nil, NoEID)
	top.RevRoot.AddInstance(other)

	subtree := GetSubtree(top, dirEID)
	if err := InstantiateSubtree(other, NoEID, "", subtree); err != nil {
		t.Fatalf("first instantiate_subtree: %v", err)
	}
	before := other.EMap.Len()
	if err := InstantiateSubtree(other, NoEID, "", subtree); err != nil {
		t.Fatalf("second instantiate_subtree: %v", err)
	}
	if after := other.EMap.Len(); after != before {
		t.Fatalf("second instantiate_subtree should be a no-op, element count %d -> %d", before, after)
	}
}

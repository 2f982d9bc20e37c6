package core

import "testing"

func TestAlterRootAllowsOnlyRootShapedContent(t *testing.T) {
	_, _, top := freshTopBranch()
	if err := top.Update(top.RootEID(), NoEID, "", &Payload{Kind: KindDirectory}); err != nil {
		t.Fatalf("root update with parent=-1, name=\"\" should succeed: %v", err)
	}
	if err := top.Update(top.RootEID(), EID(7), "foo", &Payload{Kind: KindDirectory}); err == nil {
		t.Fatal("root update with a non-root-shaped parent/name should fail")
	}
}

func TestUpdateRejectsSelfParent(t *testing.T) {
	repo, _, top := freshTopBranch()
	eid := repo.Family.AllocateEID()
	if err := top.Update(eid, eid, "x", &Payload{Kind: KindFile}); err == nil {
		t.Fatal("an element cannot be its own parent")
	}
}

func TestUpdateRejectsEIDOutsideFamilyRange(t *testing.T) {
	_, _, top := freshTopBranch()
	if err := top.Update(EID(999), top.RootEID(), "x", &Payload{Kind: KindFile}); err == nil {
		t.Fatal("expected InvalidElement for an eid outside the family's range")
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	repo, _, top := freshTopBranch()
	eid := repo.Family.AllocateEID()
	payload := &Payload{Kind: KindFile}
	if err := top.Update(eid, top.RootEID(), "f", payload); err != nil {
		t.Fatalf("first update: %v", err)
	}
	before := top.EMap.Len()
	if err := top.Update(eid, top.RootEID(), "f", payload); err != nil {
		t.Fatalf("second (identical) update: %v", err)
	}
	if top.EMap.Len() != before {
		t.Fatal("repeating an identical update should not change element count")
	}
}

func TestDeleteRootIsRejected(t *testing.T) {
	_, _, top := freshTopBranch()
	if err := top.Delete(top.RootEID()); err == nil {
		t.Fatal("deleting the branch root must be rejected")
	}
}

func TestDeleteThenUpdateRestoresAbsence(t *testing.T) {
	repo, _, top := freshTopBranch()
	eid := repo.Family.AllocateEID()
	if err := top.Update(eid, top.RootEID(), "f", &Payload{Kind: KindFile}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := top.Delete(eid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := top.Get(eid); ok {
		t.Fatal("element should be absent after delete")
	}
}

package core

import "testing"

func TestPurgeOrphansRemovesDanglingElement(t *testing.T) {
	_, _, top := freshTopBranch()
	top.EMap.setRaw(EID(1), &ElementContent{ParentEID: top.RootEID(), Name: "a"})
	top.EMap.setRaw(EID(2), &ElementContent{ParentEID: EID(9), Name: "b"})

	removed := PurgeOrphans(top)
	if len(removed) != 1 || removed[0] != 2 {
		t.Fatalf("removed = %v; want [2]", removed)
	}
	if _, ok := top.Get(2); ok {
		t.Fatalf("element 2 should have been purged")
	}
	if _, ok := top.Get(1); !ok {
		t.Fatalf("element 1 should have survived")
	}
}

func TestPurgeOrphansIsIdempotent(t *testing.T) {
	_, _, top := freshTopBranch()
	top.EMap.setRaw(EID(1), &ElementContent{ParentEID: top.RootEID(), Name: "a"})
	top.EMap.setRaw(EID(2), &ElementContent{ParentEID: EID(9), Name: "b"})

	PurgeOrphans(top)
	second := PurgeOrphans(top)
	if len(second) != 0 {
		t.Fatalf("second purge should be a no-op, removed %v", second)
	}
}

func TestPurgeOrphansChainReaction(t *testing.T) {
	_, _, top := freshTopBranch()
	// a -> root, b -> a, c -> (missing). Removing c shouldn't touch a or b.
	top.EMap.setRaw(EID(1), &ElementContent{ParentEID: top.RootEID(), Name: "a"})
	top.EMap.setRaw(EID(2), &ElementContent{ParentEID: EID(1), Name: "b"})
	top.EMap.setRaw(EID(3), &ElementContent{ParentEID: EID(99), Name: "c"})

	PurgeOrphans(top)
	if _, ok := top.Get(1); !ok {
		t.Fatalf("a should survive")
	}
	if _, ok := top.Get(2); !ok {
		t.Fatalf("b should survive")
	}
	if _, ok := top.Get(3); ok {
		t.Fatalf("c should be purged")
	}
}

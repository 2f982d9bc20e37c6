package core

// BranchSibling is the definition shared by every instance of one logical
// branch: its family, its BSID, and the EID its root element carries in
// every instance. Immutable after creation (§3).
type BranchSibling struct {
	Family  *Family
	BSID    BSID
	RootEID EID
}

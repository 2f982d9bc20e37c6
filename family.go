package core

// Family is the id-space and sibling owner of a repository: it allocates
// EIDs and BSIDs from monotonically increasing counters and owns every
// BranchSibling ever created (§3, §4.1). There is one family per
// repository in this design.
type Family struct {
	// ID is a stable identity for this family, independent of the EID/BSID
	// counters below — useful when a host needs to address a family across
	// process restarts (e.g. as a cache or log correlation key).
	ID UUID

	firstBSID BSID
	nextBSID  BSID
	firstEID  EID
	nextEID   EID
	seeded    bool

	siblings []*BranchSibling
}

// NewFamily creates a family whose EID/BSID ranges both start at 0.
func NewFamily() *Family {
	return &Family{ID: NewUUID()}
}

// FirstEID and NextEID report the family's current half-open EID range [FirstEID, NextEID).
func (f *Family) FirstEID() EID { return f.firstEID }
func (f *Family) NextEID() EID  { return f.nextEID }

// FirstBSID and NextBSID report the family's current half-open BSID range [FirstBSID, NextBSID).
func (f *Family) FirstBSID() BSID { return f.firstBSID }
func (f *Family) NextBSID() BSID  { return f.nextBSID }

// InRange reports whether eid lies within the family's currently allocated EID range.
func (f *Family) InRange(eid EID) bool {
	return eid >= f.firstEID && eid < f.nextEID
}

// AllocateEID bumps the monotone EID counter and returns the new id.
// Successive calls yield strictly increasing integers (§8).
func (f *Family) AllocateEID() EID {
	id := f.nextEID
	f.nextEID++
	return id
}

// AllocateBranchSibling bumps the monotone BSID counter and creates a new
// immutable sibling rooted at rootEID.
func (f *Family) AllocateBranchSibling(rootEID EID) *BranchSibling {
	id := f.nextBSID
	f.nextBSID++
	sib := &BranchSibling{Family: f, BSID: id, RootEID: rootEID}
	f.siblings = append(f.siblings, sib)
	return sib
}

// FindSibling scans the family's siblings for one with the given BSID.
func (f *Family) FindSibling(bsid BSID) *BranchSibling {
	for _, s := range f.siblings {
		if s.BSID == bsid {
			return s
		}
	}
	return nil
}

// FindOrCreateSibling returns an existing sibling matching bsid, or creates
// one rooted at rootEID and registers it under that bsid. It fails with a
// Consistency error if a found sibling disagrees on rootEID (§4.1).
func (f *Family) FindOrCreateSibling(bsid BSID, rootEID EID) (*BranchSibling, error) {
	if existing := f.FindSibling(bsid); existing != nil {
		if existing.RootEID != rootEID {
			return nil, newError(Consistency, bsid, "sibling %s already has root %s, got %s", bsid, existing.RootEID, rootEID)
		}
		return existing, nil
	}
	sib := &BranchSibling{Family: f, BSID: bsid, RootEID: rootEID}
	f.siblings = append(f.siblings, sib)
	if bsid >= f.nextBSID {
		f.nextBSID = bsid + 1
	}
	return sib, nil
}

// EnsureAtLeast widens the family's next-EID boundary upward so that eid
// lies within range, without ever lowering the floor. The editor façade's
// alter operation uses this to auto-allocate EIDs up to whatever the
// caller names (§4.10), rather than rejecting an eid merely because
// nothing has claimed it yet.
func (f *Family) EnsureAtLeast(eid EID) {
	if eid >= f.nextEID {
		f.nextEID = eid + 1
	}
}

// adoptEID widens the family's EID range so that eid is included, raising
// the next-EID boundary or lowering the floor as needed. Nothing in this
// module calls it; the text parser (§4.9) uses AdoptRange instead.
func (f *Family) adoptEID(eid EID) {
	if eid >= f.nextEID {
		f.nextEID = eid + 1
	}
	if eid < f.firstEID {
		f.firstEID = eid
	}
}

// AdoptRange widens the family's id ranges to at least [firstEID, nextEID)
// and [firstBSID, nextBSID), used by the text parser (§4.9) to rebuild a
// family's ranges from a serialized header. The first call against a fresh
// family sets both floors to the header's values exactly (raising or
// lowering them); later calls only ever lower a floor.
func (f *Family) AdoptRange(firstEID, nextEID EID, firstBSID, nextBSID BSID) {
	if !f.seeded || firstEID < f.firstEID {
		f.firstEID = firstEID
	}
	if !f.seeded || firstBSID < f.firstBSID {
		f.firstBSID = firstBSID
	}
	if nextEID > f.nextEID {
		f.nextEID = nextEID
	}
	if nextBSID > f.nextBSID {
		f.nextBSID = nextBSID
	}
	f.seeded = true
}

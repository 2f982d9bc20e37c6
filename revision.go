package core

// RevisionRoot is the snapshot of all branch instances at one revision. It
// owns the flat instance list; nesting between instances is expressed only
// through each instance's OuterBranch back-link (§3).
type RevisionRoot struct {
	Repo       *Repository
	Rev        int
	RootBranch *BranchInstance
	Instances  []*BranchInstance
}

// AddInstance registers a branch instance under this revision root. The
// first top-level (outer-less) instance added becomes RootBranch.
func (r *RevisionRoot) AddInstance(b *BranchInstance) {
	r.Instances = append(r.Instances, b)
	if b.IsTop() && r.RootBranch == nil {
		r.RootBranch = b
	}
}

// RemoveInstance drops a branch instance from this revision root's list.
// It does not touch any outer branch's element map — the caller owns that.
func (r *RevisionRoot) RemoveInstance(b *BranchInstance) {
	for i, inst := range r.Instances {
		if inst == b {
			r.Instances = append(r.Instances[:i], r.Instances[i+1:]...)
			return
		}
	}
}

// ImmediateSubBranches returns every instance nested directly inside
// branch (OuterBranch == branch), sorted by BSID for deterministic
// iteration.
func (r *RevisionRoot) ImmediateSubBranches(branch *BranchInstance) []*BranchInstance {
	var out []*BranchInstance
	for _, inst := range r.Instances {
		if inst.OuterBranch == branch {
			out = append(out, inst)
		}
	}
	sortInstancesByBSID(out)
	return out
}

// ImmediateSubBranchesAt returns every instance anchored exactly at
// (branch, eid), sorted by BSID.
func (r *RevisionRoot) ImmediateSubBranchesAt(branch *BranchInstance, eid EID) []*BranchInstance {
	var out []*BranchInstance
	for _, inst := range r.Instances {
		if inst.OuterBranch == branch && inst.OuterEID == eid {
			out = append(out, inst)
		}
	}
	sortInstancesByBSID(out)
	return out
}

// SortedInstances returns a copy of this revision root's instances ordered
// by BSID ascending, for deterministic serialization (§4.9).
func (r *RevisionRoot) SortedInstances() []*BranchInstance {
	out := make([]*BranchInstance, len(r.Instances))
	copy(out, r.Instances)
	sortInstancesByBSID(out)
	return out
}

func sortInstancesByBSID(insts []*BranchInstance) {
	for i := 1; i < len(insts); i++ {
		for j := i; j > 0 && insts[j-1].Sibling.BSID > insts[j].Sibling.BSID; j-- {
			insts[j-1], insts[j] = insts[j], insts[j-1]
		}
	}
}

// Repository is the ordered sequence of revision roots (indexed by revision
// number) and the single family that owns their id space (§3).
type Repository struct {
	ID        UUID
	Family    *Family
	Revisions []*RevisionRoot
}

// NewRepository creates an empty repository with a fresh family.
func NewRepository() *Repository {
	return &Repository{ID: NewUUID(), Family: NewFamily()}
}

// GetRevision returns the revision root at rev, or a NoSuchRevision error if out of range.
func (r *Repository) GetRevision(rev int) (*RevisionRoot, error) {
	if rev < 0 || rev >= len(r.Revisions) {
		return nil, newError(NoSuchRevision, rev, "revision %d out of range [0,%d)", rev, len(r.Revisions))
	}
	return r.Revisions[rev], nil
}

// NewRevision appends and returns a new, empty revision root with rev equal
// to the repository's current revision count.
func (r *Repository) NewRevision() *RevisionRoot {
	rr := &RevisionRoot{Repo: r, Rev: len(r.Revisions)}
	r.Revisions = append(r.Revisions, rr)
	return rr
}

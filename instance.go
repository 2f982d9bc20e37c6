package core

import (
	"fmt"
	"strings"
)

// BranchInstance is a concrete materialisation of a BranchSibling inside a
// revision: it holds an element map and, if nested, a back-link to the
// outer branch instance and the EID it anchors to (§3).
type BranchInstance struct {
	Sibling     *BranchSibling
	RevRoot     *RevisionRoot
	OuterBranch *BranchInstance
	OuterEID    EID
	EMap        *ElementMap

	// Index is an optional path-resolution cache consulted by EIDByPath
	// (§4.3); nil means always scan. Any successful Set/Delete invalidates
	// it, since a single renamed or reparented element can shift the
	// computed path of every element beneath it.
	Index PathIndex
}

// NewBranchInstance creates a branch instance bound to outerBranch:outerEID
// (pass nil/NoEID for a top-level instance), with an element map seeded
// with the bare root element (parent -1, empty name, no payload) required
// by invariant 2 (§3).
func NewBranchInstance(sibling *BranchSibling, revRoot *RevisionRoot, outerBranch *BranchInstance, outerEID EID) *BranchInstance {
	b := &BranchInstance{
		Sibling:     sibling,
		RevRoot:     revRoot,
		OuterBranch: outerBranch,
		OuterEID:    outerEID,
		EMap:        NewElementMap(),
	}
	b.EMap.setRaw(sibling.RootEID, &ElementContent{ParentEID: NoEID, Name: ""})
	return b
}

// RootEID returns the EID of this branch instance's root element.
func (b *BranchInstance) RootEID() EID { return b.Sibling.RootEID }

// IsTop reports whether this branch instance has no outer branch (§3 invariant 5).
func (b *BranchInstance) IsTop() bool { return b.OuterBranch == nil }

// BranchIDString computes the stable branch-id string by walking outward:
// "^" for the top instance, "^.<outer_eid>.<outer_outer_eid>..." for nested
// ones. Stable regardless of object identity (§3).
func (b *BranchInstance) BranchIDString() string {
	if b.IsTop() {
		return "^"
	}
	var parts []string
	cur := b
	for !cur.IsTop() {
		parts = append(parts, cur.OuterEID.String())
		cur = cur.OuterBranch
	}
	return "^." + strings.Join(parts, ".")
}

// Get returns the element content at eid, if present.
func (b *BranchInstance) Get(eid EID) (*ElementContent, bool) {
	return b.EMap.Get(eid)
}

// Set validates content against the invariants in §3 and, if it passes,
// installs it at eid (or removes the entry if content is nil).
func (b *BranchInstance) Set(eid EID, content *ElementContent) error {
	if content == nil {
		if eid == b.RootEID() {
			return newError(InvalidElement, eid, "cannot delete the branch root element")
		}
		b.EMap.setRaw(eid, nil)
		if b.Index != nil {
			b.Index.Invalidate()
		}
		return nil
	}
	if err := b.validate(eid, content); err != nil {
		return err
	}
	if existing, ok := b.EMap.Get(eid); ok && existing.Equal(content) {
		return nil // idempotent no-op
	}
	b.EMap.setRaw(eid, content)
	if b.Index != nil {
		b.Index.Invalidate()
	}
	return nil
}

// validate enforces §3 invariants 1-4 for a would-be element at eid.
func (b *BranchInstance) validate(eid EID, content *ElementContent) error {
	family := b.Sibling.Family
	if !family.InRange(eid) {
		return newError(InvalidElement, eid, "eid %s outside family range [%s,%s)", eid, family.FirstEID(), family.NextEID())
	}
	isRoot := eid == b.RootEID()
	if isRoot {
		if content.ParentEID != NoEID {
			return newError(InvalidElement, eid, "branch root must have parent_eid == -1, got %s", content.ParentEID)
		}
		if content.Name != "" {
			return newError(InvalidElement, eid, "branch root must have an empty name, got %q", content.Name)
		}
	} else {
		if content.ParentEID == eid {
			return newError(InvalidElement, eid, "element cannot be its own parent")
		}
		if content.ParentEID != NoEID && !family.InRange(content.ParentEID) {
			return newError(InvalidElement, eid, "parent_eid %s outside family range", content.ParentEID)
		}
		if content.Name == "" {
			return newError(InvalidElement, eid, "non-root element requires a non-empty name")
		}
	}
	if err := content.Payload.Validate(); err != nil {
		return err
	}
	return nil
}

// Update installs an element at eid with the given parent, name, and
// payload. It is idempotent: calling it again with identical arguments is a
// no-op, per §4.2 and the §9 resolution of the open question about
// branch_map_update's disabled idempotence assertion.
func (b *BranchInstance) Update(eid EID, parentEID EID, name string, payload *Payload) error {
	return b.Set(eid, &ElementContent{ParentEID: parentEID, Name: name, Payload: payload})
}

// UpdateAsSubbranchRoot installs a payload-less placeholder element at eid:
// the anchor point for a nested sub-branch's root.
func (b *BranchInstance) UpdateAsSubbranchRoot(eid EID, parentEID EID, name string) error {
	return b.Set(eid, &ElementContent{ParentEID: parentEID, Name: name, Payload: nil})
}

// Delete removes the element at eid. Deleting the branch root is rejected.
func (b *BranchInstance) Delete(eid EID) error {
	return b.Set(eid, nil)
}

func (b *BranchInstance) String() string {
	return fmt.Sprintf("branch{%s bsid=%s root=%s}", b.BranchIDString(), b.Sibling.BSID, b.RootEID())
}

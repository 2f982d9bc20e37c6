package editor

import (
	core "github.com/elembranch/core"
	"github.com/elembranch/core/rules"
)

// CancelProbe is invoked before every operation; returning true skips the
// operation and turns it into a Cancelled error (§4.10, §5).
type CancelProbe func() bool

// SourceRef names an element in some branch instance, used as the "from"
// side of copy_one/copy_tree. The branch instance carries its own
// revision root, so the effective source revision is Rev().
type SourceRef struct {
	Branch *core.BranchInstance
	EID    core.EID
}

// Rev returns the revision number the source element belongs to.
func (s SourceRef) Rev() int { return s.Branch.RevRoot.Rev }

// Editor is the validated command sink described in §4.10. Every method
// is expected to run the cancellation hook and reentrancy check before
// doing any work — CoreEditor does this uniformly via dispatch; wrappers
// (Trace, ChangeDetecting) decorate any Editor, including each other.
type Editor interface {
	NewEID(branch *core.BranchInstance) (core.EID, error)
	Add(branch *core.BranchInstance, eid, newParentEID core.EID, newName string, payload *core.Payload) error
	CopyOne(src SourceRef, branch *core.BranchInstance, localEID, newParentEID core.EID, newName string, payload *core.Payload) error
	CopyTree(src SourceRef, branch *core.BranchInstance, newParentEID core.EID, newName string) error
	Delete(branch *core.BranchInstance, eid core.EID) error
	Alter(branch *core.BranchInstance, eid, newParentEID core.EID, newName string, payload *core.Payload) error
	PayloadResolve(payload *core.Payload) (*core.Payload, error)
	SequencePoint() error
	Complete() error
	Abort() error
}

// CoreEditor is the baseline Editor implementation, operating directly on
// the core package's branch-instance and subtree operations.
type CoreEditor struct {
	repo *core.Repository

	cancel CancelProbe
	debug  bool

	inCallback bool
	finished   bool
	scratch    map[string]any

	namePolicy *rules.NamePolicy
}

// NewCoreEditor creates an editor over repo. If debug is true, reentrancy
// and post-completion calls panic (an assertion) instead of returning an
// error, matching the debug-build behavior called out in §4.10/§7;
// production callers should pass debug=false and handle the returned
// Consistency errors.
func NewCoreEditor(repo *core.Repository, debug bool, cancel CancelProbe) *CoreEditor {
	return &CoreEditor{repo: repo, debug: debug, cancel: cancel, scratch: make(map[string]any)}
}

// Scratch returns the working-memory scope for the operation currently in
// progress. It is cleared at the start of every dispatched operation and
// must not be retained past the call that obtained it (§5, §6).
func (e *CoreEditor) Scratch() map[string]any { return e.scratch }

// SetNamePolicy installs a naming policy consulted by Add and Alter
// whenever newName is non-empty. A nil policy (the default) disables the
// check, leaving only the core's bare non-empty-string invariant (§3).
func (e *CoreEditor) SetNamePolicy(policy *rules.NamePolicy) {
	e.namePolicy = policy
}

func (e *CoreEditor) checkName(name string) error {
	if e.namePolicy == nil || name == "" {
		return nil
	}
	ok, err := e.namePolicy.Allows(name)
	if err != nil {
		return core.NewError(core.Consistency, name, "editor: name policy evaluation failed: %w", err)
	}
	if !ok {
		return core.NewError(core.InvalidElement, name, "editor: name %q rejected by naming policy", name)
	}
	return nil
}

func (e *CoreEditor) dispatch(op string, fn func() error) error {
	if e.finished {
		if e.debug {
			panic("editor: operation " + op + " called after complete/abort")
		}
		return core.NewError(core.Consistency, op, "editor: %s called after complete/abort", op)
	}
	if e.cancel != nil && e.cancel() {
		return core.NewError(core.Cancelled, op, "editor: %s cancelled", op)
	}
	if e.debug {
		if e.inCallback {
			panic("editor: reentrant call to " + op + " while another callback is in progress")
		}
		e.inCallback = true
		defer func() { e.inCallback = false }()
	}
	for k := range e.scratch {
		delete(e.scratch, k)
	}
	return fn()
}

// NewEID allocates a fresh EID in branch's family.
func (e *CoreEditor) NewEID(branch *core.BranchInstance) (core.EID, error) {
	var result core.EID
	err := e.dispatch("new_eid", func() error {
		result = branch.Sibling.Family.AllocateEID()
		return nil
	})
	return result, err
}

// Add installs a new element at eid (§4.10 add).
func (e *CoreEditor) Add(branch *core.BranchInstance, eid, newParentEID core.EID, newName string, payload *core.Payload) error {
	return e.dispatch("add", func() error {
		if err := e.checkName(newName); err != nil {
			return err
		}
		return branch.Update(eid, newParentEID, newName, payload)
	})
}

// CopyOne copies a single resolved element from src into branch at
// localEID (§4.10 copy_one). If payload is nil, the destination element
// is installed as a by-reference payload pointing back at the source's
// own location, rather than eagerly resolving it.
func (e *CoreEditor) CopyOne(src SourceRef, branch *core.BranchInstance, localEID, newParentEID core.EID, newName string, payload *core.Payload) error {
	return e.dispatch("copy_one", func() error {
		if _, ok := core.PathByEID(src.Branch, src.EID); !ok {
			return core.NewError(core.Branching, src.EID, "copy_one: source element has no path")
		}
		p := payload
		if p == nil {
			rrpath, ok := core.RRPathByEID(src.Branch, src.EID)
			if !ok {
				return core.NewError(core.Consistency, src.EID, "copy_one: could not compute source path")
			}
			p = &core.Payload{Ref: &core.PayloadRef{Rev: src.Rev(), RelPath: string(rrpath)}}
		}
		return branch.Update(localEID, newParentEID, newName, p)
	})
}

// CopyTree copies the whole subtree rooted at src into branch, assigning
// fresh EIDs throughout (§4.10 copy_tree, via core.CopySubtreeR).
func (e *CoreEditor) CopyTree(src SourceRef, branch *core.BranchInstance, newParentEID core.EID, newName string) error {
	return e.dispatch("copy_tree", func() error {
		_, err := core.CopySubtreeR(src.Branch, src.EID, branch, newParentEID, newName)
		return err
	})
}

// Delete removes eid from branch (§4.10 delete); deleting the root is
// rejected by the underlying branch.Delete.
func (e *CoreEditor) Delete(branch *core.BranchInstance, eid core.EID) error {
	return e.dispatch("delete", func() error {
		return branch.Delete(eid)
	})
}

// Alter rewrites eid's parent/name/payload (§4.10 alter). As a side
// effect it widens the family's EID range so both eid and newParentEID
// fall within it, rather than rejecting ids nothing has claimed yet.
func (e *CoreEditor) Alter(branch *core.BranchInstance, eid, newParentEID core.EID, newName string, payload *core.Payload) error {
	return e.dispatch("alter", func() error {
		if err := e.checkName(newName); err != nil {
			return err
		}
		family := branch.Sibling.Family
		family.EnsureAtLeast(eid)
		if newParentEID != core.NoEID {
			family.EnsureAtLeast(newParentEID)
		}
		return branch.Update(eid, newParentEID, newName, payload)
	})
}

// PayloadResolve follows a chain of by-reference payloads to the full
// payload they ultimately denote (§4.11's resolve step).
func (e *CoreEditor) PayloadResolve(payload *core.Payload) (*core.Payload, error) {
	var result *core.Payload
	err := e.dispatch("payload_resolve", func() error {
		cur := payload
		const maxHops = 64
		for i := 0; i < maxHops; i++ {
			if cur == nil || cur.IsFull() {
				result = cur
				return nil
			}
			ref := cur.Ref
			rr, err := e.repo.GetRevision(ref.Rev)
			if err != nil {
				return err
			}
			if rr.RootBranch == nil {
				return core.NewError(core.Consistency, ref, "payload_resolve: revision %d has no root branch", ref.Rev)
			}
			branch, resolvedEID, ok := core.FindNestedBranchElementByRRPath(rr.RootBranch, core.RelPath(ref.RelPath))
			if !ok {
				return core.NewError(core.Consistency, ref, "payload_resolve: path %q not found at revision %d", ref.RelPath, ref.Rev)
			}
			content, ok := branch.Get(resolvedEID)
			if !ok {
				return core.NewError(core.Consistency, ref, "payload_resolve: element vanished while resolving")
			}
			cur = content.Payload
		}
		return core.NewError(core.Consistency, payload, "payload_resolve: reference chain too deep")
	})
	return result, err
}

// SequencePoint marks a quiescent moment between operation bursts; it has
// no effect beyond participating in the dispatch/cancellation/ordering
// checks every other operation goes through.
func (e *CoreEditor) SequencePoint() error {
	return e.dispatch("sequence_point", func() error { return nil })
}

// Complete marks the editor finished; no further operations may be issued.
func (e *CoreEditor) Complete() error {
	return e.dispatch("complete", func() error {
		e.finished = true
		return nil
	})
}

// Abort marks the editor finished without implying the prior operations
// should be treated as a successful sequence; no further operations may
// be issued.
func (e *CoreEditor) Abort() error {
	return e.dispatch("abort", func() error {
		e.finished = true
		return nil
	})
}

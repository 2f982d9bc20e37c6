package editor_test

import (
	"strings"
	"testing"

	core "github.com/elembranch/core"
	"github.com/elembranch/core/editor"
	"github.com/elembranch/core/rules"
)

func freshTop(t *testing.T) (*core.Repository, *core.RevisionRoot, *core.BranchInstance) {
	t.Helper()
	repo := core.NewRepository()
	rr := repo.NewRevision()
	rootEID := repo.Family.AllocateEID()
	sib := repo.Family.AllocateBranchSibling(rootEID)
	top := core.NewBranchInstance(sib, rr, nil, core.NoEID)
	rr.AddInstance(top)
	return repo, rr, top
}

func TestAddAndDelete(t *testing.T) {
	repo, _, top := freshTop(t)
	e := editor.NewCoreEditor(repo, false, nil)

	eid, err := e.NewEID(top)
	if err != nil {
		t.Fatalf("new_eid: %v", err)
	}
	if err := e.Add(top, eid, top.RootEID(), "f.txt", &core.Payload{Kind: core.KindFile}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, ok := top.Get(eid); !ok {
		t.Fatal("expected element to exist after add")
	}
	if err := e.Delete(top, eid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := top.Get(eid); ok {
		t.Fatal("expected element to be gone after delete")
	}
}

func TestDeleteRootRejected(t *testing.T) {
	repo, _, top := freshTop(t)
	e := editor.NewCoreEditor(repo, false, nil)
	if err := e.Delete(top, top.RootEID()); err == nil {
		t.Fatal("expected delete of root to fail")
	}
}

func TestAlterRootRequiresRootShape(t *testing.T) {
	repo, _, top := freshTop(t)
	e := editor.NewCoreEditor(repo, false, nil)
	if err := e.Alter(top, top.RootEID(), core.EID(5), "x", nil); err == nil {
		t.Fatal("expected alter of root with non-root shape to fail")
	}
}

func TestAlterAutoAllocatesEIDRange(t *testing.T) {
	repo, _, top := freshTop(t)
	e := editor.NewCoreEditor(repo, false, nil)
	farEID := core.EID(500)
	if err := e.Alter(top, farEID, top.RootEID(), "far.txt", &core.Payload{Kind: core.KindFile}); err != nil {
		t.Fatalf("alter: %v", err)
	}
	if !repo.Family.InRange(farEID) {
		t.Fatalf("expected family range to widen to include %s", farEID)
	}
}

func TestCompleteRejectsFurtherOperations(t *testing.T) {
	repo, _, _ := freshTop(t)
	e := editor.NewCoreEditor(repo, false, nil)
	if err := e.Complete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := e.SequencePoint(); err == nil {
		t.Fatal("expected sequence_point after complete to fail")
	}
}

func TestCancelProbeStopsOperations(t *testing.T) {
	repo, _, top := freshTop(t)
	e := editor.NewCoreEditor(repo, false, func() bool { return true })
	eid := repo.Family.AllocateEID()
	err := e.Add(top, eid, top.RootEID(), "x", &core.Payload{Kind: core.KindFile})
	if err == nil {
		t.Fatal("expected cancellation to stop the add")
	}
	var coreErr *core.Error
	if e, ok := err.(*core.Error); ok {
		coreErr = e
	}
	if coreErr == nil || coreErr.Code != core.Cancelled {
		t.Fatalf("expected Cancelled error, got %v", err)
	}
}

func TestTraceWrapperForwardsAndLogs(t *testing.T) {
	repo, _, top := freshTop(t)
	base := editor.NewCoreEditor(repo, false, nil)
	var out strings.Builder
	traced := &editor.Trace{Next: base, Prefix: "[test] ", Out: &out}

	eid := repo.Family.AllocateEID()
	if err := traced.Add(top, eid, top.RootEID(), "f.txt", &core.Payload{Kind: core.KindFile}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out.String(), "add") {
		t.Fatalf("expected trace output to mention the add operation, got %q", out.String())
	}
}

func TestChangeDetectingWrapperFlipsOnMutation(t *testing.T) {
	repo, _, top := freshTop(t)
	base := editor.NewCoreEditor(repo, false, nil)
	changed := false
	wrapped := &editor.ChangeDetecting{Next: base, Changed: &changed}

	eid := repo.Family.AllocateEID()
	if err := wrapped.Add(top, eid, top.RootEID(), "f.txt", &core.Payload{Kind: core.KindFile}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !changed {
		t.Fatal("expected Changed to flip to true after a successful add")
	}
}

func TestAddRejectsNameViolatingPolicy(t *testing.T) {
	repo, _, top := freshTop(t)
	e := editor.NewCoreEditor(repo, false, nil)
	e.SetNamePolicy(rules.DefaultNamePolicy())

	eid := repo.Family.AllocateEID()
	err := e.Add(top, eid, top.RootEID(), "bad/name", &core.Payload{Kind: core.KindFile})
	if err == nil {
		t.Fatal("expected a name containing '/' to be rejected by the default policy")
	}
	if _, ok := top.Get(eid); ok {
		t.Fatal("expected the rejected add to not have installed the element")
	}
}

func TestPayloadResolveFollowsReference(t *testing.T) {
	repo, rr, top := freshTop(t)
	eid := repo.Family.AllocateEID()
	full := &core.Payload{Kind: core.KindFile, Props: map[string]any{"size": 3}}
	if err := top.Update(eid, top.RootEID(), "f.txt", full); err != nil {
		t.Fatalf("update: %v", err)
	}

	e := editor.NewCoreEditor(repo, false, nil)
	ref := &core.Payload{Ref: &core.PayloadRef{Rev: rr.Rev, RelPath: "f.txt"}}
	resolved, err := e.PayloadResolve(ref)
	if err != nil {
		t.Fatalf("payload_resolve: %v", err)
	}
	if !resolved.IsFull() || resolved.Kind != core.KindFile {
		t.Fatalf("expected resolved payload to be the full file payload, got %+v", resolved)
	}
}

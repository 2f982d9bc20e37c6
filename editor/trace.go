package editor

import (
	"fmt"
	"io"

	core "github.com/elembranch/core"
)

// Trace decorates an Editor, printing every operation to Out (prefixed) before
// forwarding the call unchanged (§4.10).
type Trace struct {
	Next   Editor
	Prefix string
	Out    io.Writer
}

func (t *Trace) logf(format string, args ...any) {
	fmt.Fprintf(t.Out, "%s"+format+"\n", append([]any{t.Prefix}, args...)...)
}

func (t *Trace) NewEID(branch *core.BranchInstance) (core.EID, error) {
	t.logf("new_eid branch=%s", branch)
	return t.Next.NewEID(branch)
}

func (t *Trace) Add(branch *core.BranchInstance, eid, newParentEID core.EID, newName string, payload *core.Payload) error {
	t.logf("add branch=%s eid=%s parent=%s name=%q", branch, eid, newParentEID, newName)
	return t.Next.Add(branch, eid, newParentEID, newName, payload)
}

func (t *Trace) CopyOne(src SourceRef, branch *core.BranchInstance, localEID, newParentEID core.EID, newName string, payload *core.Payload) error {
	t.logf("copy_one src=%s:%s branch=%s local=%s parent=%s name=%q", src.Branch, src.EID, branch, localEID, newParentEID, newName)
	return t.Next.CopyOne(src, branch, localEID, newParentEID, newName, payload)
}

func (t *Trace) CopyTree(src SourceRef, branch *core.BranchInstance, newParentEID core.EID, newName string) error {
	t.logf("copy_tree src=%s:%s branch=%s parent=%s name=%q", src.Branch, src.EID, branch, newParentEID, newName)
	return t.Next.CopyTree(src, branch, newParentEID, newName)
}

func (t *Trace) Delete(branch *core.BranchInstance, eid core.EID) error {
	t.logf("delete branch=%s eid=%s", branch, eid)
	return t.Next.Delete(branch, eid)
}

func (t *Trace) Alter(branch *core.BranchInstance, eid, newParentEID core.EID, newName string, payload *core.Payload) error {
	t.logf("alter branch=%s eid=%s parent=%s name=%q", branch, eid, newParentEID, newName)
	return t.Next.Alter(branch, eid, newParentEID, newName, payload)
}

func (t *Trace) PayloadResolve(payload *core.Payload) (*core.Payload, error) {
	t.logf("payload_resolve")
	return t.Next.PayloadResolve(payload)
}

func (t *Trace) SequencePoint() error {
	t.logf("sequence_point")
	return t.Next.SequencePoint()
}

func (t *Trace) Complete() error {
	t.logf("complete")
	return t.Next.Complete()
}

func (t *Trace) Abort() error {
	t.logf("abort")
	return t.Next.Abort()
}

package editor

import core "github.com/elembranch/core"

// ChangeDetecting decorates an Editor, forwarding every call unchanged but
// flipping *Changed to true whenever a mutating operation (add, copy_one,
// copy_tree, delete, alter) succeeds (§4.10).
type ChangeDetecting struct {
	Next    Editor
	Changed *bool
}

func (c *ChangeDetecting) mark(err error) error {
	if err == nil {
		*c.Changed = true
	}
	return err
}

func (c *ChangeDetecting) NewEID(branch *core.BranchInstance) (core.EID, error) {
	return c.Next.NewEID(branch)
}

func (c *ChangeDetecting) Add(branch *core.BranchInstance, eid, newParentEID core.EID, newName string, payload *core.Payload) error {
	return c.mark(c.Next.Add(branch, eid, newParentEID, newName, payload))
}

func (c *ChangeDetecting) CopyOne(src SourceRef, branch *core.BranchInstance, localEID, newParentEID core.EID, newName string, payload *core.Payload) error {
	return c.mark(c.Next.CopyOne(src, branch, localEID, newParentEID, newName, payload))
}

func (c *ChangeDetecting) CopyTree(src SourceRef, branch *core.BranchInstance, newParentEID core.EID, newName string) error {
	return c.mark(c.Next.CopyTree(src, branch, newParentEID, newName))
}

func (c *ChangeDetecting) Delete(branch *core.BranchInstance, eid core.EID) error {
	return c.mark(c.Next.Delete(branch, eid))
}

func (c *ChangeDetecting) Alter(branch *core.BranchInstance, eid, newParentEID core.EID, newName string, payload *core.Payload) error {
	return c.mark(c.Next.Alter(branch, eid, newParentEID, newName, payload))
}

func (c *ChangeDetecting) PayloadResolve(payload *core.Payload) (*core.Payload, error) {
	return c.Next.PayloadResolve(payload)
}

func (c *ChangeDetecting) SequencePoint() error {
	return c.Next.SequencePoint()
}

func (c *ChangeDetecting) Complete() error {
	return c.Next.Complete()
}

func (c *ChangeDetecting) Abort() error {
	return c.Next.Abort()
}

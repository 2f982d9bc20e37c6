package textfmt

import (
	"bufio"
	"fmt"
	"io"

	core "github.com/elembranch/core"
)

const nullName = "(null)"
const dotPlaceholder = "."

// Serialize writes rr in the normative text form to w: a revision header, a
// family range line, then one branch-instance block per instance (ordered
// by BSID) with one element line per EID in the family's current range.
// Every branch instance is purged of orphans first, matching the guarantee
// the parser relies on.
func Serialize(w io.Writer, rr *core.RevisionRoot) error {
	bw := bufio.NewWriter(w)

	instances := rr.SortedInstances()
	for _, inst := range instances {
		core.PurgeOrphans(inst)
	}

	family := rr.Repo.Family
	if _, err := fmt.Fprintf(bw, "r%d:\n", rr.Rev); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "family: bsids %s %s eids %s %s b-instances %d\n",
		family.FirstBSID(), family.NextBSID(), family.FirstEID(), family.NextEID(), len(instances)); err != nil {
		return err
	}

	for _, inst := range instances {
		path := string(core.RootRRPath(inst))
		if path == "" {
			path = dotPlaceholder
		}
		if _, err := fmt.Fprintf(bw, "b%s: root-eid %s at %s\n", inst.Sibling.BSID, inst.RootEID(), path); err != nil {
			return err
		}
		for eid := family.FirstEID(); eid < family.NextEID(); eid++ {
			content, ok := inst.Get(eid)
			if !ok {
				if _, err := fmt.Fprintf(bw, "b%se%s: -1 %s\n", inst.Sibling.BSID, eid, nullName); err != nil {
					return err
				}
				continue
			}
			name := content.Name
			if eid == inst.RootEID() {
				name = dotPlaceholder
			} else if name == "" {
				name = dotPlaceholder
			}
			if _, err := fmt.Fprintf(bw, "b%se%s: %s %s\n", inst.Sibling.BSID, eid, content.ParentEID, name); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

package textfmt

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	core "github.com/elembranch/core"
)

var (
	revLine     = regexp.MustCompile(`^r(-?\d+):$`)
	familyLine  = regexp.MustCompile(`^family: bsids (-?\d+) (-?\d+) eids (-?\d+) (-?\d+) b-instances (\d+)$`)
	branchLine  = regexp.MustCompile(`^b(-?\d+): root-eid (-?\d+) at (.+)$`)
	elementLine = regexp.MustCompile(`^b(-?\d+)e(-?\d+): (-?\d+) (.+)$`)
)

type rawElement struct {
	bsid   core.BSID
	eid    core.EID
	parent core.EID
	name   string
}

type rawBranch struct {
	bsid    core.BSID
	rootEID core.EID
	path    string
}

// Parse reads one revision root in the normative text form from r, attaches
// it to repo (whose family's id ranges are widened to match the header),
// and returns it. Element lines naming "(null)" are treated as absent.
// After the element maps are reconstructed, every surviving element is
// given a by-reference payload pointing at its own computed root-relative
// path in this revision — the parser's normalisation step (§4.9).
func Parse(r io.Reader, repo *core.Repository) (*core.RevisionRoot, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, newParseError(0, "unexpected EOF before revision header")
	}
	lineNo := 1
	m := revLine.FindStringSubmatch(scanner.Text())
	if m == nil {
		return nil, newParseError(lineNo, "expected revision header, got %q", scanner.Text())
	}
	rev, _ := strconv.Atoi(m[1])

	if !scanner.Scan() {
		return nil, newParseError(lineNo, "unexpected EOF before family line")
	}
	lineNo++
	fm := familyLine.FindStringSubmatch(scanner.Text())
	if fm == nil {
		return nil, newParseError(lineNo, "expected family line, got %q", scanner.Text())
	}
	firstBSID, _ := strconv.Atoi(fm[1])
	nextBSID, _ := strconv.Atoi(fm[2])
	firstEID, _ := strconv.Atoi(fm[3])
	nextEID, _ := strconv.Atoi(fm[4])
	nInstances, _ := strconv.Atoi(fm[5])

	family := repo.Family
	family.AdoptRange(core.EID(firstEID), core.EID(nextEID), core.BSID(firstBSID), core.BSID(nextBSID))

	rr := &core.RevisionRoot{Repo: repo, Rev: rev}

	branches := make([]rawBranch, 0, nInstances)
	elementsByBSID := make(map[core.BSID][]rawElement)

	for i := 0; i < nInstances; i++ {
		if !scanner.Scan() {
			return nil, newParseError(lineNo, "unexpected EOF before branch header %d", i)
		}
		lineNo++
		bm := branchLine.FindStringSubmatch(scanner.Text())
		if bm == nil {
			return nil, newParseError(lineNo, "expected branch header, got %q", scanner.Text())
		}
		bsidN, _ := strconv.Atoi(bm[1])
		rootEIDN, _ := strconv.Atoi(bm[2])
		path := bm[3]
		if path == dotPlaceholder {
			path = ""
		}
		rb := rawBranch{bsid: core.BSID(bsidN), rootEID: core.EID(rootEIDN), path: path}
		branches = append(branches, rb)

		for eid := firstEID; eid < nextEID; eid++ {
			if !scanner.Scan() {
				return nil, newParseError(lineNo, "unexpected EOF before element line for b%de%d", bsidN, eid)
			}
			lineNo++
			em := elementLine.FindStringSubmatch(scanner.Text())
			if em == nil {
				return nil, newParseError(lineNo, "expected element line, got %q", scanner.Text())
			}
			elBSID, _ := strconv.Atoi(em[1])
			elEID, _ := strconv.Atoi(em[2])
			parentN, _ := strconv.Atoi(em[3])
			name := em[4]
			if elBSID != bsidN || elEID != eid {
				return nil, newParseError(lineNo, "element line b%de%d out of sequence, expected b%de%d", elBSID, elEID, bsidN, eid)
			}
			if name == nullName {
				continue
			}
			if name == dotPlaceholder {
				name = ""
			}
			elementsByBSID[rb.bsid] = append(elementsByBSID[rb.bsid], rawElement{
				bsid:   rb.bsid,
				eid:    core.EID(elEID),
				parent: core.EID(parentN),
				name:   name,
			})
		}
	}

	// Link branches outward-in: shallowest path first, so that by the time a
	// deeper branch is resolved its ancestors are already registered in rr
	// and FindNestedBranchElementByRRPath can dive through them.
	sort.SliceStable(branches, func(i, j int) bool {
		return depth(branches[i].path) < depth(branches[j].path)
	})

	var top *core.BranchInstance
	for _, rb := range branches {
		sibling, err := family.FindOrCreateSibling(rb.bsid, rb.rootEID)
		if err != nil {
			return nil, err
		}

		var outerBranch *core.BranchInstance
		outerEID := core.NoEID
		if rb.path != "" {
			if top == nil {
				return nil, newParseError(0, "branch b%s has non-root path %q but no top branch was parsed yet", rb.bsid, rb.path)
			}
			ob, oe, ok := core.FindNestedBranchElementByRRPath(top, core.RelPath(rb.path))
			if !ok {
				return nil, newParseError(0, "branch b%s: could not resolve anchor path %q", rb.bsid, rb.path)
			}
			outerBranch, outerEID = ob, oe
		}

		inst := core.NewBranchInstance(sibling, rr, outerBranch, outerEID)
		rr.AddInstance(inst)
		if outerBranch == nil {
			top = inst
		}

		for _, el := range elementsByBSID[rb.bsid] {
			if err := inst.Set(el.eid, &core.ElementContent{ParentEID: el.parent, Name: el.name}); err != nil {
				return nil, err
			}
		}
	}

	for _, inst := range rr.SortedInstances() {
		for _, eid := range instanceEIDs(inst) {
			rrpath, ok := core.RRPathByEID(inst, eid)
			if !ok {
				continue
			}
			content, _ := inst.Get(eid)
			if err := inst.Update(eid, content.ParentEID, content.Name, &core.Payload{
				Ref: &core.PayloadRef{Rev: rev, RelPath: string(rrpath)},
			}); err != nil {
				return nil, err
			}
		}
	}

	switch {
	case rev == len(repo.Revisions):
		repo.Revisions = append(repo.Revisions, rr)
	case rev >= 0 && rev < len(repo.Revisions):
		repo.Revisions[rev] = rr
	default:
		return nil, newParseError(0, "revision %d leaves a gap in repository with %d revisions", rev, len(repo.Revisions))
	}

	return rr, nil
}

func instanceEIDs(inst *core.BranchInstance) []core.EID {
	return inst.EMap.Keys()
}

func depth(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, "/") + 1
}

func newParseError(line int, format string, args ...any) error {
	return core.NewError(core.Parse, line, "line %d: %s", line, fmt.Sprintf(format, args...))
}

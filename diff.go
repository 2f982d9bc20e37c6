package core

import "github.com/elembranch/core/rules"

// PayloadResolver resolves a possibly by-reference payload to the full
// payload it ultimately denotes. The editor façade owns the revision
// lookups this requires (§4.11), so core takes it as a parameter rather
// than importing that package.
type PayloadResolver func(p *Payload) (*Payload, error)

// DiffPair is one EID's pair of (possibly absent) resolved element content
// across two subtrees.
type DiffPair struct {
	EID   EID
	Left  *ElementContent
	Right *ElementContent
}

// SubtreeDifferences compares left and right element-by-element: for every
// EID present in either, it resolves both sides' payloads via resolve and
// compares the resulting content, emitting a DiffPair for every EID where
// the two sides differ (including when one side is entirely absent)
// (§4.11). comparator is optional: pass nil for plain structural equality
// (ElementContent.Equal), or a compiled rules.PropsComparator to treat two
// full payloads as equivalent despite a literal Props difference (e.g.
// ignoring a timestamp field).
func SubtreeDifferences(resolve PayloadResolver, left, right Subtree, comparator *rules.PropsComparator) ([]DiffPair, error) {
	seen := make(map[EID]bool)
	var eids []EID
	for _, eid := range left.EMap.Keys() {
		if !seen[eid] {
			seen[eid] = true
			eids = append(eids, eid)
		}
	}
	for _, eid := range right.EMap.Keys() {
		if !seen[eid] {
			seen[eid] = true
			eids = append(eids, eid)
		}
	}

	var diffs []DiffPair
	for _, eid := range eids {
		lc, err := resolveContent(resolve, left.EMap, eid)
		if err != nil {
			return nil, err
		}
		rc, err := resolveContent(resolve, right.EMap, eid)
		if err != nil {
			return nil, err
		}
		eq, err := contentEqual(comparator, lc, rc)
		if err != nil {
			return nil, err
		}
		if !eq {
			diffs = append(diffs, DiffPair{EID: eid, Left: lc, Right: rc})
		}
	}
	return diffs, nil
}

// contentEqual compares lc and rc using comparator's Props equivalence
// rule when one is supplied, falling back to ElementContent.Equal's plain
// structural comparison otherwise.
func contentEqual(comparator *rules.PropsComparator, lc, rc *ElementContent) (bool, error) {
	if comparator == nil {
		return lc.Equal(rc), nil
	}
	if lc == nil || rc == nil {
		return lc == rc, nil
	}
	if lc.ParentEID != rc.ParentEID || lc.Name != rc.Name {
		return false, nil
	}
	return payloadEqualWithComparator(comparator, lc.Payload, rc.Payload)
}

func payloadEqualWithComparator(comparator *rules.PropsComparator, a, b *Payload) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}
	if a.IsRef() != b.IsRef() {
		return false, nil
	}
	if a.IsRef() {
		return *a.Ref == *b.Ref, nil
	}
	if a.Kind != b.Kind {
		return false, nil
	}
	cmp, err := comparator.Compare(a.Props, b.Props)
	if err != nil {
		return false, err
	}
	return cmp == 0, nil
}

func resolveContent(resolve PayloadResolver, m *ElementMap, eid EID) (*ElementContent, error) {
	content, ok := m.Get(eid)
	if !ok {
		return nil, nil
	}
	if content.Payload == nil {
		return content, nil
	}
	resolved, err := resolve(content.Payload)
	if err != nil {
		return nil, err
	}
	return &ElementContent{ParentEID: content.ParentEID, Name: content.Name, Payload: resolved}, nil
}

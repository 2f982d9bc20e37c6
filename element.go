package core

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/elembranch/core/encoding"
)

var structValidate = validator.New()

// PayloadKind is the concrete semantic kind of a full payload.
type PayloadKind string

const (
	// KindFile marks a payload as file content.
	KindFile PayloadKind = "file"
	// KindDirectory marks a payload as directory content.
	KindDirectory PayloadKind = "directory"
)

// PayloadRef is a by-reference payload: a pointer at content already
// committed at an earlier revision, identified by relative path. An empty
// RelPath names the top branch's root.
type PayloadRef struct {
	Rev     int `validate:"gte=0"`
	RelPath string
}

// Payload is an element's content: either a full value (Kind + Props) or a
// Ref pointing at previously committed content. Exactly one of Kind or Ref
// is meaningful on any given Payload — see Validate.
type Payload struct {
	// Kind is set for full payloads; empty for references.
	Kind PayloadKind
	// Props carries the full payload's property map. Opaque to this module.
	Props map[string]any
	// Ref is set for by-reference payloads; nil for full payloads.
	Ref *PayloadRef `validate:"omitempty"`
}

// IsRef reports whether p is a by-reference payload.
func (p *Payload) IsRef() bool { return p != nil && p.Ref != nil }

// IsFull reports whether p is a full payload with a concrete kind.
func (p *Payload) IsFull() bool { return p != nil && p.Ref == nil && p.Kind != "" }

// Validate enforces invariant 4 (§3): a non-nil payload must be either a
// valid reference (non-negative rev; any relpath, "" being the root) or a
// full payload with a concrete kind, never both, never neither.
func (p *Payload) Validate() error {
	if p == nil {
		return nil
	}
	if p.Ref != nil {
		if p.Kind != "" {
			return newError(InvalidElement, p, "payload has both a reference and a full kind")
		}
		if err := structValidate.Struct(p.Ref); err != nil {
			return newError(InvalidElement, p, "invalid payload reference: %w", err)
		}
		return nil
	}
	if p.Kind == "" {
		return newError(InvalidElement, p, "full payload requires a concrete kind")
	}
	return nil
}

// Clone returns a deep-enough copy of p for use at a new EID: a fresh
// PayloadRef (if any) and a fresh (shallow) Props map, so the copy can't
// alias back into the source subtree's content objects (§4.6).
func (p *Payload) Clone() *Payload {
	if p == nil {
		return nil
	}
	out := &Payload{Kind: p.Kind}
	if p.Ref != nil {
		ref := *p.Ref
		out.Ref = &ref
	}
	if p.Props != nil {
		out.Props = make(map[string]any, len(p.Props))
		for k, v := range p.Props {
			out.Props[k] = v
		}
	}
	return out
}

// MarshalProps encodes p's property bag using the package-wide default
// marshaler, for callers that need to hand a full payload's properties to
// something outside this module (a storage layer, a wire format) without
// this module taking an opinion on the encoding. Returns nil, nil for a
// nil payload or an empty property bag.
func (p *Payload) MarshalProps() ([]byte, error) {
	if p == nil || len(p.Props) == 0 {
		return nil, nil
	}
	return encoding.Marshal(p.Props)
}

// UnmarshalProps decodes data (as produced by MarshalProps) into p's
// property bag, replacing whatever was there. An empty data replaces the
// bag with nil rather than an empty map.
func (p *Payload) UnmarshalProps(data []byte) error {
	if len(data) == 0 {
		p.Props = nil
		return nil
	}
	var props map[string]any
	if err := encoding.Unmarshal(data, &props); err != nil {
		return err
	}
	p.Props = props
	return nil
}

// ElementContent is the immutable record held for one EID within one
// branch instance's element map: parent EID, name, and optional payload.
type ElementContent struct {
	ParentEID EID
	Name      string
	Payload   *Payload
}

// Equal reports structural equality: same parent, name, and payload shape —
// used by subtree_differences (§4.11) to compare two resolved elements.
func (c *ElementContent) Equal(o *ElementContent) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.ParentEID != o.ParentEID || c.Name != o.Name {
		return false
	}
	return payloadsEqual(c.Payload, o.Payload)
}

func payloadsEqual(a, b *Payload) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsRef() != b.IsRef() {
		return false
	}
	if a.IsRef() {
		return *a.Ref == *b.Ref
	}
	if a.Kind != b.Kind {
		return false
	}
	return mapsEqual(a.Props, b.Props)
}

// mapsEqual compares two opaque property bags. Props values are untyped
// (any JSON-shaped value, including slices and maps), so plain == would
// panic on a non-comparable value; reflect.DeepEqual handles every shape
// the property bag can hold.
func mapsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(bv, v) {
			return false
		}
	}
	return true
}

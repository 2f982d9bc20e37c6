package core

import "testing"

func TestPayloadValidateRejectsRefAndKindTogether(t *testing.T) {
	p := &Payload{Kind: KindFile, Ref: &PayloadRef{Rev: 0, RelPath: "x"}}
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for a payload with both ref and kind")
	}
}

func TestPayloadValidateRejectsEmptyKind(t *testing.T) {
	p := &Payload{}
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for a full payload with no kind")
	}
}

func TestPayloadValidateAcceptsNil(t *testing.T) {
	var p *Payload
	if err := p.Validate(); err != nil {
		t.Fatalf("nil payload should validate: %v", err)
	}
}

func TestElementContentEqual(t *testing.T) {
	a := &ElementContent{ParentEID: 0, Name: "x", Payload: &Payload{Kind: KindFile}}
	b := &ElementContent{ParentEID: 0, Name: "x", Payload: &Payload{Kind: KindFile}}
	c := &ElementContent{ParentEID: 0, Name: "y", Payload: &Payload{Kind: KindFile}}
	if !a.Equal(b) {
		t.Fatal("structurally identical contents should compare equal")
	}
	if a.Equal(c) {
		t.Fatal("contents with different names should not compare equal")
	}
}

func TestPayloadCloneDoesNotAlias(t *testing.T) {
	p := &Payload{Kind: KindFile, Props: map[string]any{"size": 1}}
	clone := p.Clone()
	clone.Props["size"] = 2
	if p.Props["size"] != 1 {
		t.Fatal("cloning a payload must not alias the source's Props map")
	}
}

func TestPayloadMarshalUnmarshalPropsRoundTrip(t *testing.T) {
	p := &Payload{Kind: KindFile, Props: map[string]any{"size": float64(42), "name": "f.txt"}}
	data, err := p.MarshalProps()
	if err != nil {
		t.Fatalf("marshal_props: %v", err)
	}
	if data == nil {
		t.Fatal("expected marshaled bytes for a non-empty property bag")
	}

	out := &Payload{Kind: KindFile}
	if err := out.UnmarshalProps(data); err != nil {
		t.Fatalf("unmarshal_props: %v", err)
	}
	if len(out.Props) != len(p.Props) || out.Props["size"] != p.Props["size"] || out.Props["name"] != p.Props["name"] {
		t.Fatalf("got %+v, want %+v", out.Props, p.Props)
	}
}

func TestPayloadMarshalPropsEmptyIsNil(t *testing.T) {
	p := &Payload{Kind: KindFile}
	data, err := p.MarshalProps()
	if err != nil {
		t.Fatalf("marshal_props: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil bytes for an empty property bag, got %q", data)
	}
}

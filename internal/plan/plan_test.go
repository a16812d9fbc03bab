package plan

import (
	"strings"
	"testing"

	"structcraft.dev/internal/structure"
)

func TestParseApply_Sample(t *testing.T) {
	raw := []byte(`{
	  "name": "watchtower base",
	  "data_version": 3465,
	  "ops": [
	    {"op":"fill","min":[0,0,0],"max":[4,0,4],"block":{"name":"stone_bricks"}},
	    {"op":"fill_hollow","min":[0,1,0],"max":[4,3,4],"block":{"name":"stone_bricks"}},
	    {"op":"set","pos":[2,1,2],"block":{"name":"dropper","properties":{"facing":"up"}}},
	    {"op":"line","from":[0,0,0],"to":[4,4,4],"block":{"name":"glass"}},
	    {"op":"reflect","axes":{"x":true}}
	  ]
	}`)

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "watchtower base" || len(p.Ops) != 5 {
		t.Fatalf("parsed %q with %d ops", p.Name, len(p.Ops))
	}

	s, err := structure.New(structure.Vec3{X: 5, Y: 5, Z: 5})
	if err != nil {
		t.Fatal(err)
	}
	var seen []string
	if err := p.Apply(s, func(i int, op string) { seen = append(seen, op) }); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(seen) != 5 || seen[1] != "fill_hollow" {
		t.Fatalf("progress calls: %v", seen)
	}
	if s.DataVersion != 3465 {
		t.Fatalf("DataVersion %d", s.DataVersion)
	}
	// Reflect across x moved the dropper from x=2 to x=2 (midpoint).
	b, _, ok := s.GetBlock(structure.Vec3{X: 2, Y: 1, Z: 2})
	if !ok || b.Name != "minecraft:dropper" {
		t.Fatalf("dropper: %v %v", b, ok)
	}
	if s.BlockCount() == 0 {
		t.Fatalf("no blocks placed")
	}
}

func TestParse_SchemaRejections(t *testing.T) {
	cases := map[string]string{
		"missing block": `{"ops":[{"op":"fill","min":[0,0,0],"max":[1,1,1]}]}`,
		"unknown op":    `{"ops":[{"op":"explode","pos":[0,0,0]}]}`,
		"short vector":  `{"ops":[{"op":"set","pos":[0,0],"block":{"name":"stone"}}]}`,
		"bad rotation":  `{"ops":[{"op":"clone","min":[0,0,0],"max":[1,1,1],"dest":[2,0,0],"rotation":45}]}`,
		"no ops field":  `{"name":"empty"}`,
	}
	for label, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("%s: accepted", label)
		}
	}
}

func TestParse_NotJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatalf("accepted garbage")
	}
}

func TestApply_StopsAtFirstFailure(t *testing.T) {
	raw := []byte(`{
	  "ops": [
	    {"op":"set","pos":[0,0,0],"block":{"name":"stone"}},
	    {"op":"set","pos":[9,9,9],"block":{"name":"stone"}},
	    {"op":"set","pos":[1,0,0],"block":{"name":"stone"}}
	  ]
	}`)
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := structure.New(structure.Vec3{X: 2, Y: 2, Z: 2})
	if err != nil {
		t.Fatal(err)
	}
	err = p.Apply(s, nil)
	if err == nil {
		t.Fatalf("out-of-bounds op accepted")
	}
	if !strings.Contains(err.Error(), "op 1") {
		t.Fatalf("error does not name the failing op: %v", err)
	}
	if s.BlockCount() != 1 {
		t.Fatalf("count %d: ops before the failure must stay, ops after must not run", s.BlockCount())
	}
}

func TestParse_CloneWithTransform(t *testing.T) {
	raw := []byte(`{
	  "ops": [
	    {"op":"fill","min":[0,0,0],"max":[1,0,1],"block":{"name":"stone"}},
	    {"op":"clone","min":[0,0,0],"max":[1,0,1],"dest":[3,0,3],"rotation":90,"mirror":{"y":false}}
	  ]
	}`)
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := structure.New(structure.Vec3{X: 6, Y: 1, Z: 6})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Apply(s, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.BlockCount() != 8 {
		t.Fatalf("count %d, want 8", s.BlockCount())
	}
}

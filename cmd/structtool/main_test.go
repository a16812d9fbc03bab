package main

import (
	"testing"

	"structcraft.dev/internal/structure"
	"structcraft.dev/internal/tooling"
)

func TestParseVec(t *testing.T) {
	v, err := parseVec("3, -2,7")
	if err != nil {
		t.Fatalf("parseVec: %v", err)
	}
	if v != (structure.Vec3{X: 3, Y: -2, Z: 7}) {
		t.Fatalf("got %v", v)
	}
	for _, bad := range []string{"", "1,2", "1,2,3,4", "a,b,c"} {
		if _, err := parseVec(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestParseBlock(t *testing.T) {
	cfg = tooling.Config{Aliases: map[string]string{"cobble": "cobblestone"}}

	b, err := parseBlock("oak_stairs;facing=north,half=top")
	if err != nil {
		t.Fatalf("parseBlock: %v", err)
	}
	if b.Name != "minecraft:oak_stairs" {
		t.Fatalf("name %q", b.Name)
	}
	if v, _ := b.Prop("half"); v != "top" {
		t.Fatalf("half %q", v)
	}

	b, err = parseBlock("cobble")
	if err != nil {
		t.Fatalf("parseBlock alias: %v", err)
	}
	if b.Name != "minecraft:cobblestone" {
		t.Fatalf("alias name %q", b.Name)
	}

	for _, bad := range []string{"", ";facing=north", "stone;facing"} {
		if _, err := parseBlock(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestParseAxes(t *testing.T) {
	x, y, z, err := parseAxes("x, z")
	if err != nil || !x || y || !z {
		t.Fatalf("got %v %v %v %v", x, y, z, err)
	}
	if _, _, _, err := parseAxes("x,w"); err == nil {
		t.Fatalf("bad axis accepted")
	}
}

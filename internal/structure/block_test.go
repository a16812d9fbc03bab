package structure

import (
	"errors"
	"testing"
)

func TestNewBlock_Namespacing(t *testing.T) {
	if got := NewBlock("dirt").Name; got != "minecraft:dirt" {
		t.Fatalf("got %q", got)
	}
	if got := NewBlock("mod:thing").Name; got != "mod:thing" {
		t.Fatalf("got %q", got)
	}
}

func TestBlockData_EqualIgnoresPropertyOrder(t *testing.T) {
	a := NewBlock("dropper", Property{"facing", "down"}, Property{"triggered", "true"})
	b := NewBlock("dropper", Property{"triggered", "true"}, Property{"facing", "down"})
	if !a.Equal(b) {
		t.Fatalf("property order must not affect equality")
	}
	c := NewBlock("dropper", Property{"facing", "up"}, Property{"triggered", "true"})
	if a.Equal(c) {
		t.Fatalf("different values must not be equal")
	}
}

func TestPalette_InternIdempotent(t *testing.T) {
	p := NewPalette()
	a := NewBlock("stone")
	b := NewBlock("oak_stairs", Property{"facing", "north"}, Property{"half", "top"})

	i0 := p.Intern(a)
	i1 := p.Intern(b)
	if i0 == i1 {
		t.Fatalf("distinct blocks share index %d", i0)
	}

	// Same signature, different property order: same index, no growth.
	again := NewBlock("oak_stairs", Property{"half", "top"}, Property{"facing", "north"})
	if got := p.Intern(again); got != i1 {
		t.Fatalf("intern returned %d, want %d", got, i1)
	}
	if p.Len() != 2 {
		t.Fatalf("palette grew to %d", p.Len())
	}
}

func TestPalette_GetOutOfRange(t *testing.T) {
	p := NewPalette()
	p.Intern(NewBlock("stone"))
	if _, err := p.Get(1); !errors.Is(err, ErrPaletteIndex) {
		t.Fatalf("got %v, want ErrPaletteIndex", err)
	}
	if _, err := p.Get(-1); !errors.Is(err, ErrPaletteIndex) {
		t.Fatalf("got %v, want ErrPaletteIndex", err)
	}
}

func TestPalette_RoundTripKeepsSlots(t *testing.T) {
	p := NewPalette()
	p.Intern(NewBlock("stone"))
	p.Intern(NewBlock("dirt"))

	restored, err := paletteFromTag(p.tag())
	if err != nil {
		t.Fatalf("paletteFromTag: %v", err)
	}
	if restored.Len() != 2 {
		t.Fatalf("len %d", restored.Len())
	}
	b, err := restored.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b.Name != "minecraft:dirt" {
		t.Fatalf("slot 1 is %q", b.Name)
	}
}

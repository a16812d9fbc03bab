package structure

import (
	"errors"
	"testing"

	"structcraft.dev/internal/nbt"
)

func TestInventory_RoundTrip(t *testing.T) {
	inv := &Inventory{
		ContainerName: "minecraft:chest",
		Items: []ItemStack{
			{
				ID: "minecraft:diamond_sword", Count: 1, Slot: 0,
				Damage: 12, HasDamage: true,
				Enchantments: []Enchantment{
					{ID: "minecraft:sharpness", Level: 5},
					{ID: "minecraft:unbreaking", Level: 3},
				},
			},
			{ID: "minecraft:cobblestone", Count: 64, Slot: 13},
		},
	}

	got, err := DecodeInventory(inv.Encode())
	if err != nil {
		t.Fatalf("DecodeInventory: %v", err)
	}
	if !got.Equal(inv) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, inv)
	}
	if len(got.Items[0].Enchantments) != 2 || got.Items[0].Enchantments[1].Level != 3 {
		t.Fatalf("enchantments: %+v", got.Items[0].Enchantments)
	}
}

func TestInventory_PassThroughFieldSurvives(t *testing.T) {
	c := nbt.NewCompound()
	items := nbt.NewList(nbt.TypeCompound)
	item := nbt.NewCompound()
	item.Put("Slot", nbt.Byte(4))
	item.Put("id", nbt.String("minecraft:written_book"))
	item.Put("Count", nbt.Byte(1))
	tag := nbt.NewCompound()
	tag.Put("Damage", nbt.Int(0))
	tag.Put("CustomModelData", nbt.Int(7))
	pages := nbt.NewList(nbt.TypeString)
	pages.MustAppend(nbt.String("hello"))
	tag.Put("pages", pages)
	item.Put("tag", tag)
	item.Put("Charged", nbt.Byte(1))
	items.MustAppend(item)
	c.Put("Items", items)

	inv, err := DecodeInventory(c)
	if err != nil {
		t.Fatalf("DecodeInventory: %v", err)
	}
	it := inv.Items[0]
	if !it.HasDamage || it.Damage != 0 {
		t.Fatalf("damage not parsed: %+v", it)
	}
	if it.Extra == nil || !it.Extra.Has("Charged") {
		t.Fatalf("item-level pass-through lost: %+v", it.Extra)
	}
	et, ok := it.Extra.GetCompound("tag")
	if !ok || !et.Has("CustomModelData") || !et.Has("pages") {
		t.Fatalf("tag-level pass-through lost")
	}

	// Encode-decode-encode is a fixpoint for unrecognized fields.
	again, err := DecodeInventory(inv.Encode())
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if !again.Equal(inv) {
		t.Fatalf("pass-through changed across cycles:\n got %+v\nwant %+v", again.Items[0].Extra, inv.Items[0].Extra)
	}
}

func TestDecodeInventory_NotAContainer(t *testing.T) {
	c := nbt.NewCompound()
	c.Put("id", nbt.String("minecraft:jukebox"))
	inv, err := DecodeInventory(c)
	if err != nil || inv != nil {
		t.Fatalf("got %v, %v; want nil, nil", inv, err)
	}
}

func TestDecodeInventory_MalformedItems(t *testing.T) {
	base := func() (*nbt.Compound, *nbt.Compound) {
		c := nbt.NewCompound()
		items := nbt.NewList(nbt.TypeCompound)
		item := nbt.NewCompound()
		item.Put("Slot", nbt.Byte(0))
		item.Put("id", nbt.String("minecraft:stone"))
		item.Put("Count", nbt.Byte(1))
		items.MustAppend(item)
		c.Put("Items", items)
		return c, item
	}

	for _, drop := range []string{"id", "Count", "Slot"} {
		c, item := base()
		item.Delete(drop)
		if _, err := DecodeInventory(c); !errors.Is(err, ErrFormat) {
			t.Fatalf("without %q: got %v, want ErrFormat", drop, err)
		}
	}

	c, item := base()
	item.Put("Slot", nbt.Byte(-3))
	if _, err := DecodeInventory(c); !errors.Is(err, ErrFormat) {
		t.Fatalf("negative slot: got %v, want ErrFormat", err)
	}
}

func TestBlockInventory_Attach(t *testing.T) {
	s := mustNew(t, Vec3{2, 1, 1})
	if err := s.SetBlock(Vec3{0, 0, 0}, NewBlock("chest"), nil); err != nil {
		t.Fatal(err)
	}
	inv := &Inventory{Items: []ItemStack{{ID: "minecraft:apple", Count: 3, Slot: 2}}}
	if err := s.SetBlockInventory(Vec3{0, 0, 0}, inv); err != nil {
		t.Fatalf("SetBlockInventory: %v", err)
	}

	got, err := s.BlockInventory(Vec3{0, 0, 0})
	if err != nil {
		t.Fatalf("BlockInventory: %v", err)
	}
	if !got.Equal(inv) {
		t.Fatalf("got %+v", got)
	}

	// Void position holds nothing to attach to.
	if err := s.SetBlockInventory(Vec3{1, 0, 0}, inv); err == nil {
		t.Fatalf("attach to void accepted")
	}
	if err := s.SetBlockInventory(Vec3{9, 0, 0}, inv); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
	if inv2, err := s.BlockInventory(Vec3{1, 0, 0}); err != nil || inv2 != nil {
		t.Fatalf("void position: %v, %v", inv2, err)
	}
}

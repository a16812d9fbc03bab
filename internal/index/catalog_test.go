package index

import (
	"path/filepath"
	"testing"

	"structcraft.dev/internal/structure"
)

func TestCatalog_UpsertGetList(t *testing.T) {
	dir := t.TempDir()
	cat, err := Open(filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cat.Close()

	a := Entry{Path: "/s/tower.nbt", SizeX: 5, SizeY: 12, SizeZ: 5,
		Blocks: 300, Palette: 4, DataVersion: 3218, Digest: "aa"}
	b := Entry{Path: "/s/bridge.nbt", SizeX: 32, SizeY: 6, SizeZ: 7,
		Blocks: 900, Palette: 9, Entities: 2, DataVersion: 3465, Digest: "bb"}
	for _, e := range []Entry{a, b} {
		if err := cat.Upsert(e); err != nil {
			t.Fatalf("Upsert %s: %v", e.Path, err)
		}
	}

	got, ok, err := cat.Get("/s/tower.nbt")
	if err != nil || !ok {
		t.Fatalf("Get: %v %v", ok, err)
	}
	if got.Blocks != 300 || got.SizeY != 12 || got.IndexedAt == "" {
		t.Fatalf("row mismatch: %+v", got)
	}

	// Replacing a path keeps one row.
	a.Blocks = 301
	a.Digest = "ac"
	if err := cat.Upsert(a); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}
	all, err := cat.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("rows %d, want 2", len(all))
	}
	// Ordered by path.
	if all[0].Path != "/s/bridge.nbt" || all[1].Blocks != 301 {
		t.Fatalf("list: %+v", all)
	}

	if _, ok, err := cat.Get("/s/missing.nbt"); err != nil || ok {
		t.Fatalf("missing path: %v %v", ok, err)
	}
	if err := cat.Remove("/s/bridge.nbt"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if all, _ = cat.List(); len(all) != 1 {
		t.Fatalf("rows after remove: %d", len(all))
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	for i := 0; i < 2; i++ {
		cat, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i, err)
		}
		if err := cat.Close(); err != nil {
			t.Fatalf("Close #%d: %v", i, err)
		}
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slab.nbt")

	s, err := structure.New(structure.Vec3{X: 3, Y: 1, Z: 3})
	if err != nil {
		t.Fatal(err)
	}
	s.DataVersion = 3465
	c := structure.NewCuboid(structure.Vec3{X: 0, Y: 0, Z: 0}, structure.Vec3{X: 2, Y: 0, Z: 2})
	if err := s.FillSolid(c, structure.NewBlock("stone")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	e, err := Describe(path)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if e.SizeX != 3 || e.SizeZ != 3 || e.Blocks != 9 || e.Palette != 1 {
		t.Fatalf("entry: %+v", e)
	}
	if e.DataVersion != 3465 {
		t.Fatalf("data version %d", e.DataVersion)
	}
	if len(e.Digest) != 64 {
		t.Fatalf("digest %q", e.Digest)
	}
}

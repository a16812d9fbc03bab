package structure

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"structcraft.dev/internal/nbt"
)

// DefaultDataVersion is written into fresh documents. Loaded documents
// keep whatever version their file carried.
const DefaultDataVersion = 3218

// Air is the conventional empty-space filler.
var Air = NewBlock("air")

type blockEntry struct {
	pos      Vec3
	state    int
	attached *nbt.Compound
}

// Structure is one in-memory structure document: declared size, block
// palette, sparse position-indexed block store, and an opaque entity
// list. A Structure is owned by a single caller; nothing here locks.
type Structure struct {
	Size        Vec3
	Palette     *Palette
	DataVersion int32

	blocks   map[Vec3]*blockEntry
	entities []*nbt.Compound
}

// New creates an empty document of the given size. Sizes must be
// non-negative; a zero axis admits no positions at all.
func New(size Vec3) (*Structure, error) {
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		return nil, fmt.Errorf("structure: negative size %v", size)
	}
	return &Structure{
		Size:        size,
		Palette:     NewPalette(),
		DataVersion: DefaultDataVersion,
		blocks:      map[Vec3]*blockEntry{},
	}, nil
}

func (s *Structure) inBounds(p Vec3) bool {
	return p.X >= 0 && p.X < s.Size.X &&
		p.Y >= 0 && p.Y < s.Size.Y &&
		p.Z >= 0 && p.Z < s.Size.Z
}

// checkCuboid bounds-checks a normalized cuboid against the document.
func (s *Structure) checkCuboid(c Cuboid) error {
	if !s.inBounds(c.Min) {
		return oobErr(c.Min, s.Size)
	}
	if !s.inBounds(c.Max) {
		return oobErr(c.Max, s.Size)
	}
	return nil
}

// BlockCount returns the number of stored block entries.
func (s *Structure) BlockCount() int { return len(s.blocks) }

// SetBlock interns the descriptor and stores it at pos, replacing any
// prior entry and its attached data wholesale.
func (s *Structure) SetBlock(pos Vec3, b BlockData, attached *nbt.Compound) error {
	if !s.inBounds(pos) {
		return oobErr(pos, s.Size)
	}
	state := s.Palette.Intern(b)
	if attached != nil {
		attached = attached.Copy()
	}
	s.blocks[pos] = &blockEntry{pos: pos, state: state, attached: attached}
	return nil
}

// ClearBlock removes the entry at pos, leaving a void.
func (s *Structure) ClearBlock(pos Vec3) error {
	if !s.inBounds(pos) {
		return oobErr(pos, s.Size)
	}
	delete(s.blocks, pos)
	return nil
}

// GetBlock returns the descriptor and attached data at pos, or ok=false
// for a void position.
func (s *Structure) GetBlock(pos Vec3) (BlockData, *nbt.Compound, bool) {
	e, ok := s.blocks[pos]
	if !ok {
		return BlockData{}, nil, false
	}
	b, err := s.Palette.Get(e.state)
	if err != nil {
		// Entries are only created through Intern; a dangling state is
		// impossible without memory corruption.
		panic(err)
	}
	return b, e.attached, true
}

// Attached returns the attached compound at pos without copying.
func (s *Structure) Attached(pos Vec3) (*nbt.Compound, bool) {
	e, ok := s.blocks[pos]
	if !ok || e.attached == nil {
		return nil, false
	}
	return e.attached, true
}

// Positions returns all stored positions, ordered x fastest then y
// then z, for deterministic iteration.
func (s *Structure) Positions() []Vec3 {
	out := make([]Vec3, 0, len(s.blocks))
	for p := range s.blocks {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Entities returns the entity list. Entries are opaque compounds the
// engine carries through unmodified.
func (s *Structure) Entities() []*nbt.Compound { return s.entities }

// AddEntity appends an opaque entity compound.
func (s *Structure) AddEntity(e *nbt.Compound) {
	s.entities = append(s.entities, e)
}

// Copy returns an independent deep copy.
func (s *Structure) Copy() *Structure {
	out, _ := New(s.Size)
	out.DataVersion = s.DataVersion
	for p, e := range s.blocks {
		b, _ := s.Palette.Get(e.state)
		state := out.Palette.Intern(b)
		var attached *nbt.Compound
		if e.attached != nil {
			attached = e.attached.Copy()
		}
		out.blocks[p] = &blockEntry{pos: p, state: state, attached: attached}
	}
	for _, e := range s.entities {
		out.entities = append(out.entities, e.Copy())
	}
	return out
}

// ToCompound maps the document onto the structure-block file schema.
func (s *Structure) ToCompound() *nbt.Compound {
	root := nbt.NewCompound()
	root.Put("size", s.Size.tag())

	entities := nbt.NewList(nbt.TypeCompound)
	for _, e := range s.entities {
		entities.MustAppend(e.Copy())
	}
	root.Put("entities", entities)

	blocks := nbt.NewList(nbt.TypeCompound)
	for _, p := range s.Positions() {
		e := s.blocks[p]
		bc := nbt.NewCompound()
		if e.attached != nil {
			bc.Put("nbt", e.attached.Copy())
		}
		bc.Put("pos", e.pos.tag())
		bc.Put("state", nbt.Int(e.state))
		blocks.MustAppend(bc)
	}
	root.Put("blocks", blocks)

	root.Put("palette", s.Palette.tag())
	root.Put("DataVersion", nbt.Int(s.DataVersion))
	return root
}

// FromCompound rebuilds a document from the structure-block file schema.
func FromCompound(root *nbt.Compound) (*Structure, error) {
	sizeList, ok := root.GetList("size")
	if !ok {
		return nil, formatErr("missing size")
	}
	size, err := vecFromTag(sizeList)
	if err != nil {
		return nil, err
	}
	s, err := New(size)
	if err != nil {
		return nil, formatErr("bad size %v", size)
	}

	palList, ok := root.GetList("palette")
	if !ok {
		return nil, formatErr("missing palette")
	}
	s.Palette, err = paletteFromTag(palList)
	if err != nil {
		return nil, err
	}

	blocksList, ok := root.GetList("blocks")
	if !ok {
		return nil, formatErr("missing blocks")
	}
	if blocksList.Len() > 0 && blocksList.ElementType() != nbt.TypeCompound {
		return nil, formatErr("blocks must be a list of compounds")
	}
	for i := 0; i < blocksList.Len(); i++ {
		bc := blocksList.At(i).(*nbt.Compound)
		posList, ok := bc.GetList("pos")
		if !ok {
			return nil, formatErr("block %d missing pos", i)
		}
		pos, err := vecFromTag(posList)
		if err != nil {
			return nil, err
		}
		state, ok := bc.GetInt("state")
		if !ok {
			return nil, formatErr("block %d missing state", i)
		}
		if int(state) < 0 || int(state) >= s.Palette.Len() {
			return nil, fmt.Errorf("%w: block %d state %d of %d", ErrPaletteIndex, i, state, s.Palette.Len())
		}
		var attached *nbt.Compound
		if a, ok := bc.GetCompound("nbt"); ok {
			attached = a.Copy()
		}
		// Later entries for the same position win, matching the game's
		// last-write behavior.
		s.blocks[pos] = &blockEntry{pos: pos, state: int(state), attached: attached}
	}

	if entList, ok := root.GetList("entities"); ok {
		for i := 0; i < entList.Len(); i++ {
			ec, ok := entList.At(i).(*nbt.Compound)
			if !ok {
				return nil, formatErr("entity %d is not a compound", i)
			}
			s.entities = append(s.entities, ec.Copy())
		}
	}

	if dv, ok := root.GetInt("DataVersion"); ok {
		s.DataVersion = dv
	}
	return s, nil
}

// Load reads and decodes one structure file.
func Load(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := nbt.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s, err := FromCompound(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save encodes the document and commits it with a write-temp-then-rename
// so a failed encode never leaves a partial file under the final name.
func (s *Structure) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := nbt.Encode(tmp, s.ToCompound()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

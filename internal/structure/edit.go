package structure

import "structcraft.dev/internal/nbt"

// Region-level edits: clone, reflect, shift, crop, palette hygiene.

type stagedBlock struct {
	block    BlockData
	attached *nbt.Compound
}

// Clone copies every block entry in src into a congruent region anchored
// at dest, applying tr to relative offsets and orientation state. The
// copy is additive: void source positions leave the destination alone.
// The whole source is read before the first write, so overlapping
// source and destination regions are safe.
func (s *Structure) Clone(src Cuboid, dest Vec3, tr Transform) error {
	if err := tr.Validate(); err != nil {
		return err
	}
	if err := s.checkCuboid(src); err != nil {
		return err
	}
	ext := src.Extents()
	outExt := tr.Extents(ext)
	destRegion := Cuboid{Min: dest, Max: dest.Add(outExt).Sub(Vec3{1, 1, 1})}
	if err := s.checkCuboid(destRegion); err != nil {
		return err
	}

	// Read phase.
	staged := make(map[Vec3]stagedBlock)
	src.ForEach(func(p Vec3) {
		e, ok := s.blocks[p]
		if !ok {
			return
		}
		b, _ := s.Palette.Get(e.state)
		off := tr.ApplyOffset(p.Sub(src.Min), ext)
		var attached *nbt.Compound
		if e.attached != nil {
			attached = e.attached.Copy()
		}
		staged[dest.Add(off)] = stagedBlock{block: tr.ApplyBlock(b), attached: attached}
	})

	// Write phase.
	for p, sb := range staged {
		state := s.Palette.Intern(sb.block)
		s.blocks[p] = &blockEntry{pos: p, state: state, attached: sb.attached}
	}
	return nil
}

// CloneStructure additively merges every block entry of other into s,
// anchored at dest. Entities of other are not carried over.
func (s *Structure) CloneStructure(other *Structure, dest Vec3) error {
	positions := other.Positions()
	for _, p := range positions {
		if !s.inBounds(p.Add(dest)) {
			return oobErr(p.Add(dest), s.Size)
		}
	}
	for _, p := range positions {
		b, attached, _ := other.GetBlock(p)
		if err := s.SetBlock(p.Add(dest), b, attached); err != nil {
			return err
		}
	}
	return nil
}

// Reflect mirrors the document across the midpoint of every axis whose
// mask component is Wildcard. Mirrored coordinates become
// (size-1)-coord; orientation-dependent state values are remapped via
// the direction-flip tables. Size is unchanged.
func (s *Structure) Reflect(mask Vec3) error {
	mx := mask.X == Wildcard
	my := mask.Y == Wildcard
	mz := mask.Z == Wildcard
	if !mx && !my && !mz {
		return nil
	}

	mirrored := make(map[Vec3]*blockEntry, len(s.blocks))
	for p, e := range s.blocks {
		np := p
		if mx {
			np.X = s.Size.X - 1 - p.X
		}
		if my {
			np.Y = s.Size.Y - 1 - p.Y
		}
		if mz {
			np.Z = s.Size.Z - 1 - p.Z
		}
		b, _ := s.Palette.Get(e.state)
		state := s.Palette.Intern(mirrorBlock(b, mx, my, mz))
		mirrored[np] = &blockEntry{pos: np, state: state, attached: e.attached}
	}
	s.blocks = mirrored
	return nil
}

// Shift translates every block entry by delta. Fails without mutating
// if any entry would leave the document bounds.
func (s *Structure) Shift(delta Vec3) error {
	if delta == (Vec3{}) {
		return nil
	}
	for p := range s.blocks {
		if !s.inBounds(p.Add(delta)) {
			return oobErr(p.Add(delta), s.Size)
		}
	}
	shifted := make(map[Vec3]*blockEntry, len(s.blocks))
	for p, e := range s.blocks {
		np := p.Add(delta)
		e.pos = np
		shifted[np] = e
	}
	s.blocks = shifted
	return nil
}

// Crop drops every block entry outside c.
func (s *Structure) Crop(c Cuboid) {
	for p := range s.blocks {
		if !c.Contains(p) {
			delete(s.blocks, p)
		}
	}
}

// Pressurize fills every void position of the full document with air,
// the way the game itself saves a structure as a solid cuboid.
func (s *Structure) Pressurize() error {
	if s.Size.X < 1 || s.Size.Y < 1 || s.Size.Z < 1 {
		return nil
	}
	full := Cuboid{Min: Vec3{}, Max: s.Size.Sub(Vec3{1, 1, 1})}
	return s.FillKeep(full, Air)
}

// Depressurize removes every air entry, so loading the document leaves
// existing blocks in the target volume alone.
func (s *Structure) Depressurize() {
	airState, ok := s.Palette.Lookup(Air)
	if !ok {
		return
	}
	for p, e := range s.blocks {
		if e.state == airState {
			delete(s.blocks, p)
		}
	}
}

// CleansePalette rebuilds the palette keeping only referenced entries.
// Dangling entries are legal; this just trims the file.
func (s *Structure) CleansePalette() {
	fresh := NewPalette()
	for _, e := range s.blocks {
		b, _ := s.Palette.Get(e.state)
		e.state = fresh.Intern(b)
	}
	s.Palette = fresh
}

// MinCoords returns the smallest coordinates over all entries, skipping
// air when includeAir is false. ok is false for an entry-less document.
func (s *Structure) MinCoords(includeAir bool) (Vec3, bool) {
	return s.boundCoords(includeAir, func(a, b int) bool { return a < b })
}

// MaxCoords is MinCoords' counterpart for the largest coordinates.
func (s *Structure) MaxCoords(includeAir bool) (Vec3, bool) {
	return s.boundCoords(includeAir, func(a, b int) bool { return a > b })
}

func (s *Structure) boundCoords(includeAir bool, better func(a, b int) bool) (Vec3, bool) {
	airState := -1
	if !includeAir {
		if i, ok := s.Palette.Lookup(Air); ok {
			airState = i
		}
	}
	var best Vec3
	found := false
	for p, e := range s.blocks {
		if e.state == airState {
			continue
		}
		if !found {
			best = p
			found = true
			continue
		}
		if better(p.X, best.X) {
			best.X = p.X
		}
		if better(p.Y, best.Y) {
			best.Y = p.Y
		}
		if better(p.Z, best.Z) {
			best.Z = p.Z
		}
	}
	return best, found
}

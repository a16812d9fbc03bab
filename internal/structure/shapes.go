package structure

// Fill and line operations. All of them bounds-check the whole region
// before the first write, so a failed call leaves the document as it was.

// FillSolid sets every position in c to b, clearing attached data on
// every touched position.
func (s *Structure) FillSolid(c Cuboid, b BlockData) error {
	if err := s.checkCuboid(c); err != nil {
		return err
	}
	state := s.Palette.Intern(b)
	c.ForEach(func(p Vec3) {
		s.blocks[p] = &blockEntry{pos: p, state: state}
	})
	return nil
}

// FillHollow sets only the positions on the six bounding faces of c;
// interior positions are untouched. A cuboid with extent 1 on any axis
// is all faces and fills like FillSolid over that slab.
func (s *Structure) FillHollow(c Cuboid, b BlockData) error {
	if err := s.checkCuboid(c); err != nil {
		return err
	}
	state := s.Palette.Intern(b)
	c.ForEach(func(p Vec3) {
		if c.OnFace(p) {
			s.blocks[p] = &blockEntry{pos: p, state: state}
		}
	})
	return nil
}

// FillHollowAir is FillHollow plus an air-filled interior, the way the
// game's own hollow fill leaves a shell with breathable inside.
func (s *Structure) FillHollowAir(c Cuboid, b BlockData) error {
	if err := s.checkCuboid(c); err != nil {
		return err
	}
	e := c.Extents()
	if e.X > 2 && e.Y > 2 && e.Z > 2 {
		one := Vec3{1, 1, 1}
		interior := Cuboid{Min: c.Min.Add(one), Max: c.Max.Sub(one)}
		if err := s.FillSolid(interior, Air); err != nil {
			return err
		}
	}
	return s.FillHollow(c, b)
}

// FillFrame sets only the positions on the twelve edges of c.
func (s *Structure) FillFrame(c Cuboid, b BlockData) error {
	if err := s.checkCuboid(c); err != nil {
		return err
	}
	state := s.Palette.Intern(b)
	c.ForEach(func(p Vec3) {
		if c.OnEdge(p) {
			s.blocks[p] = &blockEntry{pos: p, state: state}
		}
	})
	return nil
}

// FillKeep sets only void and air positions in c, leaving any other
// block untouched.
func (s *Structure) FillKeep(c Cuboid, b BlockData) error {
	if err := s.checkCuboid(c); err != nil {
		return err
	}
	airState, hasAir := s.Palette.Lookup(Air)
	state := s.Palette.Intern(b)
	c.ForEach(func(p Vec3) {
		e, ok := s.blocks[p]
		if !ok || (hasAir && e.state == airState) {
			s.blocks[p] = &blockEntry{pos: p, state: state}
		}
	})
	return nil
}

// FillReplace replaces every block in c matching filter with b. Void
// positions and other blocks are untouched.
func (s *Structure) FillReplace(c Cuboid, b, filter BlockData) error {
	if err := s.checkCuboid(c); err != nil {
		return err
	}
	filterState, ok := s.Palette.Lookup(filter)
	if !ok {
		return nil
	}
	if b.Equal(filter) {
		return nil
	}
	state := s.Palette.Intern(b)
	c.ForEach(func(p Vec3) {
		if e, ok := s.blocks[p]; ok && e.state == filterState {
			s.blocks[p] = &blockEntry{pos: p, state: state}
		}
	})
	return nil
}

// Clear removes every block entry in c, leaving voids.
func (s *Structure) Clear(c Cuboid) error {
	if err := s.checkCuboid(c); err != nil {
		return err
	}
	c.ForEach(func(p Vec3) {
		delete(s.blocks, p)
	})
	return nil
}

// DrawLine rasterizes a discrete line from a to b inclusive and sets
// every visited position to blk. a == b sets exactly one position.
func (s *Structure) DrawLine(a, b Vec3, blk BlockData) error {
	if !s.inBounds(a) {
		return oobErr(a, s.Size)
	}
	if !s.inBounds(b) {
		return oobErr(b, s.Size)
	}
	state := s.Palette.Intern(blk)
	for _, p := range linePoints(a, b) {
		s.blocks[p] = &blockEntry{pos: p, state: state}
	}
	return nil
}

// Polyline draws straight segments connecting each point to the next.
func (s *Structure) Polyline(points []Vec3, blk BlockData) error {
	if len(points) < 2 {
		return formatErr("polyline needs at least two points")
	}
	for _, p := range points {
		if !s.inBounds(p) {
			return oobErr(p, s.Size)
		}
	}
	state := s.Palette.Intern(blk)
	for i := 0; i+1 < len(points); i++ {
		for _, p := range linePoints(points[i], points[i+1]) {
			s.blocks[p] = &blockEntry{pos: p, state: state}
		}
	}
	return nil
}

// linePoints is 3D Bresenham stepping: one step per unit along the
// dominant axis, secondary axes advance when their accumulated error
// crosses half the dominant span. Both endpoints are included and each
// lattice point appears exactly once.
func linePoints(a, b Vec3) []Vec3 {
	dx, dy, dz := abs(b.X-a.X), abs(b.Y-a.Y), abs(b.Z-a.Z)
	sx, sy, sz := sign(b.X-a.X), sign(b.Y-a.Y), sign(b.Z-a.Z)

	pts := make([]Vec3, 0, max(dx, max(dy, dz))+1)
	p := a
	pts = append(pts, p)

	switch {
	case dx >= dy && dx >= dz:
		e1, e2 := 2*dy-dx, 2*dz-dx
		for p.X != b.X {
			p.X += sx
			if e1 >= 0 {
				p.Y += sy
				e1 -= 2 * dx
			}
			if e2 >= 0 {
				p.Z += sz
				e2 -= 2 * dx
			}
			e1 += 2 * dy
			e2 += 2 * dz
			pts = append(pts, p)
		}
	case dy >= dx && dy >= dz:
		e1, e2 := 2*dx-dy, 2*dz-dy
		for p.Y != b.Y {
			p.Y += sy
			if e1 >= 0 {
				p.X += sx
				e1 -= 2 * dy
			}
			if e2 >= 0 {
				p.Z += sz
				e2 -= 2 * dy
			}
			e1 += 2 * dx
			e2 += 2 * dz
			pts = append(pts, p)
		}
	default:
		e1, e2 := 2*dy-dz, 2*dx-dz
		for p.Z != b.Z {
			p.Z += sz
			if e1 >= 0 {
				p.Y += sy
				e1 -= 2 * dz
			}
			if e2 >= 0 {
				p.X += sx
				e2 -= 2 * dz
			}
			e1 += 2 * dy
			e2 += 2 * dx
			pts = append(pts, p)
		}
	}
	return pts
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

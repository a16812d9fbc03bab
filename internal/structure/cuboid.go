package structure

// Cuboid is an axis-aligned inclusive region given by two corners.
// Corners are normalized on construction so Min <= Max per axis.
type Cuboid struct {
	Min, Max Vec3
}

func NewCuboid(a, b Vec3) Cuboid {
	return Cuboid{
		Min: Vec3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)},
		Max: Vec3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)},
	}
}

// Extents returns the side lengths (always >= 1).
func (c Cuboid) Extents() Vec3 {
	return c.Max.Sub(c.Min).Add(Vec3{1, 1, 1})
}

func (c Cuboid) Volume() int {
	e := c.Extents()
	return e.X * e.Y * e.Z
}

func (c Cuboid) Contains(p Vec3) bool {
	return c.Min.X <= p.X && p.X <= c.Max.X &&
		c.Min.Y <= p.Y && p.Y <= c.Max.Y &&
		c.Min.Z <= p.Z && p.Z <= c.Max.Z
}

// OnFace reports whether p lies on one of the six bounding faces. For a
// cuboid with extent 1 on any axis every contained position is a face.
func (c Cuboid) OnFace(p Vec3) bool {
	return c.Contains(p) &&
		(p.X == c.Min.X || p.X == c.Max.X ||
			p.Y == c.Min.Y || p.Y == c.Max.Y ||
			p.Z == c.Min.Z || p.Z == c.Max.Z)
}

// OnEdge reports whether p lies on one of the twelve edges, i.e. on the
// boundary of at least two axes.
func (c Cuboid) OnEdge(p Vec3) bool {
	if !c.Contains(p) {
		return false
	}
	xb := p.X == c.Min.X || p.X == c.Max.X
	yb := p.Y == c.Min.Y || p.Y == c.Max.Y
	if xb && yb {
		return true
	}
	zb := p.Z == c.Min.Z || p.Z == c.Max.Z
	return (xb && zb) || (yb && zb)
}

// Interior reports whether p is contained and strictly inside every axis.
func (c Cuboid) Interior(p Vec3) bool {
	return c.Min.X < p.X && p.X < c.Max.X &&
		c.Min.Y < p.Y && p.Y < c.Max.Y &&
		c.Min.Z < p.Z && p.Z < c.Max.Z
}

// ForEach visits every position exactly once, x fastest, then y, then z.
func (c Cuboid) ForEach(fn func(Vec3)) {
	for z := c.Min.Z; z <= c.Max.Z; z++ {
		for y := c.Min.Y; y <= c.Max.Y; y++ {
			for x := c.Min.X; x <= c.Max.X; x++ {
				fn(Vec3{x, y, z})
			}
		}
	}
}

func (c Cuboid) Translate(delta Vec3) Cuboid {
	return Cuboid{Min: c.Min.Add(delta), Max: c.Max.Add(delta)}
}

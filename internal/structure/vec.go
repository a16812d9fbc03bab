package structure

import (
	"fmt"
	"math"

	"structcraft.dev/internal/nbt"
)

// Wildcard marks an axis in a reflect mask. It is never a valid block
// coordinate.
const Wildcard = math.MinInt32

// Vec3 is an integer block position or offset.
type Vec3 struct {
	X, Y, Z int
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// MirrorMask builds a reflect mask with the given axes flagged.
func MirrorMask(x, y, z bool) Vec3 {
	m := Vec3{}
	if x {
		m.X = Wildcard
	}
	if y {
		m.Y = Wildcard
	}
	if z {
		m.Z = Wildcard
	}
	return m
}

func (v Vec3) tag() *nbt.List {
	l := nbt.NewList(nbt.TypeInt)
	l.MustAppend(nbt.Int(v.X), nbt.Int(v.Y), nbt.Int(v.Z))
	return l
}

func vecFromTag(l *nbt.List) (Vec3, error) {
	if l.ElementType() != nbt.TypeInt || l.Len() != 3 {
		return Vec3{}, formatErr("position must be a list of 3 ints")
	}
	return Vec3{
		X: int(l.At(0).(nbt.Int)),
		Y: int(l.At(1).(nbt.Int)),
		Z: int(l.At(2).(nbt.Int)),
	}, nil
}

package structure

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction-flip tables. Orientation-dependent state names and values
// (facing, axis, rail shapes, hinge sides, wall connections) map through
// these; anything unlisted passes through unchanged.
var reflectXValues = map[string]string{
	"east":           "west",
	"west":           "east",
	"ascending_east": "ascending_west",
	"ascending_west": "ascending_east",
	"north_east":     "north_west",
	"south_east":     "south_west",
	"north_west":     "north_east",
	"south_west":     "south_east",
	"left":           "right",
	"right":          "left",
	"outer_left":     "outer_right",
	"outer_right":    "outer_left",
}

var reflectYValues = map[string]string{
	"up":              "down",
	"down":            "up",
	"top":             "bottom",
	"bottom":          "top",
	"ceiling":         "floor",
	"floor":           "ceiling",
	"ascending_north": "ascending_south",
	"ascending_south": "ascending_north",
	"ascending_east":  "ascending_west",
	"ascending_west":  "ascending_east",
}

var reflectZValues = map[string]string{
	"north":           "south",
	"south":           "north",
	"ascending_north": "ascending_south",
	"ascending_south": "ascending_north",
	"north_east":      "south_east",
	"south_east":      "north_east",
	"north_west":      "south_west",
	"south_west":      "north_west",
	"left":            "right",
	"right":           "left",
}

// One quarter turn counterclockwise about the vertical axis.
var rotateY90Values = map[string]string{
	"north":           "west",
	"west":            "south",
	"south":           "east",
	"east":            "north",
	"north_east":      "north_west",
	"north_west":      "south_west",
	"south_west":      "south_east",
	"south_east":      "north_east",
	"ascending_north": "ascending_west",
	"ascending_west":  "ascending_south",
	"ascending_south": "ascending_east",
	"ascending_east":  "ascending_north",
	"x":               "z",
	"z":               "x",
}

// Blocks carrying the 0..15 "rotation" property instead of a facing.
var rotationPropSuffixes = []string{"_head", "_skull", "_sign", "_banner"}

func usesRotationProp(name string) bool {
	for _, suffix := range rotationPropSuffixes {
		if strings.HasSuffix(name, suffix) && !strings.HasSuffix(name, "_wall"+suffix) {
			return true
		}
	}
	return false
}

// Transform composes per-axis mirror flags with a rotation about the
// vertical axis. The zero value is the identity.
type Transform struct {
	Rotation                  int // degrees, one of 0, 90, 180, 270
	MirrorX, MirrorY, MirrorZ bool
}

var Identity = Transform{}

func (t Transform) Validate() error {
	switch t.Rotation {
	case 0, 90, 180, 270:
		return nil
	}
	return fmt.Errorf("structure: rotation %d not a multiple of 90 in [0,270]", t.Rotation)
}

func (t Transform) quarters() int { return (t.Rotation / 90) % 4 }

func (t Transform) isIdentity() bool {
	return t.Rotation == 0 && !t.MirrorX && !t.MirrorY && !t.MirrorZ
}

// Extents returns the side lengths of a region of extents ext after the
// transform: a quarter turn swaps x and z, mirroring changes nothing.
func (t Transform) Extents(ext Vec3) Vec3 {
	if t.quarters()%2 == 1 {
		return Vec3{ext.Z, ext.Y, ext.X}
	}
	return ext
}

// ApplyOffset maps a relative offset within [0,ext) to its transformed
// offset, rotation first, then mirror against the rotated extents.
func (t Transform) ApplyOffset(off, ext Vec3) Vec3 {
	// One quarter turn maps the -z (north) direction onto -x (west),
	// matching rotateY90Values.
	for q := 0; q < t.quarters(); q++ {
		off, ext = Vec3{off.Z, off.Y, ext.X - 1 - off.X}, Vec3{ext.Z, ext.Y, ext.X}
	}
	if t.MirrorX {
		off.X = ext.X - 1 - off.X
	}
	if t.MirrorY {
		off.Y = ext.Y - 1 - off.Y
	}
	if t.MirrorZ {
		off.Z = ext.Z - 1 - off.Z
	}
	return off
}

// ApplyBlock remaps orientation-dependent state, rotation first, then
// mirror. Unrecognized names and values pass through untouched.
func (t Transform) ApplyBlock(b BlockData) BlockData {
	if t.isIdentity() {
		return b
	}
	out := b.copy()
	for q := 0; q < t.quarters(); q++ {
		out = remapBlock(out, rotateY90Values)
	}
	if n := t.quarters(); n > 0 && usesRotationProp(out.Name) {
		out = remapRotationProp(out, func(r int) int { return (r + 4*n) % 16 })
	}
	out = mirrorBlock(out, t.MirrorX, t.MirrorY, t.MirrorZ)
	return out
}

// mirrorBlock flips state for the flagged axes via the reflect tables.
func mirrorBlock(b BlockData, x, y, z bool) BlockData {
	out := b
	if usesRotationProp(out.Name) {
		if x {
			out = remapRotationProp(out, func(r int) int { return (16 - r) % 16 })
		}
		if z {
			out = remapRotationProp(out, func(r int) int { return (24 - r) % 16 })
		}
	}
	if len(out.Properties) == 0 {
		return out
	}
	if x {
		out = remapBlock(out, reflectXValues)
	}
	if y {
		table := reflectYValues
		if strings.HasSuffix(out.Name, "_wall") {
			// Walls carry an "up" post property that is not a direction.
			table = tableWithout(table, "up")
		}
		out = remapBlock(out, table)
	}
	if z {
		out = remapBlock(out, reflectZValues)
	}
	return out
}

// remapBlock passes both property names and values through the table:
// names cover connection-style states (east=true), values cover
// facing-style states (facing=east).
func remapBlock(b BlockData, table map[string]string) BlockData {
	out := b.copy()
	for i, p := range out.Properties {
		if repl, ok := table[p.Name]; ok {
			out.Properties[i].Name = repl
		}
		if repl, ok := table[p.Value]; ok {
			out.Properties[i].Value = repl
		}
	}
	return out
}

func remapRotationProp(b BlockData, fn func(int) int) BlockData {
	val, ok := b.Prop("rotation")
	if !ok {
		return b
	}
	r, err := strconv.Atoi(val)
	if err != nil {
		return b
	}
	return b.WithProp("rotation", strconv.Itoa(fn(r)))
}

func tableWithout(table map[string]string, keys ...string) map[string]string {
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Package plan parses and applies JSON edit plans: ordered lists of
// geometry operations run against one structure document. Plans are
// validated against the shipped JSON schema before any edit runs, so a
// malformed plan never half-applies.
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"structcraft.dev/internal/structure"
	"structcraft.dev/schemas"
)

var schema = jsonschema.MustCompileString("schemas/plan.schema.json", schemas.Plan)

// Plan is one validated edit plan.
type Plan struct {
	Name        string `json:"name,omitempty"`
	DataVersion int    `json:"data_version,omitempty"`
	Ops         []Op   `json:"ops"`
}

// Op is a single operation. Which fields are meaningful depends on Op;
// the schema enforces the per-operation requirements.
type Op struct {
	Op string `json:"op"`

	Pos    *[3]int  `json:"pos,omitempty"`
	Min    *[3]int  `json:"min,omitempty"`
	Max    *[3]int  `json:"max,omitempty"`
	From   *[3]int  `json:"from,omitempty"`
	To     *[3]int  `json:"to,omitempty"`
	Dest   *[3]int  `json:"dest,omitempty"`
	Delta  *[3]int  `json:"delta,omitempty"`
	Points [][3]int `json:"points,omitempty"`

	Block  *BlockRef `json:"block,omitempty"`
	Filter *BlockRef `json:"filter,omitempty"`

	Rotation int   `json:"rotation,omitempty"`
	Mirror   *Axes `json:"mirror,omitempty"`
	Axes     *Axes `json:"axes,omitempty"`
}

// BlockRef names a block state in plan JSON.
type BlockRef struct {
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Axes is a per-axis flag set, used by reflect masks and clone mirrors.
type Axes struct {
	X bool `json:"x,omitempty"`
	Y bool `json:"y,omitempty"`
	Z bool `json:"z,omitempty"`
}

// Parse validates raw against the plan schema and decodes it.
func Parse(raw []byte) (*Plan, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	return &p, nil
}

// Load reads and parses a plan file.
func Load(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func (b *BlockRef) block() structure.BlockData {
	names := make([]string, 0, len(b.Properties))
	for name := range b.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	props := make([]structure.Property, 0, len(names))
	for _, name := range names {
		props = append(props, structure.Property{Name: name, Value: b.Properties[name]})
	}
	return structure.NewBlock(b.Name, props...)
}

func vec(v *[3]int) structure.Vec3 {
	return structure.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func (o *Op) cuboid() structure.Cuboid {
	return structure.NewCuboid(vec(o.Min), vec(o.Max))
}

func (a *Axes) mask() structure.Vec3 {
	return structure.MirrorMask(a.X, a.Y, a.Z)
}

// Apply runs every operation of p against s in order. progress, when
// non-nil, is called before each operation with its index and name.
// Application stops at the first failing operation; edits already made
// stay in place, the way a command block chain would leave them.
func (p *Plan) Apply(s *structure.Structure, progress func(i int, op string)) error {
	if p.DataVersion > 0 {
		s.DataVersion = int32(p.DataVersion)
	}
	for i := range p.Ops {
		o := &p.Ops[i]
		if progress != nil {
			progress(i, o.Op)
		}
		if err := o.apply(s); err != nil {
			return fmt.Errorf("plan: op %d (%s): %w", i, o.Op, err)
		}
	}
	return nil
}

func (o *Op) apply(s *structure.Structure) error {
	switch o.Op {
	case "set":
		return s.SetBlock(vec(o.Pos), o.Block.block(), nil)
	case "clear":
		return s.ClearBlock(vec(o.Pos))
	case "fill":
		return s.FillSolid(o.cuboid(), o.Block.block())
	case "fill_hollow":
		return s.FillHollow(o.cuboid(), o.Block.block())
	case "fill_hollow_air":
		return s.FillHollowAir(o.cuboid(), o.Block.block())
	case "frame":
		return s.FillFrame(o.cuboid(), o.Block.block())
	case "keep":
		return s.FillKeep(o.cuboid(), o.Block.block())
	case "replace":
		return s.FillReplace(o.cuboid(), o.Block.block(), o.Filter.block())
	case "line":
		return s.DrawLine(vec(o.From), vec(o.To), o.Block.block())
	case "polyline":
		pts := make([]structure.Vec3, len(o.Points))
		for i := range o.Points {
			pts[i] = vec(&o.Points[i])
		}
		return s.Polyline(pts, o.Block.block())
	case "clone":
		tr := structure.Transform{Rotation: o.Rotation}
		if o.Mirror != nil {
			tr.MirrorX, tr.MirrorY, tr.MirrorZ = o.Mirror.X, o.Mirror.Y, o.Mirror.Z
		}
		return s.Clone(o.cuboid(), vec(o.Dest), tr)
	case "reflect":
		return s.Reflect(o.Axes.mask())
	case "shift":
		return s.Shift(vec(o.Delta))
	case "crop":
		s.Crop(o.cuboid())
		return nil
	case "pressurize":
		return s.Pressurize()
	case "depressurize":
		s.Depressurize()
		return nil
	}
	return fmt.Errorf("unknown operation %q", o.Op)
}

package structure

import (
	"fmt"
	"sort"
	"strings"

	"structcraft.dev/internal/nbt"
)

// Property is one block-state key/value pair, e.g. facing=north.
type Property struct {
	Name  string
	Value string
}

// BlockData is a block-type descriptor: a namespaced id plus its state
// properties. The engine treats both as opaque strings. Attached
// block-entity data is stored per position, not here, so it never
// affects palette identity.
type BlockData struct {
	Name       string
	Properties []Property
}

// NewBlock builds a descriptor. Ids without a namespace get the
// "minecraft:" prefix.
func NewBlock(name string, props ...Property) BlockData {
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	return BlockData{Name: name, Properties: props}
}

// Prop returns the value of the named property.
func (b BlockData) Prop(name string) (string, bool) {
	for _, p := range b.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// WithProp returns a copy with the property set, replacing any existing
// value under the same name.
func (b BlockData) WithProp(name, value string) BlockData {
	out := b.copy()
	for i, p := range out.Properties {
		if p.Name == name {
			out.Properties[i].Value = value
			return out
		}
	}
	out.Properties = append(out.Properties, Property{Name: name, Value: value})
	return out
}

func (b BlockData) copy() BlockData {
	props := make([]Property, len(b.Properties))
	copy(props, b.Properties)
	return BlockData{Name: b.Name, Properties: props}
}

// signature is the canonical dedup key: id plus sorted state pairs.
// Property order never affects identity.
func (b BlockData) signature() string {
	if len(b.Properties) == 0 {
		return b.Name
	}
	pairs := make([]string, len(b.Properties))
	for i, p := range b.Properties {
		pairs[i] = p.Name + "=" + p.Value
	}
	sort.Strings(pairs)
	return b.Name + "|" + strings.Join(pairs, ",")
}

// Equal compares id and properties, properties as an unordered set.
func (b BlockData) Equal(o BlockData) bool {
	return b.signature() == o.signature()
}

func (b BlockData) tag() *nbt.Compound {
	c := nbt.NewCompound()
	if len(b.Properties) > 0 {
		props := nbt.NewCompound()
		for _, p := range b.Properties {
			props.Put(p.Name, nbt.String(p.Value))
		}
		c.Put("Properties", props)
	}
	c.Put("Name", nbt.String(b.Name))
	return c
}

func blockFromTag(c *nbt.Compound) (BlockData, error) {
	name, ok := c.GetString("Name")
	if !ok {
		return BlockData{}, formatErr("palette entry missing Name")
	}
	b := BlockData{Name: name}
	if props, ok := c.GetCompound("Properties"); ok {
		for _, pn := range props.Names() {
			pv, ok := props.GetString(pn)
			if !ok {
				return BlockData{}, formatErr("palette property %q is not a string", pn)
			}
			b.Properties = append(b.Properties, Property{Name: pn, Value: pv})
		}
	}
	return b, nil
}

// Palette is the deduplicated catalog of distinct descriptors. Entries
// are addressed by index and never removed; entries left unreferenced
// by edits simply ride along until CleansePalette.
type Palette struct {
	entries []BlockData
	index   map[string]int
}

func NewPalette() *Palette {
	return &Palette{index: map[string]int{}}
}

func (p *Palette) Len() int { return len(p.entries) }

// Intern returns the index of an equal descriptor, appending it first
// if absent. Interning an equal descriptor twice returns the same index.
func (p *Palette) Intern(b BlockData) int {
	sig := b.signature()
	if i, ok := p.index[sig]; ok {
		return i
	}
	i := len(p.entries)
	p.entries = append(p.entries, b.copy())
	p.index[sig] = i
	return i
}

// Lookup returns the index of an equal descriptor if present.
func (p *Palette) Lookup(b BlockData) (int, bool) {
	i, ok := p.index[b.signature()]
	return i, ok
}

// Get returns the descriptor at index i.
func (p *Palette) Get(i int) (BlockData, error) {
	if i < 0 || i >= len(p.entries) {
		return BlockData{}, fmt.Errorf("%w: %d of %d", ErrPaletteIndex, i, len(p.entries))
	}
	return p.entries[i].copy(), nil
}

func (p *Palette) tag() *nbt.List {
	l := nbt.NewList(nbt.TypeCompound)
	for _, b := range p.entries {
		l.MustAppend(b.tag())
	}
	return l
}

func paletteFromTag(l *nbt.List) (*Palette, error) {
	if l.Len() > 0 && l.ElementType() != nbt.TypeCompound {
		return nil, formatErr("palette must be a list of compounds")
	}
	p := NewPalette()
	for i := 0; i < l.Len(); i++ {
		b, err := blockFromTag(l.At(i).(*nbt.Compound))
		if err != nil {
			return nil, err
		}
		// Indices in the file are positional; duplicate signatures in a
		// hand-made file must keep their slots.
		p.entries = append(p.entries, b)
		if _, ok := p.index[b.signature()]; !ok {
			p.index[b.signature()] = i
		}
	}
	return p, nil
}

package structure

import "structcraft.dev/internal/nbt"

// Enchantment is one id+level pair on an item.
type Enchantment struct {
	ID    string
	Level int
}

// ItemStack is one slot of a container. Extra carries any fields of the
// source compound the structured accessors do not interpret; they are
// re-emitted verbatim on encode so an encode-decode-encode cycle is a
// fixpoint.
type ItemStack struct {
	ID    string
	Count int
	Slot  int

	Damage       int
	HasDamage    bool
	Enchantments []Enchantment

	Extra *nbt.Compound
}

// Inventory is the ordered item list of one container block.
// ContainerName, when set, is encoded as the container's "id".
type Inventory struct {
	ContainerName string
	Items         []ItemStack
}

func (e Enchantment) tag() *nbt.Compound {
	c := nbt.NewCompound()
	c.Put("lvl", nbt.Short(e.Level))
	c.Put("id", nbt.String(e.ID))
	return c
}

func (i ItemStack) tag() *nbt.Compound {
	c := nbt.NewCompound()
	c.Put("Slot", nbt.Byte(i.Slot))
	c.Put("id", nbt.String(i.ID))
	c.Put("Count", nbt.Byte(i.Count))

	tag := nbt.NewCompound()
	if i.HasDamage {
		tag.Put("Damage", nbt.Int(i.Damage))
	}
	if len(i.Enchantments) > 0 {
		enchants := nbt.NewList(nbt.TypeCompound)
		for _, e := range i.Enchantments {
			enchants.MustAppend(e.tag())
		}
		tag.Put("Enchantments", enchants)
	}

	if i.Extra != nil {
		for _, name := range i.Extra.Names() {
			child, _ := i.Extra.Get(name)
			if name == "tag" {
				// Pass-through children of the item's tag compound.
				if tc, ok := child.(*nbt.Compound); ok {
					for _, tn := range tc.Names() {
						tv, _ := tc.Get(tn)
						tag.Put(tn, tv)
					}
					continue
				}
			}
			c.Put(name, child)
		}
	}
	if tag.Len() > 0 {
		c.Put("tag", tag)
	}
	return c
}

// Encode produces the container compound: an "Items" slot-indexed list
// plus the container id when known. Absent optional fields are omitted.
func (inv *Inventory) Encode() *nbt.Compound {
	c := nbt.NewCompound()
	if inv.ContainerName != "" {
		c.Put("id", nbt.String(inv.ContainerName))
	}
	items := nbt.NewList(nbt.TypeCompound)
	for _, item := range inv.Items {
		items.MustAppend(item.tag())
	}
	c.Put("Items", items)
	return c
}

// DecodeInventory reads a container compound back into an Inventory.
// A compound without an Items list is not a container: (nil, nil).
func DecodeInventory(c *nbt.Compound) (*Inventory, error) {
	items, ok := c.GetList("Items")
	if !ok {
		return nil, nil
	}
	if items.Len() > 0 && items.ElementType() != nbt.TypeCompound {
		return nil, formatErr("Items must be a list of compounds")
	}
	inv := &Inventory{}
	if name, ok := c.GetString("id"); ok {
		inv.ContainerName = name
	}
	for n := 0; n < items.Len(); n++ {
		item, err := itemFromTag(items.At(n).(*nbt.Compound))
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, item)
	}
	return inv, nil
}

func itemFromTag(c *nbt.Compound) (ItemStack, error) {
	id, ok := c.GetString("id")
	if !ok {
		return ItemStack{}, formatErr("item missing id")
	}
	count, ok := c.GetByte("Count")
	if !ok {
		return ItemStack{}, formatErr("item %q missing Count", id)
	}
	slot, ok := c.GetByte("Slot")
	if !ok {
		return ItemStack{}, formatErr("item %q missing Slot", id)
	}
	if slot < 0 {
		return ItemStack{}, formatErr("item %q has negative slot %d", id, slot)
	}
	item := ItemStack{ID: id, Count: int(count), Slot: int(slot)}

	extra := nbt.NewCompound()
	for _, name := range c.Names() {
		switch name {
		case "id", "Count", "Slot", "tag":
			continue
		}
		child, _ := c.Get(name)
		extra.Put(name, child)
	}

	if tag, ok := c.GetCompound("tag"); ok {
		tagExtra := nbt.NewCompound()
		for _, name := range tag.Names() {
			child, _ := tag.Get(name)
			switch name {
			case "Damage":
				if v, ok := tag.GetInt("Damage"); ok {
					item.Damage = int(v)
					item.HasDamage = true
					continue
				}
			case "Enchantments":
				if l, ok := tag.GetList("Enchantments"); ok {
					enchants, err := enchantmentsFromTag(l)
					if err != nil {
						return ItemStack{}, err
					}
					item.Enchantments = enchants
					continue
				}
			}
			tagExtra.Put(name, child)
		}
		if tagExtra.Len() > 0 {
			extra.Put("tag", tagExtra)
		}
	}
	if extra.Len() > 0 {
		item.Extra = extra
	}
	return item, nil
}

func enchantmentsFromTag(l *nbt.List) ([]Enchantment, error) {
	if l.Len() > 0 && l.ElementType() != nbt.TypeCompound {
		return nil, formatErr("Enchantments must be a list of compounds")
	}
	out := make([]Enchantment, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		ec := l.At(i).(*nbt.Compound)
		id, ok := ec.GetString("id")
		if !ok {
			return nil, formatErr("enchantment %d missing id", i)
		}
		lvl, ok := ec.GetShort("lvl")
		if !ok {
			return nil, formatErr("enchantment %q missing lvl", id)
		}
		out = append(out, Enchantment{ID: id, Level: int(lvl)})
	}
	return out, nil
}

// Equal compares inventories in slot order, pass-through fields included.
func (inv *Inventory) Equal(o *Inventory) bool {
	if inv == nil || o == nil {
		return inv == nil && o == nil
	}
	if inv.ContainerName != o.ContainerName || len(inv.Items) != len(o.Items) {
		return false
	}
	for i := range inv.Items {
		if !inv.Items[i].Equal(o.Items[i]) {
			return false
		}
	}
	return true
}

func (i ItemStack) Equal(o ItemStack) bool {
	if i.ID != o.ID || i.Count != o.Count || i.Slot != o.Slot ||
		i.HasDamage != o.HasDamage || i.Damage != o.Damage ||
		len(i.Enchantments) != len(o.Enchantments) {
		return false
	}
	for n := range i.Enchantments {
		if i.Enchantments[n] != o.Enchantments[n] {
			return false
		}
	}
	if i.Extra == nil || o.Extra == nil {
		return i.Extra == nil && o.Extra == nil
	}
	return nbt.Equal(i.Extra, o.Extra)
}

// BlockInventory decodes the container inventory attached at pos, or
// nil when the position is void or carries no container data.
func (s *Structure) BlockInventory(pos Vec3) (*Inventory, error) {
	attached, ok := s.Attached(pos)
	if !ok {
		return nil, nil
	}
	return DecodeInventory(attached)
}

// SetBlockInventory replaces the attached data at pos with the encoded
// inventory. The position must already hold a block.
func (s *Structure) SetBlockInventory(pos Vec3, inv *Inventory) error {
	if !s.inBounds(pos) {
		return oobErr(pos, s.Size)
	}
	e, ok := s.blocks[pos]
	if !ok {
		return formatErr("no block at %v to attach inventory to", pos)
	}
	e.attached = inv.Encode()
	return nil
}

package nbt

import "fmt"

// TagType identifies the wire type of a tag payload.
type TagType byte

const (
	TypeEnd TagType = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeString
	TypeList
	TypeCompound
	TypeIntArray
	TypeLongArray
)

func (t TagType) String() string {
	switch t {
	case TypeEnd:
		return "End"
	case TypeByte:
		return "Byte"
	case TypeShort:
		return "Short"
	case TypeInt:
		return "Int"
	case TypeLong:
		return "Long"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeByteArray:
		return "ByteArray"
	case TypeString:
		return "String"
	case TypeList:
		return "List"
	case TypeCompound:
		return "Compound"
	case TypeIntArray:
		return "IntArray"
	case TypeLongArray:
		return "LongArray"
	}
	return fmt.Sprintf("TagType(%d)", byte(t))
}

// Tag is one typed node of a document tree. The concrete types form a
// closed set, one per wire type.
type Tag interface {
	Type() TagType
}

type Byte int8
type Short int16
type Int int32
type Long int64
type Float float32
type Double float64
type String string
type ByteArray []byte
type IntArray []int32
type LongArray []int64

func (Byte) Type() TagType      { return TypeByte }
func (Short) Type() TagType     { return TypeShort }
func (Int) Type() TagType       { return TypeInt }
func (Long) Type() TagType      { return TypeLong }
func (Float) Type() TagType     { return TypeFloat }
func (Double) Type() TagType    { return TypeDouble }
func (String) Type() TagType    { return TypeString }
func (ByteArray) Type() TagType { return TypeByteArray }
func (IntArray) Type() TagType  { return TypeIntArray }
func (LongArray) Type() TagType { return TypeLongArray }

// List holds tags of a single element type, fixed at creation. An empty
// list may carry TypeEnd as a placeholder element type.
type List struct {
	elem  TagType
	items []Tag
}

func NewList(elem TagType) *List {
	return &List{elem: elem}
}

func (l *List) Type() TagType        { return TypeList }
func (l *List) ElementType() TagType { return l.elem }
func (l *List) Len() int             { return len(l.items) }
func (l *List) At(i int) Tag         { return l.items[i] }

// Append adds t to the list. Adding a tag whose type differs from the
// declared element type is a construction error.
func (l *List) Append(tags ...Tag) error {
	for _, t := range tags {
		if t.Type() != l.elem {
			return fmt.Errorf("nbt: cannot append %s to list of %s", t.Type(), l.elem)
		}
		l.items = append(l.items, t)
	}
	return nil
}

// MustAppend is Append for values the caller knows to be well-typed.
func (l *List) MustAppend(tags ...Tag) {
	if err := l.Append(tags...); err != nil {
		panic(err)
	}
}

// Compound is an ordered name -> Tag mapping with unique names.
// Insertion order is preserved so documents round-trip byte for byte.
type Compound struct {
	names []string
	index map[string]Tag
}

func NewCompound() *Compound {
	return &Compound{index: map[string]Tag{}}
}

func (c *Compound) Type() TagType { return TypeCompound }
func (c *Compound) Len() int      { return len(c.names) }

// Names returns the child names in insertion order.
func (c *Compound) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Put sets name to t. A re-put keeps the name's original position.
func (c *Compound) Put(name string, t Tag) {
	if _, ok := c.index[name]; !ok {
		c.names = append(c.names, name)
	}
	c.index[name] = t
}

func (c *Compound) Get(name string) (Tag, bool) {
	t, ok := c.index[name]
	return t, ok
}

func (c *Compound) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Delete removes name if present.
func (c *Compound) Delete(name string) {
	if _, ok := c.index[name]; !ok {
		return
	}
	delete(c.index, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
}

func (c *Compound) GetByte(name string) (int8, bool) {
	t, ok := c.index[name]
	if !ok {
		return 0, false
	}
	v, ok := t.(Byte)
	return int8(v), ok
}

func (c *Compound) GetShort(name string) (int16, bool) {
	t, ok := c.index[name]
	if !ok {
		return 0, false
	}
	v, ok := t.(Short)
	return int16(v), ok
}

func (c *Compound) GetInt(name string) (int32, bool) {
	t, ok := c.index[name]
	if !ok {
		return 0, false
	}
	v, ok := t.(Int)
	return int32(v), ok
}

func (c *Compound) GetString(name string) (string, bool) {
	t, ok := c.index[name]
	if !ok {
		return "", false
	}
	v, ok := t.(String)
	return string(v), ok
}

func (c *Compound) GetList(name string) (*List, bool) {
	t, ok := c.index[name]
	if !ok {
		return nil, false
	}
	v, ok := t.(*List)
	return v, ok
}

func (c *Compound) GetCompound(name string) (*Compound, bool) {
	t, ok := c.index[name]
	if !ok {
		return nil, false
	}
	v, ok := t.(*Compound)
	return v, ok
}

// Copy returns a deep copy of the compound.
func (c *Compound) Copy() *Compound {
	out := NewCompound()
	for _, name := range c.names {
		out.Put(name, copyTag(c.index[name]))
	}
	return out
}

func copyTag(t Tag) Tag {
	switch v := t.(type) {
	case ByteArray:
		out := make(ByteArray, len(v))
		copy(out, v)
		return out
	case IntArray:
		out := make(IntArray, len(v))
		copy(out, v)
		return out
	case LongArray:
		out := make(LongArray, len(v))
		copy(out, v)
		return out
	case *List:
		out := NewList(v.elem)
		for _, item := range v.items {
			out.items = append(out.items, copyTag(item))
		}
		return out
	case *Compound:
		return v.Copy()
	default:
		// Scalars are value types.
		return t
	}
}

// Equal reports deep structural equality. Lists compare in order;
// compounds compare as maps (child order does not affect equality).
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case ByteArray:
		bv := b.(ByteArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case IntArray:
		bv := b.(IntArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case LongArray:
		bv := b.(LongArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case *List:
		bv := b.(*List)
		if av.Len() != bv.Len() {
			return false
		}
		// A zero-length list may differ in placeholder element type.
		if av.Len() > 0 && av.elem != bv.elem {
			return false
		}
		for i := range av.items {
			if !Equal(av.items[i], bv.items[i]) {
				return false
			}
		}
		return true
	case *Compound:
		bv := b.(*Compound)
		if av.Len() != bv.Len() {
			return false
		}
		for name, at := range av.index {
			bt, ok := bv.index[name]
			if !ok || !Equal(at, bt) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

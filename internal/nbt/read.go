package nbt

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// ErrFormat marks malformed or truncated input. Callers match it with
// errors.Is.
var ErrFormat = errors.New("nbt: malformed input")

func formatErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// maxCount bounds allocations on corrupt length prefixes; a well-formed
// structure file never comes near it.
const maxCount = 1 << 26

// Decode reads one document from r and returns its root compound.
// Gzip framing is detected from the stream magic; plain streams are
// accepted as-is. The root tag's name is read and discarded.
func Decode(r io.Reader) (*Compound, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, formatErr("reading header: %v", err)
	}

	src := br
	if magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, formatErr("gzip header: %v", err)
		}
		defer zr.Close()
		src = bufio.NewReader(zr)
	}

	d := &decoder{r: src}
	typ, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if TagType(typ) != TypeCompound {
		return nil, formatErr("root tag is %s, want Compound", TagType(typ))
	}
	if _, err := d.readString(); err != nil {
		return nil, err
	}
	root, err := d.readCompound(0)
	if err != nil {
		return nil, err
	}
	return root, nil
}

const maxDepth = 512

type decoder struct {
	r *bufio.Reader
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, formatErr("truncated: %v", err)
	}
	return b, nil
}

func (d *decoder) readFull(buf []byte) error {
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return formatErr("truncated: %v", err)
	}
	return nil
}

func (d *decoder) readInt16() (int16, error) {
	var buf [2]byte
	if err := d.readFull(buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

func (d *decoder) readInt32() (int32, error) {
	var buf [4]byte
	if err := d.readFull(buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func (d *decoder) readInt64() (int64, error) {
	var buf [8]byte
	if err := d.readFull(buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func (d *decoder) readString() (string, error) {
	n, err := d.readInt16()
	if err != nil {
		return "", err
	}
	ln := int(uint16(n))
	if ln == 0 {
		return "", nil
	}
	buf := make([]byte, ln)
	if err := d.readFull(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (d *decoder) readCompound(depth int) (*Compound, error) {
	if depth > maxDepth {
		return nil, formatErr("nesting deeper than %d", maxDepth)
	}
	c := NewCompound()
	for {
		typ, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if TagType(typ) == TypeEnd {
			return c, nil
		}
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		if c.Has(name) {
			return nil, formatErr("duplicate compound child %q", name)
		}
		child, err := d.readPayload(TagType(typ), depth+1)
		if err != nil {
			return nil, fmt.Errorf("in %q: %w", name, err)
		}
		c.Put(name, child)
	}
}

func (d *decoder) readList(depth int) (*List, error) {
	if depth > maxDepth {
		return nil, formatErr("nesting deeper than %d", maxDepth)
	}
	elemByte, err := d.readByte()
	if err != nil {
		return nil, err
	}
	elem := TagType(elemByte)
	if elem > TypeLongArray {
		return nil, formatErr("unknown list element type %d", elemByte)
	}
	n, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n > maxCount {
		return nil, formatErr("list length %d too large", n)
	}
	if elem == TypeEnd && n > 0 {
		return nil, formatErr("non-empty list of End tags")
	}
	l := NewList(elem)
	for i := int32(0); i < n; i++ {
		item, err := d.readPayload(elem, depth+1)
		if err != nil {
			return nil, err
		}
		l.items = append(l.items, item)
	}
	return l, nil
}

func (d *decoder) readPayload(typ TagType, depth int) (Tag, error) {
	switch typ {
	case TypeByte:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		return Byte(int8(b)), nil
	case TypeShort:
		v, err := d.readInt16()
		if err != nil {
			return nil, err
		}
		return Short(v), nil
	case TypeInt:
		v, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		return Int(v), nil
	case TypeLong:
		v, err := d.readInt64()
		if err != nil {
			return nil, err
		}
		return Long(v), nil
	case TypeFloat:
		v, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		return Float(math32(v)), nil
	case TypeDouble:
		v, err := d.readInt64()
		if err != nil {
			return nil, err
		}
		return Double(math64(v)), nil
	case TypeByteArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if n < 0 || n > maxCount {
			return nil, formatErr("byte array length %d", n)
		}
		buf := make(ByteArray, n)
		if err := d.readFull(buf); err != nil {
			return nil, err
		}
		return buf, nil
	case TypeString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TypeList:
		return d.readList(depth)
	case TypeCompound:
		return d.readCompound(depth)
	case TypeIntArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if n < 0 || n > maxCount {
			return nil, formatErr("int array length %d", n)
		}
		arr := make(IntArray, n)
		for i := range arr {
			v, err := d.readInt32()
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case TypeLongArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if n < 0 || n > maxCount {
			return nil, formatErr("long array length %d", n)
		}
		arr := make(LongArray, n)
		for i := range arr {
			v, err := d.readInt64()
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	default:
		return nil, formatErr("unknown tag type %d", byte(typ))
	}
}

package nbt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/gzip"
)

func math32(bits int32) float32 { return math.Float32frombits(uint32(bits)) }
func math64(bits int64) float64 { return math.Float64frombits(uint64(bits)) }

// Encode writes root as a gzip-compressed document with an unnamed root
// compound. Encoding a well-formed tree only fails on writer errors.
func Encode(w io.Writer, root *Compound) error {
	zw := gzip.NewWriter(w)
	bw := bufio.NewWriter(zw)

	e := &encoder{w: bw}
	if err := e.writeByte(byte(TypeCompound)); err != nil {
		return err
	}
	if err := e.writeString(""); err != nil {
		return err
	}
	if err := e.writeCompound(root); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	return zw.Close()
}

type encoder struct {
	w *bufio.Writer
}

func (e *encoder) writeByte(b byte) error {
	return e.w.WriteByte(b)
}

func (e *encoder) writeInt16(v int16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	_, err := e.w.Write(buf[:])
	return err
}

func (e *encoder) writeInt32(v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := e.w.Write(buf[:])
	return err
}

func (e *encoder) writeInt64(v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := e.w.Write(buf[:])
	return err
}

func (e *encoder) writeString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("nbt: string of %d bytes exceeds length prefix", len(s))
	}
	if err := e.writeInt16(int16(uint16(len(s)))); err != nil {
		return err
	}
	_, err := e.w.WriteString(s)
	return err
}

func (e *encoder) writeCompound(c *Compound) error {
	for _, name := range c.names {
		child := c.index[name]
		if err := e.writeByte(byte(child.Type())); err != nil {
			return err
		}
		if err := e.writeString(name); err != nil {
			return err
		}
		if err := e.writePayload(child); err != nil {
			return err
		}
	}
	return e.writeByte(byte(TypeEnd))
}

func (e *encoder) writeList(l *List) error {
	if err := e.writeByte(byte(l.elem)); err != nil {
		return err
	}
	if err := e.writeInt32(int32(len(l.items))); err != nil {
		return err
	}
	for _, item := range l.items {
		if err := e.writePayload(item); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writePayload(t Tag) error {
	switch v := t.(type) {
	case Byte:
		return e.writeByte(byte(v))
	case Short:
		return e.writeInt16(int16(v))
	case Int:
		return e.writeInt32(int32(v))
	case Long:
		return e.writeInt64(int64(v))
	case Float:
		return e.writeInt32(int32(math.Float32bits(float32(v))))
	case Double:
		return e.writeInt64(int64(math.Float64bits(float64(v))))
	case ByteArray:
		if err := e.writeInt32(int32(len(v))); err != nil {
			return err
		}
		_, err := e.w.Write(v)
		return err
	case String:
		return e.writeString(string(v))
	case *List:
		return e.writeList(v)
	case *Compound:
		return e.writeCompound(v)
	case IntArray:
		if err := e.writeInt32(int32(len(v))); err != nil {
			return err
		}
		for _, n := range v {
			if err := e.writeInt32(n); err != nil {
				return err
			}
		}
		return nil
	case LongArray:
		if err := e.writeInt32(int32(len(v))); err != nil {
			return err
		}
		for _, n := range v {
			if err := e.writeInt64(n); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("nbt: cannot encode %T", t)
	}
}

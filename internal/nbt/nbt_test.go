package nbt

import (
	"bytes"
	"errors"
	"testing"
)

func buildDeepTree(t *testing.T) *Compound {
	t.Helper()

	root := NewCompound()
	root.Put("b", Byte(-7))
	root.Put("s", Short(-30000))
	root.Put("i", Int(1<<30))
	root.Put("l", Long(-1<<60))
	root.Put("f", Float(3.5))
	root.Put("d", Double(-0.125))
	root.Put("str", String("minecraft:chest"))
	root.Put("empty_str", String(""))
	root.Put("bytes", ByteArray{0, 1, 255})
	root.Put("no_bytes", ByteArray{})
	root.Put("ints", IntArray{-1, 0, 1})
	root.Put("longs", LongArray{1 << 40})

	empty := NewList(TypeEnd)
	root.Put("empty_list", empty)

	nums := NewList(TypeInt)
	nums.MustAppend(Int(1), Int(2), Int(3))
	root.Put("nums", nums)

	inner := NewCompound()
	inner.Put("name", String("inner"))
	deepest := NewCompound()
	deepest.Put("depth", Int(3))
	inner.Put("more", deepest)

	mid := NewCompound()
	mid.Put("inner", inner)
	root.Put("mid", mid)
	root.Put("empty_compound", NewCompound())

	comps := NewList(TypeCompound)
	entry := NewCompound()
	entry.Put("id", String("minecraft:sharpness"))
	entry.Put("lvl", Short(4))
	comps.MustAppend(entry)
	root.Put("comp_list", comps)

	return root
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	root := buildDeepTree(t)

	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Output must carry gzip framing.
	b := buf.Bytes()
	if len(b) < 2 || b[0] != 0x1f || b[1] != 0x8b {
		t.Fatalf("output not gzip framed: % x", b[:2])
	}

	got, err := Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !Equal(root, got) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecode_PlainStream(t *testing.T) {
	// An uncompressed document: compound "" { Byte "x" = 1 }.
	raw := []byte{
		byte(TypeCompound), 0, 0,
		byte(TypeByte), 0, 1, 'x', 1,
		byte(TypeEnd),
	}
	got, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode plain: %v", err)
	}
	v, ok := got.GetByte("x")
	if !ok || v != 1 {
		t.Fatalf("got %v %v", v, ok)
	}
}

func TestDecode_Truncated(t *testing.T) {
	root := buildDeepTree(t)
	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Cutting the stream anywhere must yield ErrFormat, never a panic.
	b := buf.Bytes()
	for _, n := range []int{0, 1, 10, len(b) / 2} {
		if _, err := Decode(bytes.NewReader(b[:n])); !errors.Is(err, ErrFormat) {
			t.Fatalf("cut at %d: got %v, want ErrFormat", n, err)
		}
	}
}

func TestDecode_UnknownTagType(t *testing.T) {
	raw := []byte{
		byte(TypeCompound), 0, 0,
		99, 0, 1, 'x', 0,
		byte(TypeEnd),
	}
	if _, err := Decode(bytes.NewReader(raw)); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestDecode_NonEmptyEndList(t *testing.T) {
	raw := []byte{
		byte(TypeCompound), 0, 0,
		byte(TypeList), 0, 1, 'l', byte(TypeEnd), 0, 0, 0, 2,
		byte(TypeEnd),
	}
	if _, err := Decode(bytes.NewReader(raw)); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestDecode_RootMustBeCompound(t *testing.T) {
	raw := []byte{byte(TypeInt), 0, 0, 0, 0, 0, 7}
	if _, err := Decode(bytes.NewReader(raw)); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestDecode_DuplicateName(t *testing.T) {
	raw := []byte{
		byte(TypeCompound), 0, 0,
		byte(TypeByte), 0, 1, 'x', 1,
		byte(TypeByte), 0, 1, 'x', 2,
		byte(TypeEnd),
	}
	if _, err := Decode(bytes.NewReader(raw)); !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestList_ElementTypeFixed(t *testing.T) {
	l := NewList(TypeInt)
	if err := l.Append(Int(1)); err != nil {
		t.Fatalf("append int: %v", err)
	}
	if err := l.Append(String("nope")); err == nil {
		t.Fatalf("appending String to list of Int must fail")
	}
	if l.Len() != 1 {
		t.Fatalf("failed append must not grow list, len=%d", l.Len())
	}
}

func TestCompound_OrderPreservedAndUnique(t *testing.T) {
	c := NewCompound()
	c.Put("z", Int(1))
	c.Put("a", Int(2))
	c.Put("m", Int(3))
	c.Put("z", Int(4)) // re-put keeps position

	names := c.Names()
	want := []string{"z", "a", "m"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order %v, want %v", names, want)
		}
	}
	if v, _ := c.GetInt("z"); v != 4 {
		t.Fatalf("re-put did not replace value: %d", v)
	}
}

func TestEqual_CompoundOrderInsensitive(t *testing.T) {
	a := NewCompound()
	a.Put("x", Int(1))
	a.Put("y", Int(2))
	b := NewCompound()
	b.Put("y", Int(2))
	b.Put("x", Int(1))
	if !Equal(a, b) {
		t.Fatalf("compounds with same children must compare equal")
	}
	b.Put("x", Int(9))
	if Equal(a, b) {
		t.Fatalf("different values must not compare equal")
	}
}

func TestCompound_Copy(t *testing.T) {
	a := buildDeepTree(t)
	b := a.Copy()
	if !Equal(a, b) {
		t.Fatalf("copy not equal")
	}
	inner, _ := b.GetCompound("mid")
	inner.Put("extra", Int(1))
	if Equal(a, b) {
		t.Fatalf("copy shares children with original")
	}
}

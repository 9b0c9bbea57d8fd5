package ctype_test

import (
	"testing"

	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
)

type fakeTags struct {
	size uint64
	ok   bool
}

func (f fakeTags) TagSize(uint32) (uint64, bool) { return f.size, f.ok }

func buf(codes ...byte) ctype.Buffer {
	return ctype.Buffer(codes)
}

func TestSizeOfPrimitives(t *testing.T) {
	cases := []struct {
		code ctype.Code
		want uint64
	}{
		{ctype.CodeChar, 1},
		{ctype.CodeUChar, 1},
		{ctype.CodeShort, 2},
		{ctype.CodeUShort, 2},
		{ctype.CodeInt, 2},
		{ctype.CodeUInt, 2},
		{ctype.CodePtr, 2},
		{ctype.CodeLong, 4},
		{ctype.CodeULong, 4},
	}
	for _, c := range cases {
		b := buf(byte(c.code), byte(ctype.CodeEnd))
		size, ok := ctype.SizeOf(b, nil)
		if !ok || size != c.want {
			t.Errorf("%v: got (%d, %v), want (%d, true)", c.code, size, ok, c.want)
		}
	}
}

func TestPointerToArrayOfInt(t *testing.T) {
	// int (*p)[4] -> PTR, ARRAY, 4, INT, END
	arr := make(ctype.Buffer, 1+ctype.DecodeSize)
	arr[0] = byte(ctype.CodeArray)
	ctype.EncodeSize(arr[1:], 4)
	typ := append(ctype.Buffer{byte(ctype.CodePtr)}, append(arr, byte(ctype.CodeInt), byte(ctype.CodeEnd))...)

	if ctype.Head(typ) != ctype.CodePtr {
		t.Fatalf("expected leading PTR, got %v", ctype.Head(typ))
	}
	size, ok := ctype.SizeOf(typ, nil)
	if !ok || size != 2 {
		t.Fatalf("size-of pointer = (%d, %v), want (2, true)", size, ok)
	}

	inner := ctype.Skip(typ)
	if !ctype.IsArray(inner) {
		t.Fatalf("expected ARRAY after PTR, got %v", ctype.Head(inner))
	}
	dim := ctype.DecodeSizeAt(inner[1:])
	if dim != 4 {
		t.Fatalf("array dimension = %d, want 4", dim)
	}
	elem := ctype.Skip(inner)
	if ctype.Head(elem) != ctype.CodeInt {
		t.Fatalf("element type = %v, want int", ctype.Head(elem))
	}
}

func TestSizeOfArray(t *testing.T) {
	b := make(ctype.Buffer, 1+ctype.DecodeSize)
	b[0] = byte(ctype.CodeArray)
	ctype.EncodeSize(b[1:], 4)
	b = append(b, byte(ctype.CodeInt), byte(ctype.CodeEnd))

	size, ok := ctype.SizeOf(b, nil)
	if !ok || size != 8 {
		t.Fatalf("size-of array[4] of int = (%d, %v), want (8, true)", size, ok)
	}
}

func TestSizeOfStructViaTagResolver(t *testing.T) {
	b := make(ctype.Buffer, 1+ctype.DecodeSize+1)
	b[0] = byte(ctype.CodeStruct)
	ctype.EncodeIndex(b[1:], 7)
	b[1+ctype.DecodeSize] = byte(ctype.CodeEnd)

	size, ok := ctype.SizeOf(b, fakeTags{size: 4, ok: true})
	if !ok || size != 4 {
		t.Fatalf("size-of struct = (%d, %v), want (4, true)", size, ok)
	}

	_, ok = ctype.SizeOf(b, fakeTags{size: 0, ok: false})
	if ok {
		t.Fatalf("incomplete struct should report ok=false")
	}
}

func TestTypeCopyPreservesSize(t *testing.T) {
	src := make(ctype.Buffer, 1+ctype.DecodeSize)
	src[0] = byte(ctype.CodeArray)
	ctype.EncodeSize(src[1:], 3)
	src = append(src, byte(ctype.CodeLong), byte(ctype.CodeEnd))

	dst := ctype.Copy(src)
	wantSize, _ := ctype.SizeOf(src, nil)
	gotSize, _ := ctype.SizeOf(dst, nil)
	if gotSize != wantSize {
		t.Fatalf("copy changed size-of: got %d, want %d", gotSize, wantSize)
	}
	if ctype.Len(dst) != ctype.Len(src) {
		t.Fatalf("copy changed length")
	}
}

func TestTooLargeBoundary(t *testing.T) {
	if ctype.TooLarge(65535) {
		t.Fatal("65535 must not be too large")
	}
	if !ctype.TooLarge(65536) {
		t.Fatal("65536 must be too large")
	}
}

func TestFuncSizeUndefined(t *testing.T) {
	b := make(ctype.Buffer, 1+ctype.DecodeSize+2)
	b[0] = byte(ctype.CodeFunc)
	ctype.EncodeIndex(b[1:], 0)
	b[1+ctype.DecodeSize] = byte(ctype.CodeChar)
	b[1+ctype.DecodeSize+1] = byte(ctype.CodeEnd)

	if !ctype.IsFunc(b) {
		t.Fatal("expected IsFunc true")
	}
	_, ok := ctype.SizeOf(b, nil)
	if ok {
		t.Fatal("function size-of must report ok=false")
	}
}

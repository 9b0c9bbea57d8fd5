// Package ctype implements the compact, byte-oriented type encoding
// described in spec.md SS3/SS4.1: a sequence of type codes terminated
// by End, where the composite codes (Array, Func, Struct, Union) are
// each followed by a fixed-width DecodeSize payload.
//
// Per spec.md SS9's design note, the payload following Func, Struct and
// Union is not a raw pointer: it is a stable index into the
// function-descriptor store or the tag table respectively, so that
// type buffers remain valid after being copied or moved. Array still
// stores its dimension directly. DecodeSize is therefore sized to hold
// either an index or a dimension, both uint32.
package ctype

import "encoding/binary"

// Code is one byte of an encoded type sequence.
type Code byte

const (
	CodeEnd Code = iota
	CodeVoid
	CodeChar
	CodeUChar
	CodeShort
	CodeUShort
	CodeInt
	CodeUInt
	CodeLong
	CodeULong
	CodePtr
	CodeArray
	CodeFunc
	CodeStruct
	CodeUnion
)

func (c Code) String() string {
	switch c {
	case CodeEnd:
		return "end"
	case CodeVoid:
		return "void"
	case CodeChar:
		return "char"
	case CodeUChar:
		return "unsigned char"
	case CodeShort:
		return "short"
	case CodeUShort:
		return "unsigned short"
	case CodeInt:
		return "int"
	case CodeUInt:
		return "unsigned int"
	case CodeLong:
		return "long"
	case CodeULong:
		return "unsigned long"
	case CodePtr:
		return "pointer"
	case CodeArray:
		return "array"
	case CodeFunc:
		return "function"
	case CodeStruct:
		return "struct"
	case CodeUnion:
		return "union"
	default:
		return "?"
	}
}

// DecodeSize is the fixed payload width following a composite code.
// It must be wide enough to hold either an array dimension or a table
// index; both are uint32 here, so 4 bytes covers either.
const DecodeSize = 4

// Buffer is an encoded type-code sequence. A well-formed Buffer always
// terminates with CodeEnd within its length.
type Buffer []byte

// EncodeSize writes n into the DecodeSize-byte payload at buf[0:DecodeSize].
func EncodeSize(buf []byte, n uint32) {
	binary.LittleEndian.PutUint32(buf, n)
}

// DecodeSizeAt reads a DecodeSize-byte payload as an unsigned integer
// (array dimension).
func DecodeSizeAt(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}

// EncodeIndex writes an opaque table index into the DecodeSize-byte
// payload. It is bit-for-bit the same encoding as EncodeSize; the two
// names exist to document intent at call sites (array dimension vs.
// function-descriptor/tag index), matching encode-size/encode-ptr in
// spec.md SS4.1.
func EncodeIndex(buf []byte, idx uint32) {
	binary.LittleEndian.PutUint32(buf, idx)
}

// DecodeIndexAt reads a table index payload.
func DecodeIndexAt(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}

// Head returns the leading code of a buffer, or CodeEnd for an empty
// buffer.
func Head(b Buffer) Code {
	if len(b) == 0 {
		return CodeEnd
	}
	return Code(b[0])
}

// IsArray reports whether b's leading code is Array.
func IsArray(b Buffer) bool {
	return Head(b) == CodeArray
}

// IsFunc reports whether b's leading code is Func.
func IsFunc(b Buffer) bool {
	return Head(b) == CodeFunc
}

// Skip returns the suffix of b after its leading code and, if
// composite, its payload - i.e. the encoded type of whatever the
// leading code wraps (pointee, element type, return type).
func Skip(b Buffer) Buffer {
	if len(b) == 0 {
		return b
	}
	switch Code(b[0]) {
	case CodeArray, CodeFunc, CodeStruct, CodeUnion:
		return b[1+DecodeSize:]
	default:
		return b[1:]
	}
}

// Len returns the length of the terminated sequence at the head of b,
// End byte included.
func Len(b Buffer) int {
	n := 0
	for {
		if n >= len(b) {
			return n
		}
		switch Code(b[n]) {
		case CodeEnd:
			return n + 1
		case CodeArray, CodeFunc, CodeStruct, CodeUnion:
			n += 1 + DecodeSize
		default:
			n++
		}
	}
}

// Copy returns a fresh copy of the terminated sequence at the head of
// src (type-copy, spec.md SS4.1).
func Copy(src Buffer) Buffer {
	n := Len(src)
	dst := make(Buffer, n)
	copy(dst, src[:n])
	return dst
}

// TagResolver answers size queries about struct/union tags embedded in
// a type buffer by table index. A concrete symtab.TagStore implements
// this without ctype importing symtab.
type TagResolver interface {
	// TagSize returns the tag's size and whether its field table is
	// complete (non-nil). An incomplete tag has size 0 and ok false.
	TagSize(index uint32) (size uint64, ok bool)
}

// primitiveSize returns the size in bytes of a scalar leading code, or
// 0 if the code is not a primitive scalar.
func primitiveSize(c Code) uint64 {
	switch c {
	case CodeChar, CodeUChar:
		return 1
	case CodeShort, CodeUShort, CodeInt, CodeUInt, CodePtr:
		return 2
	case CodeLong, CodeULong:
		return 4
	default:
		return 0
	}
}

// SizeOf computes the size in bytes of the type at the head of b, per
// spec.md SS4.1: primitive sizes as above, array = dimension *
// element size, struct/union size from the tag (via tags), function
// undefined (callers must check IsFunc first - ok is false).
//
// ok is false when the type is incomplete (a struct/union tag with no
// field table) or is a function type; size is 0 in that case.
func SizeOf(b Buffer, tags TagResolver) (size uint64, ok bool) {
	switch Head(b) {
	case CodeVoid:
		return 0, true
	case CodeChar, CodeUChar, CodeShort, CodeUShort, CodeInt, CodeUInt, CodeLong, CodeULong, CodePtr:
		return primitiveSize(Head(b)), true
	case CodeArray:
		dim := DecodeSizeAt(b[1:])
		elemSize, elemOK := SizeOf(Skip(b), tags)
		if !elemOK {
			return 0, false
		}
		return uint64(dim) * elemSize, true
	case CodeStruct, CodeUnion:
		idx := DecodeIndexAt(b[1:])
		if tags == nil {
			return 0, false
		}
		return tags.TagSize(idx)
	case CodeFunc:
		return 0, false
	default:
		return 0, false
	}
}

// TooLarge reports whether size is too large for the 16-bit target, as
// spec.md SS3 requires (the front end rejects types whose size is >=
// 65536).
func TooLarge(size uint64) bool {
	return size >= 0x10000
}

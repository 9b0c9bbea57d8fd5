// Package codegen is the data-emission external collaborator (spec.md
// SS6): EmitBytes, EmitZeroBytes, DefineDataFromConstant. Sink is a
// recording sink over the active data segment, sufficient to observe
// the Initializer Processor's output in tests; it does not implement
// an actual 6502 object format (that is explicitly out of scope, see
// spec.md's Non-goals). Buffered segment layout is grounded on
// lang/yld/output.go's codeBuf/dataBuf writer.
package codegen

import "encoding/binary"

// Sink accumulates emitted initializer bytes into the current data
// segment.
type Sink struct {
	Data []byte
}

// NewSink creates an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// EmitBytes appends raw bytes to the data segment (g_defbytes).
func (s *Sink) EmitBytes(b []byte) {
	s.Data = append(s.Data, b...)
}

// EmitZeroBytes appends n zero bytes (g_zerobytes).
func (s *Sink) EmitZeroBytes(n uint64) {
	for i := uint64(0); i < n; i++ {
		s.Data = append(s.Data, 0)
	}
}

// DefineDataFromConstant emits a constant value of the given byte
// width, little-endian, matching the target's byte order
// (DefineData applied to a scalar expent).
func (s *Sink) DefineDataFromConstant(width int, value uint64) {
	buf := make([]byte, width)
	switch width {
	case 1:
		buf[0] = byte(value)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(value))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(value))
	default:
		for i := 0; i < width; i++ {
			buf[i] = byte(value >> (8 * i))
		}
	}
	s.EmitBytes(buf)
}

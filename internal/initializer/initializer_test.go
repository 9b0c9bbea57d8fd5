package initializer_test

import (
	"bytes"
	"testing"

	"github.com/gmofishsauce/wut4/cc6502/internal/codegen"
	"github.com/gmofishsauce/wut4/cc6502/internal/config"
	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
	"github.com/gmofishsauce/wut4/cc6502/internal/errs"
	"github.com/gmofishsauce/wut4/cc6502/internal/initializer"
	"github.com/gmofishsauce/wut4/cc6502/internal/lexer"
	"github.com/gmofishsauce/wut4/cc6502/internal/litpool"
	"github.com/gmofishsauce/wut4/cc6502/internal/symtab"
)

func newParser(src string) (*initializer.Parser, *errs.Reporter, *codegen.Sink) {
	l := lexer.New(src)
	var out bytes.Buffer
	rep := errs.NewReporter(&out, l.Line)
	scope := symtab.NewScope()
	sink := codegen.NewSink()
	pool := litpool.New(nil)
	p := initializer.New(l, scope, sink, pool, rep, config.Default())
	return p, rep, sink
}

func charArray(dim uint32) ctype.Buffer {
	b := make(ctype.Buffer, 1+ctype.DecodeSize)
	b[0] = byte(ctype.CodeArray)
	ctype.EncodeSize(b[1:], dim)
	return append(b, byte(ctype.CodeChar), byte(ctype.CodeEnd))
}

func intArray(dim uint32) ctype.Buffer {
	b := make(ctype.Buffer, 1+ctype.DecodeSize)
	b[0] = byte(ctype.CodeArray)
	ctype.EncodeSize(b[1:], dim)
	return append(b, byte(ctype.CodeInt), byte(ctype.CodeEnd))
}

// Scenario 4: char s[] = "ab"; -> dimension back-patched to 3, data
// emission of bytes 'a','b',0.
func TestArrayInitializedByString(t *testing.T) {
	p, rep, sink := newParser(`"ab"`)
	out := p.ParseInit(charArray(0))

	if rep.HasErrors() {
		t.Fatalf("unexpected errors: count=%d", rep.Count)
	}
	dim := ctype.DecodeSizeAt(out[1:])
	if dim != 3 {
		t.Fatalf("back-patched dimension = %d, want 3", dim)
	}
	want := []byte{'a', 'b', 0}
	if !bytes.Equal(sink.Data, want) {
		t.Fatalf("emitted data = %v, want %v", sink.Data, want)
	}
}

// Scenario 5: int a[4] = {1, 2}; -> emit words 1, 2, then 4 zero bytes.
func TestAggregateInitializerWithElision(t *testing.T) {
	p, rep, sink := newParser(`{1, 2}`)
	out := p.ParseInit(intArray(4))

	if rep.HasErrors() {
		t.Fatalf("unexpected errors: count=%d", rep.Count)
	}
	if dim := ctype.DecodeSizeAt(out[1:]); dim != 4 {
		t.Fatalf("dimension should stay 4, got %d", dim)
	}
	want := []byte{1, 0, 2, 0, 0, 0, 0, 0}
	if !bytes.Equal(sink.Data, want) {
		t.Fatalf("emitted data = %v, want %v", sink.Data, want)
	}
}

func TestTooManyInitializersErrors(t *testing.T) {
	p, rep, _ := newParser(`{1, 2, 3}`)
	p.ParseInit(intArray(2))
	if !rep.HasErrors() {
		t.Fatal("expected TOO_MANY_INITIALIZERS error")
	}
}

func TestCharScalarMasksTo8Bits(t *testing.T) {
	p, rep, sink := newParser(`511`)
	charType := ctype.Buffer{byte(ctype.CodeChar), byte(ctype.CodeEnd)}
	p.ParseInit(charType)
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: count=%d", rep.Count)
	}
	if len(sink.Data) != 1 || sink.Data[0] != byte(511&0xff) {
		t.Fatalf("emitted = %v, want single byte %d", sink.Data, 511&0xff)
	}
}

func TestVoidInitializerExtension(t *testing.T) {
	p, rep, sink := newParser(`{1, 2}`)
	voidType := ctype.Buffer{byte(ctype.CodeVoid), byte(ctype.CodeEnd)}
	p.ParseInit(voidType)
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: count=%d", rep.Count)
	}
	if len(sink.Data) == 0 {
		t.Fatal("expected void initializer to emit some data")
	}
}

func TestVoidInitializerRejectedInANSIMode(t *testing.T) {
	l := lexer.New(`{1, 2}`)
	var out bytes.Buffer
	rep := errs.NewReporter(&out, l.Line)
	scope := symtab.NewScope()
	sink := codegen.NewSink()
	pool := litpool.New(nil)
	cfg := config.Default()
	cfg.ANSI = true
	p := initializer.New(l, scope, sink, pool, rep, cfg)

	voidType := ctype.Buffer{byte(ctype.CodeVoid), byte(ctype.CodeEnd)}
	p.ParseInit(voidType)
	if !rep.HasErrors() {
		t.Fatal("expected void initializer to be rejected in ANSI mode")
	}
}

// Package initializer implements the Initializer Processor (spec.md
// SS4.6): a type-directed consumer of initializer syntax that drives
// the data-emission interface.
//
// Dispatch and array/struct back-patch logic are grounded on cc65's
// ParseInit/ParseStructInit/ParseVoidInit family in declare.c; emission
// is delegated to codegen.Sink (g_defbytes/g_zerobytes/DefineData).
package initializer

import (
	"github.com/gmofishsauce/wut4/cc6502/internal/codegen"
	"github.com/gmofishsauce/wut4/cc6502/internal/config"
	"github.com/gmofishsauce/wut4/cc6502/internal/constexpr"
	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
	"github.com/gmofishsauce/wut4/cc6502/internal/errs"
	"github.com/gmofishsauce/wut4/cc6502/internal/litpool"
	"github.com/gmofishsauce/wut4/cc6502/internal/symtab"
	"github.com/gmofishsauce/wut4/cc6502/internal/token"
)

// Parser holds the collaborators the initializer core consumes: a
// token source, the current symbol-table scope (for enum-constant
// resolution inside constant expressions), the data-emission sink,
// the literal pool, the error reporter, and the mode configuration.
type Parser struct {
	Src   token.Source
	Scope *symtab.Scope
	Sink  *codegen.Sink
	Pool  *litpool.Pool
	Err   *errs.Reporter
	Cfg   config.Config
}

// New creates a Parser over the given collaborators.
func New(src token.Source, scope *symtab.Scope, sink *codegen.Sink, pool *litpool.Pool, reporter *errs.Reporter, cfg config.Config) *Parser {
	return &Parser{Src: src, Scope: scope, Sink: sink, Pool: pool, Err: reporter, Cfg: cfg}
}

func (p *Parser) resolver() constexpr.Resolver {
	return func(name string) (int64, bool) {
		e, ok := p.Scope.Find(name)
		if !ok || !e.IsEnum {
			return 0, false
		}
		return int64(e.EnumValue), true
	}
}

// ParseInit parses one initializer for a binding of type typ and
// emits its data, returning the (possibly array-size back-patched)
// type to install on the symbol-table entry, per spec.md SS4.6's
// dispatch table.
func (p *Parser) ParseInit(typ ctype.Buffer) ctype.Buffer {
	switch ctype.Head(typ) {
	case ctype.CodeChar, ctype.CodeUChar:
		p.parseScalarInit(1)
		return typ
	case ctype.CodeShort, ctype.CodeUShort, ctype.CodeInt, ctype.CodeUInt, ctype.CodePtr:
		p.parseScalarInit(2)
		return typ
	case ctype.CodeLong, ctype.CodeULong:
		p.parseScalarInit(4)
		return typ
	case ctype.CodeArray:
		return p.parseArrayInit(typ)
	case ctype.CodeStruct, ctype.CodeUnion:
		p.parseAggregateInit(typ)
		return typ
	case ctype.CodeVoid:
		if p.Cfg.ANSI {
			p.Err.Error(errs.IllegalType, "void")
			return typ
		}
		p.parseVoidInit()
		return typ
	default:
		p.Err.Error(errs.IllegalType, "")
		return typ
	}
}

// parseScalarInit handles CHAR/UCHAR/SHORT/USHORT/INT/UINT/PTR/LONG/
// ULONG: evaluate the constant expression, mask to the target width
// when the value is literally constant, and emit it.
func (p *Parser) parseScalarInit(width int) {
	v, err := constexpr.Eval(p.Src, p.resolver())
	if err != nil {
		p.Err.Error(errs.IllegalType, err.Error())
		return
	}
	value := uint64(v.Const)
	if v.IsConst() {
		switch width {
		case 1:
			value &= 0xff
		case 2:
			value &= 0xffff
		case 4:
			value &= 0xffffffff
		}
	}
	p.Sink.DefineDataFromConstant(width, value)
}

// parseArrayInit handles the ARRAY row: a string-literal initializer
// for an array of char/uchar is a special case; everything else
// requires a brace-delimited, comma-separated element list. Array
// sizing (back-patch an incomplete dimension, zero-pad a short list,
// reject an over-long one) follows spec.md SS4.6.
func (p *Parser) parseArrayInit(typ ctype.Buffer) ctype.Buffer {
	elemType := ctype.Skip(typ)
	dim := ctype.DecodeSizeAt(typ[1:])
	elemSize, _ := ctype.SizeOf(elemType, p.Scope.Tags)

	elemCode := ctype.Head(elemType)
	isCharArray := elemCode == ctype.CodeChar || elemCode == ctype.CodeUChar

	if isCharArray && p.Src.Current().Kind == token.String {
		s := p.Src.Current().StrVal + "\x00"
		p.Src.Advance()
		h := p.Pool.Intern(s)
		p.Pool.Translate(h)
		text := p.Pool.Get(h)
		count := uint64(len(text))
		p.Sink.EmitBytes([]byte(text))
		p.Pool.Release(h)
		return p.finishArraySize(typ, dim, count, elemSize)
	}

	if p.Src.Current().Kind != token.LCurly {
		p.Err.Error(errs.IdentExpected, "{")
		return typ
	}
	p.Src.Advance()

	var count uint64
	for p.Src.Current().Kind != token.RCurly {
		p.ParseInit(elemType)
		count++
		if p.Src.Current().Kind != token.Comma {
			break
		}
		p.Src.Advance()
	}
	if p.Src.Current().Kind != token.RCurly {
		p.Err.Error(errs.IdentExpected, "}")
	} else {
		p.Src.Advance()
	}

	return p.finishArraySize(typ, dim, count, elemSize)
}

// finishArraySize implements spec.md SS4.6's "Array sizing" rule.
func (p *Parser) finishArraySize(typ ctype.Buffer, dim uint32, count uint64, elemSize uint64) ctype.Buffer {
	if dim == 0 {
		out := ctype.Copy(typ)
		ctype.EncodeSize(out[1:], uint32(count))
		return out
	}
	if count < uint64(dim) {
		p.Sink.EmitZeroBytes((uint64(dim) - count) * elemSize)
	} else if count > uint64(dim) {
		p.Err.Error(errs.TooManyInitializers, "")
	}
	return typ
}

// parseAggregateInit handles STRUCT/UNION: walk the field list in
// insertion order, initializing each field's type in turn; any fields
// left over after the closing '}' are zero-filled.
func (p *Parser) parseAggregateInit(typ ctype.Buffer) {
	idx := ctype.DecodeIndexAt(typ[1:])
	tag := p.Scope.Tags.Get(idx)
	if !tag.Complete() {
		p.Err.Error(errs.InitIncompleteType, tag.Name)
		return
	}

	if p.Src.Current().Kind != token.LCurly {
		p.Err.Error(errs.IdentExpected, "{")
		return
	}
	p.Src.Advance()

	fields := tag.Fields.Order()
	i := 0
	for p.Src.Current().Kind != token.RCurly && i < len(fields) {
		p.ParseInit(fields[i].Type)
		i++
		if p.Src.Current().Kind != token.Comma {
			break
		}
		p.Src.Advance()
	}
	if p.Src.Current().Kind != token.RCurly {
		p.Err.Error(errs.IdentExpected, "}")
	} else {
		p.Src.Advance()
	}

	for ; i < len(fields); i++ {
		if sz, ok := ctype.SizeOf(fields[i].Type, p.Scope.Tags); ok {
			p.Sink.EmitZeroBytes(sz)
		}
	}
}

// parseVoidInit implements the non-ANSI cc65 extension: an arbitrary
// comma-separated list of constant expressions inside '{}', each
// emitted according to its own natural width.
func (p *Parser) parseVoidInit() {
	if p.Src.Current().Kind != token.LCurly {
		p.Err.Error(errs.IdentExpected, "{")
		return
	}
	p.Src.Advance()

	for p.Src.Current().Kind != token.RCurly {
		v, err := constexpr.Eval(p.Src, p.resolver())
		if err != nil {
			p.Err.Error(errs.IllegalType, err.Error())
		} else {
			width := 2
			if sz, ok := ctype.SizeOf(v.Type, p.Scope.Tags); ok && sz != 0 {
				width = int(sz)
			}
			p.Sink.DefineDataFromConstant(width, uint64(v.Const))
		}
		if p.Src.Current().Kind != token.Comma {
			break
		}
		p.Src.Advance()
	}
	if p.Src.Current().Kind != token.RCurly {
		p.Err.Error(errs.IdentExpected, "}")
	} else {
		p.Src.Advance()
	}
}

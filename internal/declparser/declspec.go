package declparser

import (
	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
	"github.com/gmofishsauce/wut4/cc6502/internal/errs"
	"github.com/gmofishsauce/wut4/cc6502/internal/symtab"
	"github.com/gmofishsauce/wut4/cc6502/internal/token"
)

// ParseStorageClass accepts at most one storage-class keyword,
// installing defStorage and flagging FlagDefStorage when none is
// given (spec.md SS4.3).
func (p *Parser) ParseStorageClass(d *DeclSpec, defStorage symtab.StorageClass) {
	d.Flags &^= FlagDefStorage

	switch p.Src.Current().Kind {
	case token.KwExtern:
		d.StorageClass = symtab.ClassExtern | symtab.ClassStatic
		p.Src.Advance()
	case token.KwStatic:
		d.StorageClass = symtab.ClassStatic
		p.Src.Advance()
	case token.KwRegister:
		d.StorageClass = symtab.ClassRegister | symtab.ClassStatic
		p.Src.Advance()
	case token.KwAuto:
		d.StorageClass = symtab.ClassAuto
		p.Src.Advance()
	case token.KwTypedef:
		d.StorageClass = symtab.ClassTypedef
		p.Src.Advance()
	default:
		d.Flags |= FlagDefStorage
		d.StorageClass = defStorage
	}
}

func (p *Parser) skipQualifiers() {
	for p.Src.Current().Kind == token.KwConst || p.Src.Current().Kind == token.KwVolatile {
		p.Src.Advance()
	}
}

func (p *Parser) optionalInt() {
	if p.Src.Current().Kind == token.KwInt {
		p.Src.Advance()
	}
}

func (p *Parser) optionalSigned() {
	if p.Src.Current().Kind == token.KwSigned {
		p.Src.Advance()
	}
}

func simpleType(c ctype.Code) ctype.Buffer {
	return ctype.Buffer{byte(c), byte(ctype.CodeEnd)}
}

// applyDefaultType implements the "nothing recognized" row of spec.md
// SS4.3's table: error and synthesize int when no default is allowed
// (defaultType < 0), else install the caller's default and flag
// FlagDefType.
func (p *Parser) applyDefaultType(d *DeclSpec, defaultType int) {
	if defaultType < 0 {
		p.Err.Error(errs.TypeExpected, "")
		d.Type = simpleType(ctype.CodeInt)
		return
	}
	d.Flags |= FlagDefType
	d.Type = simpleType(ctype.Code(defaultType))
}

// ParseTypeSpec parses the type-specifier phase of a DeclSpec: an
// optional const/volatile run (discarded, spec.md SS9 open question),
// then the base type per spec.md SS4.3's table.
func (p *Parser) ParseTypeSpec(d *DeclSpec, defaultType int) {
	d.Flags &^= FlagDefType
	p.skipQualifiers()

	switch p.Src.Current().Kind {
	case token.KwVoid:
		p.Src.Advance()
		d.Type = simpleType(ctype.CodeVoid)

	case token.KwChar:
		p.Src.Advance()
		if p.Cfg.DefaultCharSigned {
			d.Type = simpleType(ctype.CodeChar)
		} else {
			d.Type = simpleType(ctype.CodeUChar)
		}

	case token.KwLong:
		p.Src.Advance()
		if p.Src.Current().Kind == token.KwUnsigned {
			p.Src.Advance()
			p.optionalInt()
			d.Type = simpleType(ctype.CodeULong)
		} else {
			p.optionalSigned()
			p.optionalInt()
			d.Type = simpleType(ctype.CodeLong)
		}

	case token.KwShort:
		p.Src.Advance()
		if p.Src.Current().Kind == token.KwUnsigned {
			p.Src.Advance()
			p.optionalInt()
			d.Type = simpleType(ctype.CodeUShort)
		} else {
			p.optionalSigned()
			p.optionalInt()
			d.Type = simpleType(ctype.CodeShort)
		}

	case token.KwInt:
		p.Src.Advance()
		d.Type = simpleType(ctype.CodeInt)

	case token.KwSigned:
		p.Src.Advance()
		switch p.Src.Current().Kind {
		case token.KwChar:
			p.Src.Advance()
			d.Type = simpleType(ctype.CodeChar)
		case token.KwShort:
			p.Src.Advance()
			p.optionalInt()
			d.Type = simpleType(ctype.CodeShort)
		case token.KwLong:
			p.Src.Advance()
			p.optionalInt()
			d.Type = simpleType(ctype.CodeLong)
		case token.KwInt:
			p.Src.Advance()
			d.Type = simpleType(ctype.CodeInt)
		default:
			d.Type = simpleType(ctype.CodeInt)
		}

	case token.KwUnsigned:
		p.Src.Advance()
		switch p.Src.Current().Kind {
		case token.KwChar:
			p.Src.Advance()
			d.Type = simpleType(ctype.CodeUChar)
		case token.KwShort:
			p.Src.Advance()
			p.optionalInt()
			d.Type = simpleType(ctype.CodeUShort)
		case token.KwLong:
			p.Src.Advance()
			p.optionalInt()
			d.Type = simpleType(ctype.CodeULong)
		case token.KwInt:
			p.Src.Advance()
			d.Type = simpleType(ctype.CodeUInt)
		default:
			d.Type = simpleType(ctype.CodeUInt)
		}

	case token.KwStruct, token.KwUnion:
		isUnion := p.Src.Current().Kind == token.KwUnion
		p.Src.Advance()
		var name string
		if p.Src.Current().Kind == token.Ident {
			name = p.Src.Current().Ident
			p.Src.Advance()
		} else if isUnion {
			name = p.anonName("union")
		} else {
			name = p.anonName("struct")
		}
		idx := p.parseStructOrUnionBody(name, isUnion)
		code := ctype.CodeStruct
		if isUnion {
			code = ctype.CodeUnion
		}
		buf := make(ctype.Buffer, 1+ctype.DecodeSize+1)
		buf[0] = byte(code)
		ctype.EncodeIndex(buf[1:], idx)
		buf[1+ctype.DecodeSize] = byte(ctype.CodeEnd)
		d.Type = buf

	case token.KwEnum:
		p.Src.Advance()
		if p.Src.Current().Kind != token.LCurly {
			if p.Src.Current().Kind != token.Ident {
				p.Err.Error(errs.IdentExpected, "")
			} else {
				p.Src.Advance()
			}
		}
		p.parseEnumBody()
		d.Type = simpleType(ctype.CodeInt)

	case token.Ident:
		if e, ok := p.Scope.Find(p.Src.Current().Ident); ok && e.IsTypeDef() {
			p.Src.Advance()
			d.Type = ctype.Copy(e.Type)
		} else {
			p.applyDefaultType(d, defaultType)
		}

	default:
		p.applyDefaultType(d, defaultType)
	}
}

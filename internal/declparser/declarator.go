package declparser

import (
	"github.com/gmofishsauce/wut4/cc6502/internal/constexpr"
	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
	"github.com/gmofishsauce/wut4/cc6502/internal/errs"
	"github.com/gmofishsauce/wut4/cc6502/internal/funcdesc"
	"github.com/gmofishsauce/wut4/cc6502/internal/symtab"
	"github.com/gmofishsauce/wut4/cc6502/internal/token"
)

// ParseDecl parses a declarator after spec has already been parsed,
// appends the base type, and checks the resulting type's size (spec.md
// SS4.4, Decl + the caller-side size check in ParseDecl/declare.c).
func (p *Parser) ParseDecl(spec *DeclSpec, d *Declaration, mode Mode) {
	d.Ident = ""
	d.Type = nil
	p.decl(d, mode)
	d.Type = append(d.Type, spec.Type...)

	if !ctype.IsFunc(d.Type) {
		if size, ok := ctype.SizeOf(d.Type, p.Scope.Tags); ok && ctype.TooLarge(size) {
			p.Err.Error(errs.IllegalSize, d.Ident)
		}
	}
}

// ParseAbstractType parses a type name with no declared identifier
// (cast/sizeof-style type, cc65's ParseType): a type specifier with no
// default followed by a NoIdent declarator.
func (p *Parser) ParseAbstractType() ctype.Buffer {
	var spec DeclSpec
	p.ParseTypeSpec(&spec, -1)
	var d Declaration
	p.decl(&d, NoIdent)
	return append(d.Type, spec.Type...)
}

// decl is the declarator recursion, grounded statement-for-statement
// on declare.c's Decl(): a leading run of '*' (pointer), an optional
// parenthesized grouping or fastcall marker, then a shared suffix loop
// of '[' and '(' (array dimension / function parameter list).
//
// The type buffer is built innermost-first via ordered appends during
// the call-stack unwind, the Go equivalent of cc65's pointer-advance
// idiom through the encode buffer.
func (p *Parser) decl(d *Declaration, mode Mode) {
	switch p.Src.Current().Kind {
	case token.Star:
		p.Src.Advance()
		p.decl(d, mode)
		d.Type = append(d.Type, byte(ctype.CodePtr))
		return

	case token.KwFastcall:
		p.Src.Advance()
		p.decl(d, mode)
		if ctype.IsFunc(d.Type) {
			idx := ctype.DecodeIndexAt(d.Type[1:])
			p.Funcs.Get(idx).Flags |= funcdesc.FlagFastcall
		} else {
			p.Err.Error(errs.IllegalModifier, "fastcall")
		}
		return

	case token.LParen:
		p.Src.Advance()
		p.decl(d, mode)
		if p.Src.Current().Kind != token.RParen {
			p.Err.Error(errs.IdentExpected, "")
		} else {
			p.Src.Advance()
		}

	default:
		switch mode {
		case NeedIdent:
			if p.Src.Current().Kind != token.Ident {
				p.Err.Error(errs.IdentExpected, "")
				d.Ident = ""
			} else {
				d.Ident = p.Src.Current().Ident
				p.Src.Advance()
			}
		case AcceptIdent:
			if p.Src.Current().Kind == token.Ident {
				d.Ident = p.Src.Current().Ident
				p.Src.Advance()
			}
		case NoIdent:
			// no identifier consumed
		}
	}

	for {
		switch p.Src.Current().Kind {
		case token.LBrack:
			p.Src.Advance()
			var dim uint32
			if p.Src.Current().Kind != token.RBrack {
				v, err := constexpr.Eval(p.Src, p.enumResolver())
				if err != nil {
					p.Err.Error(errs.IllegalType, err.Error())
				} else {
					dim = uint32(v.Const)
				}
			}
			if p.Src.Current().Kind != token.RBrack {
				p.Err.Error(errs.IdentExpected, "]")
			} else {
				p.Src.Advance()
			}
			buf := make(ctype.Buffer, 1+ctype.DecodeSize)
			buf[0] = byte(ctype.CodeArray)
			ctype.EncodeSize(buf[1:], dim)
			d.Type = append(d.Type, buf...)

		case token.LParen:
			p.Src.Advance()
			idx := p.parseFuncDecl()
			buf := make(ctype.Buffer, 1+ctype.DecodeSize)
			buf[0] = byte(ctype.CodeFunc)
			ctype.EncodeIndex(buf[1:], idx)
			d.Type = append(d.Type, buf...)

		default:
			return
		}
	}
}

// parseFuncDecl parses a parameter list starting just after the '('
// that a suffix-loop iteration already consumed, grounded on
// declare.c's ParseFuncDecl: allocate a descriptor, enter a parameter
// lexical level, parse zero or more parameters (decaying array
// parameters to pointers per spec.md's design note), then on the
// closing ')' assign offsets by walking the parameter table in
// reverse insertion order and remember the captured table.
func (p *Parser) parseFuncDecl() uint32 {
	desc, idx := p.Funcs.New()
	p.Scope.EnterFunctionLevel()

	if p.Src.Current().Kind == token.RParen {
		p.Src.Advance()
		desc.Flags |= funcdesc.FlagEmpty | funcdesc.FlagEllipsis
		p.Funcs.Remember(idx, p.Scope.RememberLevel())
		return idx
	}

	if p.Src.Current().Kind == token.KwVoid && p.Src.Peek().Kind == token.RParen {
		p.Src.Advance()
		p.Src.Advance()
		desc.Flags |= funcdesc.FlagVoidParam
		p.Funcs.Remember(idx, p.Scope.RememberLevel())
		return idx
	}

	unnamed := 0
	for {
		if p.Src.Current().Kind == token.Ellipsis {
			p.Src.Advance()
			desc.Flags |= funcdesc.FlagEllipsis
			break
		}

		var spec DeclSpec
		p.ParseDeclSpec(&spec, symtab.ClassAuto, int(ctype.CodeInt))
		if spec.StorageClass != symtab.ClassAuto && spec.StorageClass != (symtab.ClassRegister|symtab.ClassStatic) {
			p.Err.Error(errs.IllegalStorageClass, "")
		}
		var pd Declaration
		p.decl(&pd, AcceptIdent)
		typ := append(pd.Type, spec.Type...)

		paramClass := symtab.ClassAuto | symtab.ClassParam | symtab.ClassDef
		if pd.Ident == "" {
			pd.Ident = p.anonName("param")
			unnamed++
			paramClass &^= symtab.ClassDef
		}

		if ctype.IsArray(typ) {
			typ = append(ctype.Buffer{byte(ctype.CodePtr)}, ctype.Skip(typ)...)
		}

		size, ok := ctype.SizeOf(typ, p.Scope.Tags)
		if !ok {
			size = 2
		}
		desc.ParamCount++
		desc.ParamSize += size
		p.Scope.AddLocal(pd.Ident, typ, paramClass, 0)

		if p.Src.Current().Kind != token.Comma {
			break
		}
		p.Src.Advance()
	}

	if p.Src.Current().Kind != token.RParen {
		p.Err.Error(errs.IdentExpected, ")")
	} else {
		p.Src.Advance()
	}

	if unnamed > 0 && p.Cfg.ANSI && p.Src.Current().Kind == token.LCurly {
		p.Err.Error(errs.MissingParamName, "")
	}

	params := p.Scope.GetSymTab()
	offset := 0
	if desc.IsEllipsis() {
		offset = 1
	}
	for e := params.Tail(); e != nil; e = symtab.Prev(e) {
		e.Offset = offset
		if sz, ok := ctype.SizeOf(e.Type, p.Scope.Tags); ok {
			offset += int(sz)
		} else {
			offset += 2
		}
	}

	p.Funcs.Remember(idx, p.Scope.RememberLevel())
	return idx
}

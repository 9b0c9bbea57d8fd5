package declparser

import (
	"github.com/gmofishsauce/wut4/cc6502/internal/constexpr"
	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
	"github.com/gmofishsauce/wut4/cc6502/internal/errs"
	"github.com/gmofishsauce/wut4/cc6502/internal/symtab"
	"github.com/gmofishsauce/wut4/cc6502/internal/token"
)

// enumResolver resolves an identifier appearing in a constant
// expression to an already-declared enum constant's value, the
// collaborator constexpr.Eval needs to handle "= OtherConst" and
// array dimensions named by an enum (spec.md SS4.5/SS6).
func (p *Parser) enumResolver() constexpr.Resolver {
	return func(name string) (int64, bool) {
		e, ok := p.Scope.Find(name)
		if !ok || !e.IsEnum {
			return 0, false
		}
		return int64(e.EnumValue), true
	}
}

// parseEnumBody parses the optional "{ ident [= const-expr], ... }"
// body following "enum [tag]", grounded on declare.c's ParseEnumDecl.
// A bare forward reference with no '{' is a no-op: the caller in
// ParseTypeSpec has already consumed the tag name. Enum tag names are
// not recorded in the tag namespace.
func (p *Parser) parseEnumBody() {
	if p.Src.Current().Kind != token.LCurly {
		return
	}
	p.Src.Advance()

	if p.Src.Current().Kind == token.RCurly {
		p.Src.Advance()
		return
	}

	var next int32
	for {
		if p.Src.Current().Kind != token.Ident {
			p.Err.Error(errs.IdentExpected, "")
			break
		}
		name := p.Src.Current().Ident
		p.Src.Advance()

		value := next
		if p.Src.Current().Kind == token.Assign {
			p.Src.Advance()
			v, err := constexpr.Eval(p.Src, p.enumResolver())
			if err != nil {
				p.Err.Error(errs.IllegalType, err.Error())
			} else {
				value = int32(v.Const)
			}
		}
		p.Scope.AddEnum(name, value)
		next = value + 1

		if p.Src.Current().Kind != token.Comma {
			break
		}
		p.Src.Advance()
		if p.Src.Current().Kind == token.RCurly {
			break
		}
	}

	if p.Src.Current().Kind != token.RCurly {
		p.Err.Error(errs.IdentExpected, "}")
	} else {
		p.Src.Advance()
	}
}

// parseStructOrUnionBody parses the optional "{ member-decl... }" body
// following "struct/union [tag]" and returns the tag's TagStore index,
// grounded on declare.c's ParseStructDecl. A forward reference (no
// following '{') reuses an already-declared tag of the same name
// visible from this scope (this level or any enclosing one), or
// creates a new incomplete one in this level. A full body always
// installs a fresh forward tag first (so self-referential pointer
// members resolve), then completes it on the closing '}'.
func (p *Parser) parseStructOrUnionBody(name string, isUnion bool) uint32 {
	if p.Src.Current().Kind != token.LCurly {
		if idx, ok := p.Scope.Current.FindTag(name); ok {
			return idx
		}
		idx := p.Scope.Tags.NewForward(name, isUnion)
		p.Scope.Current.DeclareTag(name, idx)
		return idx
	}

	idx := p.Scope.Tags.NewForward(name, isUnion)
	p.Scope.Current.DeclareTag(name, idx)
	p.Src.Advance()

	p.Scope.EnterStructLevel()

	var size uint64
	for p.Src.Current().Kind != token.RCurly {
		var spec DeclSpec
		p.ParseDeclSpec(&spec, symtab.ClassAuto, -1)

		for {
			var d Declaration
			p.decl(&d, NeedIdent)
			typ := append(d.Type, spec.Type...)

			fieldSize, ok := ctype.SizeOf(typ, p.Scope.Tags)
			if !ok {
				p.Err.Error(errs.InitIncompleteType, d.Ident)
			}

			var offset uint64
			if isUnion {
				offset = 0
				if fieldSize > size {
					size = fieldSize
				}
			} else {
				offset = size
				size += fieldSize
			}

			p.Scope.AddLocal(d.Ident, typ, symtab.ClassSfld, int(offset))

			if p.Src.Current().Kind != token.Comma {
				break
			}
			p.Src.Advance()
		}

		if p.Src.Current().Kind != token.Semi {
			p.Err.Error(errs.IdentExpected, ";")
		} else {
			p.Src.Advance()
		}
	}
	p.Src.Advance() // '}'

	fields := p.Scope.LeaveStructLevel()
	p.Scope.Tags.Complete(idx, size, fields)
	return idx
}

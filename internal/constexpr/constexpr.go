// Package constexpr is the constant-expression evaluator external
// collaborator (spec.md SS6): constexpr(&lval) fills an expression
// value record with e_const, e_flags (E_MCTYPE/E_TCONST), e_tptr.
// Grammar and precedence climbing are grounded on asm/expr.go's
// recursive evalExpr.
//
// Full C expression semantics (casts, all operators, non-constant
// expressions) are out of spec.md's scope; this evaluator covers the
// constant arithmetic the declaration/initializer core actually drives
// constexpr for: array dimensions, enum values, and scalar
// initializers.
package constexpr

import (
	"fmt"

	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
	"github.com/gmofishsauce/wut4/cc6502/internal/token"
)

// Flags mirrors e_flags' E_MCTYPE bit field; only E_TCONST is modeled.
type Flags uint8

const FlagConst Flags = 1 << 0 // E_TCONST: the value is a compile-time constant

// Value is an expression value record (expent in cc65).
type Value struct {
	Const int64
	Flags Flags
	Type  ctype.Buffer
}

// IsConst reports whether the value is a compile-time constant
// (the (e_flags & E_MCTYPE) == E_TCONST test in declare.c).
func (v Value) IsConst() bool {
	return v.Flags&FlagConst != 0
}

var intType = ctype.Buffer{byte(ctype.CodeInt), byte(ctype.CodeEnd)}

// Resolver looks up an identifier's constant value (used for named
// enum constants appearing inside a constant expression).
type Resolver func(name string) (int64, bool)

// Eval parses and evaluates a constant expression from src, advancing
// past it. resolve may be nil if no identifiers are legal in context.
func Eval(src token.Source, resolve Resolver) (Value, error) {
	return evalAddSub(src, resolve)
}

func evalAddSub(src token.Source, resolve Resolver) (Value, error) {
	left, err := evalMulDiv(src, resolve)
	if err != nil {
		return Value{}, err
	}
	for {
		t := src.Current()
		if t.Kind != token.Plus && t.Kind != token.Minus {
			return left, nil
		}
		src.Advance()
		right, err := evalMulDiv(src, resolve)
		if err != nil {
			return Value{}, err
		}
		if t.Kind == token.Plus {
			left.Const += right.Const
		} else {
			left.Const -= right.Const
		}
	}
}

func evalMulDiv(src token.Source, resolve Resolver) (Value, error) {
	left, err := evalUnary(src, resolve)
	if err != nil {
		return Value{}, err
	}
	for {
		t := src.Current()
		if t.Kind != token.Star && t.Kind != token.Slash {
			return left, nil
		}
		src.Advance()
		right, err := evalUnary(src, resolve)
		if err != nil {
			return Value{}, err
		}
		if t.Kind == token.Star {
			left.Const *= right.Const
		} else {
			if right.Const == 0 {
				return Value{}, fmt.Errorf("division by zero in constant expression")
			}
			left.Const /= right.Const
		}
	}
}

func evalUnary(src token.Source, resolve Resolver) (Value, error) {
	t := src.Current()
	if t.Kind == token.Minus {
		src.Advance()
		v, err := evalUnary(src, resolve)
		if err != nil {
			return Value{}, err
		}
		v.Const = -v.Const
		return v, nil
	}
	if t.Kind == token.Plus {
		src.Advance()
		return evalUnary(src, resolve)
	}
	return evalPrimary(src, resolve)
}

func evalPrimary(src token.Source, resolve Resolver) (Value, error) {
	t := src.Current()
	switch t.Kind {
	case token.Number:
		src.Advance()
		return Value{Const: t.IntVal, Flags: FlagConst, Type: intType}, nil
	case token.LParen:
		src.Advance()
		v, err := evalAddSub(src, resolve)
		if err != nil {
			return Value{}, err
		}
		if src.Current().Kind != token.RParen {
			return Value{}, fmt.Errorf("expected ) in constant expression")
		}
		src.Advance()
		return v, nil
	case token.Ident:
		if resolve != nil {
			if val, ok := resolve(t.Ident); ok {
				src.Advance()
				return Value{Const: val, Flags: FlagConst, Type: intType}, nil
			}
		}
		return Value{}, fmt.Errorf("undefined identifier %q in constant expression", t.Ident)
	default:
		return Value{}, fmt.Errorf("unexpected token %s in constant expression", t.Kind)
	}
}

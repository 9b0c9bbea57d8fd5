// Package declparser implements the Declaration Specifier Parser, the
// Declarator Parser, and the Aggregate Declaration Processors
// (spec.md SS4.3, SS4.4, SS4.5): the recursive-descent core that turns
// a C declaration into an encoded type and a fully-typed symbol-table
// binding.
//
// Control flow is grounded directly on declare.c's Decl/ParseDeclSpec/
// ParseTypeSpec/ParseFuncDecl/ParseStructDecl/ParseEnumDecl, translated
// statement by statement; only the representation of embedded pointers
// (replaced by stable table indices, per spec.md SS9) differs.
package declparser

import (
	"github.com/gmofishsauce/wut4/cc6502/internal/config"
	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
	"github.com/gmofishsauce/wut4/cc6502/internal/errs"
	"github.com/gmofishsauce/wut4/cc6502/internal/funcdesc"
	"github.com/gmofishsauce/wut4/cc6502/internal/symtab"
	"github.com/gmofishsauce/wut4/cc6502/internal/token"
)

// Mode governs identifier handling in a declarator (spec.md SS4.4).
type Mode int

const (
	NeedIdent Mode = iota
	NoIdent
	AcceptIdent
)

// Flags records which parts of a DeclSpec were defaulted rather than
// explicit (spec.md SS3).
type Flags uint8

const (
	FlagDefStorage Flags = 1 << iota
	FlagDefType
)

// DeclSpec is the result of parsing a declaration's prefix: storage
// class plus base type (spec.md SS3).
type DeclSpec struct {
	StorageClass symtab.StorageClass
	Type         ctype.Buffer
	Flags        Flags
}

// Declaration is the result of parsing a declarator: an identifier
// name and its fully encoded type (spec.md SS3).
type Declaration struct {
	Ident string
	Type  ctype.Buffer
}

// Parser holds the external collaborators the declaration/type/
// initializer core consumes (spec.md SS6): a token source, the
// current symbol-table scope, the function-descriptor store, the
// error reporter, and the compiler's mode configuration.
type Parser struct {
	Src   token.Source
	Scope *symtab.Scope
	Funcs *funcdesc.Store
	Err   *errs.Reporter
	Cfg   config.Config

	anonCounter int
}

// New creates a Parser over the given collaborators.
func New(src token.Source, scope *symtab.Scope, funcs *funcdesc.Store, reporter *errs.Reporter, cfg config.Config) *Parser {
	return &Parser{Src: src, Scope: scope, Funcs: funcs, Err: reporter, Cfg: cfg}
}

// ParseDeclSpec parses a full declaration specification: storage class
// then type specifier (spec.md SS4.3, ParseDeclSpec in declare.c).
func (p *Parser) ParseDeclSpec(d *DeclSpec, defStorage symtab.StorageClass, defType int) {
	*d = DeclSpec{}
	p.ParseStorageClass(d, defStorage)
	p.ParseTypeSpec(d, defType)
}

// Package funcdesc is the heap-owned function descriptor store
// (spec.md SS4.2), reachable only through the table index embedded in
// a Func type code. Descriptors have program lifetime: the Store never
// compacts or frees, matching spec.md SS3's ownership rule and
// lang/yparse/symtab.go's FuncScope/Symbol split (param list captured
// once, read many times by later passes).
package funcdesc

import "github.com/gmofishsauce/wut4/cc6502/internal/symtab"

// Flags is the descriptor's flag set (spec.md SS3).
type Flags uint8

const (
	FlagEmpty Flags = 1 << iota
	FlagVoidParam
	FlagEllipsis
	FlagFastcall
)

// Desc is one function descriptor.
type Desc struct {
	ParamCount int
	ParamSize  uint64
	Flags      Flags
	Params     *symtab.Table // captured parameter scope, set by Remember
}

// IsEllipsis, IsVoidParam, IsFastcall are convenience predicates.
func (d *Desc) IsEllipsis() bool  { return d.Flags&FlagEllipsis != 0 }
func (d *Desc) IsVoidParam() bool { return d.Flags&FlagVoidParam != 0 }
func (d *Desc) IsFastcall() bool  { return d.Flags&FlagFastcall != 0 }

// Store is the append-only, program-lifetime table of descriptors,
// addressed by the index embedded in Func type codes.
type Store struct {
	descs []*Desc
}

// New allocates a zeroed descriptor and returns it together with its
// stable index (NewFuncDesc, spec.md SS4.2).
func (s *Store) New() (*Desc, uint32) {
	d := &Desc{}
	idx := uint32(len(s.descs))
	s.descs = append(s.descs, d)
	return d, idx
}

// Get returns the descriptor at idx.
func (s *Store) Get(idx uint32) *Desc {
	return s.descs[idx]
}

// Remember captures the parameter symbol table into the descriptor
// when the caller leaves the parameter lexical level
// (RememberFunctionLevel, spec.md SS4.2).
func (s *Store) Remember(idx uint32, params *symtab.Table) {
	s.descs[idx].Params = params
}

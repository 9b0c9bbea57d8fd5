// Package symtab is the scoped symbol table external collaborator
// (spec.md SS6): lexical levels, ordinary-identifier lookup, and a
// struct/union tag table addressed by stable index (the payload
// embedded in Struct/Union type codes, per ctype's design note).
//
// Layout is grounded on yapl-1/sym.go's linear symbol table and
// lang/yparse/symtab.go's scoped Globals/locals split, generalized to
// arbitrary nesting the way cc65's EnterStructLevel/EnterFunctionLevel
// does.
package symtab

import "github.com/gmofishsauce/wut4/cc6502/internal/ctype"

// StorageClass is a bitset; ParseStorageClass accepts at most one
// storage-class keyword (extern and register also set ClassStatic),
// and the synthetic bits (Param, Def, Sfld) are overlaid afterward
// (spec.md SS3).
type StorageClass uint16

const (
	ClassExtern StorageClass = 1 << iota
	ClassStatic
	ClassRegister
	ClassAuto
	ClassTypedef
	ClassParam // synthetic: this symbol is a function parameter
	ClassDef   // synthetic: this symbol has a definition (vs. a bare declaration)
	ClassSfld  // synthetic: this symbol is a struct/union field
)

// Entry is one symbol: a variable, function, typedef name, parameter,
// struct/union field, or enum constant. Tag entries (struct/union
// names) are NOT Entry values; they live in the separate TagStore
// below, per spec.md's "tag names share a namespace separate from
// ordinary identifiers."
type Entry struct {
	Name      string
	Type      ctype.Buffer
	Storage   StorageClass
	Offset    int
	IsEnum    bool
	EnumValue int32

	prev *Entry // previous symbol inserted into the owning Table, for reverse-order walks
}

// IsTypeDef reports whether e names a typedef (spec.md SS6 is-type-def).
func (e *Entry) IsTypeDef() bool {
	return e != nil && e.Storage&ClassTypedef != 0
}

// Table is one lexical level: ordinary identifiers plus the tag names
// visible at this level (structs/unions/enums share one tag
// namespace). Lookups that miss fall through to the parent level.
type Table struct {
	parent   *Table
	idents   map[string]*Entry
	tagNames map[string]uint32
	order    []*Entry
	tail     *Entry // most recently inserted Entry, for SymTail-style reverse walks
}

// NewTable creates a lexical level nested inside parent (nil for the
// outermost/global level).
func NewTable(parent *Table) *Table {
	return &Table{
		parent:   parent,
		idents:   make(map[string]*Entry),
		tagNames: make(map[string]uint32),
	}
}

// Insert adds e to this level, chaining it after the previously
// inserted symbol so reverse-insertion-order walks (parameter offset
// assignment, spec.md SS4.4) can be done without a second pass.
func (t *Table) Insert(e *Entry) {
	e.prev = t.tail
	t.tail = e
	t.idents[e.Name] = e
	t.order = append(t.order, e)
}

// Find looks up name in this level and its ancestors.
func (t *Table) Find(name string) (*Entry, bool) {
	for s := t; s != nil; s = s.parent {
		if e, ok := s.idents[name]; ok {
			return e, true
		}
	}
	return nil, false
}

// FindLocal looks up name only in this level.
func (t *Table) FindLocal(name string) (*Entry, bool) {
	e, ok := t.idents[name]
	return e, ok
}

// FindTag looks up a struct/union/enum tag name in this level and its
// ancestors, returning its TagStore index.
func (t *Table) FindTag(name string) (uint32, bool) {
	for s := t; s != nil; s = s.parent {
		if idx, ok := s.tagNames[name]; ok {
			return idx, true
		}
	}
	return 0, false
}

// DeclareTag binds name to a TagStore index in this level.
func (t *Table) DeclareTag(name string, idx uint32) {
	t.tagNames[name] = idx
}

// Order returns the symbols of this level in insertion order (field
// lists walk this way for struct/union initializers, spec.md SS4.6).
func (t *Table) Order() []*Entry {
	return t.order
}

// Tail returns the most recently inserted symbol, or nil. Prev walks
// the chain from there back to the first-inserted symbol.
func (t *Table) Tail() *Entry {
	return t.tail
}

// Prev returns the symbol inserted immediately before e in the same
// table (nil if e was first). Used for the reverse-insertion-order
// parameter offset walk in spec.md SS4.4.
func Prev(e *Entry) *Entry {
	return e.prev
}

// Tag is a struct/union tag: a size and a captured field table. A
// forward declaration has Size 0 and Fields nil (incomplete, per
// spec.md SS3).
type Tag struct {
	Name   string
	Union  bool
	Size   uint64
	Fields *Table
}

// Complete reports whether the tag has been given a field table.
func (t *Tag) Complete() bool {
	return t.Fields != nil
}

// TagStore is the append-only, program-lifetime store of struct/union
// tags, addressed by the stable index embedded in Struct/Union type
// codes (ctype's design note, spec.md SS9).
type TagStore struct {
	tags []*Tag
}

// NewForward inserts an incomplete (size 0, no fields) tag and returns
// its index.
func (s *TagStore) NewForward(name string, union bool) uint32 {
	idx := uint32(len(s.tags))
	s.tags = append(s.tags, &Tag{Name: name, Union: union})
	return idx
}

// Complete fills in size and fields for a previously forward-declared
// tag, matching cc65's "replace the forward tag's size and
// field-table with the completed values" (spec.md SS4.5).
func (s *TagStore) Complete(idx uint32, size uint64, fields *Table) {
	s.tags[idx].Size = size
	s.tags[idx].Fields = fields
}

// Get returns the tag at idx.
func (s *TagStore) Get(idx uint32) *Tag {
	return s.tags[idx]
}

// TagSize implements ctype.TagResolver.
func (s *TagStore) TagSize(idx uint32) (uint64, bool) {
	t := s.tags[idx]
	return t.Size, t.Fields != nil
}

// Scope bundles the tag store with the current lexical-level stack,
// matching the external symbol-table interface spec.md SS6 names
// (FindSym, FindStructSym, AddEnumSym, AddLocalSym,
// EnterStructLevel/LeaveStructLevel, EnterFunctionLevel, GetSymTab).
// There is no AddStructSym method: tags are created and completed
// through Tags (NewForward, Complete).
type Scope struct {
	Tags    *TagStore
	Global  *Table
	Current *Table
}

// NewScope creates a Scope with an empty global level.
func NewScope() *Scope {
	g := NewTable(nil)
	return &Scope{Tags: &TagStore{}, Global: g, Current: g}
}

// EnterStructLevel / EnterFunctionLevel push a new lexical level.
func (s *Scope) EnterStructLevel()   { s.Current = NewTable(s.Current) }
func (s *Scope) EnterFunctionLevel() { s.Current = NewTable(s.Current) }

// LeaveStructLevel pops the current lexical level and returns its
// table (the captured field list).
func (s *Scope) LeaveStructLevel() *Table {
	t := s.Current
	s.Current = t.parent
	return t
}

// RememberLevel pops the current lexical level without discarding it,
// the symmetric case to LeaveStructLevel used when a function
// descriptor (not a struct body) wants to keep the parameter table for
// later body parsing (RememberFunctionLevel, spec.md SS4.2).
func (s *Scope) RememberLevel() *Table {
	t := s.Current
	s.Current = t.parent
	return t
}

// GetSymTab returns the current lexical level.
func (s *Scope) GetSymTab() *Table {
	return s.Current
}

// Find looks up an ordinary identifier from the current level outward.
func (s *Scope) Find(name string) (*Entry, bool) {
	return s.Current.Find(name)
}

// FindStruct looks up a tag name from the current level outward.
func (s *Scope) FindStruct(name string) (*Tag, uint32, bool) {
	idx, ok := s.Current.FindTag(name)
	if !ok {
		return nil, 0, false
	}
	return s.Tags.Get(idx), idx, true
}

// AddLocal inserts an ordinary symbol into the current level.
func (s *Scope) AddLocal(name string, typ ctype.Buffer, storage StorageClass, offset int) *Entry {
	e := &Entry{Name: name, Type: typ, Storage: storage, Offset: offset}
	s.Current.Insert(e)
	return e
}

// AddEnum inserts an enum constant into the current level.
func (s *Scope) AddEnum(name string, value int32) *Entry {
	e := &Entry{Name: name, IsEnum: true, EnumValue: value}
	s.Current.Insert(e)
	return e
}

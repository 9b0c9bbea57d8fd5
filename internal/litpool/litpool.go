// Package litpool is the string-literal intern pool external
// collaborator (spec.md SS6): GetLiteral/TranslateLiteralPool/
// ResetLiteralOffs. Strings are interned once per occurrence and
// released after the initializer that consumed them emits its bytes,
// mirroring the Strtab discipline in yapl-1/sym.go.
package litpool

// Handle identifies one interned string constant.
type Handle int

// Pool interns string literals for the duration of an initializer
// parse.
type Pool struct {
	entries   map[Handle]string
	next      Handle
	translate func(string) string
}

// New creates a Pool. translate implements the target charset
// conversion (TranslateLiteralPool); nil means "no translation"
// (the host charset already matches the target's).
func New(translate func(string) string) *Pool {
	return &Pool{
		entries:   make(map[Handle]string),
		next:      1,
		translate: translate,
	}
}

// Intern adds s (already NUL-terminated by the caller if it is a C
// string constant) to the pool and returns its handle.
func (p *Pool) Intern(s string) Handle {
	h := p.next
	p.next++
	p.entries[h] = s
	return h
}

// Get returns the interned text for a handle.
func (p *Pool) Get(h Handle) string {
	return p.entries[h]
}

// Translate rewrites the interned string in place into the target
// charset.
func (p *Pool) Translate(h Handle) {
	if p.translate == nil {
		return
	}
	if s, ok := p.entries[h]; ok {
		p.entries[h] = p.translate(s)
	}
}

// Release removes the interned entry, matching ResetLiteralOffs'
// "give the space back" contract.
func (p *Pool) Release(h Handle) {
	delete(p.entries, h)
}

package declparser

import "fmt"

// anonName generates a synthesized identifier for an anonymous
// struct/union tag or an unnamed function parameter. The angle
// brackets make the name unreachable from any token the lexer can
// ever produce, satisfying spec.md SS4.3's "cannot collide with any
// user identifier" requirement.
func (p *Parser) anonName(prefix string) string {
	p.anonCounter++
	return fmt.Sprintf("<%s#%d>", prefix, p.anonCounter)
}

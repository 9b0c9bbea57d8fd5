// Package lexer is a minimal real tokenizer for the C declaration
// subset this front end parses: storage classes, qualifiers, base
// type keywords, struct/union/enum/void/fastcall, identifiers,
// decimal integer literals, string constants, and the punctuation
// spec.md SS6 lists. It implements token.Source.
//
// Structure (current/lookahead token pair refreshed by Advance, bytes
// read from an in-memory buffer) is grounded on lang/ylex/lexer.go and
// lang/yparse/token.go's Peek/Next discipline.
package lexer

import (
	"strings"

	"github.com/gmofishsauce/wut4/cc6502/internal/token"
)

var keywords = map[string]token.Kind{
	"extern":   token.KwExtern,
	"static":   token.KwStatic,
	"register": token.KwRegister,
	"auto":     token.KwAuto,
	"typedef":  token.KwTypedef,
	"const":    token.KwConst,
	"volatile": token.KwVolatile,
	"void":     token.KwVoid,
	"char":     token.KwChar,
	"short":    token.KwShort,
	"int":      token.KwInt,
	"long":     token.KwLong,
	"signed":   token.KwSigned,
	"unsigned": token.KwUnsigned,
	"struct":   token.KwStruct,
	"union":    token.KwUnion,
	"enum":     token.KwEnum,
	"fastcall": token.KwFastcall,
}

// Lexer tokenizes a string in memory, keeping one token of lookahead.
type Lexer struct {
	src  []byte
	pos  int
	line int
	cur  token.Token
	next token.Token
}

// New creates a Lexer over src and primes the current/lookahead pair.
func New(src string) *Lexer {
	l := &Lexer{src: []byte(src), line: 1}
	l.cur = l.scan()
	l.next = l.scan()
	return l
}

// Current returns the current token without consuming it.
func (l *Lexer) Current() token.Token { return l.cur }

// Peek returns the lookahead token without consuming it.
func (l *Lexer) Peek() token.Token { return l.next }

// Advance consumes the current token, promoting the lookahead.
func (l *Lexer) Advance() {
	l.cur = l.next
	l.next = l.scan()
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) byteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		switch {
		case b == '\n':
			l.line++
			l.pos++
		case b == ' ' || b == '\t' || b == '\r':
			l.pos++
		case b == '/' && l.byteAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case b == '/' && l.byteAt(1) == '*':
			l.pos += 2
			for l.pos < len(l.src) && !(l.src[l.pos] == '*' && l.byteAt(1) == '/') {
				if l.src[l.pos] == '\n' {
					l.line++
				}
				l.pos++
			}
			l.pos += 2
		default:
			return
		}
	}
}

func (l *Lexer) scan() token.Token {
	l.skipWhitespaceAndComments()
	line := l.line
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Line: line}
	}
	b := l.src[l.pos]

	if isIdentStart(b) {
		start := l.pos
		for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
			l.pos++
		}
		text := string(l.src[start:l.pos])
		if kw, ok := keywords[text]; ok {
			return token.Token{Kind: kw, Ident: text, Line: line}
		}
		return token.Token{Kind: token.Ident, Ident: text, Line: line}
	}

	if isDigit(b) {
		start := l.pos
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		text := string(l.src[start:l.pos])
		var v int64
		for _, c := range text {
			v = v*10 + int64(c-'0')
		}
		return token.Token{Kind: token.Number, IntVal: v, Line: line}
	}

	if b == '"' {
		l.pos++
		var sb strings.Builder
		for l.pos < len(l.src) && l.src[l.pos] != '"' {
			c := l.src[l.pos]
			if c == '\\' && l.pos+1 < len(l.src) {
				l.pos++
				sb.WriteByte(unescape(l.src[l.pos]))
			} else {
				sb.WriteByte(c)
			}
			l.pos++
		}
		l.pos++ // closing quote
		return token.Token{Kind: token.String, StrVal: sb.String(), Line: line}
	}

	if b == '.' && l.byteAt(1) == '.' && l.byteAt(2) == '.' {
		l.pos += 3
		return token.Token{Kind: token.Ellipsis, Line: line}
	}

	l.pos++
	switch b {
	case '*':
		return token.Token{Kind: token.Star, Line: line}
	case '(':
		return token.Token{Kind: token.LParen, Line: line}
	case ')':
		return token.Token{Kind: token.RParen, Line: line}
	case '[':
		return token.Token{Kind: token.LBrack, Line: line}
	case ']':
		return token.Token{Kind: token.RBrack, Line: line}
	case '{':
		return token.Token{Kind: token.LCurly, Line: line}
	case '}':
		return token.Token{Kind: token.RCurly, Line: line}
	case ',':
		return token.Token{Kind: token.Comma, Line: line}
	case ';':
		return token.Token{Kind: token.Semi, Line: line}
	case '=':
		return token.Token{Kind: token.Assign, Line: line}
	case '+':
		return token.Token{Kind: token.Plus, Line: line}
	case '-':
		return token.Token{Kind: token.Minus, Line: line}
	case '/':
		return token.Token{Kind: token.Slash, Line: line}
	default:
		// Unknown character: surface it as EOF-equivalent so callers
		// relying on resync loops terminate instead of spinning.
		return token.Token{Kind: token.EOF, Line: line}
	}
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case '0':
		return 0
	case '\\':
		return '\\'
	case '"':
		return '"'
	default:
		return c
	}
}

// Line returns the current line number, for Reporter.LineFn.
func (l *Lexer) Line() int {
	return l.cur.Line
}

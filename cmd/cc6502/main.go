// cc6502 drives the declaration, type, and initializer front end over
// a C source file, printing diagnostics and a final count of emitted
// data bytes and errors. Function
// bodies and executable statements are outside this front end's scope
// (spec.md's Non-goals); a body following a declarator is skipped as a
// balanced brace run.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gmofishsauce/wut4/cc6502/internal/codegen"
	"github.com/gmofishsauce/wut4/cc6502/internal/config"
	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
	"github.com/gmofishsauce/wut4/cc6502/internal/declparser"
	"github.com/gmofishsauce/wut4/cc6502/internal/errs"
	"github.com/gmofishsauce/wut4/cc6502/internal/funcdesc"
	"github.com/gmofishsauce/wut4/cc6502/internal/initializer"
	"github.com/gmofishsauce/wut4/cc6502/internal/lexer"
	"github.com/gmofishsauce/wut4/cc6502/internal/litpool"
	"github.com/gmofishsauce/wut4/cc6502/internal/symtab"
	"github.com/gmofishsauce/wut4/cc6502/internal/token"
)

func main() {
	ansi := flag.Bool("ansi", false, "enforce strict ANSI mode")
	unsignedChar := flag.Bool("unsigned-char", false, "make bare char unsigned by default")
	flag.Parse()

	var src []byte
	var err error
	if args := flag.Args(); len(args) > 0 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.ANSI = *ansi
	cfg.DefaultCharSigned = !*unsignedChar

	l := lexer.New(string(src))
	rep := errs.NewReporter(os.Stderr, l.Line)
	scope := symtab.NewScope()
	funcs := &funcdesc.Store{}
	sink := codegen.NewSink()
	pool := litpool.New(nil)

	dp := declparser.New(l, scope, funcs, rep, cfg)
	ip := initializer.New(l, scope, sink, pool, rep, cfg)

	for l.Current().Kind != token.EOF {
		parseTopLevel(dp, ip, l, rep, scope)
	}

	fmt.Fprintf(os.Stdout, "%d bytes of data emitted, %d error(s)\n", len(sink.Data), rep.Count)
	if rep.HasErrors() {
		os.Exit(1)
	}
}

// parseTopLevel parses one top-level declaration: a DeclSpec followed
// by one or more comma-separated declarators, each optionally
// initialized or (for a function declarator) followed by a skipped
// body.
func parseTopLevel(dp *declparser.Parser, ip *initializer.Parser, l *lexer.Lexer, rep *errs.Reporter, scope *symtab.Scope) {
	var spec declparser.DeclSpec
	dp.ParseDeclSpec(&spec, symtab.ClassExtern, int(ctype.CodeInt))

	for {
		var d declparser.Declaration
		dp.ParseDecl(&spec, &d, declparser.NeedIdent)

		storage := spec.StorageClass
		if d.Ident != "" {
			scope.AddLocal(d.Ident, d.Type, storage, 0)
		}

		switch l.Current().Kind {
		case token.Assign:
			l.Advance()
			typ := ip.ParseInit(d.Type)
			if d.Ident != "" {
				if e, ok := scope.Current.FindLocal(d.Ident); ok {
					e.Type = typ
				}
			}
		case token.LCurly:
			skipBalancedBraces(l)
		}

		if l.Current().Kind != token.Comma {
			break
		}
		l.Advance()
	}

	if l.Current().Kind == token.Semi {
		l.Advance()
	} else if l.Current().Kind != token.EOF {
		rep.Error(errs.IdentExpected, ";")
		l.Advance()
	}
}

// skipBalancedBraces consumes a function body whose opening '{' is
// current, tracking nesting depth; statement/expression parsing is
// outside this front end's scope.
func skipBalancedBraces(l *lexer.Lexer) {
	depth := 0
	for {
		switch l.Current().Kind {
		case token.LCurly:
			depth++
			l.Advance()
		case token.RCurly:
			depth--
			l.Advance()
			if depth == 0 {
				return
			}
		case token.EOF:
			return
		default:
			l.Advance()
		}
	}
}

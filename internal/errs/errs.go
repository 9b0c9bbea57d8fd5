// Package errs is the diagnostic reporter. Errors are reported, not
// raised: callers invoke Reporter.Error and keep parsing in a
// best-effort recovery mode (spec.md SS7). The code table mirrors the
// closed error-code convention in yapl-1/error.go.
package errs

import (
	"fmt"
	"io"
)

// Code is one of the diagnostic kinds the declaration/initializer core
// can report (spec.md SS6).
type Code int

const (
	IdentExpected Code = iota
	TypeExpected
	IllegalStorageClass
	IllegalModifier
	IllegalSize
	IllegalType
	MissingParamName
	InitIncompleteType
	TooManyInitializers
)

var messages = [...]string{
	IdentExpected:       "identifier expected",
	TypeExpected:        "type expected",
	IllegalStorageClass: "illegal storage class",
	IllegalModifier:     "illegal modifier",
	IllegalSize:         "illegal size of data type",
	IllegalType:         "illegal type",
	MissingParamName:    "missing parameter name",
	InitIncompleteType:  "initialization of incomplete type",
	TooManyInitializers: "too many initializers",
}

func (c Code) String() string {
	if int(c) < 0 || int(c) >= len(messages) {
		return "unknown error"
	}
	return messages[c]
}

// Reporter accumulates and prints diagnostics. LineFn supplies the
// current source line for each report, the same way cc65's PrintErr
// calls back into the scanner for the active line number.
type Reporter struct {
	w      io.Writer
	LineFn func() int
	Count  int
}

// NewReporter creates a Reporter writing to w. lineFn may be nil, in
// which case line numbers are omitted.
func NewReporter(w io.Writer, lineFn func() int) *Reporter {
	return &Reporter{w: w, LineFn: lineFn}
}

// Error reports a diagnostic. detail, if non-empty, is appended after
// the stock message text (e.g. the offending identifier or size).
func (r *Reporter) Error(code Code, detail string) {
	r.Count++
	line := 0
	if r.LineFn != nil {
		line = r.LineFn()
	}
	if detail == "" {
		fmt.Fprintf(r.w, "line %d: %s\n", line, code)
	} else {
		fmt.Fprintf(r.w, "line %d: %s: %s\n", line, code, detail)
	}
}

// HasErrors reports whether any diagnostic has been issued. The
// enclosing driver, not this core, decides whether that suppresses
// code generation (spec.md SS7).
func (r *Reporter) HasErrors() bool {
	return r.Count > 0
}

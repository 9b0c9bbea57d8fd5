package symtab_test

import (
	"testing"

	"github.com/gmofishsauce/wut4/cc6502/internal/ctype"
	"github.com/gmofishsauce/wut4/cc6502/internal/symtab"
)

func intType() ctype.Buffer {
	return ctype.Buffer{byte(ctype.CodeInt), byte(ctype.CodeEnd)}
}

func TestFindFallsThroughToParent(t *testing.T) {
	s := symtab.NewScope()
	s.AddLocal("g", intType(), symtab.ClassStatic, 0)

	s.EnterFunctionLevel()
	s.AddLocal("x", intType(), symtab.ClassAuto, 0)

	if _, ok := s.Find("x"); !ok {
		t.Fatal("expected to find local x")
	}
	if _, ok := s.Find("g"); !ok {
		t.Fatal("expected to find global g from nested level")
	}

	s.LeaveStructLevel()
	if _, ok := s.Find("x"); ok {
		t.Fatal("x should not be visible after leaving its level")
	}
}

func TestReverseInsertionOrderWalk(t *testing.T) {
	s := symtab.NewScope()
	s.EnterFunctionLevel()
	s.AddLocal("a", intType(), symtab.ClassParam, 0)
	s.AddLocal("b", intType(), symtab.ClassParam, 0)
	s.AddLocal("c", intType(), symtab.ClassParam, 0)

	tab := s.GetSymTab()
	var names []string
	for e := tab.Tail(); e != nil; e = symtab.Prev(e) {
		names = append(names, e.Name)
	}
	want := []string{"c", "b", "a"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestForwardTagThenComplete(t *testing.T) {
	s := symtab.NewScope()
	idx := s.Tags.NewForward("N", false)

	if _, ok := s.Tags.TagSize(idx); ok {
		t.Fatal("forward tag must be incomplete")
	}

	fields := symtab.NewTable(nil)
	s.Tags.Complete(idx, 4, fields)

	size, ok := s.Tags.TagSize(idx)
	if !ok || size != 4 {
		t.Fatalf("completed tag size = (%d, %v), want (4, true)", size, ok)
	}
	if !s.Tags.Get(idx).Complete() {
		t.Fatal("tag should report Complete() true")
	}
}

func TestTypedefEntryIsTypeDef(t *testing.T) {
	s := symtab.NewScope()
	e := s.AddLocal("INT_T", intType(), symtab.ClassTypedef, 0)
	if !e.IsTypeDef() {
		t.Fatal("expected IsTypeDef true for a typedef entry")
	}
	other := s.AddLocal("v", intType(), symtab.ClassAuto, 0)
	if other.IsTypeDef() {
		t.Fatal("expected IsTypeDef false for a non-typedef entry")
	}
}

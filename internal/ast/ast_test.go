package ast

import (
	"testing"

	"github.com/cwbudde/starlang/internal/token"
)

func TestTopKindStrings(t *testing.T) {
	cases := []struct {
		k    TopKind
		want string
	}{
		{TopFunction, "function"},
		{TopSystem, "system"},
		{TopComponent, "component"},
		{TopResource, "resource"},
		{TopStruct, "struct"},
		{TopKind(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("TopKind(%d).String() = %q, want %q", c.k, got, c.want)
		}
	}
}

func TestNewTopLevelCarriesPosition(t *testing.T) {
	pos := token.Position{File: "a.star", Line: 2, Column: 3}
	tl := NewTopLevel(TopSystem, "tick", pos)
	if tl.Pos() != pos {
		t.Fatalf("Pos() = %v, want %v", tl.Pos(), pos)
	}
	if got := tl.String(); got != "system tick" {
		t.Fatalf("String() = %q, want %q", got, "system tick")
	}
}

func TestProgramMergeAppendsDeclsAndPhases(t *testing.T) {
	a := &Program{
		Decls: []*TopLevel{NewTopLevel(TopSystem, "a", token.Position{})},
		Init:  []string{"a"},
		Run:   []string{},
	}
	b := &Program{
		Decls: []*TopLevel{NewTopLevel(TopSystem, "b", token.Position{})},
		Init:  []string{},
		Run:   []string{"b"},
	}
	a.Merge(b)
	if len(a.Decls) != 2 {
		t.Fatalf("Decls has %d entries, want 2", len(a.Decls))
	}
	if len(a.Init) != 1 || a.Init[0] != "a" {
		t.Fatalf("Init = %v, want [a]", a.Init)
	}
	if len(a.Run) != 1 || a.Run[0] != "b" {
		t.Fatalf("Run = %v, want [b]", a.Run)
	}
}

func TestProgramPosUsesFirstDeclOrZeroValue(t *testing.T) {
	empty := &Program{}
	if empty.Pos() != (token.Position{}) {
		t.Fatalf("empty Program.Pos() = %v, want zero value", empty.Pos())
	}
	pos := token.Position{File: "a.star", Line: 1}
	p := &Program{Decls: []*TopLevel{NewTopLevel(TopFunction, "f", pos)}}
	if p.Pos() != pos {
		t.Fatalf("Program.Pos() = %v, want %v", p.Pos(), pos)
	}
}

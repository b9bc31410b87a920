package eval

import (
	"testing"

	"github.com/cwbudde/starlang/internal/diag"
)

func TestFieldAccessOnNonStructIsTypeError(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn bad() {
	let x = 1;
	return x.y;
}
`)
	_, err := e.CallFunction("bad", nil)
	if !diag.As(err, diag.TypeError) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestFieldAccessUnknownFieldIsFieldError(t *testing.T) {
	e, _ := newTestEvaluator(t, `
struct Point { x: int }
fn bad() {
	let p = Point{x: 1};
	return p.missing;
}
`)
	_, err := e.CallFunction("bad", nil)
	if !diag.As(err, diag.FieldError) {
		t.Fatalf("expected FieldError, got %v", err)
	}
}

func TestStringIndexIsImmutable(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn bad() {
	let s = "hello";
	s[0] = 'H';
}
`)
	_, err := e.CallFunction("bad", nil)
	if !diag.As(err, diag.TypeError) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestStringIndexReadYieldsChar(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn firstChar() {
	let s = "hi";
	return s[0];
}
`)
	v, err := e.CallFunction("firstChar", nil)
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v.String() != "h" {
		t.Fatalf("firstChar() = %v, want 'h'", v)
	}
}

func TestStructFieldTypeMismatchIsTypeError(t *testing.T) {
	e, _ := newTestEvaluator(t, `
struct Point { x: int, y: int }
fn bad() {
	let p = Point{x: 1, y: 2};
	p.x = "oops";
}
`)
	_, err := e.CallFunction("bad", nil)
	if !diag.As(err, diag.TypeError) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

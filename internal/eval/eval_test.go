package eval

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/starlang/internal/builtins"
	"github.com/cwbudde/starlang/internal/defs"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/parser"
	"github.com/cwbudde/starlang/internal/value"
	"github.com/cwbudde/starlang/internal/world"
)

// newTestEvaluator parses src into a program, builds its definitions table
// and an empty world, and returns an Evaluator plus the stdout buffer its
// print/println builtins write to.
func newTestEvaluator(t *testing.T, src string) (*Evaluator, *bytes.Buffer) {
	t.Helper()
	prog, err := parser.ParseFile("test.star", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	d, err := defs.Build(prog)
	if err != nil {
		t.Fatalf("defs.Build: %v", err)
	}
	w := world.New(d)
	var out bytes.Buffer
	bctx := &builtins.Context{Stdout: &out, Stdin: bufio.NewReader(strings.NewReader("")), World: w}
	return New(d, w, builtins.Default(), bctx), &out
}

func TestCallFunctionArithmetic(t *testing.T) {
	e, _ := newTestEvaluator(t, `fn add(a, b) { return a + b; }`)
	v, err := e.CallFunction("add", []value.Value{value.Int(2), value.Int(3)})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v != value.Int(5) {
		t.Fatalf("add(2, 3) = %v, want Int(5)", v)
	}
}

func TestCallFunctionArityMismatchIsArityError(t *testing.T) {
	e, _ := newTestEvaluator(t, `fn add(a, b) { return a + b; }`)
	_, err := e.CallFunction("add", []value.Value{value.Int(1)})
	if !diag.As(err, diag.ArityError) {
		t.Fatalf("expected ArityError, got %v", err)
	}
}

func TestCallFunctionFreshScopeHasNoClosure(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn helper() { return x; }
fn caller() { let x = 1; return helper(); }
`)
	_, err := e.CallFunction("caller", nil)
	if !diag.As(err, diag.NameError) {
		t.Fatalf("expected NameError (no closure over caller scope), got %v", err)
	}
}

func TestBreakContinueEscapingFunctionIsControlFlowError(t *testing.T) {
	e, _ := newTestEvaluator(t, `fn f() { break; }`)
	_, err := e.CallFunction("f", nil)
	if !diag.As(err, diag.ControlFlowError) {
		t.Fatalf("expected ControlFlowError, got %v", err)
	}
}

func TestForLoopAccumulatesAndReturns(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn sum(n) {
	let total = 0;
	for (let i = 0; i < n; i = i + 1) {
		total = total + i;
	}
	return total;
}
`)
	v, err := e.CallFunction("sum", []value.Value{value.Int(5)})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v != value.Int(10) {
		t.Fatalf("sum(5) = %v, want Int(10)", v)
	}
}

func TestForLoopBreak(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn firstOver(n) {
	let i = 0;
	for (; ; ) {
		if (i >= n) {
			break;
		}
		i = i + 1;
	}
	return i;
}
`)
	v, err := e.CallFunction("firstOver", []value.Value{value.Int(3)})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v != value.Int(3) {
		t.Fatalf("firstOver(3) = %v, want Int(3)", v)
	}
}

func TestWhileLoopContinue(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn sumOdd(n) {
	let i = 0;
	let total = 0;
	while (i < n) {
		i = i + 1;
		if (i % 2 == 0) {
			continue;
		}
		total = total + i;
	}
	return total;
}
`)
	v, err := e.CallFunction("sumOdd", []value.Value{value.Int(5)})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v != value.Int(9) { // 1 + 3 + 5
		t.Fatalf("sumOdd(5) = %v, want Int(9)", v)
	}
}

func TestSwitchMatchesFirstCase(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn classify(n) {
	switch (n) {
	case 1:
		return "one";
	case 2:
		return "two";
	default:
		return "other";
	}
}
`)
	v, err := e.CallFunction("classify", []value.Value{value.Int(2)})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v != value.NewString("two") {
		t.Fatalf("classify(2) = %v, want \"two\"", v)
	}
}

func TestStructInitAndFieldAccess(t *testing.T) {
	e, _ := newTestEvaluator(t, `
struct Point { x: int, y: int }
fn makeAndRead() {
	let p = Point{x: 1, y: 2};
	return p.x + p.y;
}
`)
	v, err := e.CallFunction("makeAndRead", nil)
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v != value.Int(3) {
		t.Fatalf("makeAndRead() = %v, want Int(3)", v)
	}
}

func TestStructInitMissingFieldIsFieldError(t *testing.T) {
	e, _ := newTestEvaluator(t, `
struct Point { x: int, y: int }
fn bad() { return Point{x: 1}; }
`)
	_, err := e.CallFunction("bad", nil)
	if !diag.As(err, diag.FieldError) {
		t.Fatalf("expected FieldError, got %v", err)
	}
}

func TestStructFieldWriteMutatesInPlace(t *testing.T) {
	e, _ := newTestEvaluator(t, `
struct Point { x: int, y: int }
fn bump() {
	let p = Point{x: 1, y: 2};
	let q = p;
	p.x = 99;
	return q.x;
}
`)
	v, err := e.CallFunction("bump", nil)
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v != value.Int(99) {
		t.Fatalf("bump() = %v, want Int(99) (p and q alias the same struct)", v)
	}
}

func TestReassigningStructBindingIsAliasingError(t *testing.T) {
	e, _ := newTestEvaluator(t, `
struct Point { x: int, y: int }
fn bad() {
	let p = Point{x: 1, y: 2};
	p = Point{x: 3, y: 4};
}
`)
	_, err := e.CallFunction("bad", nil)
	if !diag.As(err, diag.AliasingError) {
		t.Fatalf("expected AliasingError, got %v", err)
	}
}

func TestListIndexAssignment(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn setFirst() {
	let xs = [1, 2, 3];
	xs[0] = 99;
	return xs[0];
}
`)
	v, err := e.CallFunction("setFirst", nil)
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v != value.Int(99) {
		t.Fatalf("setFirst() = %v, want Int(99)", v)
	}
}

func TestListIndexOutOfBoundsIsIndexError(t *testing.T) {
	e, _ := newTestEvaluator(t, `
fn bad() {
	let xs = [1, 2];
	return xs[5];
}
`)
	_, err := e.CallFunction("bad", nil)
	if !diag.As(err, diag.IndexError) {
		t.Fatalf("expected IndexError, got %v", err)
	}
}

func TestDivisionByZeroIsDivisionError(t *testing.T) {
	e, _ := newTestEvaluator(t, `fn bad(a, b) { return a / b; }`)
	_, err := e.CallFunction("bad", []value.Value{value.Int(1), value.Int(0)})
	if !diag.As(err, diag.DivisionError) {
		t.Fatalf("expected DivisionError, got %v", err)
	}
}

func TestTernary(t *testing.T) {
	e, _ := newTestEvaluator(t, `fn pick(b) { return b ? "yes" : "no"; }`)
	v, err := e.CallFunction("pick", []value.Value{value.Bool(true)})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v != value.NewString("yes") {
		t.Fatalf("pick(true) = %v, want \"yes\"", v)
	}
}

func TestBuiltinCallDispatchesBeforeUserFunction(t *testing.T) {
	e, out := newTestEvaluator(t, `fn println(s) { } fn main() { println("hi"); }`)
	_, err := e.CallFunction("main", nil)
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if got := out.String(); got != "hi\n" {
		t.Fatalf("stdout = %q, want %q", got, "hi\n")
	}
}

package scope

import (
	"testing"

	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

func TestDeclareAndLookup(t *testing.T) {
	sc := New()
	if err := sc.Declare("x", value.Int(1)); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	v, err := sc.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if v != value.Int(1) {
		t.Fatalf("Lookup returned %v, want Int(1)", v)
	}
}

func TestDeclareDuplicateInSameFrameIsNameError(t *testing.T) {
	sc := New()
	_ = sc.Declare("x", value.Int(1))
	err := sc.Declare("x", value.Int(2))
	if !diag.As(err, diag.NameError) {
		t.Fatalf("expected NameError, got %v", err)
	}
}

func TestShadowingAcrossFramesIsAllowed(t *testing.T) {
	sc := New()
	_ = sc.Declare("x", value.Int(1))
	sc.PushFrame()
	if err := sc.Declare("x", value.Int(2)); err != nil {
		t.Fatalf("expected shadowing to be allowed, got %v", err)
	}
	v, _ := sc.Lookup("x")
	if v != value.Int(2) {
		t.Fatalf("expected innermost binding Int(2), got %v", v)
	}
	sc.PopFrame()
	v, _ = sc.Lookup("x")
	if v != value.Int(1) {
		t.Fatalf("expected outer binding Int(1) after pop, got %v", v)
	}
}

func TestLookupUndefinedIsNameError(t *testing.T) {
	sc := New()
	_, err := sc.Lookup("nope")
	if !diag.As(err, diag.NameError) {
		t.Fatalf("expected NameError, got %v", err)
	}
}

func TestAssignSimpleForbidsReassigningList(t *testing.T) {
	sc := New()
	_ = sc.Declare("xs", value.NewList([]value.Value{value.Int(1)}))
	err := sc.AssignSimple("xs", value.NewList([]value.Value{value.Int(2)}))
	if !diag.As(err, diag.AliasingError) {
		t.Fatalf("expected AliasingError, got %v", err)
	}
}

func TestAssignSimpleForbidsReassigningStruct(t *testing.T) {
	sc := New()
	s := value.NewStruct("Point", []string{"x"}, map[string]value.Value{"x": value.Int(1)})
	_ = sc.Declare("p", s)
	err := sc.AssignSimple("p", value.NewStruct("Point", []string{"x"}, map[string]value.Value{"x": value.Int(2)}))
	if !diag.As(err, diag.AliasingError) {
		t.Fatalf("expected AliasingError, got %v", err)
	}
}

func TestAssignSimplePermitsScalarRebind(t *testing.T) {
	sc := New()
	_ = sc.Declare("x", value.Int(1))
	if err := sc.AssignSimple("x", value.NewString("now a string")); err != nil {
		t.Fatalf("expected scalar rebind to succeed, got %v", err)
	}
}

func TestPushPopFrameSymmetry(t *testing.T) {
	sc := New()
	start := sc.Depth()
	sc.PushFrame()
	sc.PushFrame()
	sc.PopFrame()
	sc.PopFrame()
	if sc.Depth() != start {
		t.Fatalf("expected depth to return to %d, got %d", start, sc.Depth())
	}
}

func TestBindRawBypassesAliasCheck(t *testing.T) {
	sc := New()
	s := value.NewStruct("Point", []string{"x"}, map[string]value.Value{"x": value.Int(1)})
	sc.BindRaw("p", s)
	sc.BindRaw("p", value.NewStruct("Point", []string{"x"}, map[string]value.Value{"x": value.Int(9)}))
	v, err := sc.Lookup("p")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got := v.(*value.Struct); got.Fields["x"] != value.Int(9) {
		t.Fatalf("expected BindRaw to overwrite the binding, got %v", got.Fields["x"])
	}
}

func TestHas(t *testing.T) {
	sc := New()
	if sc.Has("x") {
		t.Fatalf("expected Has to be false before declaration")
	}
	_ = sc.Declare("x", value.Int(1))
	if !sc.Has("x") {
		t.Fatalf("expected Has to be true after declaration")
	}
}

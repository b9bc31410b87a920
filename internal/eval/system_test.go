package eval

import (
	"testing"

	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

// TestSystemCounterResource mirrors the "Counter resource" scenario: a
// resource-only filter binds once per invocation, and a field write through
// the binding mutates the resource in place.
func TestSystemCounterResource(t *testing.T) {
	e, out := newTestEvaluator(t, `
resource Counter { n: int }

system init_counter() {
	new_resource(Counter{n: 0});
}

system tick(Counter c) {
	println(c.n);
	c.n = c.n + 1;
}
`)
	if err := e.RunSystem("init_counter"); err != nil {
		t.Fatalf("RunSystem(init_counter): %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := e.RunSystem("tick"); err != nil {
			t.Fatalf("RunSystem(tick) iteration %d: %v", i, err)
		}
	}
	if got, want := out.String(), "0\n1\n2\n"; got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

// TestSystemSpawnAndQuery mirrors "Spawn and query": entities gain Pos/Vel
// components, and a run system advances Pos by Vel each tick.
func TestSystemSpawnAndQuery(t *testing.T) {
	e, _ := newTestEvaluator(t, `
component Pos { x: int, y: int }
component Vel { dx: int, dy: int }

system spawn_one() {
	Spawn(Pos{x: 0, y: 0}, Vel{dx: 1, dy: 2});
}

system move(E(Pos p, Vel v)) {
	p.x = p.x + v.dx;
	p.y = p.y + v.dy;
}
`)
	if err := e.RunSystem("spawn_one"); err != nil {
		t.Fatalf("RunSystem(spawn_one): %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := e.RunSystem("move"); err != nil {
			t.Fatalf("RunSystem(move) tick %d: %v", i, err)
		}
	}

	posVal, err := e.World.GetComponent(value.Entity(0), "Pos")
	if err != nil {
		t.Fatalf("GetComponent(Pos): %v", err)
	}
	pos := posVal.(*value.Struct)
	if x, _ := pos.Get("x"); x != value.Int(3) {
		t.Fatalf("x = %v, want Int(3) (3 ticks * dx=1)", x)
	}
	if y, _ := pos.Get("y"); y != value.Int(6) {
		t.Fatalf("y = %v, want Int(6) (3 ticks * dy=2)", y)
	}
}

// TestSystemDeleteDuringQuery mirrors "Delete during query": entities
// deleted mid-iteration vanish from the *next* tick's snapshot, never the
// current one (the snapshot is fixed for the duration of one invocation).
func TestSystemDeleteDuringQuery(t *testing.T) {
	e, _ := newTestEvaluator(t, `
component Tag { marker: int }

system spawn_two() {
	Spawn(Tag{marker: 1});
	Spawn(Tag{marker: 2});
}

system reap(E(Tag t)) {
	Delete(E);
}
`)
	if err := e.RunSystem("spawn_two"); err != nil {
		t.Fatalf("RunSystem(spawn_two): %v", err)
	}

	sys, err := e.Defs.System("reap")
	if err != nil {
		t.Fatalf("Defs.System: %v", err)
	}

	before, err := e.World.FilterEntities(sys.Filter.Entity)
	if err != nil {
		t.Fatalf("FilterEntities before tick 1: %v", err)
	}
	if len(before) != 2 {
		t.Fatalf("expected 2 entities before tick 1, got %d", len(before))
	}

	if err := e.RunSystem("reap"); err != nil {
		t.Fatalf("RunSystem(reap) tick 1: %v", err)
	}

	after, err := e.World.FilterEntities(sys.Filter.Entity)
	if err != nil {
		t.Fatalf("FilterEntities after tick 1: %v", err)
	}
	if len(after) != 0 {
		t.Fatalf("expected an empty match snapshot on tick 2, got %d entities", len(after))
	}
}

// TestQueryStatementReturnPropagatesOutOfFunction verifies that a `return`
// reached from inside a `query` statement bubbles out to the enclosing
// function, unlike a `return` directly inside a system body.
func TestQueryStatementReturnPropagatesOutOfFunction(t *testing.T) {
	e, _ := newTestEvaluator(t, `
component Tag { marker: int }

system spawn_one() {
	Spawn(Tag{marker: 7});
}

fn findMarker() {
	query (E(Tag t)) {
		return t.marker;
	}
	return -1;
}
`)
	if err := e.RunSystem("spawn_one"); err != nil {
		t.Fatalf("RunSystem(spawn_one): %v", err)
	}
	v, err := e.CallFunction("findMarker", nil)
	if err != nil {
		t.Fatalf("CallFunction(findMarker): %v", err)
	}
	if v != value.Int(7) {
		t.Fatalf("findMarker() = %v, want Int(7)", v)
	}
}

// TestSystemReturnIsControlFlowErrorDirect verifies a bare `return` directly in a
// system body (not inside a nested query) is rejected.
func TestSystemReturnIsControlFlowErrorDirect(t *testing.T) {
	e, _ := newTestEvaluator(t, `
resource Counter { n: int }
system bad(Counter c) {
	return;
}
`)
	_ = e.World.QueueNewResource(value.NewStruct("Counter", []string{"n"}, map[string]value.Value{"n": value.Int(0)}))
	if err := e.World.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	err := e.RunSystem("bad")
	if !diag.As(err, diag.ControlFlowError) {
		t.Fatalf("expected ControlFlowError, got %v", err)
	}
}

// Package builtins implements the intrinsic callables of core spec §6.1:
// I/O, type coercions, list primitives, and ECS primitives. The registry
// pattern (name -> function, with a lookup used by the evaluator's call
// dispatch) is ported from the teacher's internal/interp/builtins/registry.go;
// unlike the teacher's 100+ entry table (spanning math, datetime, encoding,
// …), Starlang's builtin surface is the table in spec §6.1 plus two
// supplemental functions: `new_resource` (ecs.go) and `strcmp` (strings.go).
package builtins

import (
	"bufio"
	"io"

	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
	"github.com/cwbudde/starlang/internal/world"
)

// Context bundles the ambient collaborators a builtin may need: the
// program's stdout/stdin streams and the world, for the ECS primitives.
type Context struct {
	Stdout io.Writer
	Stdin  *bufio.Reader
	World  *world.World
}

// Func is the shape of a builtin implementation.
type Func func(ctx *Context, args []value.Value) (value.Value, error)

// Registry is a flat, case-sensitive name -> Func table, built once at
// startup by Default and consulted on every call (core spec §4.5 "Call").
type Registry struct {
	funcs map[string]Func
}

// Lookup reports whether name is a registered builtin.
func (r *Registry) Lookup(name string) (Func, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Default builds the registry of spec §6.1's builtins (plus `new_resource`,
// see ecs.go, and `strcmp`, see strings.go).
func Default() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	registerIO(r)
	registerConversions(r)
	registerList(r)
	registerECS(r)
	registerStrings(r)
	return r
}

func (r *Registry) register(name string, f Func) {
	r.funcs[name] = f
}

// toDisplayString renders any Value the way `print`/`println`/`string()`
// do: the value's own String(), which already matches spec §6.1's
// "canonical stringification" for every kind.
func toDisplayString(v value.Value) string {
	return v.String()
}

func typeErr(name string, args []value.Value) error {
	kinds := make([]string, len(args))
	for i, a := range args {
		kinds[i] = a.Kind().String()
	}
	return diag.New(diag.TypeError, "%s: unsupported argument kinds %v", name, kinds)
}

func arityErr(name string, want string, got int) error {
	return diag.New(diag.ArityError, "%s: expected %s argument(s), got %d", name, want, got)
}

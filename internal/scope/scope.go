// Package scope implements the nested variable-frame model of core spec
// §4.2. It is the idiomatic-Go generalization of the teacher's Environment
// type (internal/interp/runtime/environment.go) and of
// original_source/src/eval/scope.rs's Scope: a stack of named-frame maps
// searched innermost-first, with push/pop scoped to blocks, loops,
// function calls, and system/query invocations.
package scope

import (
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

type frame map[string]value.Value

// Scope is a stack of variable frames. The zero value is not usable; call
// New.
type Scope struct {
	frames []frame
}

// New creates a Scope with a single (global) frame already pushed.
func New() *Scope {
	return &Scope{frames: []frame{make(frame)}}
}

// PushFrame opens a new, empty innermost frame.
func (s *Scope) PushFrame() {
	s.frames = append(s.frames, make(frame))
}

// PopFrame discards the innermost frame. Callers must pair every PushFrame
// with exactly one PopFrame on every exit path (including error returns) so
// that the frame stack invariant (core spec §8 "push/pop symmetry") holds.
func (s *Scope) PopFrame() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth reports the number of live frames, for tests asserting push/pop
// symmetry after a system or query invocation.
func (s *Scope) Depth() int {
	return len(s.frames)
}

// Declare inserts name into the topmost frame. Re-declaring a name already
// present in that same frame is a NameError; shadowing a name from an outer
// frame is allowed.
func (s *Scope) Declare(name string, v value.Value) error {
	top := s.frames[len(s.frames)-1]
	if _, exists := top[name]; exists {
		return diag.New(diag.NameError, "variable %q already declared in this scope", name)
	}
	top[name] = v
	return nil
}

// Lookup searches frames from innermost to outermost.
func (s *Scope) Lookup(name string) (value.Value, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, nil
		}
	}
	return nil, diag.New(diag.NameError, "undefined variable %q", name)
}

// Has reports whether name resolves in the current frame chain.
func (s *Scope) Has(name string) bool {
	_, err := s.Lookup(name)
	return err == nil
}

// AssignSimple mutates the binding for name in the innermost frame that
// owns it. Starlang manipulates lists and structs only through paths once
// declared (core spec §4.5): replacing a name that currently holds a list
// or struct with a fresh binding would silently break every existing alias,
// so that case is an AliasingError. Replacing a scalar binding with a value
// of a different type tag is otherwise permitted at the language level.
func (s *Scope) AssignSimple(name string, v value.Value) error {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if cur, ok := s.frames[i][name]; ok {
			switch cur.(type) {
			case *value.List, *value.Struct:
				return diag.New(diag.AliasingError, "cannot reassign aliased binding %q directly; mutate through a path instead", name)
			}
			s.frames[i][name] = v
			return nil
		}
	}
	return diag.New(diag.NameError, "undefined variable %q", name)
}

// BindRaw inserts or overwrites name in the innermost frame without the
// alias check AssignSimple performs. The evaluator uses it exactly once per
// binding, to seed a system/query iteration's entity, resource, and
// component bindings.
func (s *Scope) BindRaw(name string, v value.Value) {
	s.frames[len(s.frames)-1][name] = v
}

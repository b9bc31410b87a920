// Package defs implements the flat, read-only definitions table of core
// spec §4.3: a name-indexed table built once from the parsed AST, mapping
// each top-level name to a borrowed *ast.TopLevel handle. It generalizes
// the teacher's split function/class registries
// (internal/interp/types/function_registry.go, class_registry.go) into the
// single flat table Starlang's spec calls for (no module namespacing,
// spec §1 Non-goals).
package defs

import (
	"fmt"

	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/diag"
)

// Table is the immutable name -> declaration map built at load time.
type Table struct {
	byName map[string]*ast.TopLevel
}

// Build constructs a Table from prog's top-level declarations. A duplicate
// name is a fatal load error (core spec §3 "Name collisions at load time
// are a fatal load error").
func Build(prog *ast.Program) (*Table, error) {
	t := &Table{byName: make(map[string]*ast.TopLevel, len(prog.Decls))}
	for _, d := range prog.Decls {
		if _, exists := t.byName[d.Name]; exists {
			return nil, diag.New(diag.NameError, "duplicate top-level declaration %q", d.Name).At(d.Pos())
		}
		t.byName[d.Name] = d
	}
	return t, nil
}

// Lookup returns the declaration named name, or a NameError if absent.
func (t *Table) Lookup(name string) (*ast.TopLevel, error) {
	d, ok := t.byName[name]
	if !ok {
		return nil, diag.New(diag.NameError, "undefined name %q", name)
	}
	return d, nil
}

// Function looks up name and requires it to be a function.
func (t *Table) Function(name string) (*ast.TopLevel, error) {
	d, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	if d.Kind != ast.TopFunction {
		return nil, diag.New(diag.TypeError, "%q is not a function (it is a %s)", name, d.Kind)
	}
	return d, nil
}

// System looks up name and requires it to be a system.
func (t *Table) System(name string) (*ast.TopLevel, error) {
	d, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	if d.Kind != ast.TopSystem {
		return nil, diag.New(diag.TypeError, "%q is not a system (it is a %s)", name, d.Kind)
	}
	return d, nil
}

// Schema looks up name and requires it to be one of the three schema sorts,
// returning which sort it resolved to.
func (t *Table) Schema(name string) (*ast.TopLevel, error) {
	d, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	switch d.Kind {
	case ast.TopComponent, ast.TopResource, ast.TopStruct:
		return d, nil
	default:
		return nil, diag.New(diag.TypeError, "%q is not a schema (it is a %s)", name, d.Kind)
	}
}

// Component looks up name and requires it to be a component schema.
func (t *Table) Component(name string) (*ast.TopLevel, error) {
	d, err := t.Schema(name)
	if err != nil {
		return nil, err
	}
	if d.Kind != ast.TopComponent {
		return nil, diag.New(diag.TypeError, "%q is not a component (it is a %s)", name, d.Kind)
	}
	return d, nil
}

// Resource looks up name and requires it to be a resource schema.
func (t *Table) Resource(name string) (*ast.TopLevel, error) {
	d, err := t.Schema(name)
	if err != nil {
		return nil, err
	}
	if d.Kind != ast.TopResource {
		return nil, diag.New(diag.TypeError, "%q is not a resource (it is a %s)", name, d.Kind)
	}
	return d, nil
}

func (t *Table) String() string {
	return fmt.Sprintf("defs.Table{%d entries}", len(t.byName))
}

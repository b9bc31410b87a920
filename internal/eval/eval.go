package eval

import (
	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/builtins"
	"github.com/cwbudde/starlang/internal/defs"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/scope"
	"github.com/cwbudde/starlang/internal/value"
	"github.com/cwbudde/starlang/internal/world"
)

// Evaluator is the tree walker of core spec §4.5/§4.6. It holds no
// per-invocation state of its own — every scope is created fresh by its
// caller (RunSystem, CallFunction) and threaded through explicitly, the
// way the teacher's visitor methods thread an *runtime.ExecutionContext
// rather than storing one on the evaluator struct.
type Evaluator struct {
	Defs     *defs.Table
	World    *world.World
	Builtins *builtins.Registry
	BCtx     *builtins.Context
}

// New builds an Evaluator over an already-constructed definitions table,
// world, and builtin context.
func New(d *defs.Table, w *world.World, reg *builtins.Registry, bctx *builtins.Context) *Evaluator {
	return &Evaluator{Defs: d, World: w, Builtins: reg, BCtx: bctx}
}

// evalExpr dispatches on the concrete Expr node kind (core spec §4.1
// "Expression").
func (e *Evaluator) evalExpr(sc *scope.Scope, expr ast.Expr) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.Atom:
		return atomValue(n), nil
	case *ast.LValue:
		return e.readLValue(sc, n)
	case *ast.Assign:
		v, err := e.evalExpr(sc, n.Value)
		if err != nil {
			return nil, err
		}
		if err := e.writeLValue(sc, n.Target, v); err != nil {
			return nil, err
		}
		return v, nil
	case *ast.Ternary:
		return e.evalTernary(sc, n)
	case *ast.ListInit:
		elems := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.evalExpr(sc, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil
	case *ast.StructInit:
		return e.evalStructInit(sc, n)
	case *ast.Call:
		return e.evalCall(sc, n)
	case *ast.BinExpr:
		l, err := e.evalExpr(sc, n.Left)
		if err != nil {
			return nil, err
		}
		r, err := e.evalExpr(sc, n.Right)
		if err != nil {
			return nil, err
		}
		return evalBinOp(n.Op, l, r)
	case *ast.UnExpr:
		v, err := e.evalExpr(sc, n.Operand)
		if err != nil {
			return nil, err
		}
		return evalUnOp(n.Op, v)
	default:
		return nil, diag.New(diag.TypeError, "unsupported expression node %T", expr)
	}
}

func atomValue(a *ast.Atom) value.Value {
	switch a.Kind {
	case ast.AtomVoid:
		return value.Void{}
	case ast.AtomBool:
		return value.Bool(a.Bool)
	case ast.AtomInt:
		return value.Int(a.Int)
	case ast.AtomFloat:
		return value.Float(a.Float)
	case ast.AtomChar:
		return value.Char(a.Char)
	case ast.AtomString:
		return value.NewString(a.String)
	default:
		return value.Void{}
	}
}

func (e *Evaluator) evalTernary(sc *scope.Scope, t *ast.Ternary) (value.Value, error) {
	condVal, err := e.evalExpr(sc, t.Cond)
	if err != nil {
		return nil, err
	}
	b, ok := condVal.(value.Bool)
	if !ok {
		return nil, diag.New(diag.TypeError, "ternary condition must be bool, got %s", condVal.Kind())
	}
	if b {
		return e.evalExpr(sc, t.Then)
	}
	return e.evalExpr(sc, t.Else)
}

// evalStructInit implements core spec §4.5 "Struct-init looks up the
// schema, verifies every field appears exactly once with no extras,
// evaluates field expressions left to right".
func (e *Evaluator) evalStructInit(sc *scope.Scope, n *ast.StructInit) (value.Value, error) {
	decl, err := e.Defs.Schema(n.Schema)
	if err != nil {
		return nil, err
	}

	declared := make(map[string]string, len(decl.Fields))
	order := make([]string, len(decl.Fields))
	for i, f := range decl.Fields {
		declared[f.Name] = f.Type
		order[i] = f.Name
	}

	seen := make(map[string]bool, len(n.Fields))
	fields := make(map[string]value.Value, len(n.Fields))
	for _, fi := range n.Fields {
		declaredType, ok := declared[fi.Name]
		if !ok {
			return nil, diag.New(diag.FieldError, "%q has no field %q", n.Schema, fi.Name)
		}
		if seen[fi.Name] {
			return nil, diag.New(diag.FieldError, "field %q specified more than once in %q initializer", fi.Name, n.Schema)
		}
		seen[fi.Name] = true
		v, err := e.evalExpr(sc, fi.Value)
		if err != nil {
			return nil, err
		}
		if err := e.checkFieldType(declaredType, v); err != nil {
			return nil, err
		}
		fields[fi.Name] = v
	}
	if len(seen) != len(declared) {
		for _, name := range order {
			if !seen[name] {
				return nil, diag.New(diag.FieldError, "missing field %q in %q initializer", name, n.Schema)
			}
		}
	}
	return value.NewStruct(n.Schema, order, fields), nil
}

package eval

import (
	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/scope"
	"github.com/cwbudde/starlang/internal/value"
)

// evalCall implements core spec §4.5 "Call": builtins dispatch directly;
// otherwise the callee must be a declared function, called through
// CallFunction.
func (e *Evaluator) evalCall(sc *scope.Scope, c *ast.Call) (value.Value, error) {
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := e.evalExpr(sc, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if fn, ok := e.Builtins.Lookup(c.Callee); ok {
		return fn(e.BCtx, args)
	}
	return e.CallFunction(c.Callee, args)
}

// CallFunction invokes the function named name with already-evaluated
// args, per core spec §4.5 "Call": arity must match exactly, a fresh scope
// is created, each argument is declared in the callee's scope by parameter
// name, and the body executes. `break`/`continue` bubbling out of a
// function is ControlFlowError.
func (e *Evaluator) CallFunction(name string, args []value.Value) (value.Value, error) {
	decl, err := e.Defs.Function(name)
	if err != nil {
		return nil, err
	}
	if len(decl.Params) != len(args) {
		return nil, diag.New(diag.ArityError, "%s: expected %d argument(s), got %d", name, len(decl.Params), len(args))
	}

	callScope := scope.New()
	for i, p := range decl.Params {
		if err := callScope.Declare(p, args[i]); err != nil {
			return nil, err
		}
	}

	flow, err := e.evalBlock(callScope, decl.Body)
	if err != nil {
		return nil, err
	}
	switch flow.Kind {
	case FlowReturn:
		return flow.Value, nil
	case FlowBreak, FlowContinue:
		return nil, diag.New(diag.ControlFlowError, "%s: break/continue cannot escape a function body", name)
	default:
		return value.Void{}, nil
	}
}

package eval

import (
	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/scope"
	"github.com/cwbudde/starlang/internal/value"
)

// evalBlock implements core spec §4.5 "block: open a frame, evaluate
// statements until a non-Ok flow appears, then close the frame and
// propagate the flow."
func (e *Evaluator) evalBlock(sc *scope.Scope, b *ast.Block) (Flow, error) {
	sc.PushFrame()
	defer sc.PopFrame()
	for _, stmt := range b.Stmts {
		flow, err := e.evalStmt(sc, stmt)
		if err != nil {
			return Flow{}, err
		}
		if flow.Kind != FlowOk {
			return flow, nil
		}
	}
	return flowOk, nil
}

// evalStmt dispatches on the concrete Stmt node kind (core spec §4.1
// "Statement").
func (e *Evaluator) evalStmt(sc *scope.Scope, stmt ast.Stmt) (Flow, error) {
	switch n := stmt.(type) {
	case *ast.Decl:
		return e.evalDecl(sc, n)
	case *ast.If:
		return e.evalIf(sc, n)
	case *ast.For:
		return e.evalFor(sc, n)
	case *ast.While:
		return e.evalWhile(sc, n)
	case *ast.Switch:
		return e.evalSwitch(sc, n)
	case *ast.Query:
		return e.runFilterIteration(sc, n.Filter, n.Body)
	case *ast.Break:
		return Flow{Kind: FlowBreak}, nil
	case *ast.Continue:
		return Flow{Kind: FlowContinue}, nil
	case *ast.Return:
		return e.evalReturn(sc, n)
	case *ast.ExprStmt:
		_, err := e.evalExpr(sc, n.Expr)
		if err != nil {
			return Flow{}, err
		}
		return flowOk, nil
	case *ast.Block:
		return e.evalBlock(sc, n)
	default:
		return Flow{}, diag.New(diag.TypeError, "unsupported statement node %T", stmt)
	}
}

func (e *Evaluator) evalDecl(sc *scope.Scope, d *ast.Decl) (Flow, error) {
	v := value.Value(value.Void{})
	if d.Init != nil {
		var err error
		v, err = e.evalExpr(sc, d.Init)
		if err != nil {
			return Flow{}, err
		}
	}
	if err := sc.Declare(d.Name, v); err != nil {
		return Flow{}, err
	}
	return flowOk, nil
}

func (e *Evaluator) evalIf(sc *scope.Scope, n *ast.If) (Flow, error) {
	condVal, err := e.evalExpr(sc, n.Cond)
	if err != nil {
		return Flow{}, err
	}
	b, isBool := condVal.(value.Bool)
	if !isBool {
		return Flow{}, diag.New(diag.TypeError, "if condition must be bool, got %s", condVal.Kind())
	}
	if b {
		return e.evalBlock(sc, n.Then)
	}
	if n.Else != nil {
		return e.evalBlock(sc, n.Else)
	}
	return flowOk, nil
}

// evalFor implements core spec §4.5 "for: open a new frame; initialize
// (expr or decl); loop while condition is true; execute body; on body
// return/break/continue, follow control flow; on loop completion or
// break, close the frame."
func (e *Evaluator) evalFor(sc *scope.Scope, n *ast.For) (Flow, error) {
	sc.PushFrame()
	defer sc.PopFrame()

	if n.Init != nil {
		flow, err := e.evalStmt(sc, n.Init)
		if err != nil {
			return Flow{}, err
		}
		if flow.Kind != FlowOk {
			return flow, nil
		}
	}

	for {
		if n.Cond != nil {
			condVal, err := e.evalExpr(sc, n.Cond)
			if err != nil {
				return Flow{}, err
			}
			b, isBool := condVal.(value.Bool)
			if !isBool {
				return Flow{}, diag.New(diag.TypeError, "for condition must be bool, got %s", condVal.Kind())
			}
			if !b {
				break
			}
		}

		flow, err := e.evalBlock(sc, n.Body)
		if err != nil {
			return Flow{}, err
		}
		switch flow.Kind {
		case FlowBreak:
			return flowOk, nil
		case FlowReturn:
			return flow, nil
		}

		if n.Incr != nil {
			if _, err := e.evalExpr(sc, n.Incr); err != nil {
				return Flow{}, err
			}
		}
	}
	return flowOk, nil
}

// evalWhile implements core spec §4.5 "while: like for but without
// init/incr."
func (e *Evaluator) evalWhile(sc *scope.Scope, n *ast.While) (Flow, error) {
	sc.PushFrame()
	defer sc.PopFrame()

	for {
		condVal, err := e.evalExpr(sc, n.Cond)
		if err != nil {
			return Flow{}, err
		}
		b, isBool := condVal.(value.Bool)
		if !isBool {
			return Flow{}, diag.New(diag.TypeError, "while condition must be bool, got %s", condVal.Kind())
		}
		if !b {
			break
		}

		flow, err := e.evalBlock(sc, n.Body)
		if err != nil {
			return Flow{}, err
		}
		switch flow.Kind {
		case FlowBreak:
			return flowOk, nil
		case FlowReturn:
			return flow, nil
		}
	}
	return flowOk, nil
}

// evalSwitch implements core spec §4.5 "switch: evaluate scrutinee,
// compare (via == of §4.5 table) against each case atom in order; execute
// matching case; otherwise execute default. No fallthrough."
func (e *Evaluator) evalSwitch(sc *scope.Scope, n *ast.Switch) (Flow, error) {
	subject, err := e.evalExpr(sc, n.Subject)
	if err != nil {
		return Flow{}, err
	}
	for _, c := range n.Cases {
		eq, err := valuesEqual(subject, atomValue(c.Value))
		if err != nil {
			return Flow{}, err
		}
		if eq {
			return e.evalBlock(sc, c.Body)
		}
	}
	if n.Default != nil {
		return e.evalBlock(sc, n.Default)
	}
	return flowOk, nil
}

func (e *Evaluator) evalReturn(sc *scope.Scope, n *ast.Return) (Flow, error) {
	v := value.Value(value.Void{})
	if n.Value != nil {
		var err error
		v, err = e.evalExpr(sc, n.Value)
		if err != nil {
			return Flow{}, err
		}
	}
	return Flow{Kind: FlowReturn, Value: v}, nil
}

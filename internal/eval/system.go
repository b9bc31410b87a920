package eval

import (
	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/scope"
	"github.com/cwbudde/starlang/internal/value"
)

// RunSystem implements core spec §4.6 "System invocation": a fresh scope is
// created, the filter is resolved and iterated, and Return(_) out of a
// system body is ControlFlowError.
func (e *Evaluator) RunSystem(name string) error {
	decl, err := e.Defs.System(name)
	if err != nil {
		return err
	}
	sc := scope.New()
	flow, err := e.runFilterIteration(sc, decl.Filter, decl.Body)
	if err != nil {
		e.World.DiscardPending()
		return err
	}
	if flow.Kind == FlowReturn {
		e.World.DiscardPending()
		return diag.New(diag.ControlFlowError, "system %q: return cannot escape a system body", name)
	}
	return nil
}

// runFilterIteration drives one system or query's filter against the
// world (core spec §4.6). With no entity-filter, resources bind once and
// the body executes once. With an entity-filter, the world's current match
// snapshot is iterated; Break ends the iteration early, Continue advances
// to the next entity, and Return propagates to the caller (who decides
// whether that is legal: a system forbids it, a nested query statement lets
// it bubble further per §4.6 "Return(value) from inside a query does
// propagate outward"). Either way, world.Flush() runs exactly once at the
// end, before control returns to the caller.
func (e *Evaluator) runFilterIteration(sc *scope.Scope, filter *ast.Filter, body *ast.Block) (Flow, error) {
	if filter.Entity == nil {
		flow, err := e.runOneIteration(sc, filter, body, nil)
		if err != nil {
			return Flow{}, err
		}
		if flushErr := e.World.Flush(); flushErr != nil {
			return Flow{}, flushErr
		}
		if flow.Kind == FlowReturn {
			return flow, nil
		}
		return flowOk, nil
	}

	entities, err := e.World.FilterEntities(filter.Entity)
	if err != nil {
		return Flow{}, err
	}

	result := flowOk
	for _, ent := range entities {
		entVal := ent
		flow, err := e.runOneIteration(sc, filter, body, &entVal)
		if err != nil {
			return Flow{}, err
		}
		if flow.Kind == FlowBreak {
			result = flowOk
			break
		}
		if flow.Kind == FlowReturn {
			result = flow
			break
		}
		// FlowOk / FlowContinue: advance to the next entity.
	}

	if flushErr := e.World.Flush(); flushErr != nil {
		return Flow{}, flushErr
	}
	return result, nil
}

// runOneIteration binds one entity's (id, components) plus the filter's
// resources into a fresh frame and runs the body once. ent is nil when the
// filter has no entity-filter.
func (e *Evaluator) runOneIteration(sc *scope.Scope, filter *ast.Filter, body *ast.Block, ent *value.Entity) (Flow, error) {
	sc.PushFrame()
	defer sc.PopFrame()

	if ent != nil {
		sc.BindRaw(filter.Entity.Bind, *ent)
		for _, arg := range filter.Entity.Args {
			compVal, err := e.World.GetComponent(*ent, arg.TypeName)
			if err != nil {
				return Flow{}, err
			}
			sc.BindRaw(arg.Bind, compVal)
		}
	}

	for _, rb := range filter.Resources {
		resVal, err := e.World.GetResource(rb.TypeName)
		if err != nil {
			return Flow{}, err
		}
		sc.BindRaw(rb.Bind, resVal)
	}

	return e.evalBlock(sc, body)
}

// Package eval implements the tree-walking evaluator of core spec §4.5/§4.6:
// expression, statement, lvalue, call, and operator evaluation, plus the
// system/query iteration discipline that drives the world. Grounded on the
// teacher's evaluator package (internal/interp/evaluator/*.go: a
// visitor-per-statement-kind / visitor-per-expression-kind split) and its
// ControlFlow pattern (internal/interp/runtime/execution_context.go),
// generalized from the teacher's five-kind ControlFlowKind enum to the
// four-case Flow sum type spec §4.5 calls for.
package eval

import "github.com/cwbudde/starlang/internal/value"

// FlowKind is one of the four statement-evaluation outcomes of spec §4.5
// "Flow values".
type FlowKind int

const (
	FlowOk FlowKind = iota
	FlowBreak
	FlowContinue
	FlowReturn
)

// Flow is the result every statement evaluator produces; loops consume
// Break/Continue, function and system/query invocations consume Return.
type Flow struct {
	Kind  FlowKind
	Value value.Value // set only when Kind == FlowReturn
}

var flowOk = Flow{Kind: FlowOk}

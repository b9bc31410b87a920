// Package ast defines the Abstract Syntax Tree node types the evaluator
// consumes (core spec §4.1). Nodes are immutable once built by the parser
// and are borrowed by the evaluator and the world for the lifetime of a run.
package ast

import (
	"strings"

	"github.com/cwbudde/starlang/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the node's source position for diagnostics.
	Pos() token.Position
	String() string
}

// Expr is any node that produces a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action and yields a Flow.
type Stmt interface {
	Node
	stmtNode()
}

// TopKind classifies a top-level declaration (spec §4.1 "Top-level name").
type TopKind int

const (
	TopFunction TopKind = iota
	TopSystem
	TopComponent
	TopResource
	TopStruct
)

func (k TopKind) String() string {
	switch k {
	case TopFunction:
		return "function"
	case TopSystem:
		return "system"
	case TopComponent:
		return "component"
	case TopResource:
		return "resource"
	case TopStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// TopLevel is a named declaration at program scope: a function, a system, or
// one of the three schema sorts (component/resource/struct).
type TopLevel struct {
	Kind TopKind
	Name string

	// Function / System
	Params []string // function parameters, in order
	Filter *Filter  // system filter; nil for functions
	Body   *Block   // function/system body

	// Component / Resource / Struct
	Fields []Field // ordered schema fields

	position token.Position
}

func (t *TopLevel) Pos() token.Position { return t.position }
func (t *TopLevel) String() string      { return t.Kind.String() + " " + t.Name }

// NewTopLevel builds a TopLevel node tagging it with pos.
func NewTopLevel(kind TopKind, name string, pos token.Position) *TopLevel {
	return &TopLevel{Kind: kind, Name: name, position: pos}
}

// Field is one (name, declared-type) entry of a schema.
type Field struct {
	Name string
	Type string // one of the source-level type names, or a struct schema name
}

// ComponentArg is one (component-type-name, local-binding-name) pair inside
// an entity-filter's argument list.
type ComponentArg struct {
	TypeName string
	Bind     string
}

// ResourceBinding is a (resource-type-name, local-binding-name) pair on a
// system/query filter.
type ResourceBinding struct {
	TypeName string
	Bind     string
}

// EntityFilter is the optional entity-matching half of a Filter. Two
// EntityFilter nodes are never structurally equal for caching purposes: the
// world keys its filter cache on the pointer identity of this node (spec
// §3 "Filter identity").
type EntityFilter struct {
	Bind string // local binding name for the matched entity id
	Args []ComponentArg
}

// Filter is a system or query's selector: an optional entity-filter plus
// zero or more resource bindings.
type Filter struct {
	Entity    *EntityFilter // nil if the system/query binds no entities
	Resources []ResourceBinding
}

// Program is the AST root: the set of top-level declarations plus the
// ordered init/run system-name sequences.
type Program struct {
	Decls []*TopLevel
	Init  []string
	Run   []string
}

func (p *Program) Pos() token.Position {
	if len(p.Decls) > 0 {
		return p.Decls[0].Pos()
	}
	return token.Position{}
}

// Merge appends other's declarations and init/run sequences onto p, for
// combining the independently-parsed ASTs of multiple included files into
// the single AST the evaluator consumes (spec §6.3: "a single AST
// regardless of the number of included files").
func (p *Program) Merge(other *Program) {
	p.Decls = append(p.Decls, other.Decls...)
	p.Init = append(p.Init, other.Init...)
	p.Run = append(p.Run, other.Run...)
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, d := range p.Decls {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	sb.WriteString("init: " + strings.Join(p.Init, ", ") + "\n")
	sb.WriteString("run: " + strings.Join(p.Run, ", ") + "\n")
	return sb.String()
}

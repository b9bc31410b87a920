package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/starlang/internal/token"
)

// AtomKind classifies a literal expression's source-level type.
type AtomKind int

const (
	AtomVoid AtomKind = iota
	AtomBool
	AtomInt
	AtomFloat
	AtomChar
	AtomString
)

// Atom is an immediate literal value (spec §4.1 "atom").
type Atom struct {
	Kind   AtomKind
	Bool   bool
	Int    int64
	Float  float64
	Char   rune
	String string

	position token.Position
}

func (a *Atom) Pos() token.Position { return a.position }
func (a *Atom) exprNode()           {}
func (a *Atom) String() string {
	switch a.Kind {
	case AtomVoid:
		return "void"
	case AtomBool:
		return fmt.Sprintf("%t", a.Bool)
	case AtomInt:
		return fmt.Sprintf("%d", a.Int)
	case AtomFloat:
		return fmt.Sprintf("%g", a.Float)
	case AtomChar:
		return fmt.Sprintf("'%c'", a.Char)
	case AtomString:
		return fmt.Sprintf("%q", a.String)
	default:
		return "?"
	}
}

func NewAtomVoid(pos token.Position) *Atom   { return &Atom{Kind: AtomVoid, position: pos} }
func NewAtomBool(b bool, pos token.Position) *Atom {
	return &Atom{Kind: AtomBool, Bool: b, position: pos}
}
func NewAtomInt(v int64, pos token.Position) *Atom {
	return &Atom{Kind: AtomInt, Int: v, position: pos}
}
func NewAtomFloat(v float64, pos token.Position) *Atom {
	return &Atom{Kind: AtomFloat, Float: v, position: pos}
}
func NewAtomChar(v rune, pos token.Position) *Atom {
	return &Atom{Kind: AtomChar, Char: v, position: pos}
}
func NewAtomString(v string, pos token.Position) *Atom {
	return &Atom{Kind: AtomString, String: v, position: pos}
}

// PathSegment is one (field access, index sequence) hop of an LValue's path.
type PathSegment struct {
	Field string
	Index []Expr // zero or more chained index expressions after the field
}

// LValue is an addressable location: a root scope name, optional leading
// index expressions, then a path of field/index hops (spec §4.1 "LValue").
type LValue struct {
	Root       string
	FirstIndex []Expr
	Path       []PathSegment

	position token.Position
}

func (lv *LValue) Pos() token.Position { return lv.position }
func (lv *LValue) exprNode()           {}
func (lv *LValue) String() string {
	var sb strings.Builder
	sb.WriteString(lv.Root)
	for range lv.FirstIndex {
		sb.WriteString("[..]")
	}
	for _, seg := range lv.Path {
		if seg.Field != "" {
			sb.WriteString("." + seg.Field)
		}
		for range seg.Index {
			sb.WriteString("[..]")
		}
	}
	return sb.String()
}

func NewLValue(root string, pos token.Position) *LValue {
	return &LValue{Root: root, position: pos}
}

// Assign is `lvalue = expr`; assignment is itself an expression that yields
// the assigned value (spec §4.5 "Assignment").
type Assign struct {
	Target *LValue
	Value  Expr

	position token.Position
}

func (a *Assign) Pos() token.Position { return a.position }
func (a *Assign) exprNode()           {}
func (a *Assign) String() string      { return a.Target.String() + " = " + a.Value.String() }

// Ternary is `cond ? then : otherwise`.
type Ternary struct {
	Cond, Then, Else Expr

	position token.Position
}

func (t *Ternary) Pos() token.Position { return t.position }
func (t *Ternary) exprNode()           {}
func (t *Ternary) String() string {
	return t.Cond.String() + " ? " + t.Then.String() + " : " + t.Else.String()
}

// ListInit is a list literal `[e1, e2, ...]`.
type ListInit struct {
	Elements []Expr

	position token.Position
}

func (l *ListInit) Pos() token.Position { return l.position }
func (l *ListInit) exprNode()           {}
func (l *ListInit) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// StructFieldInit is one `name: expr` entry of a StructInit.
type StructFieldInit struct {
	Name  string
	Value Expr
}

// StructInit is a struct literal `Name{field: expr, ...}`.
type StructInit struct {
	Schema string
	Fields []StructFieldInit

	position token.Position
}

func (s *StructInit) Pos() token.Position { return s.position }
func (s *StructInit) exprNode()           {}
func (s *StructInit) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return s.Schema + "{" + strings.Join(parts, ", ") + "}"
}

// Call is a function or builtin invocation `callee(args...)`.
type Call struct {
	Callee string
	Args   []Expr

	position token.Position
}

func (c *Call) Pos() token.Position { return c.position }
func (c *Call) exprNode()           {}
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee + "(" + strings.Join(parts, ", ") + ")"
}

// BinExpr is a binary operator expression.
type BinExpr struct {
	Op          BinOp
	Left, Right Expr

	position token.Position
}

func (b *BinExpr) Pos() token.Position { return b.position }
func (b *BinExpr) exprNode()           {}
func (b *BinExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// UnExpr is a unary operator expression.
type UnExpr struct {
	Op      UnOp
	Operand Expr

	position token.Position
}

func (u *UnExpr) Pos() token.Position { return u.position }
func (u *UnExpr) exprNode()           {}
func (u *UnExpr) String() string      { return "(" + u.Op.String() + u.Operand.String() + ")" }

// Constructors, so the parser (a distinct package) can tag each node with
// its source position without exporting the field directly.

func NewAssign(target *LValue, val Expr, pos token.Position) *Assign {
	return &Assign{Target: target, Value: val, position: pos}
}

func NewTernary(cond, then, els Expr, pos token.Position) *Ternary {
	return &Ternary{Cond: cond, Then: then, Else: els, position: pos}
}

func NewListInit(pos token.Position) *ListInit { return &ListInit{position: pos} }

func NewStructInit(schema string, pos token.Position) *StructInit {
	return &StructInit{Schema: schema, position: pos}
}

func NewCall(callee string, pos token.Position) *Call {
	return &Call{Callee: callee, position: pos}
}

func NewBinExpr(op BinOp, left, right Expr, pos token.Position) *BinExpr {
	return &BinExpr{Op: op, Left: left, Right: right, position: pos}
}

func NewUnExpr(op UnOp, operand Expr, pos token.Position) *UnExpr {
	return &UnExpr{Op: op, Operand: operand, position: pos}
}

// Package value defines Starlang's tagged runtime value variant (core spec
// §3 "Values"). Lists and structs carry shared, interior-mutable identity —
// copying the Go value copies the reference, never the backing storage —
// mirroring the reference-counted heap the teacher keeps for class
// instances (internal/interp/runtime/refcount.go in the DWScript
// implementation) generalized here to Starlang's plain structs and lists.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind tags a Value with its source-level type (core spec §3 "Types").
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindChar
	KindString
	KindEntity
	KindList
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindEntity:
		return "entity"
	case KindList:
		return "list"
	case KindStruct:
		return "struct"
	default:
		return "?"
	}
}

// Value is the interface every runtime value satisfies.
type Value interface {
	Kind() Kind
	String() string
}

// Void is the unit value.
type Void struct{}

func (Void) Kind() Kind      { return KindVoid }
func (Void) String() string  { return "void" }

// Bool wraps a boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int wraps a 64-bit signed integer.
type Int int64

func (Int) Kind() Kind        { return KindInt }
func (i Int) String() string  { return strconv.FormatInt(int64(i), 10) }

// Float wraps an IEEE-754 double.
type Float float64

func (Float) Kind() Kind { return KindFloat }
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// Char wraps a single Unicode scalar value.
type Char rune

func (Char) Kind() Kind       { return KindChar }
func (c Char) String() string { return string(rune(c)) }

// String wraps an owned, immutable sequence of Unicode scalars. Values are
// kept in Unicode Normalization Form C so that two strings built from
// differently-composed combining-character sequences compare equal under
// `==` (spec §4.5's equality row treats string equality at the "same kind"
// level without specifying normalization; NFC is the idiomatic choice for a
// scalar-level string type, following the normalization the teacher applies
// directly via golang.org/x/text/unicode/norm in its own string helpers).
type String string

func NewString(s string) String {
	return String(norm.NFC.String(s))
}

func (String) Kind() Kind      { return KindString }
func (s String) String() string { return string(s) }

// Entity is an opaque handle into the world's entity table.
type Entity uint64

func (Entity) Kind() Kind       { return KindEntity }
func (e Entity) String() string { return fmt.Sprintf("Entity(%d)", uint64(e)) }

// List is a shared, mutable, ordered sequence of values. Every copy of a
// *List Go value observes the same backing slice.
type List struct {
	Elems []Value
}

func NewList(elems []Value) *List { return &List{Elems: elems} }

func (*List) Kind() Kind { return KindList }
func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Struct is a shared, mutable, schema-tagged record. Field order follows
// the owning schema's declaration order; Fields is keyed by name for O(1)
// access, Order preserves declaration order for stable printing/iteration.
type Struct struct {
	Schema string
	Fields map[string]Value
	Order  []string
}

func NewStruct(schema string, order []string, fields map[string]Value) *Struct {
	return &Struct{Schema: schema, Fields: fields, Order: order}
}

func (*Struct) Kind() Kind { return KindStruct }
func (s *Struct) String() string {
	parts := make([]string, 0, len(s.Order))
	for _, name := range s.Order {
		parts = append(parts, name+": "+s.Fields[name].String())
	}
	return s.Schema + "{" + strings.Join(parts, ", ") + "}"
}

// Get reads a field, reporting whether it exists.
func (s *Struct) Get(name string) (Value, bool) {
	v, ok := s.Fields[name]
	return v, ok
}

// Set mutates a field in place. The struct's identity (and every alias of
// it) observes the new value.
func (s *Struct) Set(name string, v Value) {
	s.Fields[name] = v
}

// Clone deep-copies v: shared containers (list, struct) get fresh backing
// storage recursively, primitives pass through unchanged (spec §6.1
// `Clone`, §9 "prescribes deep").
func Clone(v Value) Value {
	switch val := v.(type) {
	case *List:
		elems := make([]Value, len(val.Elems))
		for i, e := range val.Elems {
			elems[i] = Clone(e)
		}
		return NewList(elems)
	case *Struct:
		fields := make(map[string]Value, len(val.Fields))
		for k, fv := range val.Fields {
			fields[k] = Clone(fv)
		}
		order := make([]string, len(val.Order))
		copy(order, val.Order)
		return NewStruct(val.Schema, order, fields)
	default:
		return v
	}
}

// Truthy reports whether v is the bool value true. Callers that need a
// bool must type-assert explicitly (there is no implicit bool coercion in
// Starlang outside the `bool()` builtin). The second result reports
// whether v is a Bool at all.
func Truthy(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

package eval

import (
	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/scope"
	"github.com/cwbudde/starlang/internal/value"
)

// readLValue implements core spec §4.2 "get_at_path" / §4.5 "LValues
// (read)": root lookup, then first_index, then alternating field/index
// hops along the path.
func (e *Evaluator) readLValue(sc *scope.Scope, lv *ast.LValue) (value.Value, error) {
	cur, err := sc.Lookup(lv.Root)
	if err != nil {
		return nil, err
	}
	for _, idxExpr := range lv.FirstIndex {
		cur, err = e.indexInto(sc, cur, idxExpr)
		if err != nil {
			return nil, err
		}
	}
	for _, seg := range lv.Path {
		if seg.Field != "" {
			s, ok := cur.(*value.Struct)
			if !ok {
				return nil, diag.New(diag.TypeError, "cannot access field %q on a %s value", seg.Field, cur.Kind())
			}
			fv, ok := s.Get(seg.Field)
			if !ok {
				return nil, diag.New(diag.FieldError, "struct %q has no field %q", s.Schema, seg.Field)
			}
			cur = fv
		}
		for _, idxExpr := range seg.Index {
			cur, err = e.indexInto(sc, cur, idxExpr)
			if err != nil {
				return nil, err
			}
		}
	}
	return cur, nil
}

func (e *Evaluator) indexInto(sc *scope.Scope, container value.Value, idxExpr ast.Expr) (value.Value, error) {
	idxVal, err := e.evalExpr(sc, idxExpr)
	if err != nil {
		return nil, err
	}
	idx, ok := idxVal.(value.Int)
	if !ok {
		return nil, diag.New(diag.TypeError, "index must be an int, got %s", idxVal.Kind())
	}
	switch c := container.(type) {
	case *value.List:
		i := int(idx)
		if i < 0 || i >= len(c.Elems) {
			return nil, diag.New(diag.IndexError, "list index %d out of bounds (length %d)", i, len(c.Elems))
		}
		return c.Elems[i], nil
	case value.String:
		runes := []rune(string(c))
		i := int(idx)
		if i < 0 || i >= len(runes) {
			return nil, diag.New(diag.IndexError, "string index %d out of bounds (length %d)", i, len(runes))
		}
		return value.Char(runes[i]), nil
	default:
		return nil, diag.New(diag.TypeError, "cannot index a %s value", container.Kind())
	}
}

// writeLValue implements core spec §4.2 "set_at_path" / §4.5 "LValues
// (write, via assign)": traversal identical to a read up to the terminal
// segment, which is either the scope's simple name, a list element, or a
// struct field.
func (e *Evaluator) writeLValue(sc *scope.Scope, lv *ast.LValue, v value.Value) error {
	if len(lv.FirstIndex) == 0 && len(lv.Path) == 0 {
		return sc.AssignSimple(lv.Root, v)
	}

	cur, err := sc.Lookup(lv.Root)
	if err != nil {
		return err
	}

	// Walk every hop except the very last one, which is the terminal write
	// target; collect them into one flat sequence of (kind, payload) steps
	// so the final hop can be special-cased regardless of whether it came
	// from FirstIndex or the last Path segment.
	type step struct {
		isField bool
		field   string
		indexE  ast.Expr
	}
	var steps []step
	for _, ie := range lv.FirstIndex {
		steps = append(steps, step{indexE: ie})
	}
	for _, seg := range lv.Path {
		if seg.Field != "" {
			steps = append(steps, step{isField: true, field: seg.Field})
		}
		for _, ie := range seg.Index {
			steps = append(steps, step{indexE: ie})
		}
	}

	for i := 0; i < len(steps)-1; i++ {
		st := steps[i]
		if st.isField {
			s, ok := cur.(*value.Struct)
			if !ok {
				return diag.New(diag.TypeError, "cannot access field %q on a %s value", st.field, cur.Kind())
			}
			fv, ok := s.Get(st.field)
			if !ok {
				return diag.New(diag.FieldError, "struct %q has no field %q", s.Schema, st.field)
			}
			cur = fv
		} else {
			cur, err = e.indexInto(sc, cur, st.indexE)
			if err != nil {
				return err
			}
		}
	}

	last := steps[len(steps)-1]
	if last.isField {
		s, ok := cur.(*value.Struct)
		if !ok {
			return diag.New(diag.TypeError, "cannot access field %q on a %s value", last.field, cur.Kind())
		}
		return e.setStructField(s, last.field, v)
	}

	idxVal, err := e.evalExpr(sc, last.indexE)
	if err != nil {
		return err
	}
	idx, ok := idxVal.(value.Int)
	if !ok {
		return diag.New(diag.TypeError, "index must be an int, got %s", idxVal.Kind())
	}
	switch c := cur.(type) {
	case *value.List:
		i := int(idx)
		if i < 0 || i >= len(c.Elems) {
			return diag.New(diag.IndexError, "list index %d out of bounds (length %d)", i, len(c.Elems))
		}
		c.Elems[i] = v
		return nil
	case value.String:
		return diag.New(diag.TypeError, "string values are immutable; cannot assign through an index")
	default:
		return diag.New(diag.TypeError, "cannot index a %s value", cur.Kind())
	}
}

// setStructField writes v into s.field, requiring v's type tag to match the
// field's declared schema type (core spec §4.2 "for struct terminal field,
// it must match the declared schema type ... type mismatch is TypeError").
// Because the write lands inside the existing struct's field map rather
// than replacing the scope binding that reached it, the containing
// struct's identity (and every alias of it) is preserved in place (core
// spec §4.5 "Writing a struct into a binding that formerly held a struct
// preserves aliasing").
func (e *Evaluator) setStructField(s *value.Struct, field string, v value.Value) error {
	decl, err := e.Defs.Schema(s.Schema)
	if err != nil {
		return err
	}
	var declaredType string
	found := false
	for _, f := range decl.Fields {
		if f.Name == field {
			declaredType = f.Type
			found = true
			break
		}
	}
	if !found {
		return diag.New(diag.FieldError, "struct %q has no field %q", s.Schema, field)
	}
	if err := e.checkFieldType(declaredType, v); err != nil {
		return err
	}
	s.Set(field, v)
	return nil
}

// checkFieldType verifies v's runtime type tag matches a schema field's
// declared type name: one of the primitive type names, "list", "entity",
// or another schema's name (for a nested struct field).
func (e *Evaluator) checkFieldType(declaredType string, v value.Value) error {
	switch declaredType {
	case "void", "bool", "int", "float", "char", "string", "list", "entity":
		if v.Kind().String() != declaredType {
			return diag.New(diag.TypeError, "expected %s, got %s", declaredType, v.Kind())
		}
		return nil
	default:
		s, ok := v.(*value.Struct)
		if !ok {
			return diag.New(diag.TypeError, "expected struct %q, got %s", declaredType, v.Kind())
		}
		if s.Schema != declaredType {
			return diag.New(diag.TypeError, "expected struct %q, got struct %q", declaredType, s.Schema)
		}
		return nil
	}
}

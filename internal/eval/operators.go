package eval

import (
	"strings"

	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

// evalBinOp implements the promotion/coercion table of core spec §4.5
// "Binary operator semantics". Unlisted (kind, kind) combinations are
// TypeError, matching the table's closing note.
func evalBinOp(op ast.BinOp, l, r value.Value) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return evalAdd(l, r)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return evalArith(op, l, r)
	case ast.OpAnd, ast.OpOr, ast.OpXor:
		return evalLogicOrXor(op, l, r)
	case ast.OpBitAnd, ast.OpBitOr:
		return evalBitwise(op, l, r)
	case ast.OpShl, ast.OpShr:
		return evalShift(op, l, r)
	case ast.OpLeq, ast.OpGeq, ast.OpLt, ast.OpGt:
		return evalCompare(op, l, r)
	case ast.OpEq, ast.OpNeq:
		eq, err := valuesEqual(l, r)
		if err != nil {
			return nil, err
		}
		if op == ast.OpNeq {
			eq = !eq
		}
		return value.Bool(eq), nil
	default:
		return nil, diag.New(diag.TypeError, "unsupported binary operator %s", op)
	}
}

func evalAdd(l, r value.Value) (value.Value, error) {
	switch lv := l.(type) {
	case value.Int:
		switch rv := r.(type) {
		case value.Int:
			return lv + rv, nil
		case value.Float:
			return value.Float(lv) + rv, nil
		}
	case value.Float:
		switch rv := r.(type) {
		case value.Int:
			return lv + value.Float(rv), nil
		case value.Float:
			return lv + rv, nil
		}
	case value.Char:
		if rv, ok := r.(value.Char); ok {
			return value.NewString(string(rune(lv)) + string(rune(rv))), nil
		}
	}
	if _, ok := l.(value.String); ok {
		return value.NewString(l.String() + r.String()), nil
	}
	if _, ok := r.(value.String); ok {
		return value.NewString(l.String() + r.String()), nil
	}
	return nil, typeErrBin("+", l, r)
}

func evalArith(op ast.BinOp, l, r value.Value) (value.Value, error) {
	li, lIsInt := l.(value.Int)
	ri, rIsInt := r.(value.Int)
	if lIsInt && rIsInt {
		if op == ast.OpMod {
			if ri == 0 {
				return nil, diag.New(diag.DivisionError, "modulo by zero")
			}
			return li % ri, nil
		}
		if op == ast.OpDiv {
			if ri == 0 {
				return nil, diag.New(diag.DivisionError, "division by zero")
			}
			return li / ri, nil
		}
		if op == ast.OpMul {
			return li * ri, nil
		}
		return li - ri, nil
	}

	if op == ast.OpMul {
		if s, ok := l.(value.String); ok && rIsInt {
			return value.NewString(strings.Repeat(string(s), int(ri))), nil
		}
		if s, ok := r.(value.String); ok && lIsInt {
			return value.NewString(strings.Repeat(string(s), int(li))), nil
		}
	}

	if op == ast.OpMod {
		return nil, typeErrBin("%", l, r)
	}

	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	if !lok || !rok {
		return nil, typeErrBin(op.String(), l, r)
	}
	switch op {
	case ast.OpSub:
		return value.Float(lf - rf), nil
	case ast.OpMul:
		return value.Float(lf * rf), nil
	case ast.OpDiv:
		if rf == 0 {
			return nil, diag.New(diag.DivisionError, "division by zero")
		}
		return value.Float(lf / rf), nil
	default:
		return nil, typeErrBin(op.String(), l, r)
	}
}

func evalLogicOrXor(op ast.BinOp, l, r value.Value) (value.Value, error) {
	lb, lok := l.(value.Bool)
	rb, rok := r.(value.Bool)
	if lok && rok {
		switch op {
		case ast.OpAnd:
			return value.Bool(bool(lb) && bool(rb)), nil
		case ast.OpOr:
			return value.Bool(bool(lb) || bool(rb)), nil
		case ast.OpXor:
			return value.Bool(bool(lb) != bool(rb)), nil
		}
	}
	if op == ast.OpXor {
		if li, lok := l.(value.Int); lok {
			if ri, rok := r.(value.Int); rok {
				return li ^ ri, nil
			}
		}
	}
	return nil, typeErrBin(op.String(), l, r)
}

func evalBitwise(op ast.BinOp, l, r value.Value) (value.Value, error) {
	li, lok := l.(value.Int)
	ri, rok := r.(value.Int)
	if !lok || !rok {
		return nil, typeErrBin(op.String(), l, r)
	}
	if op == ast.OpBitAnd {
		return li & ri, nil
	}
	return li | ri, nil
}

func evalShift(op ast.BinOp, l, r value.Value) (value.Value, error) {
	li, lok := l.(value.Int)
	ri, rok := r.(value.Int)
	if !lok || !rok {
		return nil, typeErrBin(op.String(), l, r)
	}
	shift := uint(uint64(int64(ri)) & 63)
	if op == ast.OpShl {
		return li << shift, nil
	}
	return li >> shift, nil
}

func evalCompare(op ast.BinOp, l, r value.Value) (value.Value, error) {
	var cmp int
	switch lv := l.(type) {
	case value.Int:
		switch rv := r.(type) {
		case value.Int:
			cmp = cmpInt64(int64(lv), int64(rv))
		case value.Float:
			cmp = cmpFloat64(float64(lv), float64(rv))
		default:
			return nil, typeErrBin(op.String(), l, r)
		}
	case value.Float:
		rf, ok := asFloat(r)
		if !ok {
			return nil, typeErrBin(op.String(), l, r)
		}
		cmp = cmpFloat64(float64(lv), rf)
	case value.Char:
		rv, ok := r.(value.Char)
		if !ok {
			return nil, typeErrBin(op.String(), l, r)
		}
		cmp = cmpInt64(int64(lv), int64(rv))
	case value.String:
		rv, ok := r.(value.String)
		if !ok {
			return nil, typeErrBin(op.String(), l, r)
		}
		cmp = strings.Compare(string(lv), string(rv))
	default:
		return nil, typeErrBin(op.String(), l, r)
	}

	switch op {
	case ast.OpLeq:
		return value.Bool(cmp <= 0), nil
	case ast.OpGeq:
		return value.Bool(cmp >= 0), nil
	case ast.OpLt:
		return value.Bool(cmp < 0), nil
	case ast.OpGt:
		return value.Bool(cmp > 0), nil
	default:
		return nil, typeErrBin(op.String(), l, r)
	}
}

// valuesEqual implements the `==`/`!=` row: same-kind comparison, the
// int/float promotion exception, and shallow by-schema-name struct equality
// (core spec §4.5, §9 "struct equality ... by schema-name only"). Any other
// pair of differing kinds is TypeError.
func valuesEqual(l, r value.Value) (bool, error) {
	if l.Kind() != r.Kind() {
		_, lNum := asFloat(l)
		_, rNum := asFloat(r)
		if !lNum || !rNum {
			return false, typeErrBin("==", l, r)
		}
	}
	switch lv := l.(type) {
	case value.Void:
		_, ok := r.(value.Void)
		return ok, nil
	case value.Bool:
		rv, ok := r.(value.Bool)
		return ok && lv == rv, nil
	case value.Int:
		switch rv := r.(type) {
		case value.Int:
			return lv == rv, nil
		case value.Float:
			return float64(lv) == float64(rv), nil
		}
	case value.Float:
		rf, ok := asFloat(r)
		return ok && float64(lv) == rf, nil
	case value.Char:
		rv, ok := r.(value.Char)
		return ok && lv == rv, nil
	case value.String:
		rv, ok := r.(value.String)
		return ok && lv == rv, nil
	case value.Entity:
		rv, ok := r.(value.Entity)
		return ok && lv == rv, nil
	case *value.Struct:
		rv, ok := r.(*value.Struct)
		return ok && lv.Schema == rv.Schema, nil
	case *value.List:
		rv, ok := r.(*value.List)
		return ok && lv == rv, nil
	}
	return false, typeErrBin("==", l, r)
}

// evalUnOp implements core spec §4.5 "Unary".
func evalUnOp(op ast.UnOp, v value.Value) (value.Value, error) {
	switch op {
	case ast.OpPos:
		switch v.(type) {
		case value.Int, value.Float:
			return v, nil
		}
	case ast.OpNeg:
		switch vv := v.(type) {
		case value.Int:
			return -vv, nil
		case value.Float:
			return -vv, nil
		}
	case ast.OpNot:
		if b, ok := v.(value.Bool); ok {
			return !b, nil
		}
	case ast.OpBitNot:
		if i, ok := v.(value.Int); ok {
			return ^i, nil
		}
	}
	return nil, diag.New(diag.TypeError, "unary %s: unsupported operand kind %s", op, v.Kind())
}

func asFloat(v value.Value) (float64, bool) {
	switch vv := v.(type) {
	case value.Int:
		return float64(vv), true
	case value.Float:
		return float64(vv), true
	default:
		return 0, false
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func typeErrBin(op string, l, r value.Value) error {
	return diag.New(diag.TypeError, "%s: unsupported operand kinds (%s, %s)", op, l.Kind(), r.Kind())
}

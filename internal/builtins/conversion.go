package builtins

import (
	"strconv"
	"unicode/utf8"

	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

func registerConversions(r *Registry) {
	r.register("bool", biBool)
	r.register("int", biInt)
	r.register("float", biFloat)
	r.register("char", biChar)
	r.register("string", biString)
}

func biBool(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("bool", "1", len(args))
	}
	switch v := args[0].(type) {
	case value.Void:
		return value.Bool(false), nil
	case value.Bool:
		return v, nil
	case value.Int:
		return value.Bool(v != 0), nil
	case value.String:
		b, err := strconv.ParseBool(string(v))
		if err != nil {
			return nil, diag.New(diag.ValueError, "bool: cannot parse %q as bool", string(v))
		}
		return value.Bool(b), nil
	default:
		return nil, typeErr("bool", args)
	}
}

func biInt(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("int", "1", len(args))
	}
	switch v := args[0].(type) {
	case value.Void:
		return value.Int(0), nil
	case value.Bool:
		if v {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	case value.Int:
		return v, nil
	case value.Float:
		return value.Int(int64(v)), nil
	case value.Char:
		return value.Int(rune(v)), nil
	case value.String:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return nil, diag.New(diag.ValueError, "int: cannot parse %q as int", string(v))
		}
		return value.Int(n), nil
	default:
		return nil, typeErr("int", args)
	}
}

func biFloat(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("float", "1", len(args))
	}
	switch v := args[0].(type) {
	case value.Void:
		return value.Float(0), nil
	case value.Int:
		return value.Float(float64(v)), nil
	case value.Float:
		return v, nil
	case value.String:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, diag.New(diag.ValueError, "float: cannot parse %q as float", string(v))
		}
		return value.Float(f), nil
	default:
		return nil, typeErr("float", args)
	}
}

func biChar(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("char", "1", len(args))
	}
	switch v := args[0].(type) {
	case value.Int:
		r := rune(v)
		if !utf8.ValidRune(r) {
			return nil, diag.New(diag.ValueError, "char: %d is not a valid Unicode scalar", int64(v))
		}
		return value.Char(r), nil
	case value.Char:
		return v, nil
	case value.String:
		runes := []rune(string(v))
		if len(runes) != 1 {
			return nil, diag.New(diag.ValueError, "char: expected a one-character string, got %q", string(v))
		}
		return value.Char(runes[0]), nil
	default:
		return nil, typeErr("char", args)
	}
}

func biString(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("string", "1", len(args))
	}
	return value.NewString(toDisplayString(args[0])), nil
}

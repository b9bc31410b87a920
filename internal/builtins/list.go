package builtins

import (
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

func registerList(r *Registry) {
	r.register("len", biLen)
	r.register("push", biPush)
	r.register("pop", biPop)
	r.register("append", biAppend)
	r.register("remove", biRemove)
}

func asList(name string, v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, diag.New(diag.TypeError, "%s: expected a list, got %s", name, v.Kind())
	}
	return l, nil
}

func asIndex(name string, v value.Value) (int, error) {
	i, ok := v.(value.Int)
	if !ok {
		return 0, diag.New(diag.TypeError, "%s: expected an int index, got %s", name, v.Kind())
	}
	return int(i), nil
}

func biLen(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("len", "1", len(args))
	}
	l, err := asList("len", args[0])
	if err != nil {
		return nil, err
	}
	return value.Int(len(l.Elems)), nil
}

func biPush(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityErr("push", "2", len(args))
	}
	l, err := asList("push", args[0])
	if err != nil {
		return nil, err
	}
	l.Elems = append(l.Elems, args[1])
	return value.Void{}, nil
}

func biPop(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("pop", "1", len(args))
	}
	l, err := asList("pop", args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Elems) == 0 {
		return nil, diag.New(diag.EmptyError, "pop: list is empty")
	}
	last := l.Elems[len(l.Elems)-1]
	l.Elems = l.Elems[:len(l.Elems)-1]
	return last, nil
}

// biAppend moves all elements of b onto a; b becomes empty (spec §6.1
// `append`).
func biAppend(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityErr("append", "2", len(args))
	}
	a, err := asList("append", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asList("append", args[1])
	if err != nil {
		return nil, err
	}
	a.Elems = append(a.Elems, b.Elems...)
	b.Elems = nil
	return value.Void{}, nil
}

func biRemove(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityErr("remove", "2", len(args))
	}
	l, err := asList("remove", args[0])
	if err != nil {
		return nil, err
	}
	i, err := asIndex("remove", args[1])
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(l.Elems) {
		return nil, diag.New(diag.IndexError, "remove: index %d out of bounds (length %d)", i, len(l.Elems))
	}
	removed := l.Elems[i]
	l.Elems = append(l.Elems[:i], l.Elems[i+1:]...)
	return removed, nil
}

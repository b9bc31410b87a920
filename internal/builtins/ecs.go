package builtins

import (
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

func registerECS(r *Registry) {
	r.register("Spawn", biSpawn)
	r.register("Delete", biDelete)
	r.register("Clone", biClone)
	r.register("new_resource", biNewResource)
}

// biSpawn queues an entity spawn; its observable effects wait for the next
// flush (core spec §4.6 "Builtins for the ECS").
func biSpawn(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, arityErr("Spawn", ">=1", len(args))
	}
	comps := make([]*value.Struct, len(args))
	for i, a := range args {
		s, ok := a.(*value.Struct)
		if !ok {
			return nil, diag.New(diag.TypeError, "Spawn: argument %d is not a struct value (got %s)", i, a.Kind())
		}
		comps[i] = s
	}
	if err := ctx.World.QueueSpawn(comps); err != nil {
		return nil, err
	}
	return value.Void{}, nil
}

func biDelete(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("Delete", "1", len(args))
	}
	e, ok := args[0].(value.Entity)
	if !ok {
		return nil, diag.New(diag.TypeError, "Delete: expected an entity, got %s", args[0].Kind())
	}
	ctx.World.QueueDelete(e)
	return value.Void{}, nil
}

// biClone deep-clones a struct or list value; primitives pass through
// unchanged (spec §6.1 `Clone`, §9 resolves the ambiguity the original left
// open in favor of a deep clone).
func biClone(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("Clone", "1", len(args))
	}
	return value.Clone(args[0]), nil
}

// biNewResource queues the world's `new-resource` command (spec §4.4
// "New resource", exercised directly by the Counter resource scenario of
// spec §8 via `new_resource(Counter{n: 0})`); the resource becomes visible
// at the next flush.
func biNewResource(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("new_resource", "1", len(args))
	}
	s, ok := args[0].(*value.Struct)
	if !ok {
		return nil, diag.New(diag.TypeError, "new_resource: argument is not a struct value (got %s)", args[0].Kind())
	}
	if err := ctx.World.QueueNewResource(s); err != nil {
		return nil, err
	}
	return value.Void{}, nil
}

package builtins

import (
	"fmt"
	"strings"

	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

func registerIO(r *Registry) {
	r.register("print", biPrint)
	r.register("println", biPrintln)
	r.register("input", biInput)
}

func biPrint(ctx *Context, args []value.Value) (value.Value, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(toDisplayString(a))
	}
	fmt.Fprint(ctx.Stdout, sb.String())
	return value.Void{}, nil
}

func biPrintln(ctx *Context, args []value.Value) (value.Value, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(toDisplayString(a))
	}
	sb.WriteString("\n")
	fmt.Fprint(ctx.Stdout, sb.String())
	return value.Void{}, nil
}

// biInput prints any prompt arguments, flushes stdout (nothing buffered on
// our side beyond the io.Writer itself, so "flush" is the teacher's
// terminology for the point at which the prompt must already be visible
// before the blocking read begins), reads one line from stdin, and returns
// it trimmed (spec §6.1 `input`).
func biInput(ctx *Context, args []value.Value) (value.Value, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(toDisplayString(a))
	}
	fmt.Fprint(ctx.Stdout, sb.String())
	if f, ok := ctx.Stdout.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}

	line, err := ctx.Stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, diag.New(diag.IOError, "input: %v", err)
	}
	return value.NewString(strings.TrimRight(line, "\r\n")), nil
}

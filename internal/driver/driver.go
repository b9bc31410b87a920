// Package driver implements the init/run scheduler loop of core spec §4.7,
// grounded on the teacher's interpreter-wiring constructor
// (internal/interp/runner/runner.go): a small function that assembles the
// evaluator's collaborators (definitions table, world, builtins) from a
// parsed program and then drives it, rather than the teacher's own
// request/response interpreter loop (go-dws has no perpetual scheduler —
// Starlang's run-forever discipline is new here, built from spec §4.7/§5
// directly).
package driver

import (
	"bufio"
	"io"

	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/builtins"
	"github.com/cwbudde/starlang/internal/defs"
	"github.com/cwbudde/starlang/internal/eval"
	"github.com/cwbudde/starlang/internal/world"
)

// Driver runs a parsed program to completion (or forever, for a non-empty
// `run` phase) per core spec §4.7.
type Driver struct {
	Eval    *eval.Evaluator
	Program *ast.Program

	// Ticks bounds the number of times the `run` phase loops; zero means
	// loop forever, matching spec §4.7's "loop forever" exactly. A positive
	// value is a debugging/testing escape hatch (the CLI never sets it),
	// letting the end-to-end scenarios of spec §8 observe a bounded prefix
	// of an otherwise-perpetual run loop.
	Ticks int
}

// New builds a Driver from a parsed program: it constructs the definitions
// table, an empty world, and the builtin registry, and wires an Evaluator
// over them (core spec §4.7 "build the definitions table ... build an
// empty world").
func New(prog *ast.Program, stdout io.Writer, stdin io.Reader) (*Driver, error) {
	d, err := defs.Build(prog)
	if err != nil {
		return nil, err
	}
	w := world.New(d)
	reg := builtins.Default()
	bctx := &builtins.Context{
		Stdout: stdout,
		Stdin:  bufio.NewReader(stdin),
		World:  w,
	}
	return &Driver{
		Eval:    eval.New(d, w, reg, bctx),
		Program: prog,
	}, nil
}

// Run executes every name in Program.Init once, in declared order, then
// loops over Program.Run forever (or Ticks times, if set) — exiting
// immediately if Run is empty (core spec §4.7). The first error from any
// system invocation is fatal and returned immediately, discarding the
// world's pending commands (already done by Evaluator.RunSystem; see core
// spec §7 "no partial results are committed").
func (d *Driver) Run() error {
	for _, name := range d.Program.Init {
		if err := d.Eval.RunSystem(name); err != nil {
			return err
		}
	}

	if len(d.Program.Run) == 0 {
		return nil
	}

	for tick := 0; d.Ticks == 0 || tick < d.Ticks; tick++ {
		for _, name := range d.Program.Run {
			if err := d.Eval.RunSystem(name); err != nil {
				return err
			}
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/driver"
	"github.com/cwbudde/starlang/internal/parser"
	"github.com/cwbudde/starlang/internal/source"
)

var dumpAST bool

func init() {
	rootCmd.Args = cobra.ExactArgs(1)
	rootCmd.RunE = runScript
	rootCmd.Flags().BoolVar(&dumpAST, "ast", false, "dump the parsed AST and exit")
}

// runScript implements core spec §6.2: read <SOURCE> (and whatever it
// includes, per §6.3), parse it into a single AST, optionally dump that
// AST and exit 0, or hand it to the driver for execution.
func runScript(_ *cobra.Command, args []string) error {
	entry := args[0]

	set := source.NewSet()
	if err := set.AddEntry(entry); err != nil {
		return printFatal(err)
	}

	prog, err := parseAll(set.Files())
	if err != nil {
		return printFatal(err)
	}

	if dumpAST {
		fmt.Println(prog.String())
		return nil
	}

	d, err := driver.New(prog, os.Stdout, os.Stdin)
	if err != nil {
		return printFatal(err)
	}
	if err := d.Run(); err != nil {
		return printFatal(err)
	}
	return nil
}

func parseAll(files []source.File) (*ast.Program, error) {
	var prog *ast.Program
	for _, f := range files {
		p, err := parser.ParseFile(f.Path, f.Text)
		if err != nil {
			return nil, err
		}
		if prog == nil {
			prog = p
		} else {
			prog.Merge(p)
		}
	}
	return prog, nil
}

// printFatal renders a diagnostic to stderr and reports the failure so
// Execute's caller exits non-zero (core spec §7 "one diagnostic line to
// stderr; non-zero exit").
func printFatal(err error) error {
	if e, ok := err.(*diag.Error); ok {
		fmt.Fprintln(os.Stderr, e.Format(true))
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

package builtins

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

// col is a deterministic, locale-stable collator (language.Und: no
// locale-specific tailoring). It is used only by strcmp, which is distinct
// from the raw Unicode-code-point ordering `<`/`>` give strings — see
// SPEC_FULL.md's DOMAIN STACK table, grounded on the teacher's own direct
// use of golang.org/x/text/collate in internal/interp/builtins_strings_compare.go.
var col = collate.New(language.Und)

func registerStrings(r *Registry) {
	r.register("strcmp", biStrcmp)
}

// biStrcmp returns -1, 0, or 1 according to collation order, supplementing
// spec §6.1's table with a locale-stable comparison distinct from the raw
// code-point order that `<`/`>` (spec §4.5) perform on strings.
func biStrcmp(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityErr("strcmp", "2", len(args))
	}
	a, ok := args[0].(value.String)
	if !ok {
		return nil, diag.New(diag.TypeError, "strcmp: expected a string, got %s", args[0].Kind())
	}
	b, ok := args[1].(value.String)
	if !ok {
		return nil, diag.New(diag.TypeError, "strcmp: expected a string, got %s", args[1].Kind())
	}
	return value.Int(col.CompareString(string(a), string(b))), nil
}

// Package diag provides the runtime error kinds and diagnostic formatting
// used throughout the evaluator (core spec §7 "Error Handling Design").
//
// This is the idiomatic-Go rendering of the teacher's CompilerError type
// (internal/errors/errors.go in the reference DWScript implementation):
// a position-tagged error carrying a message, rendered as a single
// "file:line:col: Kind: message" line, but returned as a plain Go `error`
// instead of collected into a parser-style error list.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/starlang/internal/token"
)

// Kind is one of the fifteen error kinds of spec §7.
type Kind string

const (
	ParseError       Kind = "ParseError"
	NameError        Kind = "NameError"
	ArityError       Kind = "ArityError"
	TypeError        Kind = "TypeError"
	FieldError       Kind = "FieldError"
	IndexError       Kind = "IndexError"
	EmptyError       Kind = "EmptyError"
	DivisionError    Kind = "DivisionError"
	EntityError      Kind = "EntityError"
	ComponentError   Kind = "ComponentError"
	ConflictError    Kind = "ConflictError"
	AliasingError    Kind = "AliasingError"
	ControlFlowError Kind = "ControlFlowError"
	ValueError       Kind = "ValueError"
	IOError          Kind = "IOError"
)

// Error is a single diagnostic: an error kind, a human message naming the
// offending name/value, and an optional source position.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

// New builds an *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At attaches a source position to an existing diagnostic and returns it,
// for the (frequent) case where the position is only known at the call site
// that caught the error rather than where it was constructed.
func (e *Error) At(pos token.Position) *Error {
	e.Pos = pos
	return e
}

func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic as a single line, prefixed with its
// position when one is set; when color is requested the kind is wrapped in
// ANSI red. No source-line context is printed. Mirrors the teacher's
// CompilerError.Format.
func (e *Error) Format(color bool) string {
	var sb strings.Builder
	if e.Pos.File != "" {
		sb.WriteString(fmt.Sprintf("%s:%d:%d: ", e.Pos.File, e.Pos.Line, e.Pos.Column))
	}
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(string(e.Kind))
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// FormatErrors renders one or more diagnostics, one per line.
func FormatErrors(errs []*Error, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// As reports whether err is a *Error (or wraps one) of the given kind.
func As(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Package cmd wires Starlang's command-line surface (core spec §6.2) with
// spf13/cobra, in the style of the teacher's cmd/dwscript/cmd package: a
// single root command that takes the script path and runs it (run.go);
// there are no subcommands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "starlang",
	Short: "Starlang interpreter",
	Long: `starlang runs programs written in Starlang, a small ECS-flavored
scripting language: components, resources, structs, functions, and
systems driven by an init-once / run-forever scheduler.`,
	// Diagnostics are already printed by runScript's printFatal in the
	// evaluator's own format; cobra's default error/usage dump would be
	// redundant noise on a runtime failure.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

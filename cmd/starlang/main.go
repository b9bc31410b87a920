package main

import (
	"os"

	"github.com/cwbudde/starlang/cmd/starlang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it. runScript writes straight to os.Stdout (not
// cobra's OutOrStdout), so tests must intercept it at the os.File level.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("io.ReadAll: %v", err)
	}
	return string(out)
}

func writeSource(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.star")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestASTFlagDumpsAndExitsWithoutRunning(t *testing.T) {
	path := writeSource(t, `
system greet() {
	println("should not run");
}
init { greet }
`)
	rootCmd.SetArgs([]string{path, "--ast"})
	out := captureStdout(t, func() {
		if err := Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	})
	if strings.Contains(out, "should not run") {
		t.Fatalf("expected --ast to dump the AST without running the program, got %q", out)
	}
	if !strings.Contains(out, "greet") {
		t.Fatalf("expected the dumped AST to mention the system name, got %q", out)
	}
}

func TestRunExecutesInitPhase(t *testing.T) {
	path := writeSource(t, `
system greet() {
	println("hi from run_test");
}
init { greet }
`)
	// A prior test may have left --ast set on this package-level command;
	// pflag only updates a bound var for flags actually present in argv.
	if err := rootCmd.Flags().Set("ast", "false"); err != nil {
		t.Fatalf("reset --ast: %v", err)
	}
	rootCmd.SetArgs([]string{path})
	out := captureStdout(t, func() {
		if err := Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	})
	if out != "hi from run_test\n" {
		t.Fatalf("stdout = %q, want %q", out, "hi from run_test\n")
	}
}

func TestMissingSourceArgIsAnError(t *testing.T) {
	if err := rootCmd.Flags().Set("ast", "false"); err != nil {
		t.Fatalf("reset --ast: %v", err)
	}
	rootCmd.SetArgs([]string{})
	if err := Execute(); err == nil {
		t.Fatalf("expected Execute to fail with no positional SOURCE argument")
	}
}

func TestParseErrorIsReturnedNonNil(t *testing.T) {
	if err := rootCmd.Flags().Set("ast", "false"); err != nil {
		t.Fatalf("reset --ast: %v", err)
	}
	path := writeSource(t, `this is not valid starlang {{{`)
	rootCmd.SetArgs([]string{path})
	if err := Execute(); err == nil {
		t.Fatalf("expected a parse error for malformed source")
	}
}

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestAddEntrySingleFileNoIncludes(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.star", "fn f() {}\n")

	set := NewSet()
	if err := set.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	files := set.Files()
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].Text != "fn f() {}\n" {
		t.Fatalf("Text = %q, want unchanged source", files[0].Text)
	}
}

func TestAddEntryResolvesLiteralInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "helper.star", "fn helper() {}\n")
	entry := writeFile(t, dir, "main.star", "include \"helper.star\";\nfn main() {}\n")

	set := NewSet()
	if err := set.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	files := set.Files()
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(files), files)
	}
	// AddEntry appends the including file first and then walks its
	// includes, so main.star precedes helper.star.
	if filepath.Base(files[0].Path) != "main.star" {
		t.Fatalf("first file = %s, want main.star", files[0].Path)
	}
	if filepath.Base(files[1].Path) != "helper.star" {
		t.Fatalf("second file = %s, want helper.star", files[1].Path)
	}
}

func TestAddEntryBlanksIncludeLinePreservingLineNumbers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "helper.star", "fn helper() {}\n")
	entry := writeFile(t, dir, "main.star", "fn before() {}\ninclude \"helper.star\";\nfn after() {}\n")

	set := NewSet()
	if err := set.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	main := set.Files()[0]
	want := "fn before() {}\n\nfn after() {}\n"
	if main.Text != want {
		t.Fatalf("Text = %q, want %q", main.Text, want)
	}
}

func TestAddEntryDedupesByCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.star", "fn shared() {}\n")
	writeFile(t, dir, "a.star", "include \"shared.star\";\n")
	entry := writeFile(t, dir, "main.star", "include \"a.star\";\ninclude \"shared.star\";\n")

	set := NewSet()
	if err := set.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	files := set.Files()
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3 (main, a, shared deduped): %+v", len(files), files)
	}
}

func TestAddEntryHandlesIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.star", "include \"b.star\";\n")
	entry := writeFile(t, dir, "b.star", "include \"a.star\";\n")

	set := NewSet()
	if err := set.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if len(set.Files()) != 2 {
		t.Fatalf("got %d files, want 2 (b, a; cycle back to b is a no-op)", len(set.Files()))
	}
}

func TestAddEntryMissingFileIsIOError(t *testing.T) {
	dir := t.TempDir()
	set := NewSet()
	err := set.AddEntry(filepath.Join(dir, "missing.star"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestAddEntryGlobIncludeExpandsSortedMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "systems/a.star", "fn a() {}\n")
	writeFile(t, dir, "systems/b.star", "fn b() {}\n")
	entry := writeFile(t, dir, "main.star", "include \"systems/*.star\";\n")

	set := NewSet()
	if err := set.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	files := set.Files()
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3 (main + 2 glob matches): %+v", len(files), files)
	}
}

func TestAddEntryGlobIncludeWithNoMatchesIsError(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.star", "include \"systems/*.star\";\n")

	set := NewSet()
	if err := set.AddEntry(entry); err == nil {
		t.Fatalf("expected an error for a glob pattern matching nothing")
	}
}

func TestIsGlob(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"plain.star", false},
		{"systems/*.star", true},
		{"systems/**/*.star", true},
		{"a?.star", true},
		{"a[bc].star", true},
	}
	for _, c := range cases {
		if got := IsGlob(c.path); got != c.want {
			t.Errorf("IsGlob(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

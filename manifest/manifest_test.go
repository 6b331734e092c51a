package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	// Create a temporary directory with a chicken.toml
	dir := t.TempDir()
	tomlContent := `
[program]
file = "cat.chicken"
input = "cluck"

[options]
normal-char = true
debug = false

[trace]
path = "runs.db"
`
	if err := os.WriteFile(filepath.Join(dir, "chicken.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Program.File != "cat.chicken" {
		t.Errorf("program file = %q, want cat.chicken", m.Program.File)
	}
	if m.Program.Input != "cluck" {
		t.Errorf("program input = %q, want cluck", m.Program.Input)
	}
	if !m.Options.NormalChar {
		t.Error("normal-char = false, want true")
	}
	if m.Options.Debug {
		t.Error("debug = true, want false")
	}
	if m.Trace.Path != "runs.db" {
		t.Errorf("trace path = %q, want runs.db", m.Trace.Path)
	}
	if m.ProgramPath() != filepath.Join(m.Dir, "cat.chicken") {
		t.Errorf("ProgramPath() = %q", m.ProgramPath())
	}
	if m.TracePath() != filepath.Join(m.Dir, "runs.db") {
		t.Errorf("TracePath() = %q", m.TracePath())
	}
}

func TestLoadManifestMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for missing chicken.toml")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "chicken.toml"), []byte("[program]\nfile = \"q.chicken\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("manifest not found from nested dir")
	}
	if m.Program.File != "q.chicken" {
		t.Errorf("program file = %q", m.Program.File)
	}
}

func TestFindAndLoadNoManifest(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if m != nil {
		t.Errorf("m = %+v, want nil", m)
	}
}

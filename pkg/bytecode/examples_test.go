package bytecode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadExample(t *testing.T, name string) *Program {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "examples", name))
	if err != nil {
		t.Fatal(err)
	}
	return Parse(string(data))
}

func TestExampleQuine(t *testing.T) {
	out, err := New(loadExample(t, "quine.chicken"), Config{}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if out != "chicken" {
		t.Errorf("output = %q, want %q", out, "chicken")
	}
}

func TestExampleCat(t *testing.T) {
	out, err := New(loadExample(t, "cat.chicken"), Config{Input: "Chicken Power"}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if out != "Chicken Power" {
		t.Errorf("output = %q, want %q", out, "Chicken Power")
	}
}

func TestExampleHello(t *testing.T) {
	prog := loadExample(t, "hello.chicken")

	out, err := New(prog, Config{NormalChar: true}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if out != "Hello world" {
		t.Errorf("normal-char output = %q, want %q", out, "Hello world")
	}

	// Default mode renders every character as an HTML entity.
	out, err = New(prog, Config{}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "&#72;&#101;") {
		t.Errorf("quirk output = %q, want entity string", out)
	}
}

// Package manifest handles chicken.toml run configuration. A manifest lets
// a project pin its program file, input and run options so `chicken` can be
// invoked with no flags from anywhere inside the project tree.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a chicken.toml run configuration.
type Manifest struct {
	Program Program `toml:"program"`
	Options Options `toml:"options"`
	Trace   Trace   `toml:"trace"`

	// Dir is the directory containing the chicken.toml file (set at load time).
	Dir string `toml:"-"`
}

// Program names the source to run and the input handed to it.
type Program struct {
	File  string `toml:"file"`
	Input string `toml:"input"`
}

// Options mirrors the CLI run flags.
type Options struct {
	NormalChar bool `toml:"normal-char"`
	Debug      bool `toml:"debug"`
}

// Trace configures execution-trace recording.
type Trace struct {
	Path string `toml:"path"`
}

// Load parses a chicken.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "chicken.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a chicken.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "chicken.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// ProgramPath returns the absolute path of the configured program file,
// or "" if the manifest names none.
func (m *Manifest) ProgramPath() string {
	if m.Program.File == "" {
		return ""
	}
	if filepath.IsAbs(m.Program.File) {
		return m.Program.File
	}
	return filepath.Join(m.Dir, m.Program.File)
}

// TracePath returns the absolute path of the configured trace database,
// or "" if tracing is not configured.
func (m *Manifest) TracePath() string {
	if m.Trace.Path == "" {
		return ""
	}
	if filepath.IsAbs(m.Trace.Path) {
		return m.Trace.Path
	}
	return filepath.Join(m.Dir, m.Trace.Path)
}

// Package image serializes compiled chicken programs, so a program can be
// counted out of its source once and shipped or cached as a small binary.
// Images are CBOR-encoded with a magic header and a format version.
package image

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/chicken/pkg/bytecode"
)

// Magic identifies a chicken bytecode image.
var Magic = []byte{'C', 'K', 'B', 'C'}

// Version is the current image format version. Increment on incompatible
// changes.
const Version uint16 = 1

// Image is the serialized form of a compiled program.
type Image struct {
	Version uint16  `cbor:"version"`
	Name    string  `cbor:"name,omitempty"`
	Opcodes []int64 `cbor:"opcodes"`
}

// cborEncMode uses canonical options for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes a program to image bytes: the magic header followed
// by the CBOR body.
func Marshal(p *bytecode.Program, name string) ([]byte, error) {
	img := Image{
		Version: Version,
		Name:    name,
		Opcodes: p.Raw(),
	}
	body, err := cborEncMode.Marshal(&img)
	if err != nil {
		return nil, fmt.Errorf("image: marshal: %w", err)
	}
	return append(append([]byte{}, Magic...), body...), nil
}

// Unmarshal deserializes image bytes back into a program.
func Unmarshal(data []byte) (*bytecode.Program, error) {
	if len(data) < len(Magic) || !bytes.Equal(data[:len(Magic)], Magic) {
		return nil, fmt.Errorf("image: bad magic, not a chicken image")
	}
	var img Image
	if err := cbor.Unmarshal(data[len(Magic):], &img); err != nil {
		return nil, fmt.Errorf("image: unmarshal: %w", err)
	}
	if img.Version != Version {
		return nil, fmt.Errorf("image: unsupported version %d (want %d)", img.Version, Version)
	}
	for _, op := range img.Opcodes {
		if op < 0 {
			return nil, fmt.Errorf("image: negative opcode %d", op)
		}
	}
	return bytecode.FromOpcodes(img.Opcodes), nil
}

// WriteFile marshals a program and writes it to path.
func WriteFile(path string, p *bytecode.Program, name string) error {
	data, err := Marshal(p, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("image: write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a program image from path.
func ReadFile(path string) (*bytecode.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("image: read %s: %w", path, err)
	}
	return Unmarshal(data)
}

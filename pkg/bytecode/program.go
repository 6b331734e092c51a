package bytecode

import "strings"

// Token is the language's single reserved keyword.
const Token = "chicken"

// Program is an ordered opcode stream produced by the source loader. The
// implicit trailing Exit is not stored here; the memory builder appends it.
type Program struct {
	Ops []Opcode
}

// Parse loads program text: one opcode per source line, equal to the number
// of non-overlapping occurrences of the token on that line. Occurrences are
// counted naively, with no regard for word boundaries, so "chickenchicken"
// counts as two. A line with zero occurrences yields opcode 0 (Exit) and
// is never skipped. The empty program is valid.
func Parse(source string) *Program {
	if source == "" {
		return &Program{}
	}
	lines := strings.Split(source, "\n")
	ops := make([]Opcode, len(lines))
	for i, line := range lines {
		ops[i] = Opcode(strings.Count(line, Token))
	}
	return &Program{Ops: ops}
}

// FromOpcodes builds a program directly from raw opcodes, bypassing the
// source loader. Useful for tests and for running compiled images.
func FromOpcodes(ops []int64) *Program {
	p := &Program{Ops: make([]Opcode, len(ops))}
	for i, n := range ops {
		p.Ops[i] = Opcode(n)
	}
	return p
}

// Len returns the number of opcodes, excluding the implicit trailing Exit.
func (p *Program) Len() int {
	return len(p.Ops)
}

// Raw returns the opcode stream as plain integers.
func (p *Program) Raw() []int64 {
	raw := make([]int64, len(p.Ops))
	for i, op := range p.Ops {
		raw[i] = int64(op)
	}
	return raw
}

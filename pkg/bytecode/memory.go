package bytecode

import (
	"github.com/chazu/chicken/pkg/value"
)

// SegmentB is the memory index where the program image begins: cell 0 is
// the self-reference, cell 1 the input text.
const SegmentB = 2

// Memory is the single addressable region a program runs in. The three
// segments (header, program image, working stack) share one sequence;
// their boundaries are computed from lengths, never stored. Every cell
// holds exactly one value at all times.
type Memory struct {
	cells     []value.Value
	stackBase int // first index of the working stack (end of segment B)
}

// NewMemory assembles the initial region for a program and its input:
// the self-reference, the input text, the opcode stream as numbers, and
// one implicit trailing Exit. The working stack starts empty.
func NewMemory(prog *Program, input string) *Memory {
	cells := make([]value.Value, 0, SegmentB+prog.Len()+1+16)
	cells = append(cells, value.Self, value.Text(input))
	for _, op := range prog.Ops {
		cells = append(cells, value.Number(float64(op)))
	}
	cells = append(cells, value.Number(float64(OpExit)))
	return &Memory{cells: cells, stackBase: len(cells)}
}

// Len returns the current number of cells across all three segments.
func (m *Memory) Len() int {
	return len(m.cells)
}

// StackBase returns the index of the working stack's fixed bottom.
func (m *Memory) StackBase() int {
	return m.stackBase
}

// StackDepth returns the number of values on the working stack.
func (m *Memory) StackDepth() int {
	return len(m.cells) - m.stackBase
}

// At returns the cell at index i, or Undefined with ok=false if i is
// outside the current bounds.
func (m *Memory) At(i int) (value.Value, bool) {
	if i < 0 || i >= len(m.cells) {
		return value.Undefined, false
	}
	return m.cells[i], true
}

// Set overwrites the cell at index i. Writes outside the current bounds
// are silently discarded; memory never grows through Set.
func (m *Memory) Set(i int, v value.Value) bool {
	if i < 0 || i >= len(m.cells) {
		return false
	}
	m.cells[i] = v
	return true
}

// Push appends a value to the working stack.
func (m *Memory) Push(v value.Value) {
	m.cells = append(m.cells, v)
}

// Pop removes and returns the top of the working stack. Popping an empty
// stack yields Undefined; the header and program segments are never
// consumed by pops.
func (m *Memory) Pop() value.Value {
	if len(m.cells) <= m.stackBase {
		return value.Undefined
	}
	v := m.cells[len(m.cells)-1]
	m.cells = m.cells[:len(m.cells)-1]
	return v
}

// Snapshot returns a copy of all cells, for fault reports and the
// single-step debugger. Mutating the copy does not affect the live region.
func (m *Memory) Snapshot() []value.Value {
	out := make([]value.Value, len(m.cells))
	copy(out, m.cells)
	return out
}

// Stack returns a copy of the working-stack segment only.
func (m *Memory) Stack() []value.Value {
	out := make([]value.Value, len(m.cells)-m.stackBase)
	copy(out, m.cells[m.stackBase:])
	return out
}

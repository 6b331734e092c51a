package bytecode

import "fmt"

// Opcode is one chicken instruction. Opcodes 0-9 are the named
// instructions; any other opcode pushes the literal n-10.
type Opcode int64

const (
	OpExit     Opcode = 0 // Pop top; halt with it as output if it is text
	OpChicken  Opcode = 1 // Push the text "chicken"
	OpAdd      Opcode = 2 // Pop two, push sum or concatenation
	OpSubtract Opcode = 3 // Pop two, push difference
	OpMultiply Opcode = 4 // Pop two, push product
	OpCompare  Opcode = 5 // Pop two, push loose-equality result
	OpLoad     Opcode = 6 // Double-wide: next cell is the base address
	OpStore    Opcode = 7 // Pop address, pop value, overwrite in place
	OpJump     Opcode = 8 // Pop offset, pop condition, branch if truthy
	OpChar     Opcode = 9 // Pop number, push its character rendering

	// OpPushBase is the first literal-push opcode: n pushes n - OpPushBase.
	OpPushBase Opcode = 10
)

// OpcodeInfo provides metadata about each opcode for disassembly and the
// single-step debugger.
type OpcodeInfo struct {
	Name         string // Canonical name
	Mnemonic     string // The esolang's traditional mnemonic
	StackPop     int    // Values popped from the stack
	StackPush    int    // Values pushed to the stack
	OperandCells int    // Extra program cells consumed (Load only)
}

var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpExit:     {"EXIT", "axe", 1, 0, 0},
	OpChicken:  {"CHICKEN", "chicken", 0, 1, 0},
	OpAdd:      {"ADD", "add", 2, 1, 0},
	OpSubtract: {"SUBTRACT", "fox", 2, 1, 0},
	OpMultiply: {"MULTIPLY", "rooster", 2, 1, 0},
	OpCompare:  {"COMPARE", "compare", 2, 1, 0},
	OpLoad:     {"LOAD", "pick", 1, 1, 1},
	OpStore:    {"STORE", "peck", 2, 0, 0},
	OpJump:     {"JUMP", "fr", 2, 0, 0},
	OpChar:     {"CHAR", "BBQ", 1, 1, 0},
}

// GetOpcodeInfo returns metadata for an opcode. Every opcode outside the
// named range is a literal push, negatives included.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{
		Name:      fmt.Sprintf("PUSH %d", int64(op-OpPushBase)),
		Mnemonic:  "push",
		StackPush: 1,
	}
}

// String returns the human-readable name of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// IsWide returns true if the opcode consumes the following program cell as
// an operand.
func (op Opcode) IsWide() bool {
	return op == OpLoad
}

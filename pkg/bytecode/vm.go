package bytecode

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/chazu/chicken/pkg/value"
)

// Config holds the immutable run options consumed by the VM at
// construction. NormalChar disables the historical HTML-entity quirk of
// the Char instruction.
type Config struct {
	Input      string
	NormalChar bool
}

// FaultKind classifies a terminal execution fault.
type FaultKind int

const (
	// FaultNonStringExit: Exit executed with a non-text top of stack.
	FaultNonStringExit FaultKind = iota

	// FaultInvalidAddress: Load's author-supplied base address falls
	// outside memory bounds.
	FaultInvalidAddress

	// FaultInvalidJump: Jump computed a program counter outside the valid
	// program range.
	FaultInvalidJump

	// FaultInvalidOpcode: the fetched cell is not a number, or the
	// program counter walked past the end of memory.
	FaultInvalidOpcode
)

// String returns a human-readable name for a fault kind.
func (k FaultKind) String() string {
	switch k {
	case FaultNonStringExit:
		return "non-string exit"
	case FaultInvalidAddress:
		return "invalid address"
	case FaultInvalidJump:
		return "invalid jump"
	case FaultInvalidOpcode:
		return "invalid opcode"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// Fault is a terminal, unrecoverable execution-stopping condition. It
// carries the program counter and a memory snapshot so error reports can
// show what the machine was doing when it stopped.
type Fault struct {
	Kind   FaultKind
	Detail string
	PC     int
	Memory []value.Value
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("chicken: %s at pc %d: %s", f.Kind, f.PC, f.Detail)
	}
	return fmt.Sprintf("chicken: %s at pc %d", f.Kind, f.PC)
}

// DumpStack renders the fault's memory snapshot for error reports.
func (f *Fault) DumpStack() string {
	parts := make([]string, len(f.Memory))
	for i, v := range f.Memory {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// StepStatus is the discriminant of a StepResult.
type StepStatus int

const (
	// StatusRunning: the instruction executed and the VM can step again.
	StatusRunning StepStatus = iota

	// StatusHalted: the program exited successfully.
	StatusHalted

	// StatusFaulted: execution stopped on a terminal fault.
	StatusFaulted
)

// StepResult is the discriminated outcome of a single Step call.
type StepResult struct {
	Status StepStatus
	Output string // Valid when Status is StatusHalted
	Fault  *Fault // Valid when Status is StatusFaulted
}

// VM is the chicken execution engine: a state machine over the program
// counter, the memory region and a halted flag. It is single-threaded and
// owned by exactly one caller; the only suspension point is between Step
// calls.
type VM struct {
	mem     *Memory
	pc      int // index into segment B, zero-based
	progLen int // opcodes excluding the implicit Exit
	cfg     Config

	halted bool
	result StepResult
}

// New builds a VM for the given program, assembling its memory region from
// the program image and the configured input.
func New(prog *Program, cfg Config) *VM {
	return &VM{
		mem:     NewMemory(prog, cfg.Input),
		progLen: prog.Len(),
		cfg:     cfg,
	}
}

// PC returns the current program counter (segment-B relative).
func (vm *VM) PC() int {
	return vm.pc
}

// Memory exposes the live memory region for inspection between steps.
func (vm *VM) Memory() *Memory {
	return vm.mem
}

// Halted reports whether the VM has reached a terminal state.
func (vm *VM) Halted() bool {
	return vm.halted
}

// CurrentOp returns the opcode the next Step would execute, for debug
// front-ends. The second result is false if the fetch would be invalid.
func (vm *VM) CurrentOp() (Opcode, bool) {
	cell, ok := vm.mem.At(SegmentB + vm.pc)
	if !ok || !cell.IsNumber() || math.IsNaN(cell.Num()) {
		return 0, false
	}
	return Opcode(int64(math.Trunc(cell.Num()))), true
}

// Run drives the VM to completion and returns the program output, or the
// terminal *Fault as the error.
func (vm *VM) Run() (string, error) {
	for {
		res := vm.Step()
		switch res.Status {
		case StatusHalted:
			return res.Output, nil
		case StatusFaulted:
			return "", res.Fault
		}
	}
}

// Step executes exactly one instruction and returns the resulting state.
// Stepping a terminal VM returns the terminal result unchanged.
func (vm *VM) Step() StepResult {
	if vm.halted {
		return vm.result
	}

	op, ok := vm.CurrentOp()
	if !ok {
		cell, _ := vm.mem.At(SegmentB + vm.pc)
		return vm.fault(FaultInvalidOpcode, fmt.Sprintf("cell %s is not an opcode", cell))
	}

	switch op {
	case OpExit:
		top := vm.mem.Pop()
		if !top.IsText() {
			return vm.fault(FaultNonStringExit, fmt.Sprintf("exit with %s on top", top))
		}
		vm.halted = true
		vm.result = StepResult{Status: StatusHalted, Output: top.Str()}
		return vm.result

	case OpChicken:
		vm.mem.Push(value.Text(Token))
		vm.pc++

	case OpAdd:
		top := vm.mem.Pop()
		second := vm.mem.Pop()
		if top.IsText() || second.IsText() {
			// Concatenation renders the second operand first.
			vm.mem.Push(value.Text(value.ToText(second) + value.ToText(top)))
		} else {
			vm.mem.Push(value.Number(value.ToNumber(second) + value.ToNumber(top)))
		}
		vm.pc++

	case OpSubtract:
		top := vm.mem.Pop()
		second := vm.mem.Pop()
		vm.mem.Push(value.Number(value.ToNumber(top) - value.ToNumber(second)))
		vm.pc++

	case OpMultiply:
		top := vm.mem.Pop()
		second := vm.mem.Pop()
		vm.mem.Push(value.Number(value.ToNumber(top) * value.ToNumber(second)))
		vm.pc++

	case OpCompare:
		top := vm.mem.Pop()
		second := vm.mem.Pop()
		vm.mem.Push(value.Boolean(value.LooseEquals(top, second)))
		vm.pc++

	case OpLoad:
		return vm.execLoad()

	case OpStore:
		index, indexOK := truncToInt(value.ToNumber(vm.mem.Pop()))
		v := vm.mem.Pop()
		if indexOK {
			// Out-of-bounds writes are silently discarded.
			vm.mem.Set(index, v)
		}
		vm.pc++

	case OpJump:
		offset, offsetOK := truncToInt(value.ToNumber(vm.mem.Pop()))
		condition := vm.mem.Pop()
		if value.ToBoolean(condition) {
			if !offsetOK {
				return vm.fault(FaultInvalidJump, "offset is not a number")
			}
			// Relative to the next instruction; landing exactly on the
			// implicit Exit is valid.
			target := vm.pc + 1 + offset
			if target < 0 || target > vm.progLen {
				return vm.fault(FaultInvalidJump, fmt.Sprintf("target %d outside program", target))
			}
			vm.pc = target
		} else {
			vm.pc++
		}

	case OpChar:
		n := value.ToNumber(vm.mem.Pop())
		if vm.cfg.NormalChar {
			vm.mem.Push(charValue(n))
		} else {
			// The historical quirk: an HTML numeric character reference,
			// whether or not n is a valid code point. NaN embeds as the
			// literal text "NaN".
			vm.mem.Push(value.Text("&#" + value.FormatNumber(n) + ";"))
		}
		vm.pc++

	default:
		// Any other number is a literal push of n-10, negatives
		// included; only non-numeric cells fail to dispatch. Negative
		// opcodes can't come from the loader, but a Store into the
		// program segment can plant one.
		vm.mem.Push(value.Number(float64(op - OpPushBase)))
		vm.pc++
	}

	return StepResult{Status: StatusRunning}
}

// execLoad implements the double-wide Load instruction: the next raw
// program cell is the author-supplied base address, the popped value the
// user-supplied index. Only the base address can fault; every bad index
// resolves to Undefined.
func (vm *VM) execLoad() StepResult {
	operand, ok := vm.mem.At(SegmentB + vm.pc + 1)
	if !ok {
		return vm.fault(FaultInvalidAddress, "load operand outside memory")
	}
	addr, addrOK := truncToInt(value.ToNumber(operand))
	if !addrOK || addr < 0 || addr >= vm.mem.Len() {
		return vm.fault(FaultInvalidAddress, fmt.Sprintf("load base %s outside memory", operand))
	}

	index, indexOK := truncToInt(value.ToNumber(vm.mem.Pop()))

	target, _ := vm.mem.At(addr)
	result := value.Undefined
	switch {
	case target.IsSelf():
		if indexOK {
			if cell, inBounds := vm.mem.At(index); inBounds {
				result = cell
			}
		}
	case target.IsText():
		if indexOK {
			runes := []rune(target.Str())
			if index >= 0 && index < len(runes) {
				result = value.Text(string(runes[index]))
			}
		}
	}
	vm.mem.Push(result)

	// The operand cell was consumed, not executed.
	vm.pc += 2
	return StepResult{Status: StatusRunning}
}

// fault transitions the VM into its terminal faulted state.
func (vm *VM) fault(kind FaultKind, detail string) StepResult {
	vm.halted = true
	vm.result = StepResult{
		Status: StatusFaulted,
		Fault: &Fault{
			Kind:   kind,
			Detail: detail,
			PC:     vm.pc,
			Memory: vm.mem.Snapshot(),
		},
	}
	return vm.result
}

// charValue converts a code point to a one-character text, or Undefined
// when n is not representable. It never faults.
func charValue(n float64) value.Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return value.Undefined
	}
	// Range-check before converting: a bare rune() conversion wraps
	// values past 32 bits onto valid code points.
	t := math.Trunc(n)
	if t < 0 || t > utf8.MaxRune {
		return value.Undefined
	}
	r := rune(int64(t))
	if !utf8.ValidRune(r) {
		return value.Undefined
	}
	return value.Text(string(r))
}

// truncToInt truncates a float64 to an int. The second result is false for
// NaN, the infinities and values outside the int range.
func truncToInt(n float64) (int, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	t := math.Trunc(n)
	if t > math.MaxInt32 || t < math.MinInt32 {
		return 0, false
	}
	return int(t), true
}

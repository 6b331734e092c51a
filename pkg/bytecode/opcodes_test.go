package bytecode

import (
	"strings"
	"testing"
)

func TestOpcodeMetadata(t *testing.T) {
	named := []Opcode{OpExit, OpChicken, OpAdd, OpSubtract, OpMultiply, OpCompare, OpLoad, OpStore, OpJump, OpChar}
	for _, op := range named {
		info := GetOpcodeInfo(op)
		if info.Name == "" || info.Mnemonic == "" {
			t.Errorf("opcode %d missing metadata", int64(op))
		}
		if strings.HasPrefix(info.Name, "PUSH") {
			t.Errorf("opcode %d reported as a push", int64(op))
		}
	}
}

func TestOpcodePushRange(t *testing.T) {
	info := GetOpcodeInfo(Opcode(42))
	if info.Name != "PUSH 32" {
		t.Errorf("name = %q, want %q", info.Name, "PUSH 32")
	}
	if info.StackPush != 1 || info.StackPop != 0 {
		t.Errorf("push metadata = %+v", info)
	}
}

func TestOpcodeNegativeIsPush(t *testing.T) {
	if got := Opcode(-3).String(); got != "PUSH -13" {
		t.Errorf("String() = %q, want %q", got, "PUSH -13")
	}
}

func TestOnlyLoadIsWide(t *testing.T) {
	for op := Opcode(0); op < 12; op++ {
		want := op == OpLoad
		if op.IsWide() != want {
			t.Errorf("IsWide(%d) = %v, want %v", int64(op), op.IsWide(), want)
		}
	}
}

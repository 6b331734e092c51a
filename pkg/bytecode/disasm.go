package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of a program. Load's
// operand cell is rendered inline with its instruction rather than as an
// instruction of its own, and the implicit trailing Exit is shown so the
// listing matches what the memory builder actually executes.
func Disassemble(p *Program) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("; chicken program, %d opcodes (+1 implicit exit)\n", p.Len()))
	sb.WriteString(fmt.Sprintf("; memory: [0]=self [1]=input [%d..%d]=program\n\n", SegmentB, SegmentB+p.Len()))

	for i := 0; i < len(p.Ops); i++ {
		op := p.Ops[i]
		info := GetOpcodeInfo(op)

		if op.IsWide() {
			// A final Load draws its operand from the implicit Exit cell.
			operand := "0"
			if i+1 < len(p.Ops) {
				operand = fmt.Sprintf("%d", int64(p.Ops[i+1]))
			}
			sb.WriteString(fmt.Sprintf("%04d  %-12s %-10s from %s\n", i, info.Name, info.Mnemonic, operand))
			if i+1 < len(p.Ops) {
				i++
				sb.WriteString(fmt.Sprintf("%04d  .operand %d\n", i, int64(p.Ops[i])))
			}
			continue
		}

		sb.WriteString(fmt.Sprintf("%04d  %-12s %s\n", i, info.Name, info.Mnemonic))
	}

	exitInfo := GetOpcodeInfo(OpExit)
	sb.WriteString(fmt.Sprintf("%04d  %-12s %s (implicit)\n", len(p.Ops), exitInfo.Name, exitInfo.Mnemonic))

	return sb.String()
}

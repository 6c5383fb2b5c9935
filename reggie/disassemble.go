package reggie

import (
	"fmt"
	"strings"
)

// Disassemble renders a CodeBlock as one line per Instruction, in the
// style of original_source/reggie/src/ops.rs's Display impl for
// Instruction (opcode mnemonic followed by its operand(s)), prefixed
// with the block's metadata line. Used by the cmd/reggie-dump CLI and
// by tests asserting on compiler output shape.
func (cb *CodeBlock) Disassemble() string {
	var b strings.Builder
	fmt.Fprintf(&b, "; %s\n", cb)
	for i, inst := range cb.Instructions {
		fmt.Fprintf(&b, "%4d  %s\n", i, inst.disassemble(cb))
	}
	return b.String()
}

// Disassemble renders every block of a CompiledModule, in BlockID order.
func (m *CompiledModule) Disassemble() string {
	var b strings.Builder
	for id := range m.Blocks {
		if BlockID(id) == m.TopLevel {
			b.WriteString("; <top level>\n")
		}
		b.WriteString(m.Blocks[id].Disassemble())
		b.WriteByte('\n')
	}
	return b.String()
}

func (inst Instruction) disassemble(cb *CodeBlock) string {
	switch inst.Op {
	case OpConstI, OpWrapFunc, OpLdaDCallIdx:
		return fmt.Sprintf("%-12s %d", inst.Op, inst.A)
	case OpConstF:
		if int(inst.A) < len(cb.Floats) {
			return fmt.Sprintf("%-12s %v", inst.Op, cb.Floats[inst.A])
		}
		return fmt.Sprintf("%-12s F%d", inst.Op, inst.A)
	case OpConstS:
		if int(inst.A) < len(cb.Strings) {
			return fmt.Sprintf("%-12s %q", inst.Op, cb.Strings[inst.A])
		}
		return fmt.Sprintf("%-12s S%d", inst.Op, inst.A)
	case OpLdaDL, OpStrDL, OpLdaIndexL, OpEqTestL, OpOrderTestL, OpDAddL, OpDSubL,
		OpDMulL, OpDDivL, OpDConcatL, OpAssocL, OpCastT:
		return fmt.Sprintf("%-12s L%d", inst.Op, inst.A)
	case OpLdaDR, OpStrDR, OpDAddR, OpDSubR, OpDMulR, OpDDivR:
		return fmt.Sprintf("%-12s R%d", inst.Op, inst.A)
	case OpLdaDGl, OpStrDGl:
		return fmt.Sprintf("%-12s G%d", inst.Op, inst.A)
	case OpStrIndexLL:
		return fmt.Sprintf("%-12s L%d L%d", inst.Op, inst.A, inst.B)
	case OpJmp, OpJmpEQ, OpJmpNE, OpJmpLT, OpJmpGT, OpJmpLE, OpJmpGE:
		return fmt.Sprintf("%-12s -> %d", inst.Op, inst.A)
	default:
		return inst.Op.String()
	}
}

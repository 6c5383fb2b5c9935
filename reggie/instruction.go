package reggie

// Instruction is one bytecode instruction. A and B are generically typed
// 32-bit operands whose meaning depends on Op: a register index, a
// constant-pool index, a global cell id, an immediate (such as a
// BlockID), or an absolute instruction offset for jumps; OpRDShiftRight
// uses neither. Two operands are enough for every opcode this VM implements;
// none of them need a third.
type Instruction struct {
	Op Op
	A  int32
	B  int32
}

package reggie

// Op is an instruction opcode. The full namespace spec §4.5 describes is
// organized by data-type suffix (F/I/S/T/C/U/D); this implementation's
// compiler only ever emits the Dynamic-path forms plus the handful of
// typed Const/Wrap opcodes needed to get a literal into the D
// accumulator, exactly as spec §4.4's own representative lowering rules
// do (e.g. the binary-op rule stashes its left operand via `StrLD`, a
// Dynamic-local store, not a typed one). Only part of the spec §4.5
// namespace has a slot in this enum. Some slots that the compiler never
// emits still have an interpreter case (WrapT, the Cast family, the
// argument-register D*R arithmetic forms, StrVC/LdaVC, AssocL, PushD);
// the slots with no case (TypedCall and the three table lookup-error
// opcodes) fail with NotImplementedError rather than being silently
// accepted.
type Op int32

const (
	OpNop Op = iota

	// Constants and typed-to-dynamic wrapping.
	OpConstN // load Nil directly into the D accumulator
	OpConstI // load an Int immediate into the I accumulator
	OpConstF // load a Float immediate into the F accumulator
	OpConstS // load a String immediate (from the string pool) into the S accumulator
	OpWrapI    // move I accumulator into D accumulator, tagging Int
	OpWrapF    // move F accumulator into D accumulator, tagging Float
	OpWrapS    // move S accumulator into D accumulator, tagging String
	OpWrapT    // move T accumulator into D accumulator, tagging Table
	OpWrapFunc // move I accumulator (a BlockID) into D accumulator, tagging LuaFunction
	OpCastI  // move D accumulator into I accumulator iff tag is Int; sets EQ/NE
	OpCastF  // move D accumulator into F accumulator iff tag is Float; sets EQ/NE
	OpCastS  // move D accumulator into S accumulator iff tag is String; sets EQ/NE
	OpCastT  // move D accumulator into T accumulator iff tag is Table; sets EQ/NE

	// Dynamic load/store: accumulator <-> argument register / local
	// register / global cell.
	OpLdaDR
	OpLdaDL
	OpLdaDGl
	OpStrDR
	OpStrDL
	OpStrDGl

	// Dynamic arithmetic: D accumulator OP {argument register | local
	// register}(idx) -> D accumulator. Coerces per spec §4.1.
	OpDAddR
	OpDAddL
	OpDSubR
	OpDSubL
	OpDMulR
	OpDMulL
	OpDDivR
	OpDDivL
	OpDConcatL
	OpDNeg // unary minus on D accumulator
	OpDNot // unary not on D accumulator

	// Comparisons.
	OpEqTestL    // sets EQ/NE: D accumulator == local register(idx), per spec §4.1 Eq
	OpOrderTestL // sets ordering flag LT/GT/EQ: D accumulator vs local register(idx)
	OpNilTest    // sets EQ iff D accumulator is Nil

	// Control flow.
	OpLabel
	OpJmp
	OpJmpEQ
	OpJmpNE
	OpJmpLT
	OpJmpGT
	OpJmpLE
	OpJmpGE

	// Calls. Outgoing call arguments and outgoing return values are both
	// staged through the same per-frame dynamic buffer ("stage"): reset
	// it, append each value with StageD, then DCall/Ret reads the whole
	// buffer as the argument/return list. value_count (StrVC/LdaVC) is
	// the register spec §3 names for this count; this implementation
	// derives it directly from the stage buffer's length instead of
	// threading it through its own register, so StrVC/LdaVC are never
	// emitted by the compiler (reserved, like the opcodes below).
	OpStrVC
	OpLdaVC
	OpStageReset // stage := stage[:0]
	OpStageD     // stage := append(stage, D accumulator)
	OpDCall
	OpTypedCall
	OpRet

	// Table construction and access.
	OpNewT          // fresh empty table -> D accumulator
	OpAssocL        // T accumulator's table[local register(idx)] = D accumulator
	OpPushD         // append D accumulator to T accumulator's table array part
	OpLdaIndexL     // D accumulator := Index(local register(idx) as object, D accumulator as key)
	OpStrIndexLL    // Object in local register(A), key in local register(B), value in D accumulator: SetIndex
	OpRDShiftRight  // stage := append(stage, every value of the last call's result)
	OpLdaDCallIdx   // D := the last call's result at index A (Nil if out of range)
	OpTablePropertyLookupError
	OpTableMemberLookupErrorR
	OpTableMemberLookupErrorL

	opCount
)

var opNames = map[Op]string{
	OpNop:                       "Nop",
	OpConstN:                    "ConstN",
	OpConstI:                    "ConstI",
	OpConstF:                    "ConstF",
	OpConstS:                    "ConstS",
	OpWrapI:                     "WrapI",
	OpWrapF:                     "WrapF",
	OpWrapS:                     "WrapS",
	OpWrapT:                     "WrapT",
	OpWrapFunc:                  "WrapFunc",
	OpCastI:                     "CastI",
	OpCastF:                     "CastF",
	OpCastS:                     "CastS",
	OpCastT:                     "CastT",
	OpLdaDR:                     "LdaDR",
	OpLdaDL:                     "LdaDL",
	OpLdaDGl:                    "LdaDGl",
	OpStrDR:                     "StrDR",
	OpStrDL:                     "StrDL",
	OpStrDGl:                    "StrDGl",
	OpDAddR:                     "DAddR",
	OpDAddL:                     "DAddL",
	OpDSubR:                     "DSubR",
	OpDSubL:                     "DSubL",
	OpDMulR:                     "DMulR",
	OpDMulL:                     "DMulL",
	OpDDivR:                     "DDivR",
	OpDDivL:                     "DDivL",
	OpDConcatL:                  "DConcatL",
	OpDNeg:                      "DNeg",
	OpDNot:                      "DNot",
	OpEqTestL:                   "EqTestL",
	OpOrderTestL:                "OrderTestL",
	OpNilTest:                   "NilTest",
	OpLabel:                     "Label",
	OpJmp:                       "Jmp",
	OpJmpEQ:                     "JmpEQ",
	OpJmpNE:                     "JmpNE",
	OpJmpLT:                     "JmpLT",
	OpJmpGT:                     "JmpGT",
	OpJmpLE:                     "JmpLE",
	OpJmpGE:                     "JmpGE",
	OpStrVC:                     "StrVC",
	OpLdaVC:                     "LdaVC",
	OpStageReset:                "StageReset",
	OpStageD:                    "StageD",
	OpDCall:                     "DCall",
	OpTypedCall:                 "TypedCall",
	OpRet:                       "Ret",
	OpNewT:                      "NewT",
	OpAssocL:                    "AssocL",
	OpPushD:                     "PushD",
	OpLdaIndexL:                 "LdaIndexL",
	OpStrIndexLL:                "StrIndexLL",
	OpRDShiftRight:              "RDShiftRight",
	OpLdaDCallIdx:               "LdaDCallIdx",
	OpTablePropertyLookupError:  "TablePropertyLookupError",
	OpTableMemberLookupErrorR:   "TableMemberLookupErrorR",
	OpTableMemberLookupErrorL:   "TableMemberLookupErrorL",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "Unknown"
}

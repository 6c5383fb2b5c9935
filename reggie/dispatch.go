package reggie

import (
	"github.com/lollipopkit/reggie/consts"
	"github.com/lollipopkit/reggie/lang"
)

// dispatchLoop runs frames on top of m.frames until the initial frame
// returns, implementing spec §4.7's calling convention (argument
// registers, value_count, accumulators) via the fetch-decode-execute
// loop grounded in original_source/reggie/src/runtime.rs's eval_loop.
// It is stepOnce run to completion; cmd/reggie-debug drives stepOnce
// directly, one instruction at a time, for its single-step view.
func (m *Machine) dispatchLoop() ([]lang.Value, error) {
	baseDepth := len(m.frames)
	for {
		done, ret, err := m.stepOnce(baseDepth)
		if err != nil {
			return nil, err
		}
		if done {
			return ret, nil
		}
	}
}

// stepOnce executes exactly one instruction (or, if the current frame
// has fallen off the end of its block, performs the implicit empty
// return that entails). done reports whether the frame at baseDepth
// itself just returned, ending the run baseDepth was entered at.
func (m *Machine) stepOnce(baseDepth int) (done bool, ret []lang.Value, err error) {
	f := m.current()
	if int(f.pc) >= len(f.block.Instructions) {
		// fell off the end without an explicit return: yields no values
		m.frames = m.frames[:len(m.frames)-1]
		if len(m.frames) < baseDepth {
			return true, nil, nil
		}
		m.lastCallResult = nil
		m.current().d = nil
		return false, nil, nil
	}
	inst := f.block.Instructions[f.pc]
	f.pc++

	if err := m.exec(f, inst); err != nil {
		return false, nil, err
	}

	if f.returning {
		r := f.ret
		m.frames = m.frames[:len(m.frames)-1]
		if len(m.frames) < baseDepth {
			return true, r, nil
		}
		m.lastCallResult = r
		caller := m.current()
		if len(r) > 0 {
			caller.d = r[0]
		} else {
			caller.d = nil
		}
	}
	return false, nil, nil
}

func (m *Machine) exec(f *frame, inst Instruction) error {
	switch inst.Op {
	case OpNop, OpLabel:
		// no-op at runtime; jump targets are already resolved offsets.

	case OpConstN:
		f.d = nil
	case OpConstI:
		f.i = inst.A
	case OpConstF:
		f.f = f.block.Floats[inst.A]
	case OpConstS:
		f.s = f.block.Strings[inst.A]

	case OpWrapI:
		f.d = f.i
	case OpWrapF:
		f.d = f.f
	case OpWrapS:
		f.d = f.s
	case OpWrapT:
		f.d = f.t
	case OpWrapFunc:
		f.d = lang.LuaFunction(f.i)

	case OpCastI:
		i, ok := f.d.(int32)
		f.i = i
		f.eq = ok
	case OpCastF:
		v, ok := f.d.(float64)
		f.f = v
		f.eq = ok
	case OpCastS:
		s, ok := f.d.(string)
		f.s = s
		f.eq = ok
	case OpCastT:
		t, ok := f.d.(*lang.Table)
		f.t = t
		f.eq = ok

	case OpLdaDR:
		f.d = f.args[inst.A]
	case OpLdaDL:
		f.d = f.locals[inst.A]
	case OpLdaDGl:
		f.d = m.Globals.ValueOfCell(lang.GlobalCellID(inst.A))
	case OpStrDR:
		f.args[inst.A] = f.d
	case OpStrDL:
		f.locals[inst.A] = f.d
	case OpStrDGl:
		m.Globals.SetCell(lang.GlobalCellID(inst.A), f.d)

	case OpDAddR:
		return m.binArith(f, lang.Add, f.args[inst.A])
	case OpDAddL:
		return m.binArith(f, lang.Add, f.locals[inst.A])
	case OpDSubR:
		return m.binArith(f, lang.Sub, f.args[inst.A])
	case OpDSubL:
		return m.binArith(f, lang.Sub, f.locals[inst.A])
	case OpDMulR:
		return m.binArith(f, lang.Mul, f.args[inst.A])
	case OpDMulL:
		return m.binArith(f, lang.Mul, f.locals[inst.A])
	case OpDDivR:
		return m.binArith(f, lang.Div, f.args[inst.A])
	case OpDDivL:
		return m.binArith(f, lang.Div, f.locals[inst.A])
	case OpDConcatL:
		v, err := lang.Concat(f.locals[inst.A], f.d)
		if err != nil {
			return err
		}
		f.d = v
	case OpDNeg:
		v, err := lang.UnaryMinus(f.d)
		if err != nil {
			return err
		}
		f.d = v
	case OpDNot:
		f.d = lang.Not(f.d)

	case OpEqTestL:
		f.eq = lang.Eq(f.d, f.locals[inst.A])
	case OpOrderTestL:
		return m.orderTest(f, f.locals[inst.A])
	case OpNilTest:
		f.eq = f.d == nil

	case OpJmp:
		f.pc = inst.A
	case OpJmpEQ:
		if f.eq {
			f.pc = inst.A
		}
	case OpJmpNE:
		if !f.eq {
			f.pc = inst.A
		}
	case OpJmpLT:
		if f.ord == orderLT {
			f.pc = inst.A
		}
	case OpJmpGT:
		if f.ord == orderGT {
			f.pc = inst.A
		}
	case OpJmpLE:
		if f.ord == orderLT || f.ord == orderEQ {
			f.pc = inst.A
		}
	case OpJmpGE:
		if f.ord == orderGT || f.ord == orderEQ {
			f.pc = inst.A
		}

	case OpStrVC:
		f.valueCount = f.i
	case OpLdaVC:
		f.i = f.valueCount
	case OpStageReset:
		f.stage = f.stage[:0]
	case OpStageD:
		f.stage = append(f.stage, f.d)

	case OpDCall:
		return m.call(f)
	case OpRet:
		f.ret = append([]lang.Value(nil), f.stage...)
		f.returning = true

	case OpNewT:
		// Table construction lowers to NewT + a sequence of StrIndexLL
		// stores against a spilled local register (the literal's array
		// positions are known integer constants at compile time, so
		// there is no need for a separate T-accumulator append op): see
		// compiler.go's compileTable. OpNewT lands the fresh table
		// straight in D, ready to be spilled like any other value.
		f.d = lang.NewTable()
	case OpAssocL:
		return lang.SetIndex(f.t, f.locals[inst.A], f.d)
	case OpPushD:
		return f.t.Set(int32(f.t.Len()), f.d)
	case OpLdaIndexL:
		v, err := lang.Index(f.locals[inst.A], f.d)
		if err != nil {
			return err
		}
		f.d = v
	case OpStrIndexLL:
		return lang.SetIndex(f.locals[inst.A], f.locals[inst.B], f.d)

	case OpRDShiftRight:
		f.stage = append(f.stage, m.lastCallResult...)
	case OpLdaDCallIdx:
		if int(inst.A) < len(m.lastCallResult) {
			f.d = m.lastCallResult[inst.A]
		} else {
			f.d = nil
		}

	default:
		return &lang.NotImplementedError{Opcode: inst.Op.String()}
	}
	return nil
}

// binArith computes op(lhs, D): the compiler always spills the left
// operand into a register before evaluating the right one into D, so
// lhs here is the left operand and f.d is the right — order matters for
// Sub and Div.
func (m *Machine) binArith(f *frame, op func(a, b lang.Value) (lang.Value, error), lhs lang.Value) error {
	v, err := op(lhs, f.d)
	if err != nil {
		return err
	}
	f.d = v
	return nil
}

// orderTest compares lhs (the left operand, already spilled to a
// register) against f.d (the right operand).
func (m *Machine) orderTest(f *frame, lhs lang.Value) error {
	lt, errLt := lang.Compare(lhs, f.d, lang.OpLt)
	if errLt != nil {
		return errLt
	}
	if lt {
		f.ord = orderLT
		return nil
	}
	gt, errGt := lang.Compare(lhs, f.d, lang.OpGt)
	if errGt != nil {
		return errGt
	}
	if gt {
		f.ord = orderGT
		return nil
	}
	f.ord = orderEQ
	return nil
}

// call implements OpDCall: the callable sits in f.d, its actual
// arguments staged in f.stage (spec §4.7's calling convention).
func (m *Machine) call(f *frame) error {
	callee := f.d
	callArgs := append([]lang.Value(nil), f.stage...)

	switch fn := callee.(type) {
	case lang.LuaFunction:
		if len(m.frames) >= consts.MaxFrameDepth {
			return &lang.StackOverflowError{Depth: len(m.frames)}
		}
		block := &m.blocks[fn]
		m.frames = append(m.frames, newFrame(block, callArgs))
		return nil
	case *lang.NativeFunction:
		ctx := lang.NewContext(m.Globals, m.Stdout)
		ret, err := fn.Fn(ctx, callArgs)
		if err != nil {
			return err
		}
		m.lastCallResult = ret.Values
		f.d = ret.First()
		return nil
	default:
		return &lang.NotCallableError{Value: callee}
	}
}

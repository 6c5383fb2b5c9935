package reggie

import (
	"io"

	"github.com/lollipopkit/reggie/lang"
)

// order mirrors spec §3's ordering flag: the outcome of the last
// OpOrderTestL, consumed by JmpLT/JmpGT/JmpLE/JmpGE.
type order int

const (
	orderLT order = iota
	orderEQ
	orderGT
	orderUnordered
)

// frame is one call's register file and accumulator set. Accumulators
// are per-frame (not machine-global) since a callee must not clobber
// its caller's D/I/F/S/T while it runs.
type frame struct {
	block *CodeBlock
	pc    int32

	args   []lang.Value // this call's own parameters, fixed size (ArgCount); read/written by LdaDR/StrDR
	locals []lang.Value // local register file (Dynamic only)
	stage  []lang.Value // dynamic staging buffer for an outgoing call's arguments or this call's return values

	d lang.Value // D accumulator
	i int32      // I accumulator
	f float64    // F accumulator
	s string     // S accumulator
	t *lang.Table

	eq         bool  // EQ/NE flag, set by OpEqTestL/OpNilTest/OpCastX
	ord        order // ordering flag, set by OpOrderTestL
	valueCount int32 // reserved: see StrVC/LdaVC's doc comment in opcode.go

	ret       []lang.Value // set by OpRet, read by the caller after the callee frame pops
	returning bool
}

func newFrame(block *CodeBlock, args []lang.Value) *frame {
	locals := make([]lang.Value, block.Meta.LocalCount)
	a := make([]lang.Value, block.Meta.ArgCount)
	copy(a, args)
	return &frame{block: block, args: a, locals: locals}
}

// Machine is Reggie's runtime: spec §3's described accumulators and
// register files, realized as a per-frame struct, plus the shared
// global store and a call stack of frames.
type Machine struct {
	Globals *lang.Globals
	Stdout  io.Writer

	blocks []CodeBlock

	// lastCallResult holds the full multi-value result of the most
	// recently returned call, so OpRDShiftRight can splice values
	// beyond the first into a subsequent call's argument list (spec
	// §4.2's "tail position" splicing, realized at the bytecode level).
	lastCallResult []lang.Value

	frames []*frame

	// debugBaseDepth is the frame depth LoadModule started at, the
	// baseline Step compares len(frames) against to know when the
	// loaded module's top-level call has itself returned.
	debugBaseDepth int
}

// NewMachine builds a Machine sharing globals (and therefore built-ins
// and REPL-visible state) with whichever other tier is also running
// against it (engine.Engine wires both tiers to one *lang.Globals).
func NewMachine(globals *lang.Globals, stdout io.Writer) *Machine {
	return &Machine{Globals: globals, Stdout: stdout}
}

func (m *Machine) current() *frame {
	return m.frames[len(m.frames)-1]
}

// Run executes a CompiledModule's top-level chunk to completion and
// returns its collapsed multi-value result (spec §6's eval_module).
func (m *Machine) Run(compiled *CompiledModule) (lang.ReturnValue, error) {
	m.LoadModule(compiled)
	values, err := m.dispatchLoop()
	if err != nil {
		return lang.ReturnValue{}, err
	}
	return lang.PackReturn(values), nil
}

// LoadModule prepares m to execute compiled's top-level chunk one
// instruction at a time via Step, without running it to completion the
// way Run does. cmd/reggie-debug calls this once, then drives Step in
// its own render loop.
func (m *Machine) LoadModule(compiled *CompiledModule) {
	m.blocks = compiled.Blocks
	top := &compiled.Blocks[compiled.TopLevel]
	m.frames = append(m.frames[:0], newFrame(top, nil))
	m.lastCallResult = nil
	m.debugBaseDepth = len(m.frames)
}

// Step executes exactly one instruction and reports whether the
// module loaded by LoadModule has finished running (its top-level
// frame returned). Any error aborts the run; done is meaningless in
// that case.
func (m *Machine) Step() (done bool, err error) {
	done, _, err = m.stepOnce(m.debugBaseDepth)
	return done, err
}

// Depth reports the current call-stack depth, for a debugger's frame
// indicator.
func (m *Machine) Depth() int {
	return len(m.frames)
}

// CurrentBlock returns the code block the frame on top of the stack is
// executing, or nil once the loaded module has finished.
func (m *Machine) CurrentBlock() *CodeBlock {
	if len(m.frames) == 0 {
		return nil
	}
	return m.current().block
}

// PC returns the current frame's program counter, or -1 once the
// loaded module has finished.
func (m *Machine) PC() int32 {
	if len(m.frames) == 0 {
		return -1
	}
	return m.current().pc
}

// Registers is a snapshot of one frame's accumulators and register
// files, read by cmd/reggie-debug's live-state pane. It intentionally
// aliases the frame's slices rather than copying them — callers must
// treat it as read-only and re-fetch after each Step.
type Registers struct {
	D lang.Value
	I int32
	F float64
	S string
	T *lang.Table

	Args   []lang.Value
	Locals []lang.Value
}

// CurrentRegisters snapshots the top frame's accumulators and register
// files. Panics if called with no loaded/running module, same as
// indexing an empty stack would.
func (m *Machine) CurrentRegisters() Registers {
	f := m.current()
	return Registers{
		D: f.d, I: f.i, F: f.f, S: f.s, T: f.t,
		Args:   f.args,
		Locals: f.locals,
	}
}

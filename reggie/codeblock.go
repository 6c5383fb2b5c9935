package reggie

import "fmt"

// ArityKind distinguishes the cases of the ReturnArity lattice (spec
// §4.6 / GLOSSARY: "Return Arity").
type ArityKind int

const (
	ArityNotSpecified ArityKind = iota
	ArityConstant
	ArityBounded
	ArityMinBounded
	ArityUnbounded
)

// ReturnArity tracks, at compile time, how many values a function's
// return statements are known to produce, widening as more return
// statements are seen. NotSpecified is the starting point (a function
// with no return statement yet compiled); join narrows towards
// Constant when every return seen agrees, Bounded when they disagree
// within a range, MinBounded when a splice makes the upper bound
// unknown, and Unbounded once nothing more can be said.
type ReturnArity struct {
	Kind ArityKind
	N    int // Constant
	Min  int // Bounded, MinBounded
	Max  int // Bounded
}

func ArityNone() ReturnArity                { return ReturnArity{Kind: ArityNotSpecified} }
func ArityExactly(n int) ReturnArity         { return ReturnArity{Kind: ArityConstant, N: n} }
func ArityAtLeast(min int) ReturnArity       { return ReturnArity{Kind: ArityMinBounded, Min: min} }
func ArityBetween(min, max int) ReturnArity  { return ReturnArity{Kind: ArityBounded, Min: min, Max: max} }
func ArityAny() ReturnArity                  { return ReturnArity{Kind: ArityUnbounded} }

// Join combines the arity seen so far with a newly-compiled return
// statement's arity. This preserves a quirk documented in spec §9: a
// MinBounded joined with a Constant(0) widens straight to Unbounded
// rather than narrowing to MinBounded — carried over verbatim rather
// than "fixed", since spec §9 calls this out as observable behavior a
// conforming implementation must reproduce, not a defect to silently
// correct.
func (a ReturnArity) Join(b ReturnArity) ReturnArity {
	if a.Kind == ArityNotSpecified {
		return b
	}
	if b.Kind == ArityNotSpecified {
		return a
	}
	if a.Kind == ArityMinBounded && b.Kind == ArityConstant && b.N == 0 {
		return ArityAny()
	}
	if b.Kind == ArityMinBounded && a.Kind == ArityConstant && a.N == 0 {
		return ArityAny()
	}
	if a.Kind == ArityUnbounded || b.Kind == ArityUnbounded {
		return ArityAny()
	}
	if a.Kind == ArityConstant && b.Kind == ArityConstant {
		if a.N == b.N {
			return a
		}
		lo, hi := a.N, b.N
		if lo > hi {
			lo, hi = hi, lo
		}
		return ArityBetween(lo, hi)
	}
	if a.Kind == ArityMinBounded || b.Kind == ArityMinBounded {
		min := minArityFloor(a)
		if f := minArityFloor(b); f < min {
			min = f
		}
		return ArityAtLeast(min)
	}
	lo := minArityFloor(a)
	if f := minArityFloor(b); f < lo {
		lo = f
	}
	hi := maxArityCeil(a)
	if c := maxArityCeil(b); c > hi {
		hi = c
	}
	return ArityBetween(lo, hi)
}

func minArityFloor(a ReturnArity) int {
	switch a.Kind {
	case ArityConstant:
		return a.N
	case ArityBounded, ArityMinBounded:
		return a.Min
	default:
		return 0
	}
}

func maxArityCeil(a ReturnArity) int {
	switch a.Kind {
	case ArityConstant:
		return a.N
	case ArityBounded:
		return a.Max
	default:
		return a.N
	}
}

// CodeMeta holds a CodeBlock's static description, separated from its
// Instructions the way spec §4.6 separates "a code block's metadata"
// from its body.
type CodeMeta struct {
	DebugName   string
	ArgCount    int32
	LocalCount  int32
	ReturnArity ReturnArity
	IsTopLevel  bool
}

// CodeBlock is one compiled function (or the top-level chunk): its
// metadata, instruction stream, and constant pools. Int literals ride
// directly in an instruction's operand field rather than a pool (spec
// §4.5's ConstI takes an immediate); only Float and String need a pool
// since they don't fit in (or can't safely alias) a 32-bit operand.
// Jump targets are already resolved to absolute instruction offsets by
// the time compilation finishes, so no separate label table is kept at
// runtime.
type CodeBlock struct {
	Meta         CodeMeta
	Instructions []Instruction
	Floats       []float64
	Strings      []string
}

// CompiledModule is the output of Compile: every function's CodeBlock
// plus the top-level chunk's, addressable by BlockID.
type CompiledModule struct {
	Blocks   []CodeBlock
	TopLevel BlockID
}

func (m *CompiledModule) Block(id BlockID) *CodeBlock {
	return &m.Blocks[id]
}

func (cb *CodeBlock) String() string {
	return fmt.Sprintf("CodeBlock(%s, args=%d, locals=%d, instructions=%d)",
		cb.Meta.DebugName, cb.Meta.ArgCount, cb.Meta.LocalCount, len(cb.Instructions))
}

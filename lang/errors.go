package lang

import "fmt"

// EvalError is the marker interface satisfied by every structured error
// the engine can produce (spec §7). All of them also satisfy the plain
// `error` interface; EvalError exists so callers can type-switch on "is
// this one of ours" without enumerating every concrete type.
type EvalError interface {
	error
	evalError()
}

// TypeError variants (spec §7).

type ArithmeticBinaryError struct {
	Lhs, Rhs Value
	Op       string
}

func (e *ArithmeticBinaryError) Error() string {
	return fmt.Sprintf("attempt to perform arithmetic (%s) on %s and %s", e.Op, Display(e.Lhs), Display(e.Rhs))
}
func (*ArithmeticBinaryError) evalError() {}

type ArithmeticUnaryError struct {
	Operand Value
}

func (e *ArithmeticUnaryError) Error() string {
	return fmt.Sprintf("attempt to perform arithmetic (unary -) on %s", Display(e.Operand))
}
func (*ArithmeticUnaryError) evalError() {}

type OrderingError struct {
	Lhs, Rhs Value
	Op       string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("attempt to compare %s with %s using %s", TypeName(e.Lhs), TypeName(e.Rhs), e.Op)
}
func (*OrderingError) evalError() {}

type StringConcatError struct {
	Lhs, Rhs Value
}

func (e *StringConcatError) Error() string {
	return fmt.Sprintf("attempt to concatenate %s and %s", TypeName(e.Lhs), TypeName(e.Rhs))
}
func (*StringConcatError) evalError() {}

type NotCallableError struct {
	Value Value
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("attempt to call a %s value", TypeName(e.Value))
}
func (*NotCallableError) evalError() {}

type NotIndexableError struct {
	Value Value
}

func (e *NotIndexableError) Error() string {
	return fmt.Sprintf("attempt to index a %s value", TypeName(e.Value))
}
func (*NotIndexableError) evalError() {}

type NilLookupError struct{}

func (e *NilLookupError) Error() string { return "table index is nil" }
func (*NilLookupError) evalError()      {}

type NilAssignError struct {
	Value Value
}

func (e *NilAssignError) Error() string {
	return fmt.Sprintf("table index is nil (assigning %s)", Display(e.Value))
}
func (*NilAssignError) evalError() {}

type CannotAccessPropertyError struct {
	Property string
	Of       Value
}

func (e *CannotAccessPropertyError) Error() string {
	return fmt.Sprintf("attempt to access property %q of a %s value", e.Property, TypeName(e.Of))
}
func (*CannotAccessPropertyError) evalError() {}

type CannotAccessMemberError struct {
	Member Value
	Of     Value
}

func (e *CannotAccessMemberError) Error() string {
	return fmt.Sprintf("attempt to access member %s of a %s value", Display(e.Member), TypeName(e.Of))
}
func (*CannotAccessMemberError) evalError() {}

type CannotAssignPropertyError struct {
	Property string
	Of       Value
}

func (e *CannotAssignPropertyError) Error() string {
	return fmt.Sprintf("attempt to assign property %q of a %s value", e.Property, TypeName(e.Of))
}
func (*CannotAssignPropertyError) evalError() {}

type ArgumentTypeError struct {
	Position int
	Expected string
	Got      Value
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("bad argument #%d (%s expected, got %s)", e.Position, e.Expected, TypeName(e.Got))
}
func (*ArgumentTypeError) evalError() {}

// AssertionError wraps the optional message passed to `assert`.
type AssertionError struct {
	Message *string
}

func (e *AssertionError) Error() string {
	if e.Message != nil {
		return *e.Message
	}
	return "assertion failed!"
}
func (*AssertionError) evalError() {}

// IOError wraps an underlying I/O failure (e.g. from `print`).
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("io error: %s", e.Err) }
func (*IOError) evalError()      {}

// Utf8Error reports a string that is not valid UTF-8 where one was required.
type Utf8Error struct{}

func (e *Utf8Error) Error() string { return "invalid utf-8 sequence" }
func (*Utf8Error) evalError()      {}

// StackOverflowError is raised when a call would push the frame stack
// past its configured depth limit (consts.MaxFrameDepth), distinguishing
// unbounded recursion from a host-stack crash.
type StackOverflowError struct {
	Depth int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack overflow (depth %d)", e.Depth)
}
func (*StackOverflowError) evalError() {}

// NotImplementedError is raised by the VM when it fetches an opcode the
// compiler never emits but that exists in the instruction table (spec
// §9: "Emitting or dispatching an unsupported instruction must fail with
// a clear 'not implemented' error, not silently succeed").
type NotImplementedError struct {
	Opcode string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("instruction not implemented: %s", e.Opcode)
}
func (*NotImplementedError) evalError() {}

package lang

// Ops implements spec §4.1 (Value & Table Semantics). Both execution
// tiers call these directly: the tree-walking evaluator for every binary
// expression, and the Reggie VM's dynamic (`D…`) opcodes, which spec §4.5
// says "perform the coercion rules of §4.1" — so the rules live here
// once instead of being re-implemented per tier.

// Add, Sub, Mul implement `+ - *`: Int+Int stays Int when both operands
// are Int; otherwise both are coerced to Float.
func Add(a, b Value) (Value, error) { return arith(a, b, "+", func(x, y int32) int32 { return x + y }, func(x, y float64) float64 { return x + y }) }
func Sub(a, b Value) (Value, error) {
	return arith(a, b, "-", func(x, y int32) int32 { return x - y }, func(x, y float64) float64 { return x - y })
}
func Mul(a, b Value) (Value, error) {
	return arith(a, b, "*", func(x, y int32) int32 { return x * y }, func(x, y float64) float64 { return x * y })
}

func arith(a, b Value, op string, iop func(x, y int32) int32, fop func(x, y float64) float64) (Value, error) {
	if !IsNumberLike(a) || !IsNumberLike(b) {
		return nil, &ArithmeticBinaryError{Lhs: a, Rhs: b, Op: op}
	}
	if ai, aok := a.(int32); aok {
		if bi, bok := b.(int32); bok {
			return iop(ai, bi), nil
		}
	}
	af, _ := CoerceToFloat(a)
	bf, _ := CoerceToFloat(b)
	return fop(af, bf), nil
}

// Div implements `/`: division always produces Float.
func Div(a, b Value) (Value, error) {
	if !IsNumberLike(a) || !IsNumberLike(b) {
		return nil, &ArithmeticBinaryError{Lhs: a, Rhs: b, Op: "/"}
	}
	af, _ := CoerceToFloat(a)
	bf, _ := CoerceToFloat(b)
	return af / bf, nil
}

// UnaryMinus implements unary `-`: produces Float(-n), or Int(-n) if Int.
func UnaryMinus(v Value) (Value, error) {
	if !IsNumberLike(v) {
		return nil, &ArithmeticUnaryError{Operand: v}
	}
	if i, ok := v.(int32); ok {
		return -i, nil
	}
	f, _ := CoerceToFloat(v)
	return -f, nil
}

// Not implements unary `not`: yields 1 if falsy else Nil.
func Not(v Value) Value {
	return FromBool(!Truthy(v))
}

// CompareOp identifies which of `< > <= >=` is being evaluated.
type CompareOp int

const (
	OpLt CompareOp = iota
	OpGt
	OpLe
	OpGe
)

func (op CompareOp) String() string {
	switch op {
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// Compare implements `< > <= >=`: both Number, both String, or one
// Number and one String (the number is formatted to decimal, then
// compared lexicographically — spec §9's open question, preserved
// verbatim: "10" < 9 is true, since "10" < "9" lexicographically).
func Compare(a, b Value, op CompareOp) (bool, error) {
	lt, le, ok := compareLtLe(a, b)
	if !ok {
		return false, &OrderingError{Lhs: a, Rhs: b, Op: op.String()}
	}
	switch op {
	case OpLt:
		return lt, nil
	case OpGt:
		return !le, nil
	case OpLe:
		return le, nil
	case OpGe:
		return !lt, nil
	default:
		panic("lang: unknown CompareOp")
	}
}

func compareLtLe(a, b Value) (lt, le, ok bool) {
	an, aIsNum := numberOf(a)
	bn, bIsNum := numberOf(b)
	if aIsNum && bIsNum {
		return an < bn, an <= bn, true
	}
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	switch {
	case aIsStr && bIsStr:
		return as < bs, as <= bs, true
	case aIsNum && bIsStr:
		s, _ := CoerceToString(a)
		return s < bs, s <= bs, true
	case aIsStr && bIsNum:
		s, _ := CoerceToString(b)
		return as < s, as <= s, true
	default:
		return false, false, false
	}
}

func numberOf(v Value) (float64, bool) {
	switch x := v.(type) {
	case int32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// Concat implements `..`: both operands must be string-like; numbers are
// stringified with the platform's default decimal formatting.
func Concat(a, b Value) (Value, error) {
	as, aok := CoerceToString(a)
	bs, bok := CoerceToString(b)
	if !aok || !bok {
		return nil, &StringConcatError{Lhs: a, Rhs: b}
	}
	return as + bs, nil
}

// Index implements `t[k]` / `t.name`: t must be a Table, k must be
// non-Nil; a missing key yields Nil.
func Index(t, k Value) (Value, error) {
	tbl, ok := t.(*Table)
	if !ok {
		return nil, &NotIndexableError{Value: t}
	}
	if k == nil {
		return nil, &NilLookupError{}
	}
	return tbl.Get(k), nil
}

// SetIndex implements assignment to `t[k]` / `t.name`.
func SetIndex(t, k, v Value) error {
	tbl, ok := t.(*Table)
	if !ok {
		return &CannotAssignPropertyError{Property: displayKey(k), Of: t}
	}
	if err := tbl.Set(k, v); err != nil {
		return err
	}
	return nil
}

func displayKey(k Value) string {
	if s, ok := k.(string); ok {
		return s
	}
	return Display(k)
}

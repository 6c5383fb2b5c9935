// Package lang implements the shared value and table model both execution
// tiers (the tree-walking evaluator and the Reggie register VM) operate
// over: tagged values, tables, the global cell store, tail-value splicing,
// and the structured error taxonomy.
package lang

import (
	"fmt"
	"math/rand"

	"github.com/lollipopkit/reggie/utils"
)

// Value is the tagged sum described in spec §3: Nil, Int, Float, String,
// Table, LuaFunction, NativeFunction. It is carried as a Go `any`; the
// concrete dynamic type IS the tag:
//
//	nil             -> Nil
//	int32           -> Int
//	float64         -> Float
//	string          -> String
//	*Table          -> Table
//	LuaFunction     -> LuaFunction (a BlockID)
//	*NativeFunction -> NativeFunction
type Value = any

// LuaFunction is a BlockID: an index into the Machine's code block table.
// A distinct named type keeps it from colliding with the Int tag when
// both are boxed in a Value.
type LuaFunction int32

// NativeFunction wraps a host callable. Shared by reference so identity
// equality (spec §3) works the same as for Table.
type NativeFunction struct {
	Name string
	Fn   func(ctx *Context, args []Value) (ReturnValue, error)
}

func (f *NativeFunction) String() string {
	return fmt.Sprintf("function: native:%p", f)
}

// TypeName returns the type's display name, used by the `type` builtin
// and in error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case int32, float64:
		return "number"
	case string:
		return "string"
	case *Table:
		return "table"
	case LuaFunction, *NativeFunction:
		return "function"
	default:
		panic(fmt.Sprintf("lang: value of unexpected Go type %T", v))
	}
}

// Truthy implements spec §3: only Nil is falsy.
func Truthy(v Value) bool {
	return v != nil
}

// True and False are the canonical representations used by comparisons
// and unary `not` (spec: "there is no boolean type; true is Int(1), false
// is Nil").
func True() Value  { return int32(1) }
func False() Value { return nil }

func FromBool(b bool) Value {
	if b {
		return True()
	}
	return False()
}

// IsNumberLike reports whether v is Int, Float, or a String that parses
// as a number.
func IsNumberLike(v Value) bool {
	switch x := v.(type) {
	case int32, float64:
		return true
	case string:
		_, ok := utils.ParseFloat(x)
		return ok
	default:
		return false
	}
}

// IsStringLike reports whether v is Int, Float, or String.
func IsStringLike(v Value) bool {
	switch v.(type) {
	case int32, float64, string:
		return true
	default:
		return false
	}
}

// CoerceToFloat converts a number-like value to float64.
func CoerceToFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case int32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		return utils.ParseFloat(x)
	default:
		return 0, false
	}
}

// CoerceToString renders a string-like value as its canonical text, used
// by concat, print, strlen, strsub, and table stringification.
func CoerceToString(v Value) (string, bool) {
	switch x := v.(type) {
	case int32:
		return fmt.Sprintf("%d", x), true
	case float64:
		return utils.FormatNumber(x), true
	case string:
		return x, true
	default:
		return "", false
	}
}

// Display renders any value the way `print` does (spec §4.8): Nil ->
// "nil", numbers -> decimal, strings -> raw bytes, Table/Function ->
// "table:"/"function:" plus an address-like identifier.
func Display(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case int32:
		return fmt.Sprintf("%d", x)
	case float64:
		return utils.FormatNumber(x)
	case string:
		return x
	case *Table:
		return fmt.Sprintf("table: %p", x)
	case LuaFunction:
		return fmt.Sprintf("function: lua:%#x", int32(x))
	case *NativeFunction:
		return x.String()
	default:
		panic(fmt.Sprintf("lang: value of unexpected Go type %T", v))
	}
}

// eqWithNaN treats NaN as equal to itself; used by total_eq (spec §3 and
// §8's "total_eq(v, v) holds if v is not NaN" round-trip law, extended so
// total_eq itself is reflexive for NaN per the open question in §9).
func eqWithNaN(a, b float64) bool {
	if a != a && b != b { // both NaN
		return true
	}
	return a == b
}

// TotalEq is the stricter, tag-sensitive equivalence used by tests
// (spec §3): NaN equals NaN; Int and Float of equal numerical value are
// NOT equal.
func TotalEq(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case int32:
		y, ok := b.(int32)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && eqWithNaN(x, y)
	case string:
		y, ok := b.(string)
		return ok && x == y
	case *Table:
		y, ok := b.(*Table)
		return ok && x == y
	case LuaFunction:
		y, ok := b.(LuaFunction)
		return ok && x == y
	case *NativeFunction:
		y, ok := b.(*NativeFunction)
		return ok && x == y
	default:
		return false
	}
}

// Eq implements spec §4.1 equality: Int(n) == Float(f) iff f is
// integer-valued and equal to n; NaN is not equal to itself; everything
// else compares per TotalEq's tag-sensitive rule except the numeric
// cross-tag case.
func Eq(a, b Value) bool {
	switch x := a.(type) {
	case int32:
		switch y := b.(type) {
		case int32:
			return x == y
		case float64:
			return float64(x) == y
		default:
			return false
		}
	case float64:
		switch y := b.(type) {
		case int32:
			return x == float64(y)
		case float64:
			return x == y // NaN != NaN here, matches spec
		default:
			return false
		}
	default:
		return TotalEq(a, b)
	}
}

// Random returns a Float uniformly in [0,1) for the `random` builtin.
func Random() float64 {
	return rand.Float64()
}

package lang

import "math"

// Table is a hash-keyed associative container with shared ownership:
// every Value holding a *Table sees the same underlying storage, and
// mutation through any holder is visible to all (spec §3, §5). The
// array part is an optimization for small-integer keys starting at 0,
// grounded in the teacher's lkTable array+map hybrid; it is an
// implementation detail, not part of the observable model.
type Table struct {
	arr []Value
	m   map[Value]Value
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Get returns the value stored at key, or Nil if key is missing or was
// never set. A NaN Float key is accepted for storage (Set) but can never
// be retrieved here, because Go's NaN != NaN map-key comparison makes
// the lookup miss — matching spec §9's "must not crash" requirement
// without any special-casing.
func (t *Table) Get(key Value) Value {
	key = normalizeKey(key)
	if idx, ok := key.(int32); ok && idx >= 0 && int(idx) < len(t.arr) {
		return t.arr[idx]
	}
	if t.m == nil {
		return nil
	}
	return t.m[key]
}

// Set stores value at key. Assigning Nil as a value is allowed (it
// deletes the slot). Assigning with a Nil key fails with NilAssignError
// (spec §4.1); this is the only failure mode.
func (t *Table) Set(key, value Value) error {
	if key == nil {
		return &NilAssignError{Value: value}
	}
	key = normalizeKey(key)

	if idx, ok := key.(int32); ok && idx >= 0 {
		i := int(idx)
		arrLen := len(t.arr)
		if i < arrLen {
			t.arr[i] = value
			if i == arrLen-1 && value == nil {
				t.shrinkArray()
			}
			return nil
		}
		if i == arrLen {
			if t.m != nil {
				delete(t.m, key)
			}
			if value != nil {
				t.arr = append(t.arr, value)
				t.expandArray()
			}
			return nil
		}
	}

	if value == nil {
		if t.m != nil {
			delete(t.m, key)
		}
		return nil
	}
	if t.m == nil {
		t.m = make(map[Value]Value, 8)
	}
	t.m[key] = value
	return nil
}

// normalizeKey folds an integer-valued Float key onto the equivalent Int
// key, so t[1] and t[1.0] address the same slot (Lua table semantics;
// NaN and non-integer floats pass through unchanged and simply become
// ordinary map keys).
func normalizeKey(key Value) Value {
	if f, ok := key.(float64); ok {
		if math.IsNaN(f) {
			return key
		}
		if i, ok := FloatKeyToInt(f); ok {
			return i
		}
	}
	return key
}

// FloatKeyToInt narrows f to int32 when it round-trips exactly.
func FloatKeyToInt(f float64) (int32, bool) {
	i := int32(f)
	if float64(i) == f {
		return i, true
	}
	return 0, false
}

func (t *Table) shrinkArray() {
	for i := len(t.arr) - 1; i >= 0; i-- {
		if t.arr[i] != nil {
			t.arr = t.arr[:i+1]
			return
		}
	}
	t.arr = t.arr[:0]
}

func (t *Table) expandArray() {
	for next := int32(len(t.arr)); ; next++ {
		if t.m == nil {
			return
		}
		val, found := t.m[next]
		if !found {
			return
		}
		delete(t.m, next)
		t.arr = append(t.arr, val)
	}
}

// Len reports the length of the contiguous array part, the closest
// analogue to Lua's `#t` (not exposed as a builtin by spec.md; its only
// caller is the interpreter's OpPushD case, which the compiler never
// emits).
func (t *Table) Len() int {
	return len(t.arr)
}

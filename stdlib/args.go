// Package stdlib implements spec.md §4.8's named built-ins: print,
// assert, floor, random, type, strlen, strsub, tonumber. Argument
// checking follows the teacher's auxlib.go Check*/Opt* naming
// convention, adapted to return a Go error instead of panicking through
// a Lua state (spec §7: every failing operation returns a result-shaped
// value, never panics).
package stdlib

import (
	"github.com/lollipopkit/reggie/lang"
)

func arg(args []lang.Value, pos int) lang.Value {
	if pos-1 < 0 || pos-1 >= len(args) {
		return nil
	}
	return args[pos-1]
}

// checkNumber coerces the argument at pos (1-indexed) to a float64.
func checkNumber(args []lang.Value, pos int) (float64, error) {
	v := arg(args, pos)
	f, ok := lang.CoerceToFloat(v)
	if !ok {
		return 0, &lang.ArgumentTypeError{Position: pos, Expected: "number", Got: v}
	}
	return f, nil
}

// checkString coerces the argument at pos to a string.
func checkString(args []lang.Value, pos int) (string, error) {
	v := arg(args, pos)
	s, ok := lang.CoerceToString(v)
	if !ok {
		return "", &lang.ArgumentTypeError{Position: pos, Expected: "string", Got: v}
	}
	return s, nil
}

// optInteger returns the argument at pos as an int, or def if the
// argument is absent or Nil.
func optInteger(args []lang.Value, pos int, def int) (int, error) {
	v := arg(args, pos)
	if v == nil {
		return def, nil
	}
	f, ok := lang.CoerceToFloat(v)
	if !ok {
		return 0, &lang.ArgumentTypeError{Position: pos, Expected: "number", Got: v}
	}
	return int(f), nil
}

package stdlib

import (
	"fmt"
	"math"

	"github.com/lollipopkit/reggie/lang"
)

// Open registers every built-in named in spec §4.8 as a global
// NativeFunction, the way the teacher's OpenBaseLib/OpenMathLib register
// a table of GoFunctions against the Lua state (state/auxlib.go,
// stdlib/lib_basic.go, stdlib/lib_math.go) — here there is no library
// table, just flat globals, since spec §4.8 lists built-ins without a
// namespacing module.
func Open(globals *lang.Globals) {
	for name, fn := range map[string]func(*lang.Context, []lang.Value) (lang.ReturnValue, error){
		"print":    print_,
		"assert":   assert_,
		"floor":    floor_,
		"random":   random_,
		"type":     type_,
		"strlen":   strlen_,
		"strsub":   strsub_,
		"tonumber": tonumber_,
	} {
		globals.Set(name, &lang.NativeFunction{Name: name, Fn: fn})
	}
}

// print(...) prints each argument's canonical form tab-separated with a
// terminating newline (spec §4.8).
func print_(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
	for i, a := range args {
		if i > 0 {
			if _, err := fmt.Fprint(ctx.Stdout, "\t"); err != nil {
				return lang.ReturnValue{}, &lang.IOError{Err: err}
			}
		}
		if _, err := fmt.Fprint(ctx.Stdout, lang.Display(a)); err != nil {
			return lang.ReturnValue{}, &lang.IOError{Err: err}
		}
	}
	if _, err := fmt.Fprintln(ctx.Stdout); err != nil {
		return lang.ReturnValue{}, &lang.IOError{Err: err}
	}
	return lang.NilReturn(), nil
}

// assert(v, msg?) per spec §4.8.
func assert_(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
	v := arg(args, 1)
	if lang.Truthy(v) {
		return lang.NilReturn(), nil
	}
	msg := arg(args, 2)
	if msg == nil {
		return lang.ReturnValue{}, &lang.AssertionError{}
	}
	text, ok := lang.CoerceToString(msg)
	if !ok {
		// position 1, not 2: spec §4.8 pins the bad-message error to
		// position 1 regardless of msg's actual argument slot.
		return lang.ReturnValue{}, &lang.ArgumentTypeError{Position: 1, Expected: "string", Got: msg}
	}
	return lang.ReturnValue{}, &lang.AssertionError{Message: &text}
}

// floor(v) per spec §4.8: Int if integer-representable, else Float.
func floor_(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
	f, err := checkNumber(args, 1)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	floored := math.Floor(f)
	if i, ok := lang.FloatKeyToInt(floored); ok {
		return lang.SingleReturn(i), nil
	}
	return lang.SingleReturn(floored), nil
}

// random() per spec §4.8: Float uniformly in [0,1].
func random_(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
	return lang.SingleReturn(lang.Random()), nil
}

// type(v) per spec §4.8.
func type_(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
	return lang.SingleReturn(lang.TypeName(arg(args, 1))), nil
}

// strlen(v) per spec §4.8: byte length of v's stringification.
func strlen_(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
	s, err := checkString(args, 1)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	return lang.SingleReturn(int32(len(s))), nil
}

// strsub(s, from, to?) per spec §4.8: 1-indexed inclusive slicing,
// clamped; `to` omitted/Nil means "to end"; from > to (post-clamp)
// yields "".
func strsub_(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
	s, err := checkString(args, 1)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	from, err := optInteger(args, 2, 1)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	to, err := optInteger(args, 3, len(s))
	if err != nil {
		return lang.ReturnValue{}, err
	}

	if from < 1 {
		from = 1
	}
	if to > len(s) {
		to = len(s)
	}
	if from > to {
		return lang.SingleReturn(""), nil
	}
	return lang.SingleReturn(s[from-1 : to]), nil
}

// tonumber(v) per spec §4.8.
func tonumber_(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
	v := arg(args, 1)
	switch v.(type) {
	case int32, float64:
		return lang.SingleReturn(v), nil
	}
	if s, ok := v.(string); ok {
		if f, ok := lang.CoerceToFloat(s); ok {
			if i, ok := lang.FloatKeyToInt(f); ok {
				return lang.SingleReturn(i), nil
			}
			return lang.SingleReturn(f), nil
		}
	}
	return lang.NilReturn(), nil
}

package stdlib

import (
	"bytes"
	"testing"

	"github.com/lollipopkit/reggie/lang"
)

func call(t *testing.T, globals *lang.Globals, out *bytes.Buffer, name string, args ...lang.Value) (lang.ReturnValue, error) {
	t.Helper()
	v := globals.Get(name)
	fn, ok := v.(*lang.NativeFunction)
	if !ok {
		t.Fatalf("%s is not registered as a NativeFunction (got %T)", name, v)
	}
	return fn.Fn(lang.NewContext(globals, out), args)
}

func newGlobals() (*lang.Globals, *bytes.Buffer) {
	g := lang.NewGlobals()
	Open(g)
	return g, &bytes.Buffer{}
}

func TestPrintTabSeparatesArgs(t *testing.T) {
	g, out := newGlobals()
	if _, err := call(t, g, out, "print", int32(1), "two", nil); err != nil {
		t.Fatal(err)
	}
	if out.String() != "1\ttwo\tnil\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestAssertPassesOnTruthy(t *testing.T) {
	g, out := newGlobals()
	if _, err := call(t, g, out, "assert", int32(1)); err != nil {
		t.Fatalf("assert(1) should not fail: %s", err)
	}
}

func TestAssertFailsWithDefaultMessage(t *testing.T) {
	g, out := newGlobals()
	_, err := call(t, g, out, "assert", nil)
	if err == nil {
		t.Fatal("expected assertion failure")
	}
	if err.Error() != "assertion failed!" {
		t.Fatalf("got %q", err.Error())
	}
}

func TestAssertFailsWithCustomMessage(t *testing.T) {
	g, out := newGlobals()
	_, err := call(t, g, out, "assert", nil, "custom message")
	if err == nil {
		t.Fatal("expected assertion failure")
	}
	if err.Error() != "custom message" {
		t.Fatalf("got %q", err.Error())
	}
}

func TestFloorToIntWhenExact(t *testing.T) {
	g, out := newGlobals()
	ret, err := call(t, g, out, "floor", float64(3.7))
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := ret.First().(int32); !ok || i != 3 {
		t.Fatalf("floor(3.7) = %#v, want int32(3)", ret.First())
	}
}

func TestTypeBuiltin(t *testing.T) {
	g, out := newGlobals()
	cases := []struct {
		v    lang.Value
		want string
	}{
		{nil, "nil"},
		{int32(1), "number"},
		{"s", "string"},
		{lang.NewTable(), "table"},
	}
	for _, c := range cases {
		ret, err := call(t, g, out, "type", c.v)
		if err != nil {
			t.Fatal(err)
		}
		if ret.First() != c.want {
			t.Errorf("type(%#v) = %v, want %q", c.v, ret.First(), c.want)
		}
	}
}

func TestStrlenCountsBytes(t *testing.T) {
	g, out := newGlobals()
	ret, err := call(t, g, out, "strlen", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if ret.First() != int32(5) {
		t.Fatalf("strlen(hello) = %#v, want 5", ret.First())
	}
}

func TestStrsubOmittedAndExplicitTo(t *testing.T) {
	g, out := newGlobals()
	ret, err := call(t, g, out, "strsub", "hello", int32(2))
	if err != nil {
		t.Fatal(err)
	}
	if ret.First() != "ello" {
		t.Fatalf("strsub(hello, 2) = %#v, want ello", ret.First())
	}

	ret, err = call(t, g, out, "strsub", "hello", int32(2), int32(4))
	if err != nil {
		t.Fatal(err)
	}
	if ret.First() != "ell" {
		t.Fatalf("strsub(hello, 2, 4) = %#v, want ell", ret.First())
	}
}

func TestStrsubFromPastToYieldsEmpty(t *testing.T) {
	g, out := newGlobals()
	ret, err := call(t, g, out, "strsub", "hello", int32(5), int32(2))
	if err != nil {
		t.Fatal(err)
	}
	if ret.First() != "" {
		t.Fatalf("strsub with from>to = %#v, want empty string", ret.First())
	}
}

func TestTonumberParsesStringsAndPassesNumbers(t *testing.T) {
	g, out := newGlobals()
	ret, err := call(t, g, out, "tonumber", "42")
	if err != nil {
		t.Fatal(err)
	}
	if ret.First() != int32(42) {
		t.Fatalf("tonumber(\"42\") = %#v, want int32(42)", ret.First())
	}

	ret, err = call(t, g, out, "tonumber", "not a number")
	if err != nil {
		t.Fatal(err)
	}
	if ret.First() != nil {
		t.Fatalf("tonumber(bad string) = %#v, want nil", ret.First())
	}
}

func TestRandomInRange(t *testing.T) {
	g, out := newGlobals()
	ret, err := call(t, g, out, "random")
	if err != nil {
		t.Fatal(err)
	}
	f, ok := ret.First().(float64)
	if !ok {
		t.Fatalf("random() = %#v, want a float64", ret.First())
	}
	if f < 0 || f >= 1 {
		t.Fatalf("random() = %v, want in [0, 1)", f)
	}
}

package astvm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lollipopkit/reggie/lang"
	"github.com/lollipopkit/reggie/parser"
)

func runSrc(t *testing.T, src string) (lang.ReturnValue, string, error) {
	t.Helper()
	mod, err := parser.Parse(src, "test")
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	var out bytes.Buffer
	globals := lang.NewGlobals()
	globals.Set("print", &lang.NativeFunction{Name: "print", Fn: func(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = lang.Display(a)
		}
		out.WriteString(strings.Join(parts, "\t"))
		out.WriteByte('\n')
		return lang.NilReturn(), nil
	}})
	e := NewEvaluator(globals, &out)
	ret, err := e.EvalModule(mod)
	return ret, out.String(), err
}

func TestLocalNotVisibleOutsideItsBlock(t *testing.T) {
	_, out, err := runSrc(t, `
if 1 then
  local x = "inner"
end
print(x)
`)
	if err != nil {
		t.Fatalf("eval error: %s", err)
	}
	if strings.TrimSpace(out) != "nil" {
		t.Fatalf("got %q, want nil (local from if-block must not leak)", out)
	}
}

func TestReturnUnwindsExactlyOneFunctionNotEnclosingLoop(t *testing.T) {
	_, out, err := runSrc(t, `
function firstOver(limit)
  local i = 0
  while i < 100 do
    if i >= limit then
      return i
    end
    i = i + 1
  end
  return -1
end
print(firstOver(3))
`)
	if err != nil {
		t.Fatalf("eval error: %s", err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("got %q, want 3", out)
	}
}

func TestAssignWritesClosestEnclosingBinding(t *testing.T) {
	_, out, err := runSrc(t, `
local x = 1
if 1 then
  x = 2
end
print(x)
`)
	if err != nil {
		t.Fatalf("eval error: %s", err)
	}
	if strings.TrimSpace(out) != "2" {
		t.Fatalf("got %q, want 2 (assign to outer x, not a fresh shadow)", out)
	}
}

func TestUndeclaredAssignGoesToGlobals(t *testing.T) {
	_, out, err := runSrc(t, `
function setIt()
  y = 42
end
setIt()
print(y)
`)
	if err != nil {
		t.Fatalf("eval error: %s", err)
	}
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("got %q, want 42", out)
	}
}

func TestMultiValueReturnSplicing(t *testing.T) {
	_, out, err := runSrc(t, `
function two()
  return 1, 2
end
local a, b, c = two()
print(a, b, c)
`)
	if err != nil {
		t.Fatalf("eval error: %s", err)
	}
	if strings.TrimSpace(out) != "1\t2\tnil" {
		t.Fatalf("got %q, want %q", out, "1\t2\tnil")
	}
}

func TestRepeatUntilRunsBodyAtLeastOnce(t *testing.T) {
	_, out, err := runSrc(t, `
local i = 0
repeat
  i = i + 1
until i >= 3
print(i)
`)
	if err != nil {
		t.Fatalf("eval error: %s", err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("got %q, want 3", out)
	}
}

func TestIndexingNilErrors(t *testing.T) {
	_, _, err := runSrc(t, `
local t = nil
print(t[1])
`)
	if err == nil {
		t.Fatal("expected an error indexing a nil value")
	}
	if _, ok := err.(*lang.NotIndexableError); !ok {
		t.Fatalf("error is %T, want *lang.NotIndexableError", err)
	}
}

func TestCallingNonFunctionErrors(t *testing.T) {
	_, _, err := runSrc(t, `
local x = 1
x()
`)
	if err == nil {
		t.Fatal("expected an error calling a non-function")
	}
	if _, ok := err.(*lang.NotCallableError); !ok {
		t.Fatalf("error is %T, want *lang.NotCallableError", err)
	}
}

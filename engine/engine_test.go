package engine

import (
	"bytes"
	"strings"
	"testing"
)

// runBoth evaluates src on both execution tiers against fresh engines,
// asserting they produce identical stdout — the same cross-tier parity
// spec §2 requires ("Either execution tier consumes the same Value
// Model and Global Store").
func runBoth(t *testing.T, src string) string {
	t.Helper()
	var astOut, reggieOut bytes.Buffer

	astEngine := New(&astOut)
	if _, err := astEngine.EvalStr(src, TierAST); err != nil {
		t.Fatalf("TierAST eval error: %s", err)
	}

	reggieEngine := New(&reggieOut)
	if _, err := reggieEngine.EvalStr(src, TierReggie); err != nil {
		t.Fatalf("TierReggie eval error: %s", err)
	}

	if astOut.String() != reggieOut.String() {
		t.Fatalf("tier output mismatch:\n ast:    %q\n reggie: %q", astOut.String(), reggieOut.String())
	}
	return reggieOut.String()
}

func TestArithmeticAcrossTiers(t *testing.T) {
	out := runBoth(t, `print(1 + 2 * 3)`)
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("got %q, want 7", out)
	}
}

func TestLocalsAndAssignAcrossTiers(t *testing.T) {
	out := runBoth(t, `
local x = 1
local y = 2
x = x + y
print(x)
`)
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("got %q, want 3", out)
	}
}

func TestIfElseAcrossTiers(t *testing.T) {
	out := runBoth(t, `
local x = 5
if x > 10 then
  print("big")
elseif x > 3 then
  print("medium")
else
  print("small")
end
`)
	if strings.TrimSpace(out) != "medium" {
		t.Fatalf("got %q, want medium", out)
	}
}

func TestWhileLoopAcrossTiers(t *testing.T) {
	out := runBoth(t, `
local i = 0
local sum = 0
while i < 5 do
  sum = sum + i
  i = i + 1
end
print(sum)
`)
	if strings.TrimSpace(out) != "10" {
		t.Fatalf("got %q, want 10", out)
	}
}

func TestFunctionCallAndReturnAcrossTiers(t *testing.T) {
	out := runBoth(t, `
function add(a, b)
  return a + b
end
print(add(3, 4))
`)
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("got %q, want 7", out)
	}
}

func TestRecursionAcrossTiers(t *testing.T) {
	out := runBoth(t, `
function fact(n)
  if n <= 1 then
    return 1
  end
  return n * fact(n - 1)
end
print(fact(6))
`)
	if strings.TrimSpace(out) != "720" {
		t.Fatalf("got %q, want 720", out)
	}
}

func TestTableConstructAndIndexAcrossTiers(t *testing.T) {
	out := runBoth(t, `
local t = {1, 2, x = 3}
print(t[1], t[2], t.x)
`)
	if strings.TrimSpace(out) != "1\t2\t3" {
		t.Fatalf("got %q", out)
	}
}

func TestMultiValueReturnSplicingAcrossTiers(t *testing.T) {
	out := runBoth(t, `
function pair()
  return 1, 2
end
local a, b = pair()
print(a, b)
`)
	if strings.TrimSpace(out) != "1\t2" {
		t.Fatalf("got %q", out)
	}
}

func TestBuiltinsAcrossTiers(t *testing.T) {
	out := runBoth(t, `
print(floor(3.7))
print(type(1))
print(strlen("hello"))
print(strsub("hello", 2, 4))
print(tonumber("42"))
`)
	want := "3\nnumber\n5\nell\n42\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestAssertFailureAcrossTiers(t *testing.T) {
	for _, tier := range []Tier{TierAST, TierReggie} {
		e := New(&bytes.Buffer{})
		_, err := e.EvalStr(`assert(1 == 2, "nope")`, tier)
		if err == nil {
			t.Fatalf("tier %d: expected assertion error", tier)
		}
		if !strings.Contains(err.Error(), "nope") {
			t.Fatalf("tier %d: error %q does not mention message", tier, err.Error())
		}
	}
}

func TestCompiledModuleCacheReusesAcrossCalls(t *testing.T) {
	e := New(&bytes.Buffer{})
	src := `print(1)`
	if _, err := e.EvalStr(src, TierReggie); err != nil {
		t.Fatal(err)
	}
	if _, err := e.EvalStr(src, TierReggie); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalsPersistAcrossEvalStrCalls(t *testing.T) {
	var out bytes.Buffer
	e := New(&out)
	if _, err := e.EvalStr(`x = 10`, TierReggie); err != nil {
		t.Fatal(err)
	}
	if _, err := e.EvalStr(`print(x)`, TierReggie); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "10" {
		t.Fatalf("got %q, want 10 (globals should persist across EvalStr calls)", out.String())
	}
}

package lang

import "testing"

func TestAddKeepsIntWhenBothInt(t *testing.T) {
	v, err := Add(int32(1), int32(2))
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := v.(int32); !ok || i != 3 {
		t.Fatalf("Add(1,2) = %#v, want int32(3)", v)
	}
}

func TestAddCoercesToFloatWhenMixed(t *testing.T) {
	v, err := Add(int32(1), float64(2.5))
	if err != nil {
		t.Fatal(err)
	}
	f, ok := v.(float64)
	if !ok || f != 3.5 {
		t.Fatalf("Add(1, 2.5) = %#v, want float64(3.5)", v)
	}
}

func TestDivAlwaysFloat(t *testing.T) {
	v, err := Div(int32(4), int32(2))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(float64); !ok {
		t.Fatalf("Div(4,2) = %#v, want a float64", v)
	}
}

func TestArithErrorsOnNonNumber(t *testing.T) {
	if _, err := Add("x", int32(1)); err == nil {
		t.Fatal("expected an arithmetic error")
	}
}

func TestCompareNumberVsString(t *testing.T) {
	// spec's preserved open-question behavior: number is stringified
	// then compared lexicographically against the string operand.
	lt, err := Compare("10", int32(9), OpLt)
	if err != nil {
		t.Fatal(err)
	}
	if !lt {
		t.Fatal(`expected "10" < 9 (lexicographic on "10" < "9")`)
	}
}

func TestCompareBothNumeric(t *testing.T) {
	lt, err := Compare(int32(1), float64(2.0), OpLt)
	if err != nil {
		t.Fatal(err)
	}
	if !lt {
		t.Fatal("expected 1 < 2.0")
	}
}

func TestConcatStringifiesNumbers(t *testing.T) {
	v, err := Concat(int32(1), "x")
	if err != nil {
		t.Fatal(err)
	}
	if v != "1x" {
		t.Fatalf("Concat(1, x) = %q, want %q", v, "1x")
	}
}

func TestConcatErrorsOnTable(t *testing.T) {
	if _, err := Concat(NewTable(), "x"); err == nil {
		t.Fatal("expected a concat error for a table operand")
	}
}

func TestIndexOnNonTable(t *testing.T) {
	if _, err := Index(int32(1), "k"); err == nil {
		t.Fatal("expected a not-indexable error")
	}
}

func TestIndexMissingKeyIsNil(t *testing.T) {
	tbl := NewTable()
	v, err := Index(tbl, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Fatalf("Index on missing key = %#v, want nil", v)
	}
}

func TestIndexNilKeyErrors(t *testing.T) {
	tbl := NewTable()
	if _, err := Index(tbl, nil); err == nil {
		t.Fatal("expected an error indexing with a nil key")
	}
}

func TestUnaryMinus(t *testing.T) {
	v, err := UnaryMinus(int32(5))
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := v.(int32); !ok || i != -5 {
		t.Fatalf("UnaryMinus(5) = %#v, want int32(-5)", v)
	}
}

func TestNot(t *testing.T) {
	if Not(nil) != int32(1) {
		t.Fatal("not nil should be true (Int(1))")
	}
	if Not(int32(0)) != nil {
		t.Fatal("not 0 should be false (Nil), since only Nil is falsy")
	}
}

package lang

import "testing"

func TestTruthy(t *testing.T) {
	if !Truthy(int32(0)) {
		t.Fatal("Int(0) must be truthy")
	}
	if Truthy(nil) {
		t.Fatal("nil must be falsy")
	}
	if !Truthy("") {
		t.Fatal("empty string must be truthy")
	}
}

func TestBoolRepresentation(t *testing.T) {
	if True() != int32(1) {
		t.Fatalf("True() = %#v, want int32(1)", True())
	}
	if False() != nil {
		t.Fatalf("False() = %#v, want nil", False())
	}
	if FromBool(true) != int32(1) || FromBool(false) != nil {
		t.Fatal("FromBool mismatch")
	}
}

func TestEqCrossNumericTag(t *testing.T) {
	if !Eq(int32(1), float64(1.0)) {
		t.Fatal("Int(1) should equal Float(1.0)")
	}
	if Eq(int32(1), float64(1.5)) {
		t.Fatal("Int(1) should not equal Float(1.5)")
	}
	nan := float64NaN()
	if Eq(nan, nan) {
		t.Fatal("NaN must not equal itself under Eq")
	}
}

func TestTotalEqIsTagSensitive(t *testing.T) {
	if TotalEq(int32(1), float64(1.0)) {
		t.Fatal("TotalEq must distinguish Int and Float of equal value")
	}
	nan := float64NaN()
	if !TotalEq(nan, nan) {
		t.Fatal("TotalEq must treat NaN as equal to itself")
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{nil, "nil"},
		{int32(42), "42"},
		{"hi", "hi"},
	}
	for _, c := range cases {
		if got := Display(c.v); got != c.want {
			t.Errorf("Display(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{nil, "nil"},
		{int32(1), "number"},
		{float64(1), "number"},
		{"s", "string"},
		{NewTable(), "table"},
		{LuaFunction(0), "function"},
	}
	for _, c := range cases {
		if got := TypeName(c.v); got != c.want {
			t.Errorf("TypeName(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestIsNumberLikeString(t *testing.T) {
	if !IsNumberLike("3.14") {
		t.Fatal("numeric string should be number-like")
	}
	if IsNumberLike("abc") {
		t.Fatal("non-numeric string should not be number-like")
	}
}

func float64NaN() float64 {
	var zero float64
	return zero / zero
}

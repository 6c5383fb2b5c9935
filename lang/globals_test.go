package lang

import "testing"

func TestGlobalsStableCellID(t *testing.T) {
	g := NewGlobals()
	id1 := g.CellForName("x")
	id2 := g.CellForName("x")
	if id1 != id2 {
		t.Fatalf("CellForName(x) returned different ids: %d vs %d", id1, id2)
	}
}

func TestGlobalsSetGet(t *testing.T) {
	g := NewGlobals()
	g.Set("x", int32(42))
	if got := g.Get("x"); got != int32(42) {
		t.Fatalf("Get(x) = %#v, want int32(42)", got)
	}
}

func TestGlobalsUndefinedReadIsNil(t *testing.T) {
	g := NewGlobals()
	if got := g.Get("never_set"); got != nil {
		t.Fatalf("Get(never_set) = %#v, want nil", got)
	}
}

func TestGlobalsDistinctNamesDistinctCells(t *testing.T) {
	g := NewGlobals()
	a := g.CellForName("a")
	b := g.CellForName("b")
	if a == b {
		t.Fatal("distinct names must get distinct cell ids")
	}
}

package lang

import "testing"

func TestTableArrayPart(t *testing.T) {
	tbl := NewTable()
	for i := int32(0); i < 3; i++ {
		if err := tbl.Set(i, i*10); err != nil {
			t.Fatalf("Set(%d): %s", i, err)
		}
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	for i := int32(0); i < 3; i++ {
		if got := tbl.Get(i); got != i*10 {
			t.Errorf("Get(%d) = %v, want %d", i, got, i*10)
		}
	}
}

func TestTableFloatIntKeyAlias(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Set(int32(1), "via-int"); err != nil {
		t.Fatal(err)
	}
	if got := tbl.Get(float64(1.0)); got != "via-int" {
		t.Fatalf("Get(1.0) = %v, want %q", got, "via-int")
	}
	if err := tbl.Set(float64(2.0), "via-float"); err != nil {
		t.Fatal(err)
	}
	if got := tbl.Get(int32(2)); got != "via-float" {
		t.Fatalf("Get(2) = %v, want %q", got, "via-float")
	}
}

func TestTableMissingKeyIsNil(t *testing.T) {
	tbl := NewTable()
	if got := tbl.Get("missing"); got != nil {
		t.Fatalf("Get(missing) = %v, want nil", got)
	}
}

func TestTableNilKeySetFails(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Set(nil, "x"); err == nil {
		t.Fatal("expected an error setting a nil key")
	}
}

func TestTableDeleteByNilValue(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Set("k", nil); err != nil {
		t.Fatal(err)
	}
	if got := tbl.Get("k"); got != nil {
		t.Fatalf("Get(k) after delete = %v, want nil", got)
	}
}

func TestTableSharedOwnership(t *testing.T) {
	tbl := NewTable()
	alias := tbl
	if err := tbl.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if got := alias.Get("k"); got != "v" {
		t.Fatalf("mutation through original not visible via alias: %v", got)
	}
}

func TestTableArrayShrinkOnTrailingNilDelete(t *testing.T) {
	tbl := NewTable()
	tbl.Set(int32(0), "a")
	tbl.Set(int32(1), "b")
	tbl.Set(int32(1), nil)
	if tbl.Len() != 1 {
		t.Fatalf("Len() after trailing delete = %d, want 1", tbl.Len())
	}
}

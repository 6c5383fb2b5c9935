package lexer

import (
	"reflect"
	"testing"
)

func TestOperatorsAndSeparators(t *testing.T) {
	l := NewLexer("x = 1 + 2 * (3 - 4) / 5 .. \"y\"", "")
	var kinds []int
	for {
		_, k, _ := l.NextToken()
		kinds = append(kinds, k)
		if k == TokenEOF {
			break
		}
	}
	expect := []int{
		TokenIdentifier, TokenOpAssign, TokenNumber, TokenOpAdd, TokenNumber,
		TokenOpMul, TokenSepLParen, TokenNumber, TokenOpMinus, TokenNumber,
		TokenSepRParen, TokenOpDiv, TokenNumber, TokenOpConcat, TokenString,
		TokenEOF,
	}
	if !reflect.DeepEqual(kinds, expect) {
		t.Fatalf("got %v want %v", kinds, expect)
	}
}

func TestKeywordsNotIdentifiers(t *testing.T) {
	l := NewLexer("if x then return nil end", "")
	var kinds []int
	for {
		_, k, _ := l.NextToken()
		kinds = append(kinds, k)
		if k == TokenEOF {
			break
		}
	}
	expect := []int{TokenKwIf, TokenIdentifier, TokenKwThen, TokenKwReturn, TokenKwNil, TokenKwEnd, TokenEOF}
	if !reflect.DeepEqual(kinds, expect) {
		t.Fatalf("got %v want %v", kinds, expect)
	}
}

func TestStringEscapes(t *testing.T) {
	l := NewLexer(`"a\nb\tc"`, "")
	_, kind, token := l.NextToken()
	if kind != TokenString {
		t.Fatalf("expected string token, got %d", kind)
	}
	if token != "a\nb\tc" {
		t.Fatalf("got %q", token)
	}
}

func TestNumberForms(t *testing.T) {
	cases := []string{"0", "42", "3.14", ".5", "1e10", "1.5e-3"}
	for _, src := range cases {
		l := NewLexer(src, "")
		_, kind, token := l.NextToken()
		if kind != TokenNumber {
			t.Fatalf("%q: expected number token, got %d", src, kind)
		}
		if token != src {
			t.Fatalf("%q: got token %q", src, token)
		}
	}
}

func TestLookAheadDoesNotConsume(t *testing.T) {
	l := NewLexer("local function f()", "")
	if kind := l.LookAhead(); kind != TokenKwLocal {
		t.Fatalf("lookahead kind %d", kind)
	}
	_, kind, _ := l.NextToken()
	if kind != TokenKwLocal {
		t.Fatalf("next after lookahead: %d", kind)
	}
	if kind := l.LookAhead(); kind != TokenKwFunction {
		t.Fatalf("second lookahead kind %d", kind)
	}
}

func TestSaveRestore(t *testing.T) {
	l := NewLexer("a b c", "")
	l.NextToken() // a
	save := l.Save()
	_, k1, t1 := l.NextToken() // b
	l.Restore(save)
	_, k2, t2 := l.NextToken() // b again
	if k1 != k2 || t1 != t2 {
		t.Fatalf("restore mismatch: (%d,%q) vs (%d,%q)", k1, t1, k2, t2)
	}
}

func TestPeekAssignAfterIdentifier(t *testing.T) {
	l := NewLexer("name = 1", "")
	if !l.PeekAssignAfterIdentifier() {
		t.Fatal("expected assign after identifier")
	}
	// position must be unaffected
	_, kind, token := l.NextToken()
	if kind != TokenIdentifier || token != "name" {
		t.Fatalf("position moved: (%d,%q)", kind, token)
	}
}

func TestUnfinishedStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unfinished string")
		}
	}()
	l := NewLexer(`"unterminated`, "")
	l.NextToken()
}

package repl

import (
	"path/filepath"
	"testing"

	"github.com/lollipopkit/reggie/term"
)

func TestBlockNotEndCountTracksBraceBalance(t *testing.T) {
	cases := []struct {
		block string
		want  int
	}{
		{"local x = 1", 0},
		{"function f()", 0},
		{"if 1 then", 0},
		{"print({", 1},
		{"print({}", 0},
		{"print({}}", -1},
	}
	for _, c := range cases {
		if got := blockNotEndCount(c.block); got != c.want {
			t.Errorf("blockNotEndCount(%q) = %d, want %d", c.block, got, c.want)
		}
	}
}

func TestBlockNotEndCountIgnoresBracesInStrings(t *testing.T) {
	if got := blockNotEndCount(`print("{")`); got != 0 {
		t.Fatalf("blockNotEndCount with brace inside a string literal = %d, want 0", got)
	}
}

func TestBlockNotEndCountHandlesEscapedQuotes(t *testing.T) {
	if got := blockNotEndCount(`print("a\"{")`); got != 0 {
		t.Fatalf("blockNotEndCount with escaped quote inside a string = %d, want 0", got)
	}
}

func TestHandleKeyboardWrapsLineInPrint(t *testing.T) {
	rs := []rune("1 + 1")
	runeIdx := 3
	handled, redraw := handleKeyboard(term.RawKey{Name: "ctrlb"}, &rs, &runeIdx)
	if !handled || !redraw {
		t.Fatalf("handleKeyboard(ctrlb) = (%v, %v), want (true, true)", handled, redraw)
	}
	if string(rs) != "print(1 + 1)" {
		t.Fatalf("wrapped line = %q, want %q", string(rs), "print(1 + 1)")
	}
	if runeIdx != len(rs) {
		t.Fatalf("runeIdx = %d, want %d (end of wrapped line)", runeIdx, len(rs))
	}
}

func TestHandleKeyboardClearsHistory(t *testing.T) {
	dir := t.TempDir()
	historyPath = filepath.Join(dir, "history.json")
	linesHistory = []string{"a", "b"}

	rs := []rune("whatever")
	runeIdx := 0
	handled, redraw := handleKeyboard(term.RawKey{Name: "ctrll"}, &rs, &runeIdx)
	if !handled || redraw {
		t.Fatalf("handleKeyboard(ctrll) = (%v, %v), want (true, false)", handled, redraw)
	}
	if len(linesHistory) != 0 {
		t.Fatalf("linesHistory after ctrll = %v, want empty", linesHistory)
	}
}

func TestHandleKeyboardIgnoresUnknownKey(t *testing.T) {
	rs := []rune("x")
	runeIdx := 0
	handled, redraw := handleKeyboard(term.RawKey{Name: "ctrlx"}, &rs, &runeIdx)
	if handled || redraw {
		t.Fatalf("handleKeyboard(unknown) = (%v, %v), want (false, false)", handled, redraw)
	}
}

func TestAddHistoryLineMovesDuplicateToEnd(t *testing.T) {
	linesHistory = nil
	addHistoryLine("a")
	addHistoryLine("b")
	addHistoryLine("a")
	want := []string{"b", "a"}
	if len(linesHistory) != len(want) {
		t.Fatalf("linesHistory = %v, want %v", linesHistory, want)
	}
	for i := range want {
		if linesHistory[i] != want[i] {
			t.Fatalf("linesHistory = %v, want %v", linesHistory, want)
		}
	}
}

func TestWriteHistoryThenLoadHistoryRoundTrips(t *testing.T) {
	dir := t.TempDir()
	historyPath = filepath.Join(dir, "history.json")

	linesHistory = []string{"local x = 1", "print(x)"}
	writeHistory()

	linesHistory = nil
	loadHistory()

	want := []string{"local x = 1", "print(x)"}
	if len(linesHistory) != len(want) {
		t.Fatalf("loaded history = %v, want %v", linesHistory, want)
	}
	for i := range want {
		if linesHistory[i] != want[i] {
			t.Fatalf("loaded history = %v, want %v", linesHistory, want)
		}
	}
}

func TestLoadHistoryWithNoExistingFileWritesEmptyHistory(t *testing.T) {
	dir := t.TempDir()
	historyPath = filepath.Join(dir, "does-not-exist-yet.json")
	linesHistory = []string{"stale"}

	loadHistory()

	if linesHistory != nil {
		t.Fatalf("linesHistory after loadHistory with no file = %v, want nil (reset, then persisted empty)", linesHistory)
	}
}

// Package repl implements the interactive REPL: read a block (accumulating
// lines until braces balance), eval it against a shared engine.Engine, print
// the result or error, repeat. Grounded on the teacher's repl/repl.go for
// the block-accumulation and keyboard-shortcut shape, rebuilt against
// term's x/term-based ReadLine (see DESIGN.md for why the teacher's
// atomicgo/gommon-based version was not kept) and engine.Engine instead of
// a raw Lua state.
package repl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lollipopkit/reggie/consts"
	"github.com/lollipopkit/reggie/engine"
	"github.com/lollipopkit/reggie/lang"
	"github.com/lollipopkit/reggie/term"
)

var (
	linesHistory = []string{}
	helpMsgs     = []string{
		"`ctrl+c`: Exit REPL",
		"`ctrl+b`: Wrap current line with `print()`",
		"`ctrl+n`: Wrap current line with `print()` (same as `ctrl+b`)",
		"`ctrl+l`: Clear REPL history",
		"`Tab`: Add 2 spaces",
	}
	historyPath = filepath.Join(os.Getenv("HOME"), ".config", "reggie_history.json")
)

// Run starts the REPL loop against e, evaluating each balanced block on
// tier until stdin closes or the user exits.
func Run(e *engine.Engine, tier engine.Tier) {
	loadHistory()

	tierName := "reggie"
	if tier == engine.TierAST {
		tierName = "ast"
	}
	fmt.Printf("REPL for reggie (v%s, tier=%s) - enter `help()` for help\n", consts.VERSION, tierName)
	e.Globals.Set("help", &lang.NativeFunction{Name: "help", Fn: func(ctx *lang.Context, args []lang.Value) (lang.ReturnValue, error) {
		fmt.Fprintln(ctx.Stdout, strings.Join(helpMsgs, "\n"))
		return lang.NilReturn(), nil
	}})

	var blockLines []string
	for {
		line := term.ReadLine(term.ReadLineConfig{
			History: linesHistory,
			KeyFunc: handleKeyboard,
		})
		if line == "" && len(blockLines) == 0 {
			continue
		}

		blockLines = append(blockLines, line)
		blockStr := strings.Join(blockLines, "\n")
		if blockNotEndCount(blockStr) != 0 {
			continue
		}

		evalBlock(e, tier, blockStr)
		blockLines = nil
	}
}

func evalBlock(e *engine.Engine, tier engine.Tier, src string) {
	ret, err := e.EvalStr(src, tier)
	if err != nil {
		term.Err("%s", err)
		return
	}
	updateHistory(src)
	if ret.IsPack() {
		for _, v := range ret.Values {
			fmt.Println(lang.Display(v))
		}
	} else if v := ret.First(); v != nil {
		fmt.Println(lang.Display(v))
	}
}

// handleKeyboard wires the REPL-specific shortcuts from helpMsgs: wrap
// the current line in `print(...)`, or clear history.
func handleKeyboard(key term.RawKey, rs *[]rune, runeIdx *int) (handled, redraw bool) {
	switch key.Name {
	case "ctrlb", "ctrln":
		*rs = append([]rune("print("), append(*rs, ')')...)
		*runeIdx = len(*rs)
		return true, true
	case "ctrll":
		linesHistory = nil
		writeHistory()
		return true, false
	}
	return false, false
}

// blockNotEndCount counts unbalanced `{`/`}` outside of string literals,
// the same heuristic the teacher's REPL uses to decide whether to keep
// reading lines before evaluating a block.
func blockNotEndCount(block string) int {
	start, end := 0, 0
	inStr := false
	var quote rune
	runes := []rune(block)
	for i, c := range runes {
		switch c {
		case '{':
			if !inStr {
				start++
			}
		case '}':
			if !inStr {
				end++
			}
		case '\'', '"', '`':
			if i == 0 || runes[i-1] != '\\' {
				if inStr && quote == c {
					inStr = false
				} else if !inStr {
					inStr = true
					quote = c
				}
			}
		}
	}
	return start - end
}

func updateHistory(str string) {
	for _, line := range strings.Split(strings.Trim(str, "\n"), "\n") {
		addHistoryLine(line)
	}
	writeHistory()
}

func addHistoryLine(line string) {
	for i, h := range linesHistory {
		if h == line {
			linesHistory = append(linesHistory[:i], linesHistory[i+1:]...)
			break
		}
	}
	linesHistory = append(linesHistory, line)
}

func writeHistory() {
	data, err := json.Marshal(linesHistory)
	if err != nil {
		term.Warn("marshal history failed")
		return
	}
	if err := os.WriteFile(historyPath, data, 0o644); err != nil {
		term.Warn("write history failed: %s", err)
	}
}

func loadHistory() {
	data, err := os.ReadFile(historyPath)
	if err != nil {
		linesHistory = nil
		writeHistory()
		return
	}
	if err := json.Unmarshal(data, &linesHistory); err != nil {
		term.Warn("unmarshal history failed")
	}
}

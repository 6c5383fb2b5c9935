// Command reggie-debug is an optional interactive TUI debugger: one
// pane lists the current code block's disassembly with the program
// counter highlighted, one pane shows live accumulator/register
// contents, one pane scrolls back `print` output. Grounded on the
// teacher's repl+term TUI bits in shape (a small always-redraw loop
// reacting to keypresses) but built against tcell/tview rather than
// the teacher's own raw-mode REPL, since a multi-pane debugger needs
// real layout/widget primitives a line editor doesn't.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lollipopkit/reggie/lang"
	"github.com/lollipopkit/reggie/parser"
	"github.com/lollipopkit/reggie/reggie"
	"github.com/lollipopkit/reggie/stdlib"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: reggie-debug <source-file>")
		os.Exit(2)
	}
	file := os.Args[1]

	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mod, err := parser.Parse(string(data), file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	globals := lang.NewGlobals()
	stdlib.Open(globals)

	app := tview.NewApplication()

	out := tview.NewTextView()
	out.SetBorder(true).SetTitle(" output ")
	out.SetChangedFunc(func() { app.Draw() })

	machine := reggie.NewMachine(globals, out)
	compiled, err := reggie.Compile(mod, globals)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	machine.LoadModule(compiled)

	disasm := tview.NewTextView()
	disasm.SetDynamicColors(true)
	disasm.SetBorder(true).SetTitle(" disassembly ")

	regs := tview.NewTextView()
	regs.SetDynamicColors(true)
	regs.SetBorder(true).SetTitle(" registers ")

	status := tview.NewTextView()
	status.SetBorder(true).SetTitle(" reggie-debug: s/Enter step, q quit ")

	render := func() {
		disasm.SetText(renderDisassembly(machine))
		regs.SetText(renderRegisters(machine))
	}
	render()

	top := tview.NewFlex().
		AddItem(disasm, 0, 2, false).
		AddItem(regs, 0, 1, false)
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(status, 3, 0, false).
		AddItem(top, 0, 3, false).
		AddItem(out, 0, 2, false)

	done := false
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if done {
			if event.Key() == tcell.KeyEnter || event.Rune() == 'q' {
				app.Stop()
			}
			return nil
		}
		switch {
		case event.Rune() == 'q':
			app.Stop()
			return nil
		case event.Rune() == 's', event.Key() == tcell.KeyEnter:
			finished, stepErr := machine.Step()
			if stepErr != nil {
				status.SetText(fmt.Sprintf("[red]error: %s[-]", stepErr))
				done = true
			} else if finished {
				status.SetText("[green]finished — press q to exit[-]")
				done = true
			}
			render()
			return nil
		}
		return event
	})

	if err := app.SetRoot(root, true).SetFocus(root).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// renderDisassembly prints the current block's instructions via
// CodeBlock.Disassemble, re-splitting its lines to prefix the line
// matching the live PC with a highlight marker rather than duplicating
// disassemble.go's per-instruction formatting here.
func renderDisassembly(m *reggie.Machine) string {
	block := m.CurrentBlock()
	if block == nil {
		return "(finished)"
	}
	pc := m.PC()
	lines := strings.Split(block.Disassemble(), "\n")
	var b strings.Builder
	for i, line := range lines {
		// Disassemble's body lines are "%4d  %s", 0-indexed from line 1
		// (line 0 is the "; <name>" header), so body line i is inst i-1.
		if i > 0 && int32(i-1) == pc && line != "" {
			fmt.Fprintf(&b, "[yellow]%s  <- pc[-]\n", line)
		} else {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderRegisters(m *reggie.Machine) string {
	if m.CurrentBlock() == nil {
		return ""
	}
	r := m.CurrentRegisters()
	var b strings.Builder
	fmt.Fprintf(&b, "depth: %d\n\n", m.Depth())
	fmt.Fprintf(&b, "D: %v\n", lang.Display(r.D))
	fmt.Fprintf(&b, "I: %d\n", r.I)
	fmt.Fprintf(&b, "F: %g\n", r.F)
	fmt.Fprintf(&b, "S: %q\n\n", r.S)
	b.WriteString("args:\n")
	for i, v := range r.Args {
		fmt.Fprintf(&b, "  R%d = %v\n", i, lang.Display(v))
	}
	b.WriteString("locals:\n")
	for i, v := range r.Locals {
		fmt.Fprintf(&b, "  L%d = %v\n", i, lang.Display(v))
	}
	return b.String()
}

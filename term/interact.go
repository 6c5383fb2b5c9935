package term

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	xterm "golang.org/x/term"
)

var doubleByteCharacterRegexp = regexp.MustCompile(`[^\x00-\xff]`)

const _prompt = "> "

// KeyListenFunc lets a caller intercept a raw key before ReadLine's own
// default handling runs; returning handled=true skips ReadLine's switch
// for that key entirely (same hook shape as the teacher's KeyFunc, minus
// the atomicgo.dev/keyboard key-code dependency).
type KeyListenFunc func(key RawKey, rs *[]rune, runeIdx *int) (handled, redraw bool)

type ReadLineConfig struct {
	History []string
	Prompt  string
	KeyFunc KeyListenFunc
}

// RawKey is one decoded keypress: either a printable rune or one of the
// named control keys below.
type RawKey struct {
	Rune rune
	Name string // "", "enter", "backspace", "left", "right", "up", "down", "ctrlc", "ctrlb", "ctrln", "ctrll", "tab", "delete", "escape"
}

// ReadLine reads one line from the controlling terminal in raw mode,
// supporting left/right/up/down editing and history recall — the same
// feature set as the teacher's atomicgo-based ReadLine, reimplemented
// against golang.org/x/term's raw-mode primitive plus a hand-rolled
// escape-sequence decoder (no keypress-event library exists anywhere in
// the retrieval pack's go.mod set).
func ReadLine(config ReadLineConfig) string {
	if config.Prompt == "" {
		config.Prompt = _prompt
	}
	if config.History == nil {
		config.History = []string{}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := xterm.MakeRaw(fd)
	if err != nil {
		return readLineFallback(config.Prompt)
	}
	defer xterm.Restore(fd, oldState)

	print(config.Prompt)
	rs := []rune{}
	runeIdx := 0
	histIdx := len(config.History)
	r := bufio.NewReader(os.Stdin)

	for {
		key, err := readKey(r)
		if err != nil {
			break
		}

		if config.KeyFunc != nil {
			if handled, redraw := config.KeyFunc(key, &rs, &runeIdx); handled {
				if redraw {
					resetLine(rs, config.Prompt)
				}
				continue
			}
		}

		switch key.Name {
		case "ctrlc":
			os.Exit(0)
		case "enter":
			fmt.Print("\r\n")
			return string(rs)
		case "backspace":
			if runeIdx > 0 {
				rs = append(rs[:runeIdx-1], rs[runeIdx:]...)
				runeIdx--
				resetLine(rs, config.Prompt)
			}
		case "delete":
			if runeIdx < len(rs) {
				rs = append(rs[:runeIdx], rs[runeIdx+1:]...)
				resetLine(rs, config.Prompt)
			}
		case "left":
			if runeIdx > 0 {
				runeIdx--
			}
		case "right":
			if runeIdx < len(rs) {
				runeIdx++
			}
		case "up":
			if histIdx > 0 {
				histIdx--
				rs = []rune(config.History[histIdx])
				runeIdx = len(rs)
				resetLine(rs, config.Prompt)
			}
		case "down":
			if histIdx < len(config.History)-1 {
				histIdx++
				rs = []rune(config.History[histIdx])
			} else {
				histIdx = len(config.History)
				rs = []rune{}
			}
			runeIdx = len(rs)
			resetLine(rs, config.Prompt)
		case "tab":
			rs = append(rs[:runeIdx], append([]rune("  "), rs[runeIdx:]...)...)
			runeIdx += 2
			resetLine(rs, config.Prompt)
		default:
			if key.Rune != 0 {
				rs = append(rs[:runeIdx], append([]rune{key.Rune}, rs[runeIdx:]...)...)
				runeIdx++
				resetLine(rs, config.Prompt)
			}
		}
		redrawCursor(rs, runeIdx, config.Prompt)
	}
	return string(rs)
}

// readLineFallback is used when stdin isn't a terminal (e.g. piped
// input in a test or script), reading a plain newline-terminated line
// with no editing.
func readLineFallback(prompt string) string {
	print(prompt)
	r := bufio.NewReader(os.Stdin)
	line, _ := r.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// readKey decodes one keypress, including the handful of ANSI escape
// sequences (arrow keys) a raw-mode terminal sends as multi-byte runs.
func readKey(r *bufio.Reader) (RawKey, error) {
	b, err := r.ReadByte()
	if err != nil {
		return RawKey{}, err
	}
	switch b {
	case 3:
		return RawKey{Name: "ctrlc"}, nil
	case 2:
		return RawKey{Name: "ctrlb"}, nil
	case 12:
		return RawKey{Name: "ctrll"}, nil
	case 14:
		return RawKey{Name: "ctrln"}, nil
	case 13, 10:
		return RawKey{Name: "enter"}, nil
	case 127, 8:
		return RawKey{Name: "backspace"}, nil
	case 9:
		return RawKey{Name: "tab"}, nil
	case 27:
		b1, err := r.ReadByte()
		if err != nil || b1 != '[' {
			return RawKey{Name: "escape"}, nil
		}
		b2, err := r.ReadByte()
		if err != nil {
			return RawKey{}, err
		}
		switch b2 {
		case 'A':
			return RawKey{Name: "up"}, nil
		case 'B':
			return RawKey{Name: "down"}, nil
		case 'C':
			return RawKey{Name: "right"}, nil
		case 'D':
			return RawKey{Name: "left"}, nil
		case '3':
			r.ReadByte() // trailing '~'
			return RawKey{Name: "delete"}, nil
		}
		return RawKey{Name: "escape"}, nil
	}
	if b < 0x80 {
		return RawKey{Rune: rune(b)}, nil
	}
	// multi-byte UTF-8 rune: unread and let bufio.ReadRune decode it
	r.UnreadByte()
	ru, _, err := r.ReadRune()
	return RawKey{Rune: ru}, err
}

func resetLine(rs []rune, prompt string) {
	fmt.Print("\r\033[K")
	print(prompt + string(rs))
}

func redrawCursor(rs []rune, runeIdx int, prompt string) {
	col := calcIdx([]rune(prompt), len([]rune(prompt))) + calcIdx(rs, runeIdx)
	fmt.Printf("\r\033[%dC", col)
}

func calcIdx(rs []rune, runeIdx int) int {
	idx := 0
	for i, r := range rs {
		if i >= runeIdx {
			break
		}
		if isHan(r) {
			idx += 2
		} else {
			idx++
		}
	}
	return idx
}

func isHan(r rune) bool {
	return doubleByteCharacterRegexp.MatchString(string(r))
}

func Confirm(question string, default_ bool) bool {
	suffix := " [y/N]"
	if default_ {
		suffix = " [Y/n]"
	}
	input := ReadLine(ReadLineConfig{Prompt: fmt.Sprintf("%s%s: ", question, suffix)})
	if input == "" {
		return default_
	}
	return strings.ToLower(input) == "y"
}

func Option(question string, options []string, default_ int) int {
	println()
	for i := range options {
		fmt.Printf("%d. %s\n", i+1, options[i])
	}
	suffix := fmt.Sprintf("[default %d]", default_+1)
	input := ReadLine(ReadLineConfig{Prompt: fmt.Sprintf("%s %s:", question, suffix)})
	if input == "" {
		return default_
	}
	idx, err := strconv.Atoi(input)
	if err != nil {
		return default_
	}
	return idx - 1
}

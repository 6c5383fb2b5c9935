package term

import (
	"fmt"
	"strings"
	"time"
)

var (
	Frames1 = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	Frames2 = []string{"-", "\\", "|", "/"}
	Frames3 = []string{"◜", "◠", "◝", "◞", "◡", "◟"}
)

// spinner animates a line of terminal output via raw \r + clear-line
// escape codes, the same cursor-control idiom term/interact.go's
// resetLine uses — no cursor-control library is wired for this package
// (atomicgo.dev/cursor, the teacher's original choice, is not part of
// this project's dependency set; see DESIGN.md).
type spinner struct {
	frames   []string
	interval time.Duration
	index    int
	suffix   string
	ticker   *time.Ticker
}

func NewCustomSpinner(frames []string, interval time.Duration) *spinner {
	return &spinner{frames: frames, interval: interval}
}

func NewSpinner() *spinner {
	return NewCustomSpinner(Frames1, time.Millisecond*77)
}

func (s *spinner) Stop(clearLine bool) {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	s.ticker = nil
	if clearLine {
		fmt.Print("\r\033[K")
	} else {
		println()
	}
}

func (s *spinner) start() error {
	s.ticker = time.NewTicker(s.interval)
	go func() {
		for range s.ticker.C {
			s.index = (s.index + 1) % len(s.frames)
			fmt.Printf("\r%s%s", s.frames[s.index], s.suffix)
		}
	}()
	return nil
}

// SetString sets the suffix shown after the spinning frame; the spinner
// always stays on one line, so only the suffix's first line is kept.
func (s *spinner) SetString(suffix string) {
	if s.ticker == nil {
		defer s.start()
	}
	suffix = strings.TrimSpace(suffix)
	suffix = strings.Split(suffix, "\n")[0]
	s.suffix = " " + suffix
}

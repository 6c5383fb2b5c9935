// Package logger provides the engine's level-gated logging. Output only
// happens when consts.Debug is set.
package logger

import (
	"fmt"
	"os"

	"github.com/lollipopkit/reggie/consts"
)

func I(fm string, a ...any) {
	if consts.Debug {
		fmt.Fprintf(os.Stderr, "[INFO] %s\n", fmt.Sprintf(fm, a...))
	}
}

func E(fm string, a ...any) {
	if consts.Debug {
		fmt.Fprintf(os.Stderr, "[ERROR] %s\n", fmt.Sprintf(fm, a...))
	}
}

func W(fm string, a ...any) {
	if consts.Debug {
		fmt.Fprintf(os.Stderr, "[WARN] %s\n", fmt.Sprintf(fm, a...))
	}
}

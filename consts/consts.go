// Package consts holds build-wide constants: version string, the debug
// gate read by logger, and the fixed sizes the Reggie machine allocates
// up front.
package consts

const VERSION = "0.1.0"

// Debug gates logger output. Flipped on by cmd/reggie's -debug flag.
var Debug = false

const (
	// ArgRegisterCount is the fixed size of each per-type argument
	// register file (spec §3: "fixed size, e.g. 16 per type").
	ArgRegisterCount = 16

	// MaxFrameDepth bounds the VM's frame stack; exceeding it is a stack
	// overflow rather than unbounded host-stack recursion.
	MaxFrameDepth = 4096
)

package astvm

import "github.com/lollipopkit/reggie/lang"

// ctrl is the control-flow signal spec §4.3 requires: {Continue,
// Return(pack)}. It unwinds exactly one enclosing function call (spec
// §9: "implementers should not conflate Return with an outer loop
// break"); loops only terminate on their own condition, except when a
// Return passes through them unmodified.
type ctrl struct {
	returning bool
	values    []lang.Value
}

var ctrlContinue = ctrl{}

func ctrlReturn(values []lang.Value) ctrl {
	return ctrl{returning: true, values: values}
}

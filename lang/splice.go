package lang

// SpliceTailValues implements the tail-value splicing rule (spec §4.2),
// used identically at return statements, assignment right-hand sides,
// and call argument lists: every result but the last contributes only
// its first value; the last result's pack expands in full.
func SpliceTailValues(results []ReturnValue) []Value {
	if len(results) == 0 {
		return nil
	}
	out := make([]Value, 0, len(results))
	for _, r := range results[:len(results)-1] {
		out = append(out, r.First())
	}
	out = append(out, results[len(results)-1].Values...)
	return out
}

package bv

import "fmt"

// assertf panics with a formatted message when cond is false. It guards
// contract violations at the public API boundary (bad widths, out-of-range
// indices, operations called out of sequence) — never the per-word
// arithmetic loops themselves.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Package assert provides runtime assertion checking for invariants that must hold regardless of
// input (as opposed to errs, which reports conditions caused by the input itself).
package assert

import "fmt"

// That panics if condition is false.
func That(condition bool, msg string, args ...any) {
	if condition {
		return
	}

	if len(args) > 0 {
		panic(fmt.Sprintf(msg, args...))
	}
	panic(msg)
}

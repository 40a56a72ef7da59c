// Package assert provides a checked-assertion helper for invariants that
// should never fail in a correct build. Assert is a no-op when DEBUG is
// false, so the Go compiler eliminates the call entirely at the (constant)
// call sites guarded by "if assert.DEBUG { ... }" — callers must still use
// that guard themselves, since Go evaluates a function's arguments before
// calling it even when the function body is empty.
//
// Grounded on the teacher's assert/assert_release.go: a DEBUG const flipped
// between build variants rather than a runtime flag, so release builds pay
// no assertion overhead.
package assert

import "fmt"

// DEBUG enables invariant checks. Built disabled; flip to true (or wire a
// build tag, as the teacher does with a "!debug" constraint) to check
// Position invariants and similar internal consistency conditions during
// development.
const DEBUG = false

// Assert panics with a formatted message if test is false. Per spec §7, a
// failed assertion is a programming defect, not a recoverable error — it
// surfaces as a panic in debug builds and is compiled out entirely in
// release builds.
func Assert(test bool, format string, args ...interface{}) {
	if !test {
		panic(fmt.Sprintf(format, args...))
	}
}

//go:build !pathdebug

package pather

// debugChecks enables contract assertions. Build with -tags pathdebug to turn
// them on; in normal builds every check compiles away.
const debugChecks = false

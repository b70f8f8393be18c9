package pather

// assert panics when a Graph or internal contract is broken. Callers guard it
// with debugChecks so release builds pay nothing.
func assert(cond bool, msg string) {
	if !cond {
		panic("pather: " + msg)
	}
}

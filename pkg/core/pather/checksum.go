package pather

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// StateKeyer is implemented by graphs that can map a state to a stable
// integer. The key feeds the path checksum; graphs without it fall back to
// hashing the state's default string form.
type StateKeyer[S comparable] interface {
	StateKey(state S) uint64
}

// StatePrinter is implemented by graphs that can describe a state for debug
// logs.
type StatePrinter[S comparable] interface {
	PrintStateInfo(state S) string
}

// pathChecksum folds a path into an order-sensitive value:
//
//	sum += key(path[k]) << (k % 8)
//
// with wrapping uint64 arithmetic. It is meant for cheap equality checks
// between computed paths, not for integrity.
func pathChecksum[S comparable](path []S, key func(S) uint64) uint64 {
	var sum uint64
	for k, s := range path {
		sum += key(s) << (k % 8)
	}
	return sum
}

func fallbackKey[S comparable](s S) uint64 {
	return xxhash.Sum64String(fmt.Sprint(s))
}

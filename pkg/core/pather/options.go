package pather

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrPoolExhausted is returned when a query needs more search records than
// Options.MaxNodes allows. The query is abandoned; the solver stays usable.
var ErrPoolExhausted = errors.New("pather: node pool exhausted")

// FrontierKind selects the open list implementation.
type FrontierKind string

const (
	// FrontierList is a sorted intrusive linked list. Cheap for the small
	// frontiers typical of game maps.
	FrontierList FrontierKind = "list"
	// FrontierBTree is an ordered B-tree, better suited to very large
	// frontiers. It pops records in the same order as FrontierList.
	FrontierBTree FrontierKind = "btree"
)

// Observer receives a summary of every query. Implementations must be cheap;
// they run synchronously at the end of Solve and SolveNear.
type Observer interface {
	ObserveSolve(kind, status string, expanded int, elapsed time.Duration)
	ObserveCache(hits, misses int)
	ObservePool(nodes int)
}

// Options configures a Solver.
type Options struct {
	// ExpectedNodes sizes the state index. Default: 512.
	ExpectedNodes int
	// BlockSize is the number of records allocated at once when the pool
	// runs dry. Default: 256.
	BlockSize int
	// MaxNodes caps the total number of records. 0 means unlimited.
	MaxNodes int
	// CacheCapacity is the number of (neighbor, cost) entries the adjacency
	// cache can hold. 0 disables caching. Default: 4096.
	CacheCapacity int
	// Frontier selects the open list. Default: FrontierList.
	Frontier FrontierKind

	Logger   zerolog.Logger
	Observer Observer
}

// DefaultOptions returns options suitable for maps of a few thousand states.
func DefaultOptions() Options {
	return Options{
		ExpectedNodes: 512,
		BlockSize:     256,
		MaxNodes:      0,
		CacheCapacity: 4096,
		Frontier:      FrontierList,
		Logger:        zerolog.Nop(),
	}
}

// Validate reports whether the options are usable.
func (o Options) Validate() error {
	if o.ExpectedNodes < 0 {
		return fmt.Errorf("expected nodes must be >= 0, got %d", o.ExpectedNodes)
	}
	if o.BlockSize <= 0 {
		return fmt.Errorf("block size must be > 0, got %d", o.BlockSize)
	}
	if o.MaxNodes < 0 {
		return fmt.Errorf("max nodes must be >= 0, got %d", o.MaxNodes)
	}
	if o.CacheCapacity < 0 {
		return fmt.Errorf("adjacency cache capacity must be >= 0, got %d", o.CacheCapacity)
	}
	switch o.Frontier {
	case "", FrontierList, FrontierBTree:
	default:
		return fmt.Errorf("unknown frontier %q", o.Frontier)
	}
	return nil
}

// withDefaults fills zero values so that New never works with a degenerate
// configuration.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ExpectedNodes <= 0 {
		o.ExpectedNodes = def.ExpectedNodes
	}
	if o.BlockSize <= 0 {
		o.BlockSize = def.BlockSize
	}
	if o.MaxNodes < 0 {
		o.MaxNodes = 0
	}
	if o.CacheCapacity < 0 {
		o.CacheCapacity = 0
	}
	if o.Frontier == "" {
		o.Frontier = FrontierList
	}
	return o
}

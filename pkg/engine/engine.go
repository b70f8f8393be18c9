// Package engine provides the high-level, embedded interface for kektorpath.
//
// It couples a dungeon map with one pather.Solver and serializes access to
// both, so it can be shared by the HTTP server, the MCP tools and the REPL.
//
// Basic usage:
//
//	eng, err := engine.Open(engine.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := eng.FindPath(dungeon.Cell{X: 0, Y: 9}, dungeon.Cell{X: 24, Y: 9})
package engine

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sanonone/kektorpath/pkg/core/pather"
	"github.com/sanonone/kektorpath/pkg/dungeon"
)

var (
	// ErrOutOfBounds is returned when a query names a cell outside the map.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrBlocked is returned when a query starts or ends on a cell that is
	// not currently passable.
	ErrBlocked = errors.New("cell is not passable")
)

// Options configures the Engine.
type Options struct {
	// MapPath is a dungeon text file. Empty selects MapText, or
	// dungeon.DefaultMap when MapText is empty too.
	MapPath string
	MapText string

	DoorsOpen bool

	// Solver sizes the node pool and adjacency cache.
	Solver pather.Options

	Logger zerolog.Logger
}

// DefaultOptions returns the built-in map with closed doors.
func DefaultOptions() Options {
	return Options{
		Solver: pather.DefaultOptions(),
		Logger: zerolog.Nop(),
	}
}

// Engine is safe for concurrent use. Queries are serialized: the solver
// keeps per-query state in its node pool.
type Engine struct {
	mu     sync.Mutex
	world  *dungeon.Map
	solver *pather.Solver[dungeon.Cell]
	log    zerolog.Logger
}

// Open loads the map and builds the solver.
func Open(opts Options) (*Engine, error) {
	if err := opts.Solver.Validate(); err != nil {
		return nil, fmt.Errorf("invalid solver options: %w", err)
	}

	world, err := loadMap(opts)
	if err != nil {
		return nil, err
	}
	world.SetDoorsOpen(opts.DoorsOpen)

	solverOpts := opts.Solver
	solverOpts.Logger = opts.Logger
	e := &Engine{
		world:  world,
		solver: pather.New[dungeon.Cell](world, solverOpts),
		log:    opts.Logger,
	}
	e.log.Info().
		Int("width", world.Width()).
		Int("height", world.Height()).
		Bool("doors_open", world.DoorsOpen()).
		Str("frontier", string(solverOpts.Frontier)).
		Msg("engine ready")
	return e, nil
}

func loadMap(opts Options) (*dungeon.Map, error) {
	if opts.MapPath == "" {
		text := opts.MapText
		if text == "" {
			text = dungeon.DefaultMap
		}
		m, err := dungeon.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse map: %w", err)
		}
		return m, nil
	}

	f, err := os.Open(opts.MapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map: %w", err)
	}
	defer f.Close()
	m, err := dungeon.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load map '%s': %w", opts.MapPath, err)
	}
	return m, nil
}

// SetDoors opens or closes every door and resets the solver, since cached
// neighbor costs no longer hold.
func (e *Engine) SetDoors(open bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.world.DoorsOpen() == open {
		return
	}
	e.world.SetDoorsOpen(open)
	e.solver.Reset()
	e.log.Info().Bool("doors_open", open).Msg("doors toggled")
}

func (e *Engine) DoorsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.DoorsOpen()
}

// Reset drops every cached search record.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.solver.Reset()
}

// Stats combines solver usage with map facts.
type Stats struct {
	pather.Stats
	Width     int
	Height    int
	DoorsOpen bool
	Checksum  uint64
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Stats:     e.solver.Stats(),
		Width:     e.world.Width(),
		Height:    e.world.Height(),
		DoorsOpen: e.world.DoorsOpen(),
		Checksum:  e.solver.Checksum(),
	}
}

// Render draws the map with path marked.
func (e *Engine) Render(path []dungeon.Cell) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.Render(path)
}

// checkCell validates a query endpoint. Callers hold e.mu.
func (e *Engine) checkCell(c dungeon.Cell) error {
	if !e.world.InBounds(c) {
		return fmt.Errorf("%v: %w", c, ErrOutOfBounds)
	}
	if !e.world.Passable(c) {
		return fmt.Errorf("%v: %w", c, ErrBlocked)
	}
	return nil
}

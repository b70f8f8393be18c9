// Package dungeon provides a character-grid world that implements the
// pather.Graph contract.
//
// This file implements map parsing, cell queries and rendering. A map is a
// block of equal-width text rows: a space is open floor, 'D' is a door and
// any other character is wall. Doors are passable only while they are open.

package dungeon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyMap is returned when the input holds no rows.
var ErrEmptyMap = errors.New("dungeon: empty map")

// Cell is a grid coordinate. X grows to the right, Y grows downwards.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Terrain classifies a map character.
type Terrain uint8

const (
	Wall Terrain = iota
	Floor
	Door
)

// DefaultMap is the 30x10 dungeon served when no map file is configured.
// The room in the middle of row 5 is only reachable through its two doors.
var DefaultMap = strings.Join([]string{
	"     |      |                |",
	"     |      |----+    |      +",
	"---+ +---DD-+      +--+--+    ",
	"   |                     +-- +",
	"        +----+  +---+         ",
	"---+ +  D    D            |   ",
	"   | |  +----+    +----+  +--+",
	"   | |            |    |      ",
	"   | +-------+  +-+    D      ",
	"                       |      ",
}, "\n")

// Map is a parsed dungeon. It is not safe for concurrent use; callers that
// share a Map guard it together with the solver that searches it.
type Map struct {
	rows      []string
	width     int
	height    int
	doorsOpen bool
}

// Parse builds a Map from text. Trailing carriage returns are stripped so
// files saved with CRLF line endings load unchanged.
func Parse(text string) (*Map, error) {
	return Load(strings.NewReader(text))
}

// Load reads a Map from r. Every row must have the same width.
func Load(r io.Reader) (*Map, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dungeon: read map: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("dungeon: row %d has width %d, want %d", i, len(row), width)
		}
	}
	return &Map{rows: rows, width: width, height: len(rows)}, nil
}

// MustParse is like Parse but panics on error. It is meant for maps embedded
// in the program, such as DefaultMap.
func MustParse(text string) *Map {
	m, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// SetDoorsOpen opens or closes every door. A solver that already searched
// this map must be Reset afterwards, since door costs change.
func (m *Map) SetDoorsOpen(open bool) { m.doorsOpen = open }

func (m *Map) DoorsOpen() bool { return m.doorsOpen }

// InBounds reports whether c lies on the map.
func (m *Map) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < m.width && c.Y < m.height
}

// TerrainAt classifies the cell; out-of-bounds cells are Wall.
func (m *Map) TerrainAt(c Cell) Terrain {
	if !m.InBounds(c) {
		return Wall
	}
	switch m.rows[c.Y][c.X] {
	case ' ':
		return Floor
	case 'D':
		return Door
	default:
		return Wall
	}
}

// Passable reports whether a walker may currently stand on c.
func (m *Map) Passable(c Cell) bool {
	switch m.TerrainAt(c) {
	case Floor:
		return true
	case Door:
		return m.doorsOpen
	default:
		return false
	}
}

// Render draws the map with '*' on every cell of path. Rows are joined with
// newlines and carry no trailing newline.
func (m *Map) Render(path []Cell) string {
	grid := make([][]byte, m.height)
	for y, row := range m.rows {
		grid[y] = []byte(row)
	}
	for _, c := range path {
		if m.InBounds(c) {
			grid[c.Y][c.X] = '*'
		}
	}

	var b strings.Builder
	b.Grow((m.width + 1) * m.height)
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.Write(row)
	}
	return b.String()
}

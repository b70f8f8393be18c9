package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sanonone/kektorpath/pkg/core/pather"
	"github.com/sanonone/kektorpath/pkg/dungeon"
	"github.com/sanonone/kektorpath/pkg/engine"
)

// ErrUnknownCommand is returned for verbs the dispatcher does not handle.
var ErrUnknownCommand = errors.New("unknown command")

// Dispatcher executes text commands against an Engine:
//
//	PATH x1 y1 x2 y2
//	NEAR x y max_cost
//	DOORS OPEN|CLOSE
//	RESET
//	STATS
//	MAP [x1 y1 x2 y2]
//	PING
type Dispatcher struct {
	engine *engine.Engine
}

func NewDispatcher(eng *engine.Engine) *Dispatcher {
	return &Dispatcher{engine: eng}
}

// Execute runs cmd and returns the reply text, without a trailing newline.
func (d *Dispatcher) Execute(cmd *Command) (string, error) {
	switch cmd.Name {
	case "PING":
		return "PONG", nil
	case "PATH":
		return d.path(cmd)
	case "NEAR":
		return d.near(cmd)
	case "DOORS":
		return d.doors(cmd)
	case "RESET":
		if err := arity(cmd, 0); err != nil {
			return "", err
		}
		d.engine.Reset()
		return "OK", nil
	case "STATS":
		if err := arity(cmd, 0); err != nil {
			return "", err
		}
		return formatStats(d.engine.Stats()), nil
	case "MAP":
		return d.renderMap(cmd)
	default:
		return "", fmt.Errorf("%w '%s'", ErrUnknownCommand, cmd.Name)
	}
}

func (d *Dispatcher) path(cmd *Command) (string, error) {
	if err := arity(cmd, 4); err != nil {
		return "", err
	}
	nums, err := ints(cmd.Args)
	if err != nil {
		return "", err
	}
	res, err := d.engine.FindPath(dungeon.Cell{X: nums[0], Y: nums[1]}, dungeon.Cell{X: nums[2], Y: nums[3]})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(res.Status.String())
	if res.Status == pather.Solved {
		fmt.Fprintf(&b, " cost=%s checksum=%d", formatCost(res.Cost), res.Checksum)
	}
	fmt.Fprintf(&b, " expanded=%d", res.Expanded)
	if len(res.Path) > 0 {
		b.WriteByte('\n')
		for i, c := range res.Path {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(c.String())
		}
	}
	return b.String(), nil
}

func (d *Dispatcher) near(cmd *Command) (string, error) {
	if err := arity(cmd, 3); err != nil {
		return "", err
	}
	nums, err := ints(cmd.Args[:2])
	if err != nil {
		return "", err
	}
	maxCost, err := strconv.ParseFloat(cmd.Args[2], 64)
	if err != nil {
		return "", fmt.Errorf("invalid cost '%s': %w", cmd.Args[2], err)
	}

	near, err := d.engine.Near(dungeon.Cell{X: nums[0], Y: nums[1]}, maxCost)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(near)+1)
	lines = append(lines, fmt.Sprintf("%d cells", len(near)))
	for _, n := range near {
		lines = append(lines, n.Cell.String()+" "+formatCost(n.Cost))
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) doors(cmd *Command) (string, error) {
	if err := arity(cmd, 1); err != nil {
		return "", err
	}
	switch strings.ToUpper(cmd.Args[0]) {
	case "OPEN":
		d.engine.SetDoors(true)
		return "OK doors=open", nil
	case "CLOSE":
		d.engine.SetDoors(false)
		return "OK doors=closed", nil
	default:
		return "", fmt.Errorf("DOORS expects OPEN or CLOSE, got '%s'", cmd.Args[0])
	}
}

// renderMap draws the map, with the path between two cells when given.
func (d *Dispatcher) renderMap(cmd *Command) (string, error) {
	if len(cmd.Args) == 0 {
		return d.engine.Render(nil), nil
	}
	if err := arity(cmd, 4); err != nil {
		return "", err
	}
	nums, err := ints(cmd.Args)
	if err != nil {
		return "", err
	}
	res, err := d.engine.FindPath(dungeon.Cell{X: nums[0], Y: nums[1]}, dungeon.Cell{X: nums[2], Y: nums[3]})
	if err != nil {
		return "", err
	}
	return d.engine.Render(res.Path), nil
}

func arity(cmd *Command, n int) error {
	if len(cmd.Args) != n {
		return fmt.Errorf("wrong number of arguments for '%s': want %d, got %d", cmd.Name, n, len(cmd.Args))
	}
	return nil
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate '%s': %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func formatCost(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

func formatStats(st engine.Stats) string {
	return fmt.Sprintf("generation=%d blocks=%d nodes=%d indexed=%d cache=%d/%d hits=%d misses=%d doors=%t checksum=%d",
		st.Generation, st.Blocks, st.NodesAllocated, st.NodesIndexed,
		st.CacheUsed, st.CacheCapacity, st.CacheHits, st.CacheMisses,
		st.DoorsOpen, st.Checksum)
}

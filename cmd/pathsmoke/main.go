// Command pathsmoke runs random path queries over a dungeon map with both
// frontier implementations and checks that they agree.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sanonone/kektorpath/pkg/core/pather"
	"github.com/sanonone/kektorpath/pkg/dungeon"
)

func main() {
	mapPath := flag.String("map", "", "Dungeon text file (built-in map when empty)")
	queries := flag.Int("n", 2000, "Number of random queries")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	m, err := loadMap(*mapPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var open []dungeon.Cell
	m.SetDoorsOpen(true)
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if c := (dungeon.Cell{X: x, Y: y}); m.Passable(c) {
				open = append(open, c)
			}
		}
	}
	if len(open) == 0 {
		fmt.Fprintln(os.Stderr, "map has no passable cells")
		os.Exit(1)
	}
	fmt.Printf("PATH SMOKE: %dx%d map, %d passable cells, %d queries\n", m.Width(), m.Height(), len(open), *queries)

	btreeOpts := pather.DefaultOptions()
	btreeOpts.Frontier = pather.FrontierBTree
	list := pather.New[dungeon.Cell](m, pather.DefaultOptions())
	tree := pather.New[dungeon.Cell](m, btreeOpts)

	rng := rand.New(rand.NewSource(*seed))
	var listTime, treeTime time.Duration
	solved, mismatches := 0, 0
	for i := 0; i < *queries; i++ {
		// Flip the doors now and then; both solvers must be reset.
		if i > 0 && i%500 == 0 {
			m.SetDoorsOpen(!m.DoorsOpen())
			list.Reset()
			tree.Reset()
		}
		from, to := open[rng.Intn(len(open))], open[rng.Intn(len(open))]

		start := time.Now()
		a, err := list.Solve(from, to)
		listTime += time.Since(start)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		start = time.Now()
		b, err := tree.Solve(from, to)
		treeTime += time.Since(start)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if a.Status == pather.Solved {
			solved++
		}
		if a.Status != b.Status || a.Cost != b.Cost || list.Checksum() != tree.Checksum() {
			mismatches++
			fmt.Printf("MISMATCH %v -> %v: list %v %.2f, btree %v %.2f\n", from, to, a.Status, a.Cost, b.Status, b.Cost)
		}
	}

	st := list.Stats()
	fmt.Printf("solved:        %d/%d\n", solved, *queries)
	fmt.Printf("list frontier: %v\n", listTime)
	fmt.Printf("btree frontier: %v\n", treeTime)
	fmt.Printf("pool:          %d nodes in %d blocks, cache %.0f%% full, %.1f%% hits\n",
		st.NodesAllocated, st.Blocks, 100*st.MemoryFraction(), 100*st.HitFraction())

	if mismatches > 0 {
		fmt.Printf("FAILED: %d mismatches\n", mismatches)
		os.Exit(1)
	}
	fmt.Println("OK")
}

func loadMap(path string) (*dungeon.Map, error) {
	if path == "" {
		return dungeon.Parse(dungeon.DefaultMap)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dungeon.Load(f)
}

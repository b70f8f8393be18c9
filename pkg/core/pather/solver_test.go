package pather

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestSolveStartEndSameTouchesNothing(t *testing.T) {
	g := &gridGraph{w: 4, h: 4}
	s := New[cell](g, DefaultOptions())

	res, err := s.Solve(cell{1, 1}, cell{1, 1})
	require.NoError(t, err)

	if res.Status != StartEndSame {
		t.Fatalf("status = %v, want %v", res.Status, StartEndSame)
	}
	if res.Cost != 0 || res.Path != nil {
		t.Errorf("trivial result carries data: %+v", res)
	}
	st := s.Stats()
	if st.NodesAllocated != 0 || st.Generation != 0 || st.Blocks != 0 {
		t.Errorf("trivial solve touched the pool: %+v", st)
	}
	if g.calls != 0 {
		t.Errorf("trivial solve queried the graph %d times", g.calls)
	}
}

func TestSolveSimplePath(t *testing.T) {
	g := &tableGraph{adj: map[string][]StateCost[string]{
		"a": {{"b", 1}, {"c", 4}},
		"b": {{"c", 1}, {"d", 5}},
		"c": {{"d", 1}},
	}}
	s := New[string](g, DefaultOptions())

	res, err := s.Solve("a", "d")
	require.NoError(t, err)
	require.Equal(t, Solved, res.Status)

	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, res.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if res.Cost != 3 {
		t.Errorf("cost = %v, want 3", res.Cost)
	}
}

func TestSolveNoSolution(t *testing.T) {
	g := &tableGraph{adj: map[string][]StateCost[string]{
		"a": {{"b", 1}},
		"b": {{"a", 1}},
		"c": {{"a", 1}},
	}}
	s := New[string](g, DefaultOptions())
	s.Solve("a", "b") // leaves a checksum behind
	before := s.Checksum()

	res, err := s.Solve("a", "c")
	require.NoError(t, err)

	if res.Status != NoSolution {
		t.Fatalf("status = %v, want %v", res.Status, NoSolution)
	}
	if res.Cost != 0 || res.Path != nil {
		t.Errorf("unsolved result carries data: %+v", res)
	}
	if s.Checksum() != before {
		t.Errorf("checksum changed on NoSolution: %d -> %d", before, s.Checksum())
	}
}

func TestSolveSkipsInfiniteEdges(t *testing.T) {
	g := &tableGraph{adj: map[string][]StateCost[string]{
		"a": {{"goal", Infinite}, {"b", 5}},
		"b": {{"goal", 5}},
	}}
	s := New[string](g, DefaultOptions())

	res, err := s.Solve("a", "goal")
	require.NoError(t, err)
	require.Equal(t, Solved, res.Status)
	if res.Cost != 10 {
		t.Errorf("cost = %v, want 10 (the infinite edge must not be taken)", res.Cost)
	}

	g.adj["b"] = []StateCost[string]{{"goal", Infinite}}
	s.Reset()
	res, err = s.Solve("a", "goal")
	require.NoError(t, err)
	if res.Status != NoSolution {
		t.Errorf("status = %v, want %v with every edge into goal blocked", res.Status, NoSolution)
	}
}

func TestSolveMatchesDijkstraOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		g := randomGrid(rng, 12, 9, 0.25)
		s := New[cell](g, DefaultOptions())

		for q := 0; q < 10; q++ {
			from, to := g.randomOpenCell(rng), g.randomOpenCell(rng)
			if from == to {
				continue
			}
			want := g.oracle(from).WeightTo(g.id(to))

			res, err := s.Solve(from, to)
			require.NoError(t, err)

			if math.IsInf(want, 1) {
				if res.Status != NoSolution {
					t.Fatalf("round %d %v->%v: status %v, oracle says unreachable", round, from, to, res.Status)
				}
				continue
			}
			if res.Status != Solved {
				t.Fatalf("round %d %v->%v: status %v, oracle cost %v", round, from, to, res.Status, want)
			}
			if math.Abs(res.Cost-want) > tolerance {
				t.Fatalf("round %d %v->%v: cost %v, oracle %v", round, from, to, res.Cost, want)
			}
			if res.Path[0] != from || res.Path[len(res.Path)-1] != to {
				t.Fatalf("path endpoints %v..%v, want %v..%v", res.Path[0], res.Path[len(res.Path)-1], from, to)
			}
			if got := pathCost[cell](t, g, res.Path); math.Abs(got-res.Cost) > tolerance {
				t.Fatalf("path edges sum to %v, reported cost %v", got, res.Cost)
			}
		}
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := randomGrid(rng, 20, 15, 0.2)
	from, to := cell{0, 0}, cell{19, 14}
	delete(g.blocked, from)
	delete(g.blocked, to)

	s := New[cell](g, DefaultOptions())
	first, err := s.Solve(from, to)
	require.NoError(t, err)
	sum := s.Checksum()

	for i := 0; i < 5; i++ {
		if i%2 == 1 {
			s.Reset()
		}
		res, err := s.Solve(from, to)
		require.NoError(t, err)
		if res.Status != first.Status || res.Cost != first.Cost {
			t.Fatalf("run %d: %v/%v, first run %v/%v", i, res.Status, res.Cost, first.Status, first.Cost)
		}
		if s.Checksum() != sum {
			t.Fatalf("run %d: checksum %d, first run %d", i, s.Checksum(), sum)
		}
	}
}

func TestFrontiersAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 10; round++ {
		g := randomGrid(rng, 16, 12, 0.2)

		listOpts := DefaultOptions()
		treeOpts := DefaultOptions()
		treeOpts.Frontier = FrontierBTree
		list := New[cell](g, listOpts)
		tree := New[cell](g, treeOpts)

		for q := 0; q < 10; q++ {
			from, to := g.randomOpenCell(rng), g.randomOpenCell(rng)
			a, err := list.Solve(from, to)
			require.NoError(t, err)
			b, err := tree.Solve(from, to)
			require.NoError(t, err)

			if diff := cmp.Diff(a, b); diff != "" {
				t.Fatalf("round %d %v->%v: frontiers disagree (-list +btree):\n%s", round, from, to, diff)
			}
			if list.Checksum() != tree.Checksum() {
				t.Fatalf("checksums differ: %d vs %d", list.Checksum(), tree.Checksum())
			}

			na, err := list.SolveNear(from, 6)
			require.NoError(t, err)
			nb, err := tree.SolveNear(from, 6)
			require.NoError(t, err)
			if diff := cmp.Diff(na, nb); diff != "" {
				t.Fatalf("near sets disagree (-list +btree):\n%s", diff)
			}
		}
	}
}

// With an admissible but inconsistent heuristic, c is closed through the
// expensive route before the cheap one is found. The cheaper cost is written
// into c but c is not expanded again, so the goal keeps the cost it was
// pushed with while its parent chain already follows the cheap route.
func TestClosedRecordUpdatedButNotReopened(t *testing.T) {
	g := &tableGraph{
		adj: map[string][]StateCost[string]{
			"s": {{"a", 1}, {"b", 2}},
			"a": {{"c", 3}},
			"b": {{"c", 1}},
			"c": {{"g", 3}},
		},
		h: map[string]float64{"b": 4},
	}
	s := New[string](g, DefaultOptions())

	res, err := s.Solve("s", "g")
	require.NoError(t, err)
	require.Equal(t, Solved, res.Status)

	if res.Cost != 7 {
		t.Errorf("cost = %v, want 7 (goal is not re-relaxed after c improves)", res.Cost)
	}
	if diff := cmp.Diff([]string{"s", "b", "c", "g"}, res.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestSolveReusesAdjacencyCache(t *testing.T) {
	g := &gridGraph{w: 10, h: 10}
	s := New[cell](g, DefaultOptions())

	_, err := s.Solve(cell{0, 0}, cell{9, 9})
	require.NoError(t, err)
	calls := g.calls
	misses := s.Stats().CacheMisses

	_, err = s.Solve(cell{0, 0}, cell{9, 9})
	require.NoError(t, err)

	if g.calls != calls {
		t.Errorf("second solve queried the graph %d more times", g.calls-calls)
	}
	st := s.Stats()
	if st.CacheMisses != misses {
		t.Errorf("misses grew from %d to %d", misses, st.CacheMisses)
	}
	if st.CacheHits == 0 || st.HitFraction() <= 0 {
		t.Errorf("no cache hits recorded: %+v", st)
	}
	if st.Generation != 2 {
		t.Errorf("generation = %d, want 2", st.Generation)
	}
}

func TestSolveWithoutCacheRoom(t *testing.T) {
	g := &gridGraph{w: 8, h: 8, blocked: map[cell]bool{{3, 3}: true, {4, 4}: true}}
	opts := DefaultOptions()
	opts.CacheCapacity = 10
	small := New[cell](g, opts)
	full := New[cell](g, DefaultOptions())

	for i := 0; i < 3; i++ {
		a, err := small.Solve(cell{0, 0}, cell{7, 7})
		require.NoError(t, err)
		b, err := full.Solve(cell{0, 0}, cell{7, 7})
		require.NoError(t, err)
		if diff := cmp.Diff(b, a); diff != "" {
			t.Fatalf("run %d: small cache changes the result (-full +small):\n%s", i, diff)
		}
	}
	if used := small.Stats().CacheUsed; used > 10 {
		t.Errorf("cache holds %d entries, capacity 10", used)
	}
}

func TestResetPicksUpNewCosts(t *testing.T) {
	g := &tableGraph{adj: map[string][]StateCost[string]{
		"a": {{"b", 1}},
		"b": {{"c", 1}},
	}}
	s := New[string](g, DefaultOptions())

	res, err := s.Solve("a", "c")
	require.NoError(t, err)
	require.Equal(t, 2.0, res.Cost)

	g.adj["b"] = []StateCost[string]{{"c", 10}}

	// Cached adjacency is not invalidated automatically: the old cost sticks.
	res, err = s.Solve("a", "c")
	require.NoError(t, err)
	if res.Cost != 2 {
		t.Errorf("without reset cost = %v, want the cached 2", res.Cost)
	}

	s.Reset()
	res, err = s.Solve("a", "c")
	require.NoError(t, err)
	if res.Cost != 11 {
		t.Errorf("after reset cost = %v, want 11", res.Cost)
	}
}

func TestResetKeepsMemory(t *testing.T) {
	g := &gridGraph{w: 30, h: 30}
	opts := DefaultOptions()
	opts.BlockSize = 64
	s := New[cell](g, opts)

	_, err := s.Solve(cell{0, 0}, cell{29, 29})
	require.NoError(t, err)
	before := s.Stats()

	s.Reset()
	after := s.Stats()
	if after.Blocks != before.Blocks || after.NodesAllocated != before.NodesAllocated {
		t.Errorf("reset released memory: %+v -> %+v", before, after)
	}
	if after.NodesIndexed != 0 || after.CacheUsed != 0 || after.Generation != 0 {
		t.Errorf("reset left state behind: %+v", after)
	}

	_, err = s.Solve(cell{0, 0}, cell{29, 29})
	require.NoError(t, err)
	if got := s.Stats(); got.Blocks != before.Blocks {
		t.Errorf("same query after reset grew the pool: %d -> %d blocks", before.Blocks, got.Blocks)
	}
}

func TestSolvePoolExhausted(t *testing.T) {
	g := &gridGraph{w: 20, h: 20}
	opts := DefaultOptions()
	opts.BlockSize = 16
	opts.MaxNodes = 40
	s := New[cell](g, opts)

	_, err := s.Solve(cell{0, 0}, cell{19, 19})
	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("err = %v, want ErrPoolExhausted", err)
	}

	// A query that fits keeps working after the failure.
	s.Reset()
	res, err := s.Solve(cell{0, 0}, cell{1, 0})
	require.NoError(t, err)
	require.Equal(t, Solved, res.Status)
}

func TestChecksumFold(t *testing.T) {
	g := &gridGraph{w: 5, h: 1}
	s := New[cell](g, DefaultOptions())

	_, err := s.Solve(cell{0, 0}, cell{4, 0})
	require.NoError(t, err)

	// keys 0,1,2,3,4 shifted by their position
	want := uint64(0<<0 + 1<<1 + 2<<2 + 3<<3 + 4<<4)
	if got := s.Checksum(); got != want {
		t.Errorf("checksum = %d, want %d", got, want)
	}

	if pathChecksum([]cell{{0, 0}, {1, 0}}, g.StateKey) == pathChecksum([]cell{{1, 0}, {0, 0}}, g.StateKey) {
		t.Error("checksum is not order sensitive")
	}
}

func TestChecksumFallbackKeyIsStable(t *testing.T) {
	a := pathChecksum([]string{"x", "y", "z"}, fallbackKey[string])
	b := pathChecksum([]string{"x", "y", "z"}, fallbackKey[string])
	if a != b || a == 0 {
		t.Errorf("fallback checksum unstable or empty: %d, %d", a, b)
	}
}

type recordingObserver struct {
	kinds    []string
	statuses []string
	hits     int
	misses   int
	nodes    int
}

func (o *recordingObserver) ObserveSolve(kind, status string, expanded int, elapsed time.Duration) {
	o.kinds = append(o.kinds, kind)
	o.statuses = append(o.statuses, status)
}

func (o *recordingObserver) ObserveCache(hits, misses int) {
	o.hits += hits
	o.misses += misses
}

func (o *recordingObserver) ObservePool(nodes int) { o.nodes = nodes }

func TestObserverSeesEveryQuery(t *testing.T) {
	obs := &recordingObserver{}
	opts := DefaultOptions()
	opts.Observer = obs
	g := &gridGraph{w: 6, h: 6}
	s := New[cell](g, opts)

	_, err := s.Solve(cell{0, 0}, cell{5, 5})
	require.NoError(t, err)
	_, err = s.SolveNear(cell{0, 0}, 2)
	require.NoError(t, err)
	_, err = s.Solve(cell{2, 2}, cell{2, 2})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"path", "near"}, obs.kinds); diff != "" {
		t.Errorf("observed kinds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"solved", "solved"}, obs.statuses); diff != "" {
		t.Errorf("observed statuses (-want +got):\n%s", diff)
	}
	st := s.Stats()
	if obs.hits != st.CacheHits || obs.misses != st.CacheMisses {
		t.Errorf("observer cache totals %d/%d, stats %d/%d", obs.hits, obs.misses, st.CacheHits, st.CacheMisses)
	}
	if obs.nodes != st.NodesAllocated {
		t.Errorf("observer pool = %d, stats = %d", obs.nodes, st.NodesAllocated)
	}
}

func TestStatusString(t *testing.T) {
	for status, want := range map[Status]string{
		Solved:       "solved",
		NoSolution:   "no_solution",
		StartEndSame: "start_end_same",
		Status(9):    "status(9)",
	} {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(status), got, want)
		}
	}
}

func BenchmarkSolve(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	g := randomGrid(rng, 64, 64, 0.2)
	from, to := cell{0, 0}, cell{63, 63}
	delete(g.blocked, from)
	delete(g.blocked, to)
	s := New[cell](g, DefaultOptions())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Solve(from, to); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolveBTree(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	g := randomGrid(rng, 64, 64, 0.2)
	from, to := cell{0, 0}, cell{63, 63}
	delete(g.blocked, from)
	delete(g.blocked, to)
	opts := DefaultOptions()
	opts.Frontier = FrontierBTree
	s := New[cell](g, opts)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Solve(from, to); err != nil {
			b.Fatal(err)
		}
	}
}

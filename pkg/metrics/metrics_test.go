package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sanonone/kektorpath/pkg/core/pather"
)

var _ pather.Observer = SolverObserver{}

func TestSolverObserver(t *testing.T) {
	var obs SolverObserver

	solvedBefore := testutil.ToFloat64(SolvesTotal.WithLabelValues("path", "solved"))
	hitsBefore := testutil.ToFloat64(AdjacencyCacheLookups.WithLabelValues("hit"))
	missesBefore := testutil.ToFloat64(AdjacencyCacheLookups.WithLabelValues("miss"))

	obs.ObserveSolve("path", "solved", 42, 3*time.Millisecond)
	obs.ObserveCache(5, 2)
	obs.ObservePool(256)

	if got := testutil.ToFloat64(SolvesTotal.WithLabelValues("path", "solved")) - solvedBefore; got != 1 {
		t.Errorf("solves_total delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(AdjacencyCacheLookups.WithLabelValues("hit")) - hitsBefore; got != 5 {
		t.Errorf("cache hits delta = %v, want 5", got)
	}
	if got := testutil.ToFloat64(AdjacencyCacheLookups.WithLabelValues("miss")) - missesBefore; got != 2 {
		t.Errorf("cache misses delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(NodePoolNodes); got != 256 {
		t.Errorf("node pool gauge = %v, want 256", got)
	}
	if n := testutil.CollectAndCount(SolveExpandedNodes, "kektorpath_solve_expanded_nodes"); n == 0 {
		t.Error("expanded-nodes histogram has no series")
	}
}

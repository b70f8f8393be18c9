package server

import (
	"github.com/sanonone/kektorpath/pkg/dungeon"
	"github.com/sanonone/kektorpath/pkg/engine"
)

// Point is a cell on the wire, encoded as [x, y].
type Point [2]int

func (p Point) Cell() dungeon.Cell { return dungeon.Cell{X: p[0], Y: p[1]} }

func pointOf(c dungeon.Cell) Point { return Point{c.X, c.Y} }

// PathRequest defines the body for path queries.
type PathRequest struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

type PathResponse struct {
	Status       string  `json:"status"`
	Cost         float64 `json:"cost"`
	Path         []Point `json:"path"`
	Checksum     uint64  `json:"checksum"`
	Expanded     int     `json:"expanded"`
	StraightLine float64 `json:"straight_line"`
}

// NearRequest defines the body for neighborhood queries.
type NearRequest struct {
	From    Point   `json:"from"`
	MaxCost float64 `json:"max_cost"`
}

type NearCell struct {
	Cell Point   `json:"cell"`
	Cost float64 `json:"cost"`
}

type NearResponse struct {
	Cells []NearCell `json:"cells"`
}

type DoorsRequest struct {
	Open bool `json:"open"`
}

type DoorsResponse struct {
	DoorsOpen bool `json:"doors_open"`
}

type StatsResponse struct {
	Generation     uint32  `json:"generation"`
	Blocks         int     `json:"blocks"`
	NodesAllocated int     `json:"nodes_allocated"`
	NodesIndexed   int     `json:"nodes_indexed"`
	CacheCapacity  int     `json:"cache_capacity"`
	CacheUsed      int     `json:"cache_used"`
	CacheHits      int     `json:"cache_hits"`
	CacheMisses    int     `json:"cache_misses"`
	HitFraction    float64 `json:"hit_fraction"`
	MemoryFraction float64 `json:"memory_fraction"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	DoorsOpen      bool    `json:"doors_open"`
	Checksum       uint64  `json:"checksum"`
}

type MapResponse struct {
	Map       string `json:"map"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	DoorsOpen bool   `json:"doors_open"`
}

func newPathResponse(res engine.PathResult) PathResponse {
	out := PathResponse{
		Status:       res.Status.String(),
		Cost:         res.Cost,
		Checksum:     res.Checksum,
		Expanded:     res.Expanded,
		StraightLine: res.StraightLine,
		Path:         make([]Point, len(res.Path)),
	}
	for i, c := range res.Path {
		out.Path[i] = pointOf(c)
	}
	return out
}

func newStatsResponse(st engine.Stats) StatsResponse {
	return StatsResponse{
		Generation:     st.Generation,
		Blocks:         st.Blocks,
		NodesAllocated: st.NodesAllocated,
		NodesIndexed:   st.NodesIndexed,
		CacheCapacity:  st.CacheCapacity,
		CacheUsed:      st.CacheUsed,
		CacheHits:      st.CacheHits,
		CacheMisses:    st.CacheMisses,
		HitFraction:    st.HitFraction(),
		MemoryFraction: st.MemoryFraction(),
		Width:          st.Width,
		Height:         st.Height,
		DoorsOpen:      st.DoorsOpen,
		Checksum:       st.Checksum,
	}
}

package pather

// Stats describes the solver's memory and cache usage.
type Stats struct {
	Generation     uint32
	Blocks         int
	NodesAllocated int
	NodesIndexed   int
	CacheCapacity  int
	CacheUsed      int
	CacheHits      int
	CacheMisses    int
}

// HitFraction is the share of neighbor lookups served by the adjacency cache
// since the last Reset.
func (s Stats) HitFraction() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}

// MemoryFraction is the share of the adjacency cache in use.
func (s Stats) MemoryFraction() float64 {
	if s.CacheCapacity == 0 {
		return 0
	}
	return float64(s.CacheUsed) / float64(s.CacheCapacity)
}

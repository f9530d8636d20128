package network

import (
	"math"
	"sync"

	"github.com/ptbdnr/vrp/core/model"
)

// DistanceCache computes Euclidean distances between nodes and memoizes them
// per unordered id pair. Distances are symmetric and zero for identical
// nodes, and a cached value never changes while the nodes it was computed
// from exist. The cache is safe for concurrent readers.
type DistanceCache struct {
	mu    sync.RWMutex
	cache map[[2]int]float64
}

// NewDistanceCache returns an empty cache.
func NewDistanceCache() *DistanceCache {
	return &DistanceCache{cache: make(map[[2]int]float64)}
}

// Distance returns the Euclidean distance between a and b.
func (c *DistanceCache) Distance(a, b model.Node) float64 {
	if a.ID == b.ID {
		return 0
	}
	key := pairKey(a.ID, b.ID)
	c.mu.RLock()
	d, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return d
	}
	d = math.Hypot(a.X-b.X, a.Y-b.Y)
	c.mu.Lock()
	c.cache[key] = d
	c.mu.Unlock()
	return d
}

// MaxPairwise returns the maximum distance over all unordered node pairs of
// the store. The scan is O(n^2) and fills the cache as a side effect.
func (c *DistanceCache) MaxPairwise(store *Store) float64 {
	nodes := store.All()
	maxDist := 0.0
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if d := c.Distance(nodes[i], nodes[j]); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

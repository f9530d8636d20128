// Package bounds derives objective bounds from the distance extremes of the
// registered nodes.
package bounds

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/network"
)

// Calculator computes lower and upper objective bounds. With n nodes
// including both depots and d ranging over all pairwise distances, the
// bounds are min(d)*n*(max(d)+1) and max(d)*n*(max(d)+1).
type Calculator struct {
	store *network.Store
	dist  *network.DistanceCache
	log   logger.Logger
}

// NewCalculator builds a bounds calculator.
func NewCalculator(store *network.Store, dist *network.DistanceCache, log logger.Logger) *Calculator {
	return &Calculator{store: store, dist: dist, log: log}
}

// Lower returns the lower objective bound.
func (c *Calculator) Lower() float64 {
	lower, _ := c.Range()
	return lower
}

// Upper returns the upper objective bound.
func (c *Calculator) Upper() float64 {
	_, upper := c.Range()
	return upper
}

// Range returns both bounds from a single scan of the distance matrix.
func (c *Calculator) Range() (lower, upper float64) {
	nodes := c.store.All()
	n := len(nodes)
	distances := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			distances = append(distances, c.dist.Distance(nodes[i], nodes[j]))
		}
	}
	if len(distances) == 0 {
		c.log.Warnf("no node pairs to derive bounds from")
		return 0, 0
	}
	minDist := floats.Min(distances)
	maxDist := floats.Max(distances)
	lower = minDist * float64(n) * (maxDist + 1)
	upper = maxDist * float64(n) * (maxDist + 1)
	c.log.Debugf("distance extremes over %d nodes: min %.4f max %.4f", n, minDist, maxDist)
	c.log.Debugf("objective bounds: lower %.4f upper %.4f", lower, upper)
	return lower, upper
}

package eval

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/core/network"
)

// ErrNoEdges is returned when the objective is requested for a route without
// a single edge. Callers must guarantee at least two nodes before evaluating.
var ErrNoEdges = errors.New("eval: route has no edges")

// minRouteNodes is the smallest sequence that forms a route, the two depots.
const minRouteNodes = 2

// Evaluator scores and validates routes against one store, distance cache and
// edge-rule triple. The reference scale L is fixed at construction, so every
// objective computed by the same evaluator uses the same dominant term.
type Evaluator struct {
	store    *network.Store
	dist     *network.DistanceCache
	rules    *network.EdgeRules
	log      logger.Logger
	refScale float64
}

// NewEvaluator builds an evaluator and precomputes the reference scale
// L = max pairwise distance x intermediate count.
func NewEvaluator(store *network.Store, dist *network.DistanceCache, rules *network.EdgeRules, log logger.Logger) *Evaluator {
	e := &Evaluator{store: store, dist: dist, rules: rules, log: log}
	e.refScale = dist.MaxPairwise(store) * float64(store.Intermediates())
	return e
}

// RefScale returns L, the dominant weight of the spread term. It depends only
// on the store and distance cache the evaluator was built with.
func (e *Evaluator) RefScale() float64 { return e.refScale }

// TotalDistanceAndEdges sums the consecutive-pair distances of the route and
// returns the individual edge distances in order. Routes with fewer than two
// nodes yield (0, nil).
func (e *Evaluator) TotalDistanceAndEdges(route model.Route) (float64, []float64) {
	if route.Len() < minRouteNodes {
		return 0, nil
	}
	edges := make([]float64, 0, route.Len()-1)
	total := 0.0
	for i := 0; i < route.Len()-1; i++ {
		d := e.dist.Distance(route.Sequence[i], route.Sequence[i+1])
		edges = append(edges, d)
		total += d
	}
	return total, edges
}

// TotalDistance returns the summed edge distance of the route.
func (e *Evaluator) TotalDistance(route model.Route) float64 {
	total, _ := e.TotalDistanceAndEdges(route)
	return total
}

// Objective computes L*delta + D, where delta is the spread between the
// longest and shortest edge of the route and D its total distance. L is large
// enough that any reduction of the spread outranks any feasible change of D.
func (e *Evaluator) Objective(route model.Route) (float64, error) {
	total, edges := e.TotalDistanceAndEdges(route)
	if len(edges) == 0 {
		return 0, ErrNoEdges
	}
	delta := floats.Max(edges) - floats.Min(edges)
	value := e.refScale*delta + total
	e.log.Debugf("objective: L=%.2f delta=%.2f D=%.2f value=%.2f", e.refScale, delta, total, value)
	return value, nil
}

// Valid checks the structural constraints of the route: it must run from
// the origin depot to the destination depot, visit every intermediate exactly
// once and respect the parity travel rules between intermediates. The parity
// checks are recomputed here with the store's intermediate count, the same n
// the edge rules use. Each failure is logged at warning level and returns
// false immediately.
func (e *Evaluator) Valid(route model.Route) bool {
	if route.Len() < minRouteNodes {
		e.log.Warnf("route has fewer than %d nodes", minRouteNodes)
		return false
	}
	if first := route.Sequence[0].ID; first != model.OriginID {
		e.log.Warnf("route does not start at node %d, starts at %d", model.OriginID, first)
		return false
	}
	n := e.store.Intermediates()
	destID := n + 1
	if last := route.Sequence[route.Len()-1].ID; last != destID {
		e.log.Warnf("route does not end at node %d, ends at %d", destID, last)
		return false
	}
	if route.Len()-2 != n {
		e.log.Warnf("route visits %d intermediates, expected %d", route.Len()-2, n)
		return false
	}
	seen := make([]bool, n+1)
	for _, node := range route.Sequence[1 : route.Len()-1] {
		if node.ID < 1 || node.ID > n || seen[node.ID] {
			e.log.Warnf("intermediates are not visited exactly once (node %d)", node.ID)
			return false
		}
		seen[node.ID] = true
	}

	half := float64(n) / 2
	for i := 0; i < route.Len()-1; i++ {
		cur := route.Sequence[i].ID
		next := route.Sequence[i+1].ID
		if cur == model.OriginID || cur == destID || next == model.OriginID || next == destID {
			continue
		}
		if e.rules.RespectEvenToOdd && cur%2 == 0 && next%2 == 1 && float64(cur) < half {
			e.log.Warnf("constraint violated: even->odd transition %d->%d with %d < n/2 (n=%d)", cur, next, cur, n)
			return false
		}
		if e.rules.RespectOddToEven && cur%2 == 1 && next%2 == 0 && float64(cur) >= half {
			e.log.Warnf("constraint violated: odd->even transition %d->%d with %d >= n/2 (n=%d)", cur, next, cur, n)
			return false
		}
	}
	e.log.Debugf("route %s is valid", route.String())
	return true
}

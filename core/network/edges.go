package network

import (
	"sort"

	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
)

// EdgeRules decides whether travel between two nodes is permitted. Edges
// touching a depot are always allowed, with one exception: once the
// destination depot has been reached, the only edge out of it leads back to
// the origin. Between intermediates two parity rules apply, each of which can
// be relaxed independently:
//
//	even -> odd is forbidden while from.ID < n/2,
//	odd -> even is forbidden while from.ID >= n/2,
//
// where n is the intermediate count of the store. The same n is used by the
// route evaluator so that neighbor generation and route validation agree.
type EdgeRules struct {
	// RespectEvenToOdd enables the even->odd rule. On by default.
	RespectEvenToOdd bool
	// RespectOddToEven enables the odd->even rule. On by default.
	RespectOddToEven bool

	store *Store
	dist  *DistanceCache
	log   logger.Logger
}

// NewEdgeRules returns rules bound to the given store with both parity
// constraints enabled.
func NewEdgeRules(store *Store, dist *DistanceCache, log logger.Logger) *EdgeRules {
	return &EdgeRules{
		RespectEvenToOdd: true,
		RespectOddToEven: true,
		store:            store,
		dist:             dist,
		log:              log,
	}
}

// EdgeValid reports whether traveling from one node to another is permitted.
func (r *EdgeRules) EdgeValid(from, to model.Node) bool {
	if from.ID == model.OriginID || to.ID == model.OriginID {
		return true
	}
	destID := r.store.DestinationID()
	if from.ID == destID {
		// Leaving the destination depot only closes the tour back to the origin,
		// and that case was handled above.
		return false
	}
	if to.ID == destID {
		return true
	}
	n := float64(r.store.Intermediates())
	if r.RespectEvenToOdd && from.ID%2 == 0 && to.ID%2 == 1 && float64(from.ID) < n/2 {
		return false
	}
	if r.RespectOddToEven && from.ID%2 == 1 && to.ID%2 == 0 && float64(from.ID) >= n/2 {
		return false
	}
	return true
}

// NeighborQuery narrows a Neighbors call. A nil Candidates slice means every
// node of the store; MaxCount zero means no truncation.
type NeighborQuery struct {
	Candidates     []model.Node
	MaxCount       int
	SortByDistance bool
}

// Neighbors returns the nodes reachable from the node with the given id,
// closest first when SortByDistance is set. An unknown id or an empty
// candidate set yields an empty result, not an error.
func (r *EdgeRules) Neighbors(id int, q NeighborQuery) []model.Node {
	from, ok := r.store.Get(id)
	if !ok {
		r.log.Warnf("node id %d not found, no neighbors", id)
		return nil
	}
	candidates := q.Candidates
	if candidates == nil {
		candidates = r.store.All()
	}

	out := make([]model.Node, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID == id {
			continue
		}
		if r.EdgeValid(from, cand) {
			out = append(out, cand)
		}
	}
	if len(out) == 0 {
		r.log.Infof("no candidate nodes identified for neighbors of node id %d", id)
		return nil
	}

	if q.SortByDistance {
		sort.SliceStable(out, func(i, j int) bool {
			return r.dist.Distance(from, out[i]) < r.dist.Distance(from, out[j])
		})
	}
	if q.MaxCount > 0 && len(out) > q.MaxCount {
		out = out[:q.MaxCount]
	}
	return out
}

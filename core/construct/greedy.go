package construct

import (
	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/core/network"
)

// Greedy walks from the origin to the nearest reachable unvisited node until
// none remains, then jumps to the destination. Reachability honors the edge
// rules, so the walk can strand early on constrained instances; the
// resulting partial route fails validation downstream.
type Greedy struct {
	store *network.Store
	rules *network.EdgeRules
	log   logger.Logger
}

// NewGreedy builds the sequencer.
func NewGreedy(store *network.Store, rules *network.EdgeRules, log logger.Logger) *Greedy {
	return &Greedy{store: store, rules: rules, log: log}
}

// Name implements Builder.
func (b *Greedy) Name() string { return "greedy" }

// Build implements Builder.
func (b *Greedy) Build() model.Route {
	all := b.store.All()
	seq := make([]model.Node, 0, len(all))
	curr := all[0]
	seq = append(seq, curr)

	unvisited := make([]model.Node, len(all)-2)
	copy(unvisited, all[1:len(all)-1])
	for len(unvisited) > 0 {
		next := b.rules.Neighbors(curr.ID, network.NeighborQuery{
			Candidates:     unvisited,
			MaxCount:       1,
			SortByDistance: true,
		})
		if len(next) == 0 {
			b.log.Debugf("no reachable unvisited node from %d", curr.ID)
			break
		}
		curr = next[0]
		seq = append(seq, curr)
		unvisited = removeByID(unvisited, curr.ID)
	}

	seq = append(seq, all[len(all)-1])
	b.log.Debugf("built greedy seed with %d nodes", len(seq))
	return model.Route{Name: "greedy", Sequence: seq}
}

func removeByID(nodes []model.Node, id int) []model.Node {
	for i, n := range nodes {
		if n.ID == id {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

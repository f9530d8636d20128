package construct

import (
	"sort"

	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/core/network"
)

// Naive interleaves the intermediates by their position parity: the
// even-positioned ones come first in descending id order, then the
// odd-positioned ones in ascending order. The resulting zigzag respects the
// parity travel rules on evenly laid out instances.
type Naive struct {
	store *network.Store
	log   logger.Logger
}

// NewNaive builds the sequencer.
func NewNaive(store *network.Store, log logger.Logger) *Naive {
	return &Naive{store: store, log: log}
}

// Name implements Builder.
func (b *Naive) Name() string { return "naive" }

// Build implements Builder.
func (b *Naive) Build() model.Route {
	all := b.store.All()
	inter := all[1 : len(all)-1]
	even := make([]model.Node, 0, (len(inter)+1)/2)
	odd := make([]model.Node, 0, len(inter)/2)
	for i, node := range inter {
		if i%2 == 0 {
			even = append(even, node)
		} else {
			odd = append(odd, node)
		}
	}
	sort.Slice(even, func(i, j int) bool { return even[i].ID > even[j].ID })

	seq := make([]model.Node, 0, len(all))
	seq = append(seq, all[0])
	seq = append(seq, even...)
	seq = append(seq, odd...)
	seq = append(seq, all[len(all)-1])
	b.log.Debugf("built naive seed with %d nodes", len(seq))
	return model.Route{Name: "naive", Sequence: seq}
}

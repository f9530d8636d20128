package network

import (
	"fmt"
	"sort"

	"github.com/ptbdnr/vrp/core/model"
)

// ErrMissingDepot is returned when a node set lacks the origin or destination
// depot, or when the identifiers are not the dense range 0..n+1.
var ErrMissingDepot = fmt.Errorf("network: node set does not form a depot-bounded instance")

// Store holds the immutable node set of one problem instance: the origin
// depot (id 0), the destination depot (highest id) and the intermediates in
// between. A Store never changes after construction; every solver component
// is built against exactly one Store.
type Store struct {
	nodes   map[int]model.Node
	ordered []model.Node
}

// NewStore builds a Store from the given nodes. The ids must be the dense
// range 0..len(nodes)-1 with no duplicates; anything else is a construction
// error, the only fatal precondition of the engine.
func NewStore(nodes []model.Node) (*Store, error) {
	if len(nodes) < 2 {
		return nil, fmt.Errorf("%w: need at least the two depots, got %d nodes", ErrMissingDepot, len(nodes))
	}
	byID := make(map[int]model.Node, len(nodes))
	for _, n := range nodes {
		if _, dup := byID[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %d", ErrMissingDepot, n.ID)
		}
		byID[n.ID] = n
	}
	for id := 0; id < len(nodes); id++ {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: id %d absent from 0..%d", ErrMissingDepot, id, len(nodes)-1)
		}
	}
	ordered := make([]model.Node, len(nodes))
	copy(ordered, nodes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return &Store{nodes: byID, ordered: ordered}, nil
}

// Get returns the node with the given id.
func (s *Store) Get(id int) (model.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// All returns the nodes in ascending id order. The slice is fresh on every
// call so callers may reorder or shrink it freely.
func (s *Store) All() []model.Node {
	out := make([]model.Node, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// IDs returns every node id in ascending order.
func (s *Store) IDs() []int {
	ids := make([]int, len(s.ordered))
	for i, n := range s.ordered {
		ids[i] = n.ID
	}
	return ids
}

// Len returns the total node count including both depots.
func (s *Store) Len() int { return len(s.ordered) }

// Intermediates returns n, the count of nodes that are not depots.
func (s *Store) Intermediates() int { return len(s.ordered) - 2 }

// Origin returns the origin depot.
func (s *Store) Origin() model.Node { return s.ordered[0] }

// Destination returns the destination depot.
func (s *Store) Destination() model.Node { return s.ordered[len(s.ordered)-1] }

// DestinationID returns n+1, the id of the destination depot.
func (s *Store) DestinationID() int { return len(s.ordered) - 1 }

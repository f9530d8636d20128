package model

import (
	"strconv"
	"strings"
)

// Route is an ordered visit sequence over nodes. The order is the tour: a
// complete route runs origin, every intermediate exactly once, destination.
// Routes behave as values; operators that transform a route return a fresh
// one unless an in-place variant is requested explicitly.
type Route struct {
	Name     string
	Sequence []Node
}

// Len returns the number of nodes in the route.
func (r Route) Len() int { return len(r.Sequence) }

// Copy returns a route with its own sequence slice. Nodes are immutable, so
// sharing them between copies is safe.
func (r Route) Copy() Route {
	seq := make([]Node, len(r.Sequence))
	copy(seq, r.Sequence)
	return Route{Name: r.Name, Sequence: seq}
}

// IDs returns the node identifiers in visit order.
func (r Route) IDs() []int {
	ids := make([]int, len(r.Sequence))
	for i, n := range r.Sequence {
		ids[i] = n.ID
	}
	return ids
}

// String renders the route as dash-joined node ids, e.g. "0-3-1-2-4-5".
func (r Route) String() string {
	var b strings.Builder
	for i, n := range r.Sequence {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(n.ID))
	}
	return b.String()
}

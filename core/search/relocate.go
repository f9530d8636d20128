package search

import (
	"math/rand"

	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
)

// minRelocateLength is the shortest route with two distinct interior
// positions to move a node between.
const minRelocateLength = 4

// Relocate removes one intermediate node and reinserts it at another
// interior position, shifting the nodes in between. The depots never move.
type Relocate struct {
	eval *eval.Evaluator
	log  logger.Logger
	rng  *rand.Rand
}

// NewRelocate builds the operator with its own random source.
func NewRelocate(evaluator *eval.Evaluator, log logger.Logger, seed int64) *Relocate {
	return &Relocate{
		eval: evaluator,
		log:  log,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Name implements Operation.
func (o *Relocate) Name() string { return "relocate" }

// Apply moves a randomly chosen node to a randomly chosen distinct position.
func (o *Relocate) Apply(route model.Route) model.Route {
	length := route.Len()
	if length < minRelocateLength {
		o.log.Warnf("route %q too short for relocate (length %d)", route.Name, length)
		return route.Copy()
	}
	from := 1 + o.rng.Intn(length-2)
	// draw the destination from the interior minus the source slot
	to := 1 + o.rng.Intn(length-3)
	if to >= from {
		to++
	}
	return o.moved(route, from, to)
}

// ApplyAt moves the node at position from so that it ends up at position to.
// Both positions must be interior and distinct; anything else is rejected
// with an unchanged copy.
func (o *Relocate) ApplyAt(route model.Route, from, to int) model.Route {
	length := route.Len()
	if length < minRelocateLength {
		o.log.Warnf("route %q too short for relocate (length %d)", route.Name, length)
		return route.Copy()
	}
	if from < 1 || from >= length-1 || to < 1 || to >= length-1 || from == to {
		o.log.Errorf("relocate positions [%d -> %d] out of range for length %d", from, to, length)
		return route.Copy()
	}
	return o.moved(route, from, to)
}

// ApplyBestImprovement implements Operation.
func (o *Relocate) ApplyBestImprovement(route model.Route, onlyValid bool) model.Route {
	best := route.Copy()
	bestValue, err := o.eval.Objective(route)
	if err != nil {
		o.log.Warnf("relocate skipped: %v", err)
		return best
	}
	startValue := bestValue
	improved := false
	length := route.Len()
	for from := 1; from <= length-2; from++ {
		for to := 1; to <= length-2; to++ {
			if to == from {
				continue
			}
			cand := o.moved(route, from, to)
			if onlyValid && !o.eval.Valid(cand) {
				continue
			}
			value, err := o.eval.Objective(cand)
			if err != nil {
				continue
			}
			if value < bestValue {
				best, bestValue = cand, value
				improved = true
				o.log.Debugf("relocate [%d -> %d] improves objective to %.4f", from, to, value)
			}
		}
	}
	if improved {
		o.log.Infof("best relocate: objective %.4f -> %.4f", startValue, bestValue)
	} else {
		o.log.Debugf("no improving relocate for route %q", route.Name)
	}
	return best
}

// ApplyFirstImprovement implements Operation.
func (o *Relocate) ApplyFirstImprovement(route model.Route, onlyValid bool) model.Route {
	current, err := o.eval.Objective(route)
	if err != nil {
		o.log.Warnf("relocate skipped: %v", err)
		return route
	}
	length := route.Len()
	for from := 1; from <= length-2; from++ {
		for to := 1; to <= length-2; to++ {
			if to == from {
				continue
			}
			cand := o.moved(route, from, to)
			if onlyValid && !o.eval.Valid(cand) {
				continue
			}
			value, err := o.eval.Objective(cand)
			if err != nil {
				continue
			}
			if value < current {
				o.log.Debugf("first improving relocate [%d -> %d]: objective %.4f", from, to, value)
				return cand
			}
		}
	}
	o.log.Debugf("no improving relocate for route %q", route.Name)
	return route
}

// moved removes the node at from and reinserts it so that its final index
// is to.
func (o *Relocate) moved(route model.Route, from, to int) model.Route {
	seq := make([]model.Node, 0, route.Len())
	seq = append(seq, route.Sequence[:from]...)
	seq = append(seq, route.Sequence[from+1:]...)
	seq = append(seq, model.Node{})
	copy(seq[to+1:], seq[to:])
	seq[to] = route.Sequence[from]
	return model.Route{Name: route.Name, Sequence: seq}
}

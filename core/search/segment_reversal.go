package search

import (
	"math/rand"

	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
)

// minReversalLength is the shortest route with a reversible interior segment.
const minReversalLength = 4

// SegmentReversal reverses the order of a contiguous run of intermediate
// nodes. Both cut points stay strictly inside the route, so the depots are
// never moved.
type SegmentReversal struct {
	eval *eval.Evaluator
	log  logger.Logger
	rng  *rand.Rand
}

// NewSegmentReversal builds the operator with its own random source.
func NewSegmentReversal(evaluator *eval.Evaluator, log logger.Logger, seed int64) *SegmentReversal {
	return &SegmentReversal{
		eval: evaluator,
		log:  log,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Name implements Operation.
func (o *SegmentReversal) Name() string { return "segment_reversal" }

// Apply reverses a randomly chosen segment and returns the result as a new
// route. Routes shorter than four nodes come back unchanged.
func (o *SegmentReversal) Apply(route model.Route) model.Route {
	length := route.Len()
	if length < minReversalLength {
		o.log.Warnf("route %q too short for segment reversal (length %d)", route.Name, length)
		return route.Copy()
	}
	v1 := 1 + o.rng.Intn(length-3)
	v2 := v1 + 1 + o.rng.Intn(length-2-v1)
	return o.reversed(route, v1, v2)
}

// ApplyAt reverses the segment between the two positions, both inclusive.
// Misordered positions are swapped; positions touching a depot are rejected
// with an unchanged copy.
func (o *SegmentReversal) ApplyAt(route model.Route, v1, v2 int) model.Route {
	length := route.Len()
	if length < minReversalLength {
		o.log.Warnf("route %q too short for segment reversal (length %d)", route.Name, length)
		return route.Copy()
	}
	if v1 > v2 {
		v1, v2 = v2, v1
	}
	if v1 < 1 || v2 >= length-1 {
		o.log.Errorf("segment reversal positions [%d:%d] out of range for length %d", v1, v2, length)
		return route.Copy()
	}
	return o.reversed(route, v1, v2)
}

// ApplyAtInPlace is ApplyAt without the copy: the input's sequence is
// reversed in place and the same route value is returned.
func (o *SegmentReversal) ApplyAtInPlace(route model.Route, v1, v2 int) model.Route {
	length := route.Len()
	if length < minReversalLength {
		o.log.Warnf("route %q too short for segment reversal (length %d)", route.Name, length)
		return route
	}
	if v1 > v2 {
		v1, v2 = v2, v1
	}
	if v1 < 1 || v2 >= length-1 {
		o.log.Errorf("segment reversal positions [%d:%d] out of range for length %d", v1, v2, length)
		return route
	}
	reverse(route.Sequence[v1 : v2+1])
	return route
}

// ApplyBestImprovement implements Operation.
func (o *SegmentReversal) ApplyBestImprovement(route model.Route, onlyValid bool) model.Route {
	best := route.Copy()
	bestValue, err := o.eval.Objective(route)
	if err != nil {
		o.log.Warnf("segment reversal skipped: %v", err)
		return best
	}
	startValue := bestValue
	improved := false
	length := route.Len()
	for v1 := 1; v1 <= length-3; v1++ {
		for v2 := v1 + 1; v2 <= length-2; v2++ {
			cand := o.reversed(route, v1, v2)
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
				o.log.Debugf("segment reversal [%d:%d] improves objective to %.4f", v1, v2, value)
			}
		}
	}
	if improved {
		o.log.Infof("best segment reversal: objective %.4f -> %.4f", startValue, bestValue)
	} else {
		o.log.Debugf("no improving segment reversal for route %q", route.Name)
	}
	return best
}

// ApplyFirstImprovement implements Operation.
func (o *SegmentReversal) ApplyFirstImprovement(route model.Route, onlyValid bool) model.Route {
	current, err := o.eval.Objective(route)
	if err != nil {
		o.log.Warnf("segment reversal skipped: %v", err)
		return route
	}
	length := route.Len()
	for v1 := 1; v1 <= length-3; v1++ {
		for v2 := v1 + 1; v2 <= length-2; v2++ {
			cand := o.reversed(route, v1, v2)
			if onlyValid && !o.eval.Valid(cand) {
				continue
			}
			value, err := o.eval.Objective(cand)
			if err != nil {
				continue
			}
			if value < current {
				o.log.Debugf("first improving segment reversal [%d:%d]: objective %.4f", v1, v2, value)
				return cand
			}
		}
	}
	o.log.Debugf("no improving segment reversal for route %q", route.Name)
	return route
}

func (o *SegmentReversal) reversed(route model.Route, v1, v2 int) model.Route {
	out := route.Copy()
	reverse(out.Sequence[v1 : v2+1])
	return out
}

func reverse(seq []model.Node) {
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
}

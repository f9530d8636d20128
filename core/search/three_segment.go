package search

import (
	"math/rand"
	"sort"

	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
)

// minThreeSegmentLength is the shortest route with three non-empty interior
// segments between distinct cut points.
const minThreeSegmentLength = 6

// ReconnectKind selects how the three interior segments B, C and the tail D
// are stitched back together after cutting. Kind 0 reproduces the input.
type ReconnectKind int

const (
	ReconnectIdentity        ReconnectKind = iota // A B C D
	ReconnectReverseC                             // A B C' D
	ReconnectReverseB                             // A B' C D
	ReconnectSwap                                 // A C B D
	ReconnectReverseBoth                          // A B' C' D
	ReconnectSwapReverseB                         // A C B' D
	ReconnectSwapReverseC                         // A C' B D
	ReconnectSwapReverseBoth                      // A C' B' D
)

// String returns a short label used in logs.
func (k ReconnectKind) String() string {
	switch k {
	case ReconnectIdentity:
		return "identity"
	case ReconnectReverseC:
		return "reverse_c"
	case ReconnectReverseB:
		return "reverse_b"
	case ReconnectSwap:
		return "swap"
	case ReconnectReverseBoth:
		return "reverse_both"
	case ReconnectSwapReverseB:
		return "swap_reverse_b"
	case ReconnectSwapReverseC:
		return "swap_reverse_c"
	case ReconnectSwapReverseBoth:
		return "swap_reverse_both"
	default:
		return "unknown"
	}
}

// ThreeSegment cuts the route at three interior positions and reconnects the
// resulting segments in one of eight ways, reversing or exchanging the two
// middle segments. The depots and the segment before the first cut stay
// where they are.
type ThreeSegment struct {
	eval *eval.Evaluator
	log  logger.Logger
	rng  *rand.Rand
}

// NewThreeSegment builds the operator with its own random source.
func NewThreeSegment(evaluator *eval.Evaluator, log logger.Logger, seed int64) *ThreeSegment {
	return &ThreeSegment{
		eval: evaluator,
		log:  log,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Name implements Operation.
func (o *ThreeSegment) Name() string { return "three_segment" }

// Apply cuts at three randomly chosen positions and reconnects with a
// randomly chosen non-identity kind.
func (o *ThreeSegment) Apply(route model.Route) model.Route {
	length := route.Len()
	if length < minThreeSegmentLength {
		o.log.Warnf("route %q too short for three-segment reconnection (length %d)", route.Name, length)
		return route.Copy()
	}
	v1 := 1 + o.rng.Intn(length-5)
	v2 := v1 + 1 + o.rng.Intn(length-3-v1)
	v3 := v2 + 1 + o.rng.Intn(length-2-v2)
	kind := ReconnectKind(1 + o.rng.Intn(7))
	return o.reconnected(route, v1, v2, v3, kind)
}

// ApplyAt cuts at the three given positions and reconnects with the given
// kind. Positions are sorted ascending first; positions touching a depot,
// coinciding positions and unknown kinds are rejected with an unchanged copy.
func (o *ThreeSegment) ApplyAt(route model.Route, v1, v2, v3 int, kind ReconnectKind) model.Route {
	length := route.Len()
	if length < minThreeSegmentLength {
		o.log.Warnf("route %q too short for three-segment reconnection (length %d)", route.Name, length)
		return route.Copy()
	}
	cuts := []int{v1, v2, v3}
	sort.Ints(cuts)
	v1, v2, v3 = cuts[0], cuts[1], cuts[2]
	if v1 < 1 || v3 >= length-1 || v1 == v2 || v2 == v3 {
		o.log.Errorf("three-segment positions [%d:%d:%d] out of range for length %d", v1, v2, v3, length)
		return route.Copy()
	}
	if kind < ReconnectIdentity || kind > ReconnectSwapReverseBoth {
		o.log.Errorf("unknown reconnection kind %d", int(kind))
		return route.Copy()
	}
	return o.reconnected(route, v1, v2, v3, kind)
}

// ApplyAtInPlace is ApplyAt without the copy: the reconnected sequence is
// written back into the input's backing array and the same route value is
// returned.
func (o *ThreeSegment) ApplyAtInPlace(route model.Route, v1, v2, v3 int, kind ReconnectKind) model.Route {
	out := o.ApplyAt(route, v1, v2, v3, kind)
	copy(route.Sequence, out.Sequence)
	return route
}

// ApplyBestImprovement implements Operation. All cut triplets and all seven
// non-identity kinds are evaluated.
func (o *ThreeSegment) ApplyBestImprovement(route model.Route, onlyValid bool) model.Route {
	best := route.Copy()
	bestValue, err := o.eval.Objective(route)
	if err != nil {
		o.log.Warnf("three-segment reconnection skipped: %v", err)
		return best
	}
	startValue := bestValue
	improved := false
	evaluations := 0
	length := route.Len()
	for v1 := 1; v1 <= length-5; v1++ {
		for v2 := v1 + 1; v2 <= length-3; v2++ {
			for v3 := v2 + 1; v3 <= length-2; v3++ {
				for kind := ReconnectReverseC; kind <= ReconnectSwapReverseBoth; kind++ {
					cand := o.reconnected(route, v1, v2, v3, kind)
					if onlyValid && !o.eval.Valid(cand) {
						continue
					}
					value, err := o.eval.Objective(cand)
					if err != nil {
						continue
					}
					evaluations++
					if value < bestValue {
						best, bestValue = cand, value
						improved = true
						o.log.Debugf("three-segment [%d:%d:%d] %s improves objective to %.4f", v1, v2, v3, kind, value)
					}
				}
			}
		}
	}
	if improved {
		o.log.Infof("best three-segment reconnection after %d evaluations: objective %.4f -> %.4f", evaluations, startValue, bestValue)
	} else {
		o.log.Debugf("no improving three-segment reconnection for route %q after %d evaluations", route.Name, evaluations)
	}
	return best
}

// ApplyFirstImprovement implements Operation. Cut positions advance in
// canonical order with the kind cycling fastest.
func (o *ThreeSegment) ApplyFirstImprovement(route model.Route, onlyValid bool) model.Route {
	current, err := o.eval.Objective(route)
	if err != nil {
		o.log.Warnf("three-segment reconnection skipped: %v", err)
		return route
	}
	length := route.Len()
	for v1 := 1; v1 <= length-5; v1++ {
		for v2 := v1 + 1; v2 <= length-3; v2++ {
			for v3 := v2 + 1; v3 <= length-2; v3++ {
				for kind := ReconnectReverseC; kind <= ReconnectSwapReverseBoth; kind++ {
					cand := o.reconnected(route, v1, v2, v3, kind)
					if onlyValid && !o.eval.Valid(cand) {
						continue
					}
					value, err := o.eval.Objective(cand)
					if err != nil {
						continue
					}
					if value < current {
						o.log.Debugf("first improving three-segment [%d:%d:%d] %s: objective %.4f", v1, v2, v3, kind, value)
						return cand
					}
				}
			}
		}
	}
	o.log.Debugf("no improving three-segment reconnection for route %q", route.Name)
	return route
}

// ApplyRandomImprovement draws random cuts and kinds until one of them beats
// the input's objective or maxAttempts draws have been spent. The first
// improving candidate is returned; exhaustion returns the input unchanged.
func (o *ThreeSegment) ApplyRandomImprovement(route model.Route, maxAttempts int, onlyValid bool) model.Route {
	length := route.Len()
	if length < minThreeSegmentLength {
		o.log.Warnf("route %q too short for three-segment reconnection (length %d)", route.Name, length)
		return route
	}
	current, err := o.eval.Objective(route)
	if err != nil {
		o.log.Warnf("three-segment reconnection skipped: %v", err)
		return route
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v1 := 1 + o.rng.Intn(length-5)
		v2 := v1 + 1 + o.rng.Intn(length-3-v1)
		v3 := v2 + 1 + o.rng.Intn(length-2-v2)
		kind := ReconnectKind(1 + o.rng.Intn(7))
		cand := o.reconnected(route, v1, v2, v3, kind)
		if onlyValid && !o.eval.Valid(cand) {
			continue
		}
		value, err := o.eval.Objective(cand)
		if err != nil {
			continue
		}
		if value < current {
			o.log.Infof("random three-segment improvement on attempt %d: objective %.4f -> %.4f", attempt+1, current, value)
			return cand
		}
	}
	o.log.Debugf("no random three-segment improvement for route %q within %d attempts", route.Name, maxAttempts)
	return route
}

// reconnected assembles A + middle segments per kind + D where
// A=seq[:v1], B=seq[v1:v2], C=seq[v2:v3], D=seq[v3:].
func (o *ThreeSegment) reconnected(route model.Route, v1, v2, v3 int, kind ReconnectKind) model.Route {
	seq := route.Sequence
	a, b, c, d := seq[:v1], seq[v1:v2], seq[v2:v3], seq[v3:]
	out := make([]model.Node, 0, len(seq))
	out = append(out, a...)
	switch kind {
	case ReconnectIdentity:
		out = append(out, b...)
		out = append(out, c...)
	case ReconnectReverseC:
		out = append(out, b...)
		out = appendReversed(out, c)
	case ReconnectReverseB:
		out = appendReversed(out, b)
		out = append(out, c...)
	case ReconnectSwap:
		out = append(out, c...)
		out = append(out, b...)
	case ReconnectReverseBoth:
		out = appendReversed(out, b)
		out = appendReversed(out, c)
	case ReconnectSwapReverseB:
		out = append(out, c...)
		out = appendReversed(out, b)
	case ReconnectSwapReverseC:
		out = appendReversed(out, c)
		out = append(out, b...)
	case ReconnectSwapReverseBoth:
		out = appendReversed(out, c)
		out = appendReversed(out, b)
	}
	out = append(out, d...)
	return model.Route{Name: route.Name, Sequence: out}
}

func appendReversed(dst, src []model.Node) []model.Node {
	for i := len(src) - 1; i >= 0; i-- {
		dst = append(dst, src[i])
	}
	return dst
}

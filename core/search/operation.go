package search

import (
	"fmt"

	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
)

// Operation is the capability shared by every neighborhood operator. The
// orchestrators treat the closed set of operators (segment reversal,
// three-segment reconnection, relocate) uniformly through this interface.
//
// Operators never mutate the input route and never panic on bad parameters:
// misuse degrades to an unchanged result with a log entry.
type Operation interface {
	// Name identifies the operator in configuration and log output.
	Name() string
	// Apply performs a single move with parameters drawn from the
	// operator's private seeded random source and returns a new route.
	Apply(route model.Route) model.Route
	// ApplyBestImprovement enumerates every parameterization of the move,
	// optionally discarding structurally invalid candidates, and returns
	// the lowest-objective result. Without an improvement the input is
	// returned as a copy.
	ApplyBestImprovement(route model.Route, onlyValid bool) model.Route
	// ApplyFirstImprovement enumerates in canonical order and returns the
	// first candidate whose objective is strictly below the input's, or the
	// unchanged input after exhaustion.
	ApplyFirstImprovement(route model.Route, onlyValid bool) model.Route
}

// BuildOperations resolves configured operator names into instances bound to
// the given evaluator. Every operator receives its own random stream derived
// from the same seed value.
func BuildOperations(names []string, evaluator *eval.Evaluator, log logger.Logger, seed int64) ([]Operation, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("search: no operations configured")
	}
	ops := make([]Operation, 0, len(names))
	for _, name := range names {
		switch name {
		case "segment_reversal":
			ops = append(ops, NewSegmentReversal(evaluator, log, seed))
		case "three_segment":
			ops = append(ops, NewThreeSegment(evaluator, log, seed))
		case "relocate":
			ops = append(ops, NewRelocate(evaluator, log, seed))
		default:
			return nil, fmt.Errorf("search: unknown operation %q", name)
		}
	}
	return ops, nil
}

package search

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/events"
	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/internal/eventbus"
)

// LocalSearch is the improvement orchestrator. It starts from the best of
// the registered seed routes and repeatedly applies its operators in
// round-robin order, one first-improvement step per iteration, adopting
// every candidate that strictly lowers the objective until the termination
// policy fires.
type LocalSearch struct {
	log         logger.Logger
	eval        *eval.Evaluator
	operations  []Operation
	termination Termination
	callback    Callback
	bus         eventbus.EventBus
	onlyValid   bool
	seeds       []model.Route
}

// NewLocalSearch wires an orchestrator. The bus is optional; a nil callback
// is replaced with NopCallback. Candidate filtering by structural validity
// is on by default.
func NewLocalSearch(evaluator *eval.Evaluator, ops []Operation, term Termination, cb Callback, bus eventbus.EventBus, log logger.Logger) (*LocalSearch, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("search: evaluator is required")
	}
	if term == nil {
		return nil, fmt.Errorf("search: termination policy is required")
	}
	if log == nil {
		return nil, fmt.Errorf("search: logger is required")
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("search: at least one operation is required")
	}
	if cb == nil {
		cb = NopCallback{}
	}
	return &LocalSearch{
		log:         log,
		eval:        evaluator,
		operations:  ops,
		termination: term,
		callback:    cb,
		bus:         bus,
		onlyValid:   true,
	}, nil
}

// SetOnlyValid toggles structural filtering of operator candidates.
func (s *LocalSearch) SetOnlyValid(v bool) { s.onlyValid = v }

// AddSeedRoute registers a starting route. Seeds are compared by objective
// when the search starts; registration order breaks ties.
func (s *LocalSearch) AddSeedRoute(route model.Route) {
	s.seeds = append(s.seeds, route)
}

// Optimise runs the search and returns the best route found. Without any
// usable seed it logs a warning and returns an empty route.
func (s *LocalSearch) Optimise() model.Route {
	route, value, ok := bestSeed(s.eval, s.seeds, s.log)
	if !ok {
		s.log.Warnf("no seed routes available for optimisation")
		return model.Route{}
	}
	run := uuid.NewString()
	s.log.Infof("starting local search run %s from route %q with objective %.4f", run, route.Name, value)

	iteration := 0
	for !s.termination.ShouldTerminate(iteration) {
		op := s.operations[iteration%len(s.operations)]
		cand := op.ApplyFirstImprovement(route, s.onlyValid)
		candValue, err := s.eval.Objective(cand)
		if err != nil {
			s.log.Warnf("iteration %d: candidate rejected: %v", iteration, err)
			candValue = value
		}
		improved := candValue < value
		s.callback.OnIteration(iteration, candValue, value, improved)
		s.publish(events.IterationEvent{
			Run:            run,
			Iteration:      iteration,
			Operation:      op.Name(),
			CandidateValue: candValue,
			BestValue:      value,
			Improved:       improved,
		})
		if improved {
			s.log.Debugf("iteration %d: %s improved objective %.4f -> %.4f", iteration, op.Name(), value, candValue)
			s.publish(events.ImprovementEvent{
				Run:       run,
				Iteration: iteration,
				Operation: op.Name(),
				Route:     cand.String(),
				Value:     candValue,
				Delta:     value - candValue,
			})
			route, value = cand, candValue
			s.callback.SaveRoute(iteration, cand)
		}
		s.observe(iteration, improved)
		iteration++
	}
	s.log.Infof("local search run %s finished after %d iterations with objective %.4f", run, iteration, value)
	s.publish(events.ResultEvent{
		Run:        run,
		Route:      route.String(),
		Value:      value,
		Iterations: iteration,
	})
	return route
}

// OptimiseAll runs the search and returns the result as a single-element
// slice, for callers that consume route collections.
func (s *LocalSearch) OptimiseAll() []model.Route {
	return []model.Route{s.Optimise()}
}

func (s *LocalSearch) publish(ev eventbus.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}

func (s *LocalSearch) observe(iteration int, improved bool) {
	if obs, ok := s.termination.(ImprovementObserver); ok {
		obs.ObserveIteration(iteration, improved)
	}
}

// bestSeed evaluates all seeds and returns a copy of the lowest-objective
// one. Unevaluable seeds are skipped with a warning; the earliest seed wins
// ties.
func bestSeed(evaluator *eval.Evaluator, seeds []model.Route, log logger.Logger) (model.Route, float64, bool) {
	var (
		best  model.Route
		value = math.Inf(1)
		found bool
	)
	for _, seed := range seeds {
		v, err := evaluator.Objective(seed)
		if err != nil {
			log.Warnf("seed route %q skipped: %v", seed.Name, err)
			continue
		}
		if v < value {
			best, value, found = seed.Copy(), v, true
		}
	}
	return best, value, found
}

package search

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
)

// SimulatedAnnealing explores the same neighborhoods as LocalSearch but
// accepts worsening moves with probability exp(-delta/temperature), cooling
// geometrically each iteration. Operators are drawn at random instead of
// round-robin, and single random moves are used instead of improvement
// scans.
type SimulatedAnnealing struct {
	// InitialTemp and Cooling may be adjusted between construction and the
	// first Optimise call.
	InitialTemp float64
	Cooling     float64

	log         logger.Logger
	eval        *eval.Evaluator
	operations  []Operation
	termination Termination
	callback    Callback
	rng         *rand.Rand
	onlyValid   bool
	seeds       []model.Route
}

// NewSimulatedAnnealing wires an annealer with default temperature schedule.
func NewSimulatedAnnealing(evaluator *eval.Evaluator, ops []Operation, term Termination, cb Callback, log logger.Logger, seed int64) (*SimulatedAnnealing, error) {
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
	return &SimulatedAnnealing{
		InitialTemp: 1000,
		Cooling:     0.95,
		log:         log,
		eval:        evaluator,
		operations:  ops,
		termination: term,
		callback:    cb,
		rng:         rand.New(rand.NewSource(seed)),
		onlyValid:   true,
	}, nil
}

// SetOnlyValid toggles structural filtering of operator candidates.
func (s *SimulatedAnnealing) SetOnlyValid(v bool) { s.onlyValid = v }

// AddSeedRoute registers a starting route.
func (s *SimulatedAnnealing) AddSeedRoute(route model.Route) {
	s.seeds = append(s.seeds, route)
}

// Optimise runs the annealing schedule and returns the best route seen.
// Without any usable seed it logs a warning and returns an empty route.
func (s *SimulatedAnnealing) Optimise() model.Route {
	current, currentValue, ok := bestSeed(s.eval, s.seeds, s.log)
	if !ok {
		s.log.Warnf("no seed routes available for annealing")
		return model.Route{}
	}
	best := current.Copy()
	bestValue := currentValue
	temp := s.InitialTemp
	s.log.Infof("starting annealing from route %q with objective %.4f at temperature %.1f", current.Name, currentValue, temp)

	iteration := 0
	for !s.termination.ShouldTerminate(iteration) {
		op := s.operations[s.rng.Intn(len(s.operations))]
		cand := op.Apply(current)
		improvedBest := false
		candValue := currentValue
		if !s.onlyValid || s.eval.Valid(cand) {
			v, err := s.eval.Objective(cand)
			if err == nil {
				candValue = v
				delta := v - currentValue
				if delta < 0 || s.rng.Float64() < math.Exp(-delta/temp) {
					if delta > 0 {
						s.log.Debugf("iteration %d: accepted worsening move to %.4f at temperature %.3f", iteration, v, temp)
					}
					current, currentValue = cand, v
				}
				if v < bestValue {
					improvedBest = true
				}
			}
		}
		s.callback.OnIteration(iteration, candValue, bestValue, improvedBest)
		if improvedBest {
			s.log.Debugf("iteration %d: %s lowered best objective %.4f -> %.4f at temperature %.3f", iteration, op.Name(), bestValue, candValue, temp)
			best, bestValue = cand.Copy(), candValue
			s.callback.SaveRoute(iteration, best)
		}
		s.observe(iteration, improvedBest)
		temp *= s.Cooling
		iteration++
	}
	s.log.Infof("annealing finished after %d iterations with objective %.4f", iteration, bestValue)
	return best
}

func (s *SimulatedAnnealing) observe(iteration int, improved bool) {
	if obs, ok := s.termination.(ImprovementObserver); ok {
		obs.ObserveIteration(iteration, improved)
	}
}

package search

import (
	"context"
	"time"
)

// Termination decides when an orchestrator stops iterating. ShouldTerminate
// is consulted before every iteration with the zero-based iteration counter.
type Termination interface {
	ShouldTerminate(iteration int) bool
}

// ImprovementObserver is implemented by termination policies that need to
// know whether iterations improved the incumbent. Orchestrators feed every
// policy that implements it after each iteration.
type ImprovementObserver interface {
	ObserveIteration(iteration int, improved bool)
}

// FixedIterations stops once the given number of iterations has run.
type FixedIterations int

// ShouldTerminate implements Termination.
func (f FixedIterations) ShouldTerminate(iteration int) bool {
	return iteration >= int(f)
}

// Stalled stops after Window consecutive iterations without improvement.
// A Window of zero disables the policy.
type Stalled struct {
	Window int

	streak int
}

// ShouldTerminate implements Termination.
func (s *Stalled) ShouldTerminate(int) bool {
	return s.Window > 0 && s.streak >= s.Window
}

// ObserveIteration implements ImprovementObserver.
func (s *Stalled) ObserveIteration(_ int, improved bool) {
	if improved {
		s.streak = 0
		return
	}
	s.streak++
}

// Deadline stops once the wall clock passes the wrapped instant.
type Deadline time.Time

// ShouldTerminate implements Termination.
func (d Deadline) ShouldTerminate(int) bool {
	return time.Now().After(time.Time(d))
}

// ContextDone stops once the context is cancelled, letting a search loop
// take part in process shutdown.
type ContextDone struct {
	Ctx context.Context
}

// ShouldTerminate implements Termination.
func (c ContextDone) ShouldTerminate(int) bool {
	return c.Ctx.Err() != nil
}

// Any combines policies: the search stops as soon as one of them signals.
// Improvement observations are forwarded to every member that wants them.
type Any []Termination

// ShouldTerminate implements Termination.
func (a Any) ShouldTerminate(iteration int) bool {
	for _, t := range a {
		if t.ShouldTerminate(iteration) {
			return true
		}
	}
	return false
}

// ObserveIteration implements ImprovementObserver.
func (a Any) ObserveIteration(iteration int, improved bool) {
	for _, t := range a {
		if obs, ok := t.(ImprovementObserver); ok {
			obs.ObserveIteration(iteration, improved)
		}
	}
}

package metrics

import (
	"context"
	"time"

	"github.com/ptbdnr/vrp/core/events"
	coremetrics "github.com/ptbdnr/vrp/core/metrics"
	"github.com/ptbdnr/vrp/internal/eventbus"
)

// StartEventCollector feeds search events from the bus into the sink.
// It stops when the context is canceled or the bus is closed; the returned
// channel is closed once the collector has drained its subscription.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.IterationEvent:
					_ = sink.RecordIteration(coremetrics.IterationResult{
						Run:            e.Run,
						Operation:      e.Operation,
						Iteration:      e.Iteration,
						CandidateValue: e.CandidateValue,
						BestValue:      e.BestValue,
						Improved:       e.Improved,
						Time:           time.Now(),
					})
				case events.ImprovementEvent:
					if r, ok := sink.(coremetrics.ImprovementRecorder); ok {
						_ = r.RecordImprovement(coremetrics.ImprovementRecord{
							Run:       e.Run,
							Operation: e.Operation,
							Iteration: e.Iteration,
							Value:     e.Value,
							Delta:     e.Delta,
							Time:      time.Now(),
						})
					}
				case events.ResultEvent:
					if r, ok := sink.(coremetrics.RunRecorder); ok {
						_ = r.RecordRun(coremetrics.RunResult{
							Run:        e.Run,
							Route:      e.Route,
							Value:      e.Value,
							Iterations: e.Iterations,
							Time:       time.Now(),
						})
					}
				}
			}
		}
	}()
	return done
}

package metrics

import (
	"time"

	"github.com/google/uuid"

	"github.com/ptbdnr/vrp/core/model"
)

// SinkCallback feeds a sink directly from orchestrator callbacks, for
// embedders that run a search without the event bus. One SinkCallback stands
// for one run: it stamps a fresh run id at construction and the wall clock
// on every record. Like HistoryRecorder it is not safe for concurrent use.
type SinkCallback struct {
	sink MetricsSink
	run  string

	lastValue float64
	lastBest  float64
}

// NewSinkCallback returns a callback recording into sink under a new run id.
func NewSinkCallback(sink MetricsSink) *SinkCallback {
	return &SinkCallback{sink: sink, run: uuid.NewString()}
}

// Run returns the run id stamped on every record.
func (c *SinkCallback) Run() string { return c.run }

// OnIteration records the iteration. Sink errors are dropped; recording must
// never disturb the search.
func (c *SinkCallback) OnIteration(iteration int, current, best float64, improved bool) {
	c.lastValue, c.lastBest = current, best
	_ = c.sink.RecordIteration(IterationResult{
		Run:            c.run,
		Iteration:      iteration,
		CandidateValue: current,
		BestValue:      best,
		Improved:       improved,
		Time:           time.Now(),
	})
}

// SaveRoute records the adoption when the sink keeps improvements. The
// orchestrators call OnIteration before SaveRoute within an iteration, so
// the values observed there belong to the adopted route.
func (c *SinkCallback) SaveRoute(iteration int, route model.Route) {
	rec, ok := c.sink.(ImprovementRecorder)
	if !ok {
		return
	}
	_ = rec.RecordImprovement(ImprovementRecord{
		Run:       c.run,
		Iteration: iteration,
		Value:     c.lastValue,
		Delta:     c.lastBest - c.lastValue,
		Time:      time.Now(),
	})
}

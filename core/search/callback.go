package search

import (
	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
)

// Callback receives progress notifications from an orchestrator. OnIteration
// fires after every iteration with the candidate's objective and the best
// value before the iteration; SaveRoute fires whenever a candidate is
// adopted, so implementations can checkpoint intermediate results.
type Callback interface {
	OnIteration(iteration int, current, best float64, improved bool)
	SaveRoute(iteration int, route model.Route)
}

// NopCallback discards all notifications.
type NopCallback struct{}

// OnIteration implements Callback.
func (NopCallback) OnIteration(int, float64, float64, bool) {}

// SaveRoute implements Callback.
func (NopCallback) SaveRoute(int, model.Route) {}

// MultiCallback fans notifications out to several callbacks in order.
type MultiCallback []Callback

// OnIteration implements Callback.
func (m MultiCallback) OnIteration(iteration int, current, best float64, improved bool) {
	for _, c := range m {
		c.OnIteration(iteration, current, best, improved)
	}
}

// SaveRoute implements Callback.
func (m MultiCallback) SaveRoute(iteration int, route model.Route) {
	for _, c := range m {
		c.SaveRoute(iteration, route)
	}
}

// IterationRecord is one row of a recorded search history.
type IterationRecord struct {
	Iteration    int     `json:"iteration"`
	CurrentValue float64 `json:"current_value"`
	BestValue    float64 `json:"best_value"`
	Improved     bool    `json:"improved"`
}

// Checkpoint is a route adopted during a run together with the iteration
// that produced it.
type Checkpoint struct {
	Iteration int         `json:"iteration"`
	Route     model.Route `json:"route"`
}

// HistoryRecorder keeps the full iteration history and all checkpoints in
// memory for later export. It is not safe for concurrent use.
type HistoryRecorder struct {
	records     []IterationRecord
	checkpoints []Checkpoint
}

// NewHistoryRecorder returns an empty recorder.
func NewHistoryRecorder() *HistoryRecorder { return &HistoryRecorder{} }

// OnIteration implements Callback. The recorded best value is the best after
// the iteration, so histories plot as a non-increasing envelope.
func (h *HistoryRecorder) OnIteration(iteration int, current, best float64, improved bool) {
	if improved {
		best = current
	}
	h.records = append(h.records, IterationRecord{
		Iteration:    iteration,
		CurrentValue: current,
		BestValue:    best,
		Improved:     improved,
	})
}

// SaveRoute implements Callback.
func (h *HistoryRecorder) SaveRoute(iteration int, route model.Route) {
	h.checkpoints = append(h.checkpoints, Checkpoint{Iteration: iteration, Route: route.Copy()})
}

// Records returns a copy of the iteration history.
func (h *HistoryRecorder) Records() []IterationRecord {
	out := make([]IterationRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Checkpoints returns a copy of the adopted routes in adoption order.
func (h *HistoryRecorder) Checkpoints() []Checkpoint {
	out := make([]Checkpoint, len(h.checkpoints))
	copy(out, h.checkpoints)
	return out
}

// LogCallback writes progress to the logger: per-iteration detail at debug
// level, adoptions at info level.
type LogCallback struct {
	Log logger.Logger
}

// OnIteration implements Callback.
func (c LogCallback) OnIteration(iteration int, current, best float64, improved bool) {
	c.Log.Debugf("iteration %d: candidate %.4f best %.4f improved %t", iteration, current, best, improved)
}

// SaveRoute implements Callback.
func (c LogCallback) SaveRoute(iteration int, route model.Route) {
	c.Log.Infof("iteration %d adopted route %s", iteration, route)
}

package metrics

import "time"

// IterationResult represents a single optimiser iteration to be recorded.
type IterationResult struct {
	Run            string
	Operation      string
	Iteration      int
	CandidateValue float64
	BestValue      float64
	Improved       bool
	Time           time.Time
}

// MetricsSink records optimiser iterations for observability purposes.
type MetricsSink interface {
	RecordIteration(res IterationResult) error
}

// ImprovementRecord captures a candidate route adopted as the new best.
type ImprovementRecord struct {
	Run       string
	Operation string
	Iteration int
	Value     float64
	Delta     float64
	Time      time.Time
}

// ImprovementRecorder records adopted improvements.
type ImprovementRecorder interface {
	RecordImprovement(rec ImprovementRecord) error
}

// RunResult summarises a finished optimisation run.
type RunResult struct {
	Run        string
	Route      string
	Value      float64
	Iterations int
	Time       time.Time
}

// RunRecorder records finished runs.
type RunRecorder interface {
	RecordRun(res RunResult) error
}

// BoundsRecord holds the objective bounds computed for an instance.
type BoundsRecord struct {
	Lower float64
	Upper float64
	Nodes int
	Time  time.Time
}

// BoundsRecorder records objective bounds.
type BoundsRecorder interface {
	RecordBounds(rec BoundsRecord) error
}

// NopSink accepts and discards every record.
type NopSink struct{}

func (NopSink) RecordIteration(IterationResult) error { return nil }

func (NopSink) RecordImprovement(ImprovementRecord) error { return nil }
func (NopSink) RecordRun(RunResult) error                 { return nil }
func (NopSink) RecordBounds(BoundsRecord) error           { return nil }

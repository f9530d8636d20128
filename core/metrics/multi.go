package metrics

import "errors"

// MultiSink fans records out to multiple sinks. Every sink sees every record
// even when an earlier one fails; the errors are joined.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink wraps the given sinks in a fan-out.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordIteration forwards the record to all sinks.
func (m *MultiSink) RecordIteration(res IterationResult) error {
	var errs []error
	for _, s := range m.Sinks {
		errs = append(errs, s.RecordIteration(res))
	}
	return errors.Join(errs...)
}

// RecordImprovement forwards improvement records to sinks that accept them.
func (m *MultiSink) RecordImprovement(rec ImprovementRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(ImprovementRecorder); ok {
			errs = append(errs, r.RecordImprovement(rec))
		}
	}
	return errors.Join(errs...)
}

// RecordRun forwards run summaries to sinks that accept them.
func (m *MultiSink) RecordRun(res RunResult) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(RunRecorder); ok {
			errs = append(errs, r.RecordRun(res))
		}
	}
	return errors.Join(errs...)
}

// RecordBounds forwards bounds records to sinks that accept them.
func (m *MultiSink) RecordBounds(rec BoundsRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(BoundsRecorder); ok {
			errs = append(errs, r.RecordBounds(rec))
		}
	}
	return errors.Join(errs...)
}

// Package metrics defines the recording contracts of the optimisation
// engine. MetricsSink receives every iteration; the optional recorder
// interfaces extend a sink to improvements, run summaries and objective
// bounds. NopSink discards everything, MultiSink fans out to several sinks
// and the factory helpers build the configured set, returning a MultiSink
// automatically when more than one sink is configured. SinkCallback adapts
// a sink to the search callback contract for embedders that skip the event
// bus. Concrete sinks live under infra/metrics.
package metrics

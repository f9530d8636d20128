package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/ptbdnr/vrp/core/metrics"
)

// PromSink records optimisation progress in Prometheus metrics.
type PromSink struct {
	iterations *prometheus.CounterVec
	delta      prometheus.Histogram
	best       prometheus.Gauge
	runs       prometheus.Counter
	bounds     *prometheus.GaugeVec
}

// NewPromSink registers search metrics on the default Prometheus registerer.
// The exposition server is started separately through StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers the collectors on reg, falling back to
// the global Prometheus registerer when reg is nil. Tests pass their own
// registry to stay isolated.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	iterations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "route_search_iterations_total",
		Help: "Total number of search iterations",
	}, []string{"operation", "improved"})
	delta := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_search_improvement_delta",
		Help:    "Objective decrease per adopted candidate",
		Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
	})
	best := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "route_search_best_value",
		Help: "Objective value of the best route found so far",
	})
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_search_runs_total",
		Help: "Total number of finished optimisation runs",
	})
	bounds := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "route_objective_bound",
		Help: "Precomputed objective bound for the loaded instance",
	}, []string{"bound"})

	if err := reg.Register(iterations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			iterations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(delta); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			delta = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(best); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			best = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(bounds); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			bounds = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{iterations: iterations, delta: delta, best: best, runs: runs, bounds: bounds}, nil
}

// RecordIteration increments the iteration counter.
func (s *PromSink) RecordIteration(res coremetrics.IterationResult) error {
	s.iterations.WithLabelValues(res.Operation, strconv.FormatBool(res.Improved)).Inc()
	return nil
}

// RecordImprovement observes the objective decrease and updates the best gauge.
func (s *PromSink) RecordImprovement(rec coremetrics.ImprovementRecord) error {
	s.delta.Observe(rec.Delta)
	s.best.Set(rec.Value)
	return nil
}

// RecordRun counts the finished run and pins the final objective.
func (s *PromSink) RecordRun(res coremetrics.RunResult) error {
	s.runs.Inc()
	s.best.Set(res.Value)
	return nil
}

// RecordBounds sets the lower and upper bound gauges.
func (s *PromSink) RecordBounds(rec coremetrics.BoundsRecord) error {
	s.bounds.WithLabelValues("lower").Set(rec.Lower)
	s.bounds.WithLabelValues("upper").Set(rec.Upper)
	return nil
}

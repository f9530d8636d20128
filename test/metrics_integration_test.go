package test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ptbdnr/vrp/core/eval"
	coremetrics "github.com/ptbdnr/vrp/core/metrics"
	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/core/network"
	"github.com/ptbdnr/vrp/core/search"
	"github.com/ptbdnr/vrp/infra/logger"
	"github.com/ptbdnr/vrp/infra/metrics"
	"github.com/ptbdnr/vrp/internal/eventbus"
	"github.com/ptbdnr/vrp/test/util"
)

// zigzagNodes is a line instance whose id order zigzags, so the first
// segment reversal already improves the naive seed.
func zigzagNodes() []model.Node {
	return []model.Node{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 40, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 30, Y: 0},
		{ID: 4, X: 20, Y: 0},
		{ID: 5, X: 50, Y: 0},
	}
}

func TestSearchMetricsExposed(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	bus := eventbus.New()
	done := metrics.StartEventCollector(ctx, bus, sink)

	nodes := zigzagNodes()
	store, err := network.NewStore(nodes)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	dist := network.NewDistanceCache()
	rules := network.NewEdgeRules(store, dist, logger.NopLogger{})
	evaluator := eval.NewEvaluator(store, dist, rules, logger.NopLogger{})
	ops, err := search.BuildOperations([]string{"segment_reversal", "relocate"}, evaluator, logger.NopLogger{}, 4)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	ls, err := search.NewLocalSearch(evaluator, ops, search.FixedIterations(30), nil, bus, logger.NopLogger{})
	if err != nil {
		t.Fatalf("local search: %v", err)
	}
	ls.SetOnlyValid(false)
	ls.AddSeedRoute(model.Route{Name: "seed", Sequence: nodes})

	best := ls.Optimise()
	if best.Len() != 6 {
		t.Fatalf("unexpected result %s", best)
	}

	bus.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("collector did not drain")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	ts := httptest.NewServer(mux)
	defer ts.Close()

	waitCtx, waitCancel := context.WithTimeout(ctx, util.MetricTimeout)
	defer waitCancel()
	for _, metric := range []string{
		"route_search_runs_total 1",
		`route_search_iterations_total{improved="true",operation="segment_reversal"}`,
		"route_search_best_value",
	} {
		if err := util.WaitForMetric(waitCtx, ts.URL+"/metrics", metric); err != nil {
			t.Errorf("metric wait: %v", err)
		}
	}
}

func TestFactoryBuiltSinkRecordsRun(t *testing.T) {
	// The factory path: a nop sink plus collector must not lose events.
	sink, err := coremetrics.NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("expected nop sink, got %T", sink)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	bus := eventbus.New()
	done := metrics.StartEventCollector(ctx, bus, sink)

	nodes := zigzagNodes()
	store, err := network.NewStore(nodes)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	dist := network.NewDistanceCache()
	rules := network.NewEdgeRules(store, dist, logger.NopLogger{})
	evaluator := eval.NewEvaluator(store, dist, rules, logger.NopLogger{})
	ops, err := search.BuildOperations([]string{"three_segment"}, evaluator, logger.NopLogger{}, 1)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	ls, err := search.NewLocalSearch(evaluator, ops, search.FixedIterations(10), nil, bus, logger.NopLogger{})
	if err != nil {
		t.Fatalf("local search: %v", err)
	}
	ls.AddSeedRoute(model.Route{Name: "seed", Sequence: nodes})
	_ = ls.Optimise()

	bus.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("collector did not drain")
	}
}

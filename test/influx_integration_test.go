package test

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/factory"
	coremetrics "github.com/ptbdnr/vrp/core/metrics"
	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/core/network"
	"github.com/ptbdnr/vrp/core/search"
	"github.com/ptbdnr/vrp/infra/logger"
	"github.com/ptbdnr/vrp/infra/metrics"
	"github.com/ptbdnr/vrp/internal/eventbus"
	"github.com/ptbdnr/vrp/test/util"
)

// countRows counts the raw flux rows of one measurement over the last 15
// minutes. Each field of a point is a separate row.
func countRows(ctx context.Context, qapi api.QueryAPI, bucket, measurement string) (int, error) {
	flux := fmt.Sprintf(`from(bucket:%q) |> range(start:-15m) |> filter(fn: (r) => r._measurement == %q)`, bucket, measurement)
	res, err := qapi.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	n := 0
	for res.Next() {
		n++
	}
	return n, res.Err()
}

// waitForRows polls until the measurement has at least one row.
func waitForRows(ctx context.Context, qapi api.QueryAPI, bucket, measurement string) (int, error) {
	for {
		n, err := countRows(ctx, qapi, bucket, measurement)
		if err == nil && n > 0 {
			return n, nil
		}
		select {
		case <-ctx.Done():
			if err == nil {
				err = ctx.Err()
			}
			return 0, fmt.Errorf("no %s rows: %w", measurement, err)
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func TestSearchEventsReachInflux(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()
	params, cleanup, err := util.StartInflux(ctx)
	if err != nil {
		t.Fatalf("start influx: %v", err)
	}
	defer cleanup()

	built, err := coremetrics.NewMetricsSink([]factory.ModuleConfig{{
		Type: "influx",
		Conf: map[string]any{
			"url":    params.URL,
			"token":  params.Token,
			"org":    params.Org,
			"bucket": params.Bucket,
		},
	}})
	if err != nil {
		t.Fatalf("build sink: %v", err)
	}
	sink, ok := built.(*metrics.InfluxSink)
	if !ok {
		t.Fatalf("health check demoted sink to %T", built)
	}

	// Bounds are recorded directly, the way the service does before a run.
	if err := sink.RecordBounds(coremetrics.BoundsRecord{Lower: 50, Upper: 130, Nodes: 6, Time: time.Now()}); err != nil {
		t.Fatalf("record bounds: %v", err)
	}

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
	ops, err := search.BuildOperations([]string{"segment_reversal"}, evaluator, logger.NopLogger{}, 4)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	// Three iterations keep the event count under the bus buffer, so every
	// event reaches the sink even if the broker-bound writes are slow.
	ls, err := search.NewLocalSearch(evaluator, ops, search.FixedIterations(3), nil, bus, logger.NopLogger{})
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
	case <-time.After(30 * time.Second):
		t.Fatal("collector did not drain")
	}

	client := influxdb2.NewClient(params.URL, params.Token)
	defer client.Close()
	qapi := client.QueryAPI(params.Org)

	// The run summary is the collector's last write; once it is visible all
	// earlier writes are too.
	waitCtx, waitCancel := context.WithTimeout(ctx, 15*time.Second)
	defer waitCancel()
	if _, err := waitForRows(waitCtx, qapi, params.Bucket, "search_run"); err != nil {
		t.Fatal(err)
	}
	for _, measurement := range []string{"search_iteration", "route_improvement", "objective_bounds"} {
		n, err := countRows(ctx, qapi, params.Bucket, measurement)
		if err != nil {
			t.Fatalf("query %s: %v", measurement, err)
		}
		if n == 0 {
			t.Errorf("no %s rows recorded", measurement)
		}
	}
}

package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/ptbdnr/vrp/core/metrics"
	"github.com/ptbdnr/vrp/infra/logger"
)

// influxTimeout bounds every call against the InfluxDB API.
const influxTimeout = 5 * time.Second

// InfluxSink writes search telemetry to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint. The url may
// be the bare host or a full /api/v2/write URL.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: influxTimeout}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and degrades to a
// NopSink when the health check fails, so a missing database never stops a
// search run.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), influxTimeout)
	defer cancel()
	health, err := sink.client.Health(ctx)
	switch {
	case err != nil:
		sink.log.Errorf("influx health check error: %v", err)
	case health.Status != "pass":
		sink.log.Errorf("influx health status: %s", health.Status)
	default:
		return sink
	}
	sink.client.Close()
	return coremetrics.NopSink{}
}

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), influxTimeout)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordIteration writes one search iteration as a line protocol point.
func (s *InfluxSink) RecordIteration(res coremetrics.IterationResult) error {
	return s.write(write.NewPointWithMeasurement("search_iteration").
		AddTag("run", res.Run).
		AddTag("operation", res.Operation).
		AddTag("improved", strconv.FormatBool(res.Improved)).
		AddField("iteration", res.Iteration).
		AddField("candidate_value", round3(res.CandidateValue)).
		AddField("best_value", round3(res.BestValue)).
		SetTime(res.Time))
}

// RecordImprovement writes an adopted improvement.
func (s *InfluxSink) RecordImprovement(rec coremetrics.ImprovementRecord) error {
	return s.write(write.NewPointWithMeasurement("route_improvement").
		AddTag("run", rec.Run).
		AddTag("operation", rec.Operation).
		AddField("iteration", rec.Iteration).
		AddField("value", round3(rec.Value)).
		AddField("delta", round3(rec.Delta)).
		SetTime(rec.Time))
}

// RecordRun writes the summary of a finished run.
func (s *InfluxSink) RecordRun(res coremetrics.RunResult) error {
	return s.write(write.NewPointWithMeasurement("search_run").
		AddTag("run", res.Run).
		AddField("value", round3(res.Value)).
		AddField("iterations", res.Iterations).
		AddField("route", res.Route).
		SetTime(res.Time))
}

// RecordBounds writes the objective bounds computed for an instance.
func (s *InfluxSink) RecordBounds(rec coremetrics.BoundsRecord) error {
	return s.write(write.NewPointWithMeasurement("objective_bounds").
		AddField("lower", round3(rec.Lower)).
		AddField("upper", round3(rec.Upper)).
		AddField("nodes", rec.Nodes).
		SetTime(rec.Time))
}

// round3 keeps stored floats at millesimal precision.
func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

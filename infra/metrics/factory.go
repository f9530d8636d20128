package metrics

import (
	"github.com/ptbdnr/vrp/core/factory"
	coremetrics "github.com/ptbdnr/vrp/core/metrics"
)

// init registers the built-in sinks under the names the metrics
// configuration refers to.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", newNopFromConf)
	_ = coremetrics.RegisterMetricsSink("prometheus", newPromFromConf)
	_ = coremetrics.RegisterMetricsSink("influx", newInfluxFromConf)
}

func newNopFromConf(map[string]any) (coremetrics.MetricsSink, error) {
	return coremetrics.NopSink{}, nil
}

type promConf struct {
	Port string `json:"prometheus_port"`
}

// newPromFromConf decodes the sink settings and registers the collectors.
// The prometheus_port setting is read by the application when it starts the
// exposition server, not here.
func newPromFromConf(conf map[string]any) (coremetrics.MetricsSink, error) {
	var c promConf
	if err := factory.Decode(conf, &c); err != nil {
		return nil, err
	}
	return NewPromSink()
}

type influxConf struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

func newInfluxFromConf(conf map[string]any) (coremetrics.MetricsSink, error) {
	var c influxConf
	if err := factory.Decode(conf, &c); err != nil {
		return nil, err
	}
	return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
}

package metrics

import "github.com/ptbdnr/vrp/core/factory"

// Config lists the sinks receiving search telemetry. An empty list means
// recording is off (NewMetricsSink then returns a NopSink).
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}

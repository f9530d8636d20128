package metrics_test

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	metrics "github.com/ptbdnr/vrp/core/metrics"
	_ "github.com/ptbdnr/vrp/infra/metrics"
)

func TestConfigFromYAML(t *testing.T) {
	data := `sinks:
  - type: nop
  - type: nop
    conf:
      unused: true
`
	var cfg metrics.Config
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if len(cfg.Sinks) != 2 {
		t.Fatalf("expected 2 sink entries, got %d", len(cfg.Sinks))
	}
	s, err := metrics.NewMetricsSink(cfg.Sinks)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := s.(*metrics.MultiSink); !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
}

func TestConfigFromJSONUnknownSink(t *testing.T) {
	data := `{"sinks":[{"type":"statsd"}]}`
	var cfg metrics.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if _, err := metrics.NewMetricsSink(cfg.Sinks); err == nil {
		t.Fatal("expected an error for the unregistered sink type")
	}
}

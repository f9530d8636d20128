package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ptbdnr/vrp/core/metrics"
)

// envPrefix marks environment variables that override file settings, with
// "__" standing in for the dots of the config path (VRP_SOLVER__SEED).
const envPrefix = "VRP_"

// Config is the root of the application configuration.
type Config struct {
	Input       InputConfig       `json:"input"`
	Constraints ConstraintsConfig `json:"constraints"`
	Solver      SolverConfig      `json:"solver"`
	Metrics     metrics.Config    `json:"metrics"`
	MQTT        MQTTConfig        `json:"mqtt"`
	Logging     LoggingConfig     `json:"logging"`
	Output      OutputConfig      `json:"output"`
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Load reads the configuration file at path, applies environment overrides,
// fills in defaults and validates every section.
func Load(path string) (*Config, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(envPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Solver.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for _, v := range []interface{ Validate() error }{
		c.Input, c.Solver, c.Logging, c.MQTT,
	} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

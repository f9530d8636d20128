package config

import "fmt"

// LoggingConfig defines settings for the structured logger shared by all
// components.
type LoggingConfig struct {
	// Backend selects the logger implementation: "zerolog" or "logrus".
	Backend string `json:"backend"`
	// Level filters emitted records: "debug", "info", "warn" or "error".
	Level string `json:"level"`
}

// SetDefaults fills unset fields with the zerolog backend at info level.
func (c *LoggingConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "zerolog"
	}
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate rejects backends and levels no logger implements.
func (c LoggingConfig) Validate() error {
	switch c.Backend {
	case "zerolog", "logrus":
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", c.Level)
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/ptbdnr/vrp/infra/mqtt"
)

// MQTTConfig wraps the publisher connection settings behind an enable flag.
type MQTTConfig struct {
	Enabled bool        `json:"enabled"`
	Client  mqtt.Config `json:"client"`
}

// Validate checks mandatory fields when publishing is enabled.
func (c MQTTConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Client.Broker == "" {
		return fmt.Errorf("mqtt broker is required when publishing is enabled")
	}
	return nil
}

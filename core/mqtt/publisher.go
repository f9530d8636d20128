package mqtt

import "github.com/ptbdnr/vrp/core/model"

// Publisher represents an MQTT client capable of announcing optimisation
// progress and results to downstream consumers.
type Publisher interface {
	// PublishImprovement announces a route adopted while a run is still in
	// progress.
	PublishImprovement(iteration int, route model.Route, value float64) error

	// PublishResult announces the best route found by a finished run.
	PublishResult(route model.Route, value float64) error
}

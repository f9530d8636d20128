package mqtt

import (
	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/model"
	coremqtt "github.com/ptbdnr/vrp/core/mqtt"
	"github.com/ptbdnr/vrp/infra/logger"
)

// SearchCallback bridges a running search to a Publisher: every adopted
// route is announced as an improvement message. Per-iteration notifications
// are discarded. Publish failures are logged, never propagated, so a flaky
// broker cannot stall a search.
type SearchCallback struct {
	pub  coremqtt.Publisher
	eval *eval.Evaluator
	log  logger.Logger
}

// NewSearchCallback builds the bridge. The evaluator recomputes the objective
// of adopted routes for the outgoing payload.
func NewSearchCallback(pub coremqtt.Publisher, evaluator *eval.Evaluator, log logger.Logger) *SearchCallback {
	return &SearchCallback{pub: pub, eval: evaluator, log: log}
}

// OnIteration implements the search callback contract.
func (c *SearchCallback) OnIteration(int, float64, float64, bool) {}

// SaveRoute implements the search callback contract.
func (c *SearchCallback) SaveRoute(iteration int, route model.Route) {
	value, err := c.eval.Objective(route)
	if err != nil {
		c.log.Warnf("adopted route not evaluable: %v", err)
		return
	}
	if err := c.pub.PublishImprovement(iteration, route, value); err != nil {
		c.log.Warnf("improvement publish failed: %v", err)
	}
}

// Package construct builds seed routes for the improvement searches.
package construct

import (
	"fmt"

	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/core/network"
)

// Builder produces a seed route over the registered nodes. Builders are
// cheap and deterministic; the improvement searches take it from there.
type Builder interface {
	Name() string
	Build() model.Route
}

// New resolves a configured builder name.
func New(name string, store *network.Store, rules *network.EdgeRules, log logger.Logger) (Builder, error) {
	switch name {
	case "naive":
		return NewNaive(store, log), nil
	case "greedy":
		return NewGreedy(store, rules, log), nil
	default:
		return nil, fmt.Errorf("construct: unknown builder %q", name)
	}
}

package mqtt

import (
	"fmt"
	"sync"

	coremqtt "github.com/ptbdnr/vrp/core/mqtt"
	"github.com/ptbdnr/vrp/core/model"
)

// Publisher re-exports the core port so wiring code only imports this
// package.
type Publisher = coremqtt.Publisher

// MockPublisher collects published routes in memory for tests.
type MockPublisher struct {
	Improvements []model.Route
	Results      []model.Route
	Values       []float64
	Fail         bool
	mu           sync.Mutex
}

// NewMockPublisher returns an empty mock.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishImprovement records the adopted route or fails if configured to.
func (m *MockPublisher) PublishImprovement(_ int, route model.Route, _ float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Improvements = append(m.Improvements, route.Copy())
	return nil
}

// PublishResult records the final route and its objective value.
func (m *MockPublisher) PublishResult(route model.Route, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Results = append(m.Results, route.Copy())
	m.Values = append(m.Values, value)
	return nil
}

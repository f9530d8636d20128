package config

import (
	"fmt"
)

// SolverConfig drives the local search run.
type SolverConfig struct {
	// Operations lists the neighborhood operators in cycling order:
	// "segment_reversal", "three_segment", "relocate".
	Operations []string `json:"operations"`
	// Seeds lists the constructive heuristics used to build starting routes:
	// "naive", "greedy".
	Seeds []string `json:"seeds"`
	// MaxIterations caps the number of improvement iterations.
	MaxIterations int `json:"max_iterations"`
	// StallWindow stops the search after this many consecutive iterations
	// without improvement. Zero disables the check.
	StallWindow int `json:"stall_window"`
	// TimeLimitSeconds bounds the wall-clock duration of the run. Zero
	// disables the check.
	TimeLimitSeconds int `json:"time_limit_seconds"`
	// Seed feeds the operator random streams.
	Seed int64 `json:"seed"`
	// AcceptInvalid admits candidates that break travel rules.
	AcceptInvalid bool `json:"accept_invalid"`
	// ThreeSegmentAttempts budgets the bounded-random polish pass run after
	// the search. Zero disables the pass.
	ThreeSegmentAttempts int `json:"three_segment_attempts"`
	// Annealing configures the optional simulated annealing comparison run.
	Annealing AnnealingConfig `json:"annealing"`
}

// AnnealingConfig parameterizes the simulated annealing run.
type AnnealingConfig struct {
	Enabled     bool    `json:"enabled"`
	InitialTemp float64 `json:"initial_temp"`
	Cooling     float64 `json:"cooling"`
}

// SetDefaults fills the operator cycle, the seed heuristics and the
// iteration cap when the file leaves them out.
func (c *SolverConfig) SetDefaults() {
	if len(c.Operations) == 0 {
		c.Operations = []string{"segment_reversal", "three_segment", "relocate"}
	}
	if len(c.Seeds) == 0 {
		c.Seeds = []string{"naive", "greedy"}
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 1000
	}
}

// Validate rejects budgets and annealing parameters outside their ranges.
func (c SolverConfig) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive")
	}
	if c.StallWindow < 0 {
		return fmt.Errorf("stall_window must not be negative")
	}
	if c.TimeLimitSeconds < 0 {
		return fmt.Errorf("time_limit_seconds must not be negative")
	}
	if c.ThreeSegmentAttempts < 0 {
		return fmt.Errorf("three_segment_attempts must not be negative")
	}
	if c.Annealing.Enabled {
		if c.Annealing.InitialTemp < 0 {
			return fmt.Errorf("annealing initial_temp must not be negative")
		}
		if c.Annealing.Cooling != 0 && (c.Annealing.Cooling <= 0 || c.Annealing.Cooling >= 1) {
			return fmt.Errorf("annealing cooling must be in (0, 1)")
		}
	}
	return nil
}

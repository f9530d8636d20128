package config

// ConstraintsConfig toggles the travel rules applied between intermediate
// stops. Both parity rules are active unless explicitly disabled.
type ConstraintsConfig struct {
	DisableEvenToOdd bool `json:"disable_even_to_odd"`
	DisableOddToEven bool `json:"disable_odd_to_even"`
}

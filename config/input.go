package config

import (
	"fmt"

	"github.com/ptbdnr/vrp/infra/dataset"
)

// InputConfig selects the node instance to solve: a CSV dataset on disk or a
// synthetic generated one.
type InputConfig struct {
	// Dataset is the path of a CSV file with an id,x,y header.
	Dataset string `json:"dataset"`
	// Generate describes a synthetic instance built at startup.
	Generate *dataset.GenerateConfig `json:"generate"`
}

// Validate checks that exactly one instance source is configured.
func (c InputConfig) Validate() error {
	if c.Dataset == "" && c.Generate == nil {
		return fmt.Errorf("input requires a dataset path or a generate section")
	}
	if c.Dataset != "" && c.Generate != nil {
		return fmt.Errorf("input dataset and generate are mutually exclusive")
	}
	if c.Generate != nil && c.Generate.Intermediates < 0 {
		return fmt.Errorf("generate intermediates must not be negative")
	}
	return nil
}

// OutputConfig controls where run artifacts land.
type OutputConfig struct {
	// Dir receives route.csv, route.json, history.json and report.txt when
	// set. No files are written otherwise.
	Dir string `json:"dir"`
}

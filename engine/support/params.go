package support

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelParams contains the behavior parameters of the support model,
// loaded from the model definition file.
type ModelParams struct {
	// Decay damps the neighbor influence term per tick.
	Decay float64 `yaml:"decay"`

	// Threshold is the neighbor-support level above which a thresholded
	// response activates.
	Threshold float64 `yaml:"threshold"`

	// RandomScale bounds the random-influence term.
	RandomScale float64 `yaml:"random_scale"`

	// GrowthRate scales the per-tick support increment.
	GrowthRate float64 `yaml:"growth_rate"`
}

// DefaultModelParams creates a new parameters struct with default values
func DefaultModelParams() *ModelParams {
	return &ModelParams{
		Decay:       0.9,
		Threshold:   0.5,
		RandomScale: 0.02,
		GrowthRate:  0.25,
	}
}

// LoadModelParams reads a model definition file on top of the defaults. An
// empty path keeps the defaults.
func LoadModelParams(path string) (*ModelParams, error) {
	params := DefaultModelParams()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model definition %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("parse model definition %s: %w", path, err)
	}

	return params, nil
}

// ToMap converts the parameters to a map
func (p *ModelParams) ToMap() map[string]any {
	return map[string]any{
		"decay":        p.Decay,
		"threshold":    p.Threshold,
		"random_scale": p.RandomScale,
		"growth_rate":  p.GrowthRate,
	}
}

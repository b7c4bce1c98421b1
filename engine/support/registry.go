package support

import (
	"fmt"
	"math/rand"
)

// GrowthFunc scales the support increment as a function of current support.
type GrowthFunc func(p *ModelParams, support float64) float64

// RandomFunc draws the random-influence term for one agent activation.
type RandomFunc func(p *ModelParams, rng *rand.Rand) float64

// ResponseFunc maps own and mean neighbor support to a raw influence value.
type ResponseFunc func(p *ModelParams, own float64, neighborMean float64) float64

// Behavior functions are selected by configuration string through these
// maps; there is no runtime expression evaluation.
var growthDefs = map[string]GrowthFunc{

	"linear": func(p *ModelParams, support float64) float64 {
		return p.GrowthRate
	},

	// logistic growth saturates near both ends of the support scale
	"logistic": func(p *ModelParams, support float64) float64 {
		return 4 * p.GrowthRate * support * (1 - support)
	},
}

var randomDefs = map[string]RandomFunc{

	"none": func(p *ModelParams, rng *rand.Rand) float64 {
		return 0
	},

	"uniform": func(p *ModelParams, rng *rand.Rand) float64 {
		return (rng.Float64()*2 - 1) * p.RandomScale
	},
}

var responseDefs = map[string]ResponseFunc{

	"threshold": func(p *ModelParams, own float64, neighborMean float64) float64 {
		if neighborMean > p.Threshold {
			return 1 - own
		}
		return 0
	},

	"proportional": func(p *ModelParams, own float64, neighborMean float64) float64 {
		return neighborMean - own
	},
}

// Growth resolves a growth function by configuration name.
func Growth(name string) (GrowthFunc, error) {
	fn, ok := growthDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown growth function %q", name)
	}
	return fn, nil
}

// Random resolves a random-influence function by configuration name.
func Random(name string) (RandomFunc, error) {
	fn, ok := randomDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown random_influence function %q", name)
	}
	return fn, nil
}

// Response resolves a response function by configuration name.
func Response(name string) (ResponseFunc, error) {
	fn, ok := responseDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown response function %q", name)
	}
	return fn, nil
}

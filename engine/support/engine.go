package support

import (
	"fmt"
	"math/rand"

	"movement-sim/engine"
	"movement-sim/network"
)

// Engine is the bundled in-process implementation of the engine API
// surface. It loads emitted network files and runs the support model over
// them, one run at a time.
type Engine struct {
	params  *ModelParams
	started bool
	loaded  bool
}

// New creates a stopped engine instance.
func New() *Engine {
	return &Engine{}
}

// Start boots the engine. The in-process engine has no graphical subsystem,
// so headless only gates double starts.
func (e *Engine) Start(headless bool) error {
	if e.started {
		return fmt.Errorf("engine already started")
	}
	e.started = true
	return nil
}

// Load reads the model definition. An empty path loads the default
// parameters.
func (e *Engine) Load(modelPath string) error {
	if !e.started {
		return fmt.Errorf("load before start")
	}

	params, err := LoadModelParams(modelPath)
	if err != nil {
		return err
	}

	e.params = params
	e.loaded = true
	return nil
}

// Run executes one simulation over the network file named by spec and
// returns the per-tick, per-node support table, including the tick-0
// initial state.
func (e *Engine) Run(spec engine.RunSpec) (*engine.Table, error) {
	if !e.loaded {
		return nil, fmt.Errorf("run before load")
	}

	growth, err := Growth(spec.Growth)
	if err != nil {
		return nil, err
	}
	randomInf, err := Random(spec.RandomInfluence)
	if err != nil {
		return nil, err
	}
	response, err := Response(spec.Response)
	if err != nil {
		return nil, err
	}

	g, err := network.LoadGraphFromFile(spec.NetworkFile)
	if err != nil {
		return nil, fmt.Errorf("load network file: %w", err)
	}

	seed := spec.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	model := NewSupportModel(g, e.params, ModelOptions{
		Growth:          growth,
		RandomInfluence: randomInf,
		Response:        response,
		InfluenceWeight: spec.InfluenceWeight,
		MinorityOnset:   spec.MinorityOnset,
		AllyOnset:       spec.AllyOnset,
	}, rng)

	table := engine.NewTable()
	collect := func(tick int) {
		for _, id := range g.NodeIDs() {
			table.Rows = append(table.Rows, engine.Row{
				Tick:    tick,
				Node:    id,
				Support: model.Grid.GetAgent(id).CurSupport,
			})
		}
	}

	collect(0)
	for tick := 1; tick <= spec.Ticks; tick++ {
		model.Step()
		collect(tick)
	}

	return table, nil
}

// Stop shuts the engine down and drops the loaded model.
func (e *Engine) Stop() error {
	e.started = false
	e.loaded = false
	e.params = nil
	return nil
}

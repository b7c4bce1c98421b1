package support

import (
	"math"
	"math/rand"

	"movement-sim/network"
)

// SupportModel runs the support-dynamics agent model over one annotated
// network.
type SupportModel struct {
	Graph  *network.Graph
	Params *ModelParams

	Growth          GrowthFunc
	RandomInfluence RandomFunc
	Response        ResponseFunc
	InfluenceWeight float64
	MinorityOnset   int
	AllyOnset       int

	Grid     *SupportGrid
	Schedule *RandomActivation
	CurTick  int

	rng *rand.Rand
}

// ModelOptions bundles the per-run behavior settings of a model instance.
type ModelOptions struct {
	Growth          GrowthFunc
	RandomInfluence RandomFunc
	Response        ResponseFunc
	InfluenceWeight float64
	MinorityOnset   int
	AllyOnset       int
}

// NewSupportModel builds the model over an annotated network: one agent per
// node, initialized from the node attributes.
func NewSupportModel(
	g *network.Graph,
	params *ModelParams,
	opt ModelOptions,
	rng *rand.Rand,
) *SupportModel {
	if params == nil {
		params = DefaultModelParams()
	}

	model := &SupportModel{
		Graph:           g,
		Params:          params,
		Growth:          opt.Growth,
		RandomInfluence: opt.RandomInfluence,
		Response:        opt.Response,
		InfluenceWeight: opt.InfluenceWeight,
		MinorityOnset:   opt.MinorityOnset,
		AllyOnset:       opt.AllyOnset,
		CurTick:         0,
		rng:             rng,
	}

	model.Grid = NewSupportGrid(g)
	model.Schedule = NewRandomActivation(rng)

	for _, id := range g.NodeIDs() {
		attrs := g.Attrs[id]
		minority := false
		initial := 0.0
		if attrs != nil {
			minority = attrs.Minority
			initial = attrs.Support
		}

		agent := NewSupportAgent(id, model, minority, initial)
		model.Grid.PlaceAgent(agent, id)
		model.Schedule.AddAgent(agent)
	}

	return model
}

// Step advances the model by one tick and returns the largest absolute
// support change of the tick.
func (m *SupportModel) Step() float64 {
	m.CurTick++

	m.Schedule.Step()

	// commit all agents together
	maxChange := 0.0
	for _, agent := range m.Schedule.Agents {
		change := agent.NextSupport - agent.CurSupport
		agent.CurSupport = agent.NextSupport
		maxChange = math.Max(maxChange, math.Abs(change))
	}

	return maxChange
}

// CollectSupports returns the current support of every agent, ordered by
// node ID.
func (m *SupportModel) CollectSupports() map[int64]float64 {
	supports := make(map[int64]float64, len(m.Schedule.Agents))
	for _, agent := range m.Schedule.Agents {
		supports[agent.NodeID] = agent.CurSupport
	}
	return supports
}

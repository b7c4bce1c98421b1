package support

import "math"

// SupportAgent represents one node of the support model. Updates are
// two-phase: Step computes NextSupport from the current tick's state, the
// model commits all agents together afterwards.
type SupportAgent struct {
	NodeID      int64
	Model       *SupportModel
	Minority    bool
	CurSupport  float64
	NextSupport float64
}

// NewSupportAgent creates an agent with its initial support level.
func NewSupportAgent(nodeID int64, model *SupportModel, minority bool, support float64) *SupportAgent {
	return &SupportAgent{
		NodeID:      nodeID,
		Model:       model,
		Minority:    minority,
		CurSupport:  support,
		NextSupport: support,
	}
}

// SupportAgentStep computes the next support level of one agent. Pure
// function of its inputs so the update rule is testable in isolation.
func SupportAgentStep(
	support float64,
	neighbors []float64,
	active bool,
	weight float64,
	decay float64,
	response func(own float64, neighborMean float64) float64,
	growth func(support float64) float64,
	random func() float64,
) float64 {
	// an agent before its onset tick holds its support fixed
	if !active {
		return support
	}

	influence := 0.0
	if len(neighbors) > 0 {
		mean := 0.0
		for _, s := range neighbors {
			mean += s
		}
		mean /= float64(len(neighbors))
		influence = weight * decay * response(support, mean)
	}

	next := support + growth(support)*influence + random()
	return math.Max(0, math.Min(1, next))
}

// Step performs a single step for this agent.
func (a *SupportAgent) Step() {
	m := a.Model

	onset := m.AllyOnset
	if a.Minority {
		onset = m.MinorityOnset
	}

	a.NextSupport = SupportAgentStep(
		a.CurSupport,
		m.Grid.NeighborSupports(a.NodeID),
		// onset is a delay: an onset of max_ticks keeps the agent inactive
		// for the whole run
		m.CurTick > onset,
		m.InfluenceWeight,
		m.Params.Decay,
		func(own, neighborMean float64) float64 {
			return m.Response(m.Params, own, neighborMean)
		},
		func(support float64) float64 {
			return m.Growth(m.Params, support)
		},
		func() float64 {
			return m.RandomInfluence(m.Params, m.rng)
		},
	)
}

package support

import "math/rand"

// RandomActivation activates agents in a fresh random order each tick.
type RandomActivation struct {
	Agents []*SupportAgent
	rng    *rand.Rand
}

// NewRandomActivation creates a new random activation scheduler.
func NewRandomActivation(rng *rand.Rand) *RandomActivation {
	return &RandomActivation{
		Agents: make([]*SupportAgent, 0),
		rng:    rng,
	}
}

// AddAgent adds an agent to the scheduler.
func (ra *RandomActivation) AddAgent(agent *SupportAgent) {
	ra.Agents = append(ra.Agents, agent)
}

// Step activates all agents in shuffled order.
func (ra *RandomActivation) Step() {
	indices := make([]int, len(ra.Agents))
	for i := range indices {
		indices[i] = i
	}

	ra.rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	for _, i := range indices {
		ra.Agents[i].Step()
	}
}

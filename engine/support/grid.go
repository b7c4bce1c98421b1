package support

import (
	"movement-sim/network"
)

// SupportGrid places agents on the network and answers neighbor queries.
type SupportGrid struct {
	Graph    *network.Graph
	AgentMap map[int64]*SupportAgent
}

// NewSupportGrid creates a grid over the given network.
func NewSupportGrid(g *network.Graph) *SupportGrid {
	return &SupportGrid{
		Graph:    g,
		AgentMap: make(map[int64]*SupportAgent),
	}
}

// PlaceAgent places an agent on its node.
func (sg *SupportGrid) PlaceAgent(agent *SupportAgent, nodeID int64) {
	sg.AgentMap[nodeID] = agent
}

// GetAgent returns the agent at the specified node.
func (sg *SupportGrid) GetAgent(nodeID int64) *SupportAgent {
	return sg.AgentMap[nodeID]
}

// NeighborSupports returns the current support of the neighbors of a node.
func (sg *SupportGrid) NeighborSupports(nodeID int64) []float64 {
	var supports []float64
	for _, id := range sg.Graph.NeighborIDs(nodeID) {
		if agent, ok := sg.AgentMap[id]; ok {
			supports = append(supports, agent.CurSupport)
		}
	}
	return supports
}

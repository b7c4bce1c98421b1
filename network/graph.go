package network

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// NodeAttrs holds the annotation of one node: its identity trait and its
// initial support level.
type NodeAttrs struct {
	Minority bool
	Support  float64
}

// Graph is an undirected topology with per-node attributes, produced by the
// generator and consumed exactly once by the simulation engine.
type Graph struct {
	Topology *simple.UndirectedGraph
	Attrs    map[int64]*NodeAttrs
}

// NewGraph wraps a sampled topology with an empty attribute table.
func NewGraph(topology *simple.UndirectedGraph) *Graph {
	return &Graph{
		Topology: topology,
		Attrs:    make(map[int64]*NodeAttrs),
	}
}

// NodeCount returns the number of nodes in the topology.
func (g *Graph) NodeCount() int {
	return g.Topology.Nodes().Len()
}

// MinorityCount counts nodes flagged with the minority trait.
func (g *Graph) MinorityCount() int {
	count := 0
	for _, attrs := range g.Attrs {
		if attrs.Minority {
			count++
		}
	}
	return count
}

// NeighborIDs returns the IDs of the nodes adjacent to id, in ascending
// order so downstream accumulation stays deterministic.
func (g *Graph) NeighborIDs(id int64) []int64 {
	var ids []int64
	neighbors := g.Topology.From(id)
	for neighbors.Next() {
		ids = append(ids, neighbors.Node().ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NodeIDs returns all node IDs in ascending order.
func (g *Graph) NodeIDs() []int64 {
	ids := make([]int64, 0, g.NodeCount())
	nodes := g.Topology.Nodes()
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

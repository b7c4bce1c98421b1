package network

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/graph/simple"
)

// NetworkXGraph is the engine-facing network file layout, compatible with
// NetworkX adjacency documents. Node attribute maps carry the identity trait
// under "minority" and the initial support level under "support".
type NetworkXGraph struct {
	Adjacency map[int64]map[int64]any  `msgpack:"adjacency"`
	Directed  bool                     `msgpack:"directed"`
	Nodes     map[int64]map[string]any `msgpack:"nodes"`
	Graph     map[string]any           `msgpack:"graph"`
}

// SerializeGraph converts an annotated graph into the NetworkX layout.
func SerializeGraph(g *Graph) *NetworkXGraph {
	nxGraph := &NetworkXGraph{
		Adjacency: make(map[int64]map[int64]any),
		Directed:  false,
		Nodes:     make(map[int64]map[string]any),
		Graph:     make(map[string]any),
	}

	nodes := g.Topology.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		nxGraph.Adjacency[id] = make(map[int64]any)

		attrs := map[string]any{}
		if a := g.Attrs[id]; a != nil {
			attrs["minority"] = a.Minority
			attrs["support"] = a.Support
		}
		nxGraph.Nodes[id] = attrs
	}

	edges := g.Topology.Edges()
	for edges.Next() {
		edge := edges.Edge()
		from := edge.From().ID()
		to := edge.To().ID()

		// undirected: record both directions like NetworkX does
		nxGraph.Adjacency[from][to] = map[string]any{}
		nxGraph.Adjacency[to][from] = map[string]any{}
	}

	nxGraph.Graph["name"] = "movement-sim replicate network"

	return nxGraph
}

// DeserializeGraph rebuilds the annotated graph from the NetworkX layout.
func DeserializeGraph(nxGraph *NetworkXGraph) *Graph {
	topology := simple.NewUndirectedGraph()

	for id := range nxGraph.Nodes {
		topology.AddNode(simple.Node(id))
	}
	for id := range nxGraph.Adjacency {
		if _, exists := nxGraph.Nodes[id]; !exists {
			topology.AddNode(simple.Node(id))
		}
	}

	for from, targets := range nxGraph.Adjacency {
		for to := range targets {
			if from == to {
				continue
			}
			topology.SetEdge(topology.NewEdge(simple.Node(from), simple.Node(to)))
		}
	}

	g := NewGraph(topology)
	for id, attrs := range nxGraph.Nodes {
		nodeAttrs := &NodeAttrs{}
		if v, ok := attrs["minority"].(bool); ok {
			nodeAttrs.Minority = v
		}
		nodeAttrs.Support = asFloat(attrs["support"])
		g.Attrs[id] = nodeAttrs
	}

	return g
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}

// SaveGraphToFile writes the msgpack-encoded network file.
func SaveGraphToFile(g *Graph, filename string) error {
	data, err := msgpack.Marshal(SerializeGraph(g))
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// LoadGraphFromFile reads a msgpack-encoded network file.
func LoadGraphFromFile(filename string) (*Graph, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var nxGraph NetworkXGraph
	if err := msgpack.Unmarshal(data, &nxGraph); err != nil {
		return nil, err
	}

	return DeserializeGraph(&nxGraph), nil
}

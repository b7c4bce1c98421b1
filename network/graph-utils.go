package network

import "fmt"

func edgeKey(from, to int64) string {
	if from > to {
		from, to = to, from
	}
	return fmt.Sprintf("%d--%d", from, to)
}

// CompareGraphs reports whether two annotated graphs have the same nodes,
// edges and node attributes.
func CompareGraphs(g1, g2 *Graph) bool {
	ids1 := g1.NodeIDs()
	ids2 := g2.NodeIDs()
	if len(ids1) != len(ids2) {
		return false
	}
	for i := range ids1 {
		if ids1[i] != ids2[i] {
			return false
		}
	}

	edges1 := make(map[string]bool)
	edges2 := make(map[string]bool)

	iter1 := g1.Topology.Edges()
	for iter1.Next() {
		edge := iter1.Edge()
		edges1[edgeKey(edge.From().ID(), edge.To().ID())] = true
	}
	iter2 := g2.Topology.Edges()
	for iter2.Next() {
		edge := iter2.Edge()
		edges2[edgeKey(edge.From().ID(), edge.To().ID())] = true
	}

	if len(edges1) != len(edges2) {
		return false
	}
	for key := range edges1 {
		if !edges2[key] {
			return false
		}
	}

	for _, id := range ids1 {
		a1 := g1.Attrs[id]
		a2 := g2.Attrs[id]
		if (a1 == nil) != (a2 == nil) {
			return false
		}
		if a1 != nil && (a1.Minority != a2.Minority || a1.Support != a2.Support) {
			return false
		}
	}

	return true
}

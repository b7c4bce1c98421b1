package network

import (
	"math/rand"

	"gonum.org/v1/gonum/graph/simple"
)

// TopologySampler draws a random undirected topology over nodeCount nodes
// with a target mean degree.
type TopologySampler func(rng *rand.Rand, nodeCount int, degree int) *simple.UndirectedGraph

// n, p graph
//
// p = degree / (n - 1)
func SampleRandom(rng *rand.Rand, nodeCount int, degree int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()

	for i := 0; i < nodeCount; i++ {
		g.AddNode(simple.Node(i))
	}

	p := float64(degree) / float64(nodeCount-1)
	for i := 0; i < nodeCount; i++ {
		for j := i + 1; j < nodeCount; j++ {
			if rng.Float64() < p {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}

	return g
}

// Barabasi-Albert preferential attachment with m = max(1, degree/2) edges
// per arriving node.
func SamplePreferential(rng *rand.Rand, nodeCount int, degree int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()

	m := max(degree/2, 1)
	if m >= nodeCount {
		m = nodeCount - 1
	}

	for i := 0; i < nodeCount; i++ {
		g.AddNode(simple.Node(i))
	}

	// repeated-targets list: each node appears once per incident edge, so a
	// uniform draw from it is degree-proportional
	var targets []int64

	// seed clique over the first m+1 nodes
	for i := 0; i <= m && i < nodeCount; i++ {
		for j := i + 1; j <= m && j < nodeCount; j++ {
			g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			targets = append(targets, int64(i), int64(j))
		}
	}

	for i := m + 1; i < nodeCount; i++ {
		seen := make(map[int64]bool)
		var attached []int64
		for len(attached) < m {
			target := targets[rng.Intn(len(targets))]
			if target == int64(i) || seen[target] {
				continue
			}
			seen[target] = true
			attached = append(attached, target)
			g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(target)))
		}
		for _, target := range attached {
			targets = append(targets, int64(i), target)
		}
	}

	return g
}

const smallWorldRewireProbability = 0.1

// Watts-Strogatz ring lattice with k = degree neighbors and fixed rewiring
// probability.
func SampleSmallWorld(rng *rand.Rand, nodeCount int, degree int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()

	for i := 0; i < nodeCount; i++ {
		g.AddNode(simple.Node(i))
	}

	k := max(degree, 2)
	for i := 0; i < nodeCount; i++ {
		for j := 1; j <= k/2; j++ {
			neighbor := (i + j) % nodeCount
			if i != neighbor {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(neighbor)))
			}
		}
	}

	// random reconnect
	for i := 0; i < nodeCount; i++ {
		for j := 1; j <= k/2; j++ {
			if rng.Float64() >= smallWorldRewireProbability {
				continue
			}
			oldTarget := (i + j) % nodeCount
			if !g.HasEdgeBetween(int64(i), int64(oldTarget)) {
				continue
			}

			// find new target
			var newTarget int
			for attempt := 0; attempt < nodeCount; attempt++ {
				newTarget = rng.Intn(nodeCount)
				if newTarget != i && !g.HasEdgeBetween(int64(i), int64(newTarget)) {
					break
				}
				newTarget = -1
			}
			if newTarget < 0 {
				continue
			}

			// rewire
			g.RemoveEdge(int64(i), int64(oldTarget))
			g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(newTarget)))
		}
	}

	return g
}

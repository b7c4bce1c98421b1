package network

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// sortedNodeIDs returns node IDs in ascending order; gonum's node iteration
// order is map-backed, so policies sort first to stay deterministic under a
// seeded random source.
func sortedNodeIDs(g *simple.UndirectedGraph) []int64 {
	var ids []int64
	nodes := g.Nodes()
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TraitPolicy selects the node IDs that carry the minority trait.
type TraitPolicy func(rng *rand.Rand, g *simple.UndirectedGraph, minorityCount int) map[int64]bool

// SupportDist draws an initial support level for one node.
type SupportDist func(rng *rand.Rand, lambda float64) float64

// The configuration names a topology, trait policy and support distribution
// by string; these maps are the only dispatch mechanism, there is no runtime
// expression evaluation.
var topologyDefs = map[string]TopologySampler{
	"random":       SampleRandom,
	"preferential": SamplePreferential,
	"smallworld":   SampleSmallWorld,
}

var traitDefs = map[string]TraitPolicy{
	"random":       AssignTraitsRandom,
	"preferential": AssignTraitsPreferential,
}

var supportDistDefs = map[string]SupportDist{

	"uniform": func(rng *rand.Rand, lambda float64) float64 {
		return rng.Float64()
	},

	"exponential": func(rng *rand.Rand, lambda float64) float64 {
		if lambda <= 0 {
			lambda = 1
		}
		return math.Min(rng.ExpFloat64()/lambda, 1)
	},
}

// Topology resolves a topology sampler by configuration name.
func Topology(name string) (TopologySampler, error) {
	sampler, ok := topologyDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown network_type %q", name)
	}
	return sampler, nil
}

// Trait resolves a trait-assignment policy by configuration name.
func Trait(name string) (TraitPolicy, error) {
	policy, ok := traitDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown trait policy %q", name)
	}
	return policy, nil
}

// TraitForHomophily maps the homophily flag to a trait policy: with
// homophily the trait correlates with topology position (degree), without it
// the trait is assigned uniformly.
func TraitForHomophily(homophily bool) TraitPolicy {
	if homophily {
		return AssignTraitsPreferential
	}
	return AssignTraitsRandom
}

// Support resolves a support distribution by configuration name.
func Support(name string) (SupportDist, error) {
	dist, ok := supportDistDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown support_dist %q", name)
	}
	return dist, nil
}

// AssignTraitsRandom flags a uniform random subset of minorityCount nodes.
func AssignTraitsRandom(rng *rand.Rand, g *simple.UndirectedGraph, minorityCount int) map[int64]bool {
	ids := sortedNodeIDs(g)

	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	minority := make(map[int64]bool)
	for i := 0; i < minorityCount && i < len(ids); i++ {
		minority[ids[i]] = true
	}
	return minority
}

// AssignTraitsPreferential flags the minorityCount highest-degree nodes, so
// the trait clusters around the topologically central positions.
func AssignTraitsPreferential(rng *rand.Rand, g *simple.UndirectedGraph, minorityCount int) map[int64]bool {
	ids := sortedNodeIDs(g)
	degrees := make([]float64, 0, len(ids))
	for _, id := range ids {
		degrees = append(degrees, float64(g.From(id).Len()))
	}

	finder := NewTopKFinder(minorityCount)
	minority := make(map[int64]bool)
	for _, idx := range finder.FindTopK(degrees, minorityCount) {
		minority[ids[idx]] = true
	}
	return minority
}

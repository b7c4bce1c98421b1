package network

import (
	"fmt"
	"math/rand"
)

// GenerateOptions collects the inputs of one replicate graph.
type GenerateOptions struct {
	NodeCount     int
	MinorityCount int
	Degree        int
	Lambda        float64

	Topology TopologySampler
	Trait    TraitPolicy
	Support  SupportDist
}

// Generate samples one annotated replicate graph. It is a pure function of
// its options plus the passed random source, so seeding rng beforehand makes
// the output deterministic and repeated calls yield independent replicates.
func Generate(rng *rand.Rand, opt GenerateOptions) (*Graph, error) {
	if opt.NodeCount <= 0 {
		return nil, fmt.Errorf("node count must be positive, got %d", opt.NodeCount)
	}
	if opt.MinorityCount < 0 || opt.MinorityCount > opt.NodeCount {
		return nil, fmt.Errorf("minority count %d out of range [0,%d]", opt.MinorityCount, opt.NodeCount)
	}
	if opt.Topology == nil || opt.Trait == nil || opt.Support == nil {
		return nil, fmt.Errorf("topology, trait and support policies are all required")
	}

	topology := opt.Topology(rng, opt.NodeCount, opt.Degree)
	g := NewGraph(topology)

	minority := opt.Trait(rng, topology, opt.MinorityCount)

	// assign in ascending node order so a seeded rng reproduces the graph
	for _, id := range g.NodeIDs() {
		g.Attrs[id] = &NodeAttrs{
			Minority: minority[id],
			Support:  opt.Support(rng, opt.Lambda),
		}
	}

	return g, nil
}

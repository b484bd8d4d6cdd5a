// Package randgraph generates random ch.InputGraph instances for testing and
// benchmarking the preparation pipeline against graph shapes that don't
// depend on any fixture file.
package randgraph

import (
	"math/rand"

	"github.com/easbar/fast-paths/pkg/ch"
)

// Build returns a frozen random graph with numNodes nodes and approximately
// meanDegree*numNodes edges. Edges are drawn uniformly at random (including
// self-loops, which InputGraph.AddEdge rejects and Build does not count, and
// duplicates, which InputGraph.Freeze removes), with weights in [1, 100), so
// callers exercising the loop-skipping and dedup paths of InputGraph don't
// need to construct those cases by hand.
func Build(rng *rand.Rand, numNodes int, meanDegree float64) *ch.InputGraph {
	numEdges := int(meanDegree * float64(numNodes))
	g := ch.NewInputGraph()
	added := 0
	for added < numEdges {
		from := ch.NodeId(rng.Intn(numNodes))
		to := ch.NodeId(rng.Intn(numNodes))
		weight := ch.Weight(1 + rng.Intn(99))
		added += g.AddEdge(from, to, weight)
	}
	g.Freeze()
	return g
}

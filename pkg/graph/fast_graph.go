// Package graph holds the immutable, query-time Contraction Hierarchies
// representation (FastGraph) produced by pkg/ch's preparation pipeline, plus
// the on-disk encodings of it.
package graph

import "github.com/easbar/fast-paths/pkg/chcore"

type (
	NodeId = chcore.NodeId
	EdgeId = chcore.EdgeId
	Weight = chcore.Weight
)

const (
	InvalidNode = chcore.InvalidNode
	InvalidEdge = chcore.InvalidEdge
	WeightMax   = chcore.WeightMax
	WeightZero  = chcore.WeightZero
)

// FastGraphEdge is one entry of a FastGraph's forward or backward edge array.
//
// BaseNode is the CH-level origin of this edge: the node whose rank's slice
// contains it. It is technically redundant for routing (the caller always
// knows which node it is expanding from) but is required to reconstruct the
// traversal order during shortcut unpacking.
//
// A plain (non-shortcut) edge has both ReplacedInEdge and ReplacedOutEdge set
// to InvalidEdge. A shortcut has both set to real EdgeIds identifying the
// pair of edges, incident to the shortcut's center node, that together
// reconstruct it.
type FastGraphEdge struct {
	BaseNode        NodeId
	AdjNode         NodeId
	Weight          Weight
	ReplacedInEdge  EdgeId
	ReplacedOutEdge EdgeId
}

// IsShortcut reports whether this edge is a shortcut, i.e. whether it has
// children to unpack. Panics if exactly one of the two replaced-edge fields
// is set, since that violates the both-or-neither invariant.
func (e FastGraphEdge) IsShortcut() bool {
	inInvalid := e.ReplacedInEdge == InvalidEdge
	outInvalid := e.ReplacedOutEdge == InvalidEdge
	if inInvalid != outInvalid {
		panic("fast graph edge has exactly one replaced-edge field set")
	}
	return !inInvalid
}

// FastGraph is the immutable, rank-indexed Contraction Hierarchies graph used
// to answer shortest-path queries. It is built once by pkg/ch and then freely
// shareable for read-only use; queries against it go through a
// pkg/routing.PathCalculator, which holds all mutable per-query state.
type FastGraph struct {
	numNodes int

	// Ranks[node] is the contraction order of node: 0 was contracted first,
	// NumNodes()-1 last. Queries only traverse edges going from lower to
	// higher rank.
	Ranks []NodeId

	// EdgesFwd/EdgesBwd are sorted by the base node's rank; each base node's
	// edges occupy a contiguous slice. FirstEdgeIdsFwd/FirstEdgeIdsBwd have
	// length NumNodes()+1: for a node of rank r, its forward slice is
	// [FirstEdgeIdsFwd[r], FirstEdgeIdsFwd[r+1]), and likewise backward.
	EdgesFwd        []FastGraphEdge
	FirstEdgeIdsFwd []EdgeId
	EdgesBwd        []FastGraphEdge
	FirstEdgeIdsBwd []EdgeId
}

// NewFastGraph returns a FastGraph with all-zero state for n nodes, ready to
// be filled in by a builder.
func NewFastGraph(n int) *FastGraph {
	return &FastGraph{
		numNodes:        n,
		Ranks:           make([]NodeId, n),
		FirstEdgeIdsFwd: make([]EdgeId, n+1),
		FirstEdgeIdsBwd: make([]EdgeId, n+1),
	}
}

// NumNodes returns the number of nodes in the graph.
func (g *FastGraph) NumNodes() int {
	return g.numNodes
}

// NumOutEdges returns the total number of forward edges (original + shortcuts).
func (g *FastGraph) NumOutEdges() int {
	return len(g.EdgesFwd)
}

// NumInEdges returns the total number of backward edges (original + shortcuts).
func (g *FastGraph) NumInEdges() int {
	return len(g.EdgesBwd)
}

// NumShortcuts returns how many of the forward edges are shortcuts (as
// opposed to edges carried over unchanged from the input graph). This is a
// standard health metric for a contracted hierarchy: a shortcut ratio well
// above 1 usually means the node ordering is poor or the graph is unusually
// dense.
func (g *FastGraph) NumShortcuts() int {
	n := 0
	for _, e := range g.EdgesFwd {
		if e.IsShortcut() {
			n++
		}
	}
	return n
}

// BeginOutEdges returns the first forward edge id of node.
func (g *FastGraph) BeginOutEdges(node NodeId) EdgeId {
	return g.FirstEdgeIdsFwd[g.Ranks[node]]
}

// EndOutEdges returns one past the last forward edge id of node.
func (g *FastGraph) EndOutEdges(node NodeId) EdgeId {
	return g.FirstEdgeIdsFwd[g.Ranks[node]+1]
}

// BeginInEdges returns the first backward edge id of node.
func (g *FastGraph) BeginInEdges(node NodeId) EdgeId {
	return g.FirstEdgeIdsBwd[g.Ranks[node]]
}

// EndInEdges returns one past the last backward edge id of node.
func (g *FastGraph) EndInEdges(node NodeId) EdgeId {
	return g.FirstEdgeIdsBwd[g.Ranks[node]+1]
}

// GetNodeOrdering returns the inverse permutation of Ranks: ordering[r] is
// the node contracted at rank r. This can be fed back into a fixed-order
// build to reproduce the same hierarchy cheaply.
func (g *FastGraph) GetNodeOrdering() []NodeId {
	ordering := make([]NodeId, g.numNodes)
	for node, rank := range g.Ranks {
		ordering[rank] = NodeId(node)
	}
	return ordering
}

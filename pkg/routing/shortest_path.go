// Package routing answers shortest-path queries against a graph.FastGraph
// built by pkg/ch: bidirectional Dijkstra restricted to upward edges, with
// stall-on-demand pruning and recursive shortcut unpacking.
package routing

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

// ShortestPath is the result of a query: the node sequence from Source to
// Target (inclusive of both ends) and its total Weight.
//
// Equality (Equal) deliberately ignores Nodes: when multiple node sequences
// achieve the same optimal weight, callers should rely on weight-equivalence
// rather than on any particular sequence being returned.
type ShortestPath struct {
	Source NodeId
	Target NodeId
	Weight Weight
	Nodes  []NodeId
}

// NewShortestPath builds a ShortestPath from its fields.
func NewShortestPath(source, target NodeId, weight Weight, nodes []NodeId) ShortestPath {
	return ShortestPath{Source: source, Target: target, Weight: weight, Nodes: nodes}
}

// None returns the distinguished "no path" value for a source/target pair.
func None(source, target NodeId) ShortestPath {
	return ShortestPath{Source: source, Target: target, Weight: WeightMax}
}

// Singular returns the trivial path from a node to itself.
func Singular(node NodeId) ShortestPath {
	return ShortestPath{Source: node, Target: node, Weight: WeightZero, Nodes: []NodeId{node}}
}

// IsFound reports whether this path represents an actual route (as opposed
// to the result of None).
func (p ShortestPath) IsFound() bool {
	return p.Weight != WeightMax
}

// Equal compares only Source, Target and Weight, not Nodes.
func (p ShortestPath) Equal(other ShortestPath) bool {
	return p.Source == other.Source && p.Target == other.Target && p.Weight == other.Weight
}

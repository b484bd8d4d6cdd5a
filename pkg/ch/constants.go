// Package ch implements Contraction Hierarchies preprocessing: turning a plain
// directed, non-negative-weight graph into a FastGraph that can answer
// shortest-path queries many times faster than running Dijkstra from scratch.
package ch

import "github.com/easbar/fast-paths/pkg/chcore"

// These are re-exported from pkg/chcore so that callers of this package's
// preparation API never need to import chcore directly.
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

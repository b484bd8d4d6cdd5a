// Package chcore holds the small index/weight types shared by the
// preparation pipeline (pkg/ch), the fast-graph storage layer (pkg/graph) and
// the query engine (pkg/routing), so that none of them needs to import
// another to agree on a common id type.
package chcore

import "math"

// NodeId identifies a node by its position in [0, N).
type NodeId = uint32

// EdgeId identifies an edge by its position within one of a fast graph's
// edge arrays.
type EdgeId = uint32

// Weight is an additive edge/path cost. Callers must keep individual edge
// weights well below WeightMax/2 so that summing two of them along a path
// cannot overflow.
type Weight = uint32

const (
	// InvalidNode is the sentinel NodeId meaning "no such node".
	InvalidNode NodeId = math.MaxUint32
	// InvalidEdge is the sentinel EdgeId meaning "no such edge".
	InvalidEdge EdgeId = math.MaxUint32
	// WeightMax represents "infinity" / "not reachable".
	WeightMax Weight = math.MaxUint32
	// WeightZero is the additive identity.
	WeightZero Weight = 0
)

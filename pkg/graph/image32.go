package graph

// FastGraph32 is a portable, fixed-32-bit-width image of a FastGraph,
// suitable for exchange with other 32-bit implementations of the same
// on-disk format (the reference this package was ported from runs on
// 64-bit-native ids and projects down to u32 for interchange). Since
// NodeId/EdgeId/Weight here are already uint32-backed, building a
// FastGraph32 is a representational copy rather than a width reduction --
// it exists so the interchange format and its InvalidNode/InvalidEdge
// sentinel convention are explicit and independently testable, rather than
// implicit in FastGraph's native types.
type FastGraph32 struct {
	NumNodes int32
	Ranks    []uint32

	EdgesFwd        []FastGraphEdge32
	FirstEdgeIdsFwd []uint32
	EdgesBwd        []FastGraphEdge32
	FirstEdgeIdsBwd []uint32
}

// FastGraphEdge32 is the 32-bit-image counterpart of FastGraphEdge.
type FastGraphEdge32 struct {
	BaseNode        uint32
	AdjNode         uint32
	Weight          uint32
	ReplacedInEdge  uint32
	ReplacedOutEdge uint32
}

const invalid32 = ^uint32(0)

// NewFastGraph32 converts fg to its 32-bit image. NodeId/EdgeId/Weight are
// already uint32-backed, so every id and weight is copied unchanged (with
// InvalidEdge mapped explicitly to invalid32); the only range check is on the
// node count, which panics if it does not fit in an int32.
func NewFastGraph32(fg *FastGraph) FastGraph32 {
	g32 := FastGraph32{
		NumNodes:        toI32(fg.NumNodes()),
		Ranks:           make([]uint32, len(fg.Ranks)),
		EdgesFwd:        make([]FastGraphEdge32, len(fg.EdgesFwd)),
		FirstEdgeIdsFwd: make([]uint32, len(fg.FirstEdgeIdsFwd)),
		EdgesBwd:        make([]FastGraphEdge32, len(fg.EdgesBwd)),
		FirstEdgeIdsBwd: make([]uint32, len(fg.FirstEdgeIdsBwd)),
	}
	for i, r := range fg.Ranks {
		g32.Ranks[i] = toU32(r)
	}
	for i, e := range fg.EdgesFwd {
		g32.EdgesFwd[i] = edgeTo32(e)
	}
	for i, e := range fg.EdgesBwd {
		g32.EdgesBwd[i] = edgeTo32(e)
	}
	for i, v := range fg.FirstEdgeIdsFwd {
		g32.FirstEdgeIdsFwd[i] = toU32(v)
	}
	for i, v := range fg.FirstEdgeIdsBwd {
		g32.FirstEdgeIdsBwd[i] = toU32(v)
	}
	return g32
}

// ToFastGraph converts a FastGraph32 image back to a native FastGraph.
func (g32 FastGraph32) ToFastGraph() *FastGraph {
	fg := &FastGraph{
		numNodes:        int(g32.NumNodes),
		Ranks:           make([]NodeId, len(g32.Ranks)),
		EdgesFwd:        make([]FastGraphEdge, len(g32.EdgesFwd)),
		FirstEdgeIdsFwd: make([]EdgeId, len(g32.FirstEdgeIdsFwd)),
		EdgesBwd:        make([]FastGraphEdge, len(g32.EdgesBwd)),
		FirstEdgeIdsBwd: make([]EdgeId, len(g32.FirstEdgeIdsBwd)),
	}
	for i, r := range g32.Ranks {
		fg.Ranks[i] = NodeId(r)
	}
	for i, e := range g32.EdgesFwd {
		fg.EdgesFwd[i] = edgeFrom32(e)
	}
	for i, e := range g32.EdgesBwd {
		fg.EdgesBwd[i] = edgeFrom32(e)
	}
	for i, v := range g32.FirstEdgeIdsFwd {
		fg.FirstEdgeIdsFwd[i] = EdgeId(v)
	}
	for i, v := range g32.FirstEdgeIdsBwd {
		fg.FirstEdgeIdsBwd[i] = EdgeId(v)
	}
	return fg
}

func edgeTo32(e FastGraphEdge) FastGraphEdge32 {
	return FastGraphEdge32{
		BaseNode:        toU32(e.BaseNode),
		AdjNode:         toU32(e.AdjNode),
		Weight:          toU32(e.Weight),
		ReplacedInEdge:  edgeIDTo32(e.ReplacedInEdge),
		ReplacedOutEdge: edgeIDTo32(e.ReplacedOutEdge),
	}
}

func edgeFrom32(e FastGraphEdge32) FastGraphEdge {
	return FastGraphEdge{
		BaseNode:        NodeId(e.BaseNode),
		AdjNode:         NodeId(e.AdjNode),
		Weight:          Weight(e.Weight),
		ReplacedInEdge:  EdgeId(e.ReplacedInEdge),
		ReplacedOutEdge: EdgeId(e.ReplacedOutEdge),
	}
}

// edgeIDTo32 preserves the InvalidEdge sentinel across the conversion
// explicitly, rather than relying on it being bitwise invariant (it is,
// today, but the round trip should not depend on that coincidence).
func edgeIDTo32(id EdgeId) uint32 {
	if id == InvalidEdge {
		return invalid32
	}
	return toU32(id)
}

func toU32(v uint32) uint32 {
	return v
}

func toI32(n int) int32 {
	if n > (1<<31)-1 || n < 0 {
		panic("graph: node count does not fit in int32 image")
	}
	return int32(n)
}

package ch

// Arc is one entry of a PreparationGraph's adjacency lists. CenterNode is
// InvalidNode for an original input edge, or the node a shortcut skips over.
type Arc struct {
	AdjNode    NodeId
	Weight     Weight
	CenterNode NodeId
}

// PreparationGraph is the mutable in/out adjacency structure the contraction
// process works on. It only exists during preparation; once the FastGraph is
// built it is discarded.
type PreparationGraph struct {
	outEdges [][]Arc
	inEdges  [][]Arc
	numNodes int
}

// NewPreparationGraph returns an empty PreparationGraph for n nodes.
func NewPreparationGraph(n int) *PreparationGraph {
	return &PreparationGraph{
		outEdges: make([][]Arc, n),
		inEdges:  make([][]Arc, n),
		numNodes: n,
	}
}

// PreparationGraphFromInputGraph builds a PreparationGraph from a frozen
// InputGraph: each edge u->v of weight w produces an out-arc at u and an
// in-arc at v, both with CenterNode = InvalidNode. No further sorting is
// required since shortcut insertion only ever appends or updates in place.
func PreparationGraphFromInputGraph(g *InputGraph) *PreparationGraph {
	pg := NewPreparationGraph(g.NumNodes())
	for _, e := range g.Edges() {
		pg.AddEdge(e.From, e.To, e.Weight)
	}
	return pg
}

func (pg *PreparationGraph) assertValidNode(n NodeId) {
	if int(n) >= pg.numNodes {
		panic("invalid node id")
	}
}

// OutEdges returns node n's current outgoing arcs.
func (pg *PreparationGraph) OutEdges(n NodeId) []Arc {
	return pg.outEdges[n]
}

// InEdges returns node n's current incoming arcs.
func (pg *PreparationGraph) InEdges(n NodeId) []Arc {
	return pg.inEdges[n]
}

// NumNodes returns the number of nodes this PreparationGraph was built for.
func (pg *PreparationGraph) NumNodes() int {
	return pg.numNodes
}

// AddEdge adds a plain (non-shortcut) edge from -> to.
func (pg *PreparationGraph) AddEdge(from, to NodeId, weight Weight) {
	pg.addEdgeOrShortcut(from, to, weight, InvalidNode)
}

func (pg *PreparationGraph) addEdgeOrShortcut(from, to NodeId, weight Weight, center NodeId) {
	pg.assertValidNode(from)
	pg.assertValidNode(to)
	pg.outEdges[from] = append(pg.outEdges[from], Arc{AdjNode: to, Weight: weight, CenterNode: center})
	pg.inEdges[to] = append(pg.inEdges[to], Arc{AdjNode: from, Weight: weight, CenterNode: center})
}

// AddOrReduceEdge upserts an edge from -> to: if an arc from->to already
// exists with weight <= the given weight, it is left untouched (the existing
// arc already witnesses a path at least as good). Otherwise the existing arc
// (if any) is updated in place on both adjacency sides, or a new arc pair is
// added if none existed.
func (pg *PreparationGraph) AddOrReduceEdge(from, to NodeId, weight Weight, center NodeId) {
	if pg.reduceEdge(from, to, weight, center) {
		return
	}
	pg.addEdgeOrShortcut(from, to, weight, center)
}

// reduceEdge tries to update an existing from->to arc in place. Returns true
// if it found one (whether or not it actually changed the weight), false if
// no existing arc matched and the caller must add a new one.
func (pg *PreparationGraph) reduceEdge(from, to NodeId, weight Weight, center NodeId) bool {
	outs := pg.outEdges[from]
	for i := range outs {
		if outs[i].AdjNode == to {
			if outs[i].Weight <= weight {
				return true
			}
			outs[i].Weight = weight
			outs[i].CenterNode = center
			ins := pg.inEdges[to]
			for j := range ins {
				if ins[j].AdjNode == from {
					ins[j].Weight = weight
					ins[j].CenterNode = center
					return true
				}
			}
			panic("found matching out-edge but no matching in-edge")
		}
	}
	return false
}

// Disconnect removes every incidence of n from both adjacency sides, so that
// subsequent contraction no longer routes through n.
func (pg *PreparationGraph) Disconnect(n NodeId) {
	pg.assertValidNode(n)
	for _, arc := range pg.outEdges[n] {
		pg.removeInEdge(arc.AdjNode, n)
	}
	for _, arc := range pg.inEdges[n] {
		pg.removeOutEdge(arc.AdjNode, n)
	}
	pg.outEdges[n] = nil
	pg.inEdges[n] = nil
}

func (pg *PreparationGraph) removeInEdge(node, adj NodeId) {
	ins := pg.inEdges[node]
	removed := 0
	kept := ins[:0]
	for _, a := range ins {
		if a.AdjNode == adj && removed == 0 {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	if removed != 1 {
		panic("expected to remove exactly one in-edge")
	}
	pg.inEdges[node] = kept
}

func (pg *PreparationGraph) removeOutEdge(node, adj NodeId) {
	outs := pg.outEdges[node]
	removed := 0
	kept := outs[:0]
	for _, a := range outs {
		if a.AdjNode == adj && removed == 0 {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	if removed != 1 {
		panic("expected to remove exactly one out-edge")
	}
	pg.outEdges[node] = kept
}

package ch

import (
	"container/heap"
	"fmt"
	"log"

	"github.com/easbar/fast-paths/pkg/graph"
)

// FastGraphBuilder drives the contraction process that turns a frozen
// InputGraph into a graph.FastGraph.
type FastGraphBuilder struct {
	fastGraph      *graph.FastGraph
	numNodes       int
	centerNodesFwd []NodeId
	centerNodesBwd []NodeId
}

func newFastGraphBuilder(input *InputGraph) *FastGraphBuilder {
	return &FastGraphBuilder{
		fastGraph: graph.NewFastGraph(input.NumNodes()),
		numNodes:  input.NumNodes(),
	}
}

// Build prepares input using DefaultParams.
func Build(input *InputGraph) *graph.FastGraph {
	return BuildWithParams(input, DefaultParams())
}

// BuildWithParams prepares input, using params to drive the automatic
// node-ordering heuristic.
func BuildWithParams(input *InputGraph, params *Params) *graph.FastGraph {
	b := newFastGraphBuilder(input)
	b.runContraction(input, params)
	return b.fastGraph
}

// BuildWithOrder prepares input using a fixed node ordering (any permutation
// of the node ids), skipping the priority-queue-driven search for a good
// order. Returns an error if len(order) != input.NumNodes().
func BuildWithOrder(input *InputGraph, order []NodeId) (*graph.FastGraph, error) {
	return BuildWithOrderWithParams(input, order, DefaultParamsWithOrder())
}

// BuildWithOrderWithParams is like BuildWithOrder but allows overriding the
// witness-search settled-node cap used during contraction.
func BuildWithOrderWithParams(input *InputGraph, order []NodeId, params *ParamsWithOrder) (*graph.FastGraph, error) {
	if input.NumNodes() != len(order) {
		return nil, fmt.Errorf("the given order must have as many nodes as the input graph: order has %d, graph has %d", len(order), input.NumNodes())
	}
	b := newFastGraphBuilder(input)
	b.runContractionWithOrder(input, order, params)
	return b.fastGraph, nil
}

func (b *FastGraphBuilder) runContraction(input *InputGraph, params *Params) {
	prep := PreparationGraphFromInputGraph(input)
	ws := NewWitnessSearch(b.numNodes)
	levels := make([]NodeId, b.numNodes)

	pq := newOrderingQueue(b.numNodes)
	for node := 0; node < b.numNodes; node++ {
		priority := CalcRelevance(prep, params, ws, NodeId(node), 0, params.MaxSettledNodesInitialRelevance)
		pq.items[node] = &orderingEntry{node: NodeId(node), priority: priority, index: node}
		pq.byNode[node] = pq.items[node]
	}
	heap.Init(pq)

	rank := 0
	for pq.Len() > 0 {
		entry := heap.Pop(pq).(*orderingEntry)
		node := entry.node

		neighbors := map[NodeId]struct{}{}
		for _, out := range prep.OutEdges(node) {
			neighbors[out.AdjNode] = struct{}{}
			b.fastGraph.EdgesFwd = append(b.fastGraph.EdgesFwd, graph.FastGraphEdge{
				BaseNode: node, AdjNode: out.AdjNode, Weight: out.Weight,
				ReplacedInEdge: InvalidEdge, ReplacedOutEdge: InvalidEdge,
			})
			b.centerNodesFwd = append(b.centerNodesFwd, out.CenterNode)
		}
		b.fastGraph.FirstEdgeIdsFwd[rank+1] = EdgeId(b.fastGraph.NumOutEdges())

		for _, in := range prep.InEdges(node) {
			neighbors[in.AdjNode] = struct{}{}
			b.fastGraph.EdgesBwd = append(b.fastGraph.EdgesBwd, graph.FastGraphEdge{
				BaseNode: node, AdjNode: in.AdjNode, Weight: in.Weight,
				ReplacedInEdge: InvalidEdge, ReplacedOutEdge: InvalidEdge,
			})
			b.centerNodesBwd = append(b.centerNodesBwd, in.CenterNode)
		}
		b.fastGraph.FirstEdgeIdsBwd[rank+1] = EdgeId(b.fastGraph.NumInEdges())

		b.fastGraph.Ranks[node] = NodeId(rank)
		ContractNode(prep, ws, node, params.MaxSettledNodesContraction)

		for neighbor := range neighbors {
			if levels[node]+1 > levels[neighbor] {
				levels[neighbor] = levels[node] + 1
			}
			priority := CalcRelevance(prep, params, ws, neighbor, levels[neighbor], params.MaxSettledNodesNeighborRelevance)
			pq.update(neighbor, priority)
		}

		rank++
		if rank%50000 == 0 || rank == b.numNodes {
			log.Printf("contracted node %d / %d, num edges fwd: %d, num edges bwd: %d",
				rank, b.numNodes, b.fastGraph.NumOutEdges(), b.fastGraph.NumInEdges())
		}
	}
	b.finishContraction()
}

func (b *FastGraphBuilder) runContractionWithOrder(input *InputGraph, order []NodeId, params *ParamsWithOrder) {
	prep := PreparationGraphFromInputGraph(input)
	ws := NewWitnessSearch(b.numNodes)

	for rank, node := range order {
		if int(node) >= b.numNodes {
			panic(fmt.Sprintf("order contains invalid node id: %d", node))
		}
		for _, out := range prep.OutEdges(node) {
			b.fastGraph.EdgesFwd = append(b.fastGraph.EdgesFwd, graph.FastGraphEdge{
				BaseNode: node, AdjNode: out.AdjNode, Weight: out.Weight,
				ReplacedInEdge: InvalidEdge, ReplacedOutEdge: InvalidEdge,
			})
			b.centerNodesFwd = append(b.centerNodesFwd, out.CenterNode)
		}
		b.fastGraph.FirstEdgeIdsFwd[rank+1] = EdgeId(b.fastGraph.NumOutEdges())

		for _, in := range prep.InEdges(node) {
			b.fastGraph.EdgesBwd = append(b.fastGraph.EdgesBwd, graph.FastGraphEdge{
				BaseNode: node, AdjNode: in.AdjNode, Weight: in.Weight,
				ReplacedInEdge: InvalidEdge, ReplacedOutEdge: InvalidEdge,
			})
			b.centerNodesBwd = append(b.centerNodesBwd, in.CenterNode)
		}
		b.fastGraph.FirstEdgeIdsBwd[rank+1] = EdgeId(b.fastGraph.NumInEdges())

		b.fastGraph.Ranks[node] = NodeId(rank)
		ContractNode(prep, ws, node, params.MaxSettledNodesContractionWithOrder)

		if (rank+1)%50000 == 0 || rank+1 == b.numNodes {
			log.Printf("contracted node %d / %d, num edges fwd: %d, num edges bwd: %d",
				rank+1, b.numNodes, b.fastGraph.NumOutEdges(), b.fastGraph.NumInEdges())
		}
	}
	b.finishContraction()
}

// finishContraction resolves every shortcut's ReplacedInEdge/ReplacedOutEdge
// from its recorded center node, now that the whole fast graph has been
// materialized and lookups by (node, adj) are well defined.
func (b *FastGraphBuilder) finishContraction() {
	g := b.fastGraph
	for i := 0; i < b.numNodes; i++ {
		node := NodeId(i)
		for edgeID := g.BeginOutEdges(node); edgeID < g.EndOutEdges(node); edgeID++ {
			c := b.centerNodesFwd[edgeID]
			if c == InvalidNode {
				g.EdgesFwd[edgeID].ReplacedInEdge = InvalidEdge
				g.EdgesFwd[edgeID].ReplacedOutEdge = InvalidEdge
				continue
			}
			g.EdgesFwd[edgeID].ReplacedInEdge = b.getInEdgeId(c, node)
			g.EdgesFwd[edgeID].ReplacedOutEdge = b.getOutEdgeId(c, g.EdgesFwd[edgeID].AdjNode)
		}
	}
	for i := 0; i < b.numNodes; i++ {
		node := NodeId(i)
		for edgeID := g.BeginInEdges(node); edgeID < g.EndInEdges(node); edgeID++ {
			c := b.centerNodesBwd[edgeID]
			if c == InvalidNode {
				g.EdgesBwd[edgeID].ReplacedInEdge = InvalidEdge
				g.EdgesBwd[edgeID].ReplacedOutEdge = InvalidEdge
				continue
			}
			g.EdgesBwd[edgeID].ReplacedInEdge = b.getInEdgeId(c, g.EdgesBwd[edgeID].AdjNode)
			g.EdgesBwd[edgeID].ReplacedOutEdge = b.getOutEdgeId(c, node)
		}
	}
}

func (b *FastGraphBuilder) getOutEdgeId(node, adjNode NodeId) EdgeId {
	g := b.fastGraph
	for edgeID := g.BeginOutEdges(node); edgeID < g.EndOutEdges(node); edgeID++ {
		if g.EdgesFwd[edgeID].AdjNode == adjNode {
			return edgeID
		}
	}
	panic("could not find out-edge id")
}

func (b *FastGraphBuilder) getInEdgeId(node, adjNode NodeId) EdgeId {
	g := b.fastGraph
	for edgeID := g.BeginInEdges(node); edgeID < g.EndInEdges(node); edgeID++ {
		if g.EdgesBwd[edgeID].AdjNode == adjNode {
			return edgeID
		}
	}
	panic("could not find in-edge id")
}

// orderingEntry is one slot of the automatic-ordering priority queue.
type orderingEntry struct {
	node     NodeId
	priority int
	index    int
}

// orderingQueue is an indexed min-heap over orderingEntry, supporting
// decrease-key via update() in O(log n) instead of a linear scan. Ties are
// broken deterministically by node id so that the resulting contraction
// order — and hence the built FastGraph — is reproducible for a given input,
// as required by the determinism property.
type orderingQueue struct {
	items  []*orderingEntry
	byNode []*orderingEntry // byNode[node] is nil once node has been popped
}

func newOrderingQueue(numNodes int) *orderingQueue {
	return &orderingQueue{
		items:  make([]*orderingEntry, numNodes),
		byNode: make([]*orderingEntry, numNodes),
	}
}

func (q *orderingQueue) Len() int { return len(q.items) }

func (q *orderingQueue) Less(i, j int) bool {
	if q.items[i].priority != q.items[j].priority {
		return q.items[i].priority < q.items[j].priority
	}
	return q.items[i].node < q.items[j].node
}

func (q *orderingQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *orderingQueue) Push(x any) {
	entry := x.(*orderingEntry)
	entry.index = len(q.items)
	q.items = append(q.items, entry)
}

func (q *orderingQueue) Pop() any {
	n := len(q.items)
	entry := q.items[n-1]
	q.items[n-1] = nil
	q.items = q.items[:n-1]
	q.byNode[entry.node] = nil
	return entry
}

// update changes node's priority and restores the heap invariant.
func (q *orderingQueue) update(node NodeId, priority int) {
	entry := q.byNode[node]
	entry.priority = priority
	heap.Fix(q, entry.index)
}

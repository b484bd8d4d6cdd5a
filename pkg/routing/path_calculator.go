package routing

import (
	"github.com/easbar/fast-paths/pkg/graph"
)

// searchData is the per-node state kept for one direction of a query: whether
// it has been settled, the best known tentative weight, and enough of a
// predecessor pointer (parent node plus the edge used to reach it) to
// reconstruct the path once the two searches meet.
type searchData struct {
	settled bool
	weight  Weight
	parent  NodeId
	incEdge EdgeId
}

// Weighted is a (node, weight) pair describing one of several simultaneous
// sources or targets for a query, e.g. the result of snapping a coordinate to
// the two endpoints of its nearest edge.
type Weighted struct {
	Node   NodeId
	Weight Weight
}

// PathCalculator answers shortest-path queries against a graph.FastGraph: a
// bidirectional Dijkstra search restricted to upward edges (from lower rank
// to higher rank), with stall-on-demand pruning and shortcut unpacking.
//
// A PathCalculator holds mutable per-query scratch state sized for one
// specific FastGraph's node count. It is not safe for concurrent use, but it
// is designed to be reused across many queries against the same graph: every
// field is reset at the start of CalcPath rather than reallocated.
type PathCalculator struct {
	numNodes int
	dataFwd  []searchData
	dataBwd  []searchData
	validFwd *validFlags
	validBwd *validFlags
	heapFwd  nodeHeap
	heapBwd  nodeHeap

	// settledFwd/settledBwd count nodes popped and expanded (not merely
	// pushed) by the last query, one counter per search direction. Exposed
	// via SettledNodes for callers that want to surface search-effort
	// diagnostics, e.g. an HTTP API reporting how much of the hierarchy a
	// query actually touched.
	settledFwd int
	settledBwd int
}

// NewPathCalculator allocates a PathCalculator sized for a graph with
// numNodes nodes.
func NewPathCalculator(numNodes int) *PathCalculator {
	dataFwd := make([]searchData, numNodes)
	dataBwd := make([]searchData, numNodes)
	for i := range dataFwd {
		dataFwd[i] = searchData{weight: WeightMax, parent: InvalidNode, incEdge: InvalidEdge}
		dataBwd[i] = searchData{weight: WeightMax, parent: InvalidNode, incEdge: InvalidEdge}
	}
	return &PathCalculator{
		numNodes: numNodes,
		dataFwd:  dataFwd,
		dataBwd:  dataBwd,
		validFwd: newValidFlags(numNodes),
		validBwd: newValidFlags(numNodes),
	}
}

// CreateCalculator allocates a PathCalculator sized for fg.
func CreateCalculator(fg *graph.FastGraph) *PathCalculator {
	return NewPathCalculator(fg.NumNodes())
}

// CalcPath finds the shortest path from start to end in fg. The returned
// ShortestPath's IsFound method reports whether a path exists.
func (c *PathCalculator) CalcPath(fg *graph.FastGraph, start, end NodeId) ShortestPath {
	return c.CalcPathMultipleSources(fg, []Weighted{{Node: start, Weight: WeightZero}}, end)
}

// CalcPathMultipleSources finds the cheapest path from any of starts (each
// already carrying an initial weight, e.g. the distance from a query
// coordinate to a snapped edge endpoint) to end.
func (c *PathCalculator) CalcPathMultipleSources(fg *graph.FastGraph, starts []Weighted, end NodeId) ShortestPath {
	return c.calcPathMultipleEndpoints(fg, starts, []Weighted{{Node: end, Weight: WeightZero}})
}

// CalcPathMultipleTargets finds the cheapest path from start to any of ends.
func (c *PathCalculator) CalcPathMultipleTargets(fg *graph.FastGraph, start NodeId, ends []Weighted) ShortestPath {
	return c.calcPathMultipleEndpoints(fg, []Weighted{{Node: start, Weight: WeightZero}}, ends)
}

// CalcPathMultipleSourcesAndTargets finds the cheapest path from any of
// starts to any of ends.
func (c *PathCalculator) CalcPathMultipleSourcesAndTargets(fg *graph.FastGraph, starts, ends []Weighted) ShortestPath {
	return c.calcPathMultipleEndpoints(fg, starts, ends)
}

// calcPathMultipleEndpoints is the general bidirectional search: one or more
// weighted sources feed the forward search, one or more weighted targets feed
// the backward search, and the two alternate single steps until both heaps
// run dry or can no longer beat the current best meeting weight.
//
// The actually realized source and target node — whichever of possibly
// several candidates the optimal path turned out to start and end at — are
// not assumed in advance; extractNodes discovers them from where the parent
// chains bottom out.
func (c *PathCalculator) calcPathMultipleEndpoints(fg *graph.FastGraph, starts, ends []Weighted) ShortestPath {
	if fg.NumNodes() != c.numNodes {
		panic("given graph has invalid node count")
	}
	for _, s := range starts {
		if int(s.Node) >= c.numNodes {
			panic("invalid start node")
		}
	}
	for _, e := range ends {
		if int(e.Node) >= c.numNodes {
			panic("invalid end node")
		}
	}
	if len(ends) == 0 {
		panic("at least one target is required")
	}

	c.heapFwd.Reset()
	c.heapBwd.Reset()
	c.validFwd.invalidateAll()
	c.validBwd.invalidateAll()
	c.settledFwd = 0
	c.settledBwd = 0

	bestWeight := WeightMax
	meetingNode := InvalidNode
	reportedTarget := ends[0].Node

	// A source that is itself one of the targets is a zero-hop-search
	// candidate: seed the best known weight from it before either search
	// has taken a single step.
	for _, s := range starts {
		if s.Weight >= WeightMax {
			continue
		}
		for _, e := range ends {
			if e.Node != s.Node {
				continue
			}
			total := s.Weight + e.Weight
			if total < bestWeight {
				bestWeight = total
				meetingNode = s.Node
				reportedTarget = e.Node
			}
		}
	}

	for _, s := range starts {
		if s.Weight < WeightMax {
			c.updateNodeFwd(s.Node, s.Weight, InvalidNode, InvalidEdge)
			c.heapFwd.Push(s.Weight, s.Node)
		}
	}
	for _, e := range ends {
		if e.Weight < WeightMax {
			c.updateNodeBwd(e.Node, e.Weight, InvalidNode, InvalidEdge)
			c.heapBwd.Push(e.Weight, e.Node)
		}
	}

	for c.heapFwd.Len() > 0 || c.heapBwd.Len() > 0 {
		if w, node, ok := c.stepFwd(fg, bestWeight); ok {
			if c.validBwd.isValid(node) && w+c.dataBwd[node].weight < bestWeight {
				bestWeight = w + c.dataBwd[node].weight
				meetingNode = node
			}
		}
		if w, node, ok := c.stepBwd(fg, bestWeight); ok {
			if c.validFwd.isValid(node) && w+c.dataFwd[node].weight < bestWeight {
				bestWeight = w + c.dataFwd[node].weight
				meetingNode = node
			}
		}
	}

	if meetingNode == InvalidNode {
		if len(starts) > 0 {
			return None(starts[0].Node, reportedTarget)
		}
		return None(InvalidNode, reportedTarget)
	}
	if bestWeight >= WeightMax {
		panic("meeting node found but best weight is not finite")
	}

	nodes, source, target := c.extractNodes(fg, meetingNode)
	return NewShortestPath(source, target, bestWeight, nodes)
}

// stepFwd advances the forward search by exactly one settled node (skipping
// any number of stale or already-settled heap entries first), returning the
// weight and node it settled so the caller can update the meeting-point
// tracking. ok is false if the heap ran dry or its minimum already exceeds
// bestWeight.
func (c *PathCalculator) stepFwd(fg *graph.FastGraph, bestWeight Weight) (Weight, NodeId, bool) {
	for {
		curr, ok := c.heapFwd.Pop()
		if !ok {
			return 0, 0, false
		}
		if c.isSettledFwd(curr.node) {
			continue
		}
		if curr.weight > bestWeight {
			return 0, 0, false
		}
		if c.isStallableFwd(fg, curr) {
			continue
		}
		for edgeID := fg.BeginOutEdges(curr.node); edgeID < fg.EndOutEdges(curr.node); edgeID++ {
			adj := fg.EdgesFwd[edgeID].AdjNode
			weight := curr.weight + fg.EdgesFwd[edgeID].Weight
			if weight < c.getWeightFwd(adj) {
				c.updateNodeFwd(adj, weight, curr.node, edgeID)
				c.heapFwd.Push(weight, adj)
			}
		}
		c.dataFwd[curr.node].settled = true
		c.settledFwd++
		return curr.weight, curr.node, true
	}
}

// stepBwd is stepFwd's mirror image over the backward edge array.
func (c *PathCalculator) stepBwd(fg *graph.FastGraph, bestWeight Weight) (Weight, NodeId, bool) {
	for {
		curr, ok := c.heapBwd.Pop()
		if !ok {
			return 0, 0, false
		}
		if c.isSettledBwd(curr.node) {
			continue
		}
		if curr.weight > bestWeight {
			return 0, 0, false
		}
		if c.isStallableBwd(fg, curr) {
			continue
		}
		for edgeID := fg.BeginInEdges(curr.node); edgeID < fg.EndInEdges(curr.node); edgeID++ {
			adj := fg.EdgesBwd[edgeID].AdjNode
			weight := curr.weight + fg.EdgesBwd[edgeID].Weight
			if weight < c.getWeightBwd(adj) {
				c.updateNodeBwd(adj, weight, curr.node, edgeID)
				c.heapBwd.Push(weight, adj)
			}
		}
		c.dataBwd[curr.node].settled = true
		c.settledBwd++
		return curr.weight, curr.node, true
	}
}

// SettledNodes reports how many nodes the forward and backward searches of
// the most recently completed query each settled. Meant for diagnostics, not
// correctness: it reflects internal search effort, which depends on stalling
// and the bidirectional meeting point, not on path length.
func (c *PathCalculator) SettledNodes() (fwd, bwd int) {
	return c.settledFwd, c.settledBwd
}

// isStallableFwd reports whether curr can be skipped without affecting
// correctness: if some already-reached forward neighbor, reached via the
// *backward* edge array (i.e. a node with a direct upward edge into curr),
// already beats curr.weight, then curr was only reached via a shortcut's
// suboptimal side and need not be expanded.
func (c *PathCalculator) isStallableFwd(fg *graph.FastGraph, curr heapItem) bool {
	for edgeID := fg.BeginInEdges(curr.node); edgeID < fg.EndInEdges(curr.node); edgeID++ {
		adj := fg.EdgesBwd[edgeID].AdjNode
		adjWeight := c.getWeightFwd(adj)
		if adjWeight == WeightMax {
			continue
		}
		if adjWeight+fg.EdgesBwd[edgeID].Weight < curr.weight {
			return true
		}
	}
	return false
}

// isStallableBwd mirrors isStallableFwd over the forward edge array.
func (c *PathCalculator) isStallableBwd(fg *graph.FastGraph, curr heapItem) bool {
	for edgeID := fg.BeginOutEdges(curr.node); edgeID < fg.EndOutEdges(curr.node); edgeID++ {
		adj := fg.EdgesFwd[edgeID].AdjNode
		adjWeight := c.getWeightBwd(adj)
		if adjWeight == WeightMax {
			continue
		}
		if adjWeight+fg.EdgesFwd[edgeID].Weight < curr.weight {
			return true
		}
	}
	return false
}

// extractNodes walks both parent chains from meetingNode back to their
// respective seeds, unpacking every shortcut edge along the way, and
// assembles the full, node-by-node path. The chain roots it walks to are the
// actually realized source and target: with several weighted sources or
// targets in play, whichever one the winning path actually starts or ends at
// is discovered here, not assumed in advance.
func (c *PathCalculator) extractNodes(fg *graph.FastGraph, meetingNode NodeId) (nodes []NodeId, source, target NodeId) {
	if meetingNode == InvalidNode {
		panic("no meeting node")
	}
	if !c.validFwd.isValid(meetingNode) || !c.validBwd.isValid(meetingNode) {
		panic("meeting node is not valid in both directions")
	}
	var result []NodeId
	node := meetingNode
	for c.dataFwd[node].incEdge != InvalidEdge {
		unpackFwd(fg, &result, c.dataFwd[node].incEdge, true)
		node = c.dataFwd[node].parent
	}
	reverseNodes(result)
	source = node
	node = meetingNode
	for c.dataBwd[node].incEdge != InvalidEdge {
		unpackBwd(fg, &result, c.dataBwd[node].incEdge, false)
		node = c.dataBwd[node].parent
	}
	target = node
	result = append(result, target)
	return result, source, target
}

func reverseNodes(nodes []NodeId) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}

func (c *PathCalculator) updateNodeFwd(node NodeId, weight Weight, parent NodeId, incEdge EdgeId) {
	c.validFwd.setValid(node)
	c.dataFwd[node] = searchData{settled: false, weight: weight, parent: parent, incEdge: incEdge}
}

func (c *PathCalculator) updateNodeBwd(node NodeId, weight Weight, parent NodeId, incEdge EdgeId) {
	c.validBwd.setValid(node)
	c.dataBwd[node] = searchData{settled: false, weight: weight, parent: parent, incEdge: incEdge}
}

func (c *PathCalculator) isSettledFwd(node NodeId) bool {
	return c.validFwd.isValid(node) && c.dataFwd[node].settled
}

func (c *PathCalculator) isSettledBwd(node NodeId) bool {
	return c.validBwd.isValid(node) && c.dataBwd[node].settled
}

func (c *PathCalculator) getWeightFwd(node NodeId) Weight {
	if c.validFwd.isValid(node) {
		return c.dataFwd[node].weight
	}
	return WeightMax
}

func (c *PathCalculator) getWeightBwd(node NodeId) Weight {
	if c.validBwd.isValid(node) {
		return c.dataBwd[node].weight
	}
	return WeightMax
}


package ch

// WitnessSearch is a bounded, stateful Dijkstra used during contraction to
// decide whether a shortcut is actually needed: it asks whether a path from
// startNode to some target exists, avoiding one particular node, whose weight
// does not exceed the direct weight through that node. Its state (the partial
// shortest-path tree) is reused across repeated FindMaxWeight calls sharing
// the same Init, and reset cheaply via ValidFlags between different start
// nodes.
type WitnessSearch struct {
	weight       []Weight
	settled      []bool
	valid        *ValidFlags
	heap         nodeHeap
	startNode    NodeId
	avoidNode    NodeId
	settledCount int
}

// NewWitnessSearch allocates a WitnessSearch for a graph of n nodes.
func NewWitnessSearch(n int) *WitnessSearch {
	return &WitnessSearch{
		weight:  make([]Weight, n),
		settled: make([]bool, n),
		valid:   NewValidFlags(n),
	}
}

// Init resets the search tree and seeds it at (start, weight 0), never
// expanding through avoid. start must differ from avoid and from InvalidNode.
func (w *WitnessSearch) Init(start, avoid NodeId) {
	if start == avoid {
		panic("witness search start node must differ from the avoided node")
	}
	if start == InvalidNode {
		panic("witness search start node must not be InvalidNode")
	}
	w.heap.Reset()
	w.valid.InvalidateAll()
	w.startNode = start
	w.avoidNode = avoid
	w.settledCount = 0
	w.setWeight(start, WeightZero)
	w.heap.Push(WeightZero, start)
}

func (w *WitnessSearch) setWeight(n NodeId, weight Weight) {
	w.weight[n] = weight
	w.settled[n] = false
	w.valid.SetValid(n)
}

func (w *WitnessSearch) getWeight(n NodeId) Weight {
	if !w.valid.IsValid(n) {
		return WeightMax
	}
	return w.weight[n]
}

// isSettled reports whether n was settled during the current generation.
// Stale settled flags from a previous Init are gated by ValidFlags the same
// way stale weights are, so InvalidateAll() clears both in O(1).
func (w *WitnessSearch) isSettled(n NodeId) bool {
	return w.valid.IsValid(n) && w.settled[n]
}

// FindMaxWeight continues the current search (started by the most recent
// Init) to determine an upper bound on the shortest start->target weight,
// without expanding through the avoided node.
//
// If target equals the start node, the answer is trivially 0. If target is
// already settled, or its current tentative weight is already <= weightLimit,
// the tree is not expanded further and that value is returned immediately.
// Otherwise the search continues until the heap's minimum weight exceeds
// weightLimit, the number of nodes settled since Init reaches settledLimit,
// the target settles, or the target's tentative weight drops to or below
// weightLimit.
//
// The returned value may exceed weightLimit if the search was cut off by one
// of the two limits before the target could be resolved either way; it is
// always a valid upper bound (WeightMax if the target is unreached so far).
func (w *WitnessSearch) FindMaxWeight(graph *PreparationGraph, target NodeId, weightLimit Weight, settledLimit int) Weight {
	if target == w.startNode {
		return WeightZero
	}
	if w.isSettled(target) || (w.valid.IsValid(target) && w.weight[target] <= weightLimit) {
		return w.getWeight(target)
	}
	for {
		top, ok := w.heap.Peek()
		if !ok || top.weight > weightLimit || w.settledCount >= settledLimit {
			return w.getWeight(target)
		}
		item, _ := w.heap.Pop()
		if w.isSettled(item.node) {
			continue
		}
		if item.weight > w.getWeight(item.node) {
			continue
		}
		w.settled[item.node] = true
		w.settledCount++
		if item.node == w.avoidNode {
			continue
		}
		for _, arc := range graph.OutEdges(item.node) {
			if arc.AdjNode == w.avoidNode {
				continue
			}
			newWeight := item.weight + arc.Weight
			if newWeight < w.getWeight(arc.AdjNode) {
				w.setWeight(arc.AdjNode, newWeight)
				w.heap.Push(newWeight, arc.AdjNode)
			}
		}
		if item.node == target {
			return w.getWeight(target)
		}
		if w.valid.IsValid(target) && w.weight[target] <= weightLimit {
			return w.getWeight(target)
		}
	}
}

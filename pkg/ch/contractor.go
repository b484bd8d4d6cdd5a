package ch

// Shortcut describes a candidate (or actually inserted) shortcut edge
// from -> to, of the given weight, skipping over centerNode.
type Shortcut struct {
	From, To, CenterNode NodeId
	Weight               Weight
}

// ContractNode removes all edges incident to node from the graph and adds
// whatever shortcuts between its neighbors are required to preserve every
// shortest path, then disconnects node so later contraction steps no longer
// route through it.
func ContractNode(graph *PreparationGraph, ws *WitnessSearch, node NodeId, maxSettledNodes int) {
	handleShortcuts(graph, ws, node, maxSettledNodes, func(s Shortcut) {
		graph.AddOrReduceEdge(s.From, s.To, s.Weight, s.CenterNode)
	})
	graph.Disconnect(node)
}

// CalcRelevance simulates contracting node, without mutating the graph, to
// count how many shortcuts it would produce, then combines that with the
// node's current degree and contraction-depth level into a scalar priority.
// Lower is a better contraction candidate.
func CalcRelevance(graph *PreparationGraph, params *Params, ws *WitnessSearch, node NodeId, level NodeId, maxSettledNodes int) int {
	numShortcuts := 0
	handleShortcuts(graph, ws, node, maxSettledNodes, func(Shortcut) {
		numShortcuts++
	})
	numEdges := len(graph.OutEdges(node)) + len(graph.InEdges(node))
	relevance := float64(params.HierarchyDepthFactor)*float64(level) +
		(float64(params.EdgeQuotientFactor)*float64(numShortcuts)+1.0)/(float64(numEdges)+1.0)
	return clampRelevance(relevance * 1000.0)
}

// handleShortcuts enumerates every (in_u, node, out_v) triple, checking via a
// witness search whether some path from in_u to out_v avoiding node is at
// least as cheap as going through node directly. Where no such witness
// exists, onShortcut is invoked with the shortcut that would be required.
// Shared between ContractNode (which actually inserts the shortcuts) and
// CalcRelevance (which only counts them).
func handleShortcuts(graph *PreparationGraph, ws *WitnessSearch, node NodeId, maxSettledNodes int, onShortcut func(Shortcut)) {
	inEdges := graph.InEdges(node)
	outEdges := graph.OutEdges(node)
	for i := range inEdges {
		inNode := inEdges[i].AdjNode
		ws.Init(inNode, node)
		for j := range outEdges {
			weight := inEdges[i].Weight + outEdges[j].Weight
			outNode := outEdges[j].AdjNode
			// We only need to know that some witness of weight <= the direct
			// path exists, not its exact weight.
			maxWitnessWeight := ws.FindMaxWeight(graph, outNode, weight, maxSettledNodes)
			if maxWitnessWeight <= weight {
				continue
			}
			onShortcut(Shortcut{From: inNode, To: outNode, CenterNode: node, Weight: weight})
		}
	}
}

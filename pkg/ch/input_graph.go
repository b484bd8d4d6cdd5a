package ch

import (
	"fmt"
	"log"
	"sort"
)

// Edge is a single directed, weighted arc of an InputGraph.
type Edge struct {
	From, To NodeId
	Weight   Weight
}

// InputGraph accumulates directed edges before they are frozen and handed to
// the preparation pipeline. It is mutable until Freeze is called; after that
// it is read-only until Thaw reverses the lock.
type InputGraph struct {
	edges    []Edge
	numNodes NodeId
	frozen   bool
}

// NewInputGraph returns an empty, mutable InputGraph.
func NewInputGraph() *InputGraph {
	return &InputGraph{}
}

// AddEdge adds a directed edge from -> to. Self-loops and zero-weight edges
// are rejected (logged, not fatal) and return 0. Otherwise returns 1.
//
// Panics if the graph is already frozen.
func (g *InputGraph) AddEdge(from, to NodeId, weight Weight) int {
	return g.doAddEdge(from, to, weight, false)
}

// AddEdgeBidir adds edges in both directions with the same weight. Returns 2
// on success, 1 if only one direction is accepted (impossible here since both
// share the same rejection conditions, kept for symmetry with the reference
// implementation), or 0 if rejected.
func (g *InputGraph) AddEdgeBidir(from, to NodeId, weight Weight) int {
	return g.doAddEdge(from, to, weight, true)
}

func (g *InputGraph) doAddEdge(from, to NodeId, weight Weight, bidir bool) int {
	if g.frozen {
		panic("input graph is frozen already, call Thaw() first")
	}
	if from == to {
		log.Printf("loop edges are not allowed, skipped edge from=%d to=%d weight=%d", from, to, weight)
		return 0
	}
	if weight < 1 {
		log.Printf("zero weight edges are not allowed, skipped edge from=%d to=%d weight=%d", from, to, weight)
		return 0
	}
	if from+1 > g.numNodes {
		g.numNodes = from + 1
	}
	if to+1 > g.numNodes {
		g.numNodes = to + 1
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight})
	if bidir {
		g.edges = append(g.edges, Edge{From: to, To: from, Weight: weight})
		return 2
	}
	return 1
}

// Freeze sorts the edges lexicographically by (from, to, weight), drops all
// but the minimum-weight edge within each duplicate (from, to) group, and
// locks the graph for reading. Panics if already frozen.
func (g *InputGraph) Freeze() {
	if g.frozen {
		panic("input graph is already frozen")
	}
	g.sort()
	g.removeDuplicateEdges()
	g.frozen = true
}

// Thaw unlocks a frozen graph for further mutation.
func (g *InputGraph) Thaw() {
	g.frozen = false
}

func (g *InputGraph) sort() {
	sort.SliceStable(g.edges, func(i, j int) bool {
		a, b := g.edges[i], g.edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Weight < b.Weight
	})
}

func (g *InputGraph) removeDuplicateEdges() {
	if len(g.edges) == 0 {
		return
	}
	kept := g.edges[:1]
	removed := 0
	for i := 1; i < len(g.edges); i++ {
		last := kept[len(kept)-1]
		cur := g.edges[i]
		if cur.From == last.From && cur.To == last.To {
			removed++
			continue
		}
		kept = append(kept, cur)
	}
	g.edges = kept
	if removed > 0 {
		log.Printf("there were %d duplicate edges, only the ones with lowest weight were kept", removed)
	}
}

func (g *InputGraph) checkFrozen() {
	if !g.frozen {
		panic("you need to call Freeze() before using the input graph")
	}
}

// Edges returns the frozen, sorted, deduplicated edge list. Panics if the
// graph isn't frozen.
func (g *InputGraph) Edges() []Edge {
	g.checkFrozen()
	return g.edges
}

// NumNodes returns the maximum referenced node id + 1. Panics if the graph
// isn't frozen.
func (g *InputGraph) NumNodes() int {
	g.checkFrozen()
	return int(g.numNodes)
}

// NumEdges returns the number of frozen edges. Panics if the graph isn't
// frozen.
func (g *InputGraph) NumEdges() int {
	g.checkFrozen()
	return len(g.edges)
}

// IsFrozen reports whether the graph is currently frozen.
func (g *InputGraph) IsFrozen() bool {
	return g.frozen
}

func (g *InputGraph) String() string {
	s := ""
	for _, e := range g.edges {
		s += fmt.Sprintf("add_edge(%d, %d, %d)\n", e.From, e.To, e.Weight)
	}
	return s
}

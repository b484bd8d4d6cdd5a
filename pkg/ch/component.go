package ch

// unionFind implements a disjoint-set data structure with path halving and
// union by rank, used by LargestComponent to find weakly connected
// components of an InputGraph before contraction.
type unionFind struct {
	parent []NodeId
	rank   []byte // byte is sufficient -- max rank ~30 for realistic graphs
	size   []uint32
}

func newUnionFind(n int) *unionFind {
	parent := make([]NodeId, n)
	size := make([]uint32, n)
	for i := range parent {
		parent[i] = NodeId(i)
		size[i] = 1
	}
	return &unionFind{parent: parent, rank: make([]byte, n), size: size}
}

func (uf *unionFind) find(x NodeId) NodeId {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(x, y NodeId) {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
}

// LargestComponent returns the node ids of the largest weakly connected
// component of a frozen InputGraph (treating every directed edge as
// undirected for the purpose of connectivity). CH preparation assumes a
// single queryable component; road-network extracts routinely contain small
// disconnected islands (service roads cut off by a bounding box, parking
// lots) that are best dropped before preparation rather than contracted.
func LargestComponent(g *InputGraph) []NodeId {
	n := g.NumNodes()
	if n == 0 {
		return nil
	}

	uf := newUnionFind(n)
	for _, e := range g.Edges() {
		uf.union(e.From, e.To)
	}

	bestRoot, bestSize := NodeId(0), uint32(0)
	for i := 0; i < n; i++ {
		root := uf.find(NodeId(i))
		if uf.size[root] > bestSize {
			bestRoot, bestSize = root, uf.size[root]
		}
	}

	nodes := make([]NodeId, 0, bestSize)
	for i := 0; i < n; i++ {
		if uf.find(NodeId(i)) == bestRoot {
			nodes = append(nodes, NodeId(i))
		}
	}
	return nodes
}

// FilterToInputGraph builds a new, unfrozen InputGraph containing only the
// edges whose both endpoints are in nodes, renumbered to a compact
// [0, len(nodes)) id space. It returns the renumbered graph (not yet frozen)
// and the old->new node id mapping, which callers (e.g. pkg/osmimport's
// coordinate array) need to apply the same renumbering to side tables.
func FilterToInputGraph(g *InputGraph, nodes []NodeId) (filtered *InputGraph, oldToNew map[NodeId]NodeId) {
	oldToNew = make(map[NodeId]NodeId, len(nodes))
	for newID, oldID := range nodes {
		oldToNew[oldID] = NodeId(newID)
	}

	filtered = NewInputGraph()
	for _, e := range g.Edges() {
		newFrom, fromOK := oldToNew[e.From]
		newTo, toOK := oldToNew[e.To]
		if fromOK && toOK {
			filtered.AddEdge(newFrom, newTo, e.Weight)
		}
	}
	return filtered, oldToNew
}

package ch

import "testing"

func TestLargestComponent(t *testing.T) {
	// Two components: {0,1,2} (a path 0-1-2) and {3,4} (a pair), disconnected.
	g := NewInputGraph()
	g.AddEdgeBidir(0, 1, 1)
	g.AddEdgeBidir(1, 2, 1)
	g.AddEdgeBidir(3, 4, 1)
	g.Freeze()

	nodes := LargestComponent(g)
	if len(nodes) != 3 {
		t.Fatalf("largest component has %d nodes, want 3", len(nodes))
	}
	seen := map[NodeId]bool{}
	for _, n := range nodes {
		seen[n] = true
	}
	for _, want := range []NodeId{0, 1, 2} {
		if !seen[want] {
			t.Errorf("expected node %d in largest component", want)
		}
	}
}

func TestFilterToInputGraph(t *testing.T) {
	g := NewInputGraph()
	g.AddEdgeBidir(0, 1, 1)
	g.AddEdgeBidir(1, 2, 1)
	g.AddEdgeBidir(3, 4, 1)
	g.Freeze()

	nodes := LargestComponent(g)
	filtered, oldToNew := FilterToInputGraph(g, nodes)
	filtered.Freeze()

	if filtered.NumNodes() != 3 {
		t.Fatalf("filtered graph has %d nodes, want 3", filtered.NumNodes())
	}
	if filtered.NumEdges() != 4 {
		t.Fatalf("filtered graph has %d edges, want 4", filtered.NumEdges())
	}
	if _, ok := oldToNew[3]; ok {
		t.Errorf("node 3 should not be in the mapping, it belongs to the dropped component")
	}
}

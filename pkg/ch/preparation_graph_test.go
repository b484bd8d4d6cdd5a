package ch

import "testing"

func TestPreparationGraphAddAndRemoveEdges(t *testing.T) {
	pg := NewPreparationGraph(3)
	pg.AddEdge(0, 1, 5)
	pg.AddEdge(1, 2, 7)

	if len(pg.OutEdges(0)) != 1 || pg.OutEdges(0)[0].AdjNode != 1 || pg.OutEdges(0)[0].Weight != 5 {
		t.Fatalf("unexpected out edges of 0: %+v", pg.OutEdges(0))
	}
	if len(pg.InEdges(1)) != 1 || pg.InEdges(1)[0].AdjNode != 0 {
		t.Fatalf("unexpected in edges of 1: %+v", pg.InEdges(1))
	}

	pg.Disconnect(1)
	if len(pg.OutEdges(0)) != 0 {
		t.Fatalf("expected node 0 to lose its out edge to 1, got %+v", pg.OutEdges(0))
	}
	if len(pg.InEdges(2)) != 0 {
		t.Fatalf("expected node 2 to lose its in edge from 1, got %+v", pg.InEdges(2))
	}
	if len(pg.OutEdges(1)) != 0 || len(pg.InEdges(1)) != 0 {
		t.Fatalf("expected node 1's own adjacency to be cleared")
	}
}

func TestAddOrReduceEdgeKeepsCheaper(t *testing.T) {
	pg := NewPreparationGraph(2)
	pg.AddOrReduceEdge(0, 1, 10, InvalidNode)
	pg.AddOrReduceEdge(0, 1, 20, 5) // worse, should be a no-op
	if w := pg.OutEdges(0)[0].Weight; w != 10 {
		t.Fatalf("expected weight to stay 10, got %d", w)
	}
	pg.AddOrReduceEdge(0, 1, 3, 7) // better, should replace
	out := pg.OutEdges(0)[0]
	if out.Weight != 3 || out.CenterNode != 7 {
		t.Fatalf("expected reduced edge weight=3 center=7, got %+v", out)
	}
	in := pg.InEdges(1)[0]
	if in.Weight != 3 || in.CenterNode != 7 {
		t.Fatalf("expected matching in-edge to be updated too, got %+v", in)
	}
}

func TestAddOrReduceEdgeAddsWhenAbsent(t *testing.T) {
	pg := NewPreparationGraph(2)
	pg.AddOrReduceEdge(0, 1, 4, InvalidNode)
	if len(pg.OutEdges(0)) != 1 || len(pg.InEdges(1)) != 1 {
		t.Fatalf("expected new edge to be added on both sides")
	}
}

func TestPreparationGraphFromInputGraph(t *testing.T) {
	g := NewInputGraph()
	g.AddEdge(0, 1, 5)
	g.AddEdge(1, 2, 7)
	g.Freeze()

	pg := PreparationGraphFromInputGraph(g)
	if pg.NumNodes() != 3 {
		t.Fatalf("want 3 nodes, got %d", pg.NumNodes())
	}
	if len(pg.OutEdges(0)) != 1 || pg.OutEdges(0)[0].CenterNode != InvalidNode {
		t.Fatalf("expected plain edge with InvalidNode center, got %+v", pg.OutEdges(0))
	}
}

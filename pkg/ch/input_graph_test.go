package ch

import "testing"

func TestAddEdgeRejectsLoopsAndZeroWeight(t *testing.T) {
	g := NewInputGraph()
	if n := g.AddEdge(1, 1, 5); n != 0 {
		t.Fatalf("expected loop edge to be rejected, got %d", n)
	}
	if n := g.AddEdge(0, 1, 0); n != 0 {
		t.Fatalf("expected zero weight edge to be rejected, got %d", n)
	}
	if n := g.AddEdge(0, 1, 5); n != 1 {
		t.Fatalf("expected valid edge to be accepted, got %d", n)
	}
}

func TestAddEdgeBidir(t *testing.T) {
	g := NewInputGraph()
	if n := g.AddEdgeBidir(0, 1, 7); n != 2 {
		t.Fatalf("expected 2 edges added, got %d", n)
	}
	g.Freeze()
	if g.NumEdges() != 2 {
		t.Fatalf("expected 2 edges, got %d", g.NumEdges())
	}
}

func TestFreezeSkipsDuplicateEdgesKeepingMinWeight(t *testing.T) {
	// Concrete scenario #5 from the specification, reproduced verbatim from
	// the reference implementation's skips_duplicate_edges_more test.
	g := NewInputGraph()
	g.AddEdge(1, 3, 43)
	g.AddEdge(3, 2, 90)
	g.AddEdge(3, 2, 88)
	g.AddEdge(2, 3, 87)
	g.AddEdge(3, 0, 75)
	g.AddEdge(0, 2, 45)
	g.AddEdge(1, 3, 71)
	g.AddEdge(4, 3, 5)
	g.AddEdge(1, 3, 91)
	g.Freeze()

	edges := g.Edges()
	if len(edges) != 6 {
		t.Fatalf("expected 6 edges after dedup, got %d", len(edges))
	}
	wantWeights := []Weight{45, 43, 87, 75, 88, 5}
	for i, e := range edges {
		if e.Weight != wantWeights[i] {
			t.Fatalf("edge %d: want weight %d, got %d (edges=%+v)", i, wantWeights[i], e.Weight, edges)
		}
	}
	// (from, to) pairs must be strictly increasing and unique.
	for i := 1; i < len(edges); i++ {
		prev, cur := edges[i-1], edges[i]
		if prev.From > cur.From || (prev.From == cur.From && prev.To >= cur.To) {
			t.Fatalf("edges not sorted/deduped at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestFreezeIsIdempotentGuarded(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double freeze")
		}
	}()
	g := NewInputGraph()
	g.AddEdge(0, 1, 1)
	g.Freeze()
	g.Freeze()
}

func TestAccessBeforeFreezePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic reading unfrozen graph")
		}
	}()
	g := NewInputGraph()
	g.Edges()
}

func TestMutateAfterFreezePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic mutating frozen graph")
		}
	}()
	g := NewInputGraph()
	g.AddEdge(0, 1, 1)
	g.Freeze()
	g.AddEdge(1, 2, 1)
}

func TestThawAllowsFurtherMutation(t *testing.T) {
	g := NewInputGraph()
	g.AddEdge(0, 1, 1)
	g.Freeze()
	g.Thaw()
	g.AddEdge(1, 2, 1)
	g.Freeze()
	if g.NumEdges() != 2 {
		t.Fatalf("expected 2 edges, got %d", g.NumEdges())
	}
}

func TestNumNodesIsMaxReferencedPlusOne(t *testing.T) {
	g := NewInputGraph()
	g.AddEdge(2, 5, 1)
	g.Freeze()
	if g.NumNodes() != 6 {
		t.Fatalf("want 6 nodes, got %d", g.NumNodes())
	}
}

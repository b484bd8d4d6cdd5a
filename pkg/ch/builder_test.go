package ch

import (
	"reflect"
	"testing"
)

func buildFrozen(edges []Edge) *InputGraph {
	g := NewInputGraph()
	for _, e := range edges {
		g.AddEdge(e.From, e.To, e.Weight)
	}
	g.Freeze()
	return g
}

func TestBuildWithOrderLinearChain(t *testing.T) {
	// Concrete scenario #1: 1->0 (9), 0->2 (49), order [0,1,2].
	g := buildFrozen([]Edge{
		{From: 1, To: 0, Weight: 9},
		{From: 0, To: 2, Weight: 49},
	})
	fg, err := BuildWithOrder(g, []NodeId{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if fg.NumNodes() != 3 {
		t.Fatalf("want 3 nodes, got %d", fg.NumNodes())
	}
}

func TestBuildWithOrderRejectsWrongLength(t *testing.T) {
	g := buildFrozen([]Edge{{From: 0, To: 1, Weight: 1}})
	_, err := BuildWithOrder(g, []NodeId{0})
	if err == nil {
		t.Fatal("expected an error for mismatched order length")
	}
}

func TestFinishContractionResolvesShortcutChildren(t *testing.T) {
	// A graph that forces exactly one shortcut when node 1 is contracted
	// first: 0->1->2 with no cheaper alternative.
	g := buildFrozen([]Edge{
		{From: 0, To: 1, Weight: 3},
		{From: 1, To: 2, Weight: 4},
	})
	fg, err := BuildWithOrder(g, []NodeId{1, 0, 2})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for i := fg.BeginOutEdges(0); i < fg.EndOutEdges(0); i++ {
		e := fg.EdgesFwd[i]
		if e.AdjNode == 2 {
			found = true
			if !e.IsShortcut() {
				t.Fatalf("expected 0->2 to be a shortcut, got %+v", e)
			}
			if e.Weight != 7 {
				t.Fatalf("expected shortcut weight 7, got %d", e.Weight)
			}
			inChild := fg.EdgesBwd[e.ReplacedInEdge]
			outChild := fg.EdgesFwd[e.ReplacedOutEdge]
			if inChild.AdjNode != 0 || inChild.Weight != 3 {
				t.Fatalf("unexpected ReplacedInEdge child: %+v", inChild)
			}
			if outChild.AdjNode != 2 || outChild.Weight != 4 {
				t.Fatalf("unexpected ReplacedOutEdge child: %+v", outChild)
			}
		}
	}
	if !found {
		t.Fatal("expected to find a 0->2 forward edge")
	}
}

func TestGetNodeOrderingIsInverseOfRanks(t *testing.T) {
	g := buildFrozen([]Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 1, To: 2, Weight: 1},
		{From: 2, To: 3, Weight: 1},
	})
	fg := Build(g)
	ordering := fg.GetNodeOrdering()
	for node, rank := range fg.Ranks {
		if ordering[rank] != NodeId(node) {
			t.Fatalf("ordering[%d]=%d, want %d", rank, ordering[rank], node)
		}
	}
}

func TestFixedOrderEquivalence(t *testing.T) {
	g := buildFrozen([]Edge{
		{From: 0, To: 1, Weight: 5},
		{From: 1, To: 2, Weight: 3},
		{From: 2, To: 3, Weight: 2},
		{From: 3, To: 4, Weight: 6},
		{From: 0, To: 4, Weight: 2},
		{From: 1, To: 0, Weight: 5},
		{From: 2, To: 1, Weight: 3},
		{From: 3, To: 2, Weight: 2},
		{From: 4, To: 3, Weight: 6},
	})
	auto := Build(g)
	order := auto.GetNodeOrdering()
	fixed, err := BuildWithOrder(g, order)
	if err != nil {
		t.Fatal(err)
	}
	if fixed.NumNodes() != auto.NumNodes() {
		t.Fatalf("node count mismatch")
	}
	if !reflect.DeepEqual(fixed.Ranks, auto.Ranks) {
		t.Fatalf("ranks mismatch: auto=%v fixed=%v", auto.Ranks, fixed.Ranks)
	}
}

func TestOrderDeterminism(t *testing.T) {
	g := buildFrozen([]Edge{
		{From: 0, To: 1, Weight: 2},
		{From: 1, To: 2, Weight: 2},
		{From: 2, To: 0, Weight: 2},
		{From: 0, To: 3, Weight: 1},
		{From: 3, To: 1, Weight: 1},
	})
	fg1 := Build(g)
	fg2 := Build(g)
	if !reflect.DeepEqual(fg1.Ranks, fg2.Ranks) {
		t.Fatalf("expected deterministic ranks across repeated builds")
	}
	if !reflect.DeepEqual(fg1.EdgesFwd, fg2.EdgesFwd) || !reflect.DeepEqual(fg1.EdgesBwd, fg2.EdgesBwd) {
		t.Fatalf("expected deterministic edge arrays across repeated builds")
	}
}

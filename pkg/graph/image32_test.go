package graph

import "testing"

func TestFastGraph32RoundTrip(t *testing.T) {
	fg := NewFastGraph(3)
	fg.Ranks = []NodeId{1, 0, 2}
	fg.FirstEdgeIdsFwd = []EdgeId{0, 1, 1, 2}
	fg.EdgesFwd = []FastGraphEdge{
		{BaseNode: 0, AdjNode: 1, Weight: 5, ReplacedInEdge: InvalidEdge, ReplacedOutEdge: InvalidEdge},
		{BaseNode: 2, AdjNode: 0, Weight: 9, ReplacedInEdge: 0, ReplacedOutEdge: 1},
	}
	fg.FirstEdgeIdsBwd = []EdgeId{0, 0, 1, 2}
	fg.EdgesBwd = []FastGraphEdge{
		{BaseNode: 1, AdjNode: 0, Weight: 5, ReplacedInEdge: InvalidEdge, ReplacedOutEdge: InvalidEdge},
		{BaseNode: 0, AdjNode: 2, Weight: 9, ReplacedInEdge: InvalidEdge, ReplacedOutEdge: InvalidEdge},
	}

	g32 := NewFastGraph32(fg)
	if g32.NumNodes != 3 {
		t.Fatalf("NumNodes = %d, want 3", g32.NumNodes)
	}

	back := g32.ToFastGraph()
	if back.NumNodes() != fg.NumNodes() {
		t.Fatalf("NumNodes round trip = %d, want %d", back.NumNodes(), fg.NumNodes())
	}
	for i := range fg.Ranks {
		if back.Ranks[i] != fg.Ranks[i] {
			t.Errorf("Ranks[%d] = %d, want %d", i, back.Ranks[i], fg.Ranks[i])
		}
	}
	for i := range fg.EdgesFwd {
		if back.EdgesFwd[i] != fg.EdgesFwd[i] {
			t.Errorf("EdgesFwd[%d] = %+v, want %+v", i, back.EdgesFwd[i], fg.EdgesFwd[i])
		}
	}
	if back.EdgesFwd[0].IsShortcut() {
		t.Errorf("expected EdgesFwd[0] to remain a plain edge after round trip")
	}
	if !back.EdgesFwd[1].IsShortcut() {
		t.Errorf("expected EdgesFwd[1] to remain a shortcut after round trip")
	}
}

func TestFastGraph32PreservesInvalidEdgeSentinel(t *testing.T) {
	e := FastGraphEdge{ReplacedInEdge: InvalidEdge, ReplacedOutEdge: InvalidEdge}
	e32 := edgeTo32(e)
	if e32.ReplacedInEdge != invalid32 || e32.ReplacedOutEdge != invalid32 {
		t.Fatalf("expected sentinel to convert to invalid32, got %+v", e32)
	}
	back := edgeFrom32(e32)
	if back.ReplacedInEdge != InvalidEdge || back.ReplacedOutEdge != InvalidEdge {
		t.Fatalf("expected sentinel to round trip to InvalidEdge, got %+v", back)
	}
}

package engine

import (
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"

	"github.com/easbar/fast-paths/pkg/ch"
)

func TestSideDataRoundTrip(t *testing.T) {
	edges := []ch.Edge{
		{From: 0, To: 1, Weight: 1000},
		{From: 1, To: 2, Weight: 2000},
	}
	coords := []orb.Point{{0, 0}, {0.01, 0}, {0.02, 0}}

	path := filepath.Join(t.TempDir(), "side.bin")
	if err := WriteSideData(path, edges, coords); err != nil {
		t.Fatalf("WriteSideData: %v", err)
	}

	gotEdges, gotCoords, err := ReadSideData(path)
	if err != nil {
		t.Fatalf("ReadSideData: %v", err)
	}
	if len(gotEdges) != len(edges) || len(gotCoords) != len(coords) {
		t.Fatalf("got %d edges/%d coords, want %d/%d", len(gotEdges), len(gotCoords), len(edges), len(coords))
	}
	for i := range edges {
		if gotEdges[i] != edges[i] {
			t.Errorf("edge %d = %+v, want %+v", i, gotEdges[i], edges[i])
		}
	}
	for i := range coords {
		if gotCoords[i] != coords[i] {
			t.Errorf("coord %d = %+v, want %+v", i, gotCoords[i], coords[i])
		}
	}
}

// Package osmimport parses OSM PBF extracts into a ch.InputGraph ready for
// Contraction Hierarchies preparation, filtering to car-accessible ways and
// weighting edges by great-circle distance in millimeters.
package osmimport

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/easbar/fast-paths/pkg/ch"
	"github.com/easbar/fast-paths/pkg/geo"
)

// Result holds a parsed OSM road network: a frozen InputGraph plus the
// geographic coordinate of each of its nodes, indexed by ch.NodeId.
type Result struct {
	Graph  *ch.InputGraph
	Coords []orb.Point
}

// carHighways lists highway tag values accessible by car.
var carHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// isCarAccessible returns true if the way is drivable by car.
func isCarAccessible(tags osm.Tags) bool {
	hw := tags.Find("highway")
	if !carHighways[hw] {
		return false
	}

	// Skip area highways (pedestrian plazas).
	if tags.Find("area") == "yes" {
		return false
	}

	// Skip restricted access.
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}
	if tags.Find("motor_vehicle") == "no" {
		return false
	}

	return true
}

// directionFlags returns (forward, backward) based on highway type and oneway tags.
func directionFlags(tags osm.Tags) (forward, backward bool) {
	// Default: bidirectional.
	forward = true
	backward = true

	hw := tags.Find("highway")

	// Implied oneway for motorways and roundabouts.
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	// Explicit oneway tag overrides.
	oneway := tags.Find("oneway")
	switch oneway {
	case "yes", "true", "1":
		forward = true
		backward = false
	case "-1", "reverse":
		forward = false
		backward = true
	case "no":
		forward = true
		backward = true
	case "reversible":
		// Time-dependent — skip entirely.
		forward = false
		backward = false
	}

	return forward, backward
}

// wayInfo holds parsed way data collected during Pass 1.
type wayInfo struct {
	NodeIDs  []osm.NodeID
	Forward  bool
	Backward bool
}

// BBox defines a geographic bounding box for filtering. If non-zero, only
// edges with both endpoints inside the box are kept.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero returns true if the bbox is unset.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

// Contains returns true if the point is inside the bounding box.
func (b BBox) Contains(p orb.Point) bool {
	return p.Lat() >= b.MinLat && p.Lat() <= b.MaxLat && p.Lon() >= b.MinLng && p.Lon() <= b.MaxLng
}

// ParseOptions configures the OSM parser.
type ParseOptions struct {
	BBox BBox // if non-zero, filter edges to this bounding box
}

// Parse reads an OSM PBF file and returns a frozen InputGraph for car
// routing, plus the lat/lon of each of its nodes. The reader is consumed
// twice (seeks back to start for the second pass), so it must implement
// io.ReadSeeker.
func Parse(ctx context.Context, rs io.ReadSeeker, opts ...ParseOptions) (*Result, error) {
	var opt ParseOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	useBBox := !opt.BBox.IsZero()

	// Pass 1: scan ways to collect referenced node IDs and way info.
	referencedNodes := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		obj := scanner.Object()
		w, ok := obj.(*osm.Way)
		if !ok {
			continue
		}
		if !isCarAccessible(w.Tags) {
			continue
		}
		if len(w.Nodes) < 2 {
			continue
		}
		fwd, bwd := directionFlags(w.Tags)
		if !fwd && !bwd {
			continue
		}

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referencedNodes[wn.ID] = struct{}{}
		}

		ways = append(ways, wayInfo{NodeIDs: nodeIDs, Forward: fwd, Backward: bwd})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()

	log.Printf("osmimport: pass 1 complete: %d ways, %d referenced nodes", len(ways), len(referencedNodes))

	// Pass 2: scan nodes to collect coordinates and assign each a compact
	// ch.NodeId in first-seen order.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	nodeIDToCH := make(map[osm.NodeID]ch.NodeId, len(referencedNodes))
	var coords []orb.Point

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		obj := scanner.Object()
		n, ok := obj.(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		if _, seen := nodeIDToCH[n.ID]; seen {
			continue
		}
		nodeIDToCH[n.ID] = ch.NodeId(len(coords))
		coords = append(coords, orb.Point{n.Lon, n.Lat})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	log.Printf("osmimport: pass 2 complete: %d node coordinates collected", len(coords))

	// Build the InputGraph from ways.
	g := ch.NewInputGraph()
	var skippedEdges, bboxFiltered int

	for _, w := range ways {
		for i := 0; i < len(w.NodeIDs)-1; i++ {
			fromCH, fromOk := nodeIDToCH[w.NodeIDs[i]]
			toCH, toOk := nodeIDToCH[w.NodeIDs[i+1]]
			if !fromOk || !toOk {
				skippedEdges++
				continue
			}

			from, to := coords[fromCH], coords[toCH]
			if useBBox && (!opt.BBox.Contains(from) || !opt.BBox.Contains(to)) {
				bboxFiltered++
				continue
			}

			dist := geo.Distance(from, to)
			weightMM := ch.Weight(math.Round(dist * 1000))
			if weightMM == 0 {
				weightMM = 1 // avoid zero-weight edges
			}

			if w.Forward {
				g.AddEdge(fromCH, toCH, weightMM)
			}
			if w.Backward {
				g.AddEdge(toCH, fromCH, weightMM)
			}
		}
	}

	if skippedEdges > 0 {
		log.Printf("osmimport: skipped %d edges due to missing node coordinates", skippedEdges)
	}
	if bboxFiltered > 0 {
		log.Printf("osmimport: filtered %d edges outside bounding box", bboxFiltered)
	}

	g.Freeze()
	log.Printf("osmimport: built input graph with %d nodes, %d edges", g.NumNodes(), g.NumEdges())

	// NumNodes only reaches the highest id that appears in an added edge, so
	// trailing nodes whose edges were all skipped (e.g. by the bbox filter)
	// have no graph id; Coords must track 1:1 with the ids the graph
	// actually knows about.
	if g.NumNodes() < len(coords) {
		coords = coords[:g.NumNodes()]
	}

	return &Result{Graph: g, Coords: coords}, nil
}

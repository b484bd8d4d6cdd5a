// Package snap locates the nearest point on the original (uncontracted) road
// network to an arbitrary query coordinate, so that pkg/engine can turn a
// pair of lat/lng points into a pair of CH query endpoints. It is a thin
// wrapper over a github.com/tidwall/rtree index of edge bounding boxes,
// replacing the sorted-grid index the teacher used for the same purpose.
package snap

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"

	"github.com/easbar/fast-paths/pkg/ch"
	"github.com/easbar/fast-paths/pkg/geo"
)

// ErrTooFar is returned when the query point has no road within MaxDistMeters.
var ErrTooFar = errors.New("point too far from road")

// MaxDistMeters bounds how far a query point may be from the nearest edge
// before it is rejected as unroutable.
const MaxDistMeters = 500.0

// Result describes a point projected onto the nearest original edge.
type Result struct {
	EdgeIdx int      // index into the Index's edge list
	NodeU   ch.NodeId // source node of the snapped edge
	NodeV   ch.NodeId // target node of the snapped edge
	Ratio   float64  // 0 = at NodeU, 1 = at NodeV
	Dist    float64  // distance in meters from the query point
}

type edgeEntry struct {
	u, v   ch.NodeId
	weight ch.Weight
}

// Index answers nearest-edge queries against a fixed set of original edges.
type Index struct {
	tree   rtree.RTree
	edges  []edgeEntry
	coords []orb.Point
}

// Build indexes every edge of edges (coordinates looked up in coords, indexed
// by NodeId) for nearest-neighbor snapping.
func Build(edges []ch.Edge, coords []orb.Point) *Index {
	idx := &Index{coords: coords, edges: make([]edgeEntry, 0, len(edges))}
	for _, e := range edges {
		a, b := coords[e.From], coords[e.To]
		min := [2]float64{math.Min(a.Lon(), b.Lon()), math.Min(a.Lat(), b.Lat())}
		max := [2]float64{math.Max(a.Lon(), b.Lon()), math.Max(a.Lat(), b.Lat())}
		idx.tree.Insert(min, max, len(idx.edges))
		idx.edges = append(idx.edges, edgeEntry{u: e.From, v: e.To, weight: e.Weight})
	}
	return idx
}

// Nearest finds the closest point on any indexed edge to p, expanding the
// search radius geometrically until a candidate within MaxDistMeters is
// confirmed or the cap is exceeded.
func (idx *Index) Nearest(p orb.Point) (Result, error) {
	best := Result{Dist: math.Inf(1)}
	found := false

	for radius := 50.0; ; radius *= 2 {
		dLat := radius / 111_000.0
		cosLat := math.Max(0.1, math.Cos(p.Lat()*math.Pi/180))
		dLon := dLat / cosLat
		min := [2]float64{p.Lon() - dLon, p.Lat() - dLat}
		max := [2]float64{p.Lon() + dLon, p.Lat() + dLat}

		idx.tree.Search(min, max, func(_, _ [2]float64, data interface{}) bool {
			i := data.(int)
			e := idx.edges[i]
			d, ratio := geo.PointToSegmentDist(p, idx.coords[e.u], idx.coords[e.v])
			if d < best.Dist {
				best = Result{EdgeIdx: i, NodeU: e.u, NodeV: e.v, Ratio: ratio, Dist: d}
				found = true
			}
			return true
		})

		// Once a candidate is found, its true distance can only be trusted
		// once the search radius has grown past it (a closer edge could
		// still be just outside the current box on the diagonal).
		if found && best.Dist <= radius {
			break
		}
		if radius >= MaxDistMeters {
			break
		}
	}

	if !found || best.Dist > MaxDistMeters {
		return Result{}, ErrTooFar
	}
	return best, nil
}

// Weight returns the weight of the edge at EdgeIdx, used by pkg/engine to
// split a snapped edge's weight proportionally between its two endpoints.
func (idx *Index) Weight(edgeIdx int) ch.Weight {
	return idx.edges[edgeIdx].weight
}

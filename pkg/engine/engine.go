// Package engine wires pkg/snap, pkg/ch and pkg/routing into a coordinate-level
// shortest-path facade: given two geographic points, it snaps them onto the
// original road network, runs a Contraction Hierarchies query between the
// resulting endpoints and reassembles the result as a geometric route.
package engine

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/paulmach/orb"

	"github.com/easbar/fast-paths/pkg/ch"
	"github.com/easbar/fast-paths/pkg/graph"
	"github.com/easbar/fast-paths/pkg/routing"
	"github.com/easbar/fast-paths/pkg/snap"
)

// ErrNoRoute is returned when the two snapped endpoints are not connected in
// the prepared graph.
var ErrNoRoute = errors.New("no route found")

// ErrPointTooFar is returned when a query point could not be snapped onto the
// road network within snap.MaxDistMeters.
var ErrPointTooFar = snap.ErrTooFar

// Segment is one leg of a route; a RouteResult currently always has exactly
// one, but the field is plural for parity with multi-leg itineraries a
// future caller (e.g. a waypoint-chaining endpoint) might produce.
type Segment struct {
	DistanceMeters float64
	Geometry       []orb.Point
}

// RouteResult is the output of a route query.
type RouteResult struct {
	TotalDistanceMeters float64
	Segments            []Segment

	// SettledNodesFwd/SettledNodesBwd report how many nodes each direction
	// of the bidirectional CH search settled before meeting. A plain
	// point-to-point router has nothing analogous to report; this is CH
	// search-effort diagnostics, not part of the route geometry itself.
	SettledNodesFwd int
	SettledNodesBwd int
}

// Router answers coordinate-level shortest-path queries.
type Router interface {
	Route(ctx context.Context, start, end orb.Point) (*RouteResult, error)
}

// Engine implements Router over a prepared graph.FastGraph, snapping query
// points against the original (pre-contraction) edge set held by its
// snap.Index.
type Engine struct {
	fg      *graph.FastGraph
	coords  []orb.Point
	snapper *snap.Index
	calcs   sync.Pool
}

// NewEngine builds an Engine. edges and coords describe the original,
// uncontracted network in the same NodeId space fg was built from; coords is
// indexed by NodeId.
func NewEngine(fg *graph.FastGraph, edges []ch.Edge, coords []orb.Point) *Engine {
	e := &Engine{
		fg:      fg,
		coords:  coords,
		snapper: snap.Build(edges, coords),
	}
	e.calcs.New = func() any {
		return routing.NewPathCalculator(fg.NumNodes())
	}
	return e
}

// Route computes the shortest path between start and end.
func (e *Engine) Route(ctx context.Context, start, end orb.Point) (*RouteResult, error) {
	startSnap, err := e.snapper.Nearest(start)
	if err != nil {
		return nil, err
	}
	endSnap, err := e.snapper.Nearest(end)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	starts := e.split(startSnap)
	ends := e.split(endSnap)

	pc := e.calcs.Get().(*routing.PathCalculator)
	defer e.calcs.Put(pc)

	path := pc.CalcPathMultipleSourcesAndTargets(e.fg, starts, ends)
	if !path.IsFound() {
		return nil, ErrNoRoute
	}

	settledFwd, settledBwd := pc.SettledNodes()
	distMeters := float64(path.Weight) / 1000.0
	return &RouteResult{
		TotalDistanceMeters: distMeters,
		Segments: []Segment{
			{DistanceMeters: distMeters, Geometry: e.buildGeometry(path.Nodes)},
		},
		SettledNodesFwd: settledFwd,
		SettledNodesBwd: settledBwd,
	}, nil
}

// split turns a snapped point on edge (u,v) into the two weighted search
// seeds a bidirectional query needs: the remaining distance to each of the
// edge's endpoints, proportional to where along the edge the point fell.
func (e *Engine) split(s snap.Result) []routing.Weighted {
	edgeWeight := float64(e.snapper.Weight(s.EdgeIdx))
	toV := routing.Weight(math.Round(edgeWeight * (1 - s.Ratio)))
	toU := routing.Weight(math.Round(edgeWeight * s.Ratio))
	return []routing.Weighted{
		{Node: s.NodeU, Weight: toU},
		{Node: s.NodeV, Weight: toV},
	}
}

// buildGeometry converts a CH node-id path (already unpacked to the original
// node sequence by PathCalculator) into a coordinate sequence.
func (e *Engine) buildGeometry(nodes []routing.NodeId) []orb.Point {
	if len(nodes) == 0 {
		return nil
	}
	geom := make([]orb.Point, len(nodes))
	for i, n := range nodes {
		geom[i] = e.coords[n]
	}
	return geom
}

// Package geo holds the small geometric helpers shared by pkg/osmimport
// (edge weighting) and pkg/snap (nearest-edge projection): great-circle
// distance and point-to-segment projection, both over orb.Point coordinates.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Distance returns the great-circle distance in meters between a and b.
func Distance(a, b orb.Point) float64 {
	return orbgeo.Distance(a, b)
}

// PointToSegmentDist computes the distance in meters from p to the closest
// point on segment ab, and the projection ratio along ab in [0, 1]
// (0 = at a, 1 = at b). Degenerate (zero-length) segments report the
// distance to a with ratio 0.
func PointToSegmentDist(p, a, b orb.Point) (dist float64, ratio float64) {
	if a == b {
		return Distance(p, a), 0
	}

	// Project into an equirectangular plane centered on the segment's
	// latitude; good enough for the short segments road-network edges are
	// made of, and much cheaper than repeated great-circle projection.
	cosLat := math.Cos((a.Lat() + b.Lat()) / 2 * math.Pi / 180)
	ax, ay := a.Lon()*cosLat, a.Lat()
	bx, by := b.Lon()*cosLat, b.Lat()
	px, py := p.Lon()*cosLat, p.Lat()

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a), 0
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := orb.Point{a.Lon() + t*(b.Lon()-a.Lon()), a.Lat() + t*(b.Lat()-a.Lat())}
	return Distance(p, closest), t
}

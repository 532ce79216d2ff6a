package geo

import "math"

// Simplify reduces the vertex count of a geometry using Douglas-Peucker
// with the tolerance given in projected (Mollweide) meters.
//
// Topology is preserved conservatively: rings are never dropped, and a ring
// that would degenerate below four points keeps its original shape. Point
// geometries pass through untouched. Callers must simplify before taking
// the centroid so both operate on the same geometry revision.
func Simplify(g GeoJSONGeometry, tolerance float64) GeoJSONGeometry {
	if tolerance <= 0 || g.Type == "Point" {
		return g
	}

	out := GeoJSONGeometry{Type: g.Type}
	for _, poly := range g.Polygons {
		simplified := make(Polygon, 0, len(poly))
		for _, ring := range poly {
			simplified = append(simplified, simplifyRing(ring, tolerance))
		}
		out.Polygons = append(out.Polygons, simplified)
	}

	return out
}

func simplifyRing(ring Ring, tolerance float64) Ring {
	if len(ring) < 5 {
		return ring
	}

	proj := make([]projected, len(ring))
	for i, p := range ring {
		x, y := MollweideForward(p.Lng, p.Lat)
		proj[i] = projected{x: x, y: y}
	}

	keep := make([]bool, len(ring))
	keep[0] = true
	keep[len(ring)-1] = true
	douglasPeucker(proj, 0, len(ring)-1, tolerance, keep)

	count := 0
	for _, k := range keep {
		if k {
			count++
		}
	}
	// A closed ring needs at least 4 points to stay a polygon.
	if count < 4 {
		return ring
	}

	out := make(Ring, 0, count)
	for i, k := range keep {
		if k {
			out = append(out, ring[i])
		}
	}
	return out
}

func douglasPeucker(points []projected, first, last int, tolerance float64, keep []bool) {
	if last <= first+1 {
		return
	}

	maxDist := 0.0
	maxIdx := first
	for i := first + 1; i < last; i++ {
		d := perpendicularDistance(points[i], points[first], points[last])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist > tolerance {
		keep[maxIdx] = true
		douglasPeucker(points, first, maxIdx, tolerance, keep)
		douglasPeucker(points, maxIdx, last, tolerance, keep)
	}
}

func perpendicularDistance(p, a, b projected) float64 {
	dx := b.x - a.x
	dy := b.y - a.y

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.x-a.x, p.y-a.y)
	}

	// Distance from p to the line through a and b.
	return math.Abs(dy*p.x-dx*p.y+b.x*a.y-b.y*a.x) / math.Sqrt(lenSq)
}

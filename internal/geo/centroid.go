package geo

import "math"

// projected is a point in Mollweide meters.
type projected struct {
	x, y float64
}

// Centroid computes the representative point of a geometry in the Mollweide
// projection and returns it in WGS84. Point geometries are their own
// centroid. Returns false for empty geometries.
func Centroid(g GeoJSONGeometry) (Point, bool) {
	if g.Type == "Point" {
		if g.Point == nil {
			return Point{}, false
		}
		return *g.Point, true
	}

	var areaSum, cxSum, cySum float64
	var vertexCount int
	var vxSum, vySum float64

	for _, poly := range g.Polygons {
		for _, ring := range poly {
			proj := projectRing(ring)
			if len(proj) < 3 {
				continue
			}

			// Signed area keeps holes subtractive when rings follow the
			// GeoJSON winding convention.
			area, cx, cy := ringCentroid(proj)
			areaSum += area
			cxSum += cx * area
			cySum += cy * area

			for _, p := range proj {
				vxSum += p.x
				vySum += p.y
				vertexCount++
			}
		}
	}

	if vertexCount == 0 {
		return Point{}, false
	}

	var x, y float64
	if math.Abs(areaSum) < 1e-6 {
		// Degenerate geometry (zero area): fall back to the vertex mean.
		x = vxSum / float64(vertexCount)
		y = vySum / float64(vertexCount)
	} else {
		x = cxSum / areaSum
		y = cySum / areaSum
	}

	lng, lat := MollweideInverse(x, y)
	return Point{Lng: lng, Lat: lat}, true
}

// ringCentroid returns the signed area and centroid of a projected ring via
// the shoelace formula.
func ringCentroid(ring []projected) (area, cx, cy float64) {
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := ring[i].x*ring[j].y - ring[j].x*ring[i].y
		area += cross
		cx += (ring[i].x + ring[j].x) * cross
		cy += (ring[i].y + ring[j].y) * cross
	}

	area /= 2.0
	if area == 0 {
		return 0, 0, 0
	}
	cx /= 6.0 * area
	cy /= 6.0 * area

	return area, cx, cy
}

func projectRing(ring Ring) []projected {
	// Drop the closing duplicate so the shoelace wrap-around is clean.
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}

	proj := make([]projected, 0, n)
	for i := 0; i < n; i++ {
		x, y := MollweideForward(ring[i].Lng, ring[i].Lat)
		proj = append(proj, projected{x: x, y: y})
	}
	return proj
}

package geo

import "math"

// Earth radius used by the Mollweide projection, in meters.
const earthRadius = 6378137.0

const sqrt2 = math.Sqrt2

// MollweideForward converts WGS84 (Lon/Lat in degrees) to Mollweide
// equal-area coordinates in meters.
//
// Centroids taken in an equal-area projection avoid the high-latitude bias
// of naive lat/lng averaging, which matters for a world map centered on
// fair representation.
func MollweideForward(lon, lat float64) (x, y float64) {
	lambda := lon * (math.Pi / 180.0)
	phi := lat * (math.Pi / 180.0)

	theta := solveTheta(phi)

	x = earthRadius * (2.0 * sqrt2 / math.Pi) * lambda * math.Cos(theta)
	y = earthRadius * sqrt2 * math.Sin(theta)

	return x, y
}

// MollweideInverse converts Mollweide coordinates in meters back to WGS84
// (Lon/Lat in degrees).
func MollweideInverse(x, y float64) (lon, lat float64) {
	sinTheta := y / (earthRadius * sqrt2)
	if sinTheta > 1 {
		sinTheta = 1
	} else if sinTheta < -1 {
		sinTheta = -1
	}
	theta := math.Asin(sinTheta)

	sinPhi := (2.0*theta + math.Sin(2.0*theta)) / math.Pi
	if sinPhi > 1 {
		sinPhi = 1
	} else if sinPhi < -1 {
		sinPhi = -1
	}
	lat = math.Asin(sinPhi) * (180.0 / math.Pi)

	cosTheta := math.Cos(theta)
	if cosTheta == 0 {
		// Pole: longitude is undefined, pick the central meridian.
		return 0, lat
	}
	lon = (math.Pi * x / (2.0 * sqrt2 * earthRadius * cosTheta)) * (180.0 / math.Pi)

	return lon, lat
}

// solveTheta solves 2θ + sin 2θ = π sin φ by Newton iteration.
func solveTheta(phi float64) float64 {
	// The equation degenerates at the poles.
	if math.Abs(phi) >= math.Pi/2 {
		return math.Copysign(math.Pi/2, phi)
	}

	theta := phi
	target := math.Pi * math.Sin(phi)

	for i := 0; i < 25; i++ {
		delta := (2.0*theta + math.Sin(2.0*theta) - target) / (2.0 + 2.0*math.Cos(2.0*theta))
		theta -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}

	return theta
}

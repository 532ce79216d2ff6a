// Package geo handles geographic data structures and coordinate conversions.
package geo

import (
	"encoding/json"
	"fmt"
)

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties"`
	Type       string                 `json:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry"`
}

// Point is a geographic coordinate in WGS84.
type Point struct {
	Lng float64
	Lat float64
}

// Ring is a closed line of points (first == last in well-formed input).
type Ring []Point

// Polygon is an outer ring followed by zero or more hole rings.
type Polygon []Ring

// GeoJSONGeometry represents the geometry of a feature. Point, Polygon and
// MultiPolygon are supported; Polygons holds one polygon for "Polygon" and
// several for "MultiPolygon".
type GeoJSONGeometry struct {
	Type     string
	Point    *Point
	Polygons []Polygon
}

// UnmarshalJSON decodes the geometry based on its type field.
func (g *GeoJSONGeometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Type = raw.Type
	g.Point = nil
	g.Polygons = nil

	switch raw.Type {
	case "Point":
		var coords []float64
		if err := json.Unmarshal(raw.Coordinates, &coords); err != nil {
			return err
		}
		if len(coords) < 2 {
			return fmt.Errorf("point with %d coordinates", len(coords))
		}
		g.Point = &Point{Lng: coords[0], Lat: coords[1]}

	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(raw.Coordinates, &coords); err != nil {
			return err
		}
		g.Polygons = []Polygon{toPolygon(coords)}

	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(raw.Coordinates, &coords); err != nil {
			return err
		}
		for _, poly := range coords {
			g.Polygons = append(g.Polygons, toPolygon(poly))
		}

	default:
		return fmt.Errorf("unsupported geometry type %q", raw.Type)
	}

	return nil
}

// MarshalJSON encodes the geometry back into standard GeoJSON.
func (g GeoJSONGeometry) MarshalJSON() ([]byte, error) {
	var coords interface{}

	switch g.Type {
	case "Point":
		if g.Point == nil {
			return nil, fmt.Errorf("point geometry without point")
		}
		coords = []float64{g.Point.Lng, g.Point.Lat}

	case "Polygon":
		if len(g.Polygons) != 1 {
			return nil, fmt.Errorf("polygon geometry with %d polygons", len(g.Polygons))
		}
		coords = fromPolygon(g.Polygons[0])

	case "MultiPolygon":
		multi := make([][][][]float64, 0, len(g.Polygons))
		for _, poly := range g.Polygons {
			multi = append(multi, fromPolygon(poly))
		}
		coords = multi

	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}

	return json.Marshal(struct {
		Type        string      `json:"type"`
		Coordinates interface{} `json:"coordinates"`
	}{Type: g.Type, Coordinates: coords})
}

func toPolygon(coords [][][]float64) Polygon {
	poly := make(Polygon, 0, len(coords))
	for _, rawRing := range coords {
		ring := make(Ring, 0, len(rawRing))
		for _, pos := range rawRing {
			if len(pos) < 2 {
				continue
			}
			ring = append(ring, Point{Lng: pos[0], Lat: pos[1]})
		}
		poly = append(poly, ring)
	}
	return poly
}

func fromPolygon(poly Polygon) [][][]float64 {
	out := make([][][]float64, 0, len(poly))
	for _, ring := range poly {
		rawRing := make([][]float64, 0, len(ring))
		for _, p := range ring {
			rawRing = append(rawRing, []float64{p.Lng, p.Lat})
		}
		out = append(out, rawRing)
	}
	return out
}

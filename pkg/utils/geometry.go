package utils

import (
	"fmt"
	"strings"
)

// GeometryToWKT converts a normalized GeoJSON-style geometry map to a WKT
// string. The map is expected to carry a "type" key and concrete coordinate
// slices ([]float64 for Point, [][]float64 for LineString, [][][]float64 for
// Polygon), as produced by convert.NormalizeGeometry.
//
// Returns empty string if geometry is nil or invalid.
func GeometryToWKT(geometry map[string]interface{}) string {
	if geometry == nil {
		return ""
	}

	geometryType, ok := geometry["type"].(string)
	if !ok {
		return ""
	}
	coordinates := geometry["coordinates"]

	switch geometryType {
	case "Point":
		coords, ok := coordinates.([]float64)
		if ok && len(coords) >= 2 {
			return fmt.Sprintf("POINT (%.10f %.10f)", coords[0], coords[1])
		}
	case "LineString":
		coords, ok := coordinates.([][]float64)
		if ok && len(coords) > 0 {
			var points []string
			for _, c := range coords {
				if len(c) >= 2 {
					points = append(points, fmt.Sprintf("%.10f %.10f", c[0], c[1]))
				}
			}
			if len(points) == 0 { // Check if points were actually added
				return ""
			}
			return fmt.Sprintf("LINESTRING (%s)", strings.Join(points, ", "))
		}
	case "Polygon":
		rings, ok := coordinates.([][][]float64)
		if ok && len(rings) > 0 {
			var polygonRings []string
			for _, ring := range rings {
				var points []string
				for _, c := range ring {
					if len(c) >= 2 {
						points = append(points, fmt.Sprintf("%.10f %.10f", c[0], c[1]))
					}
				}
				// Ensure ring is closed for WKT
				if len(points) > 0 {
					if points[0] != points[len(points)-1] {
						points = append(points, points[0])
					}
					polygonRings = append(polygonRings, fmt.Sprintf("(%s)", strings.Join(points, ", ")))
				}
			}
			if len(polygonRings) == 0 { // Check if any valid rings were processed
				return ""
			}
			return fmt.Sprintf("POLYGON (%s)", strings.Join(polygonRings, ", "))
		}
	}

	return ""
}

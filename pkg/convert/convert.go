// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package convert provides functions for converting layer features between
// different geospatial data formats.
package convert

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/layer"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/utils"
)

// MarshalGeoJSON renders a FeatureCollection as indented JSON.
func MarshalGeoJSON(geoJSON *GeoJSON) (string, error) {
	data, err := json.MarshalIndent(geoJSON, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal GeoJSON: %v", err)
	}
	return string(data), nil
}

// ToGeoJSON converts a layer's features to a GeoJSON FeatureCollection.
// It handles:
//   - Point, LineString and Polygon geometries
//   - Coordinates stored as concrete float slices or as decoded JSON values
//   - Feature attributes as properties
//
// Features without a geometry are skipped.
//
// Parameters:
//   - features: Slice of layer.Feature values to convert
//   - name: Collection name (usually the layer name)
//
// Returns:
//   - *GeoJSON: Pointer to the converted GeoJSON FeatureCollection
//   - error: Any error that occurred during conversion
func ToGeoJSON(features []layer.Feature, name string) (*GeoJSON, error) {
	geoJSON := GeoJSON{
		Type: "FeatureCollection",
		Name: name,
		CRS: CRS{
			Type: "name",
			Properties: CRSProps{
				Name: "urn:ogc:def:crs:OGC:1.3:CRS84",
			},
		},
		Features: []GeoJSONFeature{},
	}

	for _, feature := range features {
		geometry := NormalizeGeometry(feature.Geometry)
		if geometry == nil {
			continue
		}
		geoJSON.Features = append(geoJSON.Features, GeoJSONFeature{
			Type:       "Feature",
			Properties: feature.Attributes,
			Geometry:   geometry,
		})
	}

	return &geoJSON, nil
}

// NormalizeGeometry rewrites a GeoJSON-style geometry map so that its
// coordinates use concrete float slice types ([]float64, [][]float64,
// [][][]float64). Geometry decoded from JSON arrives as nested []interface{}
// values; geometry built in memory is usually already concrete. Returns nil
// for a nil, typeless or unsupported geometry.
func NormalizeGeometry(geometry map[string]interface{}) map[string]interface{} {
	if geometry == nil {
		return nil
	}
	geometryType, ok := geometry[KeyType].(string)
	if !ok {
		return nil
	}
	coordinates := geometry[KeyCoordinates]

	switch geometryType {
	case "Point":
		coords := asPosition(coordinates)
		if coords == nil {
			return nil
		}
		return map[string]interface{}{KeyType: "Point", KeyCoordinates: coords}
	case "LineString":
		coords := asPositionList(coordinates)
		if len(coords) == 0 {
			return nil
		}
		return map[string]interface{}{KeyType: "LineString", KeyCoordinates: coords}
	case "Polygon":
		rings := asRingList(coordinates)
		if len(rings) == 0 {
			return nil
		}
		// Ensure every ring is closed.
		for i, ring := range rings {
			if len(ring) > 0 {
				first, last := ring[0], ring[len(ring)-1]
				if first[0] != last[0] || first[1] != last[1] {
					rings[i] = append(ring, first)
				}
			}
		}
		return map[string]interface{}{KeyType: "Polygon", KeyCoordinates: rings}
	default:
		return nil
	}
}

// asPosition coerces a single GeoJSON position to []float64.
func asPosition(v interface{}) []float64 {
	switch c := v.(type) {
	case []float64:
		if len(c) >= MinCoords {
			return []float64{c[0], c[1]}
		}
	case []interface{}:
		if len(c) >= MinCoords {
			x, xOk := c[0].(float64)
			y, yOk := c[1].(float64)
			if xOk && yOk {
				return []float64{x, y}
			}
		}
	}
	return nil
}

// asPositionList coerces a list of positions to [][]float64.
func asPositionList(v interface{}) [][]float64 {
	switch c := v.(type) {
	case [][]float64:
		var out [][]float64
		for _, p := range c {
			if pos := asPosition(p); pos != nil {
				out = append(out, pos)
			}
		}
		return out
	case []interface{}:
		var out [][]float64
		for _, p := range c {
			if pos := asPosition(p); pos != nil {
				out = append(out, pos)
			}
		}
		return out
	}
	return nil
}

// asRingList coerces a list of rings to [][][]float64.
func asRingList(v interface{}) [][][]float64 {
	switch c := v.(type) {
	case [][][]float64:
		var out [][][]float64
		for _, r := range c {
			if ring := asPositionList(r); len(ring) > 0 {
				out = append(out, ring)
			}
		}
		return out
	case []interface{}:
		var out [][][]float64
		for _, r := range c {
			if ring := asPositionList(r); len(ring) > 0 {
				out = append(out, ring)
			}
		}
		return out
	}
	return nil
}

// FeaturesToCSV converts a layer's features to a CSV string.
// The CSV includes:
//   - All unique attribute fields as columns
//   - WKT geometry representation in the last column
//   - Sorted column headers for consistency
//
// Parameters:
//   - features: Slice of layer.Feature values to convert
//
// Returns:
//   - string: CSV formatted string
//   - error: Any error that occurred during conversion
func FeaturesToCSV(features []layer.Feature) (string, error) {
	if len(features) == 0 {
		return "", nil
	}

	// Determine all unique headers from all features' attributes
	headerMap := make(map[string]bool)
	for _, feature := range features {
		for k := range feature.Attributes {
			headerMap[k] = true
		}
	}

	var headers []string
	for k := range headerMap {
		headers = append(headers, k)
	}
	sort.Strings(headers) // Sort for consistent column order
	headers = append(headers, WKTColumn)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, feature := range features {
		geometry := NormalizeGeometry(feature.Geometry)
		row := make([]string, len(headers))
		for i, header := range headers {
			if header == WKTColumn {
				row[i] = utils.GeometryToWKT(geometry)
			} else {
				if val, ok := feature.Attributes[header]; ok && val != nil {
					row[i] = fmt.Sprintf("%v", val)
				} else {
					row[i] = "" // Handle nil or missing attributes
				}
			}
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row to CSV: %v", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error during CSV writing: %v", err)
	}

	return buf.String(), nil
}

// FeaturesToText converts a layer's features to a formatted text string.
// The output includes:
//   - Layer name and feature count
//   - Feature attributes in sorted order
//   - WKT geometry representation
//
// Parameters:
//   - features: Slice of layer.Feature values to convert
//   - layerName: Name of the layer for the header
//
// Returns:
//   - string: Formatted text output
//   - error: Any error that occurred during conversion
func FeaturesToText(features []layer.Feature, layerName string) (string, error) {
	if len(features) == 0 {
		return "", fmt.Errorf("no features to convert to text")
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("Layer: %s\n", layerName))
	output.WriteString(fmt.Sprintf("Total Features: %d\n", len(features)))
	output.WriteString("========================================\n\n")

	for i, feature := range features {
		output.WriteString(fmt.Sprintf("--- Feature %d ---\n", i+1))

		// Sort attribute keys for consistent order
		var keys []string
		for k := range feature.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		output.WriteString("Attributes:\n")
		for _, k := range keys {
			output.WriteString(fmt.Sprintf("  %s: %v\n", k, feature.Attributes[k]))
		}

		output.WriteString("Geometry (WKT):\n")
		wkt := utils.GeometryToWKT(NormalizeGeometry(feature.Geometry))
		if wkt == "" {
			output.WriteString("  <No Geometry>\n")
		} else {
			output.WriteString(fmt.Sprintf("  %s\n", wkt))
		}
		output.WriteString("\n") // Add a blank line between features
	}

	return output.String(), nil
}

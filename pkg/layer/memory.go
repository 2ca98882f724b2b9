// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

package layer

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// MemoryLayer is an in-memory vector layer. It implements FeatureLayer and is
// the concrete layer type used by the CLI and tests.
type MemoryLayer struct {
	LayerName   string
	GeomType    string
	FieldTypes  map[string]string
	CRS         string
	SourcePath  string
	FeatureList []Feature
}

// Name returns the layer name.
func (m *MemoryLayer) Name() string { return m.LayerName }

// Type returns VectorLayer; memory layers are always vector.
func (m *MemoryLayer) Type() Type { return VectorLayer }

// GeometryType returns the layer's geometry type name, e.g. "Point".
func (m *MemoryLayer) GeometryType() string { return m.GeomType }

// Fields maps field names to type names.
func (m *MemoryLayer) Fields() map[string]string { return m.FieldTypes }

// FeatureCount returns the number of features in the layer.
func (m *MemoryLayer) FeatureCount() int64 { return int64(len(m.FeatureList)) }

// CRSAuthID returns the layer CRS authority identifier.
func (m *MemoryLayer) CRSAuthID() string { return m.CRS }

// Source returns the locator of the layer's backing data, or "memory" when
// the layer was built in memory.
func (m *MemoryLayer) Source() string {
	if m.SourcePath == "" {
		return "memory"
	}
	return m.SourcePath
}

// Features returns the layer's features in insertion order.
func (m *MemoryLayer) Features() []Feature { return m.FeatureList }

// Extent computes the bounding rectangle over all feature coordinates.
// An empty layer yields a zero Extent.
func (m *MemoryLayer) Extent() Extent {
	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	seen := false

	for _, f := range m.FeatureList {
		if f.Geometry == nil {
			continue
		}
		walkCoordinates(f.Geometry["coordinates"], func(x, y float64) {
			seen = true
			xmin = math.Min(xmin, x)
			xmax = math.Max(xmax, x)
			ymin = math.Min(ymin, y)
			ymax = math.Max(ymax, y)
		})
	}
	if !seen {
		return Extent{}
	}
	return Extent{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
}

// walkCoordinates visits every x,y position in a GeoJSON coordinates value.
// Coordinates may be []float64 (built in memory) or []interface{} (decoded
// from JSON), nested to any depth.
func walkCoordinates(coords interface{}, visit func(x, y float64)) {
	switch c := coords.(type) {
	case []float64:
		if len(c) >= 2 {
			visit(c[0], c[1])
		}
	case []interface{}:
		if len(c) >= 2 {
			x, xOk := toFloat(c[0])
			y, yOk := toFloat(c[1])
			if xOk && yOk {
				visit(x, y)
				return
			}
		}
		for _, nested := range c {
			walkCoordinates(nested, visit)
		}
	case [][]float64:
		for _, nested := range c {
			walkCoordinates(nested, visit)
		}
	case [][][]float64:
		for _, nested := range c {
			walkCoordinates(nested, visit)
		}
	}
}

func toFloat(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// geoJSONFile is the subset of a GeoJSON FeatureCollection needed to load a
// layer from disk.
type geoJSONFile struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	CRS      *struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"crs"`
	Features []struct {
		Properties map[string]interface{} `json:"properties"`
		Geometry   map[string]interface{} `json:"geometry"`
	} `json:"features"`
}

// FromGeoJSONFile loads a GeoJSON FeatureCollection from path into a
// MemoryLayer. The layer name defaults to the collection name, or name if
// the file carries none.
func FromGeoJSONFile(path, name string) (*MemoryLayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON file: %v", err)
	}

	var file geoJSONFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON file: %v", err)
	}
	if file.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected a FeatureCollection, got %q", file.Type)
	}

	m := &MemoryLayer{
		LayerName:  name,
		FieldTypes: map[string]string{},
		CRS:        "EPSG:4326",
		SourcePath: path,
	}
	if file.Name != "" {
		m.LayerName = file.Name
	}
	if file.CRS != nil && file.CRS.Properties.Name != "" {
		m.CRS = file.CRS.Properties.Name
	}

	for _, f := range file.Features {
		if m.GeomType == "" && f.Geometry != nil {
			if t, ok := f.Geometry["type"].(string); ok {
				m.GeomType = t
			}
		}
		for k, v := range f.Properties {
			if _, ok := m.FieldTypes[k]; !ok {
				m.FieldTypes[k] = jsonTypeName(v)
			}
		}
		m.FeatureList = append(m.FeatureList, Feature{
			Attributes: f.Properties,
			Geometry:   f.Geometry,
		})
	}
	return m, nil
}

func jsonTypeName(v interface{}) string {
	switch v.(type) {
	case string:
		return "String"
	case float64:
		return "Real"
	case bool:
		return "Boolean"
	default:
		return "String"
	}
}

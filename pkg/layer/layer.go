// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package layer defines the map-layer object model used by the export and
// upload helpers, together with layer metadata introspection.
package layer

// Type classifies a map layer.
type Type int

const (
	// VectorLayer is a geometry+attribute dataset.
	VectorLayer Type = iota
	// RasterLayer is a gridded dataset.
	RasterLayer
)

// String returns the lowercase classification name used in layer info output.
func (t Type) String() string {
	switch t {
	case VectorLayer:
		return "vector"
	case RasterLayer:
		return "raster"
	default:
		return "unknown"
	}
}

// Extent is a layer's bounding rectangle in its own CRS.
type Extent struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

// Feature is a single geographic feature: attributes plus a GeoJSON-style
// geometry map ("type" and "coordinates" keys).
type Feature struct {
	Attributes map[string]interface{} `json:"properties"`
	Geometry   map[string]interface{} `json:"geometry"`
}

// Layer is the host application's map-layer object, exposed to this module
// as a read-only interface.
type Layer interface {
	Name() string
	Type() Type
	GeometryType() string
	// Fields maps field names to their type names. Empty for raster layers.
	Fields() map[string]string
	FeatureCount() int64
	// CRSAuthID is the authority identifier of the layer CRS, e.g. "EPSG:4326".
	CRSAuthID() string
	Extent() Extent
	// Source is an opaque locator for the layer's backing data.
	Source() string
}

// FeatureLayer is a vector layer whose features can be enumerated, which is
// what the vector file writer needs.
type FeatureLayer interface {
	Layer
	Features() []Feature
}

// Info is the flat metadata record produced by GetInfo. Vector-only fields
// are omitted from JSON for raster layers.
type Info struct {
	Error        string            `json:"error,omitempty"`
	Name         string            `json:"name,omitempty"`
	Type         string            `json:"type,omitempty"`
	GeometryType string            `json:"geometry_type,omitempty"`
	Fields       map[string]string `json:"fields,omitempty"`
	FeatureCount *int64            `json:"feature_count,omitempty"`
	CRS          string            `json:"crs,omitempty"`
	Extent       *Extent           `json:"extent,omitempty"`
	DataSource   string            `json:"data_source,omitempty"`
}

// NoActiveLayerMessage is returned by GetInfo when no layer is supplied.
const NoActiveLayerMessage = "No active layer selected"

// GetInfo collects a layer's metadata into a flat Info record.
//
// A nil layer yields Info{Error: NoActiveLayerMessage}, which marshals to
// exactly {"error": "No active layer selected"}. Geometry type, fields and
// feature count are only populated for vector layers.
func GetInfo(l Layer) Info {
	if l == nil {
		return Info{Error: NoActiveLayerMessage}
	}

	info := Info{
		Name: l.Name(),
		Type: l.Type().String(),
	}
	if l.Type() == VectorLayer {
		info.GeometryType = l.GeometryType()
		info.Fields = l.Fields()
		count := l.FeatureCount()
		info.FeatureCount = &count
	}
	info.CRS = l.CRSAuthID()
	extent := l.Extent()
	info.Extent = &extent
	info.DataSource = l.Source()
	return info
}

// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

package convert

// GeoJSON represents a GeoJSON FeatureCollection.
type GeoJSON struct {
	Type     string           `json:"type"`
	Name     string           `json:"name,omitempty"`
	CRS      CRS              `json:"crs"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature represents a GeoJSON Feature.
type GeoJSONFeature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   interface{}            `json:"geometry"`
}

// CRS represents a Coordinate Reference System.
type CRS struct {
	Type       string   `json:"type"`
	Properties CRSProps `json:"properties"`
}

// CRSProps represents Coordinate Reference System properties.
type CRSProps struct {
	Name string `json:"name"`
}

// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/layer"
)

func testLayer() *layer.MemoryLayer {
	return &layer.MemoryLayer{
		LayerName: "detections",
		GeomType:  "Point",
		FieldTypes: map[string]string{
			"Species": "String",
		},
		CRS: "EPSG:4326",
		FeatureList: []layer.Feature{
			{
				Attributes: map[string]interface{}{"Species": "tuna"},
				Geometry:   map[string]interface{}{"type": "Point", "coordinates": []float64{-122.0, 37.0}},
			},
		},
	}
}

func TestWriteAsVectorFormat(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "writer-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tests := []struct {
		name     string
		driver   string
		ext      string
		contains string
	}{
		{"GeoJSON", DriverGeoJSON, "geojson", `"FeatureCollection"`},
		{"GeoJSON lowercase driver", "geojson", "geojson2", `"FeatureCollection"`},
		{"KML", DriverKML, "kml", "<kml"},
		{"GPX", DriverGPX, "gpx", "<gpx"},
		{"CSV", DriverCSV, "csv", "WKT_Geometry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, "out."+tt.ext)
			code := Default.WriteAsVectorFormat(testLayer(), path, tt.driver)
			if code != NoError {
				t.Fatalf("WriteAsVectorFormat returned code %d (%s)", int(code), code)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read output file: %v", err)
			}
			if !strings.Contains(string(data), tt.contains) {
				t.Errorf("Output missing %q. Got: %.200s", tt.contains, string(data))
			}
		})
	}
}

func TestWriteGeoJSONRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "writer-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "out.geojson")
	if code := Default.WriteAsVectorFormat(testLayer(), path, DriverGeoJSON); code != NoError {
		t.Fatalf("WriteAsVectorFormat returned code %d", int(code))
	}

	reloaded, err := layer.FromGeoJSONFile(path, "reloaded")
	if err != nil {
		t.Fatalf("Failed to reload written GeoJSON: %v", err)
	}
	if reloaded.FeatureCount() != 1 {
		t.Errorf("Expected 1 feature after round trip, got %d", reloaded.FeatureCount())
	}
	if reloaded.Name() != "detections" {
		t.Errorf("Expected collection name 'detections', got %q", reloaded.Name())
	}
}

func TestWriteErrors(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "writer-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)
	path := filepath.Join(tempDir, "out.any")

	tests := []struct {
		name   string
		layer  layer.Layer
		path   string
		driver string
		want   Error
	}{
		{"Nil layer", nil, path, DriverGeoJSON, ErrInvalidLayer},
		{"Unknown driver", testLayer(), path, "SHP", ErrDriverNotFound},
		{"GPKG needs GDAL path", testLayer(), path, "GPKG", ErrDriverNotFound},
		{"Unwritable destination", testLayer(), filepath.Join(tempDir, "missing", "out.geojson"), DriverGeoJSON, ErrCreateDataSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := Default.WriteAsVectorFormat(tt.layer, tt.path, tt.driver); code != tt.want {
				t.Errorf("Expected code %d (%s), got %d (%s)", int(tt.want), tt.want, int(code), code)
			}
		})
	}
}

func TestNonFeatureLayerIsInvalid(t *testing.T) {
	code := Default.WriteAsVectorFormat(rasterOnlyLayer{}, "unused", DriverGeoJSON)
	if code != ErrInvalidLayer {
		t.Errorf("Expected ErrInvalidLayer for layer without features, got %d", int(code))
	}
}

// rasterOnlyLayer implements Layer but not FeatureLayer.
type rasterOnlyLayer struct{}

func (rasterOnlyLayer) Name() string              { return "raster" }
func (rasterOnlyLayer) Type() layer.Type          { return layer.RasterLayer }
func (rasterOnlyLayer) GeometryType() string      { return "" }
func (rasterOnlyLayer) Fields() map[string]string { return nil }
func (rasterOnlyLayer) FeatureCount() int64       { return 0 }
func (rasterOnlyLayer) CRSAuthID() string         { return "EPSG:3857" }
func (rasterOnlyLayer) Extent() layer.Extent      { return layer.Extent{} }
func (rasterOnlyLayer) Source() string            { return "raster.tif" }

func TestErrorString(t *testing.T) {
	tests := []struct {
		code Error
		want string
	}{
		{NoError, "no error"},
		{ErrDriverNotFound, "driver not found"},
		{ErrCreateDataSource, "failed to create data source"},
		{ErrInvalidLayer, "invalid layer"},
		{ErrFeatureWriteFailed, "failed to write features"},
		{Error(42), "error code 42"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("Error(%d).String() = %q, want %q", int(tt.code), got, tt.want)
		}
	}
}

func TestWrittenGeoJSONIsValidJSON(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "writer-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "out.geojson")
	if code := Default.WriteAsVectorFormat(testLayer(), path, DriverGeoJSON); code != NoError {
		t.Fatalf("WriteAsVectorFormat returned code %d", int(code))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Written GeoJSON is not valid JSON: %v", err)
	}
	if decoded["type"] != "FeatureCollection" {
		t.Errorf("Expected FeatureCollection, got %v", decoded["type"])
	}
}

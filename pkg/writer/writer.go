// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package writer implements the vector file writer: it serializes a layer's
// features to a named format driver and reports a numeric status code, with
// NoError as the success sentinel.
package writer

import (
	"fmt"
	"os"
	"strings"

	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/convert"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/export"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/layer"
)

// Error is the numeric status code returned by a write. Callers treat
// NoError as success and any other value as failure.
type Error int

const (
	// NoError indicates the layer was written successfully.
	NoError Error = iota
	// ErrDriverNotFound indicates the requested driver is not registered.
	ErrDriverNotFound
	// ErrCreateDataSource indicates the destination file could not be written.
	ErrCreateDataSource
	// ErrInvalidLayer indicates a nil layer or one without enumerable features.
	ErrInvalidLayer
	// ErrFeatureWriteFailed indicates feature serialization failed.
	ErrFeatureWriteFailed
)

// String returns a short description of the status code.
func (e Error) String() string {
	switch e {
	case NoError:
		return "no error"
	case ErrDriverNotFound:
		return "driver not found"
	case ErrCreateDataSource:
		return "failed to create data source"
	case ErrInvalidLayer:
		return "invalid layer"
	case ErrFeatureWriteFailed:
		return "failed to write features"
	default:
		return fmt.Sprintf("error code %d", int(e))
	}
}

// Driver names accepted by the built-in writer. GeoPackage output is not
// handled here; it needs the GDAL-based conversion path.
const (
	DriverGeoJSON = "GeoJSON"
	DriverKML     = "KML"
	DriverGPX     = "GPX"
	DriverCSV     = "CSV"
)

// FilePerm is the mode used for written vector files.
const FilePerm = 0600

// Writer writes a layer to a destination path in the format named by
// driverName and returns a status code.
type Writer interface {
	WriteAsVectorFormat(l layer.Layer, path, driverName string) Error
}

// FileWriter is the built-in Writer backed by the convert and export
// packages.
type FileWriter struct{}

// Default is the writer used when callers have no reason to supply their own.
var Default Writer = FileWriter{}

// WriteAsVectorFormat serializes l's features to path using the named driver.
func (FileWriter) WriteAsVectorFormat(l layer.Layer, path, driverName string) Error {
	if l == nil {
		return ErrInvalidLayer
	}
	fl, ok := l.(layer.FeatureLayer)
	if !ok {
		return ErrInvalidLayer
	}

	content, code := serialize(fl, driverName)
	if code != NoError {
		return code
	}
	if err := os.WriteFile(path, []byte(content), FilePerm); err != nil {
		return ErrCreateDataSource
	}
	return NoError
}

func serialize(l layer.FeatureLayer, driverName string) (string, Error) {
	switch strings.ToLower(driverName) {
	case strings.ToLower(DriverGeoJSON):
		geoJSON, err := convert.ToGeoJSON(l.Features(), l.Name())
		if err != nil {
			return "", ErrFeatureWriteFailed
		}
		data, err := convert.MarshalGeoJSON(geoJSON)
		if err != nil {
			return "", ErrFeatureWriteFailed
		}
		return data, NoError
	case strings.ToLower(DriverKML):
		geoJSON, err := convert.ToGeoJSON(l.Features(), l.Name())
		if err != nil {
			return "", ErrFeatureWriteFailed
		}
		kml, err := export.ConvertGeoJSONToKML(geoJSON, l.Name())
		if err != nil {
			return "", ErrFeatureWriteFailed
		}
		return kml, NoError
	case strings.ToLower(DriverGPX):
		geoJSON, err := convert.ToGeoJSON(l.Features(), l.Name())
		if err != nil {
			return "", ErrFeatureWriteFailed
		}
		gpx, err := export.ConvertGeoJSONToGPX(geoJSON, l.Name())
		if err != nil {
			return "", ErrFeatureWriteFailed
		}
		return gpx, NoError
	case strings.ToLower(DriverCSV):
		csv, err := convert.FeaturesToCSV(l.Features())
		if err != nil {
			return "", ErrFeatureWriteFailed
		}
		return csv, NoError
	default:
		return "", ErrDriverNotFound
	}
}

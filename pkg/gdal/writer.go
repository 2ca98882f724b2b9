// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

package gdal

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/layer"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/writer"
)

// VectorWriter extends the built-in vector file writer with GDAL-backed
// drivers: formats the built-in writer does not handle (GPKG and anything
// else OGR can write) are produced by serializing to GeoJSON first and
// translating with GDAL.
type VectorWriter struct {
	// Inner handles the built-in drivers. Defaults to writer.Default.
	Inner writer.Writer
}

// WriteAsVectorFormat writes l to path in the named driver format.
func (v VectorWriter) WriteAsVectorFormat(l layer.Layer, path, driverName string) writer.Error {
	inner := v.Inner
	if inner == nil {
		inner = writer.Default
	}

	switch strings.ToLower(driverName) {
	case "geojson", "kml", "gpx", "csv":
		return inner.WriteAsVectorFormat(l, path, driverName)
	}

	tempFile := filepath.Join(os.TempDir(), uuid.NewString()+".geojson")
	defer os.Remove(tempFile)

	if code := inner.WriteAsVectorFormat(l, tempFile, writer.DriverGeoJSON); code != writer.NoError {
		return code
	}
	if err := Translate(tempFile, path, driverName); err != nil {
		return writer.ErrCreateDataSource
	}
	return writer.NoError
}

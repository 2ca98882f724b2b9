// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package gdal converts vector datasets between formats, either through the
// GDAL library bindings or by shelling out to the ogr2ogr command-line tool.
package gdal

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/google/uuid"
)

func init() {
	godal.RegisterAll()
}

// Converter converts datasets with the GDAL library bindings.
type Converter struct{}

// ConvertToGeoJSON opens the OGR-readable dataset at inputPath and writes it
// to outputPath as GeoJSON, copying every layer's schema and features.
func (Converter) ConvertToGeoJSON(inputPath, outputPath string) error {
	return Translate(inputPath, outputPath, "GeoJSON")
}

// Translate converts the dataset at inputPath into driverName format at
// outputPath.
func Translate(inputPath, outputPath, driverName string) error {
	src, err := godal.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file %s: %v", inputPath, err)
	}
	defer src.Close()

	dst, err := src.VectorTranslate(outputPath, []string{"-f", driverName})
	if err != nil {
		return fmt.Errorf("failed to convert %s to %s: %v", inputPath, driverName, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to finalize output file %s: %v", outputPath, err)
	}
	return nil
}

// Ogr2ogrConverter converts datasets by running the ogr2ogr command-line
// tool. Path overrides the binary looked up on PATH.
type Ogr2ogrConverter struct {
	Path string
}

// ConvertToGeoJSON runs ogr2ogr -f GeoJSON outputPath inputPath.
func (c Ogr2ogrConverter) ConvertToGeoJSON(inputPath, outputPath string) error {
	binary := c.Path
	if binary == "" {
		binary = "ogr2ogr"
	}

	cmd := exec.Command(binary, "-f", "GeoJSON", outputPath, inputPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to convert %s with ogr2ogr: %v: %s",
			inputPath, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ConvertToGeoJSON converts any OGR-readable vector file to GeoJSON and
// returns the output path. An empty outputPath selects a uniquely named file
// in the temporary directory; the caller owns the returned file either way.
func ConvertToGeoJSON(inputPath, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = filepath.Join(os.TempDir(), uuid.New().String()+".geojson")
	}
	if err := (Converter{}).ConvertToGeoJSON(inputPath, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

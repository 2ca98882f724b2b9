// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Command qgis-layer-utils parses detection annotation CSVs and exports or
// uploads vector layers as GeoJSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/annotations"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/config"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/gdal"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/layer"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/upload"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/writer"
)

// ANSI color codes for console output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// useColor controls whether colored output is enabled.
var useColor = true

const (
	JSONIndent = "  "
	DirPerm    = 0750
)

func main() {
	annotationsPtr := flag.String("annotations", "", "Detection annotation CSV file to parse")
	infoPtr := flag.String("info", "", "GeoJSON file to introspect as a layer")
	exportPtr := flag.String("export", "", "GeoJSON file to re-export as a vector layer")
	uploadPtr := flag.String("upload", "", "GeoJSON file to upload as a layer")
	convertPtr := flag.String("convert", "", "Any OGR-readable vector file to convert to GeoJSON (and upload if an endpoint is configured)")
	endpointPtr := flag.String("endpoint", "", "API endpoint for uploads (overrides config)")
	formatPtr := flag.String("format", writer.DriverGeoJSON, "Export driver (GeoJSON, KML, GPX, CSV, GPKG)")
	outputPtr := flag.String("output", "", "Output directory (default: config output_dir)")
	viaGPKGPtr := flag.Bool("via-gpkg", false, "Upload through an intermediate GeoPackage conversion")
	useOgr2ogrPtr := flag.Bool("use-ogr2ogr", false, "Convert with the ogr2ogr command-line tool instead of the GDAL bindings")
	configPtr := flag.String("config", "config.yaml", "Configuration file")
	timeoutPtr := flag.Int("timeout", 0, "HTTP request timeout in seconds (overrides config)")
	noColorPtr := flag.Bool("no-color", false, "Disable colored output")

	flag.Parse()

	if *noColorPtr {
		useColor = false
	}

	cfg, err := config.Load(*configPtr)
	if err != nil {
		printError(fmt.Sprintf("Configuration error: %v", err))
		os.Exit(1)
	}
	if *endpointPtr != "" {
		cfg.APIEndpoint = *endpointPtr
	}
	if *outputPtr != "" {
		cfg.OutputDir = *outputPtr
	}
	if *timeoutPtr > 0 {
		cfg.TimeoutSeconds = *timeoutPtr
	}

	switch {
	case *annotationsPtr != "":
		err = runAnnotations(*annotationsPtr)
	case *infoPtr != "":
		err = runInfo(*infoPtr)
	case *exportPtr != "":
		err = runExport(*exportPtr, *formatPtr, cfg)
	case *uploadPtr != "":
		err = runUpload(*uploadPtr, cfg, *viaGPKGPtr, *useOgr2ogrPtr)
	case *convertPtr != "":
		err = runConvert(*convertPtr, cfg)
	default:
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// runAnnotations parses a detection annotation CSV and prints the per-image
// annotation map as JSON.
func runAnnotations(path string) error {
	printInfo(fmt.Sprintf("Parsing annotations from %s", path))
	byImage, err := annotations.ParseFile(path)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(byImage, "", JSONIndent)
	if err != nil {
		return fmt.Errorf("failed to marshal annotations: %v", err)
	}
	fmt.Println(string(data))
	printSuccess(fmt.Sprintf("Parsed annotations for %d images", len(byImage)))
	return nil
}

// runInfo loads a GeoJSON file as a layer and prints its metadata.
func runInfo(path string) error {
	l, err := layer.FromGeoJSONFile(path, layerNameFromPath(path))
	if err != nil {
		return err
	}

	info := layer.GetInfo(l)
	data, err := json.MarshalIndent(info, "", JSONIndent)
	if err != nil {
		return fmt.Errorf("failed to marshal layer info: %v", err)
	}
	fmt.Println(string(data))
	return nil
}

// runExport re-exports a GeoJSON file as a vector layer in the requested
// driver format.
func runExport(path, format string, cfg config.Config) error {
	l, err := layer.FromGeoJSONFile(path, layerNameFromPath(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, DirPerm); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	w := gdal.VectorWriter{}
	if format == writer.DriverGeoJSON {
		result := upload.ExportLayerToGeoJSON(w, l, cfg.OutputDir)
		if !result.Ok() {
			return fmt.Errorf("%s", result.Error)
		}
		printSuccess(result.Success)
		return nil
	}

	outputFile := filepath.Join(cfg.OutputDir, l.Name()+"."+extensionForDriver(format))
	if code := w.WriteAsVectorFormat(l, outputFile, format); code != writer.NoError {
		return fmt.Errorf("Failed to export layer. Error code: %d", int(code))
	}
	printSuccess(fmt.Sprintf("Layer exported successfully to %s", outputFile))
	return nil
}

// runUpload sends a GeoJSON file's layer to the configured API endpoint.
func runUpload(path string, cfg config.Config, viaGPKG, useOgr2ogr bool) error {
	if cfg.APIEndpoint == "" {
		return fmt.Errorf("no API endpoint configured (set -endpoint, api_endpoint or QLU_API_ENDPOINT)")
	}

	l, err := layer.FromGeoJSONFile(path, layerNameFromPath(path))
	if err != nil {
		return err
	}

	client := upload.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second)
	w := gdal.VectorWriter{}

	var result upload.UploadResult
	if viaGPKG {
		var conv upload.Converter = gdal.Converter{}
		if useOgr2ogr {
			conv = gdal.Ogr2ogrConverter{Path: cfg.Ogr2ogrPath}
		}
		printInfo("Uploading through GeoPackage conversion")
		result = client.SendLayerAsGeoJSONViaGPKG(w, l, cfg.APIEndpoint, conv)
	} else {
		result = client.SendLayerAsGeoJSON(w, l, cfg.APIEndpoint)
	}

	if !result.Ok() {
		if result.Response != nil {
			printWarning(fmt.Sprintf("API response: %v", result.Response))
		}
		return fmt.Errorf("%s", result.Error)
	}
	printSuccess(result.Success)
	return nil
}

// runConvert converts any OGR-readable vector file to GeoJSON. With an API
// endpoint configured the converted file is uploaded and removed afterwards;
// without one it is written next to the input and kept.
func runConvert(path string, cfg config.Config) error {
	if cfg.APIEndpoint == "" {
		output, err := gdal.ConvertToGeoJSON(path, strings.TrimSuffix(path, filepath.Ext(path))+".geojson")
		if err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("Converted %s to %s", path, output))
		return nil
	}

	output, err := gdal.ConvertToGeoJSON(path, "")
	if err != nil {
		return err
	}
	defer os.Remove(output)

	client := upload.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second)
	result := client.SendGeoJSONFile(output, cfg.APIEndpoint)
	if !result.Ok() {
		if result.Response != nil {
			printWarning(fmt.Sprintf("API response: %v", result.Response))
		}
		return fmt.Errorf("%s", result.Error)
	}
	printSuccess(result.Success)
	return nil
}

// layerNameFromPath derives a layer name from a file path, used when the
// GeoJSON file carries no collection name.
func layerNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// extensionForDriver maps a driver name to its usual file extension.
func extensionForDriver(driver string) string {
	switch driver {
	case writer.DriverKML:
		return "kml"
	case writer.DriverGPX:
		return "gpx"
	case writer.DriverCSV:
		return "csv"
	case "GPKG":
		return "gpkg"
	default:
		return "geojson"
	}
}

// printColor prints a message in the given color when color output is on.
func printColor(colorCode string, message string) {
	if useColor {
		fmt.Printf("%s%s%s\n", colorCode, message, colorReset)
	} else {
		fmt.Println(message)
	}
}

func printInfo(message string) {
	printColor(colorCyan, message)
}

func printSuccess(message string) {
	printColor(colorGreen, message)
}

func printWarning(message string) {
	printColor(colorYellow, message)
}

func printError(message string) {
	printColor(colorRed, message)
}

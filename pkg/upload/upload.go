// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package upload exports vector layers as GeoJSON and delivers them to an
// HTTP endpoint, directly or through an intermediate GeoPackage conversion.
package upload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/layer"
	"github.com/Sudo-Ivan/qgis-layer-utils/pkg/writer"
)

// NoVectorLayerMessage is the selection failure for a nil or non-vector layer.
const NoVectorLayerMessage = "No active vector layer selected"

// Converter turns an OGR-readable file into GeoJSON at outputPath. It is
// satisfied by the gdal package's converters.
type Converter interface {
	ConvertToGeoJSON(inputPath, outputPath string) error
}

// Client delivers GeoJSON payloads over HTTP.
type Client struct {
	HTTPClient *http.Client
}

// NewClient creates a new upload client with the specified timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ExportLayerToGeoJSON writes l to outputDir as "<layer name>.geojson".
//
// The layer must be a vector layer; anything else is a selection failure.
// A writer status other than writer.NoError is a driver failure carrying the
// numeric code.
func ExportLayerToGeoJSON(w writer.Writer, l layer.Layer, outputDir string) ExportResult {
	if l == nil || l.Type() != layer.VectorLayer {
		return ExportResult{Error: NoVectorLayerMessage, Kind: FailureSelection}
	}

	outputFile := filepath.Join(outputDir, l.Name()+".geojson")
	if code := w.WriteAsVectorFormat(l, outputFile, writer.DriverGeoJSON); code != writer.NoError {
		return ExportResult{
			Error: fmt.Sprintf("Failed to export layer. Error code: %d", int(code)),
			Kind:  FailureDriver,
		}
	}
	return ExportResult{
		Success: fmt.Sprintf("Layer exported successfully to %s", outputFile),
		Path:    outputFile,
	}
}

// SendLayerAsGeoJSON exports l to a temporary GeoJSON file and POSTs its
// contents to endpoint with Content-Type application/json.
//
// A 200 response is success, with the parsed JSON body in Response. Any
// other status is a transport failure whose Response holds the raw body
// text. The temporary file is removed on every exit path.
func (c *Client) SendLayerAsGeoJSON(w writer.Writer, l layer.Layer, endpoint string) UploadResult {
	if l == nil || l.Type() != layer.VectorLayer {
		return UploadResult{Error: NoVectorLayerMessage, Kind: FailureSelection}
	}

	tempFile := filepath.Join(os.TempDir(), uuid.NewString()+".geojson")
	defer os.Remove(tempFile)

	if code := w.WriteAsVectorFormat(l, tempFile, writer.DriverGeoJSON); code != writer.NoError {
		return UploadResult{
			Error: fmt.Sprintf("Failed to export layer. Error code: %d", int(code)),
			Kind:  FailureDriver,
		}
	}
	return c.postGeoJSONFile(tempFile, endpoint)
}

// SendLayerAsGeoJSONViaGPKG exports l to a temporary GeoPackage, converts it
// to GeoJSON with conv, and POSTs the result to endpoint. Both temporary
// files are removed on every exit path.
func (c *Client) SendLayerAsGeoJSONViaGPKG(w writer.Writer, l layer.Layer, endpoint string, conv Converter) UploadResult {
	if l == nil || l.Type() != layer.VectorLayer {
		return UploadResult{Error: NoVectorLayerMessage, Kind: FailureSelection}
	}

	gpkgFile := filepath.Join(os.TempDir(), uuid.NewString()+".gpkg")
	defer os.Remove(gpkgFile)

	if code := w.WriteAsVectorFormat(l, gpkgFile, "GPKG"); code != writer.NoError {
		return UploadResult{
			Error: fmt.Sprintf("Failed to export layer to GPKG. Error code: %d", int(code)),
			Kind:  FailureDriver,
		}
	}

	geojsonFile := filepath.Join(os.TempDir(), uuid.NewString()+".geojson")
	defer os.Remove(geojsonFile)

	if err := conv.ConvertToGeoJSON(gpkgFile, geojsonFile); err != nil {
		return UploadResult{
			Error: fmt.Sprintf("Failed to convert GeoPackage to GeoJSON: %v", err),
			Kind:  FailureDriver,
		}
	}
	return c.postGeoJSONFile(geojsonFile, endpoint)
}

// SendGeoJSONFile POSTs an existing GeoJSON file to endpoint. The file is
// left in place.
func (c *Client) SendGeoJSONFile(path, endpoint string) UploadResult {
	return c.postGeoJSONFile(path, endpoint)
}

func (c *Client) postGeoJSONFile(path, endpoint string) UploadResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return UploadResult{
			Error: fmt.Sprintf("Failed to read exported GeoJSON: %v", err),
			Kind:  FailureDriver,
		}
	}

	resp, err := c.HTTPClient.Post(endpoint, "application/json", bytes.NewReader(data))
	if err != nil {
		return UploadResult{
			Error: fmt.Sprintf("Failed to send GeoJSON to API: %v", err),
			Kind:  FailureTransport,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return UploadResult{
			Error: fmt.Sprintf("Failed to read API response: %v", err),
			Kind:  FailureTransport,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return UploadResult{
			Error:    fmt.Sprintf("Failed to send GeoJSON to API. Status code: %d", resp.StatusCode),
			Response: string(body),
			Kind:     FailureTransport,
		}
	}

	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return UploadResult{
			Error:    fmt.Sprintf("Failed to parse API response: %v", err),
			Response: string(body),
			Kind:     FailureTransport,
		}
	}
	return UploadResult{
		Success:  "Layer successfully sent to the API",
		Response: parsed,
	}
}

// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package annotations parses VIAME-style detection annotation CSV files into
// per-image annotation groups.
package annotations

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ColumnNames is the fixed column order of the annotation CSV. Columns are
// assigned positionally after the two metadata rows; header contents are
// never inspected.
var ColumnNames = []string{
	"Detection",
	"Imagename",
	"Frame_Identifier",
	"TL_x",
	"TL_y",
	"BR_x",
	"BR_y",
	"detection_Confidence",
	"Target_Length",
	"Species",
	"Confidence",
}

const (
	// SkipRows is the number of leading metadata rows discarded before data.
	SkipRows = 2
	// NumColumns is the required field count of every data row.
	NumColumns = 11
)

// DetectionRow is one parsed line of the annotation source, representing a
// single detected object instance.
type DetectionRow struct {
	Detection           string
	Imagename           string
	FrameIdentifier     string
	TLX                 float64
	TLY                 float64
	BRX                 float64
	BRY                 float64
	DetectionConfidence float64
	TargetLength        float64
	Species             string
	Confidence          float64
}

// BBox returns the row's bounding box as an 8-coordinate sequence. The corner
// order matches the annotation format consumed downstream and must not be
// reordered, even though it does not trace the rectangle consistently.
func (r DetectionRow) BBox() []float64 {
	return []float64{r.TLX, r.BRY, r.BRX, r.BRY, r.BRX, r.TLY, r.TLX, r.TLY}
}

// ImageAnnotations holds all annotations for a single image as three parallel
// lists, one entry per detection row, in source row order.
type ImageAnnotations struct {
	BBoxes     [][]float64 `json:"bbox"`
	Species    []string    `json:"Species"`
	Confidence []float64   `json:"Confidence"`
}

// Parse reads an annotation CSV from r and groups its rows by image
// identifier.
//
// The first two lines are skipped unconditionally. Each remaining row must
// have exactly 11 fields in the ColumnNames order. The Imagename field is
// normalized by removing every literal ".jpg" substring before grouping.
//
// Parsing is all-or-nothing: a row with the wrong field count or a
// non-numeric coordinate/score aborts the whole parse.
//
// Returns:
//   - map[string]ImageAnnotations: annotations keyed by normalized image identifier
//   - error: any error that occurred during parsing
func Parse(r io.Reader) (map[string]ImageAnnotations, error) {
	rows, err := parseRows(r)
	if err != nil {
		return nil, err
	}

	byImage := make(map[string]ImageAnnotations)
	for _, row := range rows {
		group := byImage[row.Imagename]
		group.BBoxes = append(group.BBoxes, row.BBox())
		group.Species = append(group.Species, row.Species)
		group.Confidence = append(group.Confidence, row.Confidence)
		byImage[row.Imagename] = group
	}
	return byImage, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (map[string]ImageAnnotations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation file: %v", err)
	}
	defer f.Close()
	return Parse(f)
}

// ParseRows reads an annotation CSV from r and returns its detection rows in
// source order, Imagename already normalized.
func ParseRows(r io.Reader) ([]DetectionRow, error) {
	return parseRows(r)
}

func parseRows(r io.Reader) ([]DetectionRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // field count validated per row below

	var rows []DetectionRow
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read annotation row %d: %v", line+1, err)
		}
		line++
		if line <= SkipRows {
			continue
		}
		row, err := parseRow(record, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string, line int) (DetectionRow, error) {
	if len(record) != NumColumns {
		return DetectionRow{}, fmt.Errorf("row %d: expected %d columns, got %d", line, NumColumns, len(record))
	}

	row := DetectionRow{
		Detection: record[0],
		// Substring removal, not an extension strip: "a.jpg.jpg" becomes
		// "a" and "image.jpgfile" becomes "imagefile".
		Imagename:       strings.ReplaceAll(record[1], ".jpg", ""),
		FrameIdentifier: record[2],
		Species:         record[9],
	}

	numeric := []struct {
		name  string
		value string
		dst   *float64
	}{
		{"TL_x", record[3], &row.TLX},
		{"TL_y", record[4], &row.TLY},
		{"BR_x", record[5], &row.BRX},
		{"BR_y", record[6], &row.BRY},
		{"detection_Confidence", record[7], &row.DetectionConfidence},
		{"Target_Length", record[8], &row.TargetLength},
		{"Confidence", record[10], &row.Confidence},
	}
	for _, field := range numeric {
		v, err := strconv.ParseFloat(strings.TrimSpace(field.value), 64)
		if err != nil {
			return DetectionRow{}, fmt.Errorf("row %d: non-numeric %s value %q", line, field.name, field.value)
		}
		*field.dst = v
	}
	return row, nil
}

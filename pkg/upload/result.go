// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

package upload

import "encoding/json"

// FailureKind classifies an expected failure so callers can branch without
// string matching.
type FailureKind string

const (
	// FailureSelection means no usable layer was supplied.
	FailureSelection FailureKind = "selection"
	// FailureDriver means a format conversion or write failed.
	FailureDriver FailureKind = "driver"
	// FailureTransport means the HTTP delivery failed.
	FailureTransport FailureKind = "transport"
)

// ExportResult is the outcome of a layer export. Exactly one of Success or
// Error is set.
type ExportResult struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	// Path of the written file on success.
	Path string      `json:"-"`
	Kind FailureKind `json:"-"`
}

// Ok reports whether the export succeeded.
func (r ExportResult) Ok() bool { return r.Error == "" }

// UploadResult is the outcome of a layer upload. Exactly one of Success or
// Error is set; Response carries the API body either way.
type UploadResult struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	// Response is the parsed JSON body on success, or the raw body text on a
	// transport failure.
	Response interface{} `json:"response,omitempty"`
	Kind     FailureKind `json:"-"`
}

// Ok reports whether the upload succeeded.
func (r UploadResult) Ok() bool { return r.Error == "" }

// JSON renders the result in the flat success/error mapping shape.
func (r UploadResult) JSON() (string, error) {
	data, err := json.Marshal(r)
	return string(data), err
}

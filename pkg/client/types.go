package client

import (
	"encoding/json"
	"fmt"
)

// FilterSet maps a filter field name to a scalar, a membership list, or a
// {min, max} range object. The coordinator rejects unknown field names.
type FilterSet map[string]any

// ExportRequest is the body sent to POST /export/{type}. ChunkSize and
// ForceChunking are advisory hints; the coordinator's strategy decision is
// authoritative.
type ExportRequest struct {
	ExportType    string    `json:"export_type"`
	Template      string    `json:"template,omitempty"`
	Filters       FilterSet `json:"filters"`
	Filename      string    `json:"filename,omitempty"`
	ChunkSize     int       `json:"chunk_size,omitempty"`
	ForceChunking bool      `json:"force_chunking,omitempty"`
}

// CountEstimate mirrors the coordinator's derived estimates
type CountEstimate struct {
	TotalRecords                   int     `json:"total_records"`
	EstimatedProcessingTimeSeconds float64 `json:"estimated_processing_time_seconds"`
	EstimatedFileSizeMB            float64 `json:"estimated_file_size_mb"`
}

// CountResult is the answer to a count call
type CountResult struct {
	TotalRecords int
	Estimates    CountEstimate
}

// PerformanceMetrics reports the coordinator's measured export timing
type PerformanceMetrics struct {
	TotalProcessingTimeSeconds float64 `json:"total_processing_time_seconds"`
	RecordsPerSecond           float64 `json:"records_per_second"`
}

// ArchiveInfo describes a multi-file export's archive
type ArchiveInfo struct {
	CompressedSize   int64   `json:"compressed_size"`
	CompressionRatio float64 `json:"compression_ratio"`
}

// Export strategies as reported by the coordinator
const (
	StrategySingle    = "single"
	StrategyMultiFile = "multi_file"
)

// SingleResult is the payload of a single-file export
type SingleResult struct {
	ExportID    string  `json:"export_id"`
	FileName    string  `json:"file_name"`
	FileSizeMB  float64 `json:"file_size_mb"`
	RecordCount int     `json:"record_count"`
}

// ChunkedResult is the payload of a multi-file export
type ChunkedResult struct {
	ExportID     string      `json:"export_id"`
	TotalFiles   int         `json:"total_files"`
	TotalRecords int         `json:"total_records"`
	ArchiveInfo  ArchiveInfo `json:"archive_info"`
}

// ExportResult is a tagged union over the coordinator's two result shapes.
// Variant payloads are reachable only through Single()/Chunked() so code
// cannot read fields from the wrong variant.
type ExportResult struct {
	Strategy string
	Metrics  PerformanceMetrics

	single  *SingleResult
	chunked *ChunkedResult
}

// Single returns the single-file payload, false if the result is chunked
func (r ExportResult) Single() (SingleResult, bool) {
	if r.single == nil {
		return SingleResult{}, false
	}
	return *r.single, true
}

// Chunked returns the multi-file payload, false if the result is single
func (r ExportResult) Chunked() (ChunkedResult, bool) {
	if r.chunked == nil {
		return ChunkedResult{}, false
	}
	return *r.chunked, true
}

// ExportID works for either variant
func (r ExportResult) ExportID() string {
	switch {
	case r.single != nil:
		return r.single.ExportID
	case r.chunked != nil:
		return r.chunked.ExportID
	}
	return ""
}

// parseExportResult decodes the strategy-tagged payload of an export
// response into the matching variant.
func parseExportResult(strategy string, data json.RawMessage, metrics PerformanceMetrics) (ExportResult, error) {
	switch strategy {
	case StrategySingle:
		var payload SingleResult
		if err := json.Unmarshal(data, &payload); err != nil {
			return ExportResult{}, fmt.Errorf("malformed single result: %w", err)
		}
		return ExportResult{Strategy: strategy, Metrics: metrics, single: &payload}, nil
	case StrategyMultiFile:
		var payload ChunkedResult
		if err := json.Unmarshal(data, &payload); err != nil {
			return ExportResult{}, fmt.Errorf("malformed chunked result: %w", err)
		}
		return ExportResult{Strategy: strategy, Metrics: metrics, chunked: &payload}, nil
	default:
		return ExportResult{}, fmt.Errorf("unknown export strategy %q", strategy)
	}
}

package model

// FilterSet maps a filter field name to its criteria. A value is either a
// scalar (equality), a []any (set membership), or a map with "min"/"max"
// keys (range). Unknown field names are rejected during query building.
type FilterSet map[string]any

// ExportRequest is the payload for POST /export/{type}
type ExportRequest struct {
	ExportType    string    `json:"export_type"`
	Template      string    `json:"template"`
	Filters       FilterSet `json:"filters"`
	Filename      string    `json:"filename,omitempty"`
	ChunkSize     int       `json:"chunk_size,omitempty"`
	ForceChunking bool      `json:"force_chunking,omitempty"`
}

// CountRequest is the payload for POST /export/count
type CountRequest struct {
	ExportType string    `json:"export_type"`
	Filters    FilterSet `json:"filters"`
}

// PreviewRequest is the payload for POST /export/preview
type PreviewRequest struct {
	ExportType string    `json:"export_type"`
	Template   string    `json:"template"`
	Filters    FilterSet `json:"filters"`
	Limit      int       `json:"limit,omitempty"`
}

// CountEstimate is derived from the record count with fixed throughput
// assumptions, it is never measured.
type CountEstimate struct {
	TotalRecords                   int     `json:"total_records"`
	EstimatedProcessingTimeSeconds float64 `json:"estimated_processing_time_seconds"`
	EstimatedFileSizeMB            float64 `json:"estimated_file_size_mb"`
}

// PerformanceMetrics reports measured export timing
type PerformanceMetrics struct {
	TotalProcessingTimeSeconds float64 `json:"total_processing_time_seconds"`
	RecordsPerSecond           float64 `json:"records_per_second"`
}

// ArchiveInfo describes the compressed archive of a multi-file export
type ArchiveInfo struct {
	CompressedSize   int64   `json:"compressed_size"`
	CompressionRatio float64 `json:"compression_ratio"`
}

// ExportStrategy is the coordinator's (authoritative) choice of output shape
type ExportStrategy string

const (
	StrategySingle    ExportStrategy = "single"
	StrategyMultiFile ExportStrategy = "multi_file"
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

// ExportResult is a tagged union over the two export outcomes. The variant
// payloads are unexported so callers have to go through Single()/Chunked()
// and cannot read fields from the wrong variant.
type ExportResult struct {
	Strategy ExportStrategy
	Metrics  PerformanceMetrics

	single  *SingleResult
	chunked *ChunkedResult
}

// NewSingleResult builds a single-file export result
func NewSingleResult(payload SingleResult, metrics PerformanceMetrics) ExportResult {
	return ExportResult{Strategy: StrategySingle, Metrics: metrics, single: &payload}
}

// NewChunkedResult builds a multi-file export result
func NewChunkedResult(payload ChunkedResult, metrics PerformanceMetrics) ExportResult {
	return ExportResult{Strategy: StrategyMultiFile, Metrics: metrics, chunked: &payload}
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

// Data returns the variant payload for JSON responses
func (r ExportResult) Data() any {
	if r.single != nil {
		return *r.single
	}
	if r.chunked != nil {
		return *r.chunked
	}
	return nil
}

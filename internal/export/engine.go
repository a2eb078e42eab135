package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-export-service/internal/logging"
	"go-export-service/internal/model"
	"go-export-service/internal/schema"
	"go-export-service/internal/store"
	"go-export-service/pkg/utils"
)

// singleFileBatchSize bounds memory for single-file exports, which stream
// through the same batch path as chunked ones.
const singleFileBatchSize = 1000

// Engine is the coordinator's export core: it decides the output strategy,
// writes artifacts, and registers them for download.
type Engine struct {
	DefaultChunkSize int
	Estimator        Estimator

	artifacts *utils.ArtifactManager
	recorder  *logging.Recorder
}

// New creates an export engine writing artifacts under exportDir
func New(exportDir string, defaultChunkSize int, estimator Estimator, recorder *logging.Recorder) *Engine {
	if defaultChunkSize < 1 {
		defaultChunkSize = 10000
	}
	return &Engine{
		DefaultChunkSize: defaultChunkSize,
		Estimator:        estimator,
		artifacts:        utils.NewArtifactManager(exportDir),
		recorder:         recorder,
	}
}

// DownloadURL returns the download path for a registered export
func (e *Engine) DownloadURL(exportID string) string {
	return e.artifacts.DownloadURL(exportID)
}

// Run executes one export request end to end. Either it returns a result
// whose artifact is registered and downloadable, or it fails leaving no
// artifact behind.
func (e *Engine) Run(ctx context.Context, requestID string, req model.ExportRequest) (model.ExportResult, error) {
	et, err := schema.Lookup(req.ExportType)
	if err != nil {
		return model.ExportResult{}, err
	}
	tmpl, err := et.Template(req.Template)
	if err != nil {
		return model.ExportResult{}, err
	}

	chunkSize := req.ChunkSize
	if chunkSize == 0 {
		chunkSize = e.DefaultChunkSize
	}
	if chunkSize < 1 {
		return model.ExportResult{}, model.Validationf("chunk_size must be >= 1, got %d", req.ChunkSize)
	}

	total, err := store.CountRecords(et, req.Filters)
	if err != nil {
		return model.ExportResult{}, err
	}

	// The client's force_chunking hint can turn chunking on, never off: a
	// result set larger than one chunk is always split.
	strategy := model.StrategySingle
	if total > chunkSize || (req.ForceChunking && total >= 1) {
		strategy = model.StrategyMultiFile
	}

	exportID := uuid.New().String()
	exportDir, err := e.artifacts.CreateExportDir(exportID)
	if err != nil {
		return model.ExportResult{}, err
	}

	e.record(requestID, "info", "Starting export", map[string]any{
		"export_id":     exportID,
		"export_type":   et.Name,
		"template":      tmpl.Name,
		"strategy":      string(strategy),
		"total_records": total,
		"chunk_size":    chunkSize,
	})

	start := time.Now()
	baseName := exportBaseName(req.Filename, et.Name)

	var result model.ExportResult
	if strategy == model.StrategyMultiFile {
		result, err = e.runChunked(ctx, et, tmpl, req.Filters, exportID, exportDir, baseName, chunkSize, total, start)
	} else {
		result, err = e.runSingle(ctx, et, tmpl, req.Filters, exportID, exportDir, baseName, total, start)
	}
	if err != nil {
		// All-or-nothing: a failed export retains no artifact
		os.RemoveAll(exportDir)
		e.record(requestID, "error", "Export failed", map[string]any{
			"export_id": exportID,
			"error":     err.Error(),
		})
		return model.ExportResult{}, err
	}

	e.record(requestID, "info", "Export completed", map[string]any{
		"export_id":          exportID,
		"strategy":           string(result.Strategy),
		"records":            total,
		"processing_seconds": result.Metrics.TotalProcessingTimeSeconds,
	})
	return result, nil
}

func (e *Engine) runSingle(ctx context.Context, et *schema.ExportType, tmpl schema.Template, filters model.FilterSet, exportID, exportDir, baseName string, total int, start time.Time) (model.ExportResult, error) {
	fileName := baseName + ".csv"
	filePath := filepath.Join(exportDir, fileName)

	written, err := writeCSVFile(ctx, filePath, et, tmpl, filters, singleFileBatchSize)
	if err != nil {
		return model.ExportResult{}, err
	}

	sizeMB, err := e.artifacts.FileSizeMB(filePath)
	if err != nil {
		return model.ExportResult{}, err
	}

	rec := store.ExportRecord{
		ID:          exportID,
		ExportType:  et.Name,
		Strategy:    string(model.StrategySingle),
		FileName:    fileName,
		FilePath:    filePath,
		RecordCount: written,
		TotalFiles:  1,
	}
	if err := store.SaveExport(rec); err != nil {
		return model.ExportResult{}, fmt.Errorf("failed to register export: %w", err)
	}

	return model.NewSingleResult(model.SingleResult{
		ExportID:    exportID,
		FileName:    fileName,
		FileSizeMB:  sizeMB,
		RecordCount: written,
	}, metricsFor(total, start)), nil
}

func (e *Engine) runChunked(ctx context.Context, et *schema.ExportType, tmpl schema.Template, filters model.FilterSet, exportID, exportDir, baseName string, chunkSize, total int, start time.Time) (model.ExportResult, error) {
	var chunkFiles []string
	writtenTotal := 0

	err := store.StreamRecords(ctx, et, tmpl, filters, chunkSize, func(batch [][]string) error {
		chunkPath := filepath.Join(exportDir, fmt.Sprintf("%s_part_%03d.csv", baseName, len(chunkFiles)+1))
		if err := writeCSVChunk(chunkPath, tmpl, batch); err != nil {
			return err
		}
		chunkFiles = append(chunkFiles, chunkPath)
		writtenTotal += len(batch)
		return nil
	})
	if err != nil {
		return model.ExportResult{}, err
	}
	if len(chunkFiles) == 0 {
		// Forced chunking with zero rows degenerates to an empty single chunk
		chunkPath := filepath.Join(exportDir, fmt.Sprintf("%s_part_001.csv", baseName))
		if err := writeCSVChunk(chunkPath, tmpl, nil); err != nil {
			return model.ExportResult{}, err
		}
		chunkFiles = append(chunkFiles, chunkPath)
	}

	archiveName := baseName + ".zip"
	archivePath := filepath.Join(exportDir, archiveName)
	rawSize, compressedSize, err := buildArchive(archivePath, chunkFiles)
	if err != nil {
		return model.ExportResult{}, err
	}

	// Only the archive is retained; member chunks are scratch files
	for _, path := range chunkFiles {
		os.Remove(path)
	}

	ratio := 0.0
	if compressedSize > 0 {
		ratio = round2(float64(rawSize) / float64(compressedSize))
	}

	rec := store.ExportRecord{
		ID:             exportID,
		ExportType:     et.Name,
		Strategy:       string(model.StrategyMultiFile),
		FileName:       archiveName,
		FilePath:       archivePath,
		RecordCount:    writtenTotal,
		TotalFiles:     len(chunkFiles),
		CompressedSize: compressedSize,
	}
	if err := store.SaveExport(rec); err != nil {
		return model.ExportResult{}, fmt.Errorf("failed to register export: %w", err)
	}

	return model.NewChunkedResult(model.ChunkedResult{
		ExportID:     exportID,
		TotalFiles:   len(chunkFiles),
		TotalRecords: writtenTotal,
		ArchiveInfo: model.ArchiveInfo{
			CompressedSize:   compressedSize,
			CompressionRatio: ratio,
		},
	}, metricsFor(total, start)), nil
}

// writeCSVFile streams all matching rows into a single CSV file and returns
// the number of data rows written.
func writeCSVFile(ctx context.Context, path string, et *schema.ExportType, tmpl schema.Template, filters model.FilterSet, batchSize int) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(tmpl.Headers()); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	written := 0
	err = store.StreamRecords(ctx, et, tmpl, filters, batchSize, func(batch [][]string) error {
		for _, row := range batch {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
		written += len(batch)
		return nil
	})
	if err != nil {
		return 0, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush export file: %w", err)
	}
	return written, nil
}

// writeCSVChunk writes one bounded chunk file with its own header row
func writeCSVChunk(path string, tmpl schema.Template, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chunk file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(tmpl.Headers()); err != nil {
		return fmt.Errorf("failed to write chunk header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write chunk row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func metricsFor(total int, start time.Time) model.PerformanceMetrics {
	seconds := time.Since(start).Seconds()
	if seconds < 0.001 {
		seconds = 0.001
	}
	rps := 0.0
	if total > 0 {
		rps = round2(float64(total) / seconds)
	}
	return model.PerformanceMetrics{
		TotalProcessingTimeSeconds: round2(seconds),
		RecordsPerSecond:           rps,
	}
}

// exportBaseName sanitizes the requested filename, falling back to a
// timestamped default.
func exportBaseName(requested, exportType string) string {
	name := strings.TrimSpace(requested)
	if name != "" {
		name = filepath.Base(name)
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if name == "" || name == "." {
		name = fmt.Sprintf("%s_export_%s", exportType, time.Now().Format("2006-01-02_15-04-05"))
	}
	return name
}

func (e *Engine) record(requestID, level, message string, context map[string]any) {
	if e.recorder == nil {
		return
	}
	e.recorder.Record(requestID, "export", level, message, context)
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-export-service/internal/export"
	"go-export-service/internal/logging"
	"go-export-service/internal/model"
	"go-export-service/internal/schema"
	"go-export-service/internal/store"
	"go-export-service/pkg/router"
)

var (
	engine       *export.Engine
	recorder     *logging.Recorder
	previewLimit = 100
)

// Init wires the handlers to their collaborators. Must be called before
// routes are served.
func Init(e *export.Engine, rec *logging.Recorder, previewCap int) {
	engine = e
	recorder = rec
	if previewCap > 0 && previewCap <= 100 {
		previewLimit = previewCap
	}
}

// CountExport computes the matching record count and derived estimates
// @Summary Count exportable records
// @Description Count records matching the filter set and estimate processing time and file size
// @Tags export
// @Accept json
// @Produce json
// @Param request body model.CountRequest true "Export type and filters"
// @Success 200 {object} map[string]interface{} "Count and estimates"
// @Failure 400 {object} map[string]interface{} "Unknown export type or filter field"
// @Router /export/count [post]
func CountExport(w http.ResponseWriter, r *http.Request) {
	var req model.CountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	et, err := schema.Lookup(req.ExportType)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	total, err := store.CountRecords(et, req.Filters)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	estimates := engine.Estimator.Estimate(total)
	record(r, "api", "info", "Count request served", map[string]any{
		"export_type":   req.ExportType,
		"total_records": total,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"total_records": total,
		"estimates":     estimates,
	})
}

// PreviewExport returns a bounded sample in the full export's row shape
// @Summary Preview export rows
// @Description Return the first rows (at most 100) the export would produce, without generating files
// @Tags export
// @Accept json
// @Produce json
// @Param request body model.PreviewRequest true "Export type, template and filters"
// @Success 200 {object} map[string]interface{} "Preview rows"
// @Failure 400 {object} map[string]interface{} "Unknown export type, template or filter field"
// @Router /export/preview [post]
func PreviewExport(w http.ResponseWriter, r *http.Request) {
	var req model.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	et, err := schema.Lookup(req.ExportType)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	tmpl, err := et.Template(req.Template)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	// The server clamps the sample size no matter what the client asks for
	limit := req.Limit
	if limit <= 0 || limit > previewLimit {
		limit = previewLimit
	}

	preview, err := store.PreviewRecords(et, tmpl, req.Filters, limit)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	record(r, "api", "info", "Preview request served", map[string]any{
		"export_type": req.ExportType,
		"template":    tmpl.Name,
		"rows":        len(preview),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"preview_data": preview,
	})
}

// RunExport executes an export for the type named in the path
// @Summary Run an export
// @Description Produce a single-file or multi-file export; the strategy decision is server-side
// @Tags export
// @Accept json
// @Produce json
// @Param type path string true "Export type"
// @Param request body model.ExportRequest true "Export request"
// @Success 200 {object} map[string]interface{} "Export result"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 500 {object} map[string]interface{} "Export failed"
// @Router /export/{type} [post]
func RunExport(w http.ResponseWriter, r *http.Request) {
	exportType := strings.Trim(strings.TrimPrefix(r.URL.Path, "/export/"), "/")
	if exportType == "" {
		writeError(w, http.StatusBadRequest, "Export type is required")
		return
	}

	var req model.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	// The path names the export type; a conflicting body value loses
	req.ExportType = exportType

	result, err := engine.Run(r.Context(), requestID(r), req)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "success",
		"export_strategy":     result.Strategy,
		"data":                result.Data(),
		"performance_metrics": result.Metrics,
	})
}

// ExportTypes lists the export types the coordinator can serve
// @Summary List export types
// @Description List the export type names accepted by the count, preview and export endpoints
// @Tags export
// @Produce json
// @Success 200 {object} map[string]interface{} "Export type names"
// @Router /export/types [get]
func ExportTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"export_types": schema.Types(),
	})
}

// RecentExports lists completed exports with their download paths
// @Summary List recent exports
// @Description List recently completed exports, newest first, with their download paths
// @Tags export
// @Produce json
// @Success 200 {object} map[string]interface{} "Recent exports"
// @Router /exports/recent [get]
func RecentExports(w http.ResponseWriter, r *http.Request) {
	exports, err := store.ListExports(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list exports")
		return
	}

	items := make([]map[string]any, 0, len(exports))
	for _, rec := range exports {
		items = append(items, map[string]any{
			"export":       rec,
			"download_url": engine.DownloadURL(rec.ID),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"exports": items,
		"count":   len(items),
	})
}

// DownloadExport serves a completed artifact's bytes
// @Summary Download export artifact
// @Description Download the artifact (file or archive) for a completed export; idempotent
// @Tags export
// @Produce application/octet-stream
// @Param export_id path string true "Export ID"
// @Success 200 {file} file "Artifact bytes"
// @Failure 404 {object} map[string]interface{} "Unknown export id"
// @Router /exports/download/{export_id} [get]
func DownloadExport(w http.ResponseWriter, r *http.Request) {
	exportID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/exports/download/"), "/")
	if exportID == "" {
		writeError(w, http.StatusBadRequest, "Export ID is required")
		return
	}

	rec, err := store.GetExport(exportID)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	if _, err := os.Stat(rec.FilePath); os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, "export artifact is no longer available")
		return
	}

	record(r, "api", "info", "Artifact downloaded", map[string]any{
		"export_id": exportID,
		"file_name": rec.FileName,
	})

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.FileName))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, rec.FilePath)
}

// --- shared helpers ---

func writeJSON(w http.ResponseWriter, httpStatus int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(payload)
}

// writeError emits the {status, message} envelope; clients are expected to
// read it rather than the HTTP status alone.
func writeError(w http.ResponseWriter, httpStatus int, message string) {
	writeJSON(w, httpStatus, map[string]any{
		"status":  "error",
		"message": message,
	})
}

func errorStatus(err error) int {
	switch {
	case model.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrExportNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func requestID(r *http.Request) string {
	return r.Header.Get(router.RequestIDHeader)
}

func record(r *http.Request, logType, level, message string, context map[string]any) {
	if recorder == nil {
		return
	}
	recorder.Record(requestID(r), logType, level, message, context)
}
